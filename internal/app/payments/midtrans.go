package payments

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// Midtrans wraps the Midtrans Core API client.
type Midtrans struct {
	client coreapi.Client
}

// NewMidtrans builds a gateway from a domain's server key.
func NewMidtrans(serverKey string, production bool) *Midtrans {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	var c coreapi.Client
	c.New(serverKey, env)
	return &Midtrans{client: c}
}

func (m *Midtrans) Name() string { return MethodMidtrans }

// Cancel cancels the transaction/subscription identified by subscriptionID.
func (m *Midtrans) Cancel(ctx context.Context, subscriptionID string) (bool, error) {
	_, midErr := m.client.CancelTransaction(subscriptionID)
	if midErr != nil {
		return false, fmt.Errorf("midtrans cancel %s: %v", subscriptionID, midErr.GetMessage())
	}
	return true, nil
}
