// Package payments abstracts the payment gateways a domain can configure.
// The deletion workflows only need one operation from a gateway: cancel a
// live subscription before its membership record is dropped.
package payments

import (
	"context"
	"fmt"

	"github.com/codelitdev/coursehub/internal/domain/models"
)

// Method is one configured payment gateway.
type Method interface {
	// Name reports the method tag memberships reference in
	// subscription_method.
	Name() string
	// Cancel cancels the remote subscription. Cancelling an unknown or
	// already-cancelled subscription should not be treated as an error by
	// callers; the surrounding deletion is best-effort here.
	Cancel(ctx context.Context, subscriptionID string) (bool, error)
}

// Method tags.
const (
	MethodMidtrans = "midtrans"
)

// Resolver maps a domain's settings and a membership's subscription method
// to a configured gateway. Injected so workflows can be tested with fakes.
type Resolver func(settings models.DomainSettings, method string) (Method, error)

// Resolve is the production resolver.
func Resolve(settings models.DomainSettings, method string) (Method, error) {
	switch method {
	case MethodMidtrans:
		if settings.MidtransServerKey == "" {
			return nil, fmt.Errorf("midtrans is not configured for this domain")
		}
		return NewMidtrans(settings.MidtransServerKey, settings.MidtransProduction), nil
	default:
		return nil, fmt.Errorf("unknown payment method %q", method)
	}
}
