package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelitdev/coursehub/internal/domain/models"
)

func TestResolve_Midtrans(t *testing.T) {
	m, err := Resolve(models.DomainSettings{
		PaymentMethod:     MethodMidtrans,
		MidtransServerKey: "SB-Mid-server-test",
	}, MethodMidtrans)

	require.NoError(t, err)
	assert.Equal(t, MethodMidtrans, m.Name())
}

func TestResolve_MidtransUnconfigured(t *testing.T) {
	_, err := Resolve(models.DomainSettings{}, MethodMidtrans)
	assert.Error(t, err)
}

func TestResolve_UnknownMethod(t *testing.T) {
	_, err := Resolve(models.DomainSettings{}, "stripe")
	assert.Error(t, err)
}
