package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Builds a realistic mixed basket the way a register session would:
// taxed and untaxed products, per-line discounts, repeated adds.
func TestMixedBasketTotals(t *testing.T) {
	t.Parallel()

	soda := snapshot(1, "Soda", "10.00", "16", 24)
	bread := snapshot(2, "Bread", "55.00", "0", 12)
	milk := snapshot(3, "Milk", "64.50", "16", 8)

	c := New()
	var err error

	// 3x Soda at 10% off.
	for i := 0; i < 3; i++ {
		c, err = AddLine(c, soda)
		require.NoError(t, err)
	}
	c = UpdateDiscount(c, 1, decimal.NewFromInt(10))

	// 2x Bread, no discount, zero-rated.
	c, err = AddLine(c, bread)
	require.NoError(t, err)
	c, err = UpdateQuantity(c, 2, 2)
	require.NoError(t, err)

	// 1x Milk at 5% off.
	c, err = AddLine(c, milk)
	require.NoError(t, err)
	c = UpdateDiscount(c, 3, decimal.NewFromInt(5))

	require.Len(t, c.Lines, 3)

	totals := ComputeTotals(c)

	// Soda: 30.00 - 3.00 = 27.00 taxable, 4.32 tax.
	// Bread: 110.00 taxable, no tax.
	// Milk: 64.50 - 3.225 = 61.275 taxable, 9.804 tax.
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("204.50")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(decimal.RequireFromString("6.225")), "discount %s", totals.DiscountAmount)
	assert.True(t, totals.TaxAmount.Equal(decimal.RequireFromString("14.124")), "tax %s", totals.TaxAmount)
	assert.Equal(t, "212.40", totals.Total.StringFixed(2))

	c = SetPayment(c, c.PaymentMethod, decimal.RequireFromString("250.00"))
	totals = ComputeTotals(c)
	assert.Equal(t, "37.60", totals.Change.StringFixed(2))
	assert.True(t, totals.CoversTotal())

	// The basket is still satisfiable against every captured snapshot.
	require.NoError(t, ValidateStock(c))

	checkout, err := BeginCheckout(c)
	require.NoError(t, err)
	assert.Equal(t, StageCheckout, checkout.Stage)
}
