package cart

import (
	"github.com/dukapos/pos-terminal/pkg/money"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineTotals carries the money derived for one line at full precision.
type LineTotals struct {
	ProductID int64
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Taxable   decimal.Decimal
	Tax       decimal.Decimal
}

// Totals is the money view of a cart. It is derived on every call and
// never stored, so a display can never go stale against the lines.
//
// Intermediates stay at full precision; Total is the one place a
// rounding happens, so per-line rounding drift cannot accumulate.
type Totals struct {
	Lines          []LineTotals
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Change         decimal.Decimal
}

// ComputeTotals derives the full money breakdown for the cart.
//
// Per line: subtotal is price times quantity, the discount applies to
// the subtotal, and tax applies to the discounted amount. Change is the
// tendered amount minus the total and goes negative when the tender
// falls short.
func ComputeTotals(c Cart) Totals {
	totals := Totals{
		Lines:          make([]LineTotals, 0, len(c.Lines)),
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxAmount:      decimal.Zero,
	}

	for _, line := range c.Lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		subtotal := line.Product.UnitPrice.Mul(qty)
		discount := subtotal.Mul(line.DiscountPercent).Div(hundred)
		taxable := subtotal.Sub(discount)
		tax := taxable.Mul(line.Product.TaxRatePercent).Div(hundred)

		totals.Lines = append(totals.Lines, LineTotals{
			ProductID: line.Product.ID,
			Subtotal:  subtotal,
			Discount:  discount,
			Taxable:   taxable,
			Tax:       tax,
		})
		totals.Subtotal = totals.Subtotal.Add(subtotal)
		totals.DiscountAmount = totals.DiscountAmount.Add(discount)
		totals.TaxAmount = totals.TaxAmount.Add(tax)
	}

	totals.Total = money.Round2(totals.Subtotal.Sub(totals.DiscountAmount).Add(totals.TaxAmount))
	totals.Change = c.AmountTendered.Sub(totals.Total)
	return totals
}

// CoversTotal reports whether the tendered amount covers the computed
// total.
func (t Totals) CoversTotal() bool {
	return t.Change.Sign() >= 0
}
