package cart

import (
	"testing"

	"github.com/dukapos/pos-terminal/pkg/enums"
	"github.com/shopspring/decimal"
)

func TestComputeTotalsSingleLine(t *testing.T) {
	t.Parallel()

	// 10.00 at quantity 2 with 10% discount and 16% tax.
	c := mustAdd(t, New(), snapshot(1, "Soda", "10.00", "16", 5))
	c, err := UpdateQuantity(c, 1, 2)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	c = UpdateDiscount(c, 1, decimal.NewFromInt(10))

	totals := ComputeTotals(c)

	assertAmount(t, "subtotal", totals.Subtotal, "20.00")
	assertAmount(t, "discount", totals.DiscountAmount, "2.00")
	assertAmount(t, "tax", totals.TaxAmount, "2.88")
	assertAmount(t, "total", totals.Total, "20.88")

	if len(totals.Lines) != 1 {
		t.Fatalf("expected 1 line total, got %d", len(totals.Lines))
	}
	assertAmount(t, "line taxable", totals.Lines[0].Taxable, "18.00")
}

func TestComputeTotalsChange(t *testing.T) {
	t.Parallel()

	c := mustAdd(t, New(), snapshot(1, "Soda", "10.00", "16", 5))
	c, err := UpdateQuantity(c, 1, 2)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	c = UpdateDiscount(c, 1, decimal.NewFromInt(10))

	short := SetPayment(c, enums.PaymentMethodCash, decimal.RequireFromString("20.00"))
	totals := ComputeTotals(short)
	if totals.CoversTotal() {
		t.Fatalf("tender 20.00 must not cover total %s", totals.Total)
	}
	assertAmount(t, "shortfall", totals.Change, "-0.88")

	covered := SetPayment(c, enums.PaymentMethodCash, decimal.RequireFromString("25.00"))
	totals = ComputeTotals(covered)
	if !totals.CoversTotal() {
		t.Fatalf("tender 25.00 must cover total %s", totals.Total)
	}
	assertAmount(t, "change", totals.Change, "4.12")
}

func TestComputeTotalsAggregatesLines(t *testing.T) {
	t.Parallel()

	c := mustAdd(t, New(), snapshot(1, "Soda", "10.00", "16", 5))
	c = mustAdd(t, c, snapshot(2, "Bread", "55.00", "0", 10))

	totals := ComputeTotals(c)

	assertAmount(t, "subtotal", totals.Subtotal, "65.00")
	assertAmount(t, "discount", totals.DiscountAmount, "0.00")
	assertAmount(t, "tax", totals.TaxAmount, "1.60")
	assertAmount(t, "total", totals.Total, "66.60")
}

func TestComputeTotalsRoundsOnceAtTotal(t *testing.T) {
	t.Parallel()

	// Three lines each producing a third of a cent of tax. Rounding
	// per line would drop all of it; a single rounding at the total
	// keeps the cent.
	c := New()
	for id := int64(1); id <= 3; id++ {
		c = mustAdd(t, c, snapshot(id, "Sweet", "3.47", "0.1", 10))
	}

	totals := ComputeTotals(c)

	perLineTax := decimal.RequireFromString("3.47").Mul(decimal.RequireFromString("0.001"))
	wantTax := perLineTax.Mul(decimal.NewFromInt(3))
	if !totals.TaxAmount.Equal(wantTax) {
		t.Fatalf("expected full-precision tax %s, got %s", wantTax, totals.TaxAmount)
	}
	assertAmount(t, "total", totals.Total, "10.42")
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals(New())
	assertAmount(t, "total", totals.Total, "0.00")
	assertAmount(t, "change", totals.Change, "0.00")
	if len(totals.Lines) != 0 {
		t.Fatalf("expected no line totals, got %d", len(totals.Lines))
	}
}

func assertAmount(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: expected %s, got %s", label, want, got)
	}
}
