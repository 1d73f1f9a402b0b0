package cart

import (
	"fmt"

	"github.com/dukapos/pos-terminal/internal/catalog"
	"github.com/dukapos/pos-terminal/pkg/enums"
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
	"github.com/dukapos/pos-terminal/pkg/money"
	"github.com/shopspring/decimal"
)

// LineItem is one product entry in the in-progress transaction. The
// snapshot is captured by value at add time: stock checks run against
// what the cashier saw, never a live refetch.
type LineItem struct {
	Product         catalog.ProductSnapshot
	Quantity        int
	DiscountPercent decimal.Decimal
}

// Cart is the in-progress transaction. It is a plain value; every
// reducer returns a new Cart and leaves its input untouched, so a
// failed operation can never leave partial state behind.
type Cart struct {
	Lines          []LineItem
	CustomerName   string
	Notes          string
	PaymentMethod  enums.PaymentMethod
	AmountTendered decimal.Decimal
	Stage          Stage
}

// New returns the empty Building-stage cart.
func New() Cart {
	return Cart{
		PaymentMethod: enums.PaymentMethodCash,
		Stage:         StageBuilding,
	}
}

// AddLine adds one unit of the product. An existing line for the same
// product id accumulates quantity instead of duplicating; the original
// snapshot on that line is kept.
func AddLine(c Cart, product catalog.ProductSnapshot) (Cart, error) {
	if product.StockQuantity == 0 {
		return c, pkgerrors.New(pkgerrors.CodeOutOfStock, fmt.Sprintf("%s is out of stock", product.Name)).
			WithDetails(map[string]any{"product_id": product.ID})
	}

	if idx := lineIndex(c, product.ID); idx >= 0 {
		existing := c.Lines[idx]
		available := existing.Product.StockQuantity
		if existing.Quantity+1 > available {
			return c, insufficientStock(existing.Product.Name, product.ID, available)
		}
		next := cloneLines(c)
		next.Lines[idx].Quantity++
		return next, nil
	}

	next := cloneLines(c)
	next.Lines = append(next.Lines, LineItem{
		Product:         product,
		Quantity:        1,
		DiscountPercent: decimal.Zero,
	})
	return next, nil
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the
// line; a request beyond the captured stock fails and leaves the line
// at its previous quantity. Unknown product ids are a no-op.
func UpdateQuantity(c Cart, productID int64, requested int) (Cart, error) {
	idx := lineIndex(c, productID)
	if idx < 0 {
		return c, nil
	}

	if requested <= 0 {
		return RemoveLine(c, productID), nil
	}

	available := c.Lines[idx].Product.StockQuantity
	if requested > available {
		return c, insufficientStock(c.Lines[idx].Product.Name, productID, available)
	}

	next := cloneLines(c)
	next.Lines[idx].Quantity = requested
	return next, nil
}

// UpdateDiscount sets a line's discount percent, clamped to [0, 100].
// Unknown product ids are a no-op; the operation never fails.
func UpdateDiscount(c Cart, productID int64, percent decimal.Decimal) Cart {
	idx := lineIndex(c, productID)
	if idx < 0 {
		return c
	}
	next := cloneLines(c)
	next.Lines[idx].DiscountPercent = money.ClampPercent(percent)
	return next
}

// RemoveLine deletes the line for the product id if present.
func RemoveLine(c Cart, productID int64) Cart {
	idx := lineIndex(c, productID)
	if idx < 0 {
		return c
	}
	next := c
	next.Lines = make([]LineItem, 0, len(c.Lines)-1)
	next.Lines = append(next.Lines, c.Lines[:idx]...)
	next.Lines = append(next.Lines, c.Lines[idx+1:]...)
	return next
}

// Clear resets the whole transaction to the empty Building state,
// discarding lines, customer data, and tendered amount. Used both for
// the explicit clear action and the post-submit reset.
func Clear(Cart) Cart {
	return New()
}

// SetCustomer records the optional customer name and free-text notes.
func SetCustomer(c Cart, name, notes string) Cart {
	next := c
	next.CustomerName = name
	next.Notes = notes
	return next
}

// SetPayment records the payment method and the amount tendered.
func SetPayment(c Cart, method enums.PaymentMethod, tendered decimal.Decimal) Cart {
	next := c
	next.PaymentMethod = method
	next.AmountTendered = tendered
	return next
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line returns the line for the product id, if present.
func (c Cart) Line(productID int64) (LineItem, bool) {
	if idx := lineIndex(c, productID); idx >= 0 {
		return c.Lines[idx], true
	}
	return LineItem{}, false
}

func lineIndex(c Cart, productID int64) int {
	for i, line := range c.Lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

func cloneLines(c Cart) Cart {
	next := c
	next.Lines = make([]LineItem, len(c.Lines))
	copy(next.Lines, c.Lines)
	return next
}

func insufficientStock(name string, productID int64, available int) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, fmt.Sprintf("%s: only %d available", name, available)).
		WithDetails(map[string]any{"product_id": productID, "available": available})
}
