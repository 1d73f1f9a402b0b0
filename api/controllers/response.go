package controllers

import (
	"github.com/dukapos/pos-terminal/internal/cart"
	"github.com/dukapos/pos-terminal/internal/catalog"
	"github.com/dukapos/pos-terminal/pkg/money"
)

// ProductView is the wire shape of a product snapshot. Amounts travel
// as strings so the register UI never touches binary floats.
type ProductView struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Barcode       string `json:"barcode,omitempty"`
	Price         string `json:"price"`
	TaxRate       string `json:"tax_rate"`
	StockQuantity int    `json:"stock_quantity"`
	IsActive      bool   `json:"is_active"`
}

type LineView struct {
	Product         ProductView `json:"product"`
	Quantity        int         `json:"quantity"`
	DiscountPercent string      `json:"discount_percent"`
	Subtotal        string      `json:"subtotal"`
	Discount        string      `json:"discount"`
	Tax             string      `json:"tax"`
}

type TotalsView struct {
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	TaxAmount      string `json:"tax_amount"`
	Total          string `json:"total"`
	Change         string `json:"change"`
}

type StockIssueView struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Message   string `json:"message"`
}

// CartView is the full register display state, recomputed from the
// cart on every response.
type CartView struct {
	Stage          string           `json:"stage"`
	CustomerName   string           `json:"customer_name"`
	Notes          string           `json:"notes"`
	PaymentMethod  string           `json:"payment_method"`
	AmountTendered string           `json:"amount_tendered"`
	Lines          []LineView       `json:"lines"`
	Totals         TotalsView       `json:"totals"`
	StockIssues    []StockIssueView `json:"stock_issues"`
	CanCheckout    bool             `json:"can_checkout"`
}

func newProductView(p catalog.ProductSnapshot) ProductView {
	return ProductView{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		Price:         money.Format(p.UnitPrice),
		TaxRate:       p.TaxRatePercent.String(),
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
	}
}

func newProductViews(snapshots []catalog.ProductSnapshot) []ProductView {
	views := make([]ProductView, 0, len(snapshots))
	for _, p := range snapshots {
		views = append(views, newProductView(p))
	}
	return views
}

func newCartView(c cart.Cart) CartView {
	totals := cart.ComputeTotals(c)

	lines := make([]LineView, 0, len(c.Lines))
	for i, line := range c.Lines {
		lines = append(lines, LineView{
			Product:         newProductView(line.Product),
			Quantity:        line.Quantity,
			DiscountPercent: line.DiscountPercent.String(),
			Subtotal:        money.Format(totals.Lines[i].Subtotal),
			Discount:        money.Format(totals.Lines[i].Discount),
			Tax:             money.Format(totals.Lines[i].Tax),
		})
	}

	issues := cart.StockIssues(c)
	issueViews := make([]StockIssueView, 0, len(issues))
	for _, issue := range issues {
		issueViews = append(issueViews, StockIssueView{
			ProductID: issue.ProductID,
			Name:      issue.Name,
			Requested: issue.Requested,
			Available: issue.Available,
			Message:   issue.Describe(),
		})
	}

	return CartView{
		Stage:          string(c.Stage),
		CustomerName:   c.CustomerName,
		Notes:          c.Notes,
		PaymentMethod:  string(c.PaymentMethod),
		AmountTendered: money.Format(c.AmountTendered),
		Lines:          lines,
		Totals: TotalsView{
			Subtotal:       money.Format(totals.Subtotal),
			DiscountAmount: money.Format(totals.DiscountAmount),
			TaxAmount:      money.Format(totals.TaxAmount),
			Total:          money.Format(totals.Total),
			Change:         money.Format(totals.Change),
		},
		StockIssues: issueViews,
		CanCheckout: !c.IsEmpty() && len(issues) == 0,
	}
}
