package sales

import (
	"github.com/dukapos/pos-terminal/pkg/enums"
	"github.com/shopspring/decimal"
)

// TransactionItem is one sale line as the store backend records it.
type TransactionItem struct {
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// TransactionRequest is the sale payload posted to the backend.
type TransactionRequest struct {
	CustomerName  string              `json:"customer_name"`
	Items         []TransactionItem   `json:"items"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	AmountPaid    decimal.Decimal     `json:"amount_paid"`
	Notes         string              `json:"notes"`
}

// Receipt is the committed sale as the backend returns it. The backend
// recomputes every amount server-side; these fields are its answer,
// not an echo of the terminal's math.
type Receipt struct {
	ID             int64               `json:"id"`
	InvoiceNumber  string              `json:"invoice_number"`
	CustomerName   string              `json:"customer_name"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	Total          decimal.Decimal     `json:"total"`
	PaymentMethod  enums.PaymentMethod `json:"payment_method"`
	AmountPaid     decimal.Decimal     `json:"amount_paid"`
	ChangeDue      decimal.Decimal     `json:"change_amount"`
	CreatedAt      string              `json:"created_at"`
}
