package catalog

import "github.com/shopspring/decimal"

// ProductSnapshot is a point-in-time copy of catalog data as the
// backend reported it. Consumers capture it by value; it is never
// live-refreshed, so its stock quantity is authoritative only at
// fetch time.
type ProductSnapshot struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Barcode        string          `json:"barcode,omitempty"`
	UnitPrice      decimal.Decimal `json:"price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate"`
	StockQuantity  int             `json:"stock_quantity"`
	IsActive       bool            `json:"is_active"`
}
