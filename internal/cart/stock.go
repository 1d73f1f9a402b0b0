package cart

import (
	"fmt"
	"strings"

	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
	"go.uber.org/multierr"
)

// StockIssue describes one line whose quantity the captured snapshot
// cannot satisfy.
type StockIssue struct {
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	Requested  int    `json:"requested"`
	Available  int    `json:"available"`
	OutOfStock bool   `json:"out_of_stock"`
}

func (s StockIssue) Describe() string {
	if s.OutOfStock {
		return fmt.Sprintf("%s is out of stock", s.Name)
	}
	return fmt.Sprintf("%s: only %d available", s.Name, s.Available)
}

func (s StockIssue) err() error {
	if s.OutOfStock {
		return pkgerrors.New(pkgerrors.CodeOutOfStock, s.Describe())
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, s.Describe())
}

// StockIssues returns every line whose quantity exceeds its captured
// snapshot's stock, in line order.
func StockIssues(c Cart) []StockIssue {
	var issues []StockIssue
	for _, line := range c.Lines {
		available := line.Product.StockQuantity
		if line.Quantity <= available {
			continue
		}
		issues = append(issues, StockIssue{
			ProductID:  line.Product.ID,
			Name:       line.Product.Name,
			Requested:  line.Quantity,
			Available:  available,
			OutOfStock: available == 0,
		})
	}
	return issues
}

// HasStockIssues reports whether any line exceeds its snapshot's stock.
func HasStockIssues(c Cart) bool {
	return len(StockIssues(c)) > 0
}

// HasOutOfStock reports whether any line's captured snapshot has no
// stock at all.
func HasOutOfStock(c Cart) bool {
	for _, line := range c.Lines {
		if line.Product.StockQuantity == 0 {
			return true
		}
	}
	return false
}

// DescribeStockIssues renders the issues as a single comma-joined
// sentence fit for display on the terminal.
func DescribeStockIssues(c Cart) string {
	issues := StockIssues(c)
	if len(issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.Describe())
	}
	return strings.Join(parts, ", ")
}

// ValidateStock checks every line against its captured snapshot and
// returns a single error covering all violations, or nil.
func ValidateStock(c Cart) error {
	issues := StockIssues(c)
	if len(issues) == 0 {
		return nil
	}
	var combined error
	for _, issue := range issues {
		combined = multierr.Append(combined, issue.err())
	}
	return pkgerrors.Wrap(pkgerrors.CodeStockIssue, combined, DescribeStockIssues(c)).
		WithDetails(map[string]any{"issues": issues})
}
