package sales

import (
	"context"
	"errors"
	"net/http"

	"github.com/dukapos/pos-terminal/internal/backend"
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
)

const salesPath = "/api/sales/"

// Client posts committed sales to the store backend.
type Client struct {
	backend *backend.Client
}

// NewClient wraps the shared backend client for sale submission.
func NewClient(b *backend.Client) *Client {
	return &Client{backend: b}
}

// Submit posts the transaction and returns the backend's receipt. A
// backend rejection carries the backend's message verbatim so the
// cashier sees exactly what the store system said.
func (c *Client) Submit(ctx context.Context, token string, req TransactionRequest) (Receipt, error) {
	var receipt Receipt
	err := c.backend.Do(ctx, "submit_sale", http.MethodPost, salesPath, nil, token, req, &receipt)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return Receipt{}, pkgerrors.Wrap(pkgerrors.CodeSubmission, err, apiErr.Message)
		}
		return Receipt{}, err
	}
	return receipt, nil
}
