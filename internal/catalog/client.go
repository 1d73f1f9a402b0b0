package catalog

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dukapos/pos-terminal/internal/backend"
)

const searchPath = "/api/products/search/"

// Client fetches product snapshots from the store backend.
type Client struct {
	backend *backend.Client
}

// NewClient wraps the shared backend client for catalog operations.
func NewClient(b *backend.Client) *Client {
	return &Client{backend: b}
}

// Search returns the backend's page of matches for the query. The
// backend matches name, SKU, and barcode and only returns active
// products.
func (c *Client) Search(ctx context.Context, token, query string) ([]ProductSnapshot, error) {
	params := url.Values{}
	params.Set("q", query)

	var payload struct {
		Results []ProductSnapshot `json:"results"`
	}
	if err := c.backend.Do(ctx, "search", http.MethodGet, searchPath, params, token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}
