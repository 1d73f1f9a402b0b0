package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukapos/pos-terminal/api/middleware"
	"github.com/dukapos/pos-terminal/internal/catalog"
	"github.com/dukapos/pos-terminal/pkg/config"
	"github.com/shopspring/decimal"
)

type stubCatalogService struct {
	results   []catalog.ProductSnapshot
	lastQuery string
	lastToken string
	lastLimit int
}

func (s *stubCatalogService) Search(ctx context.Context, token, query string, limit int) []catalog.ProductSnapshot {
	s.lastToken = token
	s.lastQuery = query
	s.lastLimit = limit
	return s.results
}

var testSearchConfig = config.SearchConfig{MinQueryLength: 2, PageSize: 20}

func TestCatalogSearch(t *testing.T) {
	svc := &stubCatalogService{results: []catalog.ProductSnapshot{{
		ID:             1,
		Name:           "Soda",
		SKU:            "SKU-1",
		UnitPrice:      decimal.RequireFromString("10.00"),
		TaxRatePercent: decimal.NewFromInt(16),
		StockQuantity:  5,
		IsActive:       true,
	}}}
	handler := CatalogSearch(svc, testSearchConfig, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?q=sod", nil)
	req = req.WithContext(middleware.WithToken(req.Context(), "tok"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastQuery != "sod" || svc.lastToken != "tok" {
		t.Fatalf("expected query and token forwarded, got %q %q", svc.lastQuery, svc.lastToken)
	}
	if svc.lastLimit != 20 {
		t.Fatalf("expected configured page size as default limit, got %d", svc.lastLimit)
	}

	var envelope struct {
		Data struct {
			Results []ProductView `json:"results"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(envelope.Data.Results))
	}
	got := envelope.Data.Results[0]
	if got.Price != "10.00" || got.TaxRate != "16" || got.StockQuantity != 5 {
		t.Fatalf("unexpected view %+v", got)
	}
}

func TestCatalogSearchLimitParam(t *testing.T) {
	svc := &stubCatalogService{}
	handler := CatalogSearch(svc, testSearchConfig, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?q=sod&limit=5", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastLimit != 5 {
		t.Fatalf("expected limit 5 forwarded, got %d", svc.lastLimit)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?q=sod&limit=oops", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?q=sod&limit=500", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range limit, got %d", resp.Code)
	}
}

func TestCatalogSearchEmpty(t *testing.T) {
	handler := CatalogSearch(&stubCatalogService{}, testSearchConfig, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?q=zz", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data struct {
			Results []ProductView `json:"results"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Results) != 0 {
		t.Fatalf("expected no results, got %d", len(envelope.Data.Results))
	}
}
