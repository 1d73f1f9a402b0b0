package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dukapos/pos-terminal/internal/backend"
	"github.com/dukapos/pos-terminal/internal/catalog"
	checkoutsvc "github.com/dukapos/pos-terminal/internal/checkout"
	"github.com/dukapos/pos-terminal/internal/sales"
	"github.com/dukapos/pos-terminal/internal/session"
	pkgauth "github.com/dukapos/pos-terminal/pkg/auth"
	"github.com/dukapos/pos-terminal/pkg/config"
	"github.com/dukapos/pos-terminal/pkg/enums"
)

// fakeStoreBackend imitates the store API's search and sales endpoints.
func fakeStoreBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/products/search/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":1,"name":"Soda","sku":"SKU-1","price":"10.00","tax_rate":"16","stock_quantity":5,"is_active":true}]}`))
	})
	mux.HandleFunc("/api/sales/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":9,"invoice_number":"INV-20260830-A1B2C3D4","subtotal":"20.00","discount_amount":"0.00","tax_amount":"3.20","total":"23.20","payment_method":"cash","amount_paid":"25.00","change_amount":"1.80","created_at":"2026-08-30T10:15:00Z"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T) (http.Handler, config.JWTConfig) {
	t.Helper()

	store := fakeStoreBackend(t)
	cfg := &config.Config{
		App:      config.AppConfig{Env: "test", Port: "0"},
		Backend:  config.BackendConfig{BaseURL: store.URL, Timeout: 2 * time.Second},
		Search:   config.SearchConfig{MinQueryLength: 2, PageSize: 20},
		Checkout: config.CheckoutConfig{CardEnabled: true, CurrencyCode: "KES"},
		JWT:      config.JWTConfig{Secret: "secret", Issuer: "store-backend"},
	}

	backendClient := backend.NewClient(cfg.Backend, nil)
	catalogService, err := catalog.NewService(catalog.NewClient(backendClient), nil, nil, cfg.Search.MinQueryLength)
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	checkoutService, err := checkoutsvc.NewService(sales.NewClient(backendClient), nil, nil, cfg.Checkout)
	if err != nil {
		t.Fatalf("checkout service: %v", err)
	}

	router := NewRouter(Deps{
		Config:          cfg,
		Logger:          nil,
		Backend:         backendClient,
		Sessions:        session.NewManager(),
		CatalogService:  catalogService,
		CheckoutService: checkoutService,
		MetricsRegistry: prometheus.NewRegistry(),
	})
	return router, cfg.JWT
}

func mintToken(t *testing.T, cfg config.JWTConfig) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), time.Hour, pkgauth.AccessTokenPayload{
		UserID:   42,
		Username: "amina",
		Role:     enums.RoleCashier,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, router http.Handler, token, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	if resp := doRequest(t, router, "", http.MethodGet, "/health/live", ""); resp.Code != http.StatusOK {
		t.Fatalf("live: expected 200 got %d", resp.Code)
	}
	if resp := doRequest(t, router, "", http.MethodGet, "/health/ready", ""); resp.Code != http.StatusOK {
		t.Fatalf("ready: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if resp := doRequest(t, router, "", http.MethodGet, "/metrics", ""); resp.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200 got %d", resp.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/catalog/search?q=soda"},
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/checkout"},
		{http.MethodPost, "/api/v1/checkout/submit"},
	}
	for _, p := range paths {
		if resp := doRequest(t, router, "", p.method, p.path, ""); resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", p.method, p.path, resp.Code)
		}
	}
}

func TestFullSaleFlow(t *testing.T) {
	router, jwtCfg := newTestRouter(t)
	token := mintToken(t, jwtCfg)

	// Search the catalog.
	resp := doRequest(t, router, token, http.MethodGet, "/api/v1/catalog/search?q=soda", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("search: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	// Add the product twice to accumulate quantity 2.
	addBody := `{"product":{"id":1,"name":"Soda","sku":"SKU-1","price":"10.00","tax_rate":"16","stock_quantity":5,"is_active":true}}`
	for i := 0; i < 2; i++ {
		resp = doRequest(t, router, token, http.MethodPost, "/api/v1/cart/lines", addBody)
		if resp.Code != http.StatusOK {
			t.Fatalf("add line: expected 200 got %d: %s", resp.Code, resp.Body.String())
		}
	}

	// Move to checkout and record payment.
	resp = doRequest(t, router, token, http.MethodPost, "/api/v1/checkout", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("checkout: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	resp = doRequest(t, router, token, http.MethodPut, "/api/v1/checkout/payment", `{"payment_method":"cash","amount_tendered":"25.00"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("payment: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	// Submit the sale.
	resp = doRequest(t, router, token, http.MethodPost, "/api/v1/checkout/submit", "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data struct {
			InvoiceNumber string `json:"invoice_number"`
			ChangeDue     string `json:"change_due"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	if envelope.Data.InvoiceNumber != "INV-20260830-A1B2C3D4" {
		t.Fatalf("unexpected invoice %q", envelope.Data.InvoiceNumber)
	}
	if envelope.Data.ChangeDue != "1.80" {
		t.Fatalf("expected change 1.80, got %q", envelope.Data.ChangeDue)
	}

	// The session resets after a committed sale.
	resp = doRequest(t, router, token, http.MethodGet, "/api/v1/cart", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("cart fetch: expected 200 got %d", resp.Code)
	}
	var cartEnvelope struct {
		Data struct {
			Stage string `json:"stage"`
			Lines []any  `json:"lines"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cartEnvelope); err != nil {
		t.Fatalf("decode cart response: %v", err)
	}
	if cartEnvelope.Data.Stage != "building" || len(cartEnvelope.Data.Lines) != 0 {
		t.Fatalf("expected empty building cart, got %+v", cartEnvelope.Data)
	}
}

func TestCheckoutRejectedBeforePayment(t *testing.T) {
	router, jwtCfg := newTestRouter(t)
	token := mintToken(t, jwtCfg)

	addBody := `{"product":{"id":1,"name":"Soda","sku":"SKU-1","price":"10.00","tax_rate":"16","stock_quantity":5,"is_active":true}}`
	if resp := doRequest(t, router, token, http.MethodPost, "/api/v1/cart/lines", addBody); resp.Code != http.StatusOK {
		t.Fatalf("add line: expected 200 got %d", resp.Code)
	}
	if resp := doRequest(t, router, token, http.MethodPost, "/api/v1/checkout", ""); resp.Code != http.StatusOK {
		t.Fatalf("checkout: expected 200 got %d", resp.Code)
	}

	// Tender defaults to zero, so submit must fail with 422.
	resp := doRequest(t, router, token, http.MethodPost, "/api/v1/checkout/submit", "")
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("submit: expected 422 got %d: %s", resp.Code, resp.Body.String())
	}
}
