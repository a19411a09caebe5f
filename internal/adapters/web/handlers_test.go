package web_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"apparel-ledger/internal/adapters/web"
	"apparel-ledger/internal/app"
	"apparel-ledger/internal/core"
	"apparel-ledger/internal/store/memory"
)

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	products := memory.NewProductStore()
	sales := memory.NewSaleStore()
	svc := app.NewAppService(
		core.NewStockService(products, sales, nil),
		core.NewReportingService(products, sales, 0),
		core.DefaultSizes,
	)
	return web.NewHandler(svc, "")
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createTestProduct(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/products", map[string]any{
		"name":  "Basic Tee",
		"price": "29.90",
		"sizes": map[string]int{"M": 5},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating product, got %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	return resp.Product.ID
}

func TestHealthAndSizes(t *testing.T) {
	h := setupServer(t)

	if rec := doJSON(t, h, http.MethodGet, "/api/health", nil); rec.Code != http.StatusOK {
		t.Errorf("expected 200 from health, got %d", rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/sizes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from sizes, got %d", rec.Code)
	}
	var resp struct {
		Sizes []string `json:"sizes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding sizes response: %v", err)
	}
	if len(resp.Sizes) != len(core.DefaultSizes) {
		t.Errorf("expected %d size labels, got %v", len(core.DefaultSizes), resp.Sizes)
	}
}

func TestRegisterSaleEndpoint(t *testing.T) {
	h := setupServer(t)
	productID := createTestProduct(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/sales", map[string]any{
		"product_id": productID,
		"size":       "M",
		"quantity":   2,
		"unit_price": "29.90",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 registering sale, got %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Sale struct {
			ID         string `json:"id"`
			TotalPrice string `json:"total_price"`
		} `json:"sale"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding sale response: %v", err)
	}
	if resp.Sale.ID == "" {
		t.Error("expected sale id in response")
	}
	if resp.Sale.TotalPrice != "59.8" {
		t.Errorf("expected total 59.8, got %q", resp.Sale.TotalPrice)
	}
}

func TestInsufficientStockReturns409(t *testing.T) {
	h := setupServer(t)
	productID := createTestProduct(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/sales", map[string]any{
		"product_id": productID,
		"size":       "M",
		"quantity":   6, // only 5 on hand
		"unit_price": "29.90",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Code      string `json:"code"`
		Available *int   `json:"available"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if resp.Code != "INSUFFICIENT_STOCK" {
		t.Errorf("expected INSUFFICIENT_STOCK code, got %q", resp.Code)
	}
	if resp.Available == nil || *resp.Available != 5 {
		t.Errorf("expected available=5 in response, got %v", resp.Available)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	h := setupServer(t)
	productID := createTestProduct(t, h)

	cases := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			"unknown product", http.MethodPost, "/api/sales",
			map[string]any{"product_id": "nope", "size": "M", "quantity": 1, "unit_price": "10"},
			http.StatusNotFound, "NOT_FOUND",
		},
		{
			"invalid size", http.MethodPost, "/api/sales",
			map[string]any{"product_id": productID, "size": "XS", "quantity": 1, "unit_price": "10"},
			http.StatusBadRequest, "INVALID_SIZE",
		},
		{
			"zero quantity", http.MethodPost, "/api/sales",
			map[string]any{"product_id": productID, "size": "M", "quantity": 0, "unit_price": "10"},
			http.StatusBadRequest, "INVALID_QUANTITY",
		},
		{
			"invalid discount", http.MethodPost, "/api/sales",
			map[string]any{"product_id": productID, "size": "M", "quantity": 1, "unit_price": "10", "discount_percent": "150"},
			http.StatusBadRequest, "INVALID_DISCOUNT",
		},
		{
			"delete missing sale", http.MethodDelete, "/api/sales/missing-id", nil,
			http.StatusNotFound, "NOT_FOUND",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h, tc.method, tc.path, tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, rec.Code, rec.Body)
			}
			var resp struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding error response: %v", err)
			}
			if resp.Code != tc.wantCode {
				t.Errorf("expected code %q, got %q", tc.wantCode, resp.Code)
			}
		})
	}
}

func TestDashboardAndReportEndpoints(t *testing.T) {
	h := setupServer(t)
	productID := createTestProduct(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/sales", map[string]any{
		"product_id": productID,
		"size":       "M",
		"quantity":   1,
		"unit_price": "29.90",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 registering sale, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from dashboard, got %d", rec.Code)
	}
	var dash struct {
		TotalProducts int `json:"total_products"`
		TotalSales    int `json:"total_sales"`
		TotalStock    int `json:"total_stock"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &dash); err != nil {
		t.Fatalf("decoding dashboard: %v", err)
	}
	if dash.TotalProducts != 1 || dash.TotalSales != 1 || dash.TotalStock != 4 {
		t.Errorf("unexpected dashboard totals: %+v", dash)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/reports/sales?days=14&top=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from report, got %d", rec.Code)
	}
	var report struct {
		Days  int              `json:"days"`
		Daily []map[string]any `json:"daily"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.Days != 14 || len(report.Daily) != 14 {
		t.Errorf("expected a 14-day window, got days=%d daily=%d", report.Days, len(report.Daily))
	}

	rec = doJSON(t, h, http.MethodGet, "/api/reports/sales/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from export, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected export content type %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected a non-empty workbook body")
	}
}

func TestProductLifecycleEndpoints(t *testing.T) {
	h := setupServer(t)
	productID := createTestProduct(t, h)

	rec := doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/products/%s", productID), map[string]any{
		"name": "Premium Tee",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating product, got %d: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/products/%s", productID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 deleting product, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/products", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing products, got %d", rec.Code)
	}
	var list struct {
		Products []json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(list.Products) != 0 {
		t.Errorf("expected empty catalog after delete, got %d products", len(list.Products))
	}
}
