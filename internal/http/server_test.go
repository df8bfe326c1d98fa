package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"financeiro/internal/services"
	"financeiro/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	srv := NewServer("127.0.0.1:0",
		services.NewLedgerService(store, nil),
		services.NewReferenceService(store))
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		payload = nil
	}
	return resp, payload
}

func TestCreateExpenseEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/expenses",
		`{"description":"notebook","planned":"1000,00","date":"2025-03-10","category":"Outros","installments":3}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, payload = %v", resp.StatusCode, payload)
	}
	if payload["installments"].(float64) != 3 {
		t.Fatalf("installments = %v", payload["installments"])
	}
	if gid, _ := payload["group_id"].(string); gid == "" {
		t.Fatal("missing group id")
	}
}

func TestCreateExpenseValidationStatus(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"empty description", `{"description":" ","planned":"10,00","date":"2025-01-01","category":"Outros"}`, http.StatusUnprocessableEntity},
		{"zero amount", `{"description":"x","planned":"0","date":"2025-01-01","category":"Outros"}`, http.StatusUnprocessableEntity},
		{"bad date", `{"description":"x","planned":"10,00","date":"01/01/2025","category":"Outros"}`, http.StatusUnprocessableEntity},
		{"missing category", `{"description":"x","planned":"10,00","date":"2025-01-01"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/expenses", tc.body)
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestValidationErrorsMapToUnprocessable(t *testing.T) {
	ts := newTestServer(t)

	longDesc := strings.Repeat("a", 201)
	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/incomes",
		fmt.Sprintf(`{"description":%q,"planned":"100,00","date":"2025-04-01","category":"Salário"}`, longDesc))
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("overlong description status = %d, payload = %v", resp.StatusCode, payload)
	}

	resp, payload = doJSON(t, http.MethodPost, ts.URL+"/api/subcategories", `{"name":"Mercado"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("subcategory without category status = %d, payload = %v", resp.StatusCode, payload)
	}
}

func TestDeleteExpenseScopeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/expenses",
		`{"description":"sofá","planned":"3000,00","date":"2025-02-01","category":"Moradia","installments":5}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	// Records are ids 1..5 in installment order; delete from the third.
	resp, payload := doJSON(t, http.MethodDelete, ts.URL+"/api/expenses/3?scope=future", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, payload = %v", resp.StatusCode, payload)
	}
	if payload["deleted"].(float64) != 3 {
		t.Fatalf("deleted = %v, want 3", payload["deleted"])
	}

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/expenses/1?scope=whatever", "")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid scope status = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/expenses/99", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing record status = %d", resp.StatusCode)
	}
}

func TestUpdateExpenseEndpoint(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/expenses",
		`{"description":"internet","planned":"99,90","date":"2025-06-01","category":"Moradia"}`)

	resp, payload := doJSON(t, http.MethodPatch, ts.URL+"/api/expenses/1", `{"settled":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, payload = %v", resp.StatusCode, payload)
	}
	if payload["actual_cents"].(float64) != 9990 {
		t.Fatalf("actual_cents = %v", payload["actual_cents"])
	}
}

func TestSummaryEndpoint(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/incomes",
		`{"description":"salário","planned":"4000,00","date":"2025-05-10","category":"Salário","settled":true}`)
	doJSON(t, http.MethodPost, ts.URL+"/api/expenses",
		`{"description":"mercado","planned":"600,00","date":"2025-05-12","category":"Alimentação","settled":true}`)

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/api/reports/summary", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if payload["balance_cents"].(float64) != 340000 {
		t.Fatalf("balance_cents = %v", payload["balance_cents"])
	}
	if payload["total_income"].(string) != "R$ 4.000,00" {
		t.Fatalf("total_income = %v", payload["total_income"])
	}

	// Category filter narrows both sides.
	resp, payload = doJSON(t, http.MethodGet,
		ts.URL+"/api/reports/summary?category="+url.QueryEscape("Alimentação"), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("filtered status = %d", resp.StatusCode)
	}
	if payload["total_income_cents"].(float64) != 0 {
		t.Fatalf("filtered income = %v", payload["total_income_cents"])
	}
	if payload["total_expense_cents"].(float64) != 60000 {
		t.Fatalf("filtered expense = %v", payload["total_expense_cents"])
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/reports/summary?status=maybe", "")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("bad status filter = %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/reports/summary?payment_type_id=abc", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad payment_type_id = %d", resp.StatusCode)
	}
}

func TestExportEndpoint(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/expenses",
		`{"description":"mercado","planned":"600,00","date":"2025-05-12","category":"Alimentação","settled":true}`)

	resp, err := http.Get(ts.URL + "/api/reports/export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestPaymentTypeConflictEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/payment-types", `{"name":"Cartão"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create payment type = %d", resp.StatusCode)
	}
	ptID := int64(payload["id"].(float64))

	doJSON(t, http.MethodPost, ts.URL+"/api/expenses", fmt.Sprintf(
		`{"description":"mercado","planned":"50,00","date":"2025-03-01","category":"Alimentação","payment_type_id":%d}`, ptID))

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/payment-types/%d", ts.URL, ptID), "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("delete referenced payment type = %d", resp.StatusCode)
	}

	resp, payload = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/payment-types/%d/toggle", ts.URL, ptID), "")
	if resp.StatusCode != http.StatusOK || payload["active"].(bool) {
		t.Fatalf("toggle = %d, payload = %v", resp.StatusCode, payload)
	}
}

func TestCategoryConflictEndpoint(t *testing.T) {
	ts := newTestServer(t)

	_, payload := doJSON(t, http.MethodPost, ts.URL+"/api/categories", `{"name":"Alimentação"}`)
	catID := int64(payload["id"].(float64))

	doJSON(t, http.MethodPost, ts.URL+"/api/subcategories",
		fmt.Sprintf(`{"name":"Mercado","category_id":%d}`, catID))

	resp, _ := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/categories/%d", ts.URL, catID), "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("delete category with subcategories = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/categories/%d/subcategories", ts.URL, catID), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list subcategories = %d", resp.StatusCode)
	}
}
