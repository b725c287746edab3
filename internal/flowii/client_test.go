package flowii

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	return NewWithTokenSource(context.Background(), srv.URL, ts)
}

func TestListItems(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/items" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.URL.Query().Get("createdDateFrom"); got != "2025-03-01" {
			t.Errorf("createdDateFrom = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"item-1","name":"Zakazka","createdDate":"2025-03-02T10:00:00"}]}`))
	}))

	items, err := c.ListItems(context.Background(), "2025-03-01")
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || items[0].ID != "item-1" || items[0].Name != "Zakazka" {
		t.Fatalf("items: %+v", items)
	}
}

func TestListItemsOmitsEmptyCutoff(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want empty", r.URL.RawQuery)
		}
		w.Write([]byte(`{"items":[]}`))
	}))
	if _, err := c.ListItems(context.Background(), ""); err != nil {
		t.Fatalf("list items: %v", err)
	}
}

func TestInvoiceDocuments(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/items/item-1/invoices" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"invoices":[{
			"id":"doc-1","typeCode":"FAKTURA","serialNumber":"FV2025002",
			"issueDate":"2025-03-05T00:00:00","totalWithVat":120.5,
			"totalWithoutVat":100.42,"outstandingAmount":0,"state":"PAID"}]}`))
	}))

	docs, err := c.InvoiceDocuments(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("invoice documents: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("docs: %+v", docs)
	}
	d := docs[0]
	if d.SerialNumber != "FV2025002" || d.TotalWithVat != 120.5 || d.TotalNoVat != 100.42 {
		t.Errorf("decoded doc: %+v", d)
	}
	if !d.Paid() {
		t.Errorf("doc should report paid: %+v", d)
	}
}

func TestGetPartner(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/partners/p-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"id":"p-1","name":"ACME s.r.o.","city":"Bratislava","countryCode":"SK","icDph":"SK2020202020"}`))
	}))

	p, err := c.GetPartner(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("get partner: %v", err)
	}
	if p.Name != "ACME s.r.o." || p.City != "Bratislava" || p.ICDPH != "SK2020202020" {
		t.Errorf("partner: %+v", p)
	}
}

func TestErrorIncludesStatusAndBody(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	_, err := c.ListItems(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error = %v", err)
	}
}

func TestInvoicePaidPredicate(t *testing.T) {
	cases := []struct {
		inv  Invoice
		want bool
	}{
		{Invoice{State: "PAID", Outstanding: 50}, true},
		{Invoice{State: "paid", Outstanding: 50}, true},
		{Invoice{State: "OPEN", Outstanding: 0}, true},
		{Invoice{State: "OPEN", Outstanding: 10}, false},
	}
	for _, c := range cases {
		if got := c.inv.Paid(); got != c.want {
			t.Errorf("Paid(%+v) = %v, want %v", c.inv, got, c.want)
		}
	}
}
