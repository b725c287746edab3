// Package flowii talks to the Flowii billing API. Authentication uses a
// client-credentials token that is cached for the lifetime of the process
// and refreshed shortly before it expires.
package flowii

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TypeFaktura is the document type code of an outgoing invoice; other
// document types (proformas, credit notes) are ignored by the sync.
const TypeFaktura = "FAKTURA"

// refreshMargin is how long before expiry a cached token is replaced.
const refreshMargin = 60 * time.Second

// Config carries the API endpoint and credentials.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// Item is a Flowii business record that can own invoice documents.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedDate string `json:"createdDate"`
}

// Invoice is one invoice document attached to an item. Dates carry a time
// portion (2025-03-05T00:00:00) that the sync strips.
type Invoice struct {
	ID           string  `json:"id"`
	TypeCode     string  `json:"typeCode"`
	SerialNumber string  `json:"serialNumber"`
	IssueDate    string  `json:"issueDate"`
	DeliveryDate string  `json:"deliveryDate"`
	DueDate      string  `json:"dueDate"`
	PaymentDate  string  `json:"paymentDate"`
	TotalWithVat float64 `json:"totalWithVat"`
	TotalNoVat   float64 `json:"totalWithoutVat"`
	Outstanding  float64 `json:"outstandingAmount"`
	State        string  `json:"state"`
	PartnerID    string  `json:"partnerId"`
}

// Paid reports whether the document is settled on the Flowii side.
func (i Invoice) Paid() bool {
	return strings.EqualFold(i.State, "PAID") || i.Outstanding == 0
}

// Partner is the resolved business partner of an invoice.
type Partner struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Street      string `json:"street"`
	Zip         string `json:"zip"`
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
	Country     string `json:"country"`
	ICO         string `json:"ico"`
	DIC         string `json:"dic"`
	ICDPH       string `json:"icDph"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client whose transport attaches a bearer token from the
// client-credentials flow. The token source is shared by all requests, so
// the token is fetched lazily on first use and reused until close to expiry.
func New(ctx context.Context, cfg Config) *Client {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     strings.TrimRight(cfg.BaseURL, "/") + "/oauth2/token",
	}
	ts := oauth2.ReuseTokenSourceWithExpiry(nil, cc.TokenSource(ctx), refreshMargin)
	return NewWithTokenSource(ctx, cfg.BaseURL, ts)
}

// NewWithTokenSource builds a client on an explicit token source. Tests (and
// any caller with its own credential handling) inject a static source here.
func NewWithTokenSource(ctx context.Context, baseURL string, ts oauth2.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    oauth2.NewClient(ctx, ts),
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("flowii %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("flowii %s: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("flowii %s: decode: %w", path, err)
	}
	return nil
}

// ListItems returns items created on or after the given ISO date. An empty
// date returns everything.
func (c *Client) ListItems(ctx context.Context, createdFrom string) ([]Item, error) {
	q := url.Values{}
	if createdFrom != "" {
		q.Set("createdDateFrom", createdFrom)
	}
	var payload struct {
		Items []Item `json:"items"`
	}
	if err := c.get(ctx, "/api/v1/items", q, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// InvoiceDocuments returns the invoice documents attached to an item.
func (c *Client) InvoiceDocuments(ctx context.Context, itemID string) ([]Invoice, error) {
	var payload struct {
		Invoices []Invoice `json:"invoices"`
	}
	if err := c.get(ctx, "/api/v1/items/"+url.PathEscape(itemID)+"/invoices", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Invoices, nil
}

// GetPartner resolves a partner by id.
func (c *Client) GetPartner(ctx context.Context, partnerID string) (*Partner, error) {
	var p Partner
	if err := c.get(ctx, "/api/v1/partners/"+url.PathEscape(partnerID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
