package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/fakturio/faktury-api/internal/flowii"
)

type fakeFlowii struct {
	items      []flowii.Item
	docs       map[string][]flowii.Invoice
	partners   map[string]flowii.Partner
	partnerErr error

	gotCreatedFrom string
}

func (f *fakeFlowii) ListItems(_ context.Context, createdFrom string) ([]flowii.Item, error) {
	f.gotCreatedFrom = createdFrom
	return f.items, nil
}

func (f *fakeFlowii) InvoiceDocuments(_ context.Context, itemID string) ([]flowii.Invoice, error) {
	return f.docs[itemID], nil
}

func (f *fakeFlowii) GetPartner(_ context.Context, partnerID string) (*flowii.Partner, error) {
	if f.partnerErr != nil {
		return nil, f.partnerErr
	}
	p, ok := f.partners[partnerID]
	if !ok {
		return nil, errors.New("no such partner")
	}
	return &p, nil
}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSyncRun(t *testing.T) {
	fixedNow(t)
	svc := setupService(t)
	ctx := context.Background()
	// already synced earlier; its issue date becomes the incremental cutoff
	if _, err := svc.Create(ctx, map[string]any{"cislo": "FV2025001", "datum_vystavenia": "2025-03-01"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	fake := &fakeFlowii{
		items: []flowii.Item{{ID: "item-1"}},
		docs: map[string][]flowii.Invoice{
			"item-1": {
				{
					TypeCode:     flowii.TypeFaktura,
					SerialNumber: "FV2025002",
					IssueDate:    "2025-03-05T00:00:00",
					DueDate:      "2025-03-19T00:00:00",
					PaymentDate:  "2025-03-10T00:00:00",
					TotalWithVat: 120,
					TotalNoVat:   100,
					State:        "PAID",
					PartnerID:    "p-1",
				},
				// duplicate of the row already in the sheet
				{TypeCode: flowii.TypeFaktura, SerialNumber: "FV2025001", IssueDate: "2025-03-01T00:00:00"},
				// not an outgoing invoice
				{TypeCode: "ZALOHOVA_FAKTURA", SerialNumber: "ZF2025001"},
				{TypeCode: flowii.TypeFaktura, SerialNumber: ""},
			},
		},
		partners: map[string]flowii.Partner{
			"p-1": {Name: "ACME s.r.o.", City: "Bratislava", CountryCode: "SK", ICO: "12345678"},
		},
	}

	sync := NewSyncService(svc, fake, quietLog())
	n, err := sync.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 1 {
		t.Fatalf("synced = %d, want 1", n)
	}
	if fake.gotCreatedFrom != "2025-03-01" {
		t.Errorf("createdDateFrom = %q, want 2025-03-01", fake.gotCreatedFrom)
	}

	f, err := svc.Get(ctx, "FV2025002")
	if err != nil {
		t.Fatalf("synced record missing: %v", err)
	}
	if f.DatumVystavenia != "2025-03-05" || f.DatumSplatnosti != "2025-03-19" {
		t.Errorf("date portions: %+v", f)
	}
	if f.DatumUhrady != "2025-03-10" || f.ZostavaUhradit != 0 || !f.Zaplatena() {
		t.Errorf("paid document must arrive paid: %+v", f)
	}
	if f.Partner != "ACME s.r.o." || f.Mesto != "Bratislava" || f.ICO != "12345678" {
		t.Errorf("partner fields: %+v", f)
	}

	list, _ := svc.List(ctx)
	if len(list) != 2 {
		t.Fatalf("expected 2 records total, got %d", len(list))
	}
}

func TestSyncRunIsIdempotent(t *testing.T) {
	fixedNow(t)
	svc := setupService(t)
	fake := &fakeFlowii{
		items: []flowii.Item{{ID: "item-1"}},
		docs: map[string][]flowii.Invoice{
			"item-1": {
				{TypeCode: flowii.TypeFaktura, SerialNumber: "FV2025009", IssueDate: "2025-04-01T00:00:00", TotalWithVat: 10, Outstanding: 10, State: "OPEN"},
			},
		},
	}
	sync := NewSyncService(svc, fake, quietLog())
	ctx := context.Background()
	if n, err := sync.Run(ctx); err != nil || n != 1 {
		t.Fatalf("first run: %d, %v", n, err)
	}
	if n, err := sync.Run(ctx); err != nil || n != 0 {
		t.Fatalf("second run must skip known serials: %d, %v", n, err)
	}
}

func TestSyncToleratesPartnerLookupFailure(t *testing.T) {
	fixedNow(t)
	svc := setupService(t)
	fake := &fakeFlowii{
		items: []flowii.Item{{ID: "item-1"}},
		docs: map[string][]flowii.Invoice{
			"item-1": {
				{TypeCode: flowii.TypeFaktura, SerialNumber: "FV2025010", IssueDate: "2025-04-02T00:00:00", TotalWithVat: 33, Outstanding: 33, State: "OPEN", PartnerID: "p-missing"},
			},
		},
		partnerErr: errors.New("flowii /api/v1/partners/p-missing: 500 Internal Server Error"),
	}
	sync := NewSyncService(svc, fake, quietLog())
	ctx := context.Background()
	n, err := sync.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 1 {
		t.Fatalf("synced = %d, want 1", n)
	}
	f, err := svc.Get(ctx, "FV2025010")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if f.Partner != "" {
		t.Errorf("partner must stay blank on lookup failure, got %q", f.Partner)
	}
	if f.CelkomSDPH != 33 || f.ZostavaUhradit != 33 {
		t.Errorf("amounts: %+v", f)
	}
}

func TestMapInvoiceOpenDocumentStaysUnpaid(t *testing.T) {
	doc := flowii.Invoice{
		TypeCode:     flowii.TypeFaktura,
		SerialNumber: "FV2025011",
		IssueDate:    "2025-04-03T00:00:00",
		PaymentDate:  "2025-04-05T00:00:00",
		TotalWithVat: 100,
		Outstanding:  40,
		State:        "OPEN",
	}
	f := mapInvoice(doc, nil)
	if f.DatumUhrady != "" {
		t.Errorf("partial payment date must not carry over, got %q", f.DatumUhrady)
	}
	if f.ZostavaUhradit != 40 {
		t.Errorf("outstanding = %v, want 40", f.ZostavaUhradit)
	}
	// state comparison is case-insensitive
	doc.State = "paid"
	if g := mapInvoice(doc, nil); g.DatumUhrady != "2025-04-05" || g.ZostavaUhradit != 0 || !g.Zaplatena() {
		t.Errorf("lowercase paid state: %+v", g)
	}
}
