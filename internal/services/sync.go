package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fakturio/faktury-api/internal/codec"
	"github.com/fakturio/faktury-api/internal/dates"
	"github.com/fakturio/faktury-api/internal/flowii"
	"github.com/fakturio/faktury-api/internal/models"
)

// FlowiiAPI is the slice of the Flowii client the sync needs.
// *flowii.Client satisfies it; tests inject a fake.
type FlowiiAPI interface {
	ListItems(ctx context.Context, createdFrom string) ([]flowii.Item, error)
	InvoiceDocuments(ctx context.Context, itemID string) ([]flowii.Invoice, error)
	GetPartner(ctx context.Context, partnerID string) (*flowii.Partner, error)
}

// SyncService pulls invoices from Flowii into the sheet. The pull is
// incremental (items created at or after the most recent known issue date)
// and append-only; rows appended before a mid-run failure stay committed.
type SyncService struct {
	faktury *FakturyService
	client  FlowiiAPI
	log     *logrus.Logger
}

func NewSyncService(f *FakturyService, client FlowiiAPI, log *logrus.Logger) *SyncService {
	return &SyncService{faktury: f, client: client, log: log}
}

// Run performs one sync pass and returns how many invoices were appended.
func (s *SyncService) Run(ctx context.Context) (int, error) {
	existing, since, err := s.knownState(ctx)
	if err != nil {
		return 0, err
	}
	items, err := s.client.ListItems(ctx, since)
	if err != nil {
		return 0, err
	}
	s.log.WithFields(logrus.Fields{"items": len(items), "since": since}).Info("flowii sync started")

	synced := 0
	for _, item := range items {
		docs, err := s.client.InvoiceDocuments(ctx, item.ID)
		if err != nil {
			return synced, err
		}
		var batch [][]any
		for _, doc := range docs {
			if doc.TypeCode != flowii.TypeFaktura || doc.SerialNumber == "" {
				continue
			}
			if existing[doc.SerialNumber] {
				continue
			}
			var partner *flowii.Partner
			if doc.PartnerID != "" {
				partner, err = s.client.GetPartner(ctx, doc.PartnerID)
				if err != nil {
					// The row is still worth having without address data.
					s.log.WithError(err).WithField("partner_id", doc.PartnerID).Warn("partner lookup failed")
					partner = nil
				}
			}
			batch = append(batch, codec.Encode(mapInvoice(doc, partner)))
			existing[doc.SerialNumber] = true
		}
		if len(batch) == 0 {
			continue
		}
		if err := s.faktury.store.Append(ctx, batch); err != nil {
			return synced, err
		}
		synced += len(batch)
	}
	s.log.WithField("synced", synced).Info("flowii sync finished")
	return synced, nil
}

// knownState returns the set of invoice numbers already in the sheet and
// the most recent normalized issue date, used as the incremental cutoff.
func (s *SyncService) knownState(ctx context.Context) (map[string]bool, string, error) {
	all, err := s.faktury.List(ctx)
	if err != nil {
		return nil, "", err
	}
	existing := make(map[string]bool, len(all))
	since := ""
	for _, f := range all {
		existing[f.Cislo] = true
		if iso, ok := dates.Normalize(f.DatumVystavenia); ok && iso > since {
			since = iso
		}
	}
	return existing, since, nil
}

// mapInvoice converts a Flowii invoice document (plus optionally its
// resolved partner) into a record. Dates keep only their date portion.
// The payment date is carried over only when Flowii reports the document
// as settled; an open document must stay unpaid on our side even if a
// partial payment date exists.
func mapInvoice(doc flowii.Invoice, partner *flowii.Partner) models.Faktura {
	f := models.Faktura{
		Cislo:           doc.SerialNumber,
		DatumVystavenia: datePart(doc.IssueDate),
		DatumDodania:    datePart(doc.DeliveryDate),
		DatumSplatnosti: datePart(doc.DueDate),
		CelkomSDPH:      doc.TotalWithVat,
		CelkomBezDPH:    doc.TotalNoVat,
		ZostavaUhradit:  doc.Outstanding,
	}
	if doc.Paid() {
		f.DatumUhrady = datePart(doc.PaymentDate)
		f.ZostavaUhradit = 0
	}
	if partner != nil {
		f.Partner = partner.Name
		f.Ulica = partner.Street
		f.PSC = partner.Zip
		f.Mesto = partner.City
		f.KodKrajiny = partner.CountryCode
		f.Krajina = partner.Country
		f.ICO = partner.ICO
		f.DIC = partner.DIC
		f.ICDPH = partner.ICDPH
	}
	return f
}

// datePart drops the time portion of a Flowii timestamp.
func datePart(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}
