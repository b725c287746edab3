// Package services holds the business logic between the HTTP handlers and
// the store: record lookup and numbering, CRUD, search, analytics and the
// Flowii sync.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fakturio/faktury-api/internal/codec"
	"github.com/fakturio/faktury-api/internal/dates"
	"github.com/fakturio/faktury-api/internal/models"
	"github.com/fakturio/faktury-api/internal/store"
)

var (
	// ErrNotFound means no row carries the requested invoice number.
	ErrNotFound = errors.New("faktura nenajdena")
	// ErrConflict means a row with the invoice number already exists.
	ErrConflict = errors.New("faktura uz existuje")
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// FakturyService implements invoice CRUD over the backing sheet.
type FakturyService struct {
	store store.Store
}

func NewFakturyService(st store.Store) *FakturyService {
	return &FakturyService{store: st}
}

// findRow scans the identifier column for the first exact match and returns
// the 1-indexed sheet row, or 0 when absent. Index 0 of colA is the header.
// With duplicate numbers (a broken invariant) only the earliest row is ever
// addressed.
func findRow(colA []string, cislo string) int {
	for i := 1; i < len(colA); i++ {
		if colA[i] == cislo {
			return i + 1
		}
	}
	return 0
}

// nextCislo computes the next sequential invoice number for a year:
// the highest numeric suffix among numbers starting with the year, plus one,
// zero-padded to three digits. 2025001 when the year has no invoices yet.
func nextCislo(colA []string, year int) string {
	prefix := strconv.Itoa(year)
	max := 0
	for i := 1; i < len(colA); i++ {
		c := colA[i]
		if !strings.HasPrefix(c, prefix) || len(c) <= 4 {
			continue
		}
		n, err := strconv.Atoi(c[4:])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}

// activeRecords decodes every row with a non-empty invoice number. The
// header row and rows without a number are skipped.
func (s *FakturyService) activeRecords(ctx context.Context) ([]models.Faktura, error) {
	rows, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Faktura, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		out = append(out, codec.Decode(row))
	}
	return out, nil
}

// List returns every active record.
func (s *FakturyService) List(ctx context.Context) ([]models.Faktura, error) {
	return s.activeRecords(ctx)
}

// Get returns the record with the given invoice number.
func (s *FakturyService) Get(ctx context.Context, cislo string) (models.Faktura, error) {
	colA, err := s.store.ReadColumnA(ctx)
	if err != nil {
		return models.Faktura{}, err
	}
	row := findRow(colA, cislo)
	if row == 0 {
		return models.Faktura{}, ErrNotFound
	}
	cells, err := s.store.ReadRow(ctx, row)
	if err != nil {
		return models.Faktura{}, err
	}
	if cells == nil {
		return models.Faktura{}, ErrNotFound
	}
	return codec.Decode(cells), nil
}

// Create appends a new record. When the body carries no invoice number the
// next sequential one is generated. Returns the number actually used.
// Number generation and the append are separate store calls, so two
// concurrent creates can collide on the same number.
func (s *FakturyService) Create(ctx context.Context, body map[string]any) (string, error) {
	colA, err := s.store.ReadColumnA(ctx)
	if err != nil {
		return "", err
	}
	cislo := cisloFrom(body)
	if cislo == "" {
		cislo = nextCislo(colA, timeNow().Year())
	}
	if findRow(colA, cislo) != 0 {
		return cislo, ErrConflict
	}
	row := codec.Encode(codec.FromMap(body, cislo))
	if err := s.store.Append(ctx, [][]any{row}); err != nil {
		return "", err
	}
	return cislo, nil
}

// Update merges the body over a fresh read of the record and rewrites the
// whole row. Fields present in the body win, even when empty; the invoice
// number never changes.
func (s *FakturyService) Update(ctx context.Context, cislo string, body map[string]any) error {
	colA, err := s.store.ReadColumnA(ctx)
	if err != nil {
		return err
	}
	row := findRow(colA, cislo)
	if row == 0 {
		return ErrNotFound
	}
	cells, err := s.store.ReadRow(ctx, row)
	if err != nil {
		return err
	}
	merged := codec.Merge(codec.Decode(cells), body, cislo)
	return s.store.UpdateRow(ctx, row, codec.Encode(merged))
}

// MarkPaid records a payment: payment date (today when not supplied),
// payment method ("bankový prevod" when not supplied) and zero outstanding.
// Returns the payment date written.
func (s *FakturyService) MarkPaid(ctx context.Context, cislo, datumUhrady, sposobUhrady string) (string, error) {
	colA, err := s.store.ReadColumnA(ctx)
	if err != nil {
		return "", err
	}
	row := findRow(colA, cislo)
	if row == 0 {
		return "", ErrNotFound
	}
	cells, err := s.store.ReadRow(ctx, row)
	if err != nil {
		return "", err
	}
	f := codec.Decode(cells)
	if datumUhrady == "" {
		datumUhrady = timeNow().Format(dates.Layout)
	}
	if sposobUhrady == "" {
		sposobUhrady = "bankový prevod"
	}
	f.DatumUhrady = datumUhrady
	f.SposobUhrady = sposobUhrady
	f.ZostavaUhradit = 0
	if err := s.store.UpdateRow(ctx, row, codec.Encode(f)); err != nil {
		return "", err
	}
	return datumUhrady, nil
}

// Delete physically removes the record's row. Every later row shifts up by
// one, so any row index obtained before the delete is stale afterwards.
func (s *FakturyService) Delete(ctx context.Context, cislo string) error {
	colA, err := s.store.ReadColumnA(ctx)
	if err != nil {
		return err
	}
	row := findRow(colA, cislo)
	if row == 0 {
		return ErrNotFound
	}
	return s.store.DeleteRow(ctx, row)
}

// SearchQuery are the optional list filters.
type SearchQuery struct {
	Partner   string // case-insensitive substring of the partner name
	DatumOd   string // inclusive lower bound on the issue date
	DatumDo   string // inclusive upper bound on the issue date
	Zaplatene *bool  // nil = no filter
}

// Search filters the active record set. Date bounds are compared on the
// normalized ISO form; records whose issue date cannot be normalized are
// excluded whenever a date bound is present.
func (s *FakturyService) Search(ctx context.Context, q SearchQuery) ([]models.Faktura, error) {
	all, err := s.activeRecords(ctx)
	if err != nil {
		return nil, err
	}
	od := normalizeBound(q.DatumOd)
	do := normalizeBound(q.DatumDo)

	out := make([]models.Faktura, 0, len(all))
	for _, f := range all {
		if q.Partner != "" && !strings.Contains(strings.ToLower(f.Partner), strings.ToLower(q.Partner)) {
			continue
		}
		if od != "" || do != "" {
			iso, ok := dates.Normalize(f.DatumVystavenia)
			if !ok {
				continue
			}
			if od != "" && iso < od {
				continue
			}
			if do != "" && iso > do {
				continue
			}
		}
		if q.Zaplatene != nil && f.Zaplatena() != *q.Zaplatene {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func normalizeBound(s string) string {
	if s == "" {
		return ""
	}
	if iso, ok := dates.Normalize(s); ok {
		return iso
	}
	return s
}

func cisloFrom(body map[string]any) string {
	switch v := body["cislo"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
