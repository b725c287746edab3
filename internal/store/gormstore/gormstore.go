// Package gormstore backs the store with a database table instead of a
// spreadsheet. One record per physical row, cells serialized as a JSON
// array, ordered by the autoincrement id so that append/delete keep the
// same positional semantics as the sheet.
package gormstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fakturio/faktury-api/internal/codec"
	"github.com/fakturio/faktury-api/internal/schema"
	"github.com/fakturio/faktury-api/internal/store"
)

// SheetRow is one physical row of the table, header included.
type SheetRow struct {
	ID    uint   `gorm:"primaryKey"`
	Cells string // JSON array of cell strings
}

func (SheetRow) TableName() string { return "sheet_rows" }

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects to the database named by dsn and makes sure the table and
// header row exist. A postgres:// URL or key=value DSN selects Postgres,
// anything else is treated as a sqlite file path ("faktury.db" when empty).
func Open(dsn string) (*Store, error) {
	var dialector gorm.Dialector
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"), strings.Contains(lower, "host="):
		dialector = postgres.Open(dsn)
	case dsn == "":
		dialector = sqlite.Open("faktury.db")
	default:
		dialector = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return New(db)
}

// New wraps an existing gorm connection. Used directly by tests.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&SheetRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s := &Store{db: db}
	var count int64
	if err := db.Model(&SheetRow{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		header := schema.HeaderRow()
		cells := make([]any, len(header))
		for i, h := range header {
			cells[i] = h
		}
		if err := s.Append(context.Background(), [][]any{cells}); err != nil {
			return nil, fmt.Errorf("seed header: %w", err)
		}
	}
	return s, nil
}

func encodeCells(cells []any) (string, error) {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = codec.CellString(c)
	}
	b, err := json.Marshal(out)
	return string(b), err
}

func decodeCells(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func (s *Store) ReadAll(ctx context.Context) ([][]string, error) {
	var rows []SheetRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = decodeCells(r.Cells)
	}
	return out, nil
}

func (s *Store) ReadColumnA(ctx context.Context) ([]string, error) {
	all, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(all))
	for i, r := range all {
		if len(r) > 0 {
			out[i] = r[0]
		}
	}
	return out, nil
}

// nth resolves the 1-indexed physical position to the stored row.
func (s *Store) nth(ctx context.Context, row int) (*SheetRow, error) {
	if row < 1 {
		return nil, nil
	}
	var rows []SheetRow
	err := s.db.WithContext(ctx).Order("id").Offset(row - 1).Limit(1).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *Store) ReadRow(ctx context.Context, row int) ([]string, error) {
	r, err := s.nth(ctx, row)
	if err != nil || r == nil {
		return nil, err
	}
	return decodeCells(r.Cells), nil
}

func (s *Store) Append(ctx context.Context, rows [][]any) error {
	for _, cells := range rows {
		raw, err := encodeCells(cells)
		if err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Create(&SheetRow{Cells: raw}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) UpdateRow(ctx context.Context, row int, cells []any) error {
	r, err := s.nth(ctx, row)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("row %d does not exist", row)
	}
	raw, err := encodeCells(cells)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(r).Update("cells", raw).Error
}

func (s *Store) DeleteRow(ctx context.Context, row int) error {
	r, err := s.nth(ctx, row)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("row %d does not exist", row)
	}
	return s.db.WithContext(ctx).Delete(r).Error
}
