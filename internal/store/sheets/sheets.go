// Package sheets backs the store with a Google spreadsheet via the
// Sheets v4 API.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/fakturio/faktury-api/internal/schema"
	"github.com/fakturio/faktury-api/internal/store"
)

// Config carries everything needed to open the spreadsheet.
type Config struct {
	SpreadsheetID   string
	SheetName       string // tab name, default "Data"
	SheetID         int64  // numeric sheet id used by DeleteDimension
	CredentialsJSON []byte // service account key
}

type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
	sheetName     string
	sheetID       int64
}

var _ store.Store = (*Client)(nil)

// New builds a Sheets-backed store from service account credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if len(cfg.CredentialsJSON) == 0 {
		return nil, errors.New("google credentials not configured")
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Data"
	}
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsJSON(cfg.CredentialsJSON),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		sheetID:       cfg.SheetID,
	}, nil
}

// lastCol is the A1 letter of the final schema column ("AW" for 49 columns).
var lastCol = colLetter(schema.FieldCount() - 1)

// colLetter converts a 0-based column index to its A1 letter form.
func colLetter(i int) string {
	s := ""
	for i >= 0 {
		s = string(rune('A'+i%26)) + s
		i = i/26 - 1
	}
	return s
}

func (c *Client) rangeAll() string {
	return fmt.Sprintf("%s!A:%s", c.sheetName, lastCol)
}

func (c *Client) rangeRow(row int) string {
	return fmt.Sprintf("%s!A%d:%s%d", c.sheetName, row, lastCol, row)
}

func toStrings(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func (c *Client) ReadAll(ctx context.Context) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.rangeAll()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.rangeAll(), err)
	}
	rows := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		rows[i] = toStrings(r)
	}
	return rows, nil
}

func (c *Client) ReadColumnA(ctx context.Context) ([]string, error) {
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([]string, len(resp.Values))
	for i, r := range resp.Values {
		if len(r) > 0 {
			out[i] = fmt.Sprint(r[0])
		}
	}
	return out, nil
}

func (c *Client) ReadRow(ctx context.Context, row int) ([]string, error) {
	rng := c.rangeRow(row)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	return toStrings(resp.Values[0]), nil
}

func (c *Client) Append(ctx context.Context, rows [][]any) error {
	vr := &gsheets.ValueRange{Values: rows}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.rangeAll(), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", c.rangeAll(), err)
	}
	return nil
}

func (c *Client) UpdateRow(ctx context.Context, row int, cells []any) error {
	rng := c.rangeRow(row)
	vr := &gsheets.ValueRange{Values: [][]any{cells}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (c *Client) DeleteRow(ctx context.Context, row int) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:    c.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d: %w", row, err)
	}
	return nil
}
