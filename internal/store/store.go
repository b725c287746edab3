// Package store defines the boundary to the backing sheet. The business
// logic only ever sees this interface; whether rows live in a Google
// spreadsheet or a database table is a deployment decision.
package store

import "context"

// Store is the tabular backend. Rows are 1-indexed and row 1 is the header.
// Individual calls are atomic on the backend but there is no transaction
// spanning calls; a read-modify-write sequence can race with another writer.
// Deleting a row physically shifts every later row up by one, so row indexes
// must never be cached across a delete.
type Store interface {
	// ReadAll returns every row including the header. Trailing empty cells
	// may be omitted; decoders must treat short rows as padded with "".
	ReadAll(ctx context.Context) ([][]string, error)

	// ReadColumnA returns the identifier column (column A) including the
	// header cell.
	ReadColumnA(ctx context.Context) ([]string, error)

	// ReadRow returns a single row by its 1-indexed position, or nil if the
	// row does not exist.
	ReadRow(ctx context.Context, row int) ([]string, error)

	// Append adds encoded rows after the last row.
	Append(ctx context.Context, rows [][]any) error

	// UpdateRow overwrites all cells of the addressed row.
	UpdateRow(ctx context.Context, row int, cells []any) error

	// DeleteRow physically removes the addressed row.
	DeleteRow(ctx context.Context, row int) error
}
