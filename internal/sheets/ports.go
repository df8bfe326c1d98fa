// Package sheets defines the outbound port for mirroring the ledger to
// an external spreadsheet. The google subpackage implements it against
// Google Sheets; the memory subpackage implements it for tests.
package sheets

import (
	"context"

	"financeiro/internal/core"
)

// Exporter replaces the spreadsheet view of one calendar month with the
// given records. Exports are idempotent: re-exporting the same month
// overwrites the previous snapshot.
type Exporter interface {
	ExportMonth(ctx context.Context, year, month int, incomes []core.Income, expenses []core.Expense) error
}
