// Package memory records spreadsheet exports in memory for tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"financeiro/internal/core"
)

type Export struct {
	Year     int
	Month    int
	Incomes  []core.Income
	Expenses []core.Expense
}

type Exporter struct {
	mu      sync.Mutex
	exports map[string]Export
	order   []string
}

func NewExporter() *Exporter {
	return &Exporter{exports: make(map[string]Export)}
}

func (e *Exporter) ExportMonth(_ context.Context, year, month int, incomes []core.Income, expenses []core.Expense) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := fmt.Sprintf("%04d-%02d", year, month)
	if _, seen := e.exports[key]; !seen {
		e.order = append(e.order, key)
	}
	e.exports[key] = Export{Year: year, Month: month, Incomes: incomes, Expenses: expenses}
	return nil
}

// Exported returns the latest snapshot for a month and whether one
// exists.
func (e *Exporter) Exported(year, month int) (Export, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ex, ok := e.exports[fmt.Sprintf("%04d-%02d", year, month)]
	return ex, ok
}

// Months lists the exported months in first-export order.
func (e *Exporter) Months() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}
