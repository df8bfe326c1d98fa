// Package worker keeps the spreadsheet mirror of the ledger current.
// It re-exports a month whenever a ledger change event arrives over
// AMQP, and re-exports the current month on a periodic tick as a
// backstop for missed events.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"financeiro/internal/amqp"
	"financeiro/internal/core"
	"financeiro/internal/sheets"
)

// Ledger is the slice of the store the worker reads from.
type Ledger interface {
	ListIncomes(ctx context.Context, f core.Filter) ([]core.Income, error)
	ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error)
}

type ExportWorker struct {
	ledger   Ledger
	exporter sheets.Exporter
	interval time.Duration
}

func NewExportWorker(ledger Ledger, exporter sheets.Exporter, interval time.Duration) *ExportWorker {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &ExportWorker{
		ledger:   ledger,
		exporter: exporter,
		interval: interval,
	}
}

// ExportMonth snapshots one calendar month of the ledger into the
// spreadsheet.
func (w *ExportWorker) ExportMonth(ctx context.Context, year, month int) error {
	from := core.NewDate(year, month, 1)
	// Day zero of the next month is the last day of this one.
	to := core.Date{Time: time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)}
	f := core.Filter{DateFrom: from, DateTo: to}

	incomes, err := w.ledger.ListIncomes(ctx, f)
	if err != nil {
		return fmt.Errorf("list incomes for %04d-%02d: %w", year, month, err)
	}
	expenses, err := w.ledger.ListExpenses(ctx, f)
	if err != nil {
		return fmt.Errorf("list expenses for %04d-%02d: %w", year, month, err)
	}

	if err := w.exporter.ExportMonth(ctx, year, month, incomes, expenses); err != nil {
		return fmt.Errorf("export %04d-%02d: %w", year, month, err)
	}
	return nil
}

// HandleEvent exports the month a ledger event touched.
func (w *ExportWorker) HandleEvent(ctx context.Context, event amqp.LedgerEvent) error {
	if event.Year == 0 || event.Month < 1 || event.Month > 12 {
		slog.WarnContext(ctx, "Dropping event with unusable month",
			"kind", event.Kind, "year", event.Year, "month", event.Month)
		return nil
	}
	return w.ExportMonth(ctx, event.Year, event.Month)
}

// Run consumes ledger events and ticks the current month until ctx is
// cancelled.
func (w *ExportWorker) Run(ctx context.Context, client *amqp.Client) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return client.ConsumeLedgerEvents(ctx, func(event amqp.LedgerEvent) error {
			return w.HandleEvent(ctx, event)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				now := time.Now()
				if err := w.ExportMonth(ctx, now.Year(), int(now.Month())); err != nil {
					slog.ErrorContext(ctx, "Periodic export failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}
