package worker

import (
	"context"
	"testing"

	"financeiro/internal/amqp"
	"financeiro/internal/core"
	sheetsmem "financeiro/internal/sheets/memory"
	storemem "financeiro/internal/storage/memory"
)

func seedMonth(t *testing.T, store *storemem.Store, year, month int) {
	t.Helper()
	ctx := context.Background()

	_, err := store.CreateIncome(ctx, core.Income{
		Description: "salário",
		Planned:     core.Money{Cents: 400000},
		Actual:      core.Money{Cents: 400000},
		Date:        core.NewDate(year, month, 5),
		Category:    "Salário",
		Settled:     true,
	})
	if err != nil {
		t.Fatalf("seed income: %v", err)
	}
	err = store.CreateExpenses(ctx, []core.Expense{{
		Description:   "mercado",
		Planned:       core.Money{Cents: 35000},
		Date:          core.NewDate(year, month, 12),
		Category:      "Alimentação",
		Installments:  1,
		InstallmentNo: 1,
	}})
	if err != nil {
		t.Fatalf("seed expense: %v", err)
	}
}

func TestExportMonthScopesToMonth(t *testing.T) {
	store := storemem.NewStore()
	exporter := sheetsmem.NewExporter()
	seedMonth(t, store, 2025, 3)
	seedMonth(t, store, 2025, 4)

	w := NewExportWorker(store, exporter, 0)
	if err := w.ExportMonth(context.Background(), 2025, 3); err != nil {
		t.Fatalf("export: %v", err)
	}

	ex, ok := exporter.Exported(2025, 3)
	if !ok {
		t.Fatal("no export recorded")
	}
	if len(ex.Incomes) != 1 || len(ex.Expenses) != 1 {
		t.Fatalf("export carried %d incomes, %d expenses", len(ex.Incomes), len(ex.Expenses))
	}
	if ex.Expenses[0].Date.Month() != 3 {
		t.Fatalf("foreign month leaked into export: %s", ex.Expenses[0].Date)
	}
	if _, ok := exporter.Exported(2025, 4); ok {
		t.Fatal("unrequested month exported")
	}
}

func TestHandleEvent(t *testing.T) {
	store := storemem.NewStore()
	exporter := sheetsmem.NewExporter()
	seedMonth(t, store, 2025, 6)

	w := NewExportWorker(store, exporter, 0)
	event := amqp.NewLedgerEvent(amqp.EventExpenseCreated, 2025, 6)
	if err := w.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if _, ok := exporter.Exported(2025, 6); !ok {
		t.Fatal("event did not trigger export")
	}

	// Events without a usable month are dropped, not retried forever.
	bad := amqp.NewLedgerEvent(amqp.EventExpenseDeleted, 0, 0)
	if err := w.HandleEvent(context.Background(), bad); err != nil {
		t.Fatalf("bad event should be dropped, got %v", err)
	}
	if got := exporter.Months(); len(got) != 1 {
		t.Fatalf("exports = %v", got)
	}
}
