package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"financeiro/internal/core"
)

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{150, "R$ 1,50"},
		{123456, "R$ 1.234,56"},
		{100000000, "R$ 1.000.000,00"},
		{-9950, "-R$ 99,50"},
	}
	for _, tc := range cases {
		if got := FormatBRL(core.Money{Cents: tc.cents}); got != tc.want {
			t.Errorf("FormatBRL(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestWriteSummaryXLSX(t *testing.T) {
	s := core.Summary{
		TotalIncome:  core.Money{Cents: 400000},
		TotalExpense: core.Money{Cents: 150000},
		Balance:      core.Money{Cents: 250000},
		ExpenseByCategory: []core.CategoryAmount{
			{Name: "Alimentação", Amount: core.Money{Cents: 150000}},
		},
		RecentExpenses: []core.TransactionView{{
			Description: "mercado",
			Amount:      core.Money{Cents: 150000},
			Date:        core.NewDate(2025, 3, 12),
			Category:    "Alimentação",
			Settled:     true,
		}},
	}

	var buf bytes.Buffer
	if err := WriteSummaryXLSX(&buf, s); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{summarySheet, incomeSheet, expenseSheet} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %s (idx %d, err %v)", sheet, idx, err)
		}
	}

	got, err := f.GetCellValue(summarySheet, "B3")
	if err != nil {
		t.Fatalf("read balance cell: %v", err)
	}
	if got != "R$ 2.500,00" {
		t.Fatalf("balance cell = %q", got)
	}

	desc, err := f.GetCellValue(expenseSheet, "B2")
	if err != nil {
		t.Fatalf("read expense cell: %v", err)
	}
	if desc != "mercado" {
		t.Fatalf("expense description = %q", desc)
	}
}
