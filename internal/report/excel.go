package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"financeiro/internal/core"
)

const (
	summarySheet = "Resumo"
	incomeSheet  = "Receitas"
	expenseSheet = "Despesas"
)

// WriteSummaryXLSX writes the summary as a three-sheet workbook:
// totals plus per-category breakdowns, recent incomes, recent expenses.
func WriteSummaryXLSX(w io.Writer, s core.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	rows := [][]any{
		{"Receitas", FormatBRL(s.TotalIncome)},
		{"Despesas", FormatBRL(s.TotalExpense)},
		{"Saldo", FormatBRL(s.Balance)},
		{},
		{"Receitas por categoria"},
	}
	for _, c := range s.IncomeByCategory {
		rows = append(rows, []any{c.Name, FormatBRL(c.Amount)})
	}
	rows = append(rows, []any{}, []any{"Despesas por categoria"})
	for _, c := range s.ExpenseByCategory {
		rows = append(rows, []any{c.Name, FormatBRL(c.Amount)})
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}

	if err := writeTransactions(f, incomeSheet, s.RecentIncomes, false); err != nil {
		return err
	}
	if err := writeTransactions(f, expenseSheet, s.RecentExpenses, true); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTransactions(f *excelize.File, sheet string, txs []core.TransactionView, withSubcategory bool) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	header := []any{"Data", "Descrição", "Categoria", "Valor", "Efetivado"}
	if withSubcategory {
		header = []any{"Data", "Descrição", "Categoria", "Subcategoria", "Valor", "Efetivado"}
	}
	rows := [][]any{header}
	for _, tx := range txs {
		row := []any{tx.Date.FormatBR(), tx.Description, tx.Category}
		if withSubcategory {
			row = append(row, tx.Subcategory)
		}
		row = append(row, FormatBRL(tx.Amount), settledLabel(tx.Settled))
		rows = append(rows, row)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func settledLabel(settled bool) string {
	if settled {
		return "Sim"
	}
	return "Não"
}
