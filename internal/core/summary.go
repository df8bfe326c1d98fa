package core

import "sort"

// RecentLimit is how many most-recent transactions of each kind a
// summary carries.
const RecentLimit = 5

// CategoryAmount is an amount aggregated under one category label.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// TransactionView is the projection of a ledger record exposed in the
// recent-transaction lists of a summary.
type TransactionView struct {
	Description string
	Amount      Money
	Date        Date
	Category    string
	Subcategory string
	Settled     bool
}

// Summary is the report payload consumed by the HTML/JSON/XLSX
// renderers. Amounts are sums of actual (realized) cents.
type Summary struct {
	TotalIncome       Money
	TotalExpense      Money
	Balance           Money
	IncomeByCategory  []CategoryAmount
	ExpenseByCategory []CategoryAmount
	RecentIncomes     []TransactionView
	RecentExpenses    []TransactionView
}

// BuildSummary computes the financial summary over already-filtered
// income and expense rows. Categories with no matching rows are simply
// absent from the breakdowns; the by-category slices are sorted by
// name so the payload is deterministic. An empty ledger produces zero
// totals and empty lists, not an error.
func BuildSummary(incomes []Income, expenses []Expense) Summary {
	var s Summary

	incomeByCat := make(map[string]int64)
	for _, in := range incomes {
		s.TotalIncome.Cents += in.Actual.Cents
		incomeByCat[in.Category] += in.Actual.Cents
	}

	expenseByCat := make(map[string]int64)
	for _, e := range expenses {
		s.TotalExpense.Cents += e.Actual.Cents
		expenseByCat[e.Category] += e.Actual.Cents
	}

	s.Balance.Cents = s.TotalIncome.Cents - s.TotalExpense.Cents
	s.IncomeByCategory = sortedCategories(incomeByCat)
	s.ExpenseByCategory = sortedCategories(expenseByCat)

	sort.SliceStable(incomes, func(a, b int) bool {
		if !incomes[a].Date.Equal(incomes[b].Date.Time) {
			return incomes[a].Date.After(incomes[b].Date)
		}
		return incomes[a].ID > incomes[b].ID
	})
	for _, in := range incomes {
		if len(s.RecentIncomes) == RecentLimit {
			break
		}
		s.RecentIncomes = append(s.RecentIncomes, TransactionView{
			Description: in.Description,
			Amount:      in.Actual,
			Date:        in.Date,
			Category:    in.Category,
			Settled:     in.Settled,
		})
	}

	sort.SliceStable(expenses, func(a, b int) bool {
		if !expenses[a].Date.Equal(expenses[b].Date.Time) {
			return expenses[a].Date.After(expenses[b].Date)
		}
		return expenses[a].ID > expenses[b].ID
	})
	for _, e := range expenses {
		if len(s.RecentExpenses) == RecentLimit {
			break
		}
		s.RecentExpenses = append(s.RecentExpenses, TransactionView{
			Description: e.Description,
			Amount:      e.Actual,
			Date:        e.Date,
			Category:    e.Category,
			Subcategory: e.Subcategory,
			Settled:     e.Settled,
		})
	}

	return s
}

func sortedCategories(byCat map[string]int64) []CategoryAmount {
	if len(byCat) == 0 {
		return nil
	}
	out := make([]CategoryAmount, 0, len(byCat))
	for name, cents := range byCat {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}
