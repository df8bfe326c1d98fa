package core

import "testing"

func TestBuildSummaryEmptyLedger(t *testing.T) {
	s := BuildSummary(nil, nil)
	if s.TotalIncome.Cents != 0 || s.TotalExpense.Cents != 0 || s.Balance.Cents != 0 {
		t.Fatalf("totals not zero: %+v", s)
	}
	if len(s.IncomeByCategory) != 0 || len(s.ExpenseByCategory) != 0 {
		t.Fatalf("breakdowns not empty: %+v", s)
	}
	if len(s.RecentIncomes) != 0 || len(s.RecentExpenses) != 0 {
		t.Fatalf("recent lists not empty: %+v", s)
	}
}

func TestBuildSummaryTotalsAndBreakdown(t *testing.T) {
	incomes := []Income{
		{ID: 1, Description: "salario", Actual: Money{Cents: 500000}, Date: NewDate(2025, 5, 5), Category: "Salário", Settled: true},
		{ID: 2, Description: "freela", Actual: Money{Cents: 80000}, Date: NewDate(2025, 5, 20), Category: "Extra", Settled: true},
	}
	expenses := []Expense{
		{ID: 1, Description: "mercado", Actual: Money{Cents: 45000}, Date: NewDate(2025, 5, 2), Category: "Alimentação"},
		{ID: 2, Description: "padaria", Actual: Money{Cents: 5000}, Date: NewDate(2025, 5, 3), Category: "Alimentação"},
		{ID: 3, Description: "ônibus", Actual: Money{Cents: 1000}, Date: NewDate(2025, 5, 4), Category: "Transporte"},
	}

	s := BuildSummary(incomes, expenses)

	if s.TotalIncome.Cents != 580000 {
		t.Fatalf("total income = %d", s.TotalIncome.Cents)
	}
	if s.TotalExpense.Cents != 51000 {
		t.Fatalf("total expense = %d", s.TotalExpense.Cents)
	}
	if s.Balance.Cents != 529000 {
		t.Fatalf("balance = %d", s.Balance.Cents)
	}

	// Breakdown sorted by name, untouched categories absent.
	if len(s.ExpenseByCategory) != 2 {
		t.Fatalf("expense categories = %+v", s.ExpenseByCategory)
	}
	if s.ExpenseByCategory[0].Name != "Alimentação" || s.ExpenseByCategory[0].Amount.Cents != 50000 {
		t.Fatalf("first expense category = %+v", s.ExpenseByCategory[0])
	}
	if s.ExpenseByCategory[1].Name != "Transporte" || s.ExpenseByCategory[1].Amount.Cents != 1000 {
		t.Fatalf("second expense category = %+v", s.ExpenseByCategory[1])
	}
}

func TestBuildSummaryRecentLists(t *testing.T) {
	var expenses []Expense
	for i := 1; i <= 8; i++ {
		expenses = append(expenses, Expense{
			ID:          int64(i),
			Description: "gasto",
			Actual:      Money{Cents: 100},
			Date:        NewDate(2025, 1, i),
			Category:    "Outros",
			Subcategory: "Diversos",
		})
	}

	s := BuildSummary(nil, expenses)
	if len(s.RecentExpenses) != RecentLimit {
		t.Fatalf("recent expenses = %d, want %d", len(s.RecentExpenses), RecentLimit)
	}
	// Most recent first: days 8,7,6,5,4.
	for i, want := range []int{8, 7, 6, 5, 4} {
		if s.RecentExpenses[i].Date.Day() != want {
			t.Fatalf("recent[%d] day = %d, want %d", i, s.RecentExpenses[i].Date.Day(), want)
		}
	}
	if s.RecentExpenses[0].Subcategory != "Diversos" {
		t.Fatalf("subcategory missing from projection: %+v", s.RecentExpenses[0])
	}
}

func TestFilterMatches(t *testing.T) {
	e := Expense{
		Description:   "cinema",
		Date:          NewDate(2025, 3, 10),
		Category:      "Lazer",
		Subcategory:   "Cinema",
		PaymentTypeID: 2,
		Settled:       true,
	}

	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"empty filter", Filter{}, true},
		{"category match", Filter{Category: "Lazer"}, true},
		{"category miss", Filter{Category: "Alimentação"}, false},
		{"subcategory match", Filter{Subcategory: "Cinema"}, true},
		{"subcategory miss", Filter{Subcategory: "Teatro"}, false},
		{"payment type match", Filter{PaymentTypeID: 2}, true},
		{"payment type miss", Filter{PaymentTypeID: 9}, false},
		{"inside range", Filter{DateFrom: NewDate(2025, 3, 1), DateTo: NewDate(2025, 3, 31)}, true},
		{"before range", Filter{DateFrom: NewDate(2025, 4, 1)}, false},
		{"after range", Filter{DateTo: NewDate(2025, 2, 28)}, false},
		{"settled filter", Filter{Status: StatusSettled}, true},
		{"pending filter", Filter{Status: StatusPending}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.MatchesExpense(e); got != tc.want {
				t.Fatalf("MatchesExpense = %v, want %v", got, tc.want)
			}
		})
	}

	// Subcategory and payment-type constraints do not apply to income.
	in := Income{Category: "Lazer", Date: NewDate(2025, 3, 10), Settled: true}
	f := Filter{Category: "Lazer", Subcategory: "Cinema", PaymentTypeID: 9}
	if !f.MatchesIncome(in) {
		t.Fatal("income should ignore subcategory and payment-type filters")
	}
}

func TestFilterValidate(t *testing.T) {
	if err := (Filter{Status: "banana"}).Validate(); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	for _, st := range []SettlementStatus{"", StatusAny, StatusSettled, StatusPending} {
		if err := (Filter{Status: st}).Validate(); err != nil {
			t.Fatalf("status %q rejected: %v", st, err)
		}
	}
}
