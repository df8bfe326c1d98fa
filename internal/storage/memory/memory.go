// Package memory is an in-memory ledger store with the same contract
// as the SQLite repository. It backs tests and the "memory" data
// backend for running the server without a database file.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"financeiro/internal/core"
)

type Store struct {
	mu sync.Mutex

	nextIncomeID      int64
	nextExpenseID     int64
	nextCategoryID    int64
	nextSubcategoryID int64
	nextPaymentID     int64

	incomes       []core.Income
	expenses      []core.Expense
	categories    []core.Category
	subcategories []core.Subcategory
	paymentTypes  []core.PaymentType
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Close() error { return nil }

// --- incomes ---

func (s *Store) CreateIncome(_ context.Context, in core.Income) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextIncomeID++
	in.ID = s.nextIncomeID
	s.incomes = append(s.incomes, in)
	return in.ID, nil
}

func (s *Store) GetIncome(_ context.Context, id int64) (core.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, in := range s.incomes {
		if in.ID == id {
			return in, nil
		}
	}
	return core.Income{}, core.ErrNotFound
}

func (s *Store) UpdateIncome(_ context.Context, in core.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.incomes {
		if s.incomes[i].ID == in.ID {
			s.incomes[i] = in
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteIncome(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.incomes {
		if s.incomes[i].ID == id {
			s.incomes = append(s.incomes[:i], s.incomes[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) ListIncomes(_ context.Context, f core.Filter) ([]core.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Income
	for _, in := range s.incomes {
		if f.MatchesIncome(in) {
			out = append(out, in)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].Date.Equal(out[b].Date.Time) {
			return out[a].Date.After(out[b].Date)
		}
		return out[a].ID > out[b].ID
	})
	return out, nil
}

// --- expenses ---

func (s *Store) CreateExpenses(_ context.Context, expenses []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range expenses {
		s.nextExpenseID++
		e.ID = s.nextExpenseID
		s.expenses = append(s.expenses, e)
	}
	return nil
}

func (s *Store) GetExpense(_ context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, core.ErrNotFound
}

func (s *Store) UpdateExpenses(_ context.Context, expenses []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range expenses {
		found := false
		for i := range s.expenses {
			if s.expenses[i].ID == e.ID {
				s.expenses[i] = e
				found = true
				break
			}
		}
		if !found {
			return core.ErrNotFound
		}
	}
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return 1, nil
		}
	}
	return 0, core.ErrNotFound
}

func (s *Store) DeleteGroup(_ context.Context, groupID string) (int64, error) {
	return s.deleteGroupWhere(groupID, func(core.Expense) bool { return true })
}

func (s *Store) DeleteGroupFrom(_ context.Context, groupID string, fromNo int) (int64, error) {
	return s.deleteGroupWhere(groupID, func(e core.Expense) bool { return e.InstallmentNo >= fromNo })
}

func (s *Store) deleteGroupWhere(groupID string, match func(core.Expense) bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []core.Expense
	var removed int64
	for _, e := range s.expenses {
		if e.GroupID == groupID && match(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.expenses = kept
	return removed, nil
}

func (s *Store) ListGroup(_ context.Context, groupID string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.expenses {
		if e.GroupID == groupID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].InstallmentNo < out[b].InstallmentNo })
	return out, nil
}

func (s *Store) ListExpenses(_ context.Context, f core.Filter) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.expenses {
		if f.MatchesExpense(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].Date.Equal(out[b].Date.Time) {
			return out[a].Date.After(out[b].Date)
		}
		return out[a].ID > out[b].ID
	})
	return out, nil
}

func (s *Store) CountExpensesByPaymentType(_ context.Context, paymentTypeID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, e := range s.expenses {
		if e.PaymentTypeID == paymentTypeID {
			n++
		}
	}
	return n, nil
}

// --- reference data ---

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Category, len(s.categories))
	copy(out, s.categories)
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return core.Category{}, core.ErrNotFound
}

func (s *Store) CreateCategory(_ context.Context, c core.Category) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return 0, fmt.Errorf("category %q already exists", c.Name)
		}
	}
	s.nextCategoryID++
	c.ID = s.nextCategoryID
	s.categories = append(s.categories, c)
	return c.ID, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) CountSubcategories(_ context.Context, categoryID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, sc := range s.subcategories {
		if sc.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListSubcategories(_ context.Context, categoryID int64) ([]core.Subcategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Subcategory
	for _, sc := range s.subcategories {
		if sc.CategoryID == categoryID {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (s *Store) CreateSubcategory(_ context.Context, sc core.Subcategory) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubcategoryID++
	sc.ID = s.nextSubcategoryID
	s.subcategories = append(s.subcategories, sc)
	return sc.ID, nil
}

func (s *Store) DeleteSubcategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subcategories {
		if s.subcategories[i].ID == id {
			s.subcategories = append(s.subcategories[:i], s.subcategories[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) ListPaymentTypes(_ context.Context, activeOnly bool) ([]core.PaymentType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.PaymentType
	for _, p := range s.paymentTypes {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (s *Store) GetPaymentType(_ context.Context, id int64) (core.PaymentType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.paymentTypes {
		if p.ID == id {
			return p, nil
		}
	}
	return core.PaymentType{}, core.ErrNotFound
}

func (s *Store) CreatePaymentType(_ context.Context, p core.PaymentType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPaymentID++
	p.ID = s.nextPaymentID
	s.paymentTypes = append(s.paymentTypes, p)
	return p.ID, nil
}

func (s *Store) DeletePaymentType(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.paymentTypes {
		if s.paymentTypes[i].ID == id {
			s.paymentTypes = append(s.paymentTypes[:i], s.paymentTypes[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) SetPaymentTypeActive(_ context.Context, id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.paymentTypes {
		if s.paymentTypes[i].ID == id {
			s.paymentTypes[i].Active = active
			return nil
		}
	}
	return core.ErrNotFound
}
