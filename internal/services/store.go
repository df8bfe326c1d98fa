package services

import (
	"context"

	"financeiro/internal/core"
)

// Store is the persistence contract the services run against. The
// SQLite repository implements it for real deployments; the memory
// store implements it for tests and the in-memory backend.
//
// Multi-record methods (CreateExpenses, UpdateExpenses, the group
// deletes) must be atomic: either every record is applied or none is.
// List methods return records ordered by date descending, newest id
// first, already narrowed by the filter.
type Store interface {
	CreateIncome(ctx context.Context, in core.Income) (int64, error)
	GetIncome(ctx context.Context, id int64) (core.Income, error)
	UpdateIncome(ctx context.Context, in core.Income) error
	DeleteIncome(ctx context.Context, id int64) error
	ListIncomes(ctx context.Context, f core.Filter) ([]core.Income, error)

	CreateExpenses(ctx context.Context, expenses []core.Expense) error
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	UpdateExpenses(ctx context.Context, expenses []core.Expense) error
	DeleteExpense(ctx context.Context, id int64) (int64, error)
	DeleteGroup(ctx context.Context, groupID string) (int64, error)
	DeleteGroupFrom(ctx context.Context, groupID string, fromNo int) (int64, error)
	ListGroup(ctx context.Context, groupID string) ([]core.Expense, error)
	ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error)
	CountExpensesByPaymentType(ctx context.Context, paymentTypeID int64) (int64, error)

	ListCategories(ctx context.Context) ([]core.Category, error)
	GetCategory(ctx context.Context, id int64) (core.Category, error)
	CreateCategory(ctx context.Context, c core.Category) (int64, error)
	DeleteCategory(ctx context.Context, id int64) error
	CountSubcategories(ctx context.Context, categoryID int64) (int64, error)
	ListSubcategories(ctx context.Context, categoryID int64) ([]core.Subcategory, error)
	CreateSubcategory(ctx context.Context, s core.Subcategory) (int64, error)
	DeleteSubcategory(ctx context.Context, id int64) error

	ListPaymentTypes(ctx context.Context, activeOnly bool) ([]core.PaymentType, error)
	GetPaymentType(ctx context.Context, id int64) (core.PaymentType, error)
	CreatePaymentType(ctx context.Context, p core.PaymentType) (int64, error)
	DeletePaymentType(ctx context.Context, id int64) error
	SetPaymentTypeActive(ctx context.Context, id int64, active bool) error
}
