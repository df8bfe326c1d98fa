// Package storage persists the ledger in SQLite.
//
// All multi-record mutations (installment creation, cascading group
// deletes, group-wide updates) run inside a single transaction so a
// purchase group is never partially visible.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"financeiro/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- incomes ---

const incomeColumns = "id, description, planned_cents, actual_cents, date, category, settled"

func (r *SQLiteRepository) CreateIncome(ctx context.Context, in core.Income) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO incomes (description, planned_cents, actual_cents, date, category, settled)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.Description, in.Planned.Cents, in.Actual.Cents, in.Date.String(), in.Category, boolToInt(in.Settled))
	if err != nil {
		return 0, fmt.Errorf("insert income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("income insert id: %w", err)
	}

	slog.InfoContext(ctx, "Income saved",
		"id", id,
		"description", in.Description,
		"planned_cents", in.Planned.Cents)
	return id, nil
}

func (r *SQLiteRepository) GetIncome(ctx context.Context, id int64) (core.Income, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+incomeColumns+" FROM incomes WHERE id = ?", id)
	in, err := scanIncome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Income{}, core.ErrNotFound
	}
	if err != nil {
		return core.Income{}, fmt.Errorf("get income %d: %w", id, err)
	}
	return in, nil
}

func (r *SQLiteRepository) UpdateIncome(ctx context.Context, in core.Income) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE incomes SET description = ?, planned_cents = ?, actual_cents = ?, date = ?, category = ?, settled = ?
		 WHERE id = ?`,
		in.Description, in.Planned.Cents, in.Actual.Cents, in.Date.String(), in.Category, boolToInt(in.Settled), in.ID)
	if err != nil {
		return fmt.Errorf("update income %d: %w", in.ID, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteIncome(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM incomes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete income %d: %w", id, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListIncomes(ctx context.Context, f core.Filter) ([]core.Income, error) {
	where, args := incomeWhere(f)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+incomeColumns+" FROM incomes"+where+" ORDER BY date DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	var out []core.Income
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// --- expenses ---

const expenseColumns = "id, description, planned_cents, actual_cents, date, category, subcategory, payment_type_id, installments, installment_no, purchase_group_id, settled"

// CreateExpenses persists all records of one purchase atomically. If
// any insert fails the transaction rolls back and no partial group
// remains.
func (r *SQLiteRepository) CreateExpenses(ctx context.Context, expenses []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin expense insert: %w", err)
	}
	defer tx.Rollback()

	for _, e := range expenses {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (description, planned_cents, actual_cents, date, category, subcategory,
			                       payment_type_id, installments, installment_no, purchase_group_id, settled)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.Description, e.Planned.Cents, e.Actual.Cents, e.Date.String(), e.Category, e.Subcategory,
			nullableID(e.PaymentTypeID), e.Installments, e.InstallmentNo, nullableString(e.GroupID), boolToInt(e.Settled))
		if err != nil {
			return fmt.Errorf("insert expense %q: %w", e.Description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit expense insert: %w", err)
	}

	slog.InfoContext(ctx, "Expenses saved", "count", len(expenses))
	return nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

// UpdateExpenses applies settlement/amount changes to a set of records
// in one transaction (one record for single updates, the whole group
// for group updates).
func (r *SQLiteRepository) UpdateExpenses(ctx context.Context, expenses []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin expense update: %w", err)
	}
	defer tx.Rollback()

	for _, e := range expenses {
		res, err := tx.ExecContext(ctx,
			"UPDATE expenses SET actual_cents = ?, settled = ? WHERE id = ?",
			e.Actual.Cents, boolToInt(e.Settled), e.ID)
		if err != nil {
			return fmt.Errorf("update expense %d: %w", e.ID, err)
		}
		if err := requireRow(res); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit expense update: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete expense %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return 0, core.ErrNotFound
	}
	return n, nil
}

func (r *SQLiteRepository) DeleteGroup(ctx context.Context, groupID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE purchase_group_id = ?", groupID)
	if err != nil {
		return 0, fmt.Errorf("delete group %s: %w", groupID, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// DeleteGroupFrom removes every installment of the group with an
// installment number >= fromNo.
func (r *SQLiteRepository) DeleteGroupFrom(ctx context.Context, groupID string, fromNo int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE purchase_group_id = ? AND installment_no >= ?", groupID, fromNo)
	if err != nil {
		return 0, fmt.Errorf("delete group %s from %d: %w", groupID, fromNo, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *SQLiteRepository) ListGroup(ctx context.Context, groupID string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE purchase_group_id = ? ORDER BY installment_no", groupID)
	if err != nil {
		return nil, fmt.Errorf("list group %s: %w", groupID, err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	where, args := expenseWhere(f)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses"+where+" ORDER BY date DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *SQLiteRepository) CountExpensesByPaymentType(ctx context.Context, paymentTypeID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM expenses WHERE payment_type_id = ?", paymentTypeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count expenses by payment type %d: %w", paymentTypeID, err)
	}
	return n, nil
}

// --- filters and scanning ---

func incomeWhere(f core.Filter) (string, []any) {
	var conds []string
	var args []any
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	conds, args = appendCommonFilters(conds, args, f)
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func expenseWhere(f core.Filter) (string, []any) {
	var conds []string
	var args []any
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Subcategory != "" {
		conds = append(conds, "subcategory = ?")
		args = append(args, f.Subcategory)
	}
	if f.PaymentTypeID != 0 {
		conds = append(conds, "payment_type_id = ?")
		args = append(args, f.PaymentTypeID)
	}
	conds, args = appendCommonFilters(conds, args, f)
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func appendCommonFilters(conds []string, args []any, f core.Filter) ([]string, []any) {
	if !f.DateFrom.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, f.DateFrom.String())
	}
	if !f.DateTo.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, f.DateTo.String())
	}
	switch f.Status {
	case core.StatusSettled:
		conds = append(conds, "settled = 1")
	case core.StatusPending:
		conds = append(conds, "settled = 0")
	}
	return conds, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncome(row rowScanner) (core.Income, error) {
	var in core.Income
	var date string
	var settled int
	if err := row.Scan(&in.ID, &in.Description, &in.Planned.Cents, &in.Actual.Cents, &date, &in.Category, &settled); err != nil {
		return core.Income{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Income{}, fmt.Errorf("stored income date %q: %w", date, err)
	}
	in.Date = d
	in.Settled = settled != 0
	return in, nil
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	var date string
	var settled int
	var paymentType sql.NullInt64
	var groupID sql.NullString
	err := row.Scan(&e.ID, &e.Description, &e.Planned.Cents, &e.Actual.Cents, &date, &e.Category,
		&e.Subcategory, &paymentType, &e.Installments, &e.InstallmentNo, &groupID, &settled)
	if err != nil {
		return core.Expense{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored expense date %q: %w", date, err)
	}
	e.Date = d
	e.Settled = settled != 0
	e.PaymentTypeID = paymentType.Int64
	e.GroupID = groupID.String
	return e, nil
}

func collectExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
