package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"financeiro/internal/core"
)

// Reference data: categories, subcategories and payment types.

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM categories WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (name, description) VALUES (?, ?)", c.Name, c.Description)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) CountSubcategories(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subcategories WHERE category_id = ?", categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count subcategories of %d: %w", categoryID, err)
	}
	return n, nil
}

func (r *SQLiteRepository) ListSubcategories(ctx context.Context, categoryID int64) ([]core.Subcategory, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, category_id FROM subcategories WHERE category_id = ? ORDER BY name", categoryID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories of %d: %w", categoryID, err)
	}
	defer rows.Close()

	var out []core.Subcategory
	for rows.Next() {
		var s core.Subcategory
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CategoryID); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateSubcategory(ctx context.Context, s core.Subcategory) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO subcategories (name, description, category_id) VALUES (?, ?, ?)",
		s.Name, s.Description, s.CategoryID)
	if err != nil {
		return 0, fmt.Errorf("insert subcategory: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) DeleteSubcategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM subcategories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete subcategory %d: %w", id, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListPaymentTypes(ctx context.Context, activeOnly bool) ([]core.PaymentType, error) {
	query := "SELECT id, name, description, active FROM payment_types"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payment types: %w", err)
	}
	defer rows.Close()

	var out []core.PaymentType
	for rows.Next() {
		var p core.PaymentType
		var active int
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &active); err != nil {
			return nil, fmt.Errorf("scan payment type: %w", err)
		}
		p.Active = active != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetPaymentType(ctx context.Context, id int64) (core.PaymentType, error) {
	var p core.PaymentType
	var active int
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, active FROM payment_types WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.Description, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return core.PaymentType{}, core.ErrNotFound
	}
	if err != nil {
		return core.PaymentType{}, fmt.Errorf("get payment type %d: %w", id, err)
	}
	p.Active = active != 0
	return p, nil
}

func (r *SQLiteRepository) CreatePaymentType(ctx context.Context, p core.PaymentType) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO payment_types (name, description, active) VALUES (?, ?, ?)",
		p.Name, p.Description, boolToInt(p.Active))
	if err != nil {
		return 0, fmt.Errorf("insert payment type: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) DeletePaymentType(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM payment_types WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete payment type %d: %w", id, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) SetPaymentTypeActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE payment_types SET active = ? WHERE id = ?", boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("set payment type %d active: %w", id, err)
	}
	return requireRow(res)
}
