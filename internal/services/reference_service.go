package services

import (
	"context"
	"fmt"
	"log/slog"

	"financeiro/internal/core"
)

// ReferenceService manages the lookup tables: expense categories with
// their subcategories, and payment types. Deletion is
// block-if-referenced on both relations, so neither a subcategory nor
// an expense is ever left pointing at nothing.
type ReferenceService struct {
	store Store
}

func NewReferenceService(store Store) *ReferenceService {
	return &ReferenceService{store: store}
}

func (s *ReferenceService) ListCategories(ctx context.Context) ([]core.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *ReferenceService) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	id, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	return id, nil
}

// DeleteCategory refuses to remove a category that still owns
// subcategories.
func (s *ReferenceService) DeleteCategory(ctx context.Context, id int64) error {
	n, err := s.store.CountSubcategories(ctx, id)
	if err != nil {
		return fmt.Errorf("count subcategories: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %d subcategories", core.ErrCategoryInUse, n)
	}
	return s.store.DeleteCategory(ctx, id)
}

func (s *ReferenceService) ListSubcategories(ctx context.Context, categoryID int64) ([]core.Subcategory, error) {
	return s.store.ListSubcategories(ctx, categoryID)
}

func (s *ReferenceService) CreateSubcategory(ctx context.Context, sc core.Subcategory) (int64, error) {
	if err := sc.Validate(); err != nil {
		return 0, err
	}
	// The owning category must exist.
	if _, err := s.store.GetCategory(ctx, sc.CategoryID); err != nil {
		return 0, err
	}
	id, err := s.store.CreateSubcategory(ctx, sc)
	if err != nil {
		return 0, fmt.Errorf("create subcategory: %w", err)
	}
	return id, nil
}

func (s *ReferenceService) DeleteSubcategory(ctx context.Context, id int64) error {
	return s.store.DeleteSubcategory(ctx, id)
}

func (s *ReferenceService) ListPaymentTypes(ctx context.Context, activeOnly bool) ([]core.PaymentType, error) {
	return s.store.ListPaymentTypes(ctx, activeOnly)
}

func (s *ReferenceService) CreatePaymentType(ctx context.Context, p core.PaymentType) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	p.Active = true
	id, err := s.store.CreatePaymentType(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("create payment type: %w", err)
	}
	return id, nil
}

// DeletePaymentType refuses to remove a payment type while any expense
// references it; the error carries the usage count.
func (s *ReferenceService) DeletePaymentType(ctx context.Context, id int64) error {
	if _, err := s.store.GetPaymentType(ctx, id); err != nil {
		return err
	}
	n, err := s.store.CountExpensesByPaymentType(ctx, id)
	if err != nil {
		return fmt.Errorf("count payment type usage: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %d expenses", core.ErrPaymentTypeInUse, n)
	}
	if err := s.store.DeletePaymentType(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Payment type deleted", "id", id)
	return nil
}

// TogglePaymentType flips the active flag and returns the new state.
func (s *ReferenceService) TogglePaymentType(ctx context.Context, id int64) (core.PaymentType, error) {
	p, err := s.store.GetPaymentType(ctx, id)
	if err != nil {
		return core.PaymentType{}, err
	}
	p.Active = !p.Active
	if err := s.store.SetPaymentTypeActive(ctx, id, p.Active); err != nil {
		return core.PaymentType{}, err
	}
	return p, nil
}
