// Package services orchestrates ledger operations: installment
// expansion, cascading group deletes and updates, income bookkeeping
// and filtered summaries.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"financeiro/internal/amqp"
	"financeiro/internal/core"
)

// LedgerService owns every mutation of income and expense records and
// the summary computation over them. Ledger change events go out on
// AMQP after a successful mutation; publishing is best-effort and
// never fails the request (the export worker will catch up on its
// periodic tick).
type LedgerService struct {
	store      Store
	amqpClient *amqp.Client
}

func NewLedgerService(store Store, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// CreateExpenseInput is the typed request for registering a purchase.
// Installments of 0 means the default of a single installment.
type CreateExpenseInput struct {
	Description   string
	Planned       core.Money
	Actual        core.Money
	HasActual     bool
	Date          core.Date
	Category      string
	Subcategory   string
	PaymentTypeID int64
	Installments  int
	Settled       bool
}

type CreateExpenseResult struct {
	Installments int
	GroupID      string
}

func (in CreateExpenseInput) validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return core.ErrEmptyDescription
	}
	if len(in.Description) > 200 {
		return core.ErrDescriptionTooLong
	}
	if err := in.Planned.Validate(); err != nil {
		return err
	}
	if in.HasActual && in.Actual.Cents < 0 {
		return core.ErrInvalidAmount
	}
	if err := in.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(in.Category) == "" {
		return core.ErrEmptyCategory
	}
	if in.Installments < 0 {
		return core.ErrInvalidInstallments
	}
	return nil
}

// CreateExpense expands the purchase into its installment records and
// persists them atomically. Multi-installment purchases share a fresh
// purchase-group id; single ones carry none.
func (s *LedgerService) CreateExpense(ctx context.Context, in CreateExpenseInput) (CreateExpenseResult, error) {
	if err := in.validate(); err != nil {
		return CreateExpenseResult{}, err
	}

	count := in.Installments
	if count == 0 {
		count = 1
	}

	actualTotal := in.Actual
	if !in.HasActual {
		if in.Settled {
			actualTotal = in.Planned
		} else {
			actualTotal = core.Money{}
		}
	}

	lines, err := core.ExpandInstallments(in.Description, in.Planned, actualTotal, in.Date, count)
	if err != nil {
		return CreateExpenseResult{}, err
	}

	groupID := ""
	if count > 1 {
		groupID = uuid.NewString()
	}

	expenses := make([]core.Expense, len(lines))
	for i, l := range lines {
		expenses[i] = core.Expense{
			Description:   l.Description,
			Planned:       l.Planned,
			Actual:        l.Actual,
			Date:          l.Date,
			Category:      in.Category,
			Subcategory:   in.Subcategory,
			PaymentTypeID: in.PaymentTypeID,
			Installments:  count,
			InstallmentNo: l.Index,
			GroupID:       groupID,
			Settled:       in.Settled,
		}
	}

	if err := s.store.CreateExpenses(ctx, expenses); err != nil {
		return CreateExpenseResult{}, fmt.Errorf("save expenses: %w", err)
	}

	slog.InfoContext(ctx, "Expense created",
		"description", in.Description,
		"installments", count,
		"group_id", groupID,
		"planned_cents", in.Planned.Cents)

	event := amqp.NewLedgerEvent(amqp.EventExpenseCreated, in.Date.Year(), in.Date.Month())
	event.GroupID = groupID
	event.Count = int64(count)
	s.publishEvent(ctx, event)

	return CreateExpenseResult{Installments: count, GroupID: groupID}, nil
}

// DeleteExpense removes a record and, for grouped expenses, its group
// siblings according to scope. Ungrouped expenses are deleted outright
// whatever the scope. An empty scope defaults to DeleteOne.
func (s *LedgerService) DeleteExpense(ctx context.Context, id int64, scope core.DeleteScope) (int64, error) {
	if err := scope.Validate(); err != nil {
		return 0, err
	}
	if scope == "" {
		scope = core.DeleteOne
	}

	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return 0, err
	}

	var deleted int64
	switch {
	case !e.IsGrouped() || scope == core.DeleteOne:
		deleted, err = s.store.DeleteExpense(ctx, id)
	case scope == core.DeleteFuture:
		deleted, err = s.store.DeleteGroupFrom(ctx, e.GroupID, e.InstallmentNo)
	default: // core.DeleteAll
		deleted, err = s.store.DeleteGroup(ctx, e.GroupID)
	}
	if err != nil {
		return 0, fmt.Errorf("delete expense %d (scope %s): %w", id, scope, err)
	}

	slog.InfoContext(ctx, "Expense deleted",
		"id", id,
		"scope", scope,
		"group_id", e.GroupID,
		"removed", deleted)

	event := amqp.NewLedgerEvent(amqp.EventExpenseDeleted, e.Date.Year(), e.Date.Month())
	event.EntityID = id
	event.GroupID = e.GroupID
	event.Count = deleted
	s.publishEvent(ctx, event)

	return deleted, nil
}

// UpdatePatch carries the optional settlement/amount changes of an
// update request. Nil fields are left untouched.
type UpdatePatch struct {
	Settled *bool
	Actual  *core.Money
}

// UpdateResult reports the primary record's state after the update.
type UpdateResult struct {
	Settled bool
	Actual  core.Money
	Planned core.Money
}

// UpdateExpense settles or amends a record. With applyToGroup set and
// a grouped record, the settled transition and normalization apply to
// every sibling; an explicit actual amount is distributed across the
// group in proportion to each sibling's planned share relative to the
// record the request targeted.
func (s *LedgerService) UpdateExpense(ctx context.Context, id int64, patch UpdatePatch, applyToGroup bool) (UpdateResult, error) {
	anchor, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return UpdateResult{}, err
	}

	targets := []core.Expense{anchor}
	if applyToGroup && anchor.IsGrouped() {
		targets, err = s.store.ListGroup(ctx, anchor.GroupID)
		if err != nil {
			return UpdateResult{}, fmt.Errorf("list group %s: %w", anchor.GroupID, err)
		}
	}

	var result UpdateResult
	for i := range targets {
		t := &targets[i]
		if patch.Settled != nil {
			t.Settled = *patch.Settled
		}
		switch {
		case patch.Actual != nil && t.ID == anchor.ID:
			t.Actual = *patch.Actual
		case patch.Actual != nil:
			t.Actual = core.ProportionalActual(*patch.Actual, t.Planned, anchor.Planned)
		case t.Settled && t.Actual.Cents == 0:
			// Settling without a realized amount adopts the planned one.
			t.Actual = t.Planned
		}
		if t.ID == anchor.ID {
			result = UpdateResult{Settled: t.Settled, Actual: t.Actual, Planned: t.Planned}
		}
	}

	if err := s.store.UpdateExpenses(ctx, targets); err != nil {
		return UpdateResult{}, fmt.Errorf("update expenses: %w", err)
	}

	slog.InfoContext(ctx, "Expense updated",
		"id", id,
		"group", applyToGroup && anchor.IsGrouped(),
		"settled", result.Settled,
		"actual_cents", result.Actual.Cents)

	event := amqp.NewLedgerEvent(amqp.EventExpenseUpdated, anchor.Date.Year(), anchor.Date.Month())
	event.EntityID = id
	event.GroupID = anchor.GroupID
	event.Count = int64(len(targets))
	s.publishEvent(ctx, event)

	return result, nil
}

// CreateIncomeInput is the typed request for registering an income.
type CreateIncomeInput struct {
	Description string
	Planned     core.Money
	Actual      core.Money
	HasActual   bool
	Date        core.Date
	Category    string
	Settled     bool
}

func (s *LedgerService) CreateIncome(ctx context.Context, in CreateIncomeInput) (int64, error) {
	actual := in.Actual
	if !in.HasActual {
		if in.Settled {
			actual = in.Planned
		} else {
			actual = core.Money{}
		}
	}

	income := core.Income{
		Description: in.Description,
		Planned:     in.Planned,
		Actual:      actual,
		Date:        in.Date,
		Category:    in.Category,
		Settled:     in.Settled,
	}
	if err := income.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.CreateIncome(ctx, income)
	if err != nil {
		return 0, fmt.Errorf("save income: %w", err)
	}

	event := amqp.NewLedgerEvent(amqp.EventIncomeCreated, in.Date.Year(), in.Date.Month())
	event.EntityID = id
	s.publishEvent(ctx, event)

	return id, nil
}

// UpdateIncome applies the same settle/amend semantics as a
// single-record expense update: settling with a zero actual adopts the
// planned amount, an explicit actual overrides.
func (s *LedgerService) UpdateIncome(ctx context.Context, id int64, patch UpdatePatch) (UpdateResult, error) {
	in, err := s.store.GetIncome(ctx, id)
	if err != nil {
		return UpdateResult{}, err
	}

	if patch.Settled != nil {
		in.Settled = *patch.Settled
	}
	switch {
	case patch.Actual != nil:
		in.Actual = *patch.Actual
	case in.Settled && in.Actual.Cents == 0:
		in.Actual = in.Planned
	}

	if err := s.store.UpdateIncome(ctx, in); err != nil {
		return UpdateResult{}, fmt.Errorf("update income %d: %w", id, err)
	}

	event := amqp.NewLedgerEvent(amqp.EventIncomeUpdated, in.Date.Year(), in.Date.Month())
	event.EntityID = id
	s.publishEvent(ctx, event)

	return UpdateResult{Settled: in.Settled, Actual: in.Actual, Planned: in.Planned}, nil
}

func (s *LedgerService) DeleteIncome(ctx context.Context, id int64) error {
	in, err := s.store.GetIncome(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteIncome(ctx, id); err != nil {
		return fmt.Errorf("delete income %d: %w", id, err)
	}

	event := amqp.NewLedgerEvent(amqp.EventIncomeDeleted, in.Date.Year(), in.Date.Month())
	event.EntityID = id
	s.publishEvent(ctx, event)

	return nil
}

// Summary computes the filtered financial summary. Subcategory and
// payment-type filters narrow only the expense side; income has
// neither dimension. A filter naming an unknown category or payment
// type yields an empty summary, not an error.
func (s *LedgerService) Summary(ctx context.Context, f core.Filter) (core.Summary, error) {
	if err := f.Validate(); err != nil {
		return core.Summary{}, err
	}

	incomes, err := s.store.ListIncomes(ctx, f)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list incomes: %w", err)
	}
	expenses, err := s.store.ListExpenses(ctx, f)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list expenses: %w", err)
	}

	return core.BuildSummary(incomes, expenses), nil
}

func (s *LedgerService) publishEvent(ctx context.Context, event amqp.LedgerEvent) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishLedgerEvent(ctx, event); err != nil {
		// The mutation already committed; the worker's periodic export
		// covers missed events.
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"kind", event.Kind, "error", err)
	}
}
