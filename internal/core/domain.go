package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// DeleteOne removes only the targeted record.
	DeleteOne DeleteScope = "one"
	// DeleteFuture removes the targeted installment and every later one
	// in the same purchase group.
	DeleteFuture DeleteScope = "future"
	// DeleteAll removes every installment in the purchase group.
	DeleteAll DeleteScope = "all"
)

const (
	StatusAny     SettlementStatus = "any"
	StatusSettled SettlementStatus = "settled"
	StatusPending SettlementStatus = "pending"
)

type (
	DeleteScope      string
	SettlementStatus string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Income struct {
		ID          int64
		Description string
		Planned     Money
		Actual      Money
		Date        Date
		Category    string
		Settled     bool
	}

	Expense struct {
		ID            int64
		Description   string
		Planned       Money
		Actual        Money
		Date          Date
		Category      string
		Subcategory   string
		PaymentTypeID int64 // 0 means no payment type
		Installments  int
		InstallmentNo int
		GroupID       string // set only when Installments > 1
		Settled       bool
	}

	Category struct {
		ID          int64
		Name        string
		Description string
	}

	Subcategory struct {
		ID          int64
		Name        string
		Description string
		CategoryID  int64
	}

	PaymentType struct {
		ID          int64
		Name        string
		Description string
		Active      bool
	}
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDate         = errors.New("invalid date")
	ErrEmptyDescription    = errors.New("empty description")
	ErrDescriptionTooLong  = errors.New("description too long (max 200 characters)")
	ErrEmptyCategory       = errors.New("empty category")
	ErrMissingCategoryID   = errors.New("subcategory requires an owning category")
	ErrEmptyName           = errors.New("empty name")
	ErrInvalidScope        = errors.New("invalid deletion scope")
	ErrInvalidInstallments = errors.New("invalid installment count")
	ErrInvalidStatus       = errors.New("invalid settlement status")
	ErrPaymentTypeInUse    = errors.New("payment type referenced by expenses")
	ErrCategoryInUse       = errors.New("category has subcategories")
)

// IsValidation reports whether err is one of the input validation
// sentinels, as opposed to not-found, referential or storage errors.
func IsValidation(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidAmount, ErrInvalidDate, ErrEmptyDescription,
		ErrDescriptionTooLong, ErrEmptyCategory, ErrMissingCategoryID,
		ErrEmptyName, ErrInvalidScope,
		ErrInvalidInstallments, ErrInvalidStatus,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func (s DeleteScope) Validate() error {
	switch s {
	case "", DeleteOne, DeleteFuture, DeleteAll:
		return nil
	}
	return ErrInvalidScope
}

func (s SettlementStatus) Validate() error {
	switch s {
	case "", StatusAny, StatusSettled, StatusPending:
		return nil
	}
	return ErrInvalidStatus
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// IsGrouped reports whether the expense belongs to a purchase group.
func (e Expense) IsGrouped() bool {
	return e.GroupID != ""
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := e.Planned.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Installments < 1 || e.InstallmentNo < 1 || e.InstallmentNo > e.Installments {
		return ErrInvalidInstallments
	}
	return nil
}

func (i Income) Validate() error {
	if err := i.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(i.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(i.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := i.Planned.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(i.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (s Subcategory) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.CategoryID <= 0 {
		return ErrMissingCategoryID
	}
	return nil
}

func (p PaymentType) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
