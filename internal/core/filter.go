package core

// Filter narrows which ledger records participate in an aggregation.
// Zero-valued fields impose no constraint; all supplied fields are
// combined with AND. Subcategory and PaymentTypeID apply only to
// expenses: income has neither dimension.
type Filter struct {
	Category      string
	Subcategory   string
	DateFrom      Date
	DateTo        Date
	PaymentTypeID int64
	Status        SettlementStatus
}

func (f Filter) Validate() error {
	return f.Status.Validate()
}

func (f Filter) matchesDate(d Date) bool {
	if !f.DateFrom.IsZero() && d.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && d.After(f.DateTo) {
		return false
	}
	return true
}

func (f Filter) matchesSettled(settled bool) bool {
	switch f.Status {
	case StatusSettled:
		return settled
	case StatusPending:
		return !settled
	}
	return true
}

// MatchesIncome reports whether the income record passes the filter.
func (f Filter) MatchesIncome(i Income) bool {
	if f.Category != "" && i.Category != f.Category {
		return false
	}
	return f.matchesDate(i.Date) && f.matchesSettled(i.Settled)
}

// MatchesExpense reports whether the expense record passes the filter.
func (f Filter) MatchesExpense(e Expense) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && e.Subcategory != f.Subcategory {
		return false
	}
	if f.PaymentTypeID != 0 && e.PaymentTypeID != f.PaymentTypeID {
		return false
	}
	return f.matchesDate(e.Date) && f.matchesSettled(e.Settled)
}
