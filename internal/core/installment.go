package core

import "fmt"

// InstallmentLine is one computed slice of a purchase before it is
// persisted as an Expense record.
type InstallmentLine struct {
	Index       int // 1-based installment number
	Description string
	Date        Date
	Planned     Money
	Actual      Money
}

// ExpandInstallments splits a purchase into count monthly lines.
//
// Every line carries the rounded per-installment share except the last,
// which absorbs the rounding remainder so that the lines sum back to
// the requested totals cent-exactly. Line i is dated i months after the
// purchase date (see AddCalendarMonths for the day-clamp rule). When
// count > 1 each description gets an " (i/N)" suffix.
func ExpandInstallments(description string, plannedTotal, actualTotal Money, start Date, count int) ([]InstallmentLine, error) {
	if count < 1 {
		return nil, ErrInvalidInstallments
	}

	plannedShare := divRoundHalfUp(plannedTotal.Cents, int64(count))
	actualShare := divRoundHalfUp(actualTotal.Cents, int64(count))

	lines := make([]InstallmentLine, count)
	for i := 0; i < count; i++ {
		planned := plannedShare
		actual := actualShare
		if i == count-1 {
			planned = plannedTotal.Cents - plannedShare*int64(count-1)
			actual = actualTotal.Cents - actualShare*int64(count-1)
		}

		desc := description
		if count > 1 {
			desc = fmt.Sprintf("%s (%d/%d)", description, i+1, count)
		}

		lines[i] = InstallmentLine{
			Index:       i + 1,
			Description: desc,
			Date:        AddCalendarMonths(start, i),
			Planned:     Money{Cents: planned},
			Actual:      Money{Cents: actual},
		}
	}
	return lines, nil
}

// ProportionalActual computes the actual amount a group sibling
// receives when an explicit amount is applied to the whole group:
// provided scaled by the sibling's planned share relative to the
// anchor record the request was issued against.
//
// A zero anchor planned amount yields zero rather than dividing by
// zero; the caller keeps whatever actual the sibling already had in
// the planned-adoption path.
func ProportionalActual(provided, siblingPlanned, anchorPlanned Money) Money {
	if anchorPlanned.Cents == 0 {
		return Money{}
	}
	return Money{Cents: divRoundHalfUp(provided.Cents*siblingPlanned.Cents, anchorPlanned.Cents)}
}
