package core

import "testing"

func TestExpandInstallmentsSumInvariant(t *testing.T) {
	// The lines must sum back to the requested totals cent-exactly for
	// every count; the last line absorbs the rounding remainder.
	totals := []int64{1, 2, 100, 101, 999, 1000, 123456, 9999999}
	for _, total := range totals {
		for count := 1; count <= 36; count++ {
			lines, err := ExpandInstallments("compra", Money{Cents: total}, Money{Cents: total}, NewDate(2025, 1, 15), count)
			if err != nil {
				t.Fatalf("total=%d count=%d: %v", total, count, err)
			}
			if len(lines) != count {
				t.Fatalf("total=%d count=%d: got %d lines", total, count, len(lines))
			}
			var sumPlanned, sumActual int64
			for _, l := range lines {
				sumPlanned += l.Planned.Cents
				sumActual += l.Actual.Cents
			}
			if sumPlanned != total || sumActual != total {
				t.Fatalf("total=%d count=%d: planned sum %d, actual sum %d", total, count, sumPlanned, sumActual)
			}
		}
	}
}

func TestExpandInstallmentsShares(t *testing.T) {
	// 100.00 over 3: 33.33 + 33.33 + 33.34
	lines, err := ExpandInstallments("tv", Money{Cents: 10000}, Money{}, NewDate(2025, 1, 10), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{3333, 3333, 3334}
	for i, l := range lines {
		if l.Planned.Cents != want[i] {
			t.Fatalf("line %d planned = %d, want %d", i, l.Planned.Cents, want[i])
		}
		if l.Actual.Cents != 0 {
			t.Fatalf("line %d actual = %d, want 0", i, l.Actual.Cents)
		}
		if l.Index != i+1 {
			t.Fatalf("line %d index = %d", i, l.Index)
		}
	}
}

func TestExpandInstallmentsDescriptionAndDates(t *testing.T) {
	lines, _ := ExpandInstallments("geladeira", Money{Cents: 30000}, Money{}, NewDate(2025, 11, 30), 3)

	wantDesc := []string{"geladeira (1/3)", "geladeira (2/3)", "geladeira (3/3)"}
	wantDate := []Date{NewDate(2025, 11, 30), NewDate(2025, 12, 30), NewDate(2026, 1, 30)}
	for i, l := range lines {
		if l.Description != wantDesc[i] {
			t.Fatalf("line %d description = %q, want %q", i, l.Description, wantDesc[i])
		}
		if !l.Date.Equal(wantDate[i].Time) {
			t.Fatalf("line %d date = %s, want %s", i, l.Date, wantDate[i])
		}
	}
}

func TestExpandInstallmentsSingle(t *testing.T) {
	lines, err := ExpandInstallments("mercado", Money{Cents: 4550}, Money{Cents: 4550}, NewDate(2025, 6, 1), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	// No suffix for standalone purchases.
	if lines[0].Description != "mercado" {
		t.Fatalf("description = %q", lines[0].Description)
	}
	if lines[0].Planned.Cents != 4550 || lines[0].Actual.Cents != 4550 {
		t.Fatalf("amounts = %+v", lines[0])
	}
}

func TestExpandInstallmentsInvalidCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := ExpandInstallments("x", Money{Cents: 100}, Money{}, NewDate(2025, 1, 1), n); err != ErrInvalidInstallments {
			t.Fatalf("count=%d: expected ErrInvalidInstallments, got %v", n, err)
		}
	}
}

func TestProportionalActual(t *testing.T) {
	// Group with planned shares [30, 30, 40] and an explicit actual of
	// 50 applied against the first record: 50*(30/30), 50*(30/30),
	// 50*(40/30) = 50.00, 50.00, 66.67.
	provided := Money{Cents: 5000}
	anchor := Money{Cents: 3000}

	cases := []struct {
		planned int64
		want    int64
	}{
		{3000, 5000},
		{3000, 5000},
		{4000, 6667},
	}
	for _, tc := range cases {
		got := ProportionalActual(provided, Money{Cents: tc.planned}, anchor)
		if got.Cents != tc.want {
			t.Fatalf("planned=%d: got %d, want %d", tc.planned, got.Cents, tc.want)
		}
	}

	// Zero anchor must not divide by zero.
	if got := ProportionalActual(provided, Money{Cents: 4000}, Money{}); got.Cents != 0 {
		t.Fatalf("zero anchor: got %d, want 0", got.Cents)
	}
}
