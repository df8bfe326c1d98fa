package core

import "testing"

func TestAddCalendarMonths(t *testing.T) {
	cases := []struct {
		name string
		in   Date
		n    int
		want Date
	}{
		{"same month", NewDate(2025, 3, 15), 0, NewDate(2025, 3, 15)},
		{"next month", NewDate(2025, 3, 15), 1, NewDate(2025, 4, 15)},
		{"year wrap", NewDate(2025, 11, 10), 3, NewDate(2026, 2, 10)},
		{"full year", NewDate(2025, 1, 31), 12, NewDate(2026, 1, 31)},
		{"several years", NewDate(2024, 6, 5), 30, NewDate(2026, 12, 5)},
		// Day-overflow policy: clamp to the last day of the target month.
		{"jan 31 to feb", NewDate(2025, 1, 31), 1, NewDate(2025, 2, 28)},
		{"jan 31 to leap feb", NewDate(2024, 1, 31), 1, NewDate(2024, 2, 29)},
		{"jan 31 to march keeps 31", NewDate(2025, 1, 31), 2, NewDate(2025, 3, 31)},
		{"may 31 to june", NewDate(2025, 5, 31), 1, NewDate(2025, 6, 30)},
		{"dec to jan", NewDate(2025, 12, 31), 1, NewDate(2026, 1, 31)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AddCalendarMonths(tc.in, tc.n)
			if !got.Equal(tc.want.Time) {
				t.Fatalf("AddCalendarMonths(%s, %d) = %s, want %s", tc.in, tc.n, got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-07-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != 7 || d.Day() != 9 {
		t.Fatalf("parsed wrong date: %s", d)
	}
	if d.FormatBR() != "09/07/2025" {
		t.Fatalf("FormatBR = %s", d.FormatBR())
	}

	for _, bad := range []string{"", "2025-13-01", "09/07/2025", "2025-02-30", "notadate"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestDateValidate(t *testing.T) {
	if err := (Date{}).Validate(); err == nil {
		t.Fatal("zero date should not validate")
	}
	if err := NewDate(2025, 1, 1).Validate(); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
}
