package issuance

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthEnd(t *testing.T) {
	tests := []struct {
		in, want time.Time
	}{
		{date(2024, time.January, 1), date(2024, time.January, 31)},
		{date(2024, time.January, 31), date(2024, time.January, 31)},
		{date(2024, time.February, 15), date(2024, time.February, 29)}, // leap year
		{date(2023, time.February, 15), date(2023, time.February, 28)},
		{date(2024, time.December, 5), date(2024, time.December, 31)},
	}
	for _, tt := range tests {
		if got := MonthEnd(tt.in); !got.Equal(tt.want) {
			t.Errorf("MonthEnd(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQuarterEnd(t *testing.T) {
	tests := []struct {
		in, want time.Time
	}{
		{date(2024, time.January, 1), date(2024, time.March, 31)},
		{date(2024, time.March, 31), date(2024, time.March, 31)},
		{date(2024, time.April, 1), date(2024, time.June, 30)},
		{date(2024, time.August, 20), date(2024, time.September, 30)},
		{date(2024, time.October, 2), date(2024, time.December, 31)},
		{date(2024, time.December, 31), date(2024, time.December, 31)},
	}
	for _, tt := range tests {
		if got := QuarterEnd(tt.in); !got.Equal(tt.want) {
			t.Errorf("QuarterEnd(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPeriodEnd(t *testing.T) {
	in := date(2024, time.May, 10)
	if got := PeriodEnd(in, Monthly); !got.Equal(date(2024, time.May, 31)) {
		t.Errorf("PeriodEnd monthly = %v", got)
	}
	if got := PeriodEnd(in, Quarterly); !got.Equal(date(2024, time.June, 30)) {
		t.Errorf("PeriodEnd quarterly = %v", got)
	}
}
