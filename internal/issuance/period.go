package issuance

import "time"

// Granularity selects the calendar period used as the aggregation axis.
type Granularity int

const (
	// Monthly groups by calendar month, labeled by month-end date.
	Monthly Granularity = iota
	// Quarterly groups by calendar quarter (Jan-Mar, Apr-Jun, Jul-Sep,
	// Oct-Dec), labeled by quarter-end date.
	Quarterly
)

func (g Granularity) String() string {
	if g == Quarterly {
		return "quarterly"
	}
	return "monthly"
}

// MonthEnd truncates t to the last day of its calendar month, at midnight UTC.
func MonthEnd(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// QuarterEnd truncates t to the last day of its calendar quarter, at
// midnight UTC.
func QuarterEnd(t time.Time) time.Time {
	y, m, _ := t.Date()
	qEnd := time.Month((int(m)-1)/3*3 + 3)
	return time.Date(y, qEnd+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// PeriodEnd truncates t per the granularity.
func PeriodEnd(t time.Time, g Granularity) time.Time {
	if g == Quarterly {
		return QuarterEnd(t)
	}
	return MonthEnd(t)
}
