package issuance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Observation is one issuance event ready for aggregation: a period-anchor
// date, a bucket label, and an amount. US records anchor on issue date with
// a locally binned bucket; Euro observations anchor on the SDMX time period
// with the tenor of their series key.
type Observation struct {
	Date   time.Time
	Bucket string
	Amount decimal.Decimal
}

// Summary is a table of summed issuance amounts indexed by
// (period, bucket). Rows are sorted by period ascending; every row carries
// one amount per bucket, zero-filled for combinations absent from the
// input. Buckets holds only the labels that actually appeared, in
// canonical display order, so a Euro summary built from a partial tenor
// fetch contains columns for the successful tenors only.
type Summary struct {
	Buckets []string     `json:"buckets"`
	Rows    []SummaryRow `json:"rows"`
}

// SummaryRow is one period of a Summary. Amounts is parallel to
// Summary.Buckets.
type SummaryRow struct {
	Period  time.Time         `json:"period"`
	Amounts []decimal.Decimal `json:"amounts"`
}

// Total returns the row's summed amount across all buckets.
func (r SummaryRow) Total() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Amounts {
		total = total.Add(a)
	}
	return total
}

// Empty reports whether the summary has no rows.
func (s *Summary) Empty() bool {
	return s == nil || len(s.Rows) == 0
}

// Periods returns the period labels in row order.
func (s *Summary) Periods() []time.Time {
	periods := make([]time.Time, len(s.Rows))
	for i, r := range s.Rows {
		periods[i] = r.Period
	}
	return periods
}

// Column returns the amount series for one bucket, or nil if the bucket is
// not present in the summary.
func (s *Summary) Column(bucket string) []decimal.Decimal {
	for i, b := range s.Buckets {
		if b != bucket {
			continue
		}
		col := make([]decimal.Decimal, len(s.Rows))
		for j, r := range s.Rows {
			col[j] = r.Amounts[i]
		}
		return col
	}
	return nil
}

// Aggregate bins observations into calendar periods and sums amounts per
// (period, bucket). The order slice fixes the column order; buckets that
// never appear in the input are omitted, buckets absent from order are
// appended after the ordered ones in first-seen order.
func Aggregate(obs []Observation, g Granularity, order []string) *Summary {
	type cell struct {
		period time.Time
		bucket string
	}
	sums := make(map[cell]decimal.Decimal)
	periodSet := make(map[time.Time]bool)
	bucketSet := make(map[string]bool)
	var extra []string

	for _, o := range obs {
		p := PeriodEnd(o.Date, g)
		sums[cell{p, o.Bucket}] = sums[cell{p, o.Bucket}].Add(o.Amount)
		periodSet[p] = true
		if !bucketSet[o.Bucket] {
			bucketSet[o.Bucket] = true
			if !contains(order, o.Bucket) {
				extra = append(extra, o.Bucket)
			}
		}
	}

	var buckets []string
	for _, b := range order {
		if bucketSet[b] {
			buckets = append(buckets, b)
		}
	}
	buckets = append(buckets, extra...)

	periods := make([]time.Time, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	s := &Summary{Buckets: buckets}
	for _, p := range periods {
		row := SummaryRow{Period: p, Amounts: make([]decimal.Decimal, len(buckets))}
		for i, b := range buckets {
			row.Amounts[i] = sums[cell{p, b}]
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// PercentTable is the percentage-of-total variant of a Summary: each cell
// is the bucket's share of its period total, times 100.
type PercentTable struct {
	Buckets []string
	Rows    []PercentRow
}

// PercentRow is one period of a PercentTable. Values is parallel to
// PercentTable.Buckets.
type PercentRow struct {
	Period time.Time
	Values []float64
}

// Percent derives the percentage table. A period with a zero total yields
// zero for every bucket rather than failing on the division.
func (s *Summary) Percent() *PercentTable {
	pt := &PercentTable{Buckets: append([]string(nil), s.Buckets...)}
	for _, r := range s.Rows {
		row := PercentRow{Period: r.Period, Values: make([]float64, len(r.Amounts))}
		total := r.Total()
		if !total.IsZero() {
			for i, a := range r.Amounts {
				row.Values[i], _ = a.Div(total).Mul(decimal.NewFromInt(100)).Float64()
			}
		}
		pt.Rows = append(pt.Rows, row)
	}
	return pt
}

// Column returns the value series for one bucket, or nil if absent.
func (pt *PercentTable) Column(bucket string) []float64 {
	for i, b := range pt.Buckets {
		if b != bucket {
			continue
		}
		col := make([]float64, len(pt.Rows))
		for j, r := range pt.Rows {
			col[j] = r.Values[i]
		}
		return col
	}
	return nil
}

// Periods returns the period labels in row order.
func (pt *PercentTable) Periods() []time.Time {
	periods := make([]time.Time, len(pt.Rows))
	for i, r := range pt.Rows {
		periods[i] = r.Period
	}
	return periods
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
