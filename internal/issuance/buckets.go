// Package issuance implements the data-shaping core of the dashboard:
// maturity binning of auction records and aggregation of issuance
// observations into calendar-period summary tables.
package issuance

// US maturity bucket labels, in display order.
const (
	BucketLT1Month  = "< 1 Month"
	Bucket1To3M     = "1-3 Months"
	Bucket3To12M    = "3-12 Months"
	Bucket1To3Y     = "1-3 Years"
	Bucket3To10Y    = "3-10 Years"
	Bucket10YPlus   = "10+ Years"
	BucketOther     = "Other"
)

// Euro tenor labels, in display order. These are assigned by the SDMX
// series key at fetch time, never computed from dates.
const (
	TenorUpTo1Y = "Up to 1Y"
	Tenor1To2Y  = "1Y-2Y"
	Tenor2To5Y  = "2Y-5Y"
	Tenor5To10Y = "5Y-10Y"
	Tenor10Plus = "10Y+"
)

// USBucketOrder is the fixed display order for US maturity buckets.
var USBucketOrder = []string{
	BucketLT1Month, Bucket1To3M, Bucket3To12M,
	Bucket1To3Y, Bucket3To10Y, Bucket10YPlus, BucketOther,
}

// EuroTenorOrder is the fixed display order for Euro tenors.
var EuroTenorOrder = []string{
	TenorUpTo1Y, Tenor1To2Y, Tenor2To5Y, Tenor5To10Y, Tenor10Plus,
}

// USBucketColors maps US buckets to their chart colors.
var USBucketColors = map[string]string{
	BucketLT1Month: "#d53e4f",
	Bucket1To3M:    "#f46d43",
	Bucket3To12M:   "#fdae61",
	Bucket1To3Y:    "#abdda4",
	Bucket3To10Y:   "#3288bd",
	Bucket10YPlus:  "#5e4fa2",
	BucketOther:    "#cccccc",
}

// EuroTenorColors maps Euro tenors to their chart colors.
var EuroTenorColors = map[string]string{
	TenorUpTo1Y: "#3288bd",
	Tenor1To2Y:  "#abdda4",
	Tenor2To5Y:  "#fdae61",
	Tenor5To10Y: "#f46d43",
	Tenor10Plus: "#d53e4f",
}

// Bin maps a duration in days to one of the seven US maturity buckets.
// Boundaries are half-open: 30 days is "1-3 Months", 3650 days is
// "10+ Years". Non-positive durations (including the zero used for
// records without a maturity date) map to "Other".
func Bin(days int) string {
	switch {
	case days <= 0:
		return BucketOther
	case days < 30:
		return BucketLT1Month
	case days < 91:
		return Bucket1To3M
	case days < 365:
		return Bucket3To12M
	case days < 1095:
		return Bucket1To3Y
	case days < 3650:
		return Bucket3To10Y
	default:
		return Bucket10YPlus
	}
}
