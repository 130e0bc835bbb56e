// Package models defines the shared data models for the debt-issuance
// dashboard: raw auction records, upstream announcements, and the
// country/source identifiers used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionRecord is one row of raw fetched US Treasury auction data.
// Records are immutable once fetched; invalid or missing numeric fields
// are coerced to zero during refresh, never at read time.
type AuctionRecord struct {
	CUSIP          string          `json:"cusip,omitempty"`
	SecurityType   string          `json:"security_type,omitempty"`
	SecurityTerm   string          `json:"security_term,omitempty"`
	IssueDate      time.Time       `json:"issue_date"`
	MaturityDate   time.Time       `json:"maturity_date,omitempty"` // zero when unknown
	AuctionDate    time.Time       `json:"auction_date,omitempty"`  // zero when unknown
	TotalAccepted  decimal.Decimal `json:"total_accepted"`
	OfferingAmount decimal.Decimal `json:"offering_amt"`
	DurationDays   int             `json:"duration_days"`
	MaturityBucket string          `json:"maturity_bin"`
}

// HasMaturity reports whether the record carries a usable maturity date.
func (r AuctionRecord) HasMaturity() bool {
	return !r.MaturityDate.IsZero()
}

// Announcement is a single upstream auction announcement, sourced from the
// TreasuryDirect RSS feed.
type Announcement struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
}

// CountryName maps a dashboard country code to its display name.
var CountryName = map[string]string{
	"US": "United States",
	"DE": "Germany",
	"IT": "Italy",
	"FR": "France",
}

// EuroCountryCodes returns the Euro-area country codes in display order.
func EuroCountryCodes() []string {
	return []string{"DE", "IT", "FR"}
}
