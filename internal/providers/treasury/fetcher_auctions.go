package treasury

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Maxwe101/debt-dashboard/internal/issuance"
	"github.com/Maxwe101/debt-dashboard/pkg/models"
)

// ---------------------------------------------------------------------------
// Auction results
// Endpoint: /v1/accounting/od/auctions_query
// Filter:   issue_date:gte:{startYear}-01-01, paged via meta total-pages
// ---------------------------------------------------------------------------

// auctionsResponse is the FiscalData envelope: a data array plus paging
// metadata. All data fields arrive as strings or null.
type auctionsResponse struct {
	Data []auctionRow `json:"data"`
	Meta struct {
		TotalCount int `json:"total-count"`
		TotalPages int `json:"total-pages"`
	} `json:"meta"`
}

type auctionRow struct {
	CUSIP         string `json:"cusip"`
	SecurityType  string `json:"security_type"`
	SecurityTerm  string `json:"security_term"`
	IssueDate     string `json:"issue_date"`
	MaturityDate  string `json:"maturity_date"`
	AuctionDate   string `json:"auction_date"`
	TotalAccepted string `json:"total_accepted"`
	OfferingAmt   string `json:"offering_amt"`
}

// FetchAuctions fetches every auction record issued since the configured
// start year, walking all pages. Each row is normalized: dates parsed,
// amounts coerced (unparseable values become zero), duration computed and
// assigned a maturity bucket.
func (c *Client) FetchAuctions(ctx context.Context) ([]models.AuctionRecord, error) {
	filter := fmt.Sprintf("?filter=issue_date:gte:%d-01-01", c.startYear)

	first, err := c.fetchPage(ctx, filter, 1)
	if err != nil {
		return nil, fmt.Errorf("auctions page 1: %w", err)
	}

	records := make([]models.AuctionRecord, 0, first.Meta.TotalCount)
	records = appendRecords(records, first.Data)

	c.log.WithField("total_pages", first.Meta.TotalPages).Debug("fetching auction pages")
	for page := 2; page <= first.Meta.TotalPages; page++ {
		resp, err := c.fetchPage(ctx, filter, page)
		if err != nil {
			return nil, fmt.Errorf("auctions page %d: %w", page, err)
		}
		records = appendRecords(records, resp.Data)
	}

	c.log.WithField("records", len(records)).Info("auction fetch complete")
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, filter string, page int) (*auctionsResponse, error) {
	url := fmt.Sprintf("%s%s%s&page[number]=%d&page[size]=%d",
		c.baseURL, c.endpoint, filter, page, c.pageSize)
	var resp auctionsResponse
	if err := c.fetchJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func appendRecords(dst []models.AuctionRecord, rows []auctionRow) []models.AuctionRecord {
	for _, row := range rows {
		dst = append(dst, normalizeRow(row))
	}
	return dst
}

// normalizeRow converts one raw API row into an AuctionRecord. Rows with
// no maturity date get a zero duration, which lands them in the Other
// bucket.
func normalizeRow(row auctionRow) models.AuctionRecord {
	rec := models.AuctionRecord{
		CUSIP:          row.CUSIP,
		SecurityType:   row.SecurityType,
		SecurityTerm:   row.SecurityTerm,
		IssueDate:      parseDate(row.IssueDate),
		MaturityDate:   parseDate(row.MaturityDate),
		AuctionDate:    parseDate(row.AuctionDate),
		TotalAccepted:  parseAmount(row.TotalAccepted),
		OfferingAmount: parseAmount(row.OfferingAmt),
	}
	if rec.HasMaturity() && !rec.IssueDate.IsZero() {
		rec.DurationDays = int(rec.MaturityDate.Sub(rec.IssueDate).Hours() / 24)
	}
	rec.MaturityBucket = issuance.Bin(rec.DurationDays)
	return rec
}

// parseDate parses a FiscalData date ("2006-01-02"). Missing or malformed
// values return the zero time.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseAmount parses a numeric string into a decimal. Missing or
// malformed values coerce to zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
