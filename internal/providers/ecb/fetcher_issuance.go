package ecb

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Maxwe101/debt-dashboard/internal/issuance"
)

// ---------------------------------------------------------------------------
// Debt securities issuance
// Flow: CSEC (securities issues by euro area governments)
// Key:  M.N.{COUNTRY}.W0.S1311.S1.N.LI.F.F3.{TENOR}._Z.EUR.EUR.M.V.N._T
// ---------------------------------------------------------------------------

// tenorCodes maps display tenors to their SDMX dimension codes, in
// display order.
var tenorCodes = []struct {
	name string
	code string
}{
	{issuance.TenorUpTo1Y, "S"},
	{issuance.Tenor1To2Y, "Y12"},
	{issuance.Tenor2To5Y, "Y25"},
	{issuance.Tenor5To10Y, "Y5A"},
	{issuance.Tenor10Plus, "YA_"},
}

// seriesKey builds the CSEC series key for one country and tenor code.
func seriesKey(countryCode, tenorCode string) string {
	return fmt.Sprintf("M.N.%s.W0.S1311.S1.N.LI.F.F3.%s._Z.EUR.EUR.M.V.N._T",
		countryCode, tenorCode)
}

// FetchCountry fetches monthly issuance for one Euro-area country across
// all tenors and aggregates it into a monthly summary. A tenor whose
// series cannot be retrieved is skipped with a warning; the call fails
// only when every tenor fails.
func (c *Client) FetchCountry(ctx context.Context, countryCode string) (*issuance.Summary, error) {
	var obs []issuance.Observation
	fetched := 0

	for _, tenor := range tenorCodes {
		url := c.buildURL(seriesKey(countryCode, tenor.code))
		records, err := c.fetchCSV(ctx, url)
		if err != nil {
			c.log.WithFields(map[string]any{
				"country": countryCode,
				"tenor":   tenor.name,
			}).WithError(err).Warn("tenor series unavailable, skipping")
			continue
		}
		fetched++
		obs = append(obs, parseSeries(records, tenor.name)...)
	}

	if fetched == 0 {
		return nil, fmt.Errorf("ecb issuance for %s: all tenor series failed", countryCode)
	}

	c.log.WithFields(map[string]any{
		"country":      countryCode,
		"tenors":       fetched,
		"observations": len(obs),
	}).Info("euro issuance fetch complete")

	return issuance.Aggregate(obs, issuance.Monthly, issuance.EuroTenorOrder), nil
}

// parseSeries extracts observations from one SDMX CSV response. Rows with
// an unparseable period or value are dropped.
func parseSeries(records [][]string, tenor string) []issuance.Observation {
	if len(records) < 2 {
		return nil
	}
	header := records[0]
	timeCol := findColumn(header, "TIME_PERIOD")
	valueCol := findColumn(header, "OBS_VALUE")
	if timeCol < 0 || valueCol < 0 {
		return nil
	}

	var obs []issuance.Observation
	for _, row := range records[1:] {
		if len(row) <= timeCol || len(row) <= valueCol {
			continue
		}
		date := parseSDMXDate(row[timeCol])
		if date.IsZero() {
			continue
		}
		amount, err := decimal.NewFromString(row[valueCol])
		if err != nil {
			continue
		}
		obs = append(obs, issuance.Observation{
			Date:   date,
			Bucket: tenor,
			Amount: amount,
		})
	}
	return obs
}
