// Package ecb implements the ECB data provider for Euro-area government
// debt securities issuance. Data is sourced from the ECB Data Portal
// SDMX REST API using CSV responses. No API key required.
package ecb

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Maxwe101/debt-dashboard/internal/config"
	"github.com/Maxwe101/debt-dashboard/internal/infra"
)

// Client is the ECB data client.
type Client struct {
	baseURL     string
	flow        string
	startPeriod string

	client  *http.Client
	limiter *infra.RateLimiter
	log     *logrus.Entry
}

// New creates an ECB client from configuration.
func New(cfg config.ECBConfig, log *logrus.Entry) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		flow:        cfg.Flow,
		startPeriod: cfg.StartPeriod,
		client:      &http.Client{Timeout: timeout},
		// One tenor series per request; 2/s mirrors the pause the ECB
		// portal asks bulk consumers to keep between calls.
		limiter: infra.NewRateLimiter(2, time.Second),
		log:     log,
	}
}

// Ping verifies connectivity to the ECB Data Portal.
func (c *Client) Ping(ctx context.Context) error {
	key := seriesKey("DE", tenorCodes[0].code)
	url := c.buildURL(key) + "&lastNObservations=1"
	if _, err := c.fetchCSV(ctx, url); err != nil {
		return fmt.Errorf("ecb ping: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// fetchCSV fetches SDMX CSV data from the ECB API and returns parsed
// records. The first row is the header.
func (c *Client) fetchCSV(ctx context.Context, url string) ([][]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.sdmx.data+csv; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	reader := csv.NewReader(resp.Body)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// buildURL constructs an ECB SDMX data URL for one series key.
func (c *Client) buildURL(key string) string {
	return fmt.Sprintf("%s/%s/%s?startPeriod=%s&format=csvdata",
		c.baseURL, c.flow, key, c.startPeriod)
}

// findColumn returns the index of a column name in the header, or -1.
func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// parseSDMXDate parses SDMX time periods: "2023", "2023-05", "2023-Q1",
// "2023-01-15". Returns the zero time on failure.
func parseSDMXDate(s string) time.Time {
	s = strings.TrimSpace(s)

	if strings.Contains(s, "-Q") {
		parts := strings.SplitN(s, "-Q", 2)
		if len(parts) == 2 {
			month := "01"
			switch parts[1] {
			case "2":
				month = "04"
			case "3":
				month = "07"
			case "4":
				month = "10"
			}
			t, _ := time.Parse("2006-01-02", parts[0]+"-"+month+"-01")
			return t
		}
	}

	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
