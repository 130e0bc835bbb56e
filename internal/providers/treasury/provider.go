// Package treasury implements the US Treasury data provider.
// Auction results are sourced from the FiscalData REST API and upcoming
// auction announcements from the TreasuryDirect RSS feed.
// No API key required.
package treasury

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Maxwe101/debt-dashboard/internal/config"
	"github.com/Maxwe101/debt-dashboard/internal/infra"
)

// Client is the US Treasury data client.
type Client struct {
	baseURL          string
	endpoint         string
	pageSize         int
	startYear        int
	announcementsURL string

	client  *http.Client
	limiter *infra.RateLimiter
	cache   *infra.Cache
	log     *logrus.Entry
}

// New creates a Treasury client from configuration.
func New(cfg config.TreasuryConfig, log *logrus.Entry) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:          cfg.BaseURL,
		endpoint:         cfg.Endpoint,
		pageSize:         cfg.PageSize,
		startYear:        cfg.StartYear,
		announcementsURL: cfg.AnnouncementsURL,
		client:           &http.Client{Timeout: timeout},
		// FiscalData allows generous request rates; 10/s keeps the
		// paged fetch polite without dragging out a full refresh.
		limiter: infra.NewRateLimiter(10, time.Second),
		cache:   infra.NewCache(15 * time.Minute),
		log:     log,
	}
}

// Ping verifies connectivity to the FiscalData API.
func (c *Client) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s%s?page[number]=1&page[size]=1", c.baseURL, c.endpoint)
	var resp auctionsResponse
	if err := c.fetchJSON(ctx, url, &resp); err != nil {
		return fmt.Errorf("treasury ping: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// fetchJSON fetches JSON from the given URL and decodes into dst.
func (c *Client) fetchJSON(ctx context.Context, url string, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body[:min(len(body), 200)]))
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}
