package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Maxwe101/debt-dashboard/internal/issuance"
	"github.com/Maxwe101/debt-dashboard/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func sampleRecords() []models.AuctionRecord {
	issue := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	return []models.AuctionRecord{
		{
			CUSIP:          "912796YT0",
			SecurityType:   "Bill",
			SecurityTerm:   "13-Week",
			IssueDate:      issue,
			MaturityDate:   issue.AddDate(0, 0, 91),
			AuctionDate:    issue.AddDate(0, 0, -2),
			TotalAccepted:  decimal.RequireFromString("84000000100.50"),
			OfferingAmount: decimal.RequireFromString("84000000000"),
			DurationDays:   91,
			MaturityBucket: issuance.Bucket3To12M,
		},
		{
			CUSIP:        "912810TZ1",
			SecurityType: "Bond",
			SecurityTerm: "30-Year",
			IssueDate:    issue,
			// no maturity date
			TotalAccepted:  decimal.Zero,
			MaturityBucket: issuance.BucketOther,
		},
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := sampleRecords()
	if err := s.SaveRecords(KeyUSAuctions, in); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}
	out, err := s.LoadRecords(KeyUSAuctions)
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d records, want %d", len(out), len(in))
	}
	if !out[0].TotalAccepted.Equal(in[0].TotalAccepted) {
		t.Errorf("amount round trip: got %s, want %s", out[0].TotalAccepted, in[0].TotalAccepted)
	}
	if !out[0].IssueDate.Equal(in[0].IssueDate) {
		t.Errorf("date round trip: got %v, want %v", out[0].IssueDate, in[0].IssueDate)
	}
	if out[1].HasMaturity() {
		t.Error("zero maturity date should survive the round trip as zero")
	}
	if out[0].MaturityBucket != issuance.Bucket3To12M {
		t.Errorf("bucket round trip: got %q", out[0].MaturityBucket)
	}
}

func TestSummaryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := issuance.Aggregate([]issuance.Observation{
		{Date: time.Date(2023, time.May, 2, 0, 0, 0, 0, time.UTC), Bucket: issuance.TenorUpTo1Y, Amount: decimal.RequireFromString("1234.56")},
		{Date: time.Date(2023, time.June, 9, 0, 0, 0, 0, time.UTC), Bucket: issuance.Tenor2To5Y, Amount: decimal.NewFromInt(90)},
	}, issuance.Monthly, issuance.EuroTenorOrder)

	if err := s.SaveSummary(KeyEuro("DE"), in); err != nil {
		t.Fatalf("SaveSummary: %v", err)
	}
	out, err := s.LoadSummary(KeyEuro("DE"))
	if err != nil {
		t.Fatalf("LoadSummary: %v", err)
	}
	if len(out.Buckets) != 2 || out.Buckets[0] != issuance.TenorUpTo1Y {
		t.Errorf("buckets round trip: %v", out.Buckets)
	}
	if !out.Rows[0].Amounts[0].Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("amount round trip: %s", out.Rows[0].Amounts[0])
	}
	if !out.Rows[0].Period.Equal(time.Date(2023, time.May, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("period round trip: %v", out.Rows[0].Period)
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.LoadRecords(KeyUSAuctions); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.LoadSummary(KeyEuro("FR")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEmptySnapshotIsNotMissing(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveRecords(KeyUSAuctions, []models.AuctionRecord{}); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}
	out, err := s.LoadRecords(KeyUSAuctions)
	if err != nil {
		t.Fatalf("empty snapshot should load cleanly, got %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected 0 records, got %d", len(out))
	}
}

func TestCorruptSnapshotSurfacesError(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(filepath.Join(s.Dir(), KeyUSAuctions+".json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadRecords(KeyUSAuctions); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("corrupt snapshot should be an explicit error, got %v", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveRecords(KeyUSAuctions, sampleRecords()); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRecords(KeyUSAuctions, sampleRecords()[:1]); err != nil {
		t.Fatal(err)
	}
	out, err := s.LoadRecords(KeyUSAuctions)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Errorf("expected overwrite to leave 1 record, got %d", len(out))
	}
}

// Saving identical data twice must produce byte-identical snapshot files.
func TestSaveIdempotence(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.Dir(), KeyUSAuctions+".json")

	if err := s.SaveRecords(KeyUSAuctions, sampleRecords()); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRecords(KeyUSAuctions, sampleRecords()); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical input produced different snapshot bytes")
	}
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveRecords(KeyUSAuctions, sampleRecords()); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
