// Package store persists refresh snapshots to disk, one JSON file per
// data source. Snapshots are fully overwritten on each refresh by writing
// to a temporary file and renaming it into place, so readers see either
// the old or the new complete file, never a partial one.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Maxwe101/debt-dashboard/internal/issuance"
	"github.com/Maxwe101/debt-dashboard/pkg/models"
)

// ErrNotFound is returned when no snapshot has been saved for a key.
// Callers must distinguish it from a present-but-empty snapshot.
var ErrNotFound = errors.New("snapshot not found")

// KeyUSAuctions is the snapshot key for the raw US auction records.
const KeyUSAuctions = "us_auctions"

// KeyEuro returns the snapshot key for a Euro country's monthly summary.
func KeyEuro(countryCode string) string {
	return "euro_" + countryCode
}

// Store reads and writes snapshot files under a data directory.
// Single writer (the refresh job), any number of readers; the two never
// race on file contents because writes go through an atomic rename.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// SaveRecords persists raw auction records under key, replacing any prior
// snapshot.
func (s *Store) SaveRecords(key string, records []models.AuctionRecord) error {
	return s.write(key, records)
}

// LoadRecords returns the last-saved records for key, or ErrNotFound.
func (s *Store) LoadRecords(key string) ([]models.AuctionRecord, error) {
	var records []models.AuctionRecord
	if err := s.read(key, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveSummary persists a precomputed period summary under key, replacing
// any prior snapshot.
func (s *Store) SaveSummary(key string, summary *issuance.Summary) error {
	return s.write(key, summary)
}

// LoadSummary returns the last-saved summary for key, or ErrNotFound.
func (s *Store) LoadSummary(key string) (*issuance.Summary, error) {
	var summary issuance.Summary
	if err := s.read(key, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// write marshals v and renames it into place. Marshaling is deterministic,
// so refreshing twice with identical upstream data produces byte-identical
// snapshot files.
func (s *Store) write(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("replace snapshot %s: %w", key, err)
	}
	return nil
}

// read unmarshals the snapshot for key into v. A corrupt file is surfaced
// as an error, never silently treated as an empty snapshot.
func (s *Store) read(key string, v any) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("read snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return nil
}
