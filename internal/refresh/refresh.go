// Package refresh orchestrates data updates: fetching from upstream
// sources and persisting snapshots to the local store.
package refresh

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Maxwe101/debt-dashboard/internal/issuance"
	"github.com/Maxwe101/debt-dashboard/internal/store"
	"github.com/Maxwe101/debt-dashboard/pkg/models"
)

// Scope selects which data sources a refresh run covers.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeUS
	ScopeEuro
)

// TreasurySource fetches US auction records.
type TreasurySource interface {
	FetchAuctions(ctx context.Context) ([]models.AuctionRecord, error)
}

// EuroSource fetches one country's monthly issuance summary.
type EuroSource interface {
	FetchCountry(ctx context.Context, countryCode string) (*issuance.Summary, error)
}

// Job runs data refreshes and writes snapshots.
type Job struct {
	store    *store.Store
	treasury TreasurySource
	euro     EuroSource
	log      *logrus.Entry
}

// NewJob creates a refresh job.
func NewJob(st *store.Store, treasury TreasurySource, euro EuroSource, log *logrus.Entry) *Job {
	return &Job{store: st, treasury: treasury, euro: euro, log: log}
}

// Run performs a refresh for the given scope. A failed update leaves the
// previous snapshot untouched and does not stop the remaining updates,
// but any failure makes the run return an error so a scheduler sees a
// non-zero exit even when other sources succeeded.
func (j *Job) Run(ctx context.Context, scope Scope) error {
	var errs []error
	var attempts int

	if scope == ScopeAll || scope == ScopeUS {
		attempts++
		if err := j.refreshUS(ctx); err != nil {
			j.log.WithError(err).Error("US refresh failed, keeping previous snapshot")
			errs = append(errs, fmt.Errorf("us: %w", err))
		}
	}

	if scope == ScopeAll || scope == ScopeEuro {
		for _, cc := range models.EuroCountryCodes() {
			attempts++
			if err := j.refreshEuroCountry(ctx, cc); err != nil {
				j.log.WithField("country", cc).WithError(err).Error("euro refresh failed, keeping previous snapshot")
				errs = append(errs, fmt.Errorf("euro %s: %w", cc, err))
			}
		}
	}

	if len(errs) > 0 {
		j.log.WithFields(logrus.Fields{"failed": len(errs), "attempted": attempts}).Warn("refresh finished with failures")
		return fmt.Errorf("refresh: %d of %d updates failed: %w", len(errs), attempts, errors.Join(errs...))
	}
	return nil
}

func (j *Job) refreshUS(ctx context.Context) error {
	records, err := j.treasury.FetchAuctions(ctx)
	if err != nil {
		return err
	}
	if err := j.store.SaveRecords(store.KeyUSAuctions, records); err != nil {
		return err
	}
	j.log.WithField("records", len(records)).Info("US snapshot updated")
	return nil
}

func (j *Job) refreshEuroCountry(ctx context.Context, countryCode string) error {
	summary, err := j.euro.FetchCountry(ctx, countryCode)
	if err != nil {
		return err
	}
	if err := j.store.SaveSummary(store.KeyEuro(countryCode), summary); err != nil {
		return err
	}
	j.log.WithFields(logrus.Fields{
		"country": countryCode,
		"periods": len(summary.Rows),
	}).Info("euro snapshot updated")
	return nil
}
