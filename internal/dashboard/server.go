// Package dashboard provides the HTTP server rendering the debt-issuance
// dashboard: a single HTML page with stacked-area issuance charts for the
// US and selected Euro-area countries.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Maxwe101/debt-dashboard/internal/config"
	"github.com/Maxwe101/debt-dashboard/internal/issuance"
	"github.com/Maxwe101/debt-dashboard/internal/store"
	"github.com/Maxwe101/debt-dashboard/pkg/models"
)

// AnnouncementSource supplies upcoming auction announcements. May be nil,
// in which case the announcements section is omitted.
type AnnouncementSource interface {
	FetchAnnouncements(ctx context.Context) ([]models.Announcement, error)
}

// Server is the dashboard HTTP server.
type Server struct {
	router        chi.Router
	cfg           *config.Config
	store         *store.Store
	announcements AnnouncementSource
	log           *logrus.Entry
	tmpl          *template.Template

	// US auction data is loaded from the snapshot once at startup and
	// treated as immutable for the life of the process.
	usRecords []models.AuctionRecord

	// Euro summaries are read from disk per request; singleflight
	// collapses concurrent loads of the same country.
	euroGroup singleflight.Group
}

// NewServer creates a configured dashboard server. A missing US snapshot
// is not an error: the page renders a placeholder until a refresh has run.
func NewServer(cfg *config.Config, st *store.Store, annc AnnouncementSource, log *logrus.Entry) (*Server, error) {
	tmpl, err := template.New("dashboard").Parse(dashboardHTML)
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}

	s := &Server{
		cfg:           cfg,
		store:         st,
		announcements: annc,
		log:           log,
		tmpl:          tmpl,
	}

	records, err := st.LoadRecords(store.KeyUSAuctions)
	switch {
	case err == nil:
		s.usRecords = records
		log.WithField("records", len(records)).Info("US snapshot loaded")
	case errors.Is(err, store.ErrNotFound):
		log.Warn("US snapshot not found, run a refresh to populate it")
	default:
		return nil, fmt.Errorf("load US snapshot: %w", err)
	}

	s.router = s.buildRouter()
	return s, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("dashboard listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleDashboard)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","us_records":%d}`, len(s.usRecords))
}

// loadEuroSummary reads one country's snapshot, deduplicating concurrent
// reads of the same file.
func (s *Server) loadEuroSummary(countryCode string) (*issuance.Summary, error) {
	v, err, _ := s.euroGroup.Do(countryCode, func() (any, error) {
		return s.store.LoadSummary(store.KeyEuro(countryCode))
	})
	if err != nil {
		return nil, err
	}
	return v.(*issuance.Summary), nil
}
