package dashboard

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"time"

	"github.com/Maxwe101/debt-dashboard/internal/chart"
	"github.com/Maxwe101/debt-dashboard/internal/issuance"
	"github.com/Maxwe101/debt-dashboard/internal/store"
	"github.com/Maxwe101/debt-dashboard/pkg/models"
)

const dateLayout = "2006-01-02"

// pageData is the template payload for the dashboard page.
type pageData struct {
	Title           string
	SelectedCountry string
	Countries       []countryOption

	IsUS      bool
	StartDate string
	EndDate   string

	// Message replaces the charts when set (empty cache, empty window).
	Message      string
	MixChart     template.HTML
	NominalChart template.HTML

	Forthcoming   []forthcomingRow
	Announcements []announcementRow
}

type countryOption struct {
	Code     string
	Name     string
	Selected bool
}

type forthcomingRow struct {
	AuctionDate string
	Security    string
	Amount      string
}

type announcementRow struct {
	Title     string
	Link      string
	Published string
}

// now is a seam for tests; the handler treats "today" as its date in UTC.
var now = time.Now

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		country = "US"
	}
	if _, ok := models.CountryName[country]; !ok {
		http.Error(w, fmt.Sprintf("unknown country %q", country), http.StatusBadRequest)
		return
	}

	data := pageData{
		SelectedCountry: country,
		Countries:       countryOptions(country),
	}

	if country == "US" {
		data.IsUS = true
		if code := s.renderUS(r, &data); code != 0 {
			http.Error(w, data.Message, code)
			return
		}
	} else {
		s.renderEuro(country, &data)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.log.WithError(err).Error("render dashboard")
	}
}

// renderUS fills the page for the US view. A non-zero return is an HTTP
// error status with data.Message as the body.
func (s *Server) renderUS(r *http.Request, data *pageData) int {
	data.Title = "U.S. Treasury Debt Issuance Dashboard"

	if len(s.usRecords) == 0 {
		data.Message = "US data cache is empty. Run a refresh to populate it."
		return 0
	}

	today := now().UTC().Truncate(24 * time.Hour)
	start := minIssueDate(s.usRecords)
	end := today

	if q := r.URL.Query().Get("start_date"); q != "" {
		t, err := time.Parse(dateLayout, q)
		if err != nil {
			data.Message = "invalid start_date; use YYYY-MM-DD"
			return http.StatusBadRequest
		}
		start = t
	}
	if q := r.URL.Query().Get("end_date"); q != "" {
		t, err := time.Parse(dateLayout, q)
		if err != nil {
			data.Message = "invalid end_date; use YYYY-MM-DD"
			return http.StatusBadRequest
		}
		end = t
	}
	data.StartDate = start.Format(dateLayout)
	data.EndDate = end.Format(dateLayout)

	data.Forthcoming = forthcomingAuctions(s.usRecords, today)
	if s.announcements != nil {
		anns, err := s.announcements.FetchAnnouncements(r.Context())
		if err != nil {
			s.log.WithError(err).Warn("announcements unavailable")
		} else {
			data.Announcements = announcementRows(anns)
		}
	}

	var obs []issuance.Observation
	for _, rec := range s.usRecords {
		if rec.IssueDate.Before(start) || rec.IssueDate.After(end) {
			continue
		}
		obs = append(obs, issuance.Observation{
			Date:   rec.IssueDate,
			Bucket: rec.MaturityBucket,
			Amount: rec.TotalAccepted,
		})
	}
	if len(obs) == 0 {
		data.Message = "No data for selected date range."
		return 0
	}

	summary := issuance.Aggregate(obs, issuance.Quarterly, issuance.USBucketOrder)
	labels := periodLabels(summary)

	pctCfg := chart.DefaultConfig()
	pctCfg.Title = "U.S. Treasury Debt Issuance Mix (by Quarter)"
	pctCfg.YLabel = "Issuance Mix (%)"
	data.MixChart = template.HTML(chart.StackedArea(
		percentSeries(summary, issuance.USBucketColors), labels, pctCfg))

	nomCfg := chart.DefaultConfig()
	nomCfg.Title = "Nominal Debt Issuance by Maturity (by Quarter)"
	nomCfg.YLabel = "Issuance Amount ($ Billions)"
	data.NominalChart = template.HTML(chart.StackedArea(
		nominalSeries(summary, issuance.USBucketColors, 1e9), labels, nomCfg))

	return 0
}

// renderEuro fills the page for a Euro-area country view.
func (s *Server) renderEuro(countryCode string, data *pageData) {
	name := models.CountryName[countryCode]
	data.Title = name + " Debt Issuance Dashboard"

	summary, err := s.loadEuroSummary(countryCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			data.Message = fmt.Sprintf("Euro data cache for %s is empty. Run a refresh to populate it.", name)
		} else {
			s.log.WithField("country", countryCode).WithError(err).Error("load euro snapshot")
			data.Message = fmt.Sprintf("Euro data for %s could not be loaded.", name)
		}
		return
	}

	// Months with zero total issuance carry no mix information; drop them
	// before charting, matching the nominal chart's window.
	summary = positivePeriods(summary)
	if summary.Empty() {
		data.Message = "No positive issuance data to plot."
		return
	}
	labels := periodLabels(summary)

	pctCfg := chart.DefaultConfig()
	pctCfg.Title = name + " Debt Issuance Mix (by Month)"
	pctCfg.YLabel = "Issuance Mix (%)"
	data.MixChart = template.HTML(chart.StackedArea(
		percentSeries(summary, issuance.EuroTenorColors), labels, pctCfg))

	// ECB amounts arrive in € millions; charts show billions.
	nomCfg := chart.DefaultConfig()
	nomCfg.Title = name + " Nominal Debt Issuance by Tenor (by Month)"
	nomCfg.YLabel = "Issuance Amount (€ Billions)"
	data.NominalChart = template.HTML(chart.StackedArea(
		nominalSeries(summary, issuance.EuroTenorColors, 1e3), labels, nomCfg))
}

// ---------------------------------------------------------------------------
// View helpers
// ---------------------------------------------------------------------------

func countryOptions(selected string) []countryOption {
	codes := append([]string{"US"}, models.EuroCountryCodes()...)
	opts := make([]countryOption, 0, len(codes))
	for _, code := range codes {
		opts = append(opts, countryOption{
			Code:     code,
			Name:     models.CountryName[code],
			Selected: code == selected,
		})
	}
	return opts
}

func minIssueDate(records []models.AuctionRecord) time.Time {
	var min time.Time
	for _, rec := range records {
		if rec.IssueDate.IsZero() {
			continue
		}
		if min.IsZero() || rec.IssueDate.Before(min) {
			min = rec.IssueDate
		}
	}
	return min
}

// forthcomingAuctions lists auctions dated strictly after today, soonest
// first, with offering amounts formatted in $ billions.
func forthcomingAuctions(records []models.AuctionRecord, today time.Time) []forthcomingRow {
	var future []models.AuctionRecord
	for _, rec := range records {
		if rec.AuctionDate.After(today) {
			future = append(future, rec)
		}
	}
	sort.Slice(future, func(i, j int) bool {
		return future[i].AuctionDate.Before(future[j].AuctionDate)
	})

	rows := make([]forthcomingRow, 0, len(future))
	for _, rec := range future {
		rows = append(rows, forthcomingRow{
			AuctionDate: rec.AuctionDate.Format(dateLayout),
			Security:    rec.SecurityTerm,
			Amount:      fmt.Sprintf("$%.2fB", rec.OfferingAmount.InexactFloat64()/1e9),
		})
	}
	return rows
}

func announcementRows(anns []models.Announcement) []announcementRow {
	if len(anns) > 10 {
		anns = anns[:10]
	}
	rows := make([]announcementRow, 0, len(anns))
	for _, a := range anns {
		row := announcementRow{Title: a.Title, Link: a.Link}
		if !a.Published.IsZero() {
			row.Published = a.Published.Format(dateLayout)
		}
		rows = append(rows, row)
	}
	return rows
}

// positivePeriods returns a summary restricted to periods whose total
// issuance is positive.
func positivePeriods(s *issuance.Summary) *issuance.Summary {
	out := &issuance.Summary{Buckets: s.Buckets}
	for _, row := range s.Rows {
		if row.Total().IsPositive() {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

func periodLabels(s *issuance.Summary) []string {
	labels := make([]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		labels = append(labels, row.Period.Format(dateLayout))
	}
	return labels
}

// percentSeries converts a summary into per-bucket percentage chart
// series.
func percentSeries(s *issuance.Summary, colors map[string]string) []chart.Series {
	pct := s.Percent()
	series := make([]chart.Series, 0, len(pct.Buckets))
	for bi, bucket := range pct.Buckets {
		values := make([]float64, len(pct.Rows))
		for ri, row := range pct.Rows {
			values[ri] = row.Values[bi]
		}
		series = append(series, chart.Series{
			Name:   bucket,
			Values: values,
			Color:  colors[bucket],
		})
	}
	return series
}

// nominalSeries converts a summary into per-bucket chart series, scaling
// amounts down by divisor (to billions).
func nominalSeries(s *issuance.Summary, colors map[string]string, divisor float64) []chart.Series {
	series := make([]chart.Series, 0, len(s.Buckets))
	for bi, bucket := range s.Buckets {
		values := make([]float64, len(s.Rows))
		for ri, row := range s.Rows {
			values[ri] = row.Amounts[bi].InexactFloat64() / divisor
		}
		series = append(series, chart.Series{
			Name:   bucket,
			Values: values,
			Color:  colors[bucket],
		})
	}
	return series
}
