// debtdash — Government Debt Issuance Dashboard
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Maxwe101/debt-dashboard/internal/config"
	"github.com/Maxwe101/debt-dashboard/internal/dashboard"
	"github.com/Maxwe101/debt-dashboard/internal/logging"
	"github.com/Maxwe101/debt-dashboard/internal/providers/ecb"
	"github.com/Maxwe101/debt-dashboard/internal/providers/treasury"
	"github.com/Maxwe101/debt-dashboard/internal/refresh"
	"github.com/Maxwe101/debt-dashboard/internal/store"
	"github.com/Maxwe101/debt-dashboard/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set in PersistentPreRunE.
var (
	cfg *config.Config
	log *logrus.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "debtdash",
	Short: "debtdash — government debt issuance dashboard",
	Long: `debtdash fetches government debt issuance data (US Treasury auctions
and Euro-area ECB securities issues), caches it locally, and serves an
HTML dashboard of issuance mix and nominal issuance charts.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; environment variables win either way.
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		log, err = logging.Setup(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("debtdash %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.New(cfg.Data.Dir)
		if err != nil {
			return fmt.Errorf("open data store: %w", err)
		}

		annc := treasury.New(cfg.Treasury, logging.Component(log, "treasury"))
		srv, err := dashboard.NewServer(cfg, st, annc, logging.Component(log, "dashboard"))
		if err != nil {
			return err
		}

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		return srv.ListenAndServe(addr)
	},
}

// --- Refresh Command ---

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch upstream data and update local snapshots",
	Long: `Fetch upstream data and rewrite the local JSON snapshots.

By default both sources are refreshed. Use --us or --euro to refresh a
single source, e.g. from separate daily and monthly cron jobs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		usOnly, _ := cmd.Flags().GetBool("us")
		euroOnly, _ := cmd.Flags().GetBool("euro")
		if usOnly && euroOnly {
			return fmt.Errorf("--us and --euro are mutually exclusive")
		}

		scope := refresh.ScopeAll
		switch {
		case usOnly:
			scope = refresh.ScopeUS
		case euroOnly:
			scope = refresh.ScopeEuro
		}

		st, err := store.New(cfg.Data.Dir)
		if err != nil {
			return fmt.Errorf("open data store: %w", err)
		}

		job := refresh.NewJob(
			st,
			treasury.New(cfg.Treasury, logging.Component(log, "treasury")),
			ecb.New(cfg.ECB, logging.Component(log, "ecb")),
			logging.Component(log, "refresh"),
		)
		return job.Run(cmd.Context(), scope)
	},
}

func init() {
	refreshCmd.Flags().Bool("us", false, "refresh only US Treasury auction data")
	refreshCmd.Flags().Bool("euro", false, "refresh only Euro-area issuance data")
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and local snapshot state",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.New(cfg.Data.Dir)
		if err != nil {
			return fmt.Errorf("open data store: %w", err)
		}

		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  debtdash — Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:    %s (%s)\n", version, commit)
		fmt.Printf("  Data dir:   %s\n", st.Dir())
		fmt.Printf("  Server:     %s:%d\n", cfg.Server.Host, cfg.Server.Port)
		fmt.Println()

		fmt.Println("  Snapshots:")
		if records, err := st.LoadRecords(store.KeyUSAuctions); err == nil {
			fmt.Printf("    %-12s %d records\n", "US:", len(records))
		} else {
			fmt.Printf("    %-12s missing\n", "US:")
		}
		for _, cc := range models.EuroCountryCodes() {
			if summary, err := st.LoadSummary(store.KeyEuro(cc)); err == nil {
				fmt.Printf("    %-12s %d periods\n", cc+":", len(summary.Rows))
			} else {
				fmt.Printf("    %-12s missing\n", cc+":")
			}
		}
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		fmt.Println("  Upstream:")
		for _, line := range upstreamStatus(ctx, cfg, log) {
			fmt.Printf("    %s\n", line)
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// upstreamStatus pings each data source and reports reachability.
func upstreamStatus(ctx context.Context, cfg *config.Config, log *logrus.Logger) []string {
	sources := []struct {
		name string
		ping func(context.Context) error
	}{
		{"Treasury", treasury.New(cfg.Treasury, logging.Component(log, "treasury")).Ping},
		{"ECB", ecb.New(cfg.ECB, logging.Component(log, "ecb")).Ping},
	}

	lines := make([]string, 0, len(sources))
	for _, src := range sources {
		if err := src.ping(ctx); err != nil {
			lines = append(lines, fmt.Sprintf("%-12s unreachable (%v)", src.name+":", err))
		} else {
			lines = append(lines, fmt.Sprintf("%-12s ok", src.name+":"))
		}
	}
	return lines
}
