package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/internal/external/edgar"
	"github.com/wonny/oddlot/internal/external/yahoo"
	"github.com/wonny/oddlot/internal/extract"
	"github.com/wonny/oddlot/internal/notify"
	"github.com/wonny/oddlot/internal/qualify"
	"github.com/wonny/oddlot/internal/quotes"
	"github.com/wonny/oddlot/internal/scanner"
	"github.com/wonny/oddlot/pkg/config"
	"github.com/wonny/oddlot/pkg/httputil"
	"github.com/wonny/oddlot/pkg/logger"
	"github.com/wonny/oddlot/pkg/redis"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan recent tender offers and send an alert",
	Long: `Runs one batch:

  1. list recent tender-offer filings from EDGAR full-text search
  2. download each filing and extract its price range, odd-lot
     provision and trading symbol
  3. price eligible offers and keep those trading at or below the floor
  4. email the qualifying offers

Only a failed filing index makes the run fail. Unavailable filings and
quotes are skipped; a failed delivery is reported as a warning.

Example:
  go run ./cmd/oddlot scan
  go run ./cmd/oddlot scan --forms "SC TO-I,SC TO-T" --workers 4
  go run ./cmd/oddlot scan --dry-run`,
	RunE: runScan,
}

var (
	// Scan flags
	scanMaxResults int
	scanWorkers    int
	scanForms      []string
	scanDryRun     bool
)

func init() {
	rootCmd.AddCommand(scanCmd)

	// Flags
	scanCmd.Flags().IntVar(&scanMaxResults, "max-results", 0, "filings to scan (default EDGAR_MAX_RESULTS)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "concurrent filings (default SCAN_WORKERS)")
	scanCmd.Flags().StringSliceVar(&scanForms, "forms", nil, "form types to scan (default EDGAR_FORM_TYPES)")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "log the alert instead of sending it")
}

func runScan(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	applyScanFlags(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Optional shared rate limit
	var shared *redis.RateLimiter
	rdb, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, using the in-process EDGAR limit only")
	} else {
		defer rdb.Close()
		if rdb.Enabled() {
			shared = redis.NewRateLimiter(rdb, "oddlot")
		}
	}

	// 3. Wire the pipeline
	s := newScanner(cfg, shared, log)

	notifier, err := newNotifier(cfg, log)
	if err != nil {
		return fmt.Errorf("build notifier: %w", err)
	}

	w := cmd.OutOrStdout()
	PrintScanHeader(w, ScanMetadata{
		Forms:      strings.Join(cfg.EDGAR.FormTypes, ", "),
		MaxResults: cfg.EDGAR.MaxResults,
		Workers:    cfg.Scan.Workers,
		Provider:   cfg.Notify.Provider,
		StartedAt:  time.Now(),
	})

	// 4. Run
	report, err := s.Run(ctx)
	if err != nil {
		log.Errorf("Scan failed: %v", err)
		PrintError(w, err.Error())
		return err
	}

	PrintOffers(w, report.Offers)
	PrintStats(w, report)

	if ctx.Err() != nil {
		log.Warnf("Scan interrupted with %d of %d filings cancelled", report.Stats.Cancelled, report.Stats.Filings)
		PrintWarning(w, "Scan interrupted; alert not sent")
		return fmt.Errorf("scan interrupted: %w", ctx.Err())
	}

	// 5. Deliver
	if len(report.Offers) == 0 {
		fmt.Fprintln(w, "No qualifying offers today.")
		return nil
	}

	notifyCtx, cancel := context.WithTimeout(ctx, cfg.Scan.NotifyTimeout)
	defer cancel()

	if err := notifier.Notify(notifyCtx, report.Offers); err != nil {
		log.WithError(err).Warn("Failed to deliver alert")
		PrintWarning(w, "Alert delivery failed: "+err.Error())
		return nil
	}

	log.Infof("Alert sent via %s (%d offers)", cfg.Notify.Provider, len(report.Offers))
	PrintSuccess(w, fmt.Sprintf("Alert sent via %s (%d offers)", cfg.Notify.Provider, len(report.Offers)))
	return nil
}

// applyScanFlags overrides configuration with explicitly set flags
func applyScanFlags(cfg *config.Config) {
	if scanMaxResults > 0 {
		cfg.EDGAR.MaxResults = scanMaxResults
	}
	if scanWorkers > 0 {
		cfg.Scan.Workers = scanWorkers
	}
	if len(scanForms) > 0 {
		cfg.EDGAR.FormTypes = scanForms
	}
	if scanDryRun {
		cfg.Notify.Provider = config.ProviderLog
	}
}

// newScanner wires index, fetcher, extractor, resolver and engine
func newScanner(cfg *config.Config, shared *redis.RateLimiter, log *logger.Logger) *scanner.Scanner {
	edgarClient := edgar.NewClient(cfg.EDGAR, max(cfg.Scan.FetchTimeout, cfg.Scan.SearchTimeout), shared, log)
	resolver := quotes.NewDeduper(yahoo.NewClient(cfg.Market, cfg.Scan.QuoteTimeout, log))
	engine := qualify.NewEngine(resolver, edgarClient.ArchivesURL(), cfg.Scan.QuoteTimeout)

	return scanner.New(
		edgarClient,
		edgarClient,
		extract.NewRegexExtractor(),
		engine,
		scanner.Config{
			FormTypes:     cfg.EDGAR.FormTypes,
			MaxResults:    cfg.EDGAR.MaxResults,
			Workers:       cfg.Scan.Workers,
			SearchTimeout: cfg.Scan.SearchTimeout,
			FetchTimeout:  cfg.Scan.FetchTimeout,
		},
		log,
	)
}

func newNotifier(cfg *config.Config, log *logger.Logger) (contracts.Notifier, error) {
	httpClient := httputil.NewWithTimeout(log, cfg.Scan.NotifyTimeout)
	return notify.New(cfg.Notify, httpClient, log)
}
