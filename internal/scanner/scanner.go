package scanner

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/internal/qualify"
	"github.com/wonny/oddlot/pkg/logger"
)

// Scanner runs one batch: index → fetch → extract → price → qualify
// ⭐ SSOT: 스캔 파이프라인 오케스트레이션은 이 패키지에서만
type Scanner struct {
	index     contracts.FilingIndex
	fetcher   contracts.FilingFetcher
	extractor contracts.OfferExtractor
	engine    *qualify.Engine
	cfg       Config
	logger    *logger.Logger
}

// Config holds scan configuration
type Config struct {
	FormTypes     []string
	MaxResults    int
	Workers       int           // Number of concurrent workers
	SearchTimeout time.Duration // bounds the index request
	FetchTimeout  time.Duration // bounds each filing download
}

// New creates a new Scanner
func New(
	index contracts.FilingIndex,
	fetcher contracts.FilingFetcher,
	extractor contracts.OfferExtractor,
	engine *qualify.Engine,
	cfg Config,
	log *logger.Logger,
) *Scanner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Scanner{
		index:     index,
		fetcher:   fetcher,
		extractor: extractor,
		engine:    engine,
		cfg:       cfg,
		logger:    log.WithField("module", "scanner"),
	}
}

// Report is the outcome of one run
type Report struct {
	Offers     []contracts.QualifyingOffer
	Stats      Stats
	StartedAt  time.Time
	FinishedAt time.Time
}

// Stats counts filings by outcome. Filings = sum of all other fields.
type Stats struct {
	Filings     int
	FetchFailed int
	NoTerms     int
	Ineligible  int
	QuoteFailed int
	Rejected    int
	Qualified   int
	Cancelled   int
}

// outcome is the terminal state of one filing
type outcome int

const (
	outcomeFetchFailed outcome = iota
	outcomeNoTerms
	outcomeIneligible
	outcomeQuoteFailed
	outcomeRejected
	outcomeQualified
	outcomeCancelled
)

// filingResult is what a worker reports for one filing
type filingResult struct {
	Ref     contracts.FilingReference
	Outcome outcome
	Offer   *contracts.QualifyingOffer
	Error   error
}

// Run executes one scan. Only an index failure is returned as an error; every
// per-filing failure is logged, counted and skipped.
func (s *Scanner) Run(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: time.Now()}

	// 1. Fetch the index
	refs, err := s.fetchIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch filing index: %w", err)
	}

	report.Stats.Filings = len(refs)

	s.logger.WithFields(map[string]interface{}{
		"filings": len(refs),
		"forms":   strings.Join(s.cfg.FormTypes, ","),
		"workers": s.cfg.Workers,
	}).Info("Starting scan")

	// 2. Create worker pool
	resultCh := make(chan filingResult, len(refs))
	refCh := make(chan contracts.FilingReference, len(refs))

	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < s.cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID, refCh, resultCh)
		}(i)
	}

	// Send filings to workers
	for _, ref := range refs {
		refCh <- ref
	}
	close(refCh)

	// Wait for all workers to complete
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// 3. Collect results
	for result := range resultCh {
		report.Stats.add(result.Outcome)
		if result.Offer != nil {
			report.Offers = append(report.Offers, *result.Offer)
		}
	}

	// completion order is irrelevant
	slices.SortFunc(report.Offers, func(a, b contracts.QualifyingOffer) int {
		return cmp.Or(
			strings.Compare(a.Ticker, b.Ticker),
			strings.Compare(a.SourceLink, b.SourceLink),
		)
	})

	report.FinishedAt = time.Now()

	s.logger.WithFields(map[string]interface{}{
		"filings":      report.Stats.Filings,
		"fetch_failed": report.Stats.FetchFailed,
		"no_terms":     report.Stats.NoTerms,
		"ineligible":   report.Stats.Ineligible,
		"quote_failed": report.Stats.QuoteFailed,
		"rejected":     report.Stats.Rejected,
		"qualified":    report.Stats.Qualified,
		"cancelled":    report.Stats.Cancelled,
		"duration":     report.FinishedAt.Sub(report.StartedAt).String(),
	}).Info("Scan completed")

	return report, nil
}

func (s *Scanner) fetchIndex(ctx context.Context) ([]contracts.FilingReference, error) {
	if s.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SearchTimeout)
		defer cancel()
	}
	return s.index.FetchRecentFilings(ctx, s.cfg.FormTypes, s.cfg.MaxResults)
}

// worker processes filings until refCh is drained
func (s *Scanner) worker(ctx context.Context, workerID int, refCh <-chan contracts.FilingReference, resultCh chan<- filingResult) {
	for ref := range refCh {
		select {
		case <-ctx.Done():
			resultCh <- filingResult{Ref: ref, Outcome: outcomeCancelled, Error: ctx.Err()}
			continue
		default:
		}

		result := s.process(ctx, ref)

		log := s.logger.WithFiling(ref.ID, ref.CIK, ref.IssuerName).WithField("worker", workerID)
		switch result.Outcome {
		case outcomeFetchFailed:
			log.WithError(result.Error).Warn("Failed to fetch filing")
		case outcomeQuoteFailed:
			log.WithError(result.Error).Warn("Failed to resolve quote")
		case outcomeCancelled:
			log.WithError(result.Error).Debug("Filing cancelled")
		case outcomeQualified:
			log.WithFields(map[string]interface{}{
				"ticker": result.Offer.Ticker,
				"price":  result.Offer.CurrentPrice.String(),
				"floor":  result.Offer.PriceFloor.String(),
			}).Info("Qualifying offer")
		default:
			log.WithField("outcome", result.Outcome.String()).Debug("Filing evaluated")
		}

		resultCh <- result
	}
}

// process runs one filing through fetch, extract and qualify
func (s *Scanner) process(ctx context.Context, ref contracts.FilingReference) filingResult {
	text, err := s.fetchText(ctx, ref)
	if err != nil {
		if ctx.Err() != nil {
			return filingResult{Ref: ref, Outcome: outcomeCancelled, Error: err}
		}
		return filingResult{Ref: ref, Outcome: outcomeFetchFailed, Error: err}
	}

	terms, ok := s.extractor.Extract(text)
	if !ok {
		return filingResult{Ref: ref, Outcome: outcomeNoTerms}
	}
	if !qualify.Eligible(terms) {
		return filingResult{Ref: ref, Outcome: outcomeIneligible}
	}

	offer, err := s.engine.Evaluate(ctx, terms, ref)
	switch {
	case err != nil && ctx.Err() != nil:
		return filingResult{Ref: ref, Outcome: outcomeCancelled, Error: err}
	case err != nil:
		return filingResult{Ref: ref, Outcome: outcomeQuoteFailed, Error: err}
	case offer == nil:
		return filingResult{Ref: ref, Outcome: outcomeRejected}
	default:
		return filingResult{Ref: ref, Outcome: outcomeQualified, Offer: offer}
	}
}

func (s *Scanner) fetchText(ctx context.Context, ref contracts.FilingReference) (string, error) {
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	text, err := s.fetcher.FetchText(ctx, ref)
	if err != nil && !errors.Is(err, contracts.ErrFilingUnavailable) {
		err = fmt.Errorf("%w: %w", contracts.ErrFilingUnavailable, err)
	}
	return text, err
}

func (st *Stats) add(o outcome) {
	switch o {
	case outcomeFetchFailed:
		st.FetchFailed++
	case outcomeNoTerms:
		st.NoTerms++
	case outcomeIneligible:
		st.Ineligible++
	case outcomeQuoteFailed:
		st.QuoteFailed++
	case outcomeRejected:
		st.Rejected++
	case outcomeQualified:
		st.Qualified++
	case outcomeCancelled:
		st.Cancelled++
	}
}

func (o outcome) String() string {
	switch o {
	case outcomeFetchFailed:
		return "fetch_failed"
	case outcomeNoTerms:
		return "no_terms"
	case outcomeIneligible:
		return "ineligible"
	case outcomeQuoteFailed:
		return "quote_failed"
	case outcomeRejected:
		return "rejected"
	case outcomeQualified:
		return "qualified"
	case outcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
