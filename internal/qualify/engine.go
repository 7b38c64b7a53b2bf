package qualify

import (
	"context"
	"time"

	"github.com/wonny/oddlot/internal/contracts"
)

// Engine prices eligible offers and applies the qualification rule
type Engine struct {
	resolver    contracts.PriceResolver
	archivesURL string
	timeout     time.Duration
}

// NewEngine creates an engine. timeout bounds each price lookup; zero means
// the caller's context alone bounds it.
func NewEngine(resolver contracts.PriceResolver, archivesURL string, timeout time.Duration) *Engine {
	return &Engine{
		resolver:    resolver,
		archivesURL: archivesURL,
		timeout:     timeout,
	}
}

// Evaluate returns the qualifying offer for terms, or nil when the filing does
// not qualify. Ineligible terms return before any price lookup. A lookup
// failure is returned as is (it wraps contracts.ErrQuoteUnavailable).
func (e *Engine) Evaluate(ctx context.Context, terms contracts.OfferTerms, ref contracts.FilingReference) (*contracts.QualifyingOffer, error) {
	if !Eligible(terms) {
		return nil, nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	quote, err := e.resolver.ResolveLatestPrice(ctx, terms.Ticker)
	if err != nil {
		return nil, err
	}

	offer, ok := Qualify(terms, quote, ref, e.archivesURL)
	if !ok {
		return nil, nil
	}
	return &offer, nil
}
