// Package quotes shares in-flight price lookups between filings of one run.
package quotes

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/wonny/oddlot/internal/contracts"
)

// Deduper collapses concurrent lookups of the same ticker into one upstream call.
// Nothing is retained once a call completes.
type Deduper struct {
	resolver contracts.PriceResolver
	group    singleflight.Group
}

// NewDeduper wraps resolver
func NewDeduper(resolver contracts.PriceResolver) *Deduper {
	return &Deduper{resolver: resolver}
}

var _ contracts.PriceResolver = (*Deduper)(nil)

// ResolveLatestPrice resolves ticker, joining an in-flight lookup if one exists.
// A joined caller whose own context ends first returns its context error.
func (d *Deduper) ResolveLatestPrice(ctx context.Context, ticker string) (contracts.MarketQuote, error) {
	key := strings.ToUpper(ticker)

	ch := d.group.DoChan(key, func() (interface{}, error) {
		// detached from the first caller; bounded by the resolver's client timeout
		return d.resolver.ResolveLatestPrice(context.WithoutCancel(ctx), ticker)
	})

	select {
	case <-ctx.Done():
		return contracts.MarketQuote{}, fmt.Errorf("%w: %s: %w", contracts.ErrQuoteUnavailable, ticker, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return contracts.MarketQuote{}, res.Err
		}
		return res.Val.(contracts.MarketQuote), nil
	}
}
