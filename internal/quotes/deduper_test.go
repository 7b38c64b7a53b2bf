package quotes

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/oddlot/internal/contracts"
)

type blockingResolver struct {
	calls   int32
	release chan struct{}
	err     error
}

func (r *blockingResolver) ResolveLatestPrice(ctx context.Context, ticker string) (contracts.MarketQuote, error) {
	atomic.AddInt32(&r.calls, 1)
	<-r.release
	if r.err != nil {
		return contracts.MarketQuote{}, r.err
	}
	return contracts.MarketQuote{Ticker: ticker, Price: decimal.RequireFromString("4.50")}, nil
}

func TestDeduper_SharesInFlightLookup(t *testing.T) {
	resolver := &blockingResolver{release: make(chan struct{})}
	d := NewDeduper(resolver)

	const callers = 5
	var wg sync.WaitGroup
	quotes := make([]contracts.MarketQuote, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			quotes[i], errs[i] = d.ResolveLatestPrice(context.Background(), "ABC")
		}(i)
	}

	// let every caller join before the lookup completes
	require.Eventually(t, func() bool { return atomic.LoadInt32(&resolver.calls) == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(resolver.release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&resolver.calls))
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "ABC", quotes[i].Ticker)
	}
}

func TestDeduper_DoesNotRetain(t *testing.T) {
	resolver := &blockingResolver{release: make(chan struct{})}
	close(resolver.release)
	d := NewDeduper(resolver)

	_, err := d.ResolveLatestPrice(context.Background(), "ABC")
	require.NoError(t, err)
	_, err = d.ResolveLatestPrice(context.Background(), "ABC")
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&resolver.calls))
}

func TestDeduper_PropagatesError(t *testing.T) {
	upstream := errors.New("boom")
	resolver := &blockingResolver{release: make(chan struct{}), err: upstream}
	close(resolver.release)

	_, err := NewDeduper(resolver).ResolveLatestPrice(context.Background(), "ABC")
	assert.ErrorIs(t, err, upstream)
}

func TestDeduper_CallerCancelled(t *testing.T) {
	resolver := &blockingResolver{release: make(chan struct{})}
	defer close(resolver.release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewDeduper(resolver).ResolveLatestPrice(ctx, "ABC")
	assert.ErrorIs(t, err, contracts.ErrQuoteUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
