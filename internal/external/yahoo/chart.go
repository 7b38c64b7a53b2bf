package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/pkg/httputil"
)

// ChartResponse represents the v8 chart API response
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartResult holds one symbol's series
type ChartResult struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Currency string `json:"currency"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*decimal.Decimal `json:"close"` // null on halted sessions
		} `json:"quote"`
	} `json:"indicators"`
}

// ChartError is the error object Yahoo returns for unknown symbols
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *ChartError) Error() string {
	return e.Code + ": " + e.Description
}

// ResolveLatestPrice returns the most recent daily close for ticker
// ⭐ SSOT: 종가 조회는 이 함수에서만
func (c *Client) ResolveLatestPrice(ctx context.Context, ticker string) (contracts.MarketQuote, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		strings.TrimRight(c.baseURL, "/"),
		url.PathEscape(Symbol(ticker)),
		url.Values{"range": {"5d"}, "interval": {"1d"}}.Encode(),
	)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return contracts.MarketQuote{}, fmt.Errorf("%w: %s: %w", contracts.ErrQuoteUnavailable, ticker, err)
	}

	// Yahoo answers unknown symbols with 404 and a chart.error body
	raw, readErr := httputil.ReadBody(resp, 4<<20)
	if !httputil.IsSuccess(resp.StatusCode) {
		var chart ChartResponse
		if readErr == nil && json.Unmarshal(raw, &chart) == nil && chart.Chart.Error != nil {
			return contracts.MarketQuote{}, fmt.Errorf("%w: %s: %w", contracts.ErrQuoteUnavailable, ticker, chart.Chart.Error)
		}
		return contracts.MarketQuote{}, fmt.Errorf("%w: %s: unexpected status code: %d", contracts.ErrQuoteUnavailable, ticker, resp.StatusCode)
	}
	if readErr != nil {
		return contracts.MarketQuote{}, fmt.Errorf("%w: %s: read response: %w", contracts.ErrQuoteUnavailable, ticker, readErr)
	}

	quote, err := parseChart(raw)
	if err != nil {
		return contracts.MarketQuote{}, fmt.Errorf("%w: %s: %w", contracts.ErrQuoteUnavailable, ticker, err)
	}
	quote.Ticker = ticker

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"price":  quote.Price.String(),
		"as_of":  quote.AsOf.Format(time.DateOnly),
	}).Debug("Resolved quote")

	return quote, nil
}

// parseChart picks the latest non-null close of the first result
func parseChart(raw []byte) (contracts.MarketQuote, error) {
	var chart ChartResponse
	if err := json.Unmarshal(raw, &chart); err != nil {
		return contracts.MarketQuote{}, fmt.Errorf("decode response: %w", err)
	}

	if chart.Chart.Error != nil {
		return contracts.MarketQuote{}, chart.Chart.Error
	}
	if len(chart.Chart.Result) == 0 {
		return contracts.MarketQuote{}, fmt.Errorf("empty chart result")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return contracts.MarketQuote{}, fmt.Errorf("no quote series")
	}

	closes := result.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] == nil {
			continue
		}
		if !closes[i].IsPositive() {
			return contracts.MarketQuote{}, fmt.Errorf("non-positive close: %s", closes[i])
		}

		quote := contracts.MarketQuote{Price: *closes[i]}
		if i < len(result.Timestamp) {
			quote.AsOf = time.Unix(result.Timestamp[i], 0).UTC()
		}
		return quote, nil
	}

	return contracts.MarketQuote{}, fmt.Errorf("no close in range")
}

// Symbol maps a filing ticker to Yahoo's notation: share classes use a dash ("BRK.B" → "BRK-B")
func Symbol(ticker string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(ticker)), ".", "-")
}
