package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/internal/scanner"
	"github.com/wonny/oddlot/pkg/config"
)

func TestPrintOffers(t *testing.T) {
	var buf bytes.Buffer
	PrintOffers(&buf, []contracts.QualifyingOffer{{
		Ticker:       "ABC",
		CurrentPrice: decimal.RequireFromString("4.5"),
		PriceFloor:   decimal.RequireFromString("5"),
		PriceCeiling: decimal.RequireFromString("6"),
		IssuerName:   "Acme Corp",
		SourceLink:   "https://www.sec.gov/Archives/edgar/data/1/0000000001-24-000001.txt",
	}})

	out := buf.String()
	assert.Contains(t, out, "TICKER")
	assert.Contains(t, out, "$4.50")
	assert.Contains(t, out, "$5.00")
	assert.Contains(t, out, "$6.00")
	assert.Contains(t, out, "10.0%")
	assert.Contains(t, out, "ABC: https://www.sec.gov/Archives/edgar/data/1/0000000001-24-000001.txt")
}

func TestPrintStats(t *testing.T) {
	start := time.Now()
	report := &scanner.Report{
		Stats:      scanner.Stats{Filings: 5, FetchFailed: 1, NoTerms: 2, Qualified: 2},
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
	}

	var buf bytes.Buffer
	PrintStats(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "Filings      : 5")
	assert.Contains(t, out, "Qualified    : 2")
	assert.NotContains(t, out, "Cancelled")
	assert.Contains(t, out, "1.50s")
}

func TestPrintTerms(t *testing.T) {
	var buf bytes.Buffer
	PrintTerms(&buf, contracts.OfferTerms{
		PriceFloor:   decimal.RequireFromString("5"),
		PriceCeiling: decimal.RequireFromString("6"),
	}, false)

	out := buf.String()
	assert.Contains(t, out, "(not found)")
	assert.Contains(t, out, "Not eligible")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, 5, len([]rune(truncate(strings.Repeat("가", 8), 5))))
}

func TestApplyScanFlags(t *testing.T) {
	defer func() {
		scanMaxResults, scanWorkers, scanForms, scanDryRun = 0, 0, nil, false
	}()

	cfg := &config.Config{
		EDGAR:  config.EDGARConfig{MaxResults: 40, FormTypes: config.DefaultFormTypes},
		Scan:   config.ScanConfig{Workers: 8},
		Notify: config.NotifyConfig{Provider: config.ProviderSendGrid},
	}

	applyScanFlags(cfg)
	assert.Equal(t, 40, cfg.EDGAR.MaxResults)
	assert.Equal(t, config.ProviderSendGrid, cfg.Notify.Provider)

	scanMaxResults, scanWorkers, scanForms, scanDryRun = 100, 2, []string{"SC TO-T"}, true
	applyScanFlags(cfg)

	assert.Equal(t, 100, cfg.EDGAR.MaxResults)
	assert.Equal(t, 2, cfg.Scan.Workers)
	assert.Equal(t, []string{"SC TO-T"}, cfg.EDGAR.FormTypes)
	assert.Equal(t, config.ProviderLog, cfg.Notify.Provider)
}
