package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/internal/scanner"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// ScanMetadata holds what a scan header shows
type ScanMetadata struct {
	Forms      string
	MaxResults int
	Workers    int
	Provider   string
	StartedAt  time.Time
}

// PrintScanHeader prints a formatted scan header
func PrintScanHeader(w io.Writer, meta ScanMetadata) {
	fmt.Fprintln(w)
	PrintDoubleSeparator(w)
	fmt.Fprintln(w, "  Odd Lot Tender Scan")
	PrintSeparator(w)
	PrintKeyValue(w, "Forms", meta.Forms, 9)
	PrintKeyValue(w, "Filings", fmt.Sprintf("up to %d", meta.MaxResults), 9)
	PrintKeyValue(w, "Workers", fmt.Sprintf("%d", meta.Workers), 9)
	PrintKeyValue(w, "Delivery", meta.Provider, 9)
	PrintSeparator(w)
	fmt.Fprintf(w, "[Scan] Started at %s\n", meta.StartedAt.Format("2006-01-02 15:04:05"))
}

// offerColumns are the qualifying-offer table columns
var (
	offerColumns = []string{"TICKER", "PRICE", "FLOOR", "CEILING", "DISCOUNT", "ISSUER"}
	offerWidths  = []int{8, 10, 10, 10, 9, 30}
)

// PrintOffers prints qualifying offers as a table followed by their links
func PrintOffers(w io.Writer, offers []contracts.QualifyingOffer) {
	fmt.Fprintln(w)
	if len(offers) == 0 {
		return
	}

	PrintTableHeader(w, offerColumns, offerWidths)
	for _, o := range offers {
		PrintTableRow(w, []string{
			o.Ticker,
			"$" + o.CurrentPrice.StringFixed(2),
			"$" + o.PriceFloor.StringFixed(2),
			"$" + o.PriceCeiling.StringFixed(2),
			o.Discount().Shift(2).StringFixed(1) + "%",
			truncate(o.IssuerName, offerWidths[5]),
		}, offerWidths)
	}

	fmt.Fprintln(w)
	links := make([]string, 0, len(offers))
	for _, o := range offers {
		links = append(links, o.Ticker+": "+o.SourceLink)
	}
	PrintList(w, links)
}

// PrintStats prints the per-outcome counts of a run
func PrintStats(w io.Writer, report *scanner.Report) {
	st := report.Stats

	fmt.Fprintln(w)
	PrintSeparator(w)
	PrintKeyValue(w, "Filings", fmt.Sprintf("%d", st.Filings), 12)
	PrintKeyValue(w, "Unavailable", fmt.Sprintf("%d", st.FetchFailed), 12)
	PrintKeyValue(w, "No terms", fmt.Sprintf("%d", st.NoTerms), 12)
	PrintKeyValue(w, "Ineligible", fmt.Sprintf("%d", st.Ineligible), 12)
	PrintKeyValue(w, "No quote", fmt.Sprintf("%d", st.QuoteFailed), 12)
	PrintKeyValue(w, "Above floor", fmt.Sprintf("%d", st.Rejected), 12)
	PrintKeyValue(w, "Qualified", fmt.Sprintf("%d", st.Qualified), 12)
	if st.Cancelled > 0 {
		PrintKeyValue(w, "Cancelled", fmt.Sprintf("%d", st.Cancelled), 12)
	}
	PrintSeparator(w)
	fmt.Fprintf(w, "✅ Scan completed in %.2fs\n", report.FinishedAt.Sub(report.StartedAt).Seconds())
}

// PrintTerms prints extracted offer terms
func PrintTerms(w io.Writer, terms contracts.OfferTerms, eligible bool) {
	ticker := terms.Ticker
	if ticker == "" {
		ticker = "(not found)"
	}

	fmt.Fprintln(w)
	PrintSeparator(w)
	PrintKeyValue(w, "Floor", "$"+terms.PriceFloor.StringFixed(2), 8)
	PrintKeyValue(w, "Ceiling", "$"+terms.PriceCeiling.StringFixed(2), 8)
	PrintKeyValue(w, "Odd lot", fmt.Sprintf("%t", terms.HasOddLotPriority), 8)
	PrintKeyValue(w, "Ticker", ticker, 8)
	PrintSeparator(w)

	if eligible {
		PrintSuccess(w, "Eligible: the scan would price this offer")
	} else {
		PrintInfo(w, "Not eligible: needs an odd-lot provision and a ticker")
	}
}

// PrintQuote prints a resolved quote
func PrintQuote(w io.Writer, q contracts.MarketQuote) {
	asOf := "-"
	if !q.AsOf.IsZero() {
		asOf = q.AsOf.Format("2006-01-02")
	}
	PrintKeyValue(w, "Ticker", q.Ticker, 6)
	PrintKeyValue(w, "Close", "$"+q.Price.StringFixed(2), 6)
	PrintKeyValue(w, "As of", asOf, 6)
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator(w io.Writer) {
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "⚠️  %s\n", message)
	fmt.Fprintln(w)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "❌ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, message string) {
	fmt.Fprintf(w, "ℹ️  %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	PrintTableRow(w, columns, widths)

	// Separator line
	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		if i < len(values)-1 {
			fmt.Fprintf(w, "%-*s  ", widths[i], val)
		} else {
			fmt.Fprint(w, val)
		}
	}
	fmt.Fprintln(w)
}

// PrintList prints a bulleted list
func PrintList(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "   • %s\n", item)
	}
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(w io.Writer, key string, value string, keyWidth int) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}

// truncate shortens s to n runes with an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
