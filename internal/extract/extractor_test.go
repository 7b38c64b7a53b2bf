package extract

import (
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantOK      bool
		wantFloor   string
		wantCeiling string
		wantOddLot  bool
		wantTicker  string
	}{
		{
			name:        "complete offer",
			text:        "The Company is offering to purchase shares at a price of $5.00 - $6.00 per share. Holders of an odd lot will be accepted first. Trading symbol: ABC",
			wantOK:      true,
			wantFloor:   "5.00",
			wantCeiling: "6.00",
			wantOddLot:  true,
			wantTicker:  "ABC",
		},
		{
			name:        "en dash without dollar signs",
			text:        "price not greater than 12.50–14 per Share; stockholders owning fewer than 100 shares",
			wantOK:      true,
			wantFloor:   "12.50",
			wantCeiling: "14",
			wantOddLot:  true,
		},
		{
			name:        "no odd-lot provision",
			text:        "at a price between $20 - $22 per share. Trading Symbols: XYZ",
			wantOK:      true,
			wantFloor:   "20",
			wantCeiling: "22",
			wantOddLot:  false,
			wantTicker:  "XYZ",
		},
		{
			name:        "no ticker",
			text:        "$1.10-$1.25 per share, odd lots given priority",
			wantOK:      true,
			wantFloor:   "1.10",
			wantCeiling: "1.25",
			wantOddLot:  true,
		},
		{
			name:        "first range wins",
			text:        "$3.00 - $4.00 per share, later amended to $7.00 - $8.00, odd lot",
			wantOK:      true,
			wantFloor:   "3.00",
			wantCeiling: "4.00",
			wantOddLot:  true,
		},
		{
			name:   "no range",
			text:   "This Schedule TO relates to the offer by the Company. odd lot. trading symbol: ABC",
			wantOK: false,
		},
		{
			name:   "zero bound",
			text:   "$0 - $5.00 per share, odd lot, trading symbol: ABC",
			wantOK: false,
		},
		{
			name:   "empty",
			text:   "",
			wantOK: false,
		},
	}

	e := NewRegexExtractor()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, ok := e.Extract(tt.text)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}

			assert.True(t, dec(tt.wantFloor).Equal(terms.PriceFloor), "floor: got %s", terms.PriceFloor)
			assert.True(t, dec(tt.wantCeiling).Equal(terms.PriceCeiling), "ceiling: got %s", terms.PriceCeiling)
			assert.Equal(t, tt.wantOddLot, terms.HasOddLotPriority)
			assert.Equal(t, tt.wantTicker, terms.Ticker)
			assert.Equal(t, tt.wantTicker != "", terms.HasTicker())
		})
	}
}

// A descending range is stored as floor = smaller, ceiling = larger.
func TestExtract_DescendingRange(t *testing.T) {
	terms, ok := NewRegexExtractor().Extract("purchase price of $6.00 - $5.00 per share, odd lot, trading symbol: ABC")
	require.True(t, ok)

	assert.True(t, dec("5.00").Equal(terms.PriceFloor))
	assert.True(t, dec("6.00").Equal(terms.PriceCeiling))
	assert.True(t, terms.PriceFloor.LessThanOrEqual(terms.PriceCeiling))
}

func TestExtract_NoNumericRange(t *testing.T) {
	texts := []string{
		"odd lot holders",
		"price of $5.00 per share",
		"5 to 6 dollars",
		"trading symbol: ABC - listed on NASDAQ",
		"- $ -",
		"fewer than 100 shares",
	}

	e := NewRegexExtractor()
	for _, text := range texts {
		_, ok := e.Extract(text)
		assert.False(t, ok, "text %q", text)
	}
}

func TestExtract_OddLotPhrases(t *testing.T) {
	const prefix = "$5 - $6 per share. "

	positive := []string{
		"odd lot",
		"ODD LOT",
		"Odd Lots",
		"odd\n  lot",
		"fewer than 100 shares",
		"FEWER THAN 100 SHARES",
		"Fewer\tthan  100\nshares",
	}
	negative := []string{
		"",
		"fewer than 1000 shares",
		"oddlot",
		"round lot",
		"less than 100 shares",
	}

	e := NewRegexExtractor()

	for _, phrase := range positive {
		terms, ok := e.Extract(prefix + phrase)
		require.True(t, ok)
		assert.True(t, terms.HasOddLotPriority, "phrase %q", phrase)
	}
	for _, phrase := range negative {
		terms, ok := e.Extract(prefix + phrase)
		require.True(t, ok)
		assert.False(t, terms.HasOddLotPriority, "phrase %q", phrase)
	}
}

func TestExtract_TickerShape(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Z.]{1,5}$`)

	tests := []struct {
		text string
		want string
	}{
		{"trading symbol: abc", "ABC"},
		{"Trading Symbol ABCD", "ABCD"},
		{"TRADING SYMBOLS: BRK.B", "BRK.B"},
		{"trading symbol:GOOGLE", "GOOGL"},
		{"trading symbol: X", "X"},
	}

	e := NewRegexExtractor()

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			terms, ok := e.Extract("$1 - $2 " + tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, terms.Ticker)
			assert.Regexp(t, valid, terms.Ticker)
		})
	}
}

func TestExtract_HTML(t *testing.T) {
	html := `<html><head><style>p { color: red }</style></head><body>
<p>The Company invites stockholders to tender at prices not greater than &#36;8.00 nor less than &#36;7.25&#8211;<b>&#36;8.00</b> per share.</p>
<p>Odd&nbsp;Lots will be purchased first.</p>
<table><tr><td>Trading Symbol:</td><td>qrs</td></tr></table>
</body></html>`

	terms, ok := NewRegexExtractor().Extract(html)
	require.True(t, ok)

	assert.True(t, dec("7.25").Equal(terms.PriceFloor), "floor: got %s", terms.PriceFloor)
	assert.True(t, dec("8.00").Equal(terms.PriceCeiling))
	assert.True(t, terms.HasOddLotPriority)
	assert.Equal(t, "QRS", terms.Ticker)
}

const submissionHeaderFixture = `<SEC-DOCUMENT>0001193125-24-012345.txt : 20240115
<SEC-HEADER>0001193125-24-012345.hdr.sgml : 20240115
<ACCEPTANCE-DATETIME>20240115163012
ACCESSION NUMBER:		0001193125-24-012345
CONFORMED SUBMISSION TYPE:	SC TO-I
PUBLIC DOCUMENT COUNT:		2
FILED AS OF DATE:		20240115
DATE AS OF CHANGE:		20240115

SUBJECT COMPANY:

	COMPANY DATA:
		COMPANY CONFORMED NAME:			ACME CORP
		CENTRAL INDEX KEY:			0000320193
		STANDARD INDUSTRIAL CLASSIFICATION:	SERVICES-PREPACKAGED SOFTWARE [7372]
		FISCAL YEAR END:			0930

	BUSINESS ADDRESS:
		STREET 1:		1 MAIN ST
		BUSINESS PHONE:		212-555-0100
</SEC-HEADER>
<DOCUMENT>
<TYPE>SC TO-I
<SEQUENCE>1
<FILENAME>d123456dsctoi.htm
<DESCRIPTION>SC TO-I
<TEXT>
`

func TestExtract_CompleteSubmission(t *testing.T) {
	t.Run("html document", func(t *testing.T) {
		text := submissionHeaderFixture +
			"<html><body><p>Purchase price range: $5.00 - $6.00 per share.</p>" +
			"<p>Holders of fewer than 100 shares will be accepted first.</p>" +
			"<p>Trading Symbol: ABC</p></body></html>\n</TEXT>\n</DOCUMENT>\n</SEC-DOCUMENT>\n"

		terms, ok := NewRegexExtractor().Extract(text)
		require.True(t, ok)

		assert.True(t, dec("5.00").Equal(terms.PriceFloor), "floor: got %s", terms.PriceFloor)
		assert.True(t, dec("6.00").Equal(terms.PriceCeiling), "ceiling: got %s", terms.PriceCeiling)
		assert.True(t, terms.HasOddLotPriority)
		assert.Equal(t, "ABC", terms.Ticker)
	})

	t.Run("plain text document", func(t *testing.T) {
		text := submissionHeaderFixture +
			"OFFER TO PURCHASE FOR CASH\nat a price range of $12.50 - $14.00 per share.\n" +
			"ODD LOTS will be purchased before proration.\nTrading symbol: XYZ\n</TEXT>\n</DOCUMENT>\n</SEC-DOCUMENT>\n"

		terms, ok := NewRegexExtractor().Extract(text)
		require.True(t, ok)

		assert.True(t, dec("12.50").Equal(terms.PriceFloor), "floor: got %s", terms.PriceFloor)
		assert.True(t, dec("14.00").Equal(terms.PriceCeiling), "ceiling: got %s", terms.PriceCeiling)
		assert.Equal(t, "XYZ", terms.Ticker)
	})

	t.Run("header alone yields no range", func(t *testing.T) {
		terms, ok := NewRegexExtractor().Extract(submissionHeaderFixture + "No price terms.\n</TEXT>\n</DOCUMENT>\n</SEC-DOCUMENT>\n")
		assert.False(t, ok)
		assert.True(t, terms.PriceFloor.IsZero())
		assert.True(t, terms.PriceCeiling.IsZero())
	})
}

func TestNormalize(t *testing.T) {
	t.Run("plain text unchanged", func(t *testing.T) {
		text := "price < $5 - $6 > odd lot"
		assert.Equal(t, text, Normalize(text))
	})

	t.Run("markup flattened", func(t *testing.T) {
		got := Normalize(`<div>one</div><div>two&nbsp;three</div><!-- hidden --><script>var x = "$1-$2";</script>`)
		assert.Contains(t, got, "one\n")
		assert.Contains(t, got, "two three")
		assert.NotContains(t, got, "hidden")
		assert.NotContains(t, got, "$1-$2")
		assert.False(t, strings.Contains(got, "<div"))
	})

	t.Run("submission envelope dropped", func(t *testing.T) {
		got := Normalize(submissionHeaderFixture + "body text\n</TEXT>\n</DOCUMENT>\n</SEC-DOCUMENT>\n")
		assert.Contains(t, got, "body text")
		assert.NotContains(t, got, "0001193125")
		assert.NotContains(t, got, "ACCESSION NUMBER")
		assert.NotContains(t, got, "d123456dsctoi.htm")
	})
}
