package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wonny/oddlot/internal/contracts"
)

var (
	// priceRange matches "$5.00 - $6.00", "5-6", "$5.00–$6.00". First match wins.
	priceRange = regexp.MustCompile(`\$?(\d+(?:\.\d+)?)\s*[-–]\s*\$?(\d+(?:\.\d+)?)`)

	oddLot = regexp.MustCompile(`(?i)fewer\s+than\s+100\s+shares|odd\s+lot`)

	tickerDecl = regexp.MustCompile(`(?i)trading\s+symbols?:?\s*([A-Z.]{1,5})`)
)

// RegexExtractor extracts offer terms with fixed patterns
// ⭐ SSOT: 공개매수 조건 추출 규칙은 여기서만 정의
type RegexExtractor struct{}

// NewRegexExtractor creates a new extractor
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

var _ contracts.OfferExtractor = (*RegexExtractor)(nil)

// Extract parses filing text into offer terms.
// ok is false when the text holds no usable price range; a filing without an
// odd-lot phrase or ticker still yields terms and is rejected downstream.
func (e *RegexExtractor) Extract(text string) (contracts.OfferTerms, bool) {
	text = Normalize(text)

	floor, ceiling, ok := findPriceRange(text)
	if !ok {
		return contracts.OfferTerms{}, false
	}

	return contracts.OfferTerms{
		PriceFloor:        floor,
		PriceCeiling:      ceiling,
		HasOddLotPriority: oddLot.MatchString(text),
		Ticker:            findTicker(text),
	}, true
}

// findPriceRange returns the first range in text as (min, max)
func findPriceRange(text string) (decimal.Decimal, decimal.Decimal, bool) {
	m := priceRange.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, decimal.Zero, false
	}

	a, errA := decimal.NewFromString(m[1])
	b, errB := decimal.NewFromString(m[2])
	if errA != nil || errB != nil {
		return decimal.Zero, decimal.Zero, false
	}

	// prices must be positive
	if !a.IsPositive() || !b.IsPositive() {
		return decimal.Zero, decimal.Zero, false
	}

	return decimal.Min(a, b), decimal.Max(a, b), true
}

func findTicker(text string) string {
	m := tickerDecl.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}
