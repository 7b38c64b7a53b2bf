package qualify

import (
	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/internal/external/edgar"
)

// Eligible reports whether terms can ever qualify: an odd-lot provision and a
// ticker to price are both required
func Eligible(terms contracts.OfferTerms) bool {
	return terms.HasOddLotPriority && terms.HasTicker()
}

// Qualify applies the qualification rule: the market trades at or below the floor.
// The boundary is inclusive.
// ⭐ SSOT: 적격 판정 규칙은 이 함수에서만
func Qualify(terms contracts.OfferTerms, quote contracts.MarketQuote, ref contracts.FilingReference, archivesURL string) (contracts.QualifyingOffer, bool) {
	if !Eligible(terms) {
		return contracts.QualifyingOffer{}, false
	}
	if !quote.Price.IsPositive() || !terms.PriceFloor.IsPositive() {
		return contracts.QualifyingOffer{}, false
	}
	if quote.Price.GreaterThan(terms.PriceFloor) {
		return contracts.QualifyingOffer{}, false
	}

	return contracts.QualifyingOffer{
		Ticker:       terms.Ticker,
		CurrentPrice: quote.Price,
		PriceFloor:   terms.PriceFloor,
		PriceCeiling: terms.PriceCeiling,
		IssuerName:   ref.IssuerName,
		SourceLink:   edgar.DocumentURL(archivesURL, ref),
		FormType:     ref.FormType,
		FiledAt:      ref.FiledAt,
		QuotedAt:     quote.AsOf,
	}, true
}
