package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferTerms is the structured description extracted from one filing's text
// ⭐ SSOT: Extractor → Engine 으로 전달되는 공개매수 조건
type OfferTerms struct {
	PriceFloor        decimal.Decimal `json:"price_floor"`
	PriceCeiling      decimal.Decimal `json:"price_ceiling"`
	HasOddLotPriority bool            `json:"has_odd_lot_priority"`
	Ticker            string          `json:"ticker,omitempty"` // empty when not found
}

// HasTicker reports whether a trading symbol was found
func (o OfferTerms) HasTicker() bool {
	return o.Ticker != ""
}

// MarketQuote is the most recent close for one ticker
type MarketQuote struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
	AsOf   time.Time       `json:"as_of"`
}

// QualifyingOffer is an odd-lot tender offer trading at or below its floor.
// CurrentPrice <= PriceFloor always holds.
type QualifyingOffer struct {
	Ticker       string          `json:"ticker"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	PriceFloor   decimal.Decimal `json:"price_floor"`
	PriceCeiling decimal.Decimal `json:"price_ceiling"`
	IssuerName   string          `json:"issuer_name"`
	SourceLink   string          `json:"source_link"`
	FormType     string          `json:"form_type,omitempty"`
	FiledAt      time.Time       `json:"filed_at,omitempty"`
	QuotedAt     time.Time       `json:"quoted_at,omitempty"`
}

// Discount returns how far below the floor the market trades, as a fraction of the floor
func (q QualifyingOffer) Discount() decimal.Decimal {
	if !q.PriceFloor.IsPositive() {
		return decimal.Zero
	}
	return q.PriceFloor.Sub(q.CurrentPrice).Div(q.PriceFloor)
}
