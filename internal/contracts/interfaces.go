package contracts

import "context"

// FilingIndex lists recent filings of the given form types, newest first
// ⭐ SSOT: 공시 목록 조회 인터페이스
type FilingIndex interface {
	FetchRecentFilings(ctx context.Context, formTypes []string, maxResults int) ([]FilingReference, error)
}

// FilingFetcher retrieves the raw text of one filing
type FilingFetcher interface {
	FetchText(ctx context.Context, ref FilingReference) (string, error)
}

// OfferExtractor parses filing text into offer terms.
// ok is false when the text holds no price range at all.
type OfferExtractor interface {
	Extract(text string) (terms OfferTerms, ok bool)
}

// PriceResolver returns the latest close for a ticker
type PriceResolver interface {
	ResolveLatestPrice(ctx context.Context, ticker string) (MarketQuote, error)
}

// Notifier delivers the qualifying offers of one run
type Notifier interface {
	Notify(ctx context.Context, offers []QualifyingOffer) error
}
