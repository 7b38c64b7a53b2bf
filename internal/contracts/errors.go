package contracts

import "errors"

// Pipeline failure kinds. Wrap them with fmt.Errorf("...: %w") and test with errors.Is.
var (
	// ErrUpstreamUnavailable means the filing index could not be retrieved; fatal to a run.
	ErrUpstreamUnavailable = errors.New("filing index unavailable")

	// ErrFilingUnavailable means one filing's text could not be fetched; that filing is skipped.
	ErrFilingUnavailable = errors.New("filing unavailable")

	// ErrQuoteUnavailable means no price could be resolved for a ticker; that candidate is skipped.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrNotificationFailed means the report could not be delivered; logged, never fatal.
	ErrNotificationFailed = errors.New("notification failed")
)
