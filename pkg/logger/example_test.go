package logger_test

import (
	"errors"

	"github.com/wonny/oddlot/pkg/config"
	"github.com/wonny/oddlot/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	log.Debug("This won't appear (level is info)")
	log.Info("Scan started")
	log.Infof("Fetched %d filings", 40)
}

// Example_withFiling demonstrates per-filing structured logging
func Example_withFiling() {
	log := logger.New(&config.Config{Env: "production", LogLevel: "info", LogFormat: "json"})

	log.WithComponent("scanner").
		WithFiling("0001193125-24-012345:d1.htm", "0000320193", "Acme Corp").
		WithError(errors.New("status 503")).
		Warn("Filing skipped")
}
