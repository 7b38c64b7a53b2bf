package yahoo

import (
	"time"

	"github.com/wonny/oddlot/pkg/config"
	"github.com/wonny/oddlot/pkg/httputil"
	"github.com/wonny/oddlot/pkg/logger"
)

// Client handles communication with the Yahoo Finance chart API
// ⭐ SSOT: 시세 조회는 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client.
// An unresolved quote only skips one candidate.
func NewClient(cfg config.MarketConfig, timeout time.Duration, log *logger.Logger) *Client {
	httpClient := httputil.NewWithTimeout(log, timeout).
		WithHeader("User-Agent", cfg.UserAgent).
		WithHeader("Accept", "application/json")

	return NewClientWithHTTP(cfg.BaseURL, httpClient, log)
}

// NewClientWithHTTP creates a client around an already configured HTTP client
func NewClientWithHTTP(baseURL string, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithComponent("yahoo"),
		baseURL:    baseURL,
	}
}
