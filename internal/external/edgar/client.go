package edgar

import (
	"time"

	"github.com/wonny/oddlot/pkg/config"
	"github.com/wonny/oddlot/pkg/httputil"
	"github.com/wonny/oddlot/pkg/logger"
	"github.com/wonny/oddlot/pkg/redis"
)

// pageSize is the largest page the full-text search endpoint serves
const pageSize = 100

// Client handles communication with SEC EDGAR full-text search and Archives
// ⭐ SSOT: EDGAR 호출은 이 클라이언트에서만
type Client struct {
	httpClient       *httputil.Client
	logger           *logger.Logger
	searchURL        string
	archivesURL      string
	maxDocumentBytes int64
}

// NewClient creates a new EDGAR client.
// A failed index aborts the run and a failed filing is skipped.
func NewClient(cfg config.EDGARConfig, timeout time.Duration, shared *redis.RateLimiter, log *logger.Logger) *Client {
	httpClient := httputil.NewWithTimeout(log, timeout).
		WithRateLimit(cfg.RequestsPerSecond).
		WithHeader("User-Agent", cfg.UserAgent)

	if shared != nil {
		httpClient = httpClient.WithSharedRateLimiter(shared, redis.EDGARRateLimit)
	}

	return NewClientWithHTTP(cfg, httpClient, log)
}

// NewClientWithHTTP creates a client around an already configured HTTP client
func NewClientWithHTTP(cfg config.EDGARConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient:       httpClient,
		logger:           log.WithComponent("edgar"),
		searchURL:        cfg.SearchURL,
		archivesURL:      cfg.ArchivesURL,
		maxDocumentBytes: cfg.MaxDocumentBytes,
	}
}

// ArchivesURL returns the Archives base the client builds document links from
func (c *Client) ArchivesURL() string {
	return c.archivesURL
}
