package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for a scan run
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// Upstreams
	EDGAR  EDGARConfig
	Market MarketConfig

	// Pipeline
	Scan ScanConfig

	// Delivery
	Notify NotifyConfig

	// Redis (shared rate limit only)
	Redis RedisConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// EDGARConfig holds SEC EDGAR configuration
type EDGARConfig struct {
	SearchURL         string
	ArchivesURL       string
	UserAgent         string // SEC fair-access policy requires a contact
	FormTypes         []string
	MaxResults        int
	RequestsPerSecond int
	MaxDocumentBytes  int64
}

// MarketConfig holds market-data provider configuration
type MarketConfig struct {
	BaseURL   string
	UserAgent string
}

// ScanConfig holds pipeline concurrency and per-call timeouts
type ScanConfig struct {
	Workers       int
	SearchTimeout time.Duration
	FetchTimeout  time.Duration
	QuoteTimeout  time.Duration
	NotifyTimeout time.Duration
}

// NotifyConfig holds report delivery configuration
type NotifyConfig struct {
	Provider string // sendgrid, smtp, log

	SendGridAPIKey  string
	SendGridBaseURL string

	To   string
	From string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// Notification providers
const (
	ProviderSendGrid = "sendgrid"
	ProviderSMTP     = "smtp"
	ProviderLog      = "log"
)

// DefaultFormTypes are the tender-offer and going-private forms scanned by default
var DefaultFormTypes = []string{"SC TO-I", "SC TO-T", "SC 13E3"}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		EDGAR: EDGARConfig{
			SearchURL:         getEnv("EDGAR_SEARCH_URL", "https://efts.sec.gov/LATEST/search-index"),
			ArchivesURL:       getEnv("EDGAR_ARCHIVES_URL", "https://www.sec.gov/Archives"),
			UserAgent:         getEnv("EDGAR_USER_AGENT", ""),
			FormTypes:         getEnvAsList("EDGAR_FORM_TYPES", DefaultFormTypes),
			MaxResults:        getEnvAsInt("EDGAR_MAX_RESULTS", 40),
			RequestsPerSecond: getEnvAsInt("EDGAR_REQUESTS_PER_SECOND", 10),
			MaxDocumentBytes:  int64(getEnvAsInt("EDGAR_MAX_DOCUMENT_BYTES", 32<<20)),
		},

		Market: MarketConfig{
			BaseURL:   getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			UserAgent: getEnv("YAHOO_USER_AGENT", "Mozilla/5.0 (compatible; oddlot/1.0)"),
		},

		Scan: ScanConfig{
			Workers:       getEnvAsInt("SCAN_WORKERS", 8),
			SearchTimeout: getEnvAsDuration("SEARCH_TIMEOUT", "30s"),
			FetchTimeout:  getEnvAsDuration("FETCH_TIMEOUT", "45s"),
			QuoteTimeout:  getEnvAsDuration("QUOTE_TIMEOUT", "15s"),
			NotifyTimeout: getEnvAsDuration("NOTIFY_TIMEOUT", "20s"),
		},

		Notify: NotifyConfig{
			Provider:        strings.ToLower(getEnv("NOTIFY_PROVIDER", "")),
			SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
			SendGridBaseURL: getEnv("SENDGRID_BASE_URL", "https://api.sendgrid.com"),
			To:              getEnv("ALERT_EMAIL_TO", ""),
			From:            getEnv("ALERT_EMAIL_FROM", ""),
			SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:        getEnvAsInt("SMTP_PORT", 587),
			SMTPUser:        getEnv("SMTP_USER", ""),
			SMTPPass:        getEnv("SMTP_PASS", ""),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if cfg.Notify.Provider == "" {
		cfg.Notify.Provider = defaultProvider(cfg.Notify)
	}
	if cfg.Notify.From == "" {
		cfg.Notify.From = cfg.Notify.SMTPUser
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" && c.Env != "test" {
		return fmt.Errorf("ENV must be one of: development, staging, production, test")
	}

	if c.EDGAR.UserAgent == "" {
		return fmt.Errorf("EDGAR_USER_AGENT is required (e.g. \"Jane Doe jane@example.com\")")
	}

	if len(c.EDGAR.FormTypes) == 0 {
		return fmt.Errorf("EDGAR_FORM_TYPES must name at least one form type")
	}

	if c.EDGAR.MaxResults < 1 {
		return fmt.Errorf("EDGAR_MAX_RESULTS must be >= 1")
	}

	if c.Scan.Workers < 1 {
		return fmt.Errorf("SCAN_WORKERS must be >= 1")
	}

	return c.Notify.Validate()
}

// Validate checks that the selected provider has what it needs to deliver a report
func (n NotifyConfig) Validate() error {
	switch n.Provider {
	case ProviderLog:
		return nil
	case ProviderSendGrid:
		if n.SendGridAPIKey == "" {
			return fmt.Errorf("SENDGRID_API_KEY is required for provider %q", n.Provider)
		}
	case ProviderSMTP:
		if n.SMTPHost == "" || n.SMTPUser == "" || n.SMTPPass == "" {
			return fmt.Errorf("SMTP_HOST, SMTP_USER and SMTP_PASS are required for provider %q", n.Provider)
		}
	default:
		return fmt.Errorf("NOTIFY_PROVIDER must be one of: sendgrid, smtp, log (got %q)", n.Provider)
	}

	if n.To == "" || n.From == "" {
		return fmt.Errorf("ALERT_EMAIL_TO and ALERT_EMAIL_FROM are required for provider %q", n.Provider)
	}
	return nil
}

func defaultProvider(n NotifyConfig) string {
	if n.SendGridAPIKey != "" {
		return ProviderSendGrid
	}
	return ProviderLog
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma-separated value, trimming blanks
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return append([]string(nil), defaultValue...)
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
