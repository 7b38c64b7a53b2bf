package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setBaseEnv sets the minimum variables a valid dry-run configuration needs
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV", "test")
	t.Setenv("EDGAR_USER_AGENT", "Test Runner test@example.com")
	t.Setenv("NOTIFY_PROVIDER", "")
	t.Setenv("SENDGRID_API_KEY", "")
	t.Setenv("ALERT_EMAIL_TO", "")
	t.Setenv("ALERT_EMAIL_FROM", "")
	t.Setenv("SMTP_USER", "")
	t.Setenv("EDGAR_FORM_TYPES", "")
	t.Setenv("EDGAR_MAX_RESULTS", "")
	t.Setenv("SCAN_WORKERS", "")
}

func TestLoad(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, DefaultFormTypes, cfg.EDGAR.FormTypes)
	assert.Equal(t, 40, cfg.EDGAR.MaxResults)
	assert.Equal(t, 8, cfg.Scan.Workers)
	assert.Equal(t, 45*time.Second, cfg.Scan.FetchTimeout)
	assert.Equal(t, ProviderLog, cfg.Notify.Provider, "no SendGrid key means dry-run delivery")
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadWithCustomValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("EDGAR_FORM_TYPES", "SC TO-I, SC TO-T ,,")
	t.Setenv("EDGAR_MAX_RESULTS", "120")
	t.Setenv("SCAN_WORKERS", "3")
	t.Setenv("QUOTE_TIMEOUT", "5s")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("ALERT_EMAIL_TO", "to@example.com")
	t.Setenv("ALERT_EMAIL_FROM", "from@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"SC TO-I", "SC TO-T"}, cfg.EDGAR.FormTypes)
	assert.Equal(t, 120, cfg.EDGAR.MaxResults)
	assert.Equal(t, 3, cfg.Scan.Workers)
	assert.Equal(t, 5*time.Second, cfg.Scan.QuoteTimeout)
	assert.Equal(t, ProviderSendGrid, cfg.Notify.Provider)
}

func TestValidateMissingUserAgent(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("EDGAR_USER_AGENT", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateInvalidEnv(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENV", "invalid")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateWorkers(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SCAN_WORKERS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestNotifyConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     NotifyConfig
		wantErr bool
	}{
		{"log needs nothing", NotifyConfig{Provider: ProviderLog}, false},
		{"sendgrid complete", NotifyConfig{Provider: ProviderSendGrid, SendGridAPIKey: "k", To: "a@b.c", From: "d@e.f"}, false},
		{"sendgrid without key", NotifyConfig{Provider: ProviderSendGrid, To: "a@b.c", From: "d@e.f"}, true},
		{"sendgrid without recipient", NotifyConfig{Provider: ProviderSendGrid, SendGridAPIKey: "k", From: "d@e.f"}, true},
		{"smtp complete", NotifyConfig{Provider: ProviderSMTP, SMTPHost: "h", SMTPUser: "u", SMTPPass: "p", To: "a@b.c", From: "u"}, false},
		{"smtp without password", NotifyConfig{Provider: ProviderSMTP, SMTPHost: "h", SMTPUser: "u", To: "a@b.c", From: "u"}, true},
		{"unknown provider", NotifyConfig{Provider: "pigeon"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "2h")
	assert.Equal(t, 2*time.Hour, getEnvAsDuration("TEST_DURATION", "1h"))

	t.Setenv("TEST_DURATION", "soon")
	assert.Equal(t, time.Hour, getEnvAsDuration("TEST_DURATION", "1h"), "falls back on parse error")
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "100")
	assert.Equal(t, 100, getEnvAsInt("TEST_INT", 50))

	t.Setenv("TEST_INT", "many")
	assert.Equal(t, 50, getEnvAsInt("TEST_INT", 50))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	assert.True(t, getEnvAsBool("TEST_BOOL", false))
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("TEST_LIST", "")
	assert.Equal(t, []string{"x"}, getEnvAsList("TEST_LIST", []string{"x"}))

	t.Setenv("TEST_LIST", " a , b,, c ")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsList("TEST_LIST", nil))
}
