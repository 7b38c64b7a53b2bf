package notify

import (
	"fmt"

	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/pkg/config"
	"github.com/wonny/oddlot/pkg/httputil"
	"github.com/wonny/oddlot/pkg/logger"
)

// New selects the sender for cfg.Provider
// ⭐ SSOT: 알림 채널 선택은 여기서만
func New(cfg config.NotifyConfig, httpClient *httputil.Client, log *logger.Logger) (contracts.Notifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case config.ProviderSendGrid:
		return NewSendGridSender(httpClient, cfg.SendGridBaseURL, cfg.SendGridAPIKey, cfg.From, cfg.To, log), nil
	case config.ProviderSMTP:
		return NewSMTPSender(SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.From,
			To:   cfg.To,
		}, log), nil
	case config.ProviderLog:
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("unknown notify provider: %q", cfg.Provider)
	}
}
