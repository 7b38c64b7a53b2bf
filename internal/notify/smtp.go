package notify

import (
	"context"
	"fmt"
	"time"

	gomail "gopkg.in/mail.v2"

	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/pkg/logger"
)

// defaultSMTPTimeout applies when ctx has no deadline
const defaultSMTPTimeout = 10 * time.Second

// SMTPConfig holds SMTP configuration for sending emails
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string
}

// dialFunc delivers a message; replaced in tests
type dialFunc func(cfg SMTPConfig, timeout time.Duration, m *gomail.Message) error

// SMTPSender delivers alerts via SMTP
type SMTPSender struct {
	cfg      SMTPConfig
	renderer *Renderer
	logger   *logger.Logger
	dial     dialFunc
}

// NewSMTPSender creates a sender with the given SMTP configuration
func NewSMTPSender(cfg SMTPConfig, log *logger.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:      cfg,
		renderer: NewRenderer(),
		logger:   log.WithComponent("smtp"),
		dial:     dialAndSend,
	}
}

func dialAndSend(cfg SMTPConfig, timeout time.Duration, m *gomail.Message) error {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	dialer.Timeout = timeout
	return dialer.DialAndSend(m)
}

// Notify sends one alert with an HTML body and plain text fallback.
// No message is sent for an empty list.
func (s *SMTPSender) Notify(ctx context.Context, offers []contracts.QualifyingOffer) error {
	if len(offers) == 0 {
		return nil
	}

	msg, err := s.renderer.Render(offers, time.Now())
	if err != nil {
		return fmt.Errorf("%w: %w", contracts.ErrNotificationFailed, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", splitAddresses(s.cfg.To)...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	timeout := defaultSMTPTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 {
		return fmt.Errorf("%w: %w", contracts.ErrNotificationFailed, context.DeadlineExceeded)
	}

	if err := s.dial(s.cfg, timeout, m); err != nil {
		return fmt.Errorf("%w: smtp %s:%d: %w", contracts.ErrNotificationFailed, s.cfg.Host, s.cfg.Port, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"subject": msg.Subject,
		"offers":  len(offers),
	}).Info("Alert sent")
	return nil
}
