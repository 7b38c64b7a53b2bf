package notify

import (
	"context"
	"time"

	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/pkg/logger"
)

// LogSender writes alerts to the log instead of sending them (dry run)
type LogSender struct {
	renderer *Renderer
	logger   *logger.Logger
}

// NewLogSender creates a dry-run sender
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{
		renderer: NewRenderer(),
		logger:   log.WithComponent("notify"),
	}
}

// Notify logs the rendered alert
func (s *LogSender) Notify(ctx context.Context, offers []contracts.QualifyingOffer) error {
	if len(offers) == 0 {
		return nil
	}

	msg, err := s.renderer.Render(offers, time.Now())
	if err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"subject": msg.Subject,
		"offers":  len(offers),
		"body":    msg.Text,
	}).Info("Alert (dry run)")
	return nil
}
