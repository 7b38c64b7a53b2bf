package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wonny/oddlot/internal/contracts"
	"github.com/wonny/oddlot/pkg/httputil"
	"github.com/wonny/oddlot/pkg/logger"
)

// sendGridRequest is the v3 mail send body
type sendGridRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SendGridSender delivers alerts through the SendGrid v3 API
type SendGridSender struct {
	httpClient *httputil.Client
	renderer   *Renderer
	logger     *logger.Logger
	endpoint   string
	from       string
	to         []string
}

// NewSendGridSender creates a sender. httpClient is given the bearer key.
func NewSendGridSender(httpClient *httputil.Client, baseURL, apiKey, from, to string, log *logger.Logger) *SendGridSender {
	return &SendGridSender{
		httpClient: httpClient.WithHeader("Authorization", "Bearer "+apiKey),
		renderer:   NewRenderer(),
		logger:     log.WithComponent("sendgrid"),
		endpoint:   strings.TrimRight(baseURL, "/") + "/v3/mail/send",
		from:       from,
		to:         splitAddresses(to),
	}
}

// Notify sends one alert for offers. No message is sent for an empty list.
func (s *SendGridSender) Notify(ctx context.Context, offers []contracts.QualifyingOffer) error {
	if len(offers) == 0 {
		return nil
	}

	msg, err := s.renderer.Render(offers, time.Now())
	if err != nil {
		return fmt.Errorf("%w: %w", contracts.ErrNotificationFailed, err)
	}

	to := make([]sendGridAddress, 0, len(s.to))
	for _, addr := range s.to {
		to = append(to, sendGridAddress{Email: addr})
	}

	body := sendGridRequest{
		Personalizations: []sendGridPersonalization{{To: to}},
		From:             sendGridAddress{Email: s.from},
		Subject:          msg.Subject,
		Content: []sendGridContent{
			{Type: "text/plain", Value: msg.Text},
			{Type: "text/html", Value: msg.HTML},
		},
	}

	resp, err := s.httpClient.PostJSON(ctx, s.endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: %w", contracts.ErrNotificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%w: sendgrid status %d: %s", contracts.ErrNotificationFailed, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	s.logger.WithFields(map[string]interface{}{
		"subject": msg.Subject,
		"offers":  len(offers),
	}).Info("Alert sent")
	return nil
}

// splitAddresses accepts a comma-separated recipient list
func splitAddresses(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
