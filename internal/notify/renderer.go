/*
Package notify renders qualifying offers into an alert email and delivers it.
*/
package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/oddlot/internal/contracts"
)

// AlertSubject is the subject prefix of every alert
const AlertSubject = "Odd Lot Tender Alert"

// RenderedMessage is a ready-to-send alert
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

// Renderer renders alerts as plain text with an HTML alternative
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer with the default email template
func NewRenderer() *Renderer {
	t := template.Must(template.New("alert").Funcs(template.FuncMap{
		"money":   money,
		"percent": percent,
	}).Parse(alertHTMLTemplate))
	return &Renderer{tmpl: t}
}

// templateData is what the HTML template sees
type templateData struct {
	Subject string
	RunAt   string
	Offers  []contracts.QualifyingOffer
}

// Render produces the alert for offers
func (r *Renderer) Render(offers []contracts.QualifyingOffer, runAt time.Time) (*RenderedMessage, error) {
	subject := fmt.Sprintf("%s (%d)", AlertSubject, len(offers))

	var htmlBuf bytes.Buffer
	data := templateData{
		Subject: subject,
		RunAt:   runAt.Format("02 Jan 2006 15:04 MST"),
		Offers:  offers,
	}
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    RenderText(offers),
		HTML:    htmlBuf.String(),
	}, nil
}

// RenderText renders one block per offer:
//
//	ABC @ $4.50 ≤ $5.00
//	Acme Corp
//	https://www.sec.gov/Archives/...
func RenderText(offers []contracts.QualifyingOffer) string {
	blocks := make([]string, 0, len(offers))
	for _, o := range offers {
		blocks = append(blocks, fmt.Sprintf("%s @ %s ≤ %s\n%s\n%s",
			o.Ticker, money(o.CurrentPrice), money(o.PriceFloor), o.IssuerName, o.SourceLink))
	}
	return strings.Join(blocks, "\n\n")
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func percent(o contracts.QualifyingOffer) string {
	return o.Discount().Shift(2).StringFixed(1) + "%"
}
