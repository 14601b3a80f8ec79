package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/atomslab/lead-intake-api/internal/leads"
	"github.com/atomslab/lead-intake-api/internal/observability/metrics"
	"github.com/atomslab/lead-intake-api/pkg/logging"
)

// NotProvided is substituted for empty optional fields in the summary email.
const NotProvided = "Non fornito"

// LeadNotifier sends the operator a summary email for each stored lead.
//
// Sends run on tracked background goroutines: the HTTP response never waits
// for SendGrid, failures are logged and discarded, and Wait() lets shutdown
// drain in-flight sends instead of dropping them.
type LeadNotifier struct {
	sender  EmailSender
	to      string
	timeout time.Duration
	metrics *metrics.IntakeMetrics
	logger  *logging.Logger
	wg      sync.WaitGroup
}

// NewLeadNotifier creates a lead notifier. A nil sender or empty recipient
// disables notification entirely.
func NewLeadNotifier(sender EmailSender, to string, timeout time.Duration, m *metrics.IntakeMetrics, logger *logging.Logger) *LeadNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LeadNotifier{
		sender:  sender,
		to:      to,
		timeout: timeout,
		metrics: m,
		logger:  logger,
	}
}

// LeadCaptured dispatches a best-effort notification and returns immediately.
func (n *LeadNotifier) LeadCaptured(lead *leads.Lead) {
	if n == nil || n.sender == nil || n.to == "" {
		return
	}

	msg := n.buildMessage(lead)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.sender.Send(ctx, msg); err != nil {
			n.logger.Error("lead notification failed", "error", err, "lead_email", lead.Email)
			n.metrics.ObserveNotification("error")
			return
		}
		n.metrics.ObserveNotification("sent")
	}()
}

// Wait blocks until all in-flight notifications have finished. Called during
// graceful shutdown.
func (n *LeadNotifier) Wait() {
	n.wg.Wait()
}

func (n *LeadNotifier) buildMessage(lead *leads.Lead) EmailMessage {
	rows := [][2]string{
		{"Nome", orPlaceholder(lead.Nome)},
		{"Email", orPlaceholder(lead.Email)},
		{"Telefono", orPlaceholder(lead.Phone)},
		{"Farmacia", orPlaceholder(lead.PharmacyName)},
		{"Ruolo", orPlaceholder(lead.Role)},
		{"Fatturato", orPlaceholder(lead.Revenue)},
		{"Sfida principale", orPlaceholder(lead.Challenge)},
		{"Fonte", orPlaceholder(lead.Fonte)},
		{"UTM source", orPlaceholderPtr(lead.UTMSource)},
		{"UTM medium", orPlaceholderPtr(lead.UTMMedium)},
		{"UTM campaign", orPlaceholderPtr(lead.UTMCampaign)},
	}

	var text strings.Builder
	text.WriteString("Nuovo lead ricevuto!\n\n")
	var table strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&text, "%s: %s\n", row[0], row[1])
		fmt.Fprintf(&table,
			`<tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;"><strong>%s:</strong></td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>`,
			html.EscapeString(row[0]), html.EscapeString(row[1]))
	}

	htmlBody := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2>Nuovo lead ricevuto</h2>
<table style="border-collapse: collapse; margin: 20px 0;">%s</table>
</div>`, table.String())

	return EmailMessage{
		To:      n.to,
		Subject: fmt.Sprintf("Nuovo lead: %s", lead.Nome),
		Body:    text.String(),
		HTML:    htmlBody,
	}
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotProvided
	}
	return s
}

func orPlaceholderPtr(s *string) string {
	if s == nil {
		return NotProvided
	}
	return orPlaceholder(*s)
}
