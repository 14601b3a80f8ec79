package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomslab/lead-intake-api/internal/leads"
)

type capturingSender struct {
	mu       sync.Mutex
	messages []EmailMessage
	err      error
}

func (s *capturingSender) Send(ctx context.Context, msg EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

func sampleLead() *leads.Lead {
	utm := "google"
	return &leads.Lead{
		FirstName:    "Mario",
		LastName:     "Rossi",
		Email:        "mario.rossi@example.it",
		Phone:        "3331234567",
		PharmacyName: "Farmacia Rossi",
		Role:         "Titolare",
		Revenue:      "Meno di €500.000",
		Challenge:    "troppa concorrenza online",
		Privacy:      true,
		Fonte:        "atoms",
		UTMSource:    &utm,
		Nome:         "Mario Rossi",
		Messaggio:    "troppa concorrenza online",
	}
}

func TestLeadCapturedSendsSummary(t *testing.T) {
	sender := &capturingSender{}
	n := NewLeadNotifier(sender, "sales@example.it", 0, nil, nil)

	n.LeadCaptured(sampleLead())
	n.Wait()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Equal(t, "sales@example.it", msg.To)
	assert.Equal(t, "Nuovo lead: Mario Rossi", msg.Subject)
	for _, want := range []string{"mario.rossi@example.it", "Farmacia Rossi", "Titolare", "google"} {
		assert.Contains(t, msg.Body, want)
	}
	assert.Contains(t, msg.HTML, "<table")
}

func TestLeadCapturedPlaceholders(t *testing.T) {
	sender := &capturingSender{}
	n := NewLeadNotifier(sender, "sales@example.it", 0, nil, nil)

	lead := sampleLead()
	lead.UTMSource = nil
	lead.UTMMedium = nil
	lead.Phone = ""
	n.LeadCaptured(lead)
	n.Wait()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.messages, 1)
	got := strings.Count(sender.messages[0].Body, NotProvided)
	assert.GreaterOrEqual(t, got, 3, "empty optional fields must render as %q", NotProvided)
}

func TestLeadCapturedFailureIsSwallowed(t *testing.T) {
	sender := &capturingSender{err: errors.New("sendgrid down")}
	n := NewLeadNotifier(sender, "sales@example.it", 0, nil, nil)

	// Must not panic or propagate anything to the caller.
	n.LeadCaptured(sampleLead())
	n.Wait()
}

func TestLeadCapturedDisabled(t *testing.T) {
	n := NewLeadNotifier(nil, "sales@example.it", 0, nil, nil)
	n.LeadCaptured(sampleLead())
	n.Wait()

	sender := &capturingSender{}
	n = NewLeadNotifier(sender, "", 0, nil, nil)
	n.LeadCaptured(sampleLead())
	n.Wait()

	assert.Empty(t, sender.messages, "no sends expected without a recipient")
}

func TestStubEmailSender(t *testing.T) {
	stub := NewStubEmailSender(nil)
	require.NoError(t, stub.Send(context.Background(), EmailMessage{To: "x@y.it", Subject: "s"}))
}

func TestNewSendGridSenderRequiresKey(t *testing.T) {
	assert.Nil(t, NewSendGridSender(SendGridConfig{}, nil))
	assert.NotNil(t, NewSendGridSender(SendGridConfig{APIKey: "SG.x", FromEmail: "noreply@example.it"}, nil))
}
