package leads

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Submission is the raw lead form payload as received from the client.
// Legacy field aliases from older form revisions (telefono, messaggio,
// consenso_privacy, annualRevenue) are accepted alongside the structured
// names; accessor methods resolve the effective value.
type Submission struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Telefono     string `json:"telefono"`
	PharmacyName string `json:"pharmacyName"`
	Role         string `json:"role"`
	Revenue      string `json:"revenue"`
	AnnualRev    string `json:"annualRevenue"`
	Challenge    string `json:"challenge"`
	Messaggio    string `json:"messaggio"`

	Privacy         FlexBool `json:"privacy"`
	ConsensoPrivacy FlexBool `json:"consenso_privacy"`

	Fonte       string `json:"fonte"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`

	// Company is the hidden honeypot field; real users never fill it.
	Company string `json:"company"`
}

func (s *Submission) phone() string {
	if strings.TrimSpace(s.Phone) != "" {
		return s.Phone
	}
	return s.Telefono
}

func (s *Submission) revenue() string {
	if strings.TrimSpace(s.Revenue) != "" {
		return s.Revenue
	}
	return s.AnnualRev
}

func (s *Submission) challenge() string {
	if strings.TrimSpace(s.Challenge) != "" {
		return s.Challenge
	}
	return s.Messaggio
}

// Consent reports whether the submitter gave privacy consent under either
// field name.
func (s *Submission) Consent() bool {
	return bool(s.Privacy) || bool(s.ConsensoPrivacy)
}

// HoneypotTripped reports whether the hidden anti-spam field carries a value.
func (s *Submission) HoneypotTripped() bool {
	return strings.TrimSpace(s.Company) != ""
}

// FlexBool is a consent flag that tolerates the type drift seen in real form
// posts: JSON booleans, strings ("true", "1", "on", "yes") and numbers all
// coerce through CoerceBool. Anything else decodes to false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = FlexBool(CoerceBool(v))
	return nil
}

// CoerceBool maps a loosely-typed truthy value to a bool. True exactly for
// boolean true, the strings "true"/"1"/"on"/"yes" (case-insensitive,
// trimmed) and numeric 1.
func CoerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "on", "yes":
			return true
		}
		return false
	case float64:
		return t == 1
	case int:
		return t == 1
	default:
		return false
	}
}

// Lead is the normalized row persisted to the leads table. Email is always
// trimmed and lowercase; Privacy is always true (non-consenting submissions
// never reach the store). Nome and Messaggio mirror the legacy schema shape
// and are written alongside the structured columns.
type Lead struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PharmacyName string    `json:"pharmacy_name"`
	Role         string    `json:"role"`
	Revenue      string    `json:"revenue"`
	Challenge    string    `json:"challenge"`
	Privacy      bool      `json:"privacy"`
	Fonte        string    `json:"fonte"`
	UTMSource    *string   `json:"utm_source"`
	UTMMedium    *string   `json:"utm_medium"`
	UTMCampaign  *string   `json:"utm_campaign"`
	Nome         string    `json:"nome"`
	Messaggio    string    `json:"messaggio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
