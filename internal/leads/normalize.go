package leads

import "strings"

// Per-field maximum lengths applied by the normalizer. Overlong values are
// silently truncated; truncation is not a validation failure.
const (
	maxFirstName    = 100
	maxLastName     = 100
	maxPhone        = 50
	maxPharmacyName = 200
	maxRole         = 100
	maxRevenue      = 100
	maxChallenge    = 5000
	maxFonte        = 50
	maxUTM          = 150
	maxNome         = 200
)

// DefaultFonte is written when the submission carries no provenance.
const DefaultFonte = "atoms"

// Normalize maps a validated submission to the persisted row shape: strings
// trimmed, email lowercased, per-field truncation, empty optional fields as
// NULL, fonte defaulted. Nome and Messaggio are synthesized so the legacy
// schema columns stay populated alongside the structured ones.
func (s *Submission) Normalize() *Lead {
	first := clip(strings.TrimSpace(s.FirstName), maxFirstName)
	last := clip(strings.TrimSpace(s.LastName), maxLastName)

	fonte := clip(strings.TrimSpace(s.Fonte), maxFonte)
	if fonte == "" {
		fonte = DefaultFonte
	}

	challenge := clip(strings.TrimSpace(s.challenge()), maxChallenge)

	return &Lead{
		FirstName:    first,
		LastName:     last,
		Email:        strings.ToLower(strings.TrimSpace(s.Email)),
		Phone:        clip(strings.TrimSpace(s.phone()), maxPhone),
		PharmacyName: clip(strings.TrimSpace(s.PharmacyName), maxPharmacyName),
		Role:         clip(strings.TrimSpace(s.Role), maxRole),
		Revenue:      clip(strings.TrimSpace(s.revenue()), maxRevenue),
		Challenge:    challenge,
		Privacy:      true,
		Fonte:        fonte,
		UTMSource:    optional(s.UTMSource, maxUTM),
		UTMMedium:    optional(s.UTMMedium, maxUTM),
		UTMCampaign:  optional(s.UTMCampaign, maxUTM),
		Nome:         clip(strings.TrimSpace(first+" "+last), maxNome),
		Messaggio:    challenge,
	}
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max])
	}
	return s
}

// optional trims and clips, mapping empty to nil so the store writes NULL
// instead of an empty string.
func optional(s string, max int) *string {
	v := clip(strings.TrimSpace(s), max)
	if v == "" {
		return nil
	}
	return &v
}
