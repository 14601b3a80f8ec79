package leads

import (
	"strings"
	"testing"
)

func TestNormalizeTrimsAndLowercases(t *testing.T) {
	sub := validSubmission()
	sub.Email = "  Mario.Rossi@Example.IT "
	sub.FirstName = "  Mario "
	sub.LastName = " Rossi  "

	lead := sub.Normalize()

	if lead.Email != "mario.rossi@example.it" {
		t.Errorf("expected lowercased trimmed email, got %q", lead.Email)
	}
	if lead.FirstName != "Mario" || lead.LastName != "Rossi" {
		t.Errorf("expected trimmed names, got %q %q", lead.FirstName, lead.LastName)
	}
	if lead.Nome != "Mario Rossi" {
		t.Errorf("expected synthesized nome, got %q", lead.Nome)
	}
	if !lead.Privacy {
		t.Error("persisted privacy must always be true")
	}
}

func TestNormalizeTruncation(t *testing.T) {
	sub := validSubmission()
	long := strings.Repeat("x", 6000)
	sub.Challenge = long
	sub.FirstName = strings.Repeat("à", 150)
	sub.UTMSource = strings.Repeat("s", 200)

	lead := sub.Normalize()

	if got := len([]rune(lead.Challenge)); got != 5000 {
		t.Errorf("expected challenge truncated to 5000 runes, got %d", got)
	}
	if lead.Challenge != long[:5000] {
		t.Error("truncation must keep the leading characters unchanged")
	}
	if lead.Messaggio != lead.Challenge {
		t.Error("messaggio must mirror the truncated challenge")
	}
	if got := len([]rune(lead.FirstName)); got != 100 {
		t.Errorf("expected firstName truncated to 100 runes, got %d", got)
	}
	if lead.UTMSource == nil || len([]rune(*lead.UTMSource)) != 150 {
		t.Errorf("expected utm_source truncated to 150 runes, got %v", lead.UTMSource)
	}
}

func TestNormalizeOptionalFieldsBecomeNil(t *testing.T) {
	sub := validSubmission()
	sub.UTMSource = "   "
	sub.UTMMedium = ""
	sub.UTMCampaign = "spring-campaign"

	lead := sub.Normalize()

	if lead.UTMSource != nil {
		t.Errorf("expected whitespace utm_source to persist as NULL, got %v", *lead.UTMSource)
	}
	if lead.UTMMedium != nil {
		t.Errorf("expected empty utm_medium to persist as NULL, got %v", *lead.UTMMedium)
	}
	if lead.UTMCampaign == nil || *lead.UTMCampaign != "spring-campaign" {
		t.Errorf("expected utm_campaign kept, got %v", lead.UTMCampaign)
	}
}

func TestNormalizeFonteDefault(t *testing.T) {
	sub := validSubmission()
	sub.Fonte = "  "
	if got := sub.Normalize().Fonte; got != DefaultFonte {
		t.Errorf("expected fonte default %q, got %q", DefaultFonte, got)
	}

	sub.Fonte = "landing-v2"
	if got := sub.Normalize().Fonte; got != "landing-v2" {
		t.Errorf("expected fonte kept, got %q", got)
	}
}

func TestNormalizeLegacyAliases(t *testing.T) {
	sub := validSubmission()
	sub.Phone = ""
	sub.Telefono = " 0612345678 "
	sub.Revenue = ""
	sub.AnnualRev = "Oltre €2.000.000"

	lead := sub.Normalize()

	if lead.Phone != "0612345678" {
		t.Errorf("expected telefono alias used, got %q", lead.Phone)
	}
	if lead.Revenue != "Oltre €2.000.000" {
		t.Errorf("expected annualRevenue alias used, got %q", lead.Revenue)
	}
}
