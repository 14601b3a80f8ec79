package leads

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// local@domain.tld, no whitespace, at least one dot after the @.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RoleOptions is the fixed allow-list for the role field.
var RoleOptions = []string{
	"Titolare",
	"Direttore",
	"Farmacista collaboratore",
	"Altro",
}

// RevenueOptions is the fixed allow-list for the annual revenue bracket.
var RevenueOptions = []string{
	"Meno di €500.000",
	"€500.000 - €1.000.000",
	"€1.000.000 - €2.000.000",
	"Oltre €2.000.000",
}

var (
	roleSet    = toSet(RoleOptions)
	revenueSet = toSet(RevenueOptions)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// ValidEmail reports whether s is a plausible email address: trimmed length
// in [6,254] and matching the local@domain.tld pattern. Case-insensitive.
func ValidEmail(s string) bool {
	e := strings.ToLower(strings.TrimSpace(s))
	if utf8.RuneCountInString(e) < 6 || utf8.RuneCountInString(e) > 254 {
		return false
	}
	return emailPattern.MatchString(e)
}

// ValidRole reports exact, case-sensitive membership in RoleOptions.
func ValidRole(s string) bool {
	_, ok := roleSet[s]
	return ok
}

// ValidRevenue reports exact, case-sensitive membership in RevenueOptions.
func ValidRevenue(s string) bool {
	_, ok := revenueSet[s]
	return ok
}

func checkRequiredString(field, value string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < min || n > max {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("Il campo %s deve contenere tra %d e %d caratteri", field, min, max),
		}
	}
	return nil
}

// requiredFields lists the bounded string checks in their fixed order.
var requiredFields = []struct {
	name     string
	min, max int
	value    func(*Submission) string
}{
	{"firstName", 2, 100, func(s *Submission) string { return s.FirstName }},
	{"lastName", 2, 100, func(s *Submission) string { return s.LastName }},
	{"phone", 6, 50, func(s *Submission) string { return s.phone() }},
	{"pharmacyName", 2, 200, func(s *Submission) string { return s.PharmacyName }},
	{"challenge", 10, 5000, func(s *Submission) string { return s.challenge() }},
}

// Validate runs the field checks in their fixed order and returns the first
// failure as a ValidationError: email format, privacy consent, required
// string bounds, then the role and revenue enums. The honeypot is not
// checked here; callers handle it first because a tripped honeypot must
// produce a fake success, not an error.
func (s *Submission) Validate() error {
	if !ValidEmail(s.Email) {
		return ValidationError{Field: "email", Message: "Email non valida"}
	}
	if !s.Consent() {
		return ValidationError{Field: "privacy", Message: "Consenso privacy richiesto"}
	}
	for _, f := range requiredFields {
		if err := checkRequiredString(f.name, f.value(s), f.min, f.max); err != nil {
			return err
		}
	}
	if !ValidRole(s.Role) {
		return ValidationError{Field: "role", Message: "Ruolo non valido"}
	}
	if !ValidRevenue(s.revenue()) {
		return ValidationError{Field: "revenue", Message: "Fatturato non valido"}
	}
	return nil
}
