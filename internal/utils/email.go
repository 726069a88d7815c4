package utils

import (
	"regexp"
	"strings"
)

var subjectPrefixRegex = regexp.MustCompile(`(?i)^(Re|Fwd|Fw)(\[\d+\])?:\s*`)

// NormalizeSubject removes prefixes like Re:, Fwd:, etc. from a subject
func NormalizeSubject(subject string) string {
	subject = strings.TrimSpace(subject)
	for subjectPrefixRegex.MatchString(subject) {
		subject = subjectPrefixRegex.ReplaceAllString(subject, "")
		subject = strings.TrimSpace(subject)
	}
	return subject
}

// ParseSender splits a raw `"Name <email>"` sender string into display name
// and address. Parsing is best-effort: a string without angle brackets is
// treated as both name and address so downstream heuristics still have
// something to work with.
func ParseSender(raw string) (name, email string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	start := strings.LastIndex(raw, "<")
	end := strings.LastIndex(raw, ">")
	if start >= 0 && end > start {
		email = strings.TrimSpace(raw[start+1 : end])
		name = strings.TrimSpace(raw[:start])
		name = strings.Trim(name, `"'`)
		if name == "" {
			name = email
		}
		return name, strings.ToLower(email)
	}

	// No brackets; the whole string doubles as name and address.
	return raw, strings.ToLower(raw)
}

// ExtractDomain returns the lower-cased domain of an email address, handling
// addresses still wrapped in angle brackets. Empty when the address is
// malformed.
func ExtractDomain(email string) string {
	if email == "" {
		return ""
	}

	email = strings.TrimSpace(email)

	if strings.Contains(email, "<") && strings.Contains(email, ">") {
		startIdx := strings.LastIndex(email, "<") + 1
		endIdx := strings.LastIndex(email, ">")
		if startIdx > 0 && endIdx > startIdx {
			email = email[startIdx:endIdx]
		}
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}

	return strings.ToLower(strings.TrimSpace(parts[1]))
}

// LocalPart returns the part of the address before the @, lower-cased.
func LocalPart(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return strings.ToLower(strings.TrimSpace(email))
	}
	return strings.ToLower(strings.TrimSpace(email[:at]))
}
