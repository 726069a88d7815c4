package models

import "strings"

// SearchFilter is a parsed free-text query. Scoped terms (`from:`, `subject:`,
// `body:`) restrict where a term may match; `is:`/`has:` tokens toggle flag
// requirements; everything else is a general term matched against sender
// name, sender email, subject and snippet. All terms must match (AND).
type SearchFilter struct {
	From          []string
	Subject       []string
	Body          []string
	General       []string
	Unread        *bool
	Starred       bool
	HasAttachment bool
}

// ParseSearch parses a raw query string. Tokens are whitespace-split with
// double-quoted phrases kept intact, both bare ("foo bar") and scoped
// (subject:"foo bar"). Returns nil for a blank query.
func ParseSearch(query string) *SearchFilter {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	filter := &SearchFilter{}
	for _, token := range tokenizeQuery(query) {
		scope, term := splitScope(token)
		switch scope {
		case "from":
			if term != "" {
				filter.From = append(filter.From, term)
			}
		case "subject":
			if term != "" {
				filter.Subject = append(filter.Subject, term)
			}
		case "body":
			if term != "" {
				filter.Body = append(filter.Body, term)
			}
		case "is":
			switch term {
			case "unread":
				unread := true
				filter.Unread = &unread
			case "read":
				unread := false
				filter.Unread = &unread
			case "starred":
				filter.Starred = true
			}
		case "has":
			if term == "attachment" {
				filter.HasAttachment = true
			}
		default:
			if term != "" {
				filter.General = append(filter.General, term)
			}
		}
	}

	if filter.isEmpty() {
		return nil
	}
	return filter
}

func (f *SearchFilter) isEmpty() bool {
	return len(f.From) == 0 && len(f.Subject) == 0 && len(f.Body) == 0 &&
		len(f.General) == 0 && f.Unread == nil && !f.Starred && !f.HasAttachment
}

// Matches reports whether the snapshot satisfies every term of the filter.
func (f *SearchFilter) Matches(m MessageSnapshot) bool {
	if f == nil {
		return true
	}

	if f.Unread != nil && m.IsUnread != *f.Unread {
		return false
	}
	if f.Starred && !m.IsStarred {
		return false
	}
	if f.HasAttachment && !m.HasAttachments {
		return false
	}

	for _, term := range f.From {
		if !containsFold(m.SenderName, term) && !containsFold(m.SenderEmail, term) {
			return false
		}
	}
	for _, term := range f.Subject {
		if !containsFold(m.Subject, term) {
			return false
		}
	}
	for _, term := range f.Body {
		if !containsFold(m.Snippet, term) {
			return false
		}
	}
	for _, term := range f.General {
		if !containsFold(m.SenderName, term) &&
			!containsFold(m.SenderEmail, term) &&
			!containsFold(m.Subject, term) &&
			!containsFold(m.Snippet, term) {
			return false
		}
	}

	return true
}

// HighlightTerms returns the text terms the rendering layer should highlight
// in matched messages. Flag tokens contribute nothing.
func (f *SearchFilter) HighlightTerms() []string {
	if f == nil {
		return nil
	}
	var terms []string
	terms = append(terms, f.General...)
	terms = append(terms, f.From...)
	terms = append(terms, f.Subject...)
	terms = append(terms, f.Body...)
	return terms
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// tokenizeQuery splits on whitespace while keeping double-quoted spans, and
// their scope prefixes, together as one token. Quotes are preserved so
// splitScope can strip them after the scope is identified.
func tokenizeQuery(query string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, r := range query {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n'):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// splitScope separates an optional scope prefix from its term and strips any
// surrounding quotes from the term. An unscoped token returns scope "".
func splitScope(token string) (scope, term string) {
	idx := strings.Index(token, ":")
	if idx > 0 && !strings.Contains(token[:idx], `"`) {
		candidate := strings.ToLower(token[:idx])
		switch candidate {
		case "from", "subject", "body", "is", "has":
			return candidate, unquote(token[idx+1:])
		}
	}
	return "", unquote(token)
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}
