// Package signals holds the pure per-message predicates the classifier is
// built from. Every function here is total, side-effect free and safe to call
// from any goroutine; all patterns are compiled once at package init.
package signals

import (
	"regexp"
	"strings"

	"github.com/customeros/mailsherpa/mailvalidate"

	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/models"
	"github.com/openinbox/inboxd/internal/utils"
)

var (
	// Role and no-reply local parts. Anchored on the local part so
	// "support@acme.com" matches but "jane.support.smith@acme.com" does not.
	roleLocalPartRegex = regexp.MustCompile(`(?i)^(no-?reply|do-?not-?reply|donotreply|notifications?|notify|alerts?|newsletters?|marketing|updates?|news|support|help|info|contact|admin|billing|invoices?|sales|hello|team|feedback|security|accounts?|service|orders?|bounces?|mailer-daemon|postmaster)([._+-].*)?$`)

	// "Jane via Meetup" / "Payments through Stripe" constructs.
	viaConstructRegex = regexp.MustCompile(`(?i)\b(via|through)\s+\S+`)

	// Single-token CamelCase brand names (GitHub, PayPal, LinkedIn).
	camelBrandRegex = regexp.MustCompile(`^[A-Z][a-z]+(?:[A-Z][a-z0-9]+)+$`)
)

// Words that mark a display name as an organization rather than a person.
var orgNameWords = utils.LowerSet([]string{
	"team", "support", "newsletter", "newsletters", "notification", "notifications",
	"noreply", "no-reply", "official", "store", "shop", "app", "service", "services",
	"billing", "marketing", "sales", "community", "digest", "alert", "alerts",
	"update", "updates", "info", "news", "customer", "care", "account", "accounts",
	"payments", "security", "hq", "inc", "inc.", "llc", "ltd",
})

// Leading filler words stripped before the "First Last" word test.
var fillerNameWords = utils.LowerSet([]string{
	"the", "team", "support", "your", "from", "a", "an", "mr", "mrs", "ms", "dr",
})

// Consumer mail providers whose addresses are presumed personal.
var personalDomains = utils.LowerSet([]string{
	"gmail.com", "googlemail.com", "icloud.com", "me.com", "mac.com",
	"outlook.com", "hotmail.com", "live.com", "msn.com",
	"yahoo.com", "ymail.com", "aol.com",
	"proton.me", "protonmail.com", "pm.me",
	"comcast.net", "verizon.net", "att.net",
	"gmx.com", "gmx.net", "zoho.com", "fastmail.com", "hey.com",
})

// Sending domains of marketing/transactional email platforms. Mail from these,
// directly or via a subdomain, is bulk by definition.
var marketingPlatformDomains = []string{
	"mailchimp.com", "list-manage.com", "mandrillapp.com",
	"sendgrid.net", "sendgrid.com",
	"amazonses.com", "mailgun.org", "mailgun.net",
	"postmarkapp.com", "sparkpostmail.com", "sparkpost.com",
	"constantcontact.com", "campaign-monitor.com", "createsend.com",
	"klaviyo.com", "klaviyomail.com",
	"hubspot.com", "hubspotemail.net",
	"marketo.com", "mktomail.com",
	"exacttarget.com", "braze.com", "sailthru.com",
	"substack.com", "intercom-mail.com", "customeriomail.com",
}

var moneyKeywords = []string{
	"receipt", "order", "payment", "invoice", "refund", "purchase",
	"transaction", "billing", "statement", "charge",
}

var deadlineKeywords = []string{
	"today", "tomorrow", "urgent", "deadline", "due", "expires", "expiring",
	"asap", "last day", "final notice", "reminder",
}

var securityKeywords = []string{
	"security alert", "verify", "verification code", "two-factor", "2fa",
	"one-time", "password", "sign-in", "login", "suspicious", "unauthorized",
}

// Phrases that read as a direct ask, used by the needs-reply scorer.
var directAskPhrases = []string{
	"can you", "could you", "would you", "let me know", "please confirm",
	"quick question", "thoughts?", "what do you think",
}

// LooksLikeHumanSender is a coarse person-vs-organization test over the
// sender fields alone. The default for an ambiguous sender is false: the
// inbox would rather demote an unusual human than promote a bot.
func LooksLikeHumanSender(msg models.MessageSnapshot) bool {
	email := strings.ToLower(strings.TrimSpace(msg.SenderEmail))
	name := strings.TrimSpace(msg.SenderName)

	if email == "" {
		return false
	}
	if isRoleAddress(email) {
		return false
	}
	if isBrandName(name) {
		return false
	}
	if isPersonalDomain(email) {
		return true
	}

	// Corporate domain: accept only names shaped like "First Last" (2-4
	// words, none of them organization vocabulary).
	words := strings.Fields(name)
	for len(words) > 0 {
		if _, filler := fillerNameWords[strings.ToLower(words[0])]; !filler {
			break
		}
		words = words[1:]
	}
	if len(words) >= 2 && len(words) <= 4 {
		for _, w := range words {
			w = strings.ToLower(strings.Trim(w, ".,"))
			if _, org := orgNameWords[w]; org {
				return false
			}
			if _, filler := fillerNameWords[w]; filler {
				return false
			}
		}
		return true
	}

	// A lone token longer than an initialism reads as an organization name.
	return false
}

// IsBulk reports whether the message is automated/marketing rather than
// person-to-person. Any single signal suffices; there is no weighting.
func IsBulk(msg models.MessageSnapshot) bool {
	for _, label := range enum.BulkCategoryLabels() {
		if msg.HasLabel(label) {
			return true
		}
	}

	if msg.ListUnsubscribe != "" || msg.ListID != "" {
		return true
	}

	precedence := strings.ToLower(msg.Precedence)
	if strings.Contains(precedence, "bulk") ||
		strings.Contains(precedence, "list") ||
		strings.Contains(precedence, "junk") {
		return true
	}

	autoSubmitted := strings.ToLower(strings.TrimSpace(msg.AutoSubmitted))
	if autoSubmitted != "" && autoSubmitted != "no" {
		return true
	}

	if isMarketingPlatformDomain(utils.ExtractDomain(msg.SenderEmail)) {
		return true
	}
	if isBrandName(msg.SenderName) {
		return true
	}
	if isRoleAddress(strings.ToLower(msg.SenderEmail)) {
		return true
	}

	return false
}

// IsMoney matches receipts, invoices and other payment mail by keyword.
func IsMoney(msg models.MessageSnapshot) bool {
	return containsAnyKeyword(msg.SearchText(), moneyKeywords)
}

// IsDeadline matches time-pressure language. Headers are deliberately not
// consulted; urgency lives in the text.
func IsDeadline(msg models.MessageSnapshot) bool {
	return containsAnyKeyword(msg.SearchText(), deadlineKeywords)
}

// IsSecurity matches account-security mail by keyword. Headers are
// deliberately not consulted.
func IsSecurity(msg models.MessageSnapshot) bool {
	return containsAnyKeyword(msg.SearchText(), securityKeywords)
}

// IsNewsletter is the promotions-category or List-Unsubscribe test.
func IsNewsletter(msg models.MessageSnapshot) bool {
	return msg.HasLabel(enum.LabelCategoryPromotions) || msg.ListUnsubscribe != ""
}

// ContainsDirectAsk reports whether the text carries a question mark or a
// stock direct-ask phrase. Input is expected lower-cased.
func ContainsDirectAsk(text string) bool {
	if strings.Contains(text, "?") {
		return true
	}
	return containsAnyKeyword(text, directAskPhrases)
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func isRoleAddress(email string) bool {
	if roleLocalPartRegex.MatchString(utils.LocalPart(email)) {
		return true
	}
	syntax := mailvalidate.ValidateEmailSyntax(email)
	return syntax.IsValid && (syntax.IsRoleAccount || syntax.IsSystemGenerated)
}

func isPersonalDomain(email string) bool {
	if _, ok := personalDomains[utils.ExtractDomain(email)]; ok {
		return true
	}
	syntax := mailvalidate.ValidateEmailSyntax(email)
	return syntax.IsValid && syntax.IsFreeAccount
}

func isMarketingPlatformDomain(domain string) bool {
	if domain == "" {
		return false
	}
	for _, platform := range marketingPlatformDomains {
		if domain == platform || strings.HasSuffix(domain, "."+platform) {
			return true
		}
	}
	return false
}

func isBrandName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	if viaConstructRegex.MatchString(name) {
		return true
	}

	if isAllCapsish(name) {
		return true
	}

	for _, word := range strings.Fields(name) {
		trimmed := strings.Trim(word, ".,!")
		if _, org := orgNameWords[strings.ToLower(trimmed)]; org {
			return true
		}
		if camelBrandRegex.MatchString(trimmed) {
			return true
		}
	}

	return false
}

// isAllCapsish: at least three letters and not a single letter of lowercase.
// Keeps two-letter initial pairs ("JD") out of the brand bucket.
func isAllCapsish(name string) bool {
	letters := 0
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			letters++
		}
	}
	return letters >= 3
}
