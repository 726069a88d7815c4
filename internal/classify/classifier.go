// Package classify derives per-message classifications from the signal
// predicates and keeps them cached across recompute cycles.
package classify

import (
	"strings"

	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/models"
	"github.com/openinbox/inboxd/internal/signals"
)

// Classification is the derived, immutable record for one message.
type Classification struct {
	IsMoney      bool
	IsDeadline   bool
	IsSecurity   bool
	IsNewsletter bool
	IsPeople     bool
	IsBulk       bool
	IsNeedsReply bool
}

// Signature is the structural fingerprint over exactly the fields that can
// change a Classification. Two snapshots with equal signatures classify
// identically, so equality here decides cache reuse. The struct is
// comparable; equality is plain ==.
type Signature struct {
	Subject            string
	Snippet            string
	SenderEmail        string
	LabelKey           string
	ListUnsubscribe    string
	ListID             string
	Precedence         string
	AutoSubmitted      string
	ThreadMessageCount int
	AccountID          string
}

// ComputeSignature projects the classification-relevant fields of a snapshot.
func ComputeSignature(msg models.MessageSnapshot, viewerAccount string) Signature {
	accountID := msg.AccountID
	if accountID == "" {
		accountID = viewerAccount
	}
	return Signature{
		Subject:            msg.Subject,
		Snippet:            msg.Snippet,
		SenderEmail:        msg.SenderEmail,
		LabelKey:           msg.LabelKey(),
		ListUnsubscribe:    msg.ListUnsubscribe,
		ListID:             msg.ListID,
		Precedence:         msg.Precedence,
		AutoSubmitted:      msg.AutoSubmitted,
		ThreadMessageCount: msg.ThreadMessageCount,
		AccountID:          accountID,
	}
}

// Classify computes the full Classification for one message. viewerAccount is
// the viewer's own address, needed by the needs-reply gate.
func Classify(msg models.MessageSnapshot, viewerAccount string) Classification {
	isBulk := signals.IsBulk(msg)
	isPeople := signals.LooksLikeHumanSender(msg) && !isBulk

	return Classification{
		IsMoney:      signals.IsMoney(msg),
		IsDeadline:   signals.IsDeadline(msg),
		IsSecurity:   signals.IsSecurity(msg),
		IsNewsletter: signals.IsNewsletter(msg),
		IsPeople:     isPeople,
		IsBulk:       isBulk,
		IsNeedsReply: needsReply(msg, viewerAccount),
	}
}

// needsReply is a boolean gate: a fixed sequence of vetoes, each checked
// before any positive signal. The veto order is deliberate; reordering it
// changes outcomes on ambiguous messages.
func needsReply(msg models.MessageSnapshot, viewerAccount string) bool {
	// Sent by the viewer themselves.
	if msg.HasLabel(enum.LabelSent) {
		return false
	}

	// A "Re:" subject on a multi-message thread means a reply already
	// happened somewhere.
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(msg.Subject)), "re:") &&
		msg.ThreadMessageCount > 1 {
		return false
	}

	// Mail from the viewer's own address.
	if viewerAccount != "" && strings.EqualFold(msg.SenderEmail, viewerAccount) {
		return false
	}

	// Bulk mail never needs a reply.
	if signals.IsBulk(msg) {
		return false
	}

	// Nor does mail from a non-human sender.
	if !signals.LooksLikeHumanSender(msg) {
		return false
	}

	return signals.ContainsDirectAsk(msg.SearchText())
}
