package models

import (
	"sort"
	"strings"
	"time"

	"github.com/openinbox/inboxd/internal/utils"
)

// MessageSnapshot is the immutable, point-in-time view of a message that the
// classification pipeline works on. Snapshots are freely copyable across
// goroutines; nothing mutates one after construction.
type MessageSnapshot struct {
	ID                 string
	ThreadID           string
	Date               time.Time
	Subject            string
	Snippet            string
	SenderEmail        string
	SenderName         string
	IsUnread           bool
	IsStarred          bool
	HasAttachments     bool
	AccountID          string
	Labels             []string
	ListUnsubscribe    string
	ListID             string
	Precedence         string
	AutoSubmitted      string
	ThreadMessageCount int
}

// HasLabel reports whether the snapshot carries the given label identifier.
func (m MessageSnapshot) HasLabel(label string) bool {
	return utils.IsStringInSlice(label, m.Labels)
}

// LabelKey returns an order-independent key over the label set, used inside
// the classification signature.
func (m MessageSnapshot) LabelKey() string {
	if len(m.Labels) == 0 {
		return ""
	}
	labels := make([]string, len(m.Labels))
	copy(labels, m.Labels)
	sort.Strings(labels)
	return strings.Join(labels, "|")
}

// SearchText returns the lower-cased subject+snippet blob that keyword
// matchers run over.
func (m MessageSnapshot) SearchText() string {
	return strings.ToLower(m.Subject + " " + m.Snippet)
}
