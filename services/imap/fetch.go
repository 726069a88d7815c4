package imap

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	goimap "github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/jhillyerd/enmime"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"

	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/models"
	"github.com/openinbox/inboxd/internal/tracing"
	"github.com/openinbox/inboxd/internal/utils"
)

const snippetMaxRunes = 160

// syncFolder fetches the newest batch of messages from the configured folder
// and stores the ones not seen before. Returns the number of newly stored
// messages.
func (s *IMAPService) syncFolder(ctx context.Context, c *client.Client) (int, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPService.syncFolder")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("folder.name", s.cfg.Folder)

	mbox, err := c.Select(s.cfg.Folder, true)
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}
	if mbox.Messages == 0 {
		return 0, nil
	}

	from := uint32(1)
	if int(mbox.Messages) > s.cfg.FetchBatchMax {
		from = mbox.Messages - uint32(s.cfg.FetchBatchMax) + 1
	}
	seqSet := new(goimap.SeqSet)
	seqSet.AddRange(from, mbox.Messages)

	section := &goimap.BodySectionName{Peek: true}
	items := []goimap.FetchItem{
		goimap.FetchEnvelope,
		goimap.FetchFlags,
		goimap.FetchUid,
		section.FetchItem(),
	}

	messages := make(chan *goimap.Message, 16)
	fetchDone := make(chan error, 1)
	go func() {
		fetchDone <- c.Fetch(seqSet, items, messages)
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, FETCH_TIMEOUT)
	defer cancel()

	stored := 0
	for msg := range messages {
		email := s.buildEmail(msg, section)
		if email == nil {
			continue
		}

		existing, err := s.repositories.EmailRepository.GetByMessageID(fetchCtx, email.MessageID)
		if err != nil {
			tracing.TraceErr(span, err)
			continue
		}
		if existing != nil {
			continue
		}

		if _, err := s.repositories.EmailRepository.Store(fetchCtx, email); err != nil {
			tracing.TraceErr(span, err)
			continue
		}
		stored++
	}

	if err := <-fetchDone; err != nil {
		tracing.TraceErr(span, err)
		return stored, err
	}

	span.LogFields(tracingLog.Int("fetched", int(mbox.Messages-from+1)), tracingLog.Int("stored", stored))
	return stored, nil
}

// buildEmail converts a fetched IMAP message into a storable row, parsing the
// raw body with enmime for the headers the classifier depends on.
func (s *IMAPService) buildEmail(msg *goimap.Message, section *goimap.BodySectionName) *models.Email {
	if msg == nil || msg.Envelope == nil || msg.Envelope.MessageId == "" {
		return nil
	}

	email := &models.Email{
		AccountID: s.cfg.AccountID,
		MessageID: strings.Trim(msg.Envelope.MessageId, "<>"),
		Subject:   msg.Envelope.Subject,
		IsUnread:  true,
		Labels:    []string{enum.LabelInbox},
	}

	if len(msg.Envelope.From) > 0 {
		from := msg.Envelope.From[0]
		email.FromAddress = strings.ToLower(from.Address())
		email.FromName = from.PersonalName
	}
	if !msg.Envelope.Date.IsZero() {
		sentAt := msg.Envelope.Date.UTC()
		email.SentAt = &sentAt
	} else {
		now := time.Now().UTC()
		email.SentAt = &now
	}

	for _, flag := range msg.Flags {
		switch flag {
		case goimap.SeenFlag:
			email.IsUnread = false
		case goimap.FlaggedFlag:
			email.IsStarred = true
		}
	}

	if body := msg.GetBody(section); body != nil {
		s.parseBody(email, body)
	}

	if email.ThreadID == "" {
		email.ThreadID = email.MessageID
	}
	return email
}

func (s *IMAPService) parseBody(email *models.Email, body io.Reader) {
	envelope, err := enmime.ReadEnvelope(body)
	if err != nil {
		s.log.Debugf("Failed to parse message %s: %v", email.MessageID, err)
		return
	}

	// Some servers return envelopes without structured addresses; fall back
	// to parsing the raw From header.
	if email.FromAddress == "" {
		name, address := utils.ParseSender(envelope.GetHeader("From"))
		email.FromAddress = address
		email.FromName = name
	}

	email.ListUnsubscribe = envelope.GetHeader("List-Unsubscribe")
	email.ListID = envelope.GetHeader("List-Id")
	email.Precedence = envelope.GetHeader("Precedence")
	email.AutoSubmitted = envelope.GetHeader("Auto-Submitted")

	// Thread identity comes from the first References entry, the root of the
	// conversation. A reply therefore lands in its parent's thread.
	if refs := strings.Fields(envelope.GetHeader("References")); len(refs) > 0 {
		email.ThreadID = strings.Trim(refs[0], "<>")
		email.ThreadCount = len(refs) + 1
	} else if inReplyTo := envelope.GetHeader("In-Reply-To"); inReplyTo != "" {
		email.ThreadID = strings.Trim(inReplyTo, "<>")
		email.ThreadCount = 2
	}

	email.HasAttachment = len(envelope.Attachments) > 0
	email.Snippet = buildSnippet(envelope)
}

// buildSnippet produces a short plain-text preview, preferring the text part
// and falling back to stripped HTML.
func buildSnippet(envelope *enmime.Envelope) string {
	text := strings.TrimSpace(envelope.Text)
	if text == "" && envelope.HTML != "" {
		text = stripHTML(envelope.HTML)
	}

	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > snippetMaxRunes {
		text = string(runes[:snippetMaxRunes])
	}
	return text
}

func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Each(func(i int, el *goquery.Selection) {
		el.Remove()
	})
	return strings.TrimSpace(doc.Text())
}
