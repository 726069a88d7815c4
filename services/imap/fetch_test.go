package imap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openinbox/inboxd/internal/logger"
	"github.com/openinbox/inboxd/internal/models"
)

func testService(t *testing.T) *IMAPService {
	t.Helper()
	log := logger.NewAppLogger(&logger.Config{DevMode: true})
	log.InitLogger()
	return &IMAPService{log: log}
}

func rawMessage(headers []string, body string) string {
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}

func TestParseBody_SenderFallbackFromHeader(t *testing.T) {
	svc := testService(t)
	email := &models.Email{MessageID: "m1"}

	raw := rawMessage([]string{
		`From: "Jane Doe" <Jane@Acme.com>`,
		"Subject: Hello",
		"Content-Type: text/plain",
	}, "Hi there")

	svc.parseBody(email, strings.NewReader(raw))

	assert.Equal(t, "jane@acme.com", email.FromAddress)
	assert.Equal(t, "Jane Doe", email.FromName)
}

func TestParseBody_EnvelopeSenderKept(t *testing.T) {
	svc := testService(t)
	email := &models.Email{
		MessageID:   "m1",
		FromAddress: "envelope@acme.com",
		FromName:    "Envelope Sender",
	}

	raw := rawMessage([]string{
		"From: other@example.com",
		"Content-Type: text/plain",
	}, "Hi")

	svc.parseBody(email, strings.NewReader(raw))

	assert.Equal(t, "envelope@acme.com", email.FromAddress)
	assert.Equal(t, "Envelope Sender", email.FromName)
}

func TestParseBody_BulkHeadersAndThreading(t *testing.T) {
	svc := testService(t)
	email := &models.Email{MessageID: "m1"}

	raw := rawMessage([]string{
		"From: digest@news.example",
		"List-Unsubscribe: <https://news.example/unsub>",
		"List-Id: weekly.news.example",
		"Precedence: bulk",
		"References: <root@example.com> <mid@example.com>",
		"Content-Type: text/plain",
	}, "Top stories")

	svc.parseBody(email, strings.NewReader(raw))

	assert.Equal(t, "<https://news.example/unsub>", email.ListUnsubscribe)
	assert.Equal(t, "weekly.news.example", email.ListID)
	assert.Equal(t, "bulk", email.Precedence)
	assert.Equal(t, "root@example.com", email.ThreadID)
	assert.Equal(t, 3, email.ThreadCount)
}

func TestParseBody_InReplyToThreading(t *testing.T) {
	svc := testService(t)
	email := &models.Email{MessageID: "m1"}

	raw := rawMessage([]string{
		"From: jane@acme.com",
		"In-Reply-To: <parent@example.com>",
		"Content-Type: text/plain",
	}, "Sounds good")

	svc.parseBody(email, strings.NewReader(raw))

	assert.Equal(t, "parent@example.com", email.ThreadID)
	assert.Equal(t, 2, email.ThreadCount)
}

func TestParseBody_SnippetFromHTML(t *testing.T) {
	svc := testService(t)
	email := &models.Email{MessageID: "m1"}

	raw := rawMessage([]string{
		"From: jane@acme.com",
		"Content-Type: text/html",
	}, "<html><head><script>tracking()</script></head><body><p>Quarterly   report attached</p></body></html>")

	svc.parseBody(email, strings.NewReader(raw))

	assert.Equal(t, "Quarterly report attached", email.Snippet)
	assert.NotContains(t, email.Snippet, "tracking")
}
