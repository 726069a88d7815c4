package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openinbox/inboxd/internal/enum"
	"github.com/openinbox/inboxd/internal/models"
)

func msgFrom(name, email string) models.MessageSnapshot {
	return models.MessageSnapshot{
		SenderName:  name,
		SenderEmail: email,
	}
}

func TestLooksLikeHumanSender(t *testing.T) {
	tests := []struct {
		name   string
		sender models.MessageSnapshot
		want   bool
	}{
		{"personal domain", msgFrom("Jane Doe", "jane@gmail.com"), true},
		{"personal domain, no display name", msgFrom("", "jane.doe@icloud.com"), true},
		{"corporate domain with person name", msgFrom("Jane Doe", "jane.doe@acme-widgets.com"), true},
		{"corporate domain three-word name", msgFrom("Jane van Doe", "jvd@acme-widgets.com"), true},
		{"empty address", msgFrom("Jane Doe", ""), false},
		{"noreply address", msgFrom("Jane Doe", "noreply@acme-widgets.com"), false},
		{"no-reply with suffix", msgFrom("Acme", "no-reply+tx@acme-widgets.com"), false},
		{"support address", msgFrom("Friendly Person", "support@acme-widgets.com"), false},
		{"brand camel name", msgFrom("GitHub", "noise@ghnotify.example"), false},
		{"via construct", msgFrom("Jane via Meetup", "jane@meetupmail.example"), false},
		{"all caps org", msgFrom("ACME", "contact-us@acme-widgets.example"), false},
		{"org vocabulary in name", msgFrom("Acme Team", "crew@acme-widgets.com"), false},
		{"single word name on corporate domain", msgFrom("Acme", "mail@acme-widgets.example"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeHumanSender(tt.sender))
		})
	}
}

func TestIsBulk(t *testing.T) {
	t.Run("plain personal mail is not bulk", func(t *testing.T) {
		msg := msgFrom("Jane Doe", "jane@gmail.com")
		assert.False(t, IsBulk(msg))
	})

	t.Run("category label", func(t *testing.T) {
		msg := msgFrom("Jane Doe", "jane@gmail.com")
		msg.Labels = []string{enum.LabelCategoryPromotions}
		assert.True(t, IsBulk(msg))
	})

	t.Run("list unsubscribe header", func(t *testing.T) {
		msg := msgFrom("Jane Doe", "jane@gmail.com")
		msg.ListUnsubscribe = "<https://example.com/unsub>"
		assert.True(t, IsBulk(msg))
	})

	t.Run("list id header", func(t *testing.T) {
		msg := msgFrom("Jane Doe", "jane@gmail.com")
		msg.ListID = "<dev.lists.example.com>"
		assert.True(t, IsBulk(msg))
	})

	t.Run("bulk precedence", func(t *testing.T) {
		msg := msgFrom("Jane Doe", "jane@gmail.com")
		msg.Precedence = "Bulk"
		assert.True(t, IsBulk(msg))
	})

	t.Run("auto submitted", func(t *testing.T) {
		msg := msgFrom("Jane Doe", "jane@gmail.com")
		msg.AutoSubmitted = "auto-generated"
		assert.True(t, IsBulk(msg))

		msg.AutoSubmitted = "no"
		assert.False(t, IsBulk(msg))
	})

	t.Run("marketing platform domain", func(t *testing.T) {
		msg := msgFrom("Jane Doe", "digest@mail.substack.com")
		assert.True(t, IsBulk(msg))
	})

	t.Run("role address", func(t *testing.T) {
		msg := msgFrom("Jane Doe", "billing@acme-widgets.com")
		assert.True(t, IsBulk(msg))
	})

	t.Run("brand display name", func(t *testing.T) {
		msg := msgFrom("PayPal", "service-mail@paypal-notify.example")
		assert.True(t, IsBulk(msg))
	})
}

func TestKeywordSignals(t *testing.T) {
	base := msgFrom("Jane Doe", "jane@gmail.com")

	money := base
	money.Subject = "Your receipt from Acme"
	assert.True(t, IsMoney(money))

	deadline := base
	deadline.Snippet = "submission is due Friday"
	assert.True(t, IsDeadline(deadline))

	security := base
	security.Subject = "Your verification code"
	assert.True(t, IsSecurity(security))

	plain := base
	plain.Subject = "Lunch next week"
	plain.Snippet = "thinking about that new place"
	assert.False(t, IsMoney(plain))
	assert.False(t, IsDeadline(plain))
	assert.False(t, IsSecurity(plain))
}

func TestIsNewsletter(t *testing.T) {
	msg := msgFrom("Jane Doe", "jane@gmail.com")
	assert.False(t, IsNewsletter(msg))

	msg.ListUnsubscribe = "<mailto:unsub@example.com>"
	assert.True(t, IsNewsletter(msg))

	labeled := msgFrom("Deals", "deals@shop.example")
	labeled.Labels = []string{enum.LabelCategoryPromotions}
	assert.True(t, IsNewsletter(labeled))
}

func TestContainsDirectAsk(t *testing.T) {
	assert.True(t, ContainsDirectAsk("are you coming tonight?"))
	assert.True(t, ContainsDirectAsk("let me know when works"))
	assert.True(t, ContainsDirectAsk("could you send the file"))
	assert.False(t, ContainsDirectAsk("see you tomorrow at the office"))
}
