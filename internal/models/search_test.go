package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearch(t *testing.T) {
	t.Run("blank query", func(t *testing.T) {
		assert.Nil(t, ParseSearch(""))
		assert.Nil(t, ParseSearch("   "))
	})

	t.Run("general terms", func(t *testing.T) {
		f := ParseSearch("invoice acme")
		require.NotNil(t, f)
		assert.Equal(t, []string{"invoice", "acme"}, f.General)
	})

	t.Run("scoped terms", func(t *testing.T) {
		f := ParseSearch("from:jane subject:standup body:notes")
		require.NotNil(t, f)
		assert.Equal(t, []string{"jane"}, f.From)
		assert.Equal(t, []string{"standup"}, f.Subject)
		assert.Equal(t, []string{"notes"}, f.Body)
	})

	t.Run("quoted phrases", func(t *testing.T) {
		f := ParseSearch(`"status report" subject:"q3 planning"`)
		require.NotNil(t, f)
		assert.Equal(t, []string{"status report"}, f.General)
		assert.Equal(t, []string{"q3 planning"}, f.Subject)
	})

	t.Run("flag tokens", func(t *testing.T) {
		f := ParseSearch("is:unread is:starred has:attachment")
		require.NotNil(t, f)
		require.NotNil(t, f.Unread)
		assert.True(t, *f.Unread)
		assert.True(t, f.Starred)
		assert.True(t, f.HasAttachment)

		f = ParseSearch("is:read")
		require.NotNil(t, f)
		require.NotNil(t, f.Unread)
		assert.False(t, *f.Unread)
	})

	t.Run("unknown scope is a general term", func(t *testing.T) {
		f := ParseSearch("label:work")
		require.NotNil(t, f)
		assert.Equal(t, []string{"label:work"}, f.General)
	})

	t.Run("empty scoped term dropped", func(t *testing.T) {
		assert.Nil(t, ParseSearch("from:"))
	})
}

func TestSearchFilter_Matches(t *testing.T) {
	msg := MessageSnapshot{
		Subject:        "Q3 planning notes",
		Snippet:        "attached the latest deck",
		SenderEmail:    "jane.doe@acme.com",
		SenderName:     "Jane Doe",
		IsUnread:       true,
		HasAttachments: true,
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"planning", true},
		{"PLANNING", true},
		{"from:jane", true},
		{"from:acme.com", true},
		{"from:bob", false},
		{"subject:q3", true},
		{"subject:deck", false},
		{"body:deck", true},
		{"jane deck", true},
		{"jane missing", false},
		{"is:unread", true},
		{"is:read", false},
		{"has:attachment", true},
		{`"planning notes"`, true},
		{`"notes planning"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			f := ParseSearch(tt.query)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Matches(msg))
		})
	}

	t.Run("nil filter matches everything", func(t *testing.T) {
		var f *SearchFilter
		assert.True(t, f.Matches(msg))
	})
}

func TestSearchFilter_HighlightTerms(t *testing.T) {
	f := ParseSearch(`deck from:jane subject:"q3 planning" is:unread`)
	require.NotNil(t, f)
	assert.ElementsMatch(t, []string{"deck", "jane", "q3 planning"}, f.HighlightTerms())
}
