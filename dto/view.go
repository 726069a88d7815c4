// Package dto holds the JSON shapes of the REST surface, kept separate from
// the storage and pipeline models.
package dto

import (
	"time"

	"github.com/openinbox/inboxd/internal/models"
)

type ViewStateResponse struct {
	Sections []Section      `json:"sections"`
	Counts   map[string]int `json:"counts"`
	Bundles  []Bundle       `json:"bundles"`
}

type Section struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

type Message struct {
	ID             string    `json:"id"`
	ThreadID       string    `json:"threadId,omitempty"`
	Date           time.Time `json:"date"`
	Subject        string    `json:"subject"`
	Snippet        string    `json:"snippet,omitempty"`
	SenderName     string    `json:"senderName"`
	SenderEmail    string    `json:"senderEmail"`
	IsUnread       bool      `json:"isUnread"`
	IsStarred      bool      `json:"isStarred"`
	HasAttachments bool      `json:"hasAttachments"`
	ThreadCount    int       `json:"threadCount"`
}

type Bundle struct {
	Category    string   `json:"category"`
	UnreadCount int      `json:"unreadCount"`
	TotalCount  int      `json:"totalCount"`
	Latest      *Message `json:"latest,omitempty"`
}

func MapViewState(state models.ViewState) ViewStateResponse {
	resp := ViewStateResponse{
		Sections: make([]Section, 0, len(state.Sections)),
		Counts:   make(map[string]int, len(state.Counts)),
		Bundles:  make([]Bundle, 0, len(state.Bundles)),
	}

	for _, section := range state.Sections {
		s := Section{
			ID:       section.ID,
			Title:    section.Title,
			Messages: make([]Message, 0, len(section.Messages)),
		}
		for _, m := range section.Messages {
			s.Messages = append(s.Messages, mapMessage(m))
		}
		resp.Sections = append(resp.Sections, s)
	}

	for filter, count := range state.Counts {
		resp.Counts[filter.String()] = count
	}

	for _, bundle := range state.Bundles {
		b := Bundle{
			Category:    bundle.Category.String(),
			UnreadCount: bundle.UnreadCount,
			TotalCount:  bundle.TotalCount,
		}
		if bundle.Latest != nil {
			latest := mapMessage(*bundle.Latest)
			b.Latest = &latest
		}
		resp.Bundles = append(resp.Bundles, b)
	}

	return resp
}

func mapMessage(m models.MessageSnapshot) Message {
	return Message{
		ID:             m.ID,
		ThreadID:       m.ThreadID,
		Date:           m.Date,
		Subject:        m.Subject,
		Snippet:        m.Snippet,
		SenderName:     m.SenderName,
		SenderEmail:    m.SenderEmail,
		IsUnread:       m.IsUnread,
		IsStarred:      m.IsStarred,
		HasAttachments: m.HasAttachments,
		ThreadCount:    m.ThreadMessageCount,
	}
}
