package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/openinbox/inboxd/internal/utils"
)

// Email is a locally stored message row, the durable form behind
// MessageSnapshot. Only metadata needed by the view pipeline is kept; bodies
// stay on the server.
type Email struct {
	ID        string `gorm:"column:id;type:varchar(50);primaryKey"`
	AccountID string `gorm:"column:account_id;type:varchar(50);index;not null"`
	MessageID string `gorm:"column:message_id;uniqueIndex;type:varchar(255);not null"`
	ThreadID  string `gorm:"column:thread_id;type:varchar(255);index"`

	// Core metadata
	Subject     string `gorm:"column:subject;type:varchar(1000)"`
	Snippet     string `gorm:"column:snippet;type:varchar(1000)"`
	FromAddress string `gorm:"column:from_address;type:varchar(255);index"`
	FromName    string `gorm:"column:from_name;type:varchar(255)"`

	SentAt *time.Time `gorm:"column:sent_at;type:timestamp;index"`

	// Flags
	IsUnread      bool `gorm:"column:is_unread;default:true;index"`
	IsStarred     bool `gorm:"column:is_starred;default:false"`
	HasAttachment bool `gorm:"column:has_attachment;default:false"`

	// Labels and classification-relevant headers
	Labels          pq.StringArray `gorm:"column:labels;type:text[]"`
	ListUnsubscribe string         `gorm:"column:list_unsubscribe;type:text"`
	ListID          string         `gorm:"column:list_id;type:varchar(500)"`
	Precedence      string         `gorm:"column:precedence;type:varchar(100)"`
	AutoSubmitted   string         `gorm:"column:auto_submitted;type:varchar(100)"`

	ThreadCount int `gorm:"column:thread_count;default:1"`

	// Standard timestamps
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
	UpdatedAt time.Time      `gorm:"column:updated_at;type:timestamp;default:current_timestamp"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Email) TableName() string {
	return "emails"
}

func (e *Email) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = utils.GenerateNanoIDWithPrefix("email", 24)
	}
	return nil
}

// Snapshot converts the stored row into the immutable value the view
// pipeline consumes.
func (e *Email) Snapshot() MessageSnapshot {
	date := utils.GetOrDefault(e.SentAt, time.Time{})
	threadCount := e.ThreadCount
	if threadCount < 1 {
		threadCount = 1
	}
	return MessageSnapshot{
		ID:                 e.ID,
		ThreadID:           e.ThreadID,
		Date:               date,
		Subject:            e.Subject,
		Snippet:            e.Snippet,
		SenderEmail:        e.FromAddress,
		SenderName:         e.FromName,
		IsUnread:           e.IsUnread,
		IsStarred:          e.IsStarred,
		HasAttachments:     e.HasAttachment,
		AccountID:          e.AccountID,
		Labels:             append([]string(nil), e.Labels...),
		ListUnsubscribe:    e.ListUnsubscribe,
		ListID:             e.ListID,
		Precedence:         e.Precedence,
		AutoSubmitted:      e.AutoSubmitted,
		ThreadMessageCount: threadCount,
	}
}
