package interfaces

import (
	"context"
	"time"
)

// MailboxStatus describes the sync state of one configured mailbox.
type MailboxStatus struct {
	Connected bool      `json:"connected"`
	LastSync  time.Time `json:"lastSync"`
	LastError string    `json:"lastError,omitempty"`
	Messages  int       `json:"messages"`
}

// MailSource is the remote-mail collaborator. The view pipeline never talks
// to the network itself; a MailSource feeds stored messages which are then
// snapshotted into view requests.
type MailSource interface {
	Start(ctx context.Context) error
	Stop() error
	SyncNow(ctx context.Context) error
	Status() map[string]MailboxStatus
}
