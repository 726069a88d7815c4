package errors

import "github.com/pkg/errors"

var (
	// common errors
	ErrAccountMissing    = errors.New("account is missing")
	ErrConnectionTimeout = errors.New("connection timeout")

	// mail source errors
	ErrMailboxNotConfigured = errors.New("mailbox not configured")
	ErrSyncInProgress       = errors.New("sync already in progress")

	// view errors
	ErrMessageNotFound = errors.New("message not found")
)
