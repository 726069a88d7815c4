package interfaces

import (
	"context"

	"github.com/openinbox/inboxd/internal/models"
)

type MessageRepository interface {
	Store(ctx context.Context, email *models.Email) (string, error)
	GetByID(ctx context.Context, id string) (*models.Email, error)
	GetByMessageID(ctx context.Context, messageID string) (*models.Email, error)
	GetByAccount(ctx context.Context, accountID string) ([]*models.Email, error)
	MarkRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
}

type FilterSettingsRepository interface {
	GetByAccount(ctx context.Context, accountID string) (*models.FilterSettings, error)
	Save(ctx context.Context, settings *models.FilterSettings) error
}
