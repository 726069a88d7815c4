package repository

import (
	"context"
	"errors"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/models"
	"github.com/openinbox/inboxd/internal/tracing"
)

type filterSettingsRepository struct {
	db *gorm.DB
}

func NewFilterSettingsRepository(db *gorm.DB) interfaces.FilterSettingsRepository {
	return &filterSettingsRepository{
		db: db,
	}
}

// GetByAccount retrieves the stored filter settings for an account. A missing
// row returns nil; callers fall back to the default rule set.
func (r *filterSettingsRepository) GetByAccount(ctx context.Context, accountID string) (*models.FilterSettings, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "filterSettingsRepository.GetByAccount")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagAccount(span, accountID)

	var settings models.FilterSettings
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &settings, nil
}

// Save upserts the settings row keyed by account.
func (r *filterSettingsRepository) Save(ctx context.Context, settings *models.FilterSettings) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "filterSettingsRepository.Save")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagAccount(span, settings.AccountID)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			UpdateAll: true,
		}).
		Create(settings)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	return nil
}
