package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/models"
	"github.com/openinbox/inboxd/internal/tracing"
)

type emailRepository struct {
	db *gorm.DB
}

func NewEmailRepository(db *gorm.DB) interfaces.MessageRepository {
	return &emailRepository{
		db: db,
	}
}

// Store persists an email, deduplicating on Message-ID. Storing a message
// that already exists returns the existing record's ID.
func (r *emailRepository) Store(ctx context.Context, email *models.Email) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.Store")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if email == nil {
		return "", nil
	}

	if email.MessageID != "" {
		email.MessageID = strings.Trim(email.MessageID, "<>")
	}

	existing := &models.Email{}
	err := r.db.WithContext(ctx).
		Where("message_id = ?", email.MessageID).
		First(existing).Error

	if err == nil {
		span.SetTag("duplicate", true)
		return existing.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tracing.TraceErr(span, err)
		return "", err
	}

	result := r.db.WithContext(ctx).Create(email)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return "", result.Error
	}

	return email.ID, nil
}

// GetByID retrieves an email by its ID
func (r *emailRepository) GetByID(ctx context.Context, id string) (*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.GetByID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var email models.Email
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &email, nil
}

// GetByMessageID retrieves an email by its Message-ID header
func (r *emailRepository) GetByMessageID(ctx context.Context, messageID string) (*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.GetByMessageID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	messageID = strings.Trim(messageID, "<>")

	var email models.Email
	if err := r.db.WithContext(ctx).Where("message_id = ?", messageID).First(&email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &email, nil
}

// GetByAccount retrieves all stored emails for an account, newest first. The
// result is the snapshot source for view computations.
func (r *emailRepository) GetByAccount(ctx context.Context, accountID string) ([]*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.GetByAccount")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagAccount(span, accountID)

	var emails []*models.Email
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("sent_at DESC").
		Find(&emails).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) MarkRead(ctx context.Context, id string, read bool) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.MarkRead")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	result := r.db.WithContext(ctx).
		Model(&models.Email{}).
		Where("id = ?", id).
		Update("is_unread", !read)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	return nil
}

func (r *emailRepository) Delete(ctx context.Context, id string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.Delete")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	result := r.db.WithContext(ctx).Delete(&models.Email{}, "id = ?", id)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	return nil
}
