package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/openinbox/inboxd/config"
	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/models"
)

type Repositories struct {
	EmailRepository          interfaces.MessageRepository
	FilterSettingsRepository interfaces.FilterSettingsRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		EmailRepository:          NewEmailRepository(db),
		FilterSettingsRepository: NewFilterSettingsRepository(db),
	}
}

func MigrateDB(dbConfig *config.DatabaseConfig, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxOpenConns(5)

	err = db.AutoMigrate(
		&models.Email{},
		&models.FilterSettings{},
	)

	sqlDB.Close()

	sqlDB, _ = db.DB()
	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConn)
	sqlDB.SetMaxOpenConns(dbConfig.MaxConn)
	sqlDB.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Minute)

	return err
}
