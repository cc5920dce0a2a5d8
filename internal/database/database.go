package database

import (
	"lokma/config"
	"lokma/internal/domain"
	"lokma/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
		TranslateError: true,                                 // unique violations surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Order{},
		&models.Business{},
		&models.BusinessUsage{},
		&models.SubscriptionPlan{},
		&models.CommissionRecord{},
		&models.SponsoredConversion{},
		&models.Staff{},
		&models.SystemSetting{},
	)
}

// DefaultSettings are inserted on startup when missing.
var DefaultSettings = map[string]string{
	domain.SettingSponsoredEnabled:          "true",
	domain.SettingSponsoredFeePerConversion: domain.DefaultSponsoredFeePerConversion,
}
