package repository

import (
	"context"
	"errors"

	"lokma/internal/models"

	"gorm.io/gorm"
)

type BusinessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func (r *BusinessRepository) GetByID(ctx context.Context, id string) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// GetUsage returns the usage row for a period, or an empty one when nothing was billed yet.
func (r *BusinessRepository) GetUsage(ctx context.Context, businessID, period string) (*models.BusinessUsage, error) {
	var u models.BusinessUsage
	err := r.db.WithContext(ctx).Where("business_id = ? AND period = ?", businessID, period).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.BusinessUsage{BusinessID: businessID, Period: period}, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
