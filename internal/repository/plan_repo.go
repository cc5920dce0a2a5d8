package repository

import (
	"context"

	"lokma/internal/models"

	"gorm.io/gorm"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) GetByID(ctx context.Context, id string) (*models.SubscriptionPlan, error) {
	var p models.SubscriptionPlan
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PlanRepository) GetByCode(ctx context.Context, code string) (*models.SubscriptionPlan, error) {
	var p models.SubscriptionPlan
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}
