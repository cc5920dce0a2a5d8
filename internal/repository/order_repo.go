package repository

import (
	"context"
	"time"

	"lokma/internal/models"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (r *OrderRepository) Save(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// ScheduleFeedback stores when the feedback request should go out; a scheduled job picks it up.
func (r *OrderRepository) ScheduleFeedback(ctx context.Context, orderID string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		UpdateColumn("feedback_request_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
