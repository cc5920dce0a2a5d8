package repository

import (
	"context"

	"lokma/internal/models"

	"gorm.io/gorm"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	var s models.Staff
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// ListForBusiness returns staff employed by the business plus drivers assigned to it.
func (r *StaffRepository) ListForBusiness(ctx context.Context, businessID string) ([]models.Staff, error) {
	var list []models.Staff
	err := r.db.WithContext(ctx).
		Where("business_id = ? OR JSON_CONTAINS(assigned_business_ids, JSON_QUOTE(?))", businessID, businessID).
		Find(&list).Error
	return list, err
}

func (r *StaffRepository) Update(ctx context.Context, s *models.Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}
