package repository

import (
	"context"
	"errors"

	"lokma/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

func (r *CommissionRepository) ExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CommissionRecord{}).Where("order_id = ?", orderID).Count(&count).Error
	return count > 0, err
}

// RecordCommission writes the record, the optional sponsored conversion and the usage counters
// in one transaction. The unique order_id turns a concurrent second attempt into ErrDuplicateCommission
// with nothing written.
func (r *CommissionRepository) RecordCommission(ctx context.Context, rec *models.CommissionRecord, conv *models.SponsoredConversion, creditBalance bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCommission
			}
			return err
		}
		if conv != nil {
			if err := tx.Create(conv).Error; err != nil {
				return err
			}
		}
		usage := &models.BusinessUsage{
			BusinessID:      rec.BusinessID,
			Period:          rec.Period,
			OrderCount:      1,
			CommissionTotal: rec.TotalCommission,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "business_id"}, {Name: "period"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"order_count":      gorm.Expr("order_count + ?", 1),
				"commission_total": gorm.Expr("commission_total + ?", rec.TotalCommission),
			}),
		}).Create(usage).Error
		if err != nil {
			return err
		}
		if !creditBalance {
			return nil
		}
		return tx.Model(&models.Business{}).
			Where("id = ?", rec.BusinessID).
			UpdateColumn("account_balance", gorm.Expr("account_balance + ?", rec.BalanceIncrement())).Error
	})
}

func (r *CommissionRepository) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]models.CommissionRecord, error) {
	var list []models.CommissionRecord
	err := r.db.WithContext(ctx).Where("business_id = ?", businessID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
