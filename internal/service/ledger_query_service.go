package service

import (
	"context"

	"lokma/internal/models"
)

type CommissionLister interface {
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]models.CommissionRecord, error)
}

// LedgerQueryService serves the read side of the commission ledger.
type LedgerQueryService struct {
	commissions CommissionLister
	businesses  BusinessStore
}

func NewLedgerQueryService(commissions CommissionLister, businesses BusinessStore) *LedgerQueryService {
	return &LedgerQueryService{commissions: commissions, businesses: businesses}
}

func (s *LedgerQueryService) Commissions(ctx context.Context, businessID string, limit, offset int) ([]models.CommissionRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.commissions.ListByBusiness(ctx, businessID, limit, offset)
}

// Usage returns the period usage together with the business's open balance.
func (s *LedgerQueryService) Usage(ctx context.Context, businessID, period string) (*models.BusinessUsage, *models.Business, error) {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, nil, err
	}
	usage, err := s.businesses.GetUsage(ctx, businessID, period)
	if err != nil {
		return nil, nil, err
	}
	return usage, business, nil
}
