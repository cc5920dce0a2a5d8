package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lokma/internal/domain"
	"lokma/internal/logger"
	"lokma/internal/metrics"
	"lokma/internal/models"
	"lokma/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrPlanNotFound = errors.New("no subscription plan for business")

var (
	defaultCommissionRate = decimal.RequireFromString(domain.DefaultCommissionRate)
	vatRate               = decimal.RequireFromString(domain.VATRatePercent)
	vatDivisor            = decimal.NewFromInt(1).Add(vatRate.Div(decimal.NewFromInt(100)))
	defaultSponsoredFee   = decimal.RequireFromString(domain.DefaultSponsoredFeePerConversion)
	hundred               = decimal.NewFromInt(100)
)

// CommissionService writes the commission ledger entry of a billable order.
type CommissionService struct {
	ledger     LedgerStore
	businesses BusinessStore
	plans      PlanStore
	staff      StaffStore
	settings   SettingStore
	now        func() time.Time
	log        zerolog.Logger
}

func NewCommissionService(ledger LedgerStore, businesses BusinessStore, plans PlanStore, staff StaffStore, settings SettingStore) *CommissionService {
	return &CommissionService{
		ledger:     ledger,
		businesses: businesses,
		plans:      plans,
		staff:      staff,
		settings:   settings,
		now:        time.Now,
		log:        logger.Component("commission"),
	}
}

// RecordOrder computes and stores the commission of an order. It returns (nil, nil) when the
// order is already on the ledger.
func (s *CommissionService) RecordOrder(ctx context.Context, order *models.Order) (*models.CommissionRecord, error) {
	ctx, span := otel.Tracer("lokma/service").Start(ctx, "CommissionService.RecordOrder")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", order.ID), attribute.String("business.id", order.BusinessID))

	rec, err := s.recordOrder(ctx, order)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return rec, err
}

func (s *CommissionService) recordOrder(ctx context.Context, order *models.Order) (*models.CommissionRecord, error) {
	log := s.log.With().Str("order_id", order.ID).Str("business_id", order.BusinessID).Logger()

	exists, err := s.ledger.ExistsForOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing commission: %w", err)
	}
	if exists {
		log.Debug().Msg("commission already recorded")
		return nil, nil
	}

	business, err := s.businesses.GetByID(ctx, order.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}
	plan, err := s.resolvePlan(ctx, business)
	if err != nil {
		return nil, err
	}

	period := s.now().UTC().Format("2006-01")
	usage, err := s.businesses.GetUsage(ctx, business.ID, period)
	if err != nil {
		return nil, fmt.Errorf("load usage: %w", err)
	}

	courierType := s.courierType(ctx, order, business)
	rate, ok := plan.RateFor(courierType)
	if !ok {
		rate = defaultCommissionRate
	}
	isFree := usage.OrderCount < plan.FreeOrdersPerPeriod

	commission := decimal.Zero
	perOrderFee := decimal.Zero
	if !isFree {
		commission = order.TotalAmount.Mul(rate).Div(hundred).Round(2)
		perOrderFee = perOrderFeeFor(plan, order.TotalAmount)
	}
	total := commission.Add(perOrderFee)
	net := total.Div(vatDivisor).Round(2)

	collection := domain.CollectionPending
	if domain.IsCardPayment(order.PaymentMethod) {
		collection = domain.CollectionAutoCollected
	}

	rec := &models.CommissionRecord{
		ID:                uuid.NewString(),
		OrderID:           order.ID,
		BusinessID:        business.ID,
		PlanID:            plan.ID,
		Period:            period,
		OrderTotal:        order.TotalAmount,
		CourierType:       courierType,
		CommissionRate:    rate,
		CommissionAmount:  commission,
		PerOrderFeeAmount: perOrderFee,
		TotalCommission:   total,
		NetCommission:     net,
		VATRate:           vatRate,
		VATAmount:         total.Sub(net),
		SponsoredFee:      decimal.Zero,
		PaymentMethod:     order.PaymentMethod,
		CollectionStatus:  collection,
		IsFreeOrder:       isFree,
	}

	conv := s.sponsoredConversion(ctx, order, plan)
	if conv != nil {
		rec.SponsoredFee = conv.TotalFee
	}

	err = s.ledger.RecordCommission(ctx, rec, conv, collection == domain.CollectionPending)
	if errors.Is(err, repository.ErrDuplicateCommission) {
		log.Info().Msg("commission recorded concurrently, skipping")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("record commission: %w", err)
	}

	metrics.CommissionRecords.WithLabelValues(courierType, collection).Inc()
	log.Info().
		Str("courier_type", courierType).
		Str("total_commission", total.StringFixed(2)).
		Str("sponsored_fee", rec.SponsoredFee.StringFixed(2)).
		Str("collection_status", collection).
		Bool("free_order", isFree).
		Msg("commission recorded")
	return rec, nil
}

// resolvePlan looks the plan up by id, then by code.
func (s *CommissionService) resolvePlan(ctx context.Context, business *models.Business) (*models.SubscriptionPlan, error) {
	if business.PlanID != "" {
		plan, err := s.plans.GetByID(ctx, business.PlanID)
		if err == nil {
			return plan, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("load plan: %w", err)
		}
	}
	if business.PlanCode != "" {
		plan, err := s.plans.GetByCode(ctx, business.PlanCode)
		if err == nil {
			return plan, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("load plan by code: %w", err)
		}
	}
	return nil, fmt.Errorf("%w %s", ErrPlanNotFound, business.ID)
}

// courierType classifies who carried the order. Pickup and dine-in are click & collect.
func (s *CommissionService) courierType(ctx context.Context, order *models.Order, business *models.Business) string {
	if !order.IsDelivery() {
		return domain.CourierClickCollect
	}
	if order.CourierID != "" {
		courier, err := s.staff.GetByID(ctx, order.CourierID)
		if err == nil {
			switch courier.DriverType {
			case domain.DriverTypeLokma:
				return domain.CourierLokma
			case domain.DriverTypeBusiness:
				return domain.CourierOwn
			}
			if courier.BusinessID == business.ID {
				return domain.CourierOwn
			}
			return domain.CourierLokma
		}
		s.log.Warn().Err(err).Str("order_id", order.ID).Str("courier_id", order.CourierID).Msg("courier lookup failed")
	}
	if business.HasOwnCourier {
		return domain.CourierOwn
	}
	return domain.CourierLokma
}

func perOrderFeeFor(plan *models.SubscriptionPlan, orderTotal decimal.Decimal) decimal.Decimal {
	switch plan.PerOrderFeeType {
	case domain.FeeTypePercentage:
		return orderTotal.Mul(plan.PerOrderFeeAmount).Div(hundred).Round(2)
	case domain.FeeTypeFixed:
		return plan.PerOrderFeeAmount.Round(2)
	default:
		return decimal.Zero
	}
}

// sponsoredConversion prices the sponsored items of an order, or returns nil when there are
// none or sponsored billing is switched off.
func (s *CommissionService) sponsoredConversion(ctx context.Context, order *models.Order, plan *models.SubscriptionPlan) *models.SponsoredConversion {
	if len(order.SponsoredItemIDs) == 0 || !s.sponsoredEnabled(ctx) {
		return nil
	}
	fee := defaultSponsoredFee
	if plan.SponsoredFeePerConversion != nil {
		fee = *plan.SponsoredFeePerConversion
	} else if raw, err := s.settings.Get(ctx, domain.SettingSponsoredFeePerConversion); err == nil {
		if v, perr := decimal.NewFromString(raw); perr == nil {
			fee = v
		}
	}
	count := len(order.SponsoredItemIDs)
	return &models.SponsoredConversion{
		ID:               uuid.NewString(),
		OrderID:          order.ID,
		BusinessID:       order.BusinessID,
		ItemIDs:          order.SponsoredItemIDs,
		ItemCount:        count,
		FeePerConversion: fee,
		TotalFee:         fee.Mul(decimal.NewFromInt(int64(count))).Round(2),
	}
}

// sponsoredEnabled defaults to true when the setting is missing or unreadable.
func (s *CommissionService) sponsoredEnabled(ctx context.Context) bool {
	raw, err := s.settings.Get(ctx, domain.SettingSponsoredEnabled)
	if err != nil {
		return true
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return enabled
}
