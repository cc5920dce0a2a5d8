package service

import (
	"context"
	"sync"
	"time"

	"lokma/internal/models"
	"lokma/internal/repository"
)

type fakeOrders struct {
	mu          sync.Mutex
	orders      map[string]*models.Order
	feedback    map[string]time.Time
	feedbackErr error
	saveErr     error
}

func newFakeOrders(orders ...*models.Order) *fakeOrders {
	f := &fakeOrders{orders: map[string]*models.Order{}, feedback: map[string]time.Time{}}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) Save(_ context.Context, o *models.Order) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrders) ScheduleFeedback(_ context.Context, orderID string, at time.Time) error {
	if f.feedbackErr != nil {
		return f.feedbackErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedback[orderID] = at
	return nil
}

type fakeBusinesses struct {
	businesses map[string]*models.Business
	usage      map[string]*models.BusinessUsage // key: businessID/period
	err        error
}

func newFakeBusinesses(bs ...*models.Business) *fakeBusinesses {
	f := &fakeBusinesses{businesses: map[string]*models.Business{}, usage: map[string]*models.BusinessUsage{}}
	for _, b := range bs {
		f.businesses[b.ID] = b
	}
	return f
}

func (f *fakeBusinesses) GetByID(_ context.Context, id string) (*models.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.businesses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (f *fakeBusinesses) GetUsage(_ context.Context, businessID, period string) (*models.BusinessUsage, error) {
	if u, ok := f.usage[businessID+"/"+period]; ok {
		return u, nil
	}
	return &models.BusinessUsage{BusinessID: businessID, Period: period}, nil
}

type fakePlans struct {
	byID   map[string]*models.SubscriptionPlan
	byCode map[string]*models.SubscriptionPlan
}

func newFakePlans(plans ...*models.SubscriptionPlan) *fakePlans {
	f := &fakePlans{byID: map[string]*models.SubscriptionPlan{}, byCode: map[string]*models.SubscriptionPlan{}}
	for _, p := range plans {
		f.byID[p.ID] = p
		f.byCode[p.Code] = p
	}
	return f
}

func (f *fakePlans) GetByID(_ context.Context, id string) (*models.SubscriptionPlan, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePlans) GetByCode(_ context.Context, code string) (*models.SubscriptionPlan, error) {
	if p, ok := f.byCode[code]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

type fakeStaff struct {
	members []models.Staff
	listErr error
	updated []*models.Staff
}

func (f *fakeStaff) GetByID(_ context.Context, id string) (*models.Staff, error) {
	for i := range f.members {
		if f.members[i].ID == id {
			cp := f.members[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStaff) ListForBusiness(_ context.Context, businessID string) ([]models.Staff, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Staff
	for _, s := range f.members {
		if s.WorksFor(businessID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStaff) Update(_ context.Context, s *models.Staff) error {
	cp := *s
	f.updated = append(f.updated, &cp)
	for i := range f.members {
		if f.members[i].ID == s.ID {
			f.members[i] = cp
		}
	}
	return nil
}

type ledgerWrite struct {
	rec    *models.CommissionRecord
	conv   *models.SponsoredConversion
	credit bool
}

type fakeLedger struct {
	mu     sync.Mutex
	writes map[string]ledgerWrite
	// raceLost makes ExistsForOrder miss and RecordCommission report a duplicate,
	// as when a concurrent delivery wins the insert.
	raceLost bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{writes: map[string]ledgerWrite{}}
}

func (f *fakeLedger) ExistsForOrder(_ context.Context, orderID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raceLost {
		return false, nil
	}
	_, ok := f.writes[orderID]
	return ok, nil
}

func (f *fakeLedger) RecordCommission(_ context.Context, rec *models.CommissionRecord, conv *models.SponsoredConversion, credit bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raceLost {
		return repository.ErrDuplicateCommission
	}
	if _, ok := f.writes[rec.OrderID]; ok {
		return repository.ErrDuplicateCommission
	}
	f.writes[rec.OrderID] = ledgerWrite{rec: rec, conv: conv, credit: credit}
	return nil
}

type fakeSettings map[string]string

func (f fakeSettings) Get(_ context.Context, key string) (string, error) {
	if v, ok := f[key]; ok {
		return v, nil
	}
	return "", repository.ErrNotFound
}

type pushCall struct {
	tokens []string
	msg    PushMessage
}

type fakePusher struct {
	mu    sync.Mutex
	calls []pushCall
	err   error
}

func (f *fakePusher) SendMulticast(_ context.Context, tokens []string, msg PushMessage) (*PushResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pushCall{tokens: tokens, msg: msg})
	if f.err != nil {
		return nil, f.err
	}
	return &PushResult{SuccessCount: len(tokens)}, nil
}

// byData returns the calls whose data[key] equals value.
func (f *fakePusher) byData(key, value string) []pushCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []pushCall
	for _, c := range f.calls {
		if c.msg.Data[key] == value {
			out = append(out, c)
		}
	}
	return out
}

type fakeFeed struct {
	events []interface{}
}

func (f *fakeFeed) PublishOrderEvent(_ string, payload interface{}) {
	f.events = append(f.events, payload)
}

type fakeGateway struct {
	events []GatewayEvent
	err    error
}

func (f *fakeGateway) Notify(_ context.Context, _ *models.Business, ev GatewayEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

type fakeRecorder struct {
	orders []string
	err    error
}

func (f *fakeRecorder) RecordOrder(_ context.Context, order *models.Order) (*models.CommissionRecord, error) {
	f.orders = append(f.orders, order.ID)
	return nil, f.err
}
