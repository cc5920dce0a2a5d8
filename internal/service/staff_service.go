package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"lokma/internal/domain"
	"lokma/internal/models"
)

var (
	ErrNotOnShift    = errors.New("not on shift")
	ErrNotPaused     = errors.New("shift is not paused")
	ErrUnknownAction = errors.New("unknown shift action")
)

// Shift actions.
const (
	ShiftStart  = "start"
	ShiftPause  = "pause"
	ShiftResume = "resume"
	ShiftEnd    = "end"
)

const PlatformWeb = "web"

type StaffWriter interface {
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	Update(ctx context.Context, s *models.Staff) error
}

// StaffService maintains the device tokens and shift state that decide who gets order alerts.
type StaffService struct {
	staff StaffWriter
	now   func() time.Time
}

func NewStaffService(staff StaffWriter) *StaffService {
	return &StaffService{staff: staff, now: time.Now}
}

// RegisterToken adds a device token to the mobile or web list. Known tokens are not duplicated.
func (s *StaffService) RegisterToken(ctx context.Context, staffID, token, platform string) error {
	m, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return err
	}
	list := &m.FCMTokens
	if platform == PlatformWeb {
		list = &m.WebFCMTokens
	}
	if slices.Contains(*list, token) {
		return nil
	}
	*list = append(*list, token)
	return s.staff.Update(ctx, m)
}

func (s *StaffService) UpdateShift(ctx context.Context, staffID, action string) (*models.Staff, error) {
	m, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	onShift := m.IsOnShift != nil && *m.IsOnShift
	switch action {
	case ShiftStart:
		now := s.now().UTC()
		on := true
		m.IsOnShift = &on
		m.ShiftStatus = domain.ShiftStatusActive
		m.ShiftStartedAt = &now
	case ShiftPause:
		if !onShift {
			return nil, ErrNotOnShift
		}
		m.ShiftStatus = domain.ShiftStatusPaused
	case ShiftResume:
		if !onShift || !m.IsPaused() {
			return nil, ErrNotPaused
		}
		m.ShiftStatus = domain.ShiftStatusActive
	case ShiftEnd:
		off := false
		m.IsOnShift = &off
		m.ShiftStatus = ""
		m.ShiftStartedAt = nil
	default:
		return nil, ErrUnknownAction
	}
	if err := s.staff.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
