package models

import (
	"slices"
	"time"

	"lokma/internal/domain"

	"gorm.io/datatypes"
)

// Staff is a business employee or a platform driver. IsOnShift is nil for members who
// have never used shift tracking.
type Staff struct {
	ID                  string                      `gorm:"primaryKey;size:64" json:"id"`
	Name                string                      `gorm:"size:255" json:"name"`
	BusinessID          string                      `gorm:"size:64;index" json:"business_id"`
	AssignedBusinessIDs datatypes.JSONSlice[string] `gorm:"type:json" json:"assigned_business_ids"`
	Role                string                      `gorm:"size:20;not null;index" json:"role"`
	IsDriver            bool                        `gorm:"default:false;index" json:"is_driver"`
	DriverType          string                      `gorm:"size:20" json:"driver_type"`
	IsOnShift           *bool                       `json:"is_on_shift"`
	ShiftStatus         string                      `gorm:"size:20" json:"shift_status"`
	ShiftStartedAt      *time.Time                  `json:"shift_started_at"`
	AssignedTables      datatypes.JSONSlice[int]    `gorm:"type:json" json:"assigned_tables"`
	DeliveryOptOut      bool                        `gorm:"default:false" json:"delivery_opt_out"`
	FCMTokens           datatypes.JSONSlice[string] `gorm:"type:json" json:"-"`
	WebFCMTokens        datatypes.JSONSlice[string] `gorm:"type:json" json:"-"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}

func (Staff) TableName() string {
	return "staff_members"
}

func (s *Staff) IsPaused() bool { return s.ShiftStatus == domain.ShiftStatusPaused }

// OnActiveShift is true only for an explicit, unpaused shift.
func (s *Staff) OnActiveShift() bool {
	return s.IsOnShift != nil && *s.IsOnShift && !s.IsPaused()
}

// WorksFor reports direct or assigned affiliation with a business.
func (s *Staff) WorksFor(businessID string) bool {
	return s.BusinessID == businessID || slices.Contains(s.AssignedBusinessIDs, businessID)
}

// Tokens returns mobile and web device tokens.
func (s *Staff) Tokens() []string {
	out := make([]string, 0, len(s.FCMTokens)+len(s.WebFCMTokens))
	out = append(out, s.FCMTokens...)
	return append(out, s.WebFCMTokens...)
}
