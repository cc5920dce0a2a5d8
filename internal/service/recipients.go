package service

import (
	"slices"

	"lokma/internal/domain"
	"lokma/internal/models"
)

// DeliveryRecipients returns the device tokens of drivers to alert when a delivery order is ready.
// The business's staffing preference picks own drivers, platform drivers assigned to it, or both.
// Only explicit, unpaused shifts count, and drivers who opted out of delivery alerts are skipped.
func DeliveryRecipients(business *models.Business, staff []models.Staff) []string {
	wantOwn, wantLokma := true, false
	switch business.DeliveryStaffing {
	case domain.StaffingLokmaDrivers:
		wantOwn, wantLokma = false, true
	case domain.StaffingHybrid:
		wantOwn, wantLokma = true, true
	}

	picked := make([]*models.Staff, 0, len(staff))
	for i := range staff {
		s := &staff[i]
		if !s.IsDriver || s.DeliveryOptOut || !s.OnActiveShift() {
			continue
		}
		switch {
		case s.DriverType == domain.DriverTypeLokma:
			if wantLokma && slices.Contains(s.AssignedBusinessIDs, business.ID) {
				picked = append(picked, s)
			}
		case wantOwn && s.WorksFor(business.ID):
			picked = append(picked, s)
		}
	}
	return collectTokens(picked)
}

// TableRecipients returns the device tokens of waiters responsible for a table. Staff who never used
// shift tracking are eligible; paused staff are not. An empty table list means every table.
func TableRecipients(businessID string, table int, staff []models.Staff) []string {
	picked := make([]*models.Staff, 0, len(staff))
	for i := range staff {
		s := &staff[i]
		if !s.WorksFor(businessID) || s.IsPaused() {
			continue
		}
		if s.IsOnShift != nil && !*s.IsOnShift {
			continue
		}
		if len(s.AssignedTables) > 0 && !slices.Contains(s.AssignedTables, table) {
			continue
		}
		picked = append(picked, s)
	}
	return collectTokens(picked)
}

// collectTokens dedupes members by id and tokens by value, keeping first-seen order.
func collectTokens(members []*models.Staff) []string {
	seenStaff := make(map[string]struct{}, len(members))
	seenToken := make(map[string]struct{})
	var tokens []string
	for _, s := range members {
		if _, ok := seenStaff[s.ID]; ok {
			continue
		}
		seenStaff[s.ID] = struct{}{}
		for _, t := range s.Tokens() {
			if t == "" {
				continue
			}
			if _, ok := seenToken[t]; ok {
				continue
			}
			seenToken[t] = struct{}{}
			tokens = append(tokens, t)
		}
	}
	return tokens
}
