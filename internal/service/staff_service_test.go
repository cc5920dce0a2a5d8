package service

import (
	"context"
	"errors"
	"testing"

	"lokma/internal/models"
)

func TestRegisterToken(t *testing.T) {
	staff := &fakeStaff{members: []models.Staff{{ID: "s1", FCMTokens: []string{"a"}}}}
	svc := NewStaffService(staff)
	ctx := context.Background()

	if err := svc.RegisterToken(ctx, "s1", "a", "mobile"); err != nil {
		t.Fatalf("RegisterToken: %v", err)
	}
	if len(staff.updated) != 0 {
		t.Error("known token must not trigger an update")
	}
	if err := svc.RegisterToken(ctx, "s1", "w", PlatformWeb); err != nil {
		t.Fatalf("RegisterToken web: %v", err)
	}
	if err := svc.RegisterToken(ctx, "s1", "b", ""); err != nil {
		t.Fatalf("RegisterToken mobile: %v", err)
	}
	got := staff.members[0]
	if len(got.FCMTokens) != 2 || got.FCMTokens[1] != "b" {
		t.Errorf("FCMTokens = %v, want [a b]", got.FCMTokens)
	}
	if len(got.WebFCMTokens) != 1 || got.WebFCMTokens[0] != "w" {
		t.Errorf("WebFCMTokens = %v, want [w]", got.WebFCMTokens)
	}
}

func TestUpdateShift(t *testing.T) {
	staff := &fakeStaff{members: []models.Staff{{ID: "s1"}}}
	svc := NewStaffService(staff)
	ctx := context.Background()

	if _, err := svc.UpdateShift(ctx, "s1", ShiftPause); !errors.Is(err, ErrNotOnShift) {
		t.Errorf("pause before start error = %v, want ErrNotOnShift", err)
	}
	if _, err := svc.UpdateShift(ctx, "s1", "lunch"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown action error = %v, want ErrUnknownAction", err)
	}

	steps := []struct {
		action     string
		wantActive bool
		wantPaused bool
	}{
		{ShiftStart, true, false},
		{ShiftPause, false, true},
		{ShiftResume, true, false},
		{ShiftEnd, false, false},
	}
	for _, st := range steps {
		m, err := svc.UpdateShift(ctx, "s1", st.action)
		if err != nil {
			t.Fatalf("UpdateShift(%s): %v", st.action, err)
		}
		if m.OnActiveShift() != st.wantActive || m.IsPaused() != st.wantPaused {
			t.Errorf("after %s: active=%v paused=%v, want %v/%v", st.action, m.OnActiveShift(), m.IsPaused(), st.wantActive, st.wantPaused)
		}
	}
	if m := staff.members[0]; m.IsOnShift == nil || *m.IsOnShift || m.ShiftStatus != "" {
		t.Errorf("ended shift state = %v/%q", m.IsOnShift, m.ShiftStatus)
	}
	if _, err := svc.UpdateShift(ctx, "s1", ShiftResume); !errors.Is(err, ErrNotPaused) {
		t.Errorf("resume after end error = %v, want ErrNotPaused", err)
	}
}
