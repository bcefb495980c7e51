package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"rideauth/internal/domain"
)

func TestNotificationService_LogsDelivery(t *testing.T) {
	var lines []string
	s := &NotificationService{logf: func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}}
	user := &domain.User{ID: "user-1", FirstName: "Ada", Role: domain.RoleDriver}

	if err := s.NotifyAccountCreated(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.NotifySignIn(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	welcome := lines[0]
	for _, want := range []string{"type=ACCOUNT_CREATED", "recipient=user-1", "data=map[role:driver]"} {
		if !strings.Contains(welcome, want) {
			t.Errorf("expected %q in %q", want, welcome)
		}
	}
	if strings.Contains(lines[1], "data=") {
		t.Errorf("expected no data on sign-in notification: %q", lines[1])
	}
}
