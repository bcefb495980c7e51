package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"rideauth/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationAccountCreated NotificationType = "ACCOUNT_CREATED"
	NotificationNewSignIn      NotificationType = "NEW_SIGN_IN"
	NotificationProfileUpdated NotificationType = "PROFILE_UPDATED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService delivers account notifications. Delivery is a log
// line; there is no push, SMS or email channel.
type NotificationService struct {
	logf func(format string, args ...any)
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{logf: log.Printf}
}

// NotifyAccountCreated welcomes a newly registered user.
func (s *NotificationService) NotifyAccountCreated(ctx context.Context, user *domain.User) error {
	return s.send(ctx, Notification{
		Type:        NotificationAccountCreated,
		RecipientID: user.ID,
		Title:       "Welcome",
		Message:     fmt.Sprintf("Welcome aboard, %s! Your %s account is ready.", user.FirstName, user.Role),
		Data: map[string]interface{}{
			"role": user.Role,
		},
		CreatedAt: time.Now(),
	})
}

// NotifySignIn tells a user their account was signed in to.
func (s *NotificationService) NotifySignIn(ctx context.Context, user *domain.User) error {
	return s.send(ctx, Notification{
		Type:        NotificationNewSignIn,
		RecipientID: user.ID,
		Title:       "New Sign-In",
		Message:     "Your account was just signed in to.",
		CreatedAt:   time.Now(),
	})
}

// NotifyProfileUpdated confirms a profile change.
func (s *NotificationService) NotifyProfileUpdated(ctx context.Context, user *domain.User) error {
	return s.send(ctx, Notification{
		Type:        NotificationProfileUpdated,
		RecipientID: user.ID,
		Title:       "Profile Updated",
		Message:     "Your profile details were changed.",
		CreatedAt:   time.Now(),
	})
}

func (s *NotificationService) send(_ context.Context, n Notification) error {
	if len(n.Data) == 0 {
		s.logf("[NOTIFICATION] type=%s recipient=%s title=%q message=%q", n.Type, n.RecipientID, n.Title, n.Message)
		return nil
	}
	s.logf("[NOTIFICATION] type=%s recipient=%s title=%q message=%q data=%v", n.Type, n.RecipientID, n.Title, n.Message, n.Data)
	return nil
}
