package notification

import (
	"context"
	"fmt"

	"remindly/models"
	"remindly/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Narrow channel contracts so the fan-out can be exercised with fakes.
type whatsAppSender interface {
	SendMessage(ctx context.Context, phone, text string) error
}

type emailSender interface {
	Send(to, subject, body string) error
}

type pushSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService is the production multi-channel dispatcher.
type DefaultNotificationService struct {
	WhatsApp whatsAppSender
	Email    emailSender
	Push     pushSender
	Log      *zap.Logger
}

// NewDefaultNotificationService wires the production channel clients.
func NewDefaultNotificationService(log *zap.Logger) *DefaultNotificationService {
	return &DefaultNotificationService{
		WhatsApp: NewWhatsAppClient(),
		Email:    NewEmailClient(),
		Push:     utils.FCMClient,
		Log:      log,
	}
}

// Send fans the message out to every channel the user has enabled. It reports
// success if at least one enabled channel accepted the message; per-channel
// failures are logged, not propagated.
func (s *DefaultNotificationService) Send(ctx context.Context, user models.User, message string) bool {
	log := s.Log.With(zap.String("userID", user.ID))
	delivered := false

	if user.NotificationSettings.WhatsAppEnabled() && user.Phone != "" {
		if err := s.WhatsApp.SendMessage(ctx, user.Phone, message); err != nil {
			log.Warn("whatsapp delivery failed", zap.Error(err))
		} else {
			delivered = true
		}
	}

	if user.NotificationSettings.Email && user.Email != "" {
		if err := s.Email.Send(user.Email, "Reminder", message); err != nil {
			log.Warn("email delivery failed", zap.Error(err))
		} else {
			delivered = true
		}
	}

	if user.NotificationSettings.Push && user.FCMToken != "" {
		if err := s.SendPush(ctx, user, "Reminder", message, map[string]string{"type": "reminder"}); err != nil {
			log.Warn("push delivery failed", zap.Error(err))
		} else {
			delivered = true
		}
	}

	return delivered
}

// SendWhatsApp delivers a single WhatsApp message regardless of settings.
func (s *DefaultNotificationService) SendWhatsApp(ctx context.Context, phone, message string) error {
	return s.WhatsApp.SendMessage(ctx, phone, message)
}

// SendPush delivers one FCM push to the user's registered device.
func (s *DefaultNotificationService) SendPush(ctx context.Context, user models.User, title, body string, data map[string]string) error {
	if s.Push == nil {
		return fmt.Errorf("push client not initialized")
	}
	if user.FCMToken == "" {
		return fmt.Errorf("user %s has no FCM token", user.ID)
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "reminders",
				Sound:     "default",
			},
		},
	}

	if _, err := s.Push.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
