package notification

import (
	"context"

	"remindly/models"
)

// NotificationService fans a message out to a user's enabled channels.
type NotificationService interface {
	// Send delivers a reminder over every enabled channel; it reports success
	// if at least one enabled channel accepted the message.
	Send(ctx context.Context, user models.User, message string) bool
	// SendWhatsApp delivers a single WhatsApp message, settings aside. Used
	// for OTP delivery during registration.
	SendWhatsApp(ctx context.Context, phone, message string) error
	// SendPush delivers a single FCM push, settings aside.
	SendPush(ctx context.Context, user models.User, title, body string, data map[string]string) error
}
