// models/user.go
package models

import "time"

// NotificationSettings controls which channels a user receives reminders on.
// WhatsApp is opt-out: a missing value counts as enabled, so the field is a
// pointer to distinguish "unset" from "explicitly disabled".
type NotificationSettings struct {
	WhatsApp *bool `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Email    bool  `bson:"email" json:"email"`
	Push     bool  `bson:"push" json:"push"`
}

// WhatsAppEnabled reports whether WhatsApp reminders are on (default true).
func (s NotificationSettings) WhatsAppEnabled() bool {
	return s.WhatsApp == nil || *s.WhatsApp
}

// User represents a registered account.
type User struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Phone        string `bson:"phone" json:"phone"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
	PasswordHash string `bson:"password_hash" json:"-"`
	IsVerified   bool   `bson:"is_verified" json:"isVerified"`
	FCMToken     string `bson:"fcm_token,omitempty" json:"-"`

	NotificationSettings NotificationSettings `bson:"notification_settings" json:"notificationSettings"`

	// Schedule is the raw weekly schedule blob exactly as the client saved it.
	// Three encodings exist in the wild; it is normalized on every reminder
	// cycle, never stored in canonical form.
	Schedule any `bson:"schedule,omitempty" json:"schedule,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
