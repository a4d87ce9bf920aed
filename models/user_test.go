package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// WhatsApp reminders are opt-out: only an explicit false disables them.
func TestWhatsAppEnabledDefaultsOn(t *testing.T) {
	enabled := true
	disabled := false

	assert.True(t, NotificationSettings{}.WhatsAppEnabled())
	assert.True(t, NotificationSettings{WhatsApp: &enabled}.WhatsAppEnabled())
	assert.False(t, NotificationSettings{WhatsApp: &disabled}.WhatsAppEnabled())
}
