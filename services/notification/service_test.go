package notification

import (
	"context"
	"errors"
	"testing"

	"remindly/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeWhatsApp struct {
	sent []string
	err  error
}

func (f *fakeWhatsApp) SendMessage(ctx context.Context, phone, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phone)
	return nil
}

type fakeEmail struct {
	sent []string
	err  error
}

func (f *fakeEmail) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakePush struct {
	sent []string
	err  error
}

func (f *fakePush) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg.Token)
	return "msg-id", nil
}

func boolPtr(b bool) *bool { return &b }

func allChannelsUser() models.User {
	return models.User{
		ID:       "u1",
		Phone:    "+254700000001",
		Email:    "asha@example.com",
		FCMToken: "fcm-token",
		NotificationSettings: models.NotificationSettings{
			Email: true,
			Push:  true,
		},
	}
}

func TestSendFansOutToEnabledChannels(t *testing.T) {
	wa := &fakeWhatsApp{}
	mail := &fakeEmail{}
	push := &fakePush{}
	svc := &DefaultNotificationService{WhatsApp: wa, Email: mail, Push: push, Log: zap.NewNop()}

	ok := svc.Send(context.Background(), allChannelsUser(), "Standup in a minute")

	assert.True(t, ok)
	assert.Equal(t, []string{"+254700000001"}, wa.sent)
	assert.Equal(t, []string{"asha@example.com"}, mail.sent)
	assert.Equal(t, []string{"fcm-token"}, push.sent)
}

func TestSendRespectsDisabledChannels(t *testing.T) {
	wa := &fakeWhatsApp{}
	mail := &fakeEmail{}
	push := &fakePush{}
	svc := &DefaultNotificationService{WhatsApp: wa, Email: mail, Push: push, Log: zap.NewNop()}

	user := allChannelsUser()
	user.NotificationSettings = models.NotificationSettings{
		WhatsApp: boolPtr(false),
		Email:    false,
		Push:     true,
	}

	ok := svc.Send(context.Background(), user, "ping")

	assert.True(t, ok)
	assert.Empty(t, wa.sent)
	assert.Empty(t, mail.sent)
	assert.Equal(t, []string{"fcm-token"}, push.sent)
}

func TestSendSucceedsIfAnyChannelDelivers(t *testing.T) {
	wa := &fakeWhatsApp{err: errors.New("provider down")}
	mail := &fakeEmail{}
	svc := &DefaultNotificationService{WhatsApp: wa, Email: mail, Push: &fakePush{}, Log: zap.NewNop()}

	user := allChannelsUser()
	user.NotificationSettings.Push = false

	assert.True(t, svc.Send(context.Background(), user, "ping"))
	assert.Equal(t, []string{"asha@example.com"}, mail.sent)
}

func TestSendFailsWhenAllChannelsFail(t *testing.T) {
	svc := &DefaultNotificationService{
		WhatsApp: &fakeWhatsApp{err: errors.New("down")},
		Email:    &fakeEmail{err: errors.New("down")},
		Push:     &fakePush{err: errors.New("down")},
		Log:      zap.NewNop(),
	}

	assert.False(t, svc.Send(context.Background(), allChannelsUser(), "ping"))
}

func TestSendPushRequiresToken(t *testing.T) {
	svc := &DefaultNotificationService{Push: &fakePush{}, Log: zap.NewNop()}
	err := svc.SendPush(context.Background(), models.User{ID: "u1"}, "t", "b", nil)
	assert.Error(t, err)
}
