// Package user implements account lifecycle: registration with phone-number
// OTP verification, authentication, and profile/schedule updates.
package user

import (
	"context"
	"fmt"
	"time"

	taskRepo "remindly/database/repository/task"
	userRepo "remindly/database/repository/user"
	"remindly/models"
	"remindly/services/notification"
	"remindly/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenTTL = 30 * 24 * time.Hour

// UserService defines user account operations.
type UserService interface {
	Register(ctx context.Context, name, phone, email, password string) (*models.User, error)
	RequestOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, otp string) (string, *models.User, error)
	Authenticate(ctx context.Context, phone, password string) (string, *models.User, error)
	GetByID(id string) (*models.User, error)
	UpdateNotificationSettings(id string, settings models.NotificationSettings) error
	UpdateFCMToken(id, token string) error
	SaveSchedule(id string, raw any) error
	Delete(id string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Tasks    taskRepo.TaskRepository
	Notifier notification.NotificationService
	Log      *zap.Logger
}

// Register creates an unverified account and sends the verification OTP to
// the given phone number over WhatsApp.
func (s *DefaultUserService) Register(ctx context.Context, name, phone, email, password string) (*models.User, error) {
	existing, err := s.Repo.GetByPhone(phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with phone %s already exists", phone)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Phone:        phone,
		Email:        email,
		PasswordHash: string(hashed),
		NotificationSettings: models.NotificationSettings{
			Email: email != "",
			Push:  true,
		},
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	if err := s.sendOTP(ctx, phone); err != nil {
		// Account exists; the client can re-request the code.
		s.Log.Warn("failed to send registration OTP", zap.String("phone", phone), zap.Error(err))
	}
	return u, nil
}

// RequestOTP re-issues a verification code for an existing account.
func (s *DefaultUserService) RequestOTP(ctx context.Context, phone string) error {
	u, err := s.Repo.GetByPhone(phone)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if u == nil {
		return fmt.Errorf("no account with phone %s", phone)
	}
	return s.sendOTP(ctx, phone)
}

func (s *DefaultUserService) sendOTP(ctx context.Context, phone string) error {
	otp, err := utils.GenerateSecureOTP(6)
	if err != nil {
		return err
	}
	if err := utils.StoreOTP(phone, otp); err != nil {
		return err
	}
	message := fmt.Sprintf("Your Remindly verification code is %s. It expires in 5 minutes.", otp)
	return s.Notifier.SendWhatsApp(ctx, phone, message)
}

// VerifyOTP checks the submitted code, marks the account verified and returns
// a signed auth token.
func (s *DefaultUserService) VerifyOTP(ctx context.Context, phone, otp string) (string, *models.User, error) {
	if err := utils.VerifyOTP(phone, otp); err != nil {
		return "", nil, err
	}
	u, err := s.Repo.GetByPhone(phone)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if u == nil {
		return "", nil, fmt.Errorf("no account with phone %s", phone)
	}

	if !u.IsVerified {
		if err := s.Repo.UpdateSetDocument(u.ID, bson.M{"is_verified": true}); err != nil {
			return "", nil, err
		}
		u.IsVerified = true
	}

	token, err := utils.GenerateToken(u.ID, u.Phone, authTokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, u, nil
}

// Authenticate validates phone+password for a verified account and returns a
// signed auth token.
func (s *DefaultUserService) Authenticate(ctx context.Context, phone, password string) (string, *models.User, error) {
	u, err := s.Repo.GetByPhone(phone)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if u == nil {
		return "", nil, fmt.Errorf("invalid phone or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid phone or password")
	}
	if !u.IsVerified {
		return "", nil, fmt.Errorf("account not verified")
	}

	token, err := utils.GenerateToken(u.ID, u.Phone, authTokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, u, nil
}

// GetByID retrieves a user by ID.
func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

// UpdateNotificationSettings replaces the user's channel settings.
func (s *DefaultUserService) UpdateNotificationSettings(id string, settings models.NotificationSettings) error {
	return s.Repo.UpdateSetDocument(id, bson.M{"notification_settings": settings})
}

// UpdateFCMToken stores the device push token.
func (s *DefaultUserService) UpdateFCMToken(id, token string) error {
	return s.Repo.UpdateSetDocument(id, bson.M{"fcm_token": token})
}

// SaveSchedule stores the raw schedule blob as the client sent it. Any of the
// accepted encodings may arrive here; normalization happens at reminder time.
func (s *DefaultUserService) SaveSchedule(id string, raw any) error {
	return s.Repo.UpdateSetDocument(id, bson.M{"schedule": raw})
}

// Delete removes the account and its tasks.
func (s *DefaultUserService) Delete(id string) error {
	tasks, err := s.Tasks.ListByUser(id)
	if err != nil {
		return fmt.Errorf("failed to list tasks for deletion: %w", err)
	}
	for _, t := range tasks {
		if err := s.Tasks.Delete(t.ID); err != nil {
			s.Log.Warn("failed to delete task during account removal",
				zap.String("taskID", t.ID), zap.Error(err))
		}
	}
	return s.Repo.Delete(id)
}
