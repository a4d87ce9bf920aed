package userRepo

import (
	"context"

	"remindly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByPhone retrieves a user by phone number; returns nil if none exists.
	GetByPhone(phone string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// UpdateSetDocument applies a partial $set update to a user document.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// ListEligible returns verified users whose WhatsApp channel is not
	// explicitly disabled (absence of the flag counts as enabled).
	ListEligible(ctx context.Context) ([]models.User, error)
}
