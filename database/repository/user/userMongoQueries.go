// File: database/repository/user/userMongoQueries.go
package userRepo

import (
	"context"
	"fmt"

	"remindly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ListEligible returns the users the reminder cycle has to consider:
// verified, and WhatsApp not explicitly disabled. The channel is opt-out, so
// documents missing the flag are included ($ne: false matches absent fields).
func (r *MongoUserRepo) ListEligible(ctx context.Context) ([]models.User, error) {
	filter := bson.M{
		"is_verified":                    true,
		"notification_settings.whatsapp": bson.M{"$ne": false},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error listing eligible users: %w", err)
	}
	return users, nil
}
