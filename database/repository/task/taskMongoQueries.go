// File: database/repository/task/taskMongoQueries.go
package taskRepo

import (
	"context"
	"fmt"
	"time"

	"remindly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindDueTasks returns a user's incomplete tasks due inside the window that
// have not had their imminent reminder yet.
func (r *MongoTaskRepo) FindDueTasks(ctx context.Context, userID string, windowStart, windowEnd time.Time) ([]models.Task, error) {
	filter := bson.M{
		"user_id":                  userID,
		"completed":                false,
		"one_minute_reminder_sent": false,
		"due_date": bson.M{
			"$gte": windowStart,
			"$lte": windowEnd,
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find due tasks for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	for cursor.Next(ctx) {
		var t models.Task
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error finding due tasks: %w", err)
	}
	return tasks, nil
}

// MarkOneMinuteReminded records that the imminent reminder went out. The
// write is conditional on the flag still being unset so a concurrent cycle
// cannot double-flag.
func (r *MongoTaskRepo) MarkOneMinuteReminded(ctx context.Context, taskID string) error {
	filter := bson.M{"id": taskID, "one_minute_reminder_sent": false}
	update := bson.M{"$set": bson.M{
		"one_minute_reminder_sent": true,
		"updated_at":               time.Now(),
	}}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark task %s one-minute-reminded: %w", taskID, err)
	}
	return nil
}

// MarkReminderSent records that the advance reminder went out.
func (r *MongoTaskRepo) MarkReminderSent(ctx context.Context, taskID string) error {
	filter := bson.M{"id": taskID, "reminder_sent": false}
	update := bson.M{"$set": bson.M{
		"reminder_sent": true,
		"updated_at":    time.Now(),
	}}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark task %s reminder-sent: %w", taskID, err)
	}
	return nil
}
