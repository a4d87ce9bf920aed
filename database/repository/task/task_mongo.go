package taskRepo

import (
	"context"
	"fmt"
	"time"

	"remindly/database"
	"remindly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTaskRepo implements TaskRepository using MongoDB.
type MongoTaskRepo struct {
	coll *mongo.Collection
}

// NewMongoTaskRepo creates a new instance of TaskRepository using MongoDB.
func NewMongoTaskRepo() TaskRepository {
	repo := &MongoTaskRepo{coll: database.Collection("tasks")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoTaskRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "due_date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a task by its unique ID.
func (r *MongoTaskRepo) GetByID(id string) (*models.Task, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var task models.Task
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to fetch task with id %s: %w", id, err)
	}
	return &task, nil
}

// ListByUser retrieves all tasks belonging to a user, soonest first.
func (r *MongoTaskRepo) ListByUser(userID string) ([]models.Task, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for user %s: %w", userID, err)
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
	return tasks, nil
}

// Create inserts a new task document.
func (r *MongoTaskRepo) Create(task *models.Task) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Update modifies an existing task document.
func (r *MongoTaskRepo) Update(task *models.Task) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	task.UpdatedAt = time.Now()
	filter := bson.M{"id": task.ID}
	update := bson.M{"$set": task}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update task with id %s: %w", task.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task with id %s not found", task.ID)
	}
	return nil
}

// Delete removes a task document by its ID.
func (r *MongoTaskRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("task with id %s not found", id)
	}
	return nil
}

// SetCompleted flips a task's completed flag.
func (r *MongoTaskRepo) SetCompleted(id string, completed bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"completed":  completed,
		"updated_at": time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set completed on task %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task with id %s not found", id)
	}
	return nil
}
