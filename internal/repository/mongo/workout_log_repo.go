package mongo

import (
	"context"
	"time"

	"fitplanner/internal/domain"
	"fitplanner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutLogCollectionName = "workout_logs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a workout log repository backed by MongoDB.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

// MarkCompleted upserts a completion mark keyed by (owner, date, exercise).
// Marking twice is idempotent; the timestamp refreshes on every call.
func (r *mongoWorkoutLogRepository) MarkCompleted(ctx context.Context, ownerID primitive.ObjectID, date string, exerciseID primitive.ObjectID) error {
	filter := bson.M{
		"ownerId":    ownerID,
		"date":       date,
		"exerciseId": exerciseID,
	}
	update := bson.M{
		"$set": bson.M{
			"status":      domain.StatusCompleted,
			"completedAt": time.Now().UTC(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// MarkIncomplete deletes the completion mark; absence is not an error.
func (r *mongoWorkoutLogRepository) MarkIncomplete(ctx context.Context, ownerID primitive.ObjectID, date string, exerciseID primitive.ObjectID) error {
	filter := bson.M{
		"ownerId":    ownerID,
		"date":       date,
		"exerciseId": exerciseID,
	}
	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}

// GetCompletedExerciseIDs returns the ids of every exercise the user marked
// completed on the given day.
func (r *mongoWorkoutLogRepository) GetCompletedExerciseIDs(ctx context.Context, ownerID primitive.ObjectID, date string) ([]primitive.ObjectID, error) {
	filter := bson.M{"ownerId": ownerID, "date": date}

	projection := options.Find().SetProjection(bson.M{"exerciseId": 1})
	cursor, err := r.collection.Find(ctx, filter, projection)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ExerciseID primitive.ObjectID `bson:"exerciseId"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ExerciseID)
	}
	return ids, nil
}

// EnsureWorkoutLogIndexes creates necessary indexes for the workout logs
// collection. The unique compound index backs the upsert key.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "ownerId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "exerciseId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
