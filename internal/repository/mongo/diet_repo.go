package mongo

import (
	"context"
	"errors"
	"time"

	"fitplanner/internal/domain"
	"fitplanner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dietCollectionName = "diet_assignments"

// mongoDietRepository implements repository.DietAssignmentRepository
type mongoDietRepository struct {
	collection *mongo.Collection
}

// NewMongoDietRepository creates a diet assignment repository backed by MongoDB.
func NewMongoDietRepository(db *mongo.Database) repository.DietAssignmentRepository {
	return &mongoDietRepository{
		collection: db.Collection(dietCollectionName),
	}
}

// Create inserts a new diet assignment row.
func (r *mongoDietRepository) Create(ctx context.Context, assignment *domain.DietAssignment) (primitive.ObjectID, error) {
	if assignment.OwnerID == primitive.NilObjectID || assignment.Date == "" ||
		assignment.MealPlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("diet assignment requires ownerId, date and mealPlanId")
	}

	assignment.ID = primitive.NewObjectID()
	assignment.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted assignment ID")
	}
	return insertedID, nil
}

// GetByID retrieves a diet assignment by its ID.
func (r *mongoDietRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietAssignment, error) {
	var assignment domain.DietAssignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// GetByOwnerAndDateRange retrieves diet assignments in an inclusive date range.
func (r *mongoDietRepository) GetByOwnerAndDateRange(ctx context.Context, ownerID primitive.ObjectID, startDate, endDate string) ([]domain.DietAssignment, error) {
	var assignments []domain.DietAssignment
	filter := bson.M{
		"ownerId": ownerID,
		"date":    bson.M{"$gte": startDate, "$lte": endDate},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// DeleteByID removes a single diet assignment; zero deletions is not an error.
func (r *mongoDietRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteByMealPlanID removes every assignment referencing a meal plan.
// Used by the cascade when a plan is deleted.
func (r *mongoDietRepository) DeleteByMealPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"mealPlanId": planID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureDietIndexes creates necessary indexes for the diet assignments collection.
func EnsureDietIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "mealPlanId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
