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

const groupCollectionName = "exercise_groups"

// mongoGroupRepository implements repository.GroupRepository
type mongoGroupRepository struct {
	collection *mongo.Collection
}

// NewMongoGroupRepository creates an exercise group repository backed by MongoDB.
func NewMongoGroupRepository(db *mongo.Database) repository.GroupRepository {
	return &mongoGroupRepository{
		collection: db.Collection(groupCollectionName),
	}
}

// Create inserts a new exercise group.
func (r *mongoGroupRepository) Create(ctx context.Context, group *domain.ExerciseGroup) (primitive.ObjectID, error) {
	if group.Name == "" || group.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("group name and owner ID are required")
	}

	group.ID = primitive.NewObjectID()
	group.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, group)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted group ID")
	}
	return insertedID, nil
}

// GetByID retrieves a group by its ID.
func (r *mongoGroupRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseGroup, error) {
	var group domain.ExerciseGroup
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// GetByOwnerID retrieves all groups created by a user, newest first.
func (r *mongoGroupRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ExerciseGroup, error) {
	var groups []domain.ExerciseGroup
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

// GetNamesByIDs resolves display names for a batch of group ids with a
// single $in query.
func (r *mongoGroupRepository) GetNamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	projection := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, projection)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		names[doc.ID] = doc.Name
	}
	return names, nil
}

// Update applies a partial update; nil fields are left unchanged.
func (r *mongoGroupRepository) Update(ctx context.Context, id primitive.ObjectID, name *string, exerciseIDs []primitive.ObjectID) error {
	updateFields := bson.M{}
	if name != nil {
		updateFields["name"] = *name
	}
	if exerciseIDs != nil {
		updateFields["exerciseIds"] = exerciseIDs
	}
	if len(updateFields) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateFields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a group. Referencing assignments must already be gone; the
// service layer runs the cascade before calling this.
func (r *mongoGroupRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureGroupIndexes creates necessary indexes for the exercise groups collection.
func EnsureGroupIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
