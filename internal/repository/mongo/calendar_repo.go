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

const calendarCollectionName = "calendar_assignments"

// mongoCalendarRepository implements repository.CalendarAssignmentRepository
type mongoCalendarRepository struct {
	collection *mongo.Collection
}

// NewMongoCalendarRepository creates a calendar assignment repository backed by MongoDB.
func NewMongoCalendarRepository(db *mongo.Database) repository.CalendarAssignmentRepository {
	return &mongoCalendarRepository{
		collection: db.Collection(calendarCollectionName),
	}
}

// Create inserts a new assignment row. Uniqueness is deliberately not
// enforced here; replace semantics live in the service layer.
func (r *mongoCalendarRepository) Create(ctx context.Context, assignment *domain.CalendarAssignment) (primitive.ObjectID, error) {
	if assignment.OwnerID == primitive.NilObjectID || assignment.Date == "" {
		return primitive.NilObjectID, errors.New("assignment requires ownerId and date")
	}
	if assignment.Kind == domain.KindWorkout && assignment.GroupID == nil {
		return primitive.NilObjectID, errors.New("workout assignment requires groupId")
	}

	assignment.ID = primitive.NewObjectID()
	assignment.CreatedAt = time.Now().UTC()
	if assignment.Kind == "" {
		assignment.Kind = domain.KindWorkout
	}

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

// GetByID retrieves an assignment by its ID.
func (r *mongoCalendarRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CalendarAssignment, error) {
	var assignment domain.CalendarAssignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// GetByOwnerAndDate retrieves every assignment for one user on one day.
func (r *mongoCalendarRepository) GetByOwnerAndDate(ctx context.Context, ownerID primitive.ObjectID, date string) ([]domain.CalendarAssignment, error) {
	filter := bson.M{"ownerId": ownerID, "date": date}
	return r.find(ctx, filter)
}

// GetByOwnerAndDateRange retrieves assignments in an inclusive date range.
// Dates are YYYY-MM-DD strings, so the range filter is plain string
// comparison.
func (r *mongoCalendarRepository) GetByOwnerAndDateRange(ctx context.Context, ownerID primitive.ObjectID, startDate, endDate string) ([]domain.CalendarAssignment, error) {
	filter := bson.M{
		"ownerId": ownerID,
		"date":    bson.M{"$gte": startDate, "$lte": endDate},
	}
	return r.find(ctx, filter)
}

func (r *mongoCalendarRepository) find(ctx context.Context, filter bson.M) ([]domain.CalendarAssignment, error) {
	var assignments []domain.CalendarAssignment
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

// DeleteByID removes a single assignment row. A zero count is not an error;
// delete is idempotent at this layer.
func (r *mongoCalendarRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteByOwnerAndDate removes every assignment (workout and rest) for one
// user on one day. This is the anchor-day replace primitive.
func (r *mongoCalendarRepository) DeleteByOwnerAndDate(ctx context.Context, ownerID primitive.ObjectID, date string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"ownerId": ownerID, "date": date})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteSeriesFrom removes every assignment in a series with date >= fromDate.
func (r *mongoCalendarRepository) DeleteSeriesFrom(ctx context.Context, ownerID primitive.ObjectID, seriesID, fromDate string) (int64, error) {
	filter := bson.M{
		"ownerId":  ownerID,
		"seriesId": seriesID,
		"date":     bson.M{"$gte": fromDate},
	}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteByGroupID removes every assignment referencing an exercise group.
// Used by the cascade when a group is deleted.
func (r *mongoCalendarRepository) DeleteByGroupID(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteByOwner removes every assignment for a user (bulk reset).
func (r *mongoCalendarRepository) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureCalendarIndexes creates necessary indexes for the calendar
// assignments collection.
func EnsureCalendarIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Day and range queries are always scoped by owner then date.
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			// Series deletion filters on owner + series + date.
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "seriesId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			// Cascade deletion when a group is removed.
			Keys:    bson.D{{Key: "groupId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
