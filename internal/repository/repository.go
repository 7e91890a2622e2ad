package repository

import (
	"context"

	"fitplanner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository defines the interface for the shared exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByIDs fetches a batch of exercises in one query; ids that do not
	// resolve are simply absent from the result.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error)
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// GroupRepository defines the interface for user-owned exercise groups
// (workout templates).
type GroupRepository interface {
	Create(ctx context.Context, group *domain.ExerciseGroup) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseGroup, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ExerciseGroup, error)
	// GetNamesByIDs resolves display names for a batch of group ids in one
	// query (the N+1 avoidance used when hydrating calendar reads).
	GetNamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
	// Update applies a partial update; nil name / nil members leave the
	// respective field unchanged.
	Update(ctx context.Context, id primitive.ObjectID, name *string, exerciseIDs []primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MealPlanRepository mirrors GroupRepository for meal plans.
type MealPlanRepository interface {
	Create(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MealPlan, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.MealPlan, error)
	GetNamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
	Update(ctx context.Context, id primitive.ObjectID, name *string, mealIDs []primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CalendarAssignmentRepository defines the interface for calendar assignment
// rows. All queries are scoped by owner id; deletion methods return how many
// rows were removed so callers can treat zero as an idempotent success.
type CalendarAssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.CalendarAssignment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CalendarAssignment, error)
	GetByOwnerAndDate(ctx context.Context, ownerID primitive.ObjectID, date string) ([]domain.CalendarAssignment, error)
	// GetByOwnerAndDateRange runs an inclusive lexicographic range query on
	// the YYYY-MM-DD date strings.
	GetByOwnerAndDateRange(ctx context.Context, ownerID primitive.ObjectID, startDate, endDate string) ([]domain.CalendarAssignment, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteByOwnerAndDate(ctx context.Context, ownerID primitive.ObjectID, date string) (int64, error)
	// DeleteSeriesFrom removes every assignment of the series with
	// date >= fromDate ("this and all following occurrences").
	DeleteSeriesFrom(ctx context.Context, ownerID primitive.ObjectID, seriesID, fromDate string) (int64, error)
	DeleteByGroupID(ctx context.Context, groupID primitive.ObjectID) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
}

// DietAssignmentRepository defines the interface for diet assignment rows.
type DietAssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.DietAssignment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietAssignment, error)
	GetByOwnerAndDateRange(ctx context.Context, ownerID primitive.ObjectID, startDate, endDate string) ([]domain.DietAssignment, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteByMealPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error)
}

// WorkoutLogRepository defines the interface for per-exercise completion
// marks. MarkCompleted upserts on (owner, date, exercise); MarkIncomplete is
// a no-op when the row is absent.
type WorkoutLogRepository interface {
	MarkCompleted(ctx context.Context, ownerID primitive.ObjectID, date string, exerciseID primitive.ObjectID) error
	MarkIncomplete(ctx context.Context, ownerID primitive.ObjectID, date string, exerciseID primitive.ObjectID) error
	GetCompletedExerciseIDs(ctx context.Context, ownerID primitive.ObjectID, date string) ([]primitive.ObjectID, error)
}
