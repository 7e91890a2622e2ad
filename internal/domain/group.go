package domain

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validation errors shared by ExerciseGroup and MealPlan constructors.
var (
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrEmptyMembers = errors.New("at least one member must be selected")
)

// ExerciseGroup is a named, user-owned workout template: an ordered set of
// exercise references (e.g., "Leg Day").
type ExerciseGroup struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID   `bson:"ownerId" json:"ownerId"`
	Name        string               `bson:"name" json:"name"`
	ExerciseIDs []primitive.ObjectID `bson:"exerciseIds" json:"exerciseIds"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
}

// NewExerciseGroup builds a group, enforcing the non-empty name / non-empty
// member list invariants up front.
func NewExerciseGroup(ownerID primitive.ObjectID, name string, exerciseIDs []primitive.ObjectID) (*ExerciseGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(exerciseIDs) == 0 {
		return nil, ErrEmptyMembers
	}
	return &ExerciseGroup{
		OwnerID:     ownerID,
		Name:        name,
		ExerciseIDs: exerciseIDs,
	}, nil
}

// MealPlan is structurally identical to ExerciseGroup, referencing meals
// instead of exercises.
type MealPlan struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID   `bson:"ownerId" json:"ownerId"`
	Name      string               `bson:"name" json:"name"`
	MealIDs   []primitive.ObjectID `bson:"mealIds" json:"mealIds"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

// NewMealPlan builds a meal plan with the same invariants as NewExerciseGroup.
func NewMealPlan(ownerID primitive.ObjectID, name string, mealIDs []primitive.ObjectID) (*MealPlan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(mealIDs) == 0 {
		return nil, ErrEmptyMembers
	}
	return &MealPlan{
		OwnerID: ownerID,
		Name:    name,
		MealIDs: mealIDs,
	}, nil
}
