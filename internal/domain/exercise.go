package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise represents a single exercise definition in the shared catalog.
// The planner references exercises by ID only; deleting an exercise from
// the catalog does not touch groups or assignments that mention it.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"` // Admin who added the exercise
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	MuscleGroup  string `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g., "Chest", "Legs", "Back"
	Equipment    string `bson:"equipment,omitempty" json:"equipment,omitempty"`     // e.g., "Barbell", "Bodyweight"
	Difficulty   string `bson:"difficulty,omitempty" json:"difficulty,omitempty"`   // e.g., "Novice", "Medium", "Advanced"
	Instructions string `bson:"instructions,omitempty" json:"instructions,omitempty"`
	RepsSets     string `bson:"repsSets,omitempty" json:"repsSets,omitempty"` // Display hint, e.g., "3 sets x 8-12 reps"
	Tips         string `bson:"tips,omitempty" json:"tips,omitempty"`

	// Demo media, stored in S3 and referenced by object key / URL.
	ImageKey string `bson:"imageKey,omitempty" json:"imageKey,omitempty"`
	VideoURL string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
