package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogStatus is the completion state stored in a workout log entry. Only
// "completed" exists today: unmarking an exercise deletes the row instead of
// flipping a flag.
type LogStatus string

const StatusCompleted LogStatus = "completed"

// WorkoutLog records that a user completed one exercise on one calendar day.
// Keyed by (owner, date, exercise); its lifecycle is independent of the
// calendar assignment that put the exercise on the day.
type WorkoutLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Date        string             `bson:"date" json:"date"` // YYYY-MM-DD
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Status      LogStatus          `bson:"status" json:"status"`
	CompletedAt time.Time          `bson:"completedAt" json:"completedAt"`
}
