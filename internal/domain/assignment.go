package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the calendar-day format used everywhere in the planner.
// YYYY-MM-DD strings sort lexicographically in date order, so range queries
// on assignments reduce to plain string comparison in the store.
const DateLayout = "2006-01-02"

// AssignmentKind distinguishes workout assignments from rest-day markers.
type AssignmentKind string

const (
	KindWorkout AssignmentKind = "workout"
	KindRest    AssignmentKind = "rest"
)

// CalendarAssignment links a user and a calendar day to either a workout
// template (ExerciseGroup) or a rest marker. Several workout assignments may
// coexist on one day; assignments generated by a single recurring request
// share a SeriesID.
type CalendarAssignment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID  `bson:"ownerId" json:"ownerId"`
	Date      string              `bson:"date" json:"date"` // YYYY-MM-DD
	Kind      AssignmentKind      `bson:"kind" json:"kind"`
	GroupID   *primitive.ObjectID `bson:"groupId,omitempty" json:"groupId,omitempty"`   // required iff Kind == workout
	SeriesID  string              `bson:"seriesId,omitempty" json:"seriesId,omitempty"` // opaque token, set only by recurrence
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`

	// GroupName is hydrated from the catalog on reads; never persisted.
	GroupName string `bson:"-" json:"groupName,omitempty"`
}

// DietAssignment links a user and a calendar day to a meal plan.
type DietAssignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Date       string             `bson:"date" json:"date"` // YYYY-MM-DD
	MealPlanID primitive.ObjectID `bson:"mealPlanId" json:"mealPlanId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`

	PlanName string `bson:"-" json:"planName,omitempty"`
}

// Repeat selects how many weekly occurrences a recurring assignment request
// generates. Parsed once at the API boundary and passed into the engine as a
// tagged value.
type Repeat string

const (
	RepeatNone     Repeat = "none"
	RepeatWeekly4  Repeat = "weekly_4"
	RepeatWeekly12 Repeat = "weekly_12"
)

// ParseRepeat validates a repeat selector from request input.
func ParseRepeat(s string) (Repeat, error) {
	switch Repeat(s) {
	case RepeatNone, "":
		return RepeatNone, nil
	case RepeatWeekly4:
		return RepeatWeekly4, nil
	case RepeatWeekly12:
		return RepeatWeekly12, nil
	}
	return "", fmt.Errorf("invalid repeat option %q", s)
}

// Occurrences returns how many dates the repeat option expands to,
// anchor date included.
func (r Repeat) Occurrences() int {
	switch r {
	case RepeatWeekly4:
		return 4
	case RepeatWeekly12:
		return 12
	default:
		return 1
	}
}

// IsRecurring reports whether assignments generated for this repeat option
// should share a series id.
func (r Repeat) IsRecurring() bool {
	return r.Occurrences() > 1
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar day.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// WeeklyDates expands an anchor date into count dates spaced 7 days apart,
// anchor first. The anchor must be a valid YYYY-MM-DD string.
func WeeklyDates(anchor string, count int) ([]string, error) {
	start, err := time.Parse(DateLayout, anchor)
	if err != nil {
		return nil, fmt.Errorf("invalid anchor date %q: %w", anchor, err)
	}
	dates := make([]string, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, start.AddDate(0, 0, 7*i).Format(DateLayout))
	}
	return dates, nil
}
