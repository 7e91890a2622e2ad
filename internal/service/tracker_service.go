package service

import (
	"context"
	"errors"

	"fitplanner/internal/domain"
	"fitplanner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlannedExercise is one exercise inside a day plan, annotated with its
// completion state.
type PlannedExercise struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	RepsSets     string             `json:"repsSets"`
	Instructions string             `json:"instructions,omitempty"`
	Tips         string             `json:"tips,omitempty"`
	IsCompleted  bool               `json:"isCompleted"`
}

// PlannedGroup groups the exercises of one workout assignment under the
// originating template's name.
type PlannedGroup struct {
	GroupName string            `json:"groupName"`
	Exercises []PlannedExercise `json:"exercises"`
}

// DailyPlan is the composed read-side view of one calendar day.
type DailyPlan struct {
	Date      string         `json:"date"`
	IsRestDay bool           `json:"isRestDay"`
	Groups    []PlannedGroup `json:"groups"`
}

// --- Service Interface ---

// TrackerService is the completion log plus the day view composer.
type TrackerService interface {
	// MarkCompleted upserts a completion mark; calling it twice leaves one
	// row with a refreshed timestamp.
	MarkCompleted(ctx context.Context, ownerID primitive.ObjectID, date string, exerciseID primitive.ObjectID) error
	// MarkIncomplete removes the mark; absence is a no-op, not an error.
	MarkIncomplete(ctx context.Context, ownerID primitive.ObjectID, date string, exerciseID primitive.ObjectID) error
	GetCompletedIDs(ctx context.Context, ownerID primitive.ObjectID, date string) (map[primitive.ObjectID]bool, error)

	// ComposeDay joins the day's assignments with resolved catalog data and
	// completion marks. Pure read: it mutates nothing. Exercises whose
	// catalog id no longer resolves are silently skipped.
	ComposeDay(ctx context.Context, ownerID primitive.ObjectID, date string) (*DailyPlan, error)
}

// --- Service Implementation ---

type trackerService struct {
	calendarRepo repository.CalendarAssignmentRepository
	logRepo      repository.WorkoutLogRepository
	exerciseRepo repository.ExerciseRepository
	catalog      CatalogResolver
}

// NewTrackerService creates the completion log / day view service.
func NewTrackerService(
	calendarRepo repository.CalendarAssignmentRepository,
	logRepo repository.WorkoutLogRepository,
	exerciseRepo repository.ExerciseRepository,
	catalog CatalogResolver,
) TrackerService {
	return &trackerService{
		calendarRepo: calendarRepo,
		logRepo:      logRepo,
		exerciseRepo: exerciseRepo,
		catalog:      catalog,
	}
}

func (s *trackerService) MarkCompleted(ctx context.Context, ownerID primitive.ObjectID, date string, exerciseID primitive.ObjectID) error {
	if ownerID == primitive.NilObjectID || exerciseID == primitive.NilObjectID {
		return ErrValidation
	}
	if !domain.ValidDate(date) {
		return ErrInvalidDate
	}
	return s.logRepo.MarkCompleted(ctx, ownerID, date, exerciseID)
}

func (s *trackerService) MarkIncomplete(ctx context.Context, ownerID primitive.ObjectID, date string, exerciseID primitive.ObjectID) error {
	if ownerID == primitive.NilObjectID || exerciseID == primitive.NilObjectID {
		return ErrValidation
	}
	if !domain.ValidDate(date) {
		return ErrInvalidDate
	}
	return s.logRepo.MarkIncomplete(ctx, ownerID, date, exerciseID)
}

// GetCompletedIDs returns the day's completed exercise ids as a set.
func (s *trackerService) GetCompletedIDs(ctx context.Context, ownerID primitive.ObjectID, date string) (map[primitive.ObjectID]bool, error) {
	ids, err := s.logRepo.GetCompletedExerciseIDs(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	completed := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}
	return completed, nil
}

// ComposeDay builds the full day plan for the tracker view.
func (s *trackerService) ComposeDay(ctx context.Context, ownerID primitive.ObjectID, date string) (*DailyPlan, error) {
	if !domain.ValidDate(date) {
		return nil, ErrInvalidDate
	}

	assignments, err := s.calendarRepo.GetByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}

	completed, err := s.GetCompletedIDs(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}

	plan := &DailyPlan{Date: date, Groups: []PlannedGroup{}}

	for _, assignment := range assignments {
		if assignment.Kind == domain.KindRest {
			plan.IsRestDay = true
			continue
		}
		if assignment.GroupID == nil {
			continue
		}

		entry, err := s.catalog.ResolveEntry(ctx, CatalogWorkout, *assignment.GroupID)
		if err != nil {
			if errors.Is(err, ErrCatalogEntryNotFound) {
				// Group deleted between assignment creation and this read;
				// nothing to display for it.
				continue
			}
			return nil, err
		}

		exercises, err := s.exerciseRepo.GetByIDs(ctx, entry.MemberIDs)
		if err != nil {
			return nil, err
		}

		// GetByIDs gives no order guarantee; restore the group's ordering
		// and drop members the catalog no longer knows.
		byID := make(map[primitive.ObjectID]domain.Exercise, len(exercises))
		for _, ex := range exercises {
			byID[ex.ID] = ex
		}

		group := PlannedGroup{GroupName: entry.Name, Exercises: []PlannedExercise{}}
		for _, exerciseID := range entry.MemberIDs {
			ex, ok := byID[exerciseID]
			if !ok {
				continue
			}
			repsSets := ex.RepsSets
			if repsSets == "" {
				repsSets = "3 sets x 8-12 reps"
			}
			group.Exercises = append(group.Exercises, PlannedExercise{
				ID:           ex.ID,
				Name:         ex.Name,
				RepsSets:     repsSets,
				Instructions: ex.Instructions,
				Tips:         ex.Tips,
				IsCompleted:  completed[ex.ID],
			})
		}
		plan.Groups = append(plan.Groups, group)
	}

	return plan, nil
}
