package service

import (
	"context"
	"errors"

	"fitplanner/internal/domain"
	"fitplanner/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidDate   = errors.New("date must be in YYYY-MM-DD format")
	ErrGroupNotFound = errors.New("exercise group not found")
	ErrPlanNotFound  = errors.New("meal plan not found")
	ErrAccessDenied  = errors.New("access denied")
)

// DeleteMode selects how much of a series DeleteAssignment removes.
type DeleteMode string

const (
	DeleteSingle DeleteMode = "single" // exactly this assignment
	DeleteFuture DeleteMode = "future" // this and all following occurrences of its series
)

// Placeholder names used when a referenced group/plan no longer resolves.
// A dangling reference shrinks what is displayed; it never fails a read.
const (
	unknownGroupName = "Unknown Group"
	unknownPlanName  = "Unknown Plan"
)

// --- Service Interface ---

// PlannerService is the calendar assignment engine: it maps (user, day) to
// workout, rest and diet assignments and manages recurring series.
type PlannerService interface {
	// CreateAssignment is the raw insert primitive. It enforces no
	// uniqueness; replace semantics are the concern of AssignWithRecurrence.
	CreateAssignment(ctx context.Context, ownerID primitive.ObjectID, date string, kind domain.AssignmentKind, groupID *primitive.ObjectID, seriesID string) (*domain.CalendarAssignment, error)

	// AssignWithRecurrence is the primary entry point. It expands the anchor
	// date per the repeat option, replaces whatever the anchor day held, and
	// appends to future occurrences. An empty selection with isRestDay=false
	// clears the anchor day. Returns the affected dates.
	AssignWithRecurrence(ctx context.Context, ownerID primitive.ObjectID, date string, selection []primitive.ObjectID, isRestDay bool, repeat domain.Repeat) ([]string, error)

	// DeleteAssignment removes one assignment, or, in future mode, every
	// assignment of its series on or after its date. Deleting a row that is
	// already gone is a success with zero effect.
	DeleteAssignment(ctx context.Context, ownerID, assignmentID primitive.ObjectID, mode DeleteMode) error

	// ClearAllAssignments deletes every assignment for a user (bulk reset).
	ClearAllAssignments(ctx context.Context, ownerID primitive.ObjectID) error

	FindByDate(ctx context.Context, ownerID primitive.ObjectID, date string) ([]domain.CalendarAssignment, error)
	FindByDateRange(ctx context.Context, ownerID primitive.ObjectID, startDate, endDate string) ([]domain.CalendarAssignment, error)

	// Diet path. Diet assignments accumulate per day; there is no
	// anchor-replace rule on this path.
	AssignDiet(ctx context.Context, ownerID primitive.ObjectID, date string, planID primitive.ObjectID) (*domain.DietAssignment, error)
	FindDietByDateRange(ctx context.Context, ownerID primitive.ObjectID, startDate, endDate string) ([]domain.DietAssignment, error)
	DeleteDietAssignment(ctx context.Context, ownerID, assignmentID primitive.ObjectID) error
}

// --- Service Implementation ---

type plannerService struct {
	calendarRepo repository.CalendarAssignmentRepository
	dietRepo     repository.DietAssignmentRepository
	catalog      CatalogResolver
}

// NewPlannerService creates the calendar assignment engine.
func NewPlannerService(
	calendarRepo repository.CalendarAssignmentRepository,
	dietRepo repository.DietAssignmentRepository,
	catalog CatalogResolver,
) PlannerService {
	return &plannerService{
		calendarRepo: calendarRepo,
		dietRepo:     dietRepo,
		catalog:      catalog,
	}
}

// CreateAssignment inserts a single assignment row.
func (s *plannerService) CreateAssignment(ctx context.Context, ownerID primitive.ObjectID, date string, kind domain.AssignmentKind, groupID *primitive.ObjectID, seriesID string) (*domain.CalendarAssignment, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrValidation
	}
	if !domain.ValidDate(date) {
		return nil, ErrInvalidDate
	}
	if kind == domain.KindWorkout && groupID == nil {
		return nil, ErrValidation
	}

	assignment := &domain.CalendarAssignment{
		OwnerID:  ownerID,
		Date:     date,
		Kind:     kind,
		GroupID:  groupID,
		SeriesID: seriesID,
	}

	id, err := s.calendarRepo.Create(ctx, assignment)
	if err != nil {
		return nil, err
	}
	assignment.ID = id
	return assignment, nil
}

// AssignWithRecurrence applies one user edit to the calendar.
//
// The anchor day is authoritative: everything previously on it is deleted
// before the new selection is inserted, so repeated edits to the same day
// never accumulate duplicates. Future occurrences of a weekly series are
// appended only; editing today must not silently remove independently
// scheduled future plans.
func (s *plannerService) AssignWithRecurrence(ctx context.Context, ownerID primitive.ObjectID, date string, selection []primitive.ObjectID, isRestDay bool, repeat domain.Repeat) ([]string, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrValidation
	}
	if !domain.ValidDate(date) {
		return nil, ErrInvalidDate
	}

	// Validate the selection against the owning store before touching the
	// calendar: every referenced group must exist and belong to the caller.
	for _, groupID := range selection {
		entry, err := s.catalog.ResolveEntry(ctx, CatalogWorkout, groupID)
		if err != nil {
			if errors.Is(err, ErrCatalogEntryNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
		if entry.OwnerID != ownerID {
			return nil, ErrAccessDenied
		}
	}

	targetDates, err := domain.WeeklyDates(date, repeat.Occurrences())
	if err != nil {
		return nil, ErrInvalidDate
	}

	// A fresh series id per recurring request; one-off edits carry none.
	seriesID := ""
	if repeat.IsRecurring() {
		seriesID = uuid.NewString()
	}

	// Anchor-day replace: the user's latest edit fully overwrites the
	// requested day, including any rest marker.
	if _, err := s.calendarRepo.DeleteByOwnerAndDate(ctx, ownerID, date); err != nil {
		return nil, err
	}

	// Empty selection and no rest day means "clear the day": the delete
	// above already did all the work.
	if len(selection) == 0 && !isRestDay {
		return []string{date}, nil
	}

	for _, targetDate := range targetDates {
		if isRestDay {
			assignment := &domain.CalendarAssignment{
				OwnerID:  ownerID,
				Date:     targetDate,
				Kind:     domain.KindRest,
				SeriesID: seriesID,
			}
			if _, err := s.calendarRepo.Create(ctx, assignment); err != nil {
				return nil, err
			}
			continue
		}
		for _, groupID := range selection {
			assignment := &domain.CalendarAssignment{
				OwnerID:  ownerID,
				Date:     targetDate,
				Kind:     domain.KindWorkout,
				GroupID:  &groupID,
				SeriesID: seriesID,
			}
			if _, err := s.calendarRepo.Create(ctx, assignment); err != nil {
				return nil, err
			}
		}
	}

	return targetDates, nil
}

// DeleteAssignment removes one assignment or its remaining series.
func (s *plannerService) DeleteAssignment(ctx context.Context, ownerID, assignmentID primitive.ObjectID, mode DeleteMode) error {
	assignment, err := s.calendarRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Already gone; delete is idempotent.
			return nil
		}
		return err
	}
	if assignment.OwnerID != ownerID {
		return ErrAccessDenied
	}

	if mode == DeleteFuture && assignment.SeriesID != "" {
		_, err = s.calendarRepo.DeleteSeriesFrom(ctx, ownerID, assignment.SeriesID, assignment.Date)
		return err
	}

	// Single mode, or a row that was never part of a series.
	_, err = s.calendarRepo.DeleteByID(ctx, assignmentID)
	return err
}

// ClearAllAssignments deletes every calendar assignment for a user.
func (s *plannerService) ClearAllAssignments(ctx context.Context, ownerID primitive.ObjectID) error {
	_, err := s.calendarRepo.DeleteByOwner(ctx, ownerID)
	return err
}

// FindByDate returns the assignments for one day with group names hydrated.
func (s *plannerService) FindByDate(ctx context.Context, ownerID primitive.ObjectID, date string) ([]domain.CalendarAssignment, error) {
	if !domain.ValidDate(date) {
		return nil, ErrInvalidDate
	}
	assignments, err := s.calendarRepo.GetByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	return s.hydrateGroupNames(ctx, assignments)
}

// FindByDateRange returns the assignments in an inclusive date range with
// group names hydrated. Results are not sorted by date; callers sort when
// they need to.
func (s *plannerService) FindByDateRange(ctx context.Context, ownerID primitive.ObjectID, startDate, endDate string) ([]domain.CalendarAssignment, error) {
	if !domain.ValidDate(startDate) || !domain.ValidDate(endDate) {
		return nil, ErrInvalidDate
	}
	assignments, err := s.calendarRepo.GetByOwnerAndDateRange(ctx, ownerID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.hydrateGroupNames(ctx, assignments)
}

// hydrateGroupNames fills in GroupName for workout assignments with one
// batched catalog lookup: collect distinct ids, fetch once, map back.
// References that no longer resolve fall back to a placeholder.
func (s *plannerService) hydrateGroupNames(ctx context.Context, assignments []domain.CalendarAssignment) ([]domain.CalendarAssignment, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var distinct []primitive.ObjectID
	for _, a := range assignments {
		if a.GroupID == nil {
			continue
		}
		if _, ok := seen[*a.GroupID]; ok {
			continue
		}
		seen[*a.GroupID] = struct{}{}
		distinct = append(distinct, *a.GroupID)
	}
	if len(distinct) == 0 {
		return assignments, nil
	}

	names, err := s.catalog.ResolveNames(ctx, CatalogWorkout, distinct)
	if err != nil {
		return nil, err
	}

	for i := range assignments {
		if assignments[i].GroupID == nil {
			continue
		}
		if name, ok := names[*assignments[i].GroupID]; ok {
			assignments[i].GroupName = name
		} else {
			assignments[i].GroupName = unknownGroupName
		}
	}
	return assignments, nil
}

// AssignDiet attaches a meal plan to a day. New diet assignments do not
// replace prior ones for the same day.
func (s *plannerService) AssignDiet(ctx context.Context, ownerID primitive.ObjectID, date string, planID primitive.ObjectID) (*domain.DietAssignment, error) {
	if !domain.ValidDate(date) {
		return nil, ErrInvalidDate
	}

	entry, err := s.catalog.ResolveEntry(ctx, CatalogDiet, planID)
	if err != nil {
		if errors.Is(err, ErrCatalogEntryNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if entry.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}

	assignment := &domain.DietAssignment{
		OwnerID:    ownerID,
		Date:       date,
		MealPlanID: planID,
	}
	id, err := s.dietRepo.Create(ctx, assignment)
	if err != nil {
		return nil, err
	}
	assignment.ID = id
	assignment.PlanName = entry.Name
	return assignment, nil
}

// FindDietByDateRange returns diet assignments with plan names hydrated via
// one batched lookup.
func (s *plannerService) FindDietByDateRange(ctx context.Context, ownerID primitive.ObjectID, startDate, endDate string) ([]domain.DietAssignment, error) {
	if !domain.ValidDate(startDate) || !domain.ValidDate(endDate) {
		return nil, ErrInvalidDate
	}
	assignments, err := s.dietRepo.GetByOwnerAndDateRange(ctx, ownerID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	seen := make(map[primitive.ObjectID]struct{})
	var distinct []primitive.ObjectID
	for _, a := range assignments {
		if _, ok := seen[a.MealPlanID]; ok {
			continue
		}
		seen[a.MealPlanID] = struct{}{}
		distinct = append(distinct, a.MealPlanID)
	}
	if len(distinct) == 0 {
		return assignments, nil
	}

	names, err := s.catalog.ResolveNames(ctx, CatalogDiet, distinct)
	if err != nil {
		return nil, err
	}
	for i := range assignments {
		if name, ok := names[assignments[i].MealPlanID]; ok {
			assignments[i].PlanName = name
		} else {
			assignments[i].PlanName = unknownPlanName
		}
	}
	return assignments, nil
}

// DeleteDietAssignment removes a diet assignment; missing rows are a
// success with zero effect.
func (s *plannerService) DeleteDietAssignment(ctx context.Context, ownerID, assignmentID primitive.ObjectID) error {
	assignment, err := s.dietRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if assignment.OwnerID != ownerID {
		return ErrAccessDenied
	}

	_, err = s.dietRepo.DeleteByID(ctx, assignmentID)
	return err
}
