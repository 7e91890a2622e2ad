package service

import (
	"context"
	"time"

	"fitplanner/internal/domain"
	"fitplanner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the service tests.

// --- Calendar assignments ---

type mockCalendarRepo struct {
	assignments []domain.CalendarAssignment
}

func (m *mockCalendarRepo) Create(_ context.Context, a *domain.CalendarAssignment) (primitive.ObjectID, error) {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()
	m.assignments = append(m.assignments, *a)
	return a.ID, nil
}

func (m *mockCalendarRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.CalendarAssignment, error) {
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			a := m.assignments[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockCalendarRepo) GetByOwnerAndDate(_ context.Context, ownerID primitive.ObjectID, date string) ([]domain.CalendarAssignment, error) {
	var out []domain.CalendarAssignment
	for _, a := range m.assignments {
		if a.OwnerID == ownerID && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockCalendarRepo) GetByOwnerAndDateRange(_ context.Context, ownerID primitive.ObjectID, startDate, endDate string) ([]domain.CalendarAssignment, error) {
	var out []domain.CalendarAssignment
	for _, a := range m.assignments {
		if a.OwnerID == ownerID && a.Date >= startDate && a.Date <= endDate {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockCalendarRepo) deleteWhere(match func(domain.CalendarAssignment) bool) int64 {
	var kept []domain.CalendarAssignment
	var deleted int64
	for _, a := range m.assignments {
		if match(a) {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	m.assignments = kept
	return deleted
}

func (m *mockCalendarRepo) DeleteByID(_ context.Context, id primitive.ObjectID) (int64, error) {
	return m.deleteWhere(func(a domain.CalendarAssignment) bool { return a.ID == id }), nil
}

func (m *mockCalendarRepo) DeleteByOwnerAndDate(_ context.Context, ownerID primitive.ObjectID, date string) (int64, error) {
	return m.deleteWhere(func(a domain.CalendarAssignment) bool {
		return a.OwnerID == ownerID && a.Date == date
	}), nil
}

func (m *mockCalendarRepo) DeleteSeriesFrom(_ context.Context, ownerID primitive.ObjectID, seriesID, fromDate string) (int64, error) {
	return m.deleteWhere(func(a domain.CalendarAssignment) bool {
		return a.OwnerID == ownerID && a.SeriesID == seriesID && a.Date >= fromDate
	}), nil
}

func (m *mockCalendarRepo) DeleteByGroupID(_ context.Context, groupID primitive.ObjectID) (int64, error) {
	return m.deleteWhere(func(a domain.CalendarAssignment) bool {
		return a.GroupID != nil && *a.GroupID == groupID
	}), nil
}

func (m *mockCalendarRepo) DeleteByOwner(_ context.Context, ownerID primitive.ObjectID) (int64, error) {
	return m.deleteWhere(func(a domain.CalendarAssignment) bool { return a.OwnerID == ownerID }), nil
}

// --- Diet assignments ---

type mockDietRepo struct {
	assignments []domain.DietAssignment
}

func (m *mockDietRepo) Create(_ context.Context, a *domain.DietAssignment) (primitive.ObjectID, error) {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()
	m.assignments = append(m.assignments, *a)
	return a.ID, nil
}

func (m *mockDietRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.DietAssignment, error) {
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			a := m.assignments[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockDietRepo) GetByOwnerAndDateRange(_ context.Context, ownerID primitive.ObjectID, startDate, endDate string) ([]domain.DietAssignment, error) {
	var out []domain.DietAssignment
	for _, a := range m.assignments {
		if a.OwnerID == ownerID && a.Date >= startDate && a.Date <= endDate {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockDietRepo) DeleteByID(_ context.Context, id primitive.ObjectID) (int64, error) {
	var kept []domain.DietAssignment
	var deleted int64
	for _, a := range m.assignments {
		if a.ID == id {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	m.assignments = kept
	return deleted, nil
}

func (m *mockDietRepo) DeleteByMealPlanID(_ context.Context, planID primitive.ObjectID) (int64, error) {
	var kept []domain.DietAssignment
	var deleted int64
	for _, a := range m.assignments {
		if a.MealPlanID == planID {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	m.assignments = kept
	return deleted, nil
}

// --- Exercise groups ---

type mockGroupRepo struct {
	groups map[primitive.ObjectID]domain.ExerciseGroup
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[primitive.ObjectID]domain.ExerciseGroup)}
}

func (m *mockGroupRepo) Create(_ context.Context, group *domain.ExerciseGroup) (primitive.ObjectID, error) {
	group.ID = primitive.NewObjectID()
	group.CreatedAt = time.Now().UTC()
	m.groups[group.ID] = *group
	return group.ID, nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ExerciseGroup, error) {
	group, ok := m.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &group, nil
}

func (m *mockGroupRepo) GetByOwnerID(_ context.Context, ownerID primitive.ObjectID) ([]domain.ExerciseGroup, error) {
	var out []domain.ExerciseGroup
	for _, g := range m.groups {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockGroupRepo) GetNamesByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string)
	for _, id := range ids {
		if g, ok := m.groups[id]; ok {
			names[id] = g.Name
		}
	}
	return names, nil
}

func (m *mockGroupRepo) Update(_ context.Context, id primitive.ObjectID, name *string, exerciseIDs []primitive.ObjectID) error {
	group, ok := m.groups[id]
	if !ok {
		return repository.ErrNotFound
	}
	if name != nil {
		group.Name = *name
	}
	if exerciseIDs != nil {
		group.ExerciseIDs = exerciseIDs
	}
	m.groups[id] = group
	return nil
}

func (m *mockGroupRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.groups[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.groups, id)
	return nil
}

// --- Meal plans ---

type mockMealPlanRepo struct {
	plans map[primitive.ObjectID]domain.MealPlan
}

func newMockMealPlanRepo() *mockMealPlanRepo {
	return &mockMealPlanRepo{plans: make(map[primitive.ObjectID]domain.MealPlan)}
}

func (m *mockMealPlanRepo) Create(_ context.Context, plan *domain.MealPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	m.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (m *mockMealPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.MealPlan, error) {
	plan, ok := m.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &plan, nil
}

func (m *mockMealPlanRepo) GetByOwnerID(_ context.Context, ownerID primitive.ObjectID) ([]domain.MealPlan, error) {
	var out []domain.MealPlan
	for _, p := range m.plans {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockMealPlanRepo) GetNamesByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string)
	for _, id := range ids {
		if p, ok := m.plans[id]; ok {
			names[id] = p.Name
		}
	}
	return names, nil
}

func (m *mockMealPlanRepo) Update(_ context.Context, id primitive.ObjectID, name *string, mealIDs []primitive.ObjectID) error {
	plan, ok := m.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	if name != nil {
		plan.Name = *name
	}
	if mealIDs != nil {
		plan.MealIDs = mealIDs
	}
	m.plans[id] = plan
	return nil
}

func (m *mockMealPlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.plans, id)
	return nil
}

// --- Exercises ---

type mockExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
}

func newMockExerciseRepo() *mockExerciseRepo {
	return &mockExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (m *mockExerciseRepo) add(name, repsSets string) primitive.ObjectID {
	id := primitive.NewObjectID()
	m.exercises[id] = domain.Exercise{ID: id, Name: name, RepsSets: repsSets}
	return id
}

func (m *mockExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	exercise.ID = primitive.NewObjectID()
	m.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (m *mockExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	ex, ok := m.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ex, nil
}

func (m *mockExerciseRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, id := range ids {
		if ex, ok := m.exercises[id]; ok {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (m *mockExerciseRepo) GetAll(_ context.Context) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, ex := range m.exercises {
		out = append(out, ex)
	}
	return out, nil
}

func (m *mockExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	if _, ok := m.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	m.exercises[exercise.ID] = *exercise
	return nil
}

func (m *mockExerciseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.exercises, id)
	return nil
}

// --- Workout logs ---

type logKey struct {
	owner    primitive.ObjectID
	date     string
	exercise primitive.ObjectID
}

type mockWorkoutLogRepo struct {
	completed map[logKey]bool
}

func newMockWorkoutLogRepo() *mockWorkoutLogRepo {
	return &mockWorkoutLogRepo{completed: make(map[logKey]bool)}
}

func (m *mockWorkoutLogRepo) MarkCompleted(_ context.Context, ownerID primitive.ObjectID, date string, exerciseID primitive.ObjectID) error {
	m.completed[logKey{ownerID, date, exerciseID}] = true
	return nil
}

func (m *mockWorkoutLogRepo) MarkIncomplete(_ context.Context, ownerID primitive.ObjectID, date string, exerciseID primitive.ObjectID) error {
	delete(m.completed, logKey{ownerID, date, exerciseID})
	return nil
}

func (m *mockWorkoutLogRepo) GetCompletedExerciseIDs(_ context.Context, ownerID primitive.ObjectID, date string) ([]primitive.ObjectID, error) {
	var out []primitive.ObjectID
	for k := range m.completed {
		if k.owner == ownerID && k.date == date {
			out = append(out, k.exercise)
		}
	}
	return out, nil
}
