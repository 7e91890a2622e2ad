package service

import (
	"context"
	"errors"
	"testing"

	"fitplanner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTrackerFixture() (TrackerService, *mockCalendarRepo, *mockExerciseRepo, *mockGroupRepo) {
	calendarRepo := &mockCalendarRepo{}
	logRepo := newMockWorkoutLogRepo()
	exerciseRepo := newMockExerciseRepo()
	groupRepo := newMockGroupRepo()
	catalog := NewCatalogService(groupRepo, newMockMealPlanRepo())
	return NewTrackerService(calendarRepo, logRepo, exerciseRepo, catalog), calendarRepo, exerciseRepo, groupRepo
}

func TestMarkCompletedIdempotent(t *testing.T) {
	svc, _, _, _ := newTrackerFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	exercise := primitive.NewObjectID()

	if err := svc.MarkCompleted(ctx, owner, "2025-03-01", exercise); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := svc.MarkCompleted(ctx, owner, "2025-03-01", exercise); err != nil {
		t.Fatalf("second mark: %v", err)
	}

	completed, err := svc.GetCompletedIDs(ctx, owner, "2025-03-01")
	if err != nil {
		t.Fatalf("GetCompletedIDs: %v", err)
	}
	if len(completed) != 1 || !completed[exercise] {
		t.Errorf("completed = %v, want exactly one mark for %v", completed, exercise)
	}
}

func TestMarkIncomplete(t *testing.T) {
	svc, _, _, _ := newTrackerFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	exercise := primitive.NewObjectID()

	if err := svc.MarkCompleted(ctx, owner, "2025-03-01", exercise); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := svc.MarkIncomplete(ctx, owner, "2025-03-01", exercise); err != nil {
		t.Fatalf("unmark: %v", err)
	}
	// Unmarking a mark that does not exist is not an error.
	if err := svc.MarkIncomplete(ctx, owner, "2025-03-01", exercise); err != nil {
		t.Errorf("repeat unmark: %v", err)
	}

	completed, err := svc.GetCompletedIDs(ctx, owner, "2025-03-01")
	if err != nil {
		t.Fatalf("GetCompletedIDs: %v", err)
	}
	if len(completed) != 0 {
		t.Errorf("expected no marks, got %v", completed)
	}
}

func TestMarkCompletedValidation(t *testing.T) {
	svc, _, _, _ := newTrackerFixture()
	ctx := context.Background()

	if err := svc.MarkCompleted(ctx, primitive.NewObjectID(), "bad-date", primitive.NewObjectID()); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date: got %v, want ErrInvalidDate", err)
	}
	if err := svc.MarkCompleted(ctx, primitive.NilObjectID, "2025-03-01", primitive.NewObjectID()); !errors.Is(err, ErrValidation) {
		t.Errorf("nil owner: got %v, want ErrValidation", err)
	}
}

func TestComposeDay(t *testing.T) {
	svc, calendarRepo, exerciseRepo, groupRepo := newTrackerFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	squat := exerciseRepo.add("Squat", "4 sets x 6 reps")
	lunge := exerciseRepo.add("Lunge", "")
	press := exerciseRepo.add("Leg Press", "3 sets x 10 reps")

	group, err := domain.NewExerciseGroup(owner, "Leg Day", []primitive.ObjectID{squat, lunge, press})
	if err != nil {
		t.Fatalf("NewExerciseGroup: %v", err)
	}
	groupID, err := groupRepo.Create(ctx, group)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	if _, err := calendarRepo.Create(ctx, &domain.CalendarAssignment{
		OwnerID: owner, Date: "2025-03-01", Kind: domain.KindWorkout, GroupID: &groupID,
	}); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	if err := svc.MarkCompleted(ctx, owner, "2025-03-01", lunge); err != nil {
		t.Fatalf("mark: %v", err)
	}

	plan, err := svc.ComposeDay(ctx, owner, "2025-03-01")
	if err != nil {
		t.Fatalf("ComposeDay: %v", err)
	}

	if plan.IsRestDay {
		t.Error("workout day flagged as rest")
	}
	if len(plan.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(plan.Groups))
	}
	got := plan.Groups[0]
	if got.GroupName != "Leg Day" {
		t.Errorf("group name = %q", got.GroupName)
	}
	if len(got.Exercises) != 3 {
		t.Fatalf("expected 3 exercises, got %d", len(got.Exercises))
	}

	// Stored group order is preserved.
	wantOrder := []string{"Squat", "Lunge", "Leg Press"}
	for i, ex := range got.Exercises {
		if ex.Name != wantOrder[i] {
			t.Errorf("exercise[%d] = %q, want %q", i, ex.Name, wantOrder[i])
		}
	}

	if !got.Exercises[1].IsCompleted {
		t.Error("Lunge should be marked completed")
	}
	if got.Exercises[0].IsCompleted || got.Exercises[2].IsCompleted {
		t.Error("unmarked exercises flagged completed")
	}
	if got.Exercises[1].RepsSets != "3 sets x 8-12 reps" {
		t.Errorf("missing reps/sets should fall back to the default, got %q", got.Exercises[1].RepsSets)
	}
	if got.Exercises[0].RepsSets != "4 sets x 6 reps" {
		t.Errorf("stored reps/sets overwritten: %q", got.Exercises[0].RepsSets)
	}
}

func TestComposeDayRestDay(t *testing.T) {
	svc, calendarRepo, _, _ := newTrackerFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	if _, err := calendarRepo.Create(ctx, &domain.CalendarAssignment{
		OwnerID: owner, Date: "2025-03-01", Kind: domain.KindRest,
	}); err != nil {
		t.Fatalf("seed rest marker: %v", err)
	}

	plan, err := svc.ComposeDay(ctx, owner, "2025-03-01")
	if err != nil {
		t.Fatalf("ComposeDay: %v", err)
	}
	if !plan.IsRestDay {
		t.Error("rest day not flagged")
	}
	if len(plan.Groups) != 0 {
		t.Errorf("rest day should carry no groups, got %d", len(plan.Groups))
	}
}

func TestComposeDaySkipsDanglingGroup(t *testing.T) {
	svc, calendarRepo, _, _ := newTrackerFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	missing := primitive.NewObjectID()

	if _, err := calendarRepo.Create(ctx, &domain.CalendarAssignment{
		OwnerID: owner, Date: "2025-03-01", Kind: domain.KindWorkout, GroupID: &missing,
	}); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	plan, err := svc.ComposeDay(ctx, owner, "2025-03-01")
	if err != nil {
		t.Fatalf("a dangling group reference must not fail the read: %v", err)
	}
	if len(plan.Groups) != 0 {
		t.Errorf("unresolvable group should be skipped, got %d groups", len(plan.Groups))
	}
}

func TestComposeDayEmpty(t *testing.T) {
	svc, _, _, _ := newTrackerFixture()

	plan, err := svc.ComposeDay(context.Background(), primitive.NewObjectID(), "2025-03-01")
	if err != nil {
		t.Fatalf("ComposeDay: %v", err)
	}
	if plan.IsRestDay || len(plan.Groups) != 0 {
		t.Errorf("empty day should compose to an empty plan: %+v", plan)
	}

	if _, err := svc.ComposeDay(context.Background(), primitive.NewObjectID(), "03-01-2025"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date: got %v, want ErrInvalidDate", err)
	}
}
