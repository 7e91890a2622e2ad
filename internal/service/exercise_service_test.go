package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fitplanner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockMediaStorage struct {
	deleted []string
}

func (m *mockMediaStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.example.com/upload/" + objectKey, nil
}

func (m *mockMediaStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.example.com/get/" + objectKey, nil
}

func (m *mockMediaStorage) DeleteObject(_ context.Context, objectKey string) error {
	m.deleted = append(m.deleted, objectKey)
	return nil
}

func newExerciseFixture() (ExerciseService, *mockExerciseRepo, *mockMediaStorage) {
	exerciseRepo := newMockExerciseRepo()
	media := &mockMediaStorage{}
	return NewExerciseService(exerciseRepo, media), exerciseRepo, media
}

func TestCreateExercise(t *testing.T) {
	svc, _, _ := newExerciseFixture()
	ctx := context.Background()
	admin := primitive.NewObjectID()

	created, err := svc.CreateExercise(ctx, admin, &domain.Exercise{
		Name:        "  Barbell Squat ",
		MuscleGroup: "legs",
		RepsSets:    "4 sets x 6 reps",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Barbell Squat" {
		t.Errorf("name not trimmed: %q", created.Name)
	}
	if created.CreatedBy != admin {
		t.Errorf("CreatedBy = %v, want %v", created.CreatedBy, admin)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("created exercise has no id")
	}

	if _, err := svc.CreateExercise(ctx, admin, &domain.Exercise{Name: "   "}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name: got %v, want ErrValidation", err)
	}
}

func TestMediaUploadFlow(t *testing.T) {
	svc, _, _ := newExerciseFixture()
	ctx := context.Background()
	admin := primitive.NewObjectID()

	created, err := svc.CreateExercise(ctx, admin, &domain.Exercise{Name: "Deadlift"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resp, err := svc.RequestMediaUploadURL(ctx, created.ID, "image/png")
	if err != nil {
		t.Fatalf("upload URL: %v", err)
	}
	if resp.UploadURL == "" || resp.ObjectKey == "" {
		t.Fatalf("incomplete upload response: %+v", resp)
	}
	if !strings.HasPrefix(resp.ObjectKey, "exercises/"+created.ID.Hex()+"/") {
		t.Errorf("object key %q not scoped to the exercise", resp.ObjectKey)
	}
	if !strings.HasSuffix(resp.ObjectKey, ".png") {
		t.Errorf("object key %q missing extension", resp.ObjectKey)
	}

	confirmed, err := svc.ConfirmMediaUpload(ctx, created.ID, resp.ObjectKey)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.ImageKey != resp.ObjectKey {
		t.Errorf("ImageKey = %q, want %q", confirmed.ImageKey, resp.ObjectKey)
	}

	url, err := svc.GetMediaDownloadURL(ctx, created.ID)
	if err != nil {
		t.Fatalf("download URL: %v", err)
	}
	if !strings.Contains(url, resp.ObjectKey) {
		t.Errorf("download URL %q does not reference the object key", url)
	}
}

func TestRequestMediaUploadRejectsBadContentType(t *testing.T) {
	svc, _, _ := newExerciseFixture()
	ctx := context.Background()

	created, err := svc.CreateExercise(ctx, primitive.NewObjectID(), &domain.Exercise{Name: "Bench Press"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.RequestMediaUploadURL(ctx, created.ID, "application/pdf"); !errors.Is(err, ErrInvalidMediaType) {
		t.Errorf("got %v, want ErrInvalidMediaType", err)
	}
	if _, err := svc.RequestMediaUploadURL(ctx, primitive.NewObjectID(), "image/png"); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("unknown exercise: got %v, want ErrExerciseNotFound", err)
	}
}

func TestDeleteExerciseCleansUpMedia(t *testing.T) {
	svc, exerciseRepo, media := newExerciseFixture()
	ctx := context.Background()

	created, err := svc.CreateExercise(ctx, primitive.NewObjectID(), &domain.Exercise{Name: "Pull Up"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ConfirmMediaUpload(ctx, created.ID, "exercises/"+created.ID.Hex()+"/demo.png"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := svc.DeleteExercise(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := exerciseRepo.GetByID(ctx, created.ID); err == nil {
		t.Error("exercise should be gone")
	}
	if len(media.deleted) != 1 {
		t.Errorf("stored media should be removed with the exercise; deleted = %v", media.deleted)
	}

	if err := svc.DeleteExercise(ctx, created.ID); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("repeat delete: got %v, want ErrExerciseNotFound", err)
	}
}
