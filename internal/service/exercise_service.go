package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"fitplanner/internal/domain"
	"fitplanner/internal/repository"
	"fitplanner/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrInvalidMediaType = errors.New("invalid or missing media content type")
	ErrMediaURLFailed   = errors.New("failed to generate media URL")
)

// MediaUploadResponse carries a presigned upload URL and the object key the
// client must report back once the upload finished.
type MediaUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// --- Service Interface ---

// ExerciseService manages the shared exercise catalog and its demo media.
type ExerciseService interface {
	CreateExercise(ctx context.Context, createdBy primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	GetAllExercises(ctx context.Context) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error

	// RequestMediaUploadURL hands out a presigned PUT URL for an exercise
	// demo image or video.
	RequestMediaUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*MediaUploadResponse, error)
	// ConfirmMediaUpload records the uploaded object key on the exercise.
	ConfirmMediaUpload(ctx context.Context, exerciseID primitive.ObjectID, objectKey string) (*domain.Exercise, error)
	// GetMediaDownloadURL returns a presigned GET URL for the exercise's image.
	GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	mediaStorage storage.MediaStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, mediaStorage storage.MediaStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		mediaStorage: mediaStorage,
	}
}

// CreateExercise adds a new exercise to the catalog.
func (s *exerciseService) CreateExercise(ctx context.Context, createdBy primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error) {
	if strings.TrimSpace(exercise.Name) == "" {
		return nil, ErrValidation
	}
	if createdBy == primitive.NilObjectID {
		return nil, ErrValidation
	}

	exercise.Name = strings.TrimSpace(exercise.Name)
	exercise.CreatedBy = createdBy

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// GetExerciseByID retrieves a single exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// GetAllExercises lists the whole catalog.
func (s *exerciseService) GetAllExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetAll(ctx)
}

// UpdateExercise modifies an existing catalog entry.
func (s *exerciseService) UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error) {
	if strings.TrimSpace(exercise.Name) == "" {
		return nil, ErrValidation
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	existing.Name = strings.TrimSpace(exercise.Name)
	existing.Description = exercise.Description
	existing.MuscleGroup = exercise.MuscleGroup
	existing.Equipment = exercise.Equipment
	existing.Difficulty = exercise.Difficulty
	existing.Instructions = exercise.Instructions
	existing.RepsSets = exercise.RepsSets
	existing.Tips = exercise.Tips
	existing.VideoURL = exercise.VideoURL

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteExercise removes an exercise from the catalog. Groups that reference
// it are left alone; day views simply stop showing the exercise.
func (s *exerciseService) DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	// Best effort: the catalog row is gone either way.
	if exercise.ImageKey != "" {
		_ = s.mediaStorage.DeleteObject(ctx, exercise.ImageKey)
	}
	return nil
}

// RequestMediaUploadURL generates a presigned URL for uploading demo media.
func (s *exerciseService) RequestMediaUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*MediaUploadResponse, error) {
	lower := strings.ToLower(contentType)
	if !strings.HasPrefix(lower, "image/") && !strings.HasPrefix(lower, "video/") {
		return nil, ErrInvalidMediaType
	}

	if _, err := s.GetExerciseByID(ctx, exerciseID); err != nil {
		return nil, err
	}

	ext := ""
	if parts := strings.Split(lower, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	objectKey := path.Join("exercises", exerciseID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	uploadURL, err := s.mediaStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrMediaURLFailed
	}

	return &MediaUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmMediaUpload stores the uploaded object key on the exercise record.
func (s *exerciseService) ConfirmMediaUpload(ctx context.Context, exerciseID primitive.ObjectID, objectKey string) (*domain.Exercise, error) {
	if objectKey == "" {
		return nil, ErrValidation
	}

	exercise, err := s.GetExerciseByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	exercise.ImageKey = objectKey
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// GetMediaDownloadURL returns a temporary viewing URL for the exercise image.
func (s *exerciseService) GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	exercise, err := s.GetExerciseByID(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	if exercise.ImageKey == "" {
		return "", ErrExerciseNotFound
	}

	url, err := s.mediaStorage.GeneratePresignedDownloadURL(ctx, exercise.ImageKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrMediaURLFailed
	}
	return url, nil
}
