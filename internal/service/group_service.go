package service

import (
	"context"
	"errors"
	"strings"

	"fitplanner/internal/domain"
	"fitplanner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Service Interface ---

// GroupService owns the user-scoped exercise group store (workout templates).
type GroupService interface {
	CreateGroup(ctx context.Context, ownerID primitive.ObjectID, name string, exerciseIDs []primitive.ObjectID) (*domain.ExerciseGroup, error)
	// UpdateGroup applies a partial update: nil name / nil exerciseIDs leave
	// the respective field unchanged.
	UpdateGroup(ctx context.Context, ownerID, groupID primitive.ObjectID, name *string, exerciseIDs []primitive.ObjectID) (*domain.ExerciseGroup, error)
	// DeleteGroup cascades: referencing calendar assignments go first, then
	// the group itself, so no dangling references survive.
	DeleteGroup(ctx context.Context, ownerID, groupID primitive.ObjectID) error
	GetGroupByID(ctx context.Context, groupID primitive.ObjectID) (*domain.ExerciseGroup, error)
	GetGroupsByUser(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ExerciseGroup, error)
}

// --- Service Implementation ---

type groupService struct {
	groupRepo    repository.GroupRepository
	calendarRepo repository.CalendarAssignmentRepository
}

// NewGroupService creates the exercise group store service.
func NewGroupService(groupRepo repository.GroupRepository, calendarRepo repository.CalendarAssignmentRepository) GroupService {
	return &groupService{
		groupRepo:    groupRepo,
		calendarRepo: calendarRepo,
	}
}

// CreateGroup validates and stores a new workout template.
func (s *groupService) CreateGroup(ctx context.Context, ownerID primitive.ObjectID, name string, exerciseIDs []primitive.ObjectID) (*domain.ExerciseGroup, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrValidation
	}

	group, err := domain.NewExerciseGroup(ownerID, name, exerciseIDs)
	if err != nil {
		return nil, ErrValidation
	}

	id, err := s.groupRepo.Create(ctx, group)
	if err != nil {
		return nil, err
	}
	group.ID = id
	return group, nil
}

// UpdateGroup modifies name and/or members of an owned group.
func (s *groupService) UpdateGroup(ctx context.Context, ownerID, groupID primitive.ObjectID, name *string, exerciseIDs []primitive.ObjectID) (*domain.ExerciseGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	if group.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}

	// Validate only what the caller supplied.
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrValidation
		}
		name = &trimmed
		group.Name = trimmed
	}
	if exerciseIDs != nil {
		if len(exerciseIDs) == 0 {
			return nil, ErrValidation
		}
		group.ExerciseIDs = exerciseIDs
	}

	if err := s.groupRepo.Update(ctx, groupID, name, exerciseIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes a group and every calendar assignment referencing it.
// The assignment sweep runs before the group row is removed.
func (s *groupService) DeleteGroup(ctx context.Context, ownerID, groupID primitive.ObjectID) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	if group.OwnerID != ownerID {
		return ErrAccessDenied
	}

	if _, err := s.calendarRepo.DeleteByGroupID(ctx, groupID); err != nil {
		return err
	}

	if err := s.groupRepo.Delete(ctx, groupID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	return nil
}

// GetGroupByID retrieves a single group.
func (s *groupService) GetGroupByID(ctx context.Context, groupID primitive.ObjectID) (*domain.ExerciseGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// GetGroupsByUser retrieves all groups owned by a user.
func (s *groupService) GetGroupsByUser(ctx context.Context, ownerID primitive.ObjectID) ([]domain.ExerciseGroup, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrValidation
	}
	return s.groupRepo.GetByOwnerID(ctx, ownerID)
}
