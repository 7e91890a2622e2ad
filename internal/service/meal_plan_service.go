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

// MealPlanService owns the user-scoped meal plan store. It mirrors
// GroupService; the cascade on delete sweeps diet assignments instead of
// calendar assignments.
type MealPlanService interface {
	CreatePlan(ctx context.Context, ownerID primitive.ObjectID, name string, mealIDs []primitive.ObjectID) (*domain.MealPlan, error)
	UpdatePlan(ctx context.Context, ownerID, planID primitive.ObjectID, name *string, mealIDs []primitive.ObjectID) (*domain.MealPlan, error)
	DeletePlan(ctx context.Context, ownerID, planID primitive.ObjectID) error
	GetPlanByID(ctx context.Context, planID primitive.ObjectID) (*domain.MealPlan, error)
	GetPlansByUser(ctx context.Context, ownerID primitive.ObjectID) ([]domain.MealPlan, error)
}

// --- Service Implementation ---

type mealPlanService struct {
	mealPlanRepo repository.MealPlanRepository
	dietRepo     repository.DietAssignmentRepository
}

// NewMealPlanService creates the meal plan store service.
func NewMealPlanService(mealPlanRepo repository.MealPlanRepository, dietRepo repository.DietAssignmentRepository) MealPlanService {
	return &mealPlanService{
		mealPlanRepo: mealPlanRepo,
		dietRepo:     dietRepo,
	}
}

// CreatePlan validates and stores a new meal plan.
func (s *mealPlanService) CreatePlan(ctx context.Context, ownerID primitive.ObjectID, name string, mealIDs []primitive.ObjectID) (*domain.MealPlan, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrValidation
	}

	plan, err := domain.NewMealPlan(ownerID, name, mealIDs)
	if err != nil {
		return nil, ErrValidation
	}

	id, err := s.mealPlanRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

// UpdatePlan modifies name and/or meals of an owned plan.
func (s *mealPlanService) UpdatePlan(ctx context.Context, ownerID, planID primitive.ObjectID, name *string, mealIDs []primitive.ObjectID) (*domain.MealPlan, error) {
	plan, err := s.mealPlanRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrValidation
		}
		name = &trimmed
		plan.Name = trimmed
	}
	if mealIDs != nil {
		if len(mealIDs) == 0 {
			return nil, ErrValidation
		}
		plan.MealIDs = mealIDs
	}

	if err := s.mealPlanRepo.Update(ctx, planID, name, mealIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes a plan and every diet assignment referencing it.
// The assignment sweep runs before the plan row is removed.
func (s *mealPlanService) DeletePlan(ctx context.Context, ownerID, planID primitive.ObjectID) error {
	plan, err := s.mealPlanRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if plan.OwnerID != ownerID {
		return ErrAccessDenied
	}

	if _, err := s.dietRepo.DeleteByMealPlanID(ctx, planID); err != nil {
		return err
	}

	if err := s.mealPlanRepo.Delete(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// GetPlanByID retrieves a single meal plan.
func (s *mealPlanService) GetPlanByID(ctx context.Context, planID primitive.ObjectID) (*domain.MealPlan, error) {
	plan, err := s.mealPlanRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// GetPlansByUser retrieves all meal plans owned by a user.
func (s *mealPlanService) GetPlansByUser(ctx context.Context, ownerID primitive.ObjectID) ([]domain.MealPlan, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrValidation
	}
	return s.mealPlanRepo.GetByOwnerID(ctx, ownerID)
}
