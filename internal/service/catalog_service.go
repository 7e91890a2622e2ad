package service

import (
	"context"
	"errors"

	"fitplanner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogKind selects which reference catalog an id belongs to.
type CatalogKind string

const (
	CatalogWorkout CatalogKind = "workout" // exercise groups
	CatalogDiet    CatalogKind = "diet"    // meal plans
)

// CatalogEntry is the resolved view of a group or meal plan reference: its
// display name, owner, and ordered member ids. The planner never mutates
// catalog content through this interface.
type CatalogEntry struct {
	Name      string
	OwnerID   primitive.ObjectID
	MemberIDs []primitive.ObjectID
}

// CatalogResolver is the single collaborator interface the planner core uses
// to turn group/plan references into display data.
type CatalogResolver interface {
	// ResolveEntry resolves one reference; unknown ids yield ErrCatalogEntryNotFound.
	ResolveEntry(ctx context.Context, kind CatalogKind, id primitive.ObjectID) (*CatalogEntry, error)
	// ResolveNames resolves display names for a batch of references in one
	// store query. Ids that do not resolve are absent from the map.
	ResolveNames(ctx context.Context, kind CatalogKind, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}

var (
	ErrCatalogEntryNotFound = errors.New("catalog entry not found")
	ErrUnknownCatalogKind   = errors.New("unknown catalog kind")
)

// catalogService implements CatalogResolver on top of the group and meal
// plan repositories.
type catalogService struct {
	groupRepo    repository.GroupRepository
	mealPlanRepo repository.MealPlanRepository
}

// NewCatalogService creates a catalog resolver over the two reference stores.
func NewCatalogService(groupRepo repository.GroupRepository, mealPlanRepo repository.MealPlanRepository) CatalogResolver {
	return &catalogService{
		groupRepo:    groupRepo,
		mealPlanRepo: mealPlanRepo,
	}
}

func (s *catalogService) ResolveEntry(ctx context.Context, kind CatalogKind, id primitive.ObjectID) (*CatalogEntry, error) {
	switch kind {
	case CatalogWorkout:
		group, err := s.groupRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCatalogEntryNotFound
			}
			return nil, err
		}
		return &CatalogEntry{
			Name:      group.Name,
			OwnerID:   group.OwnerID,
			MemberIDs: group.ExerciseIDs,
		}, nil

	case CatalogDiet:
		plan, err := s.mealPlanRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCatalogEntryNotFound
			}
			return nil, err
		}
		return &CatalogEntry{
			Name:      plan.Name,
			OwnerID:   plan.OwnerID,
			MemberIDs: plan.MealIDs,
		}, nil
	}
	return nil, ErrUnknownCatalogKind
}

func (s *catalogService) ResolveNames(ctx context.Context, kind CatalogKind, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	switch kind {
	case CatalogWorkout:
		return s.groupRepo.GetNamesByIDs(ctx, ids)
	case CatalogDiet:
		return s.mealPlanRepo.GetNamesByIDs(ctx, ids)
	}
	return nil, ErrUnknownCatalogKind
}
