package domain

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewExerciseGroup(t *testing.T) {
	owner := primitive.NewObjectID()
	members := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	group, err := NewExerciseGroup(owner, "  Leg Day  ", members)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if group.Name != "Leg Day" {
		t.Errorf("name not trimmed: %q", group.Name)
	}
	if group.OwnerID != owner {
		t.Errorf("owner = %v, want %v", group.OwnerID, owner)
	}
	if len(group.ExerciseIDs) != 2 {
		t.Errorf("expected 2 members, got %d", len(group.ExerciseIDs))
	}

	if _, err := NewExerciseGroup(owner, "   ", members); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name: got %v, want ErrEmptyName", err)
	}
	if _, err := NewExerciseGroup(owner, "Push Day", nil); !errors.Is(err, ErrEmptyMembers) {
		t.Errorf("no members: got %v, want ErrEmptyMembers", err)
	}
}

func TestNewMealPlan(t *testing.T) {
	owner := primitive.NewObjectID()
	meals := []primitive.ObjectID{primitive.NewObjectID()}

	plan, err := NewMealPlan(owner, "Cutting Week", meals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Name != "Cutting Week" {
		t.Errorf("name = %q", plan.Name)
	}

	if _, err := NewMealPlan(owner, "", meals); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name: got %v, want ErrEmptyName", err)
	}
	if _, err := NewMealPlan(owner, "Bulking Week", []primitive.ObjectID{}); !errors.Is(err, ErrEmptyMembers) {
		t.Errorf("no meals: got %v, want ErrEmptyMembers", err)
	}
}
