package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitplanner/internal/domain"
	"fitplanner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	user.ID = primitive.NewObjectID()
	m.users[user.ID] = *user
	return user.ID, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func TestRegisterAndLogin(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewAuthService(userRepo, "test-secret", time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alex", "alex@example.com", "strongpassword", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleMember {
		t.Errorf("default role = %q, want member", user.Role)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked in register response")
	}

	token, logged, err := svc.Login(ctx, "alex@example.com", "strongpassword")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}
	if logged.ID != user.ID {
		t.Errorf("logged in as %v, want %v", logged.ID, user.ID)
	}
	if logged.PasswordHash != "" {
		t.Error("password hash leaked in login response")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewAuthService(userRepo, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alex", "alex@example.com", "strongpassword", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "Sam", "alex@example.com", "otherpassword", ""); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("got %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := NewAuthService(userRepo, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alex", "alex@example.com", "strongpassword", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alex@example.com", "wrong"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("wrong password: got %v, want ErrAuthenticationFailed", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "strongpassword"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("unknown email: got %v, want ErrAuthenticationFailed", err)
	}
}
