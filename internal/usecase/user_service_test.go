package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain/mocks"
)

func demoUsers() []domain.User {
	return []domain.User{
		{ID: "u-admin", Email: "admin@test.com", Role: domain.RoleAdmin},
		{ID: "u-analyst", Email: "analyst@test.com", Role: domain.RoleAnalyst},
		{ID: "u-viewer", Email: "viewer@test.com", Role: domain.RoleViewer},
	}
}

func TestUserServiceList(t *testing.T) {
	repo := &mocks.MockUserRepository{Users: demoUsers()}
	svc := NewUserService(repo, noLog)

	t.Run("admin sees every account", func(t *testing.T) {
		users, err := svc.List(context.Background(), adminUser)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(users) != 3 {
			t.Fatalf("expected 3 users, got %d", len(users))
		}
	})

	t.Run("non-admin roles are refused", func(t *testing.T) {
		for _, caller := range []*domain.User{analyst, viewer} {
			if _, err := svc.List(context.Background(), caller); !errors.Is(err, domain.ErrForbidden) {
				t.Errorf("caller %s: expected ErrForbidden, got %v", caller.ID, err)
			}
		}
	})

	t.Run("nil identity", func(t *testing.T) {
		if _, err := svc.List(context.Background(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})
}

func TestUserServiceUpdateRole(t *testing.T) {
	t.Run("admin promotes another user", func(t *testing.T) {
		repo := &mocks.MockUserRepository{Users: demoUsers()}
		svc := NewUserService(repo, noLog)

		updated, err := svc.UpdateRole(context.Background(), adminUser, "u-viewer", domain.RoleAnalyst)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Role != domain.RoleAnalyst {
			t.Fatalf("expected Analyst, got %s", updated.Role)
		}
	})

	t.Run("self role change is rejected even for admin", func(t *testing.T) {
		repo := &mocks.MockUserRepository{Users: demoUsers()}
		svc := NewUserService(repo, noLog)

		_, err := svc.UpdateRole(context.Background(), adminUser, adminUser.ID, domain.RoleViewer)
		if !errors.Is(err, domain.ErrSelfRoleChange) {
			t.Fatalf("expected ErrSelfRoleChange, got %v", err)
		}

		stored, _ := repo.Get(context.Background(), adminUser.ID)
		if stored.Role != domain.RoleAdmin {
			t.Fatalf("role must be unchanged, got %s", stored.Role)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		repo := &mocks.MockUserRepository{Users: demoUsers()}
		svc := NewUserService(repo, noLog)

		_, err := svc.UpdateRole(context.Background(), adminUser, "u-viewer", domain.Role("Root"))
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		repo := &mocks.MockUserRepository{Users: demoUsers()}
		svc := NewUserService(repo, noLog)

		_, err := svc.UpdateRole(context.Background(), adminUser, "u-ghost", domain.RoleViewer)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("analyst may not assign roles", func(t *testing.T) {
		repo := &mocks.MockUserRepository{Users: demoUsers()}
		svc := NewUserService(repo, noLog)

		_, err := svc.UpdateRole(context.Background(), analyst, "u-viewer", domain.RoleAdmin)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}
