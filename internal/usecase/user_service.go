package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/rbac"
)

// UserService exposes the account listing and role assignment operations.
type UserService struct {
	users  domain.UserRepository
	logger *slog.Logger
}

func NewUserService(users domain.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// List returns every account.
func (s *UserService) List(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	if err := rbac.Require(caller, rbac.UsersRead); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// UpdateRole assigns a new role to the target user. Holding
// users:updateRole is not enough to change one's own role: self-service
// role changes are always rejected, Admin included.
func (s *UserService) UpdateRole(ctx context.Context, caller *domain.User, targetID string, role domain.Role) (domain.User, error) {
	if err := rbac.Require(caller, rbac.UsersUpdateRole); err != nil {
		return domain.User{}, err
	}

	if !role.Valid() {
		verr := &domain.ValidationError{}
		verr.Add("role", fmt.Sprintf("must be one of %v", domain.Roles))
		return domain.User{}, verr
	}

	if caller.ID == targetID {
		return domain.User{}, domain.ErrSelfRoleChange
	}

	updated, err := s.users.UpdateRole(ctx, targetID, role)
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("user role updated", "user_id", targetID, "role", role, "by", caller.ID)
	return updated, nil
}
