package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// UserRepository is a mutex-guarded in-memory domain.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	order []string
	users map[string]domain.User
}

func NewUserRepository(users []domain.User) *UserRepository {
	r := &UserRepository{users: make(map[string]domain.User, len(users))}
	for _, u := range users {
		r.order = append(r.order, u.ID)
		r.users[u.ID] = u
	}
	return r
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if strings.EqualFold(r.users[id].Email, email) {
			return r.users[id], nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	u.Role = role
	r.users[id] = u
	return u, nil
}
