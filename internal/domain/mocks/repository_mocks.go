package mocks

import (
	"context"
	"strings"
	"time"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// MockEventRepository is an in-process double for domain.EventRepository.
// Events holds the collection in creation order; the error fields force
// failures per method.
type MockEventRepository struct {
	Events []domain.Event

	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error

	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

func (m *MockEventRepository) List(ctx context.Context) ([]domain.Event, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]domain.Event, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Clone()
	}
	return out, nil
}

func (m *MockEventRepository) Get(ctx context.Context, id string) (domain.Event, error) {
	if m.GetErr != nil {
		return domain.Event{}, m.GetErr
	}
	for _, e := range m.Events {
		if e.ID == id {
			return e.Clone(), nil
		}
	}
	return domain.Event{}, domain.ErrNotFound
}

func (m *MockEventRepository) Create(ctx context.Context, event domain.Event) error {
	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Events = append(m.Events, event.Clone())
	return nil
}

func (m *MockEventRepository) Update(ctx context.Context, event domain.Event) error {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, e := range m.Events {
		if e.ID == event.ID {
			m.Events[i] = event.Clone()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) error {
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, e := range m.Events {
		if e.ID == id {
			m.Events = append(m.Events[:i], m.Events[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockUserRepository is an in-process double for domain.UserRepository.
type MockUserRepository struct {
	Users []domain.User

	ListErr       error
	GetErr        error
	FindErr       error
	UpdateRoleErr error
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]domain.User(nil), m.Users...), nil
}

func (m *MockUserRepository) Get(ctx context.Context, id string) (domain.User, error) {
	if m.GetErr != nil {
		return domain.User{}, m.GetErr
	}
	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.FindErr != nil {
		return domain.User{}, m.FindErr
	}
	for _, u := range m.Users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (domain.User, error) {
	if m.UpdateRoleErr != nil {
		return domain.User{}, m.UpdateRoleErr
	}
	for i, u := range m.Users {
		if u.ID == id {
			m.Users[i].Role = role
			return m.Users[i], nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

// MockSessionRepository is an in-process double for domain.SessionRepository.
type MockSessionRepository struct {
	Sessions map[string]string

	CreateErr error
	GetErr    error
	DeleteErr error
}

func (m *MockSessionRepository) Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if m.Sessions == nil {
		m.Sessions = make(map[string]string)
	}
	m.Sessions[sessionID] = userID
	return nil
}

func (m *MockSessionRepository) Get(ctx context.Context, sessionID string) (string, error) {
	if m.GetErr != nil {
		return "", m.GetErr
	}
	userID, ok := m.Sessions[sessionID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return userID, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Sessions, sessionID)
	return nil
}
