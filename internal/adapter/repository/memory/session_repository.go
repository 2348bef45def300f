package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

// SessionRepository is an in-memory domain.SessionRepository with lazy
// expiry: entries are dropped when read after their deadline.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

func NewSessionRepository(now func() time.Time) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]sessionEntry),
		now:      now,
	}
}

func (r *SessionRepository) Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = sessionEntry{
		userID:    userID,
		expiresAt: r.now().Add(ttl),
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		return "", domain.ErrNotFound
	}
	if r.now().After(entry.expiresAt) {
		delete(r.sessions, sessionID)
		return "", domain.ErrNotFound
	}
	return entry.userID, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}
