package domain

import (
	"context"
	"time"
)

// EventRepository is the store the query pipeline reads from and mutations
// write through. Implementations must guarantee creation-order iteration
// from List so that downstream tie-breaks stay deterministic, and must
// provide atomic single-record writes (last-write-wins on update).
type EventRepository interface {
	// List returns every stored event in creation order.
	List(ctx context.Context) ([]Event, error)

	// Get returns the event with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (Event, error)

	// Create stores a fully-populated event. The caller assigns ID and
	// CreatedAt before calling.
	Create(ctx context.Context, event Event) error

	// Update replaces the mutable fields of the stored event with the same
	// ID, or returns ErrNotFound. ID and CreatedAt are never rewritten.
	Update(ctx context.Context, event Event) error

	// Delete removes the event with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// UserRepository stores the accounts the role model applies to.
type UserRepository interface {
	// List returns every user in creation order.
	List(ctx context.Context) ([]User, error)

	// Get returns the user with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (User, error)

	// FindByEmail performs a case-insensitive lookup, or returns ErrNotFound.
	FindByEmail(ctx context.Context, email string) (User, error)

	// UpdateRole assigns a new role to the user with the given id and
	// returns the updated record, or ErrNotFound.
	UpdateRole(ctx context.Context, id string, role Role) (User, error)
}

// SessionRepository maps opaque session ids to user ids for the duration
// of a login. Implementations expire entries after ttl.
type SessionRepository interface {
	Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error

	// Get returns the user id bound to sessionID, or ErrNotFound when the
	// session is unknown or expired.
	Get(ctx context.Context, sessionID string) (string, error)

	Delete(ctx context.Context, sessionID string) error
}
