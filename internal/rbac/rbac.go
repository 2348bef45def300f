package rbac

import (
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// Permission is a named capability a role may hold.
type Permission string

const (
	EventsRead      Permission = "events:read"
	EventsCreate    Permission = "events:create"
	EventsUpdate    Permission = "events:update"
	EventsDelete    Permission = "events:delete"
	UsersRead       Permission = "users:read"
	UsersUpdateRole Permission = "users:updateRole"
)

// Permissions lists every known permission.
var Permissions = []Permission{
	EventsRead,
	EventsCreate,
	EventsUpdate,
	EventsDelete,
	UsersRead,
	UsersUpdateRole,
}

// rolePermissions is the single source of truth for the role model.
// There is no escalation path outside this table. Admin covers everything;
// only Admin holds the users:* permissions.
var rolePermissions = map[domain.Role][]Permission{
	domain.RoleAdmin: {
		EventsRead,
		EventsCreate,
		EventsUpdate,
		EventsDelete,
		UsersRead,
		UsersUpdateRole,
	},
	domain.RoleAnalyst: {EventsRead, EventsCreate, EventsUpdate},
	domain.RoleViewer:  {EventsRead},
}

// IsAllowed reports whether the role holds the permission. It is total
// over both domains: unknown roles or permissions are simply denied.
func IsAllowed(role domain.Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// Require gates an operation on the caller's identity. A nil caller yields
// ErrUnauthenticated; a caller whose role lacks the permission yields
// ErrForbidden. On success it returns nil with no side effect.
func Require(caller *domain.User, permission Permission) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if !IsAllowed(caller.Role, permission) {
		return domain.ErrForbidden
	}
	return nil
}
