package store

import "errors"

// Role is a named permission profile.
type Role struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

var (
	// ErrRoleNotFound is returned by commands that require an existing role.
	ErrRoleNotFound = errors.New("role not found")

	// ErrRoleExists is returned when creating a role with a taken name.
	ErrRoleExists = errors.New("role name already taken")
)

// RolesStore abstracts role identity storage.
type RolesStore interface {
	// RoleExists checks if a role exists.
	RoleExists(roleID uint) bool

	// FetchRole retrieves a role, or nil if it does not exist.
	FetchRole(roleID uint) *Role

	// ListRoles returns all roles ordered by name.
	ListRoles() ([]Role, error)

	// CreateRole creates a role with the given unique name.
	CreateRole(name string, actingUserID uint) (*Role, error)

	// UpdateRole renames or (de)activates a role.
	UpdateRole(roleID uint, name string, active bool, actingUserID uint) error

	// DeleteRole removes a role and its grants. It does not check for
	// dependent user accounts; callers that need that guard ask
	// CountUsersWithRole first.
	DeleteRole(roleID uint) error

	// CountUsersWithRole counts accounts referencing a role.
	CountUsersWithRole(roleID uint) int
}
