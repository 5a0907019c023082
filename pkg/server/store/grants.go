package store

// Ability is one resolved (module, action) pair for a role.
type Ability struct {
	Module string `json:"module"`
	Action string `json:"action"`
}

// Grant is one (role, resource, action) authorization fact.
type Grant struct {
	ID         uint
	RoleID     uint
	ResourceID uint
	ActionID   uint
	Conditions []byte
}

// GrantsStore abstracts grant storage. Ability queries join grants with the
// catalog so callers never see raw ids; they return empty slices for unknown
// roles rather than errors.
type GrantsStore interface {
	// AbilitiesForRole returns every (module, action) pair granted to a role.
	// Duplicate grants may yield duplicate pairs; the resolver deduplicates.
	AbilitiesForRole(roleID uint) ([]Ability, error)

	// AbilitiesForRoleAndModule restricts AbilitiesForRole to one module.
	AbilitiesForRoleAndModule(roleID uint, module string) ([]Ability, error)

	// ForRole returns the raw grant rows for a role.
	ForRole(roleID uint) ([]Grant, error)

	// ReplaceAll atomically replaces a role's entire grant set. The delete
	// and inserts run in one transaction serialized per role, so concurrent
	// replaces cannot interleave and a failed insert leaves the previous
	// grant set intact.
	ReplaceAll(roleID uint, grants []Grant, actingUserID uint) error

	// DeleteAllForRole removes every grant for a role.
	DeleteAllForRole(roleID uint) error
}
