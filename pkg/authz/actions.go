package authz

// Canonical action codes.
const (
	ActionCreate    = "C"
	ActionView      = "V"
	ActionViewOwn   = "VO"
	ActionEdit      = "E"
	ActionEditOwn   = "EO"
	ActionDelete    = "D"
	ActionDeleteOwn = "DO"
)

// ownVariant maps each broad action code to its ownership-scoped variant.
// Only broad codes are ever declared as requirements; a broad requirement
// is satisfied by its own-variant, never the reverse.
var ownVariant = map[string]string{
	ActionView:   ActionViewOwn,
	ActionEdit:   ActionEditOwn,
	ActionDelete: ActionDeleteOwn,
}

// OwnVariant returns the ownership-scoped variant of a broad action code,
// or "" when the code has none (C has no own-variant).
func OwnVariant(action string) string {
	return ownVariant[action]
}
