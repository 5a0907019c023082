package filter

// OwnerField names a column consulted by ownership scoping. Array fields
// hold multiple owner ids (e.g. an assigned-user list) and are matched with
// array membership instead of equality.
type OwnerField struct {
	Column string
	Array  bool
}

// OwnershipScope carries the already-resolved read-scope decision for a
// principal. The filter has no knowledge of roles or grants; callers ask the
// permission resolver for ViewAll first.
type OwnershipScope struct {
	UserID  uint
	ViewAll bool
}

// DefaultOwnerFields is the owner column set used when a caller does not
// name its own.
var DefaultOwnerFields = []OwnerField{{Column: "created_by"}}

// ApplyOwnership narrows base to rows owned by the principal unless the
// scope grants view-all, in which case base is returned unchanged.
func ApplyOwnership(base Predicate, scope OwnershipScope, ownerFields ...OwnerField) Predicate {
	if scope.ViewAll {
		return base
	}
	if len(ownerFields) == 0 {
		ownerFields = DefaultOwnerFields
	}

	owned := make([]Predicate, 0, len(ownerFields))
	for _, f := range ownerFields {
		if f.Array {
			owned = append(owned, Contains(f.Column, scope.UserID))
			continue
		}
		owned = append(owned, Eq(f.Column, scope.UserID))
	}

	return And(base, Or(owned...))
}
