package store

// Resource describes a protected module from the seeded catalog.
type Resource struct {
	ID          uint
	Name        string
	DisplayName string
	Group       string
}

// Action describes a canonical capability code from the seeded catalog.
type Action struct {
	ID                uint
	Code              string
	DisplayName       string
	RequiresOwnership bool
}

// CatalogStore is the read-only lookup over the seeded resource and action
// catalogs. Lookups by name return nil (not an error) for unknown names;
// write paths treat that as a skippable entry.
type CatalogStore interface {
	// ResourceByName returns the resource with the given stable name, or nil.
	ResourceByName(name string) *Resource

	// ActionByCode returns the action with the given canonical code, or nil.
	ActionByCode(code string) *Action

	// ListResources returns all resources ordered by group then name.
	ListResources() ([]Resource, error)

	// ListActions returns all actions ordered by id.
	ListActions() ([]Action, error)
}
