package gorm

import (
	"gorm.io/gorm"

	"github.com/ledgepoint/assetd/pkg/server/store"
)

// Ensure CatalogStore implements store.CatalogStore
var _ store.CatalogStore = (*CatalogStore)(nil)

// CatalogStore implements store.CatalogStore using GORM
type CatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore creates a new CatalogStore
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

type resourceRow struct {
	Id          uint
	Name        string
	DisplayName string
	GroupName   string
}

type actionRow struct {
	Id                uint
	Code              string
	DisplayName       string
	RequiresOwnership bool
}

// ResourceByName returns the resource with the given stable name, or nil.
func (s *CatalogStore) ResourceByName(name string) *store.Resource {
	var rows []resourceRow
	s.db.Raw(`
		SELECT id, name, display_name, group_name
		FROM resources
		WHERE name = ?
	`, name).Scan(&rows)
	if len(rows) == 0 {
		return nil
	}
	r := rows[0]
	return &store.Resource{ID: r.Id, Name: r.Name, DisplayName: r.DisplayName, Group: r.GroupName}
}

// ActionByCode returns the action with the given canonical code, or nil.
func (s *CatalogStore) ActionByCode(code string) *store.Action {
	var rows []actionRow
	s.db.Raw(`
		SELECT id, code, display_name, requires_ownership
		FROM actions
		WHERE code = ?
	`, code).Scan(&rows)
	if len(rows) == 0 {
		return nil
	}
	a := rows[0]
	return &store.Action{ID: a.Id, Code: a.Code, DisplayName: a.DisplayName, RequiresOwnership: a.RequiresOwnership}
}

// ListResources returns all resources ordered by group then name.
func (s *CatalogStore) ListResources() ([]store.Resource, error) {
	var rows []resourceRow
	err := s.db.Raw(`
		SELECT id, name, display_name, group_name
		FROM resources
		ORDER BY group_name, name
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	resources := make([]store.Resource, 0, len(rows))
	for _, r := range rows {
		resources = append(resources, store.Resource{
			ID:          r.Id,
			Name:        r.Name,
			DisplayName: r.DisplayName,
			Group:       r.GroupName,
		})
	}
	return resources, nil
}

// ListActions returns all actions ordered by id.
func (s *CatalogStore) ListActions() ([]store.Action, error) {
	var rows []actionRow
	err := s.db.Raw(`
		SELECT id, code, display_name, requires_ownership
		FROM actions
		ORDER BY id
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	actions := make([]store.Action, 0, len(rows))
	for _, a := range rows {
		actions = append(actions, store.Action{
			ID:                a.Id,
			Code:              a.Code,
			DisplayName:       a.DisplayName,
			RequiresOwnership: a.RequiresOwnership,
		})
	}
	return actions, nil
}
