package gorm

import (
	"gorm.io/gorm"

	"github.com/ledgepoint/assetd/pkg/model"
	"github.com/ledgepoint/assetd/pkg/server/store"
)

// Ensure RolesStore implements store.RolesStore
var _ store.RolesStore = (*RolesStore)(nil)

// RolesStore implements store.RolesStore using GORM
type RolesStore struct {
	db *gorm.DB
}

// NewRolesStore creates a new RolesStore
func NewRolesStore(db *gorm.DB) *RolesStore {
	return &RolesStore{db: db}
}

type roleRow struct {
	Id     uint
	Name   string
	Active bool
}

// RoleExists checks if a role exists
func (s *RolesStore) RoleExists(roleID uint) bool {
	var exists bool
	s.db.Raw(`SELECT EXISTS(SELECT 1 FROM roles WHERE id = ?)`, roleID).Scan(&exists)
	return exists
}

// FetchRole retrieves a role, or nil if it does not exist
func (s *RolesStore) FetchRole(roleID uint) *store.Role {
	var rows []roleRow
	s.db.Raw(`SELECT id, name, active FROM roles WHERE id = ?`, roleID).Scan(&rows)
	if len(rows) == 0 {
		return nil
	}
	r := rows[0]
	return &store.Role{ID: r.Id, Name: r.Name, Active: r.Active}
}

// ListRoles returns all roles ordered by name
func (s *RolesStore) ListRoles() ([]store.Role, error) {
	var rows []roleRow
	err := s.db.Raw(`SELECT id, name, active FROM roles ORDER BY name`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	roles := make([]store.Role, 0, len(rows))
	for _, r := range rows {
		roles = append(roles, store.Role{ID: r.Id, Name: r.Name, Active: r.Active})
	}
	return roles, nil
}

// CreateRole creates a role with the given unique name
func (s *RolesStore) CreateRole(name string, actingUserID uint) (*store.Role, error) {
	var taken bool
	s.db.Raw(`SELECT EXISTS(SELECT 1 FROM roles WHERE name = ?)`, name).Scan(&taken)
	if taken {
		return nil, store.ErrRoleExists
	}

	row := model.Role{Name: name, Active: true, CreatedBy: actingUserID, UpdatedBy: actingUserID}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &store.Role{ID: row.ID, Name: row.Name, Active: row.Active}, nil
}

// UpdateRole renames or (de)activates a role
func (s *RolesStore) UpdateRole(roleID uint, name string, active bool, actingUserID uint) error {
	if !s.RoleExists(roleID) {
		return store.ErrRoleNotFound
	}

	var taken bool
	s.db.Raw(`SELECT EXISTS(SELECT 1 FROM roles WHERE name = ? AND id <> ?)`, name, roleID).Scan(&taken)
	if taken {
		return store.ErrRoleExists
	}

	return s.db.Exec(`
		UPDATE roles SET name = ?, active = ?, updated_by = ?, updated_at = now()
		WHERE id = ?
	`, name, active, actingUserID, roleID).Error
}

// DeleteRole removes a role and its grants. It does not check for dependent
// user accounts.
func (s *RolesStore) DeleteRole(roleID uint) error {
	if !s.RoleExists(roleID) {
		return store.ErrRoleNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM grants WHERE role_id = ?`, roleID).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM roles WHERE id = ?`, roleID).Error
	})
}

// CountUsersWithRole counts accounts referencing a role
func (s *RolesStore) CountUsersWithRole(roleID uint) int {
	var count int
	s.db.Raw(`SELECT COUNT(*) FROM users WHERE role_id = ?`, roleID).Scan(&count)
	return count
}
