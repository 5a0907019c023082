package gorm

import (
	"gorm.io/gorm"

	"github.com/ledgepoint/assetd/pkg/model"
	"github.com/ledgepoint/assetd/pkg/server/store"
)

// grantsLockSpace namespaces the per-role advisory lock taken during
// ReplaceAll so it cannot collide with other advisory lock users.
const grantsLockSpace = 7201

// Ensure GrantsStore implements store.GrantsStore
var _ store.GrantsStore = (*GrantsStore)(nil)

// GrantsStore implements store.GrantsStore using GORM
type GrantsStore struct {
	db *gorm.DB
}

// NewGrantsStore creates a new GrantsStore
func NewGrantsStore(db *gorm.DB) *GrantsStore {
	return &GrantsStore{db: db}
}

// AbilitiesForRole returns every (module, action) pair granted to a role.
func (s *GrantsStore) AbilitiesForRole(roleID uint) ([]store.Ability, error) {
	return s.scanAbilities(`
		SELECT r.name AS module, a.code AS action
		FROM grants g
		JOIN resources r ON r.id = g.resource_id
		JOIN actions a ON a.id = g.action_id
		WHERE g.role_id = ?
		ORDER BY r.name, a.code
	`, roleID)
}

// AbilitiesForRoleAndModule restricts AbilitiesForRole to one module.
func (s *GrantsStore) AbilitiesForRoleAndModule(roleID uint, module string) ([]store.Ability, error) {
	return s.scanAbilities(`
		SELECT r.name AS module, a.code AS action
		FROM grants g
		JOIN resources r ON r.id = g.resource_id
		JOIN actions a ON a.id = g.action_id
		WHERE g.role_id = ? AND r.name = ?
		ORDER BY a.code
	`, roleID, module)
}

// ForRole returns the raw grant rows for a role.
func (s *GrantsStore) ForRole(roleID uint) ([]store.Grant, error) {
	type grantRow struct {
		Id         uint
		RoleId     uint
		ResourceId uint
		ActionId   uint
		Conditions []byte
	}

	var rows []grantRow
	err := s.db.Raw(`
		SELECT id, role_id, resource_id, action_id, conditions
		FROM grants
		WHERE role_id = ?
		ORDER BY id
	`, roleID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grants := make([]store.Grant, 0, len(rows))
	for _, row := range rows {
		grants = append(grants, store.Grant{
			ID:         row.Id,
			RoleID:     row.RoleId,
			ResourceID: row.ResourceId,
			ActionID:   row.ActionId,
			Conditions: row.Conditions,
		})
	}
	return grants, nil
}

// ReplaceAll atomically replaces a role's entire grant set. Concurrent
// replaces on the same role serialize on a transaction-scoped advisory
// lock, and any failed insert rolls back to the previous grant set.
func (s *GrantsStore) ReplaceAll(roleID uint, grants []store.Grant, actingUserID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`SELECT pg_advisory_xact_lock(?, ?)`, grantsLockSpace, int64(roleID)).Error; err != nil {
			return err
		}

		if err := tx.Exec(`DELETE FROM grants WHERE role_id = ?`, roleID).Error; err != nil {
			return err
		}

		for _, g := range grants {
			row := model.Grant{
				RoleID:     roleID,
				ResourceID: g.ResourceID,
				ActionID:   g.ActionID,
				Conditions: g.Conditions,
				CreatedBy:  actingUserID,
				UpdatedBy:  actingUserID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteAllForRole removes every grant for a role.
func (s *GrantsStore) DeleteAllForRole(roleID uint) error {
	return s.db.Exec(`DELETE FROM grants WHERE role_id = ?`, roleID).Error
}

func (s *GrantsStore) scanAbilities(query string, args ...interface{}) ([]store.Ability, error) {
	type abilityRow struct {
		Module string
		Action string
	}

	var rows []abilityRow
	if err := s.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	abilities := make([]store.Ability, 0, len(rows))
	for _, row := range rows {
		abilities = append(abilities, store.Ability{Module: row.Module, Action: row.Action})
	}
	return abilities, nil
}
