package gorm

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ledgepoint/assetd/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

type userRow struct {
	Id           uint
	Email        string
	Name         string
	RoleId       uint
	Active       bool
	PasswordHash []byte
}

// FetchUser retrieves a user by id, or nil
func (s *UsersStore) FetchUser(userID uint) *store.User {
	return s.fetch(`SELECT id, email, name, role_id, active FROM users WHERE id = ?`, userID)
}

// FetchUserByEmail retrieves a user by email, or nil
func (s *UsersStore) FetchUserByEmail(email string) *store.User {
	return s.fetch(`SELECT id, email, name, role_id, active FROM users WHERE email = ?`, email)
}

// VerifyPassword checks a user's password, returning the user on success.
// Inactive accounts never verify.
func (s *UsersStore) VerifyPassword(email, password string) *store.User {
	var rows []userRow
	s.db.Raw(`
		SELECT id, email, name, role_id, active, password_hash
		FROM users
		WHERE email = ?
	`, email).Scan(&rows)
	if len(rows) == 0 {
		return nil
	}

	row := rows[0]
	if !row.Active {
		return nil
	}
	if bcrypt.CompareHashAndPassword(row.PasswordHash, []byte(password)) != nil {
		return nil
	}

	return &store.User{ID: row.Id, Email: row.Email, Name: row.Name, RoleID: row.RoleId, Active: row.Active}
}

func (s *UsersStore) fetch(query string, args ...interface{}) *store.User {
	var rows []userRow
	s.db.Raw(query, args...).Scan(&rows)
	if len(rows) == 0 {
		return nil
	}
	row := rows[0]
	return &store.User{ID: row.Id, Email: row.Email, Name: row.Name, RoleID: row.RoleId, Active: row.Active}
}
