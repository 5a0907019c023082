package store

// User is an account identity carrying a role.
type User struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	RoleID uint   `json:"role_id"`
	Active bool   `json:"active"`
}

// UsersStore abstracts account storage.
type UsersStore interface {
	// FetchUser retrieves a user by id, or nil.
	FetchUser(userID uint) *User

	// FetchUserByEmail retrieves a user by email, or nil.
	FetchUserByEmail(email string) *User

	// VerifyPassword checks a user's password, returning the user on success.
	VerifyPassword(email, password string) *User
}
