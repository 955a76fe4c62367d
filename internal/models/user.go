package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleUser    UserRole = "user"
)

type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	// Persisted in the data file, stripped from API responses.
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Sanitized returns a copy safe to serialize in a response.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// UserCreate is the POST /users body. Password is write-only: it is hashed
// into the stored record and never echoed back.
type UserCreate struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	Password string   `json:"password"`
}

type UserPatch struct {
	Name     *string   `json:"name"`
	Email    *string   `json:"email"`
	Role     *UserRole `json:"role"`
	Password *string   `json:"password"`
}

// Apply merges everything except the password, which needs hashing and is
// handled by the service.
func (up UserPatch) Apply(u *User) {
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.Email != nil {
		u.Email = *up.Email
	}
	if up.Role != nil {
		u.Role = *up.Role
	}
}
