package entity

import (
	"time"
)

// Role restricts what operations a user may perform.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the aggregate root for the user domain.
// PasswordHash holds a bcrypt digest and must never be serialized to clients.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Age          *int
	Role         Role
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns the client-facing representation of the user.
// The password hash is always excluded.
func (u *User) Public() map[string]any {
	out := map[string]any{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"role":      u.Role,
		"isActive":  u.IsActive,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
	if u.Age != nil {
		out["age"] = *u.Age
	}
	if u.LastLogin != nil {
		out["lastLogin"] = *u.LastLogin
	}
	return out
}

// Project returns the public representation limited to the given fields.
// An empty field list means the full public record.
func (u *User) Project(fields []string) map[string]any {
	pub := u.Public()
	if len(fields) == 0 {
		return pub
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := pub[f]; ok {
			out[f] = v
		}
	}
	return out
}
