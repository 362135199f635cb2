package entity

import "time"

// Valid roles for User. The ladder is total: admin > manager > user.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

var roleRank = map[string]int{
	RoleUser:    1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// IsValidRole reports whether role is one of the three known roles.
func IsValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// RoleAtLeast reports whether role sits at or above required on the ladder.
// Unknown roles never qualify.
func RoleAtLeast(role, required string) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	req, ok := roleRank[required]
	if !ok {
		return false
	}
	return r >= req
}

// User is an account in the system.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, never plaintext past registration
	Name         string
	Phone        string
	Company      string
	Role         string // admin, manager, user
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
