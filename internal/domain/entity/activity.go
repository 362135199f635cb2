package entity

import "time"

// UserActivity is one append-only audit record of a privileged action.
// Rows are never updated; they disappear only via cascade when the actor
// user is deleted.
type UserActivity struct {
	ID         string
	UserID     string
	Action     string // e.g. create_user, assign_tracking, export_orders
	TargetType string
	TargetID   string
	Details    []byte // JSON payload, optional
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time

	// Joined for listings; empty when the actor was deleted.
	Username string
	UserName string
}
