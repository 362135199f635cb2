package dto

import (
	"encoding/json"
	"time"
)

// CreateUserRequest admin-side account creation.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Role     string `json:"role"`
}

// UpdateUserRequest partial update. Nil means "leave unchanged"; role and
// is_active are applied only for admin callers.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password"`
}

// UserListRequest listing filters.
type UserListRequest struct {
	PageRequest
	Search string `query:"search"`
	Role   string `query:"role"`
}

// UserListResponse page of users.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

// ActivityEntry one audit record with the actor joined in.
type ActivityEntry struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	TargetType string          `json:"target_type,omitempty"`
	TargetID   string          `json:"target_id,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	IPAddress  string          `json:"ip_address,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Username   string          `json:"username,omitempty"`
	UserName   string          `json:"user_name,omitempty"`
}

// ActivityListRequest listing filters.
type ActivityListRequest struct {
	PageRequest
	UserID string `query:"user_id"`
	Action string `query:"action"`
}

// ActivityListResponse page of audit records.
type ActivityListResponse struct {
	Activities []ActivityEntry `json:"activities"`
	Pagination Pagination      `json:"pagination"`
}
