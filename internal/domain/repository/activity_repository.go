package repository

import "github.com/termpro2000/fdapp/internal/domain/entity"

// ActivityFilter narrows activity-log listings.
type ActivityFilter struct {
	UserID string
	Action string
}

// ActivityRepository is the persistence port for the append-only audit trail.
type ActivityRepository interface {
	Create(a *entity.UserActivity) error
	List(f ActivityFilter, limit, offset int) ([]*entity.UserActivity, error)
	Count(f ActivityFilter) (int, error)
}
