package repository

import "github.com/termpro2000/fdapp/internal/domain/entity"

// UserFilter narrows user listings.
type UserFilter struct {
	Search string // matches username, name or company
	Role   string
}

// UserRepository is the persistence port for User. Lookups return nil when
// no row matches.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	TouchLastLogin(id string) error
	List(f UserFilter, limit, offset int) ([]*entity.User, error)
	Count(f UserFilter) (int, error)
	Delete(id string) error
}
