package repository

import (
	"time"

	"github.com/termpro2000/fdapp/internal/domain/entity"
)

// OrderFilter narrows order listings and exports. Zero values mean "no
// constraint"; UserID set scopes to one owner.
type OrderFilter struct {
	UserID    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// OrderRepository is the persistence port for ShippingOrder. The lifecycle
// engine is the only writer of status, tracking_number, tracking_company and
// estimated_delivery. Lookups return nil when no row matches.
type OrderRepository interface {
	Create(order *entity.ShippingOrder) error
	GetByID(id string) (*entity.ShippingOrder, error)
	GetByTrackingNumber(trackingNumber string) (*entity.ShippingOrder, error)
	List(f OrderFilter, limit, offset int) ([]*entity.ShippingOrder, error)
	Count(f OrderFilter) (int, error)

	// UpdateStatus sets status and refreshes updated_at.
	UpdateStatus(id, status string) error

	// AssignTracking sets the tracking fields, forces status to 배송준비 and
	// refreshes updated_at. The unique index on tracking_number is the
	// authoritative duplicate guard; a violation surfaces as
	// domain.ErrDuplicateTracking.
	AssignTracking(id, trackingNumber, trackingCompany string, estimatedDelivery *time.Time) error
}
