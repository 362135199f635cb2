package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipping statuses. The Korean labels are the canonical wire and storage
// values; they come straight from the legacy schema and the frontend depends
// on them.
const (
	StatusReceived  = "접수완료" // initial, set at creation
	StatusPreparing = "배송준비"
	StatusInTransit = "배송중"
	StatusDelivered = "배송완료"
	StatusCancelled = "취소"
	StatusReturned  = "반송"
)

// Defaults applied when the intake form leaves the field empty.
const (
	DefaultPackageType  = "소포" // standard parcel
	DefaultDeliveryType = "일반" // standard delivery
)

// statusLadder is the forward delivery progression. Cancelled and returned
// sit outside the ladder; they are alternate terminal states.
var statusLadder = []string{StatusReceived, StatusPreparing, StatusInTransit, StatusDelivered}

var validStatuses = map[string]bool{
	StatusReceived:  true,
	StatusPreparing: true,
	StatusInTransit: true,
	StatusDelivered: true,
	StatusCancelled: true,
	StatusReturned:  true,
}

// IsValidStatus reports whether s is one of the six enumerated statuses.
func IsValidStatus(s string) bool {
	return validStatuses[s]
}

// IsTerminalStatus reports whether s accepts no further transition.
func IsTerminalStatus(s string) bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusReturned
}

// StatusRank returns the position of s on the delivery ladder, or -1 for
// statuses outside it (취소, 반송, unknown).
func StatusRank(s string) int {
	for i, v := range statusLadder {
		if v == s {
			return i
		}
	}
	return -1
}

// StatusLadder returns the forward progression 접수완료 → 배송완료.
func StatusLadder() []string {
	out := make([]string, len(statusLadder))
	copy(out, statusLadder)
	return out
}

// ShippingOrder is one intake form: 26 user-entered fields plus the system
// fields owned by the lifecycle engine (status, tracking, timestamps).
type ShippingOrder struct {
	ID     string
	UserID string

	// Sender
	SenderName          string
	SenderPhone         string
	SenderEmail         string
	SenderCompany       string
	SenderAddress       string
	SenderDetailAddress string
	SenderZipcode       string

	// Receiver
	ReceiverName          string
	ReceiverPhone         string
	ReceiverEmail         string
	ReceiverCompany       string
	ReceiverAddress       string
	ReceiverDetailAddress string
	ReceiverZipcode       string

	// Package
	PackageType        string
	PackageWeight      decimal.NullDecimal // kg
	PackageSize        string
	PackageValue       decimal.NullDecimal
	PackageDescription string

	// Delivery
	DeliveryType string
	DeliveryDate *time.Time
	DeliveryTime string
	DeliveryMemo string

	// Options
	IsFragile           bool
	IsFrozen            bool
	RequiresSignature   bool
	InsuranceAmount     decimal.Decimal
	SpecialInstructions string

	// System fields; written only by the lifecycle engine.
	Status            string
	TrackingNumber    *string // globally unique once set
	TrackingCompany   string
	EstimatedDelivery *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReceiverFullAddress joins address and detail address for public display.
func (o *ShippingOrder) ReceiverFullAddress() string {
	if o.ReceiverDetailAddress == "" {
		return o.ReceiverAddress
	}
	return o.ReceiverAddress + " " + o.ReceiverDetailAddress
}

// TrackingEvent is one entry of the derived status-history projection. The
// system stores no transition log, so every non-initial entry carries the
// order's updated_at; keep it that way.
type TrackingEvent struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}
