package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/termpro2000/fdapp/internal/domain/entity"
)

// TrackingOrderInfo is the restricted order view exposed on the public
// tracking endpoint: recipient address only as a combined string, no owner
// identity, no internal ids.
type TrackingOrderInfo struct {
	SenderName       string              `json:"senderName"`
	RecipientName    string              `json:"recipientName"`
	RecipientAddress string              `json:"recipientAddress"`
	ProductName      string              `json:"productName,omitempty"`
	Weight           decimal.NullDecimal `json:"weight"`
	Value            decimal.NullDecimal `json:"value"`
}

// TrackingResponse public tracking lookup result. StatusHistory is a derived
// projection, not a stored log.
type TrackingResponse struct {
	TrackingNumber    string                 `json:"trackingNumber"`
	CurrentStatus     string                 `json:"currentStatus"`
	TrackingCompany   string                 `json:"trackingCompany,omitempty"`
	EstimatedDelivery *time.Time             `json:"estimatedDelivery"`
	OrderInfo         TrackingOrderInfo      `json:"orderInfo"`
	StatusHistory     []entity.TrackingEvent `json:"statusHistory"`
}
