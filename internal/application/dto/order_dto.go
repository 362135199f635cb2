package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the 26-field intake form. Any status field a client
// might sneak into the body is ignored; new orders always start 접수완료.
// Dates travel as "YYYY-MM-DD" strings.
type CreateOrderRequest struct {
	SenderName          string `json:"sender_name"`
	SenderPhone         string `json:"sender_phone"`
	SenderEmail         string `json:"sender_email"`
	SenderCompany       string `json:"sender_company"`
	SenderAddress       string `json:"sender_address"`
	SenderDetailAddress string `json:"sender_detail_address"`
	SenderZipcode       string `json:"sender_zipcode"`

	ReceiverName          string `json:"receiver_name"`
	ReceiverPhone         string `json:"receiver_phone"`
	ReceiverEmail         string `json:"receiver_email"`
	ReceiverCompany       string `json:"receiver_company"`
	ReceiverAddress       string `json:"receiver_address"`
	ReceiverDetailAddress string `json:"receiver_detail_address"`
	ReceiverZipcode       string `json:"receiver_zipcode"`

	PackageType        string              `json:"package_type"`
	PackageWeight      decimal.NullDecimal `json:"package_weight"`
	PackageSize        string              `json:"package_size"`
	PackageValue       decimal.NullDecimal `json:"package_value"`
	PackageDescription string              `json:"package_description"`

	DeliveryType string `json:"delivery_type"`
	DeliveryDate string `json:"delivery_date"`
	DeliveryTime string `json:"delivery_time"`
	DeliveryMemo string `json:"delivery_memo"`

	IsFragile           bool                `json:"is_fragile"`
	IsFrozen            bool                `json:"is_frozen"`
	RequiresSignature   bool                `json:"requires_signature"`
	InsuranceAmount     decimal.NullDecimal `json:"insurance_amount"`
	SpecialInstructions string              `json:"special_instructions"`
}

// CreateOrderResponse creation confirmation.
type CreateOrderResponse struct {
	Message        string `json:"message"`
	OrderID        string `json:"orderId"`
	TrackingNumber string `json:"trackingNumber"`
	Status         string `json:"status"`
}

// OrderSummary compact row for listings.
type OrderSummary struct {
	ID             string    `json:"id"`
	TrackingNumber *string   `json:"tracking_number"`
	Status         string    `json:"status"`
	SenderName     string    `json:"sender_name"`
	ReceiverName   string    `json:"receiver_name"`
	PackageType    string    `json:"package_type"`
	DeliveryType   string    `json:"delivery_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OrderListResponse page of orders.
type OrderListResponse struct {
	Orders     []OrderSummary `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

// OrderResponse full order record.
type OrderResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	SenderName          string `json:"sender_name"`
	SenderPhone         string `json:"sender_phone"`
	SenderEmail         string `json:"sender_email,omitempty"`
	SenderCompany       string `json:"sender_company,omitempty"`
	SenderAddress       string `json:"sender_address"`
	SenderDetailAddress string `json:"sender_detail_address,omitempty"`
	SenderZipcode       string `json:"sender_zipcode"`

	ReceiverName          string `json:"receiver_name"`
	ReceiverPhone         string `json:"receiver_phone"`
	ReceiverEmail         string `json:"receiver_email,omitempty"`
	ReceiverCompany       string `json:"receiver_company,omitempty"`
	ReceiverAddress       string `json:"receiver_address"`
	ReceiverDetailAddress string `json:"receiver_detail_address,omitempty"`
	ReceiverZipcode       string `json:"receiver_zipcode"`

	PackageType        string              `json:"package_type"`
	PackageWeight      decimal.NullDecimal `json:"package_weight"`
	PackageSize        string              `json:"package_size,omitempty"`
	PackageValue       decimal.NullDecimal `json:"package_value"`
	PackageDescription string              `json:"package_description,omitempty"`

	DeliveryType string     `json:"delivery_type"`
	DeliveryDate *time.Time `json:"delivery_date"`
	DeliveryTime string     `json:"delivery_time,omitempty"`
	DeliveryMemo string     `json:"delivery_memo,omitempty"`

	IsFragile           bool            `json:"is_fragile"`
	IsFrozen            bool            `json:"is_frozen"`
	RequiresSignature   bool            `json:"requires_signature"`
	InsuranceAmount     decimal.Decimal `json:"insurance_amount"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`

	Status            string     `json:"status"`
	TrackingNumber    *string    `json:"tracking_number"`
	TrackingCompany   string     `json:"tracking_company,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// UpdateStatusRequest manager/admin status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse confirmation plus the refreshed order.
type UpdateStatusResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

// AssignTrackingRequest manager/admin waybill assignment.
type AssignTrackingRequest struct {
	TrackingNumber    string `json:"tracking_number"`
	TrackingCompany   string `json:"tracking_company"`
	EstimatedDelivery string `json:"estimated_delivery"` // YYYY-MM-DD
}

// AssignTrackingResponse confirmation.
type AssignTrackingResponse struct {
	Message        string `json:"message"`
	TrackingNumber string `json:"tracking_number"`
}
