package shipping

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/domain"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
)

// How often Create retries generation after a tracking-number collision
// before giving up with a conflict.
const trackingCreateAttempts = 3

// ShippingUseCase is the order lifecycle engine: intake, listing, status
// transitions, tracking assignment and the public tracking projection. It is
// the only writer of the order system fields.
type ShippingUseCase struct {
	orders   repository.OrderRepository
	activity ActivityRecorder
	waybill  WaybillGenerator
}

// NewShippingUseCase builds the engine. waybill may be nil in contexts that
// never print (tests).
func NewShippingUseCase(orders repository.OrderRepository, activity ActivityRecorder, waybill WaybillGenerator) *ShippingUseCase {
	return &ShippingUseCase{orders: orders, activity: activity, waybill: waybill}
}

// Create registers a new shipping order for the caller. Status always starts
// 접수완료 no matter what the request carried, and a tracking number is
// generated on the spot.
func (uc *ShippingUseCase) Create(actor domain.Identity, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if missing := missingRequiredFields(in); len(missing) > 0 {
		return nil, fmt.Errorf("%w: 필수 필드가 누락되었습니다: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	deliveryDate, err := parseDate(in.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: delivery_date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	now := time.Now()
	order := &entity.ShippingOrder{
		ID:     uuid.New().String(),
		UserID: actor.UserID,

		SenderName:          in.SenderName,
		SenderPhone:         in.SenderPhone,
		SenderEmail:         in.SenderEmail,
		SenderCompany:       in.SenderCompany,
		SenderAddress:       in.SenderAddress,
		SenderDetailAddress: in.SenderDetailAddress,
		SenderZipcode:       in.SenderZipcode,

		ReceiverName:          in.ReceiverName,
		ReceiverPhone:         in.ReceiverPhone,
		ReceiverEmail:         in.ReceiverEmail,
		ReceiverCompany:       in.ReceiverCompany,
		ReceiverAddress:       in.ReceiverAddress,
		ReceiverDetailAddress: in.ReceiverDetailAddress,
		ReceiverZipcode:       in.ReceiverZipcode,

		PackageType:        defaultString(in.PackageType, entity.DefaultPackageType),
		PackageWeight:      in.PackageWeight,
		PackageSize:        in.PackageSize,
		PackageValue:       in.PackageValue,
		PackageDescription: in.PackageDescription,

		DeliveryType: defaultString(in.DeliveryType, entity.DefaultDeliveryType),
		DeliveryDate: deliveryDate,
		DeliveryTime: in.DeliveryTime,
		DeliveryMemo: in.DeliveryMemo,

		IsFragile:           in.IsFragile,
		IsFrozen:            in.IsFrozen,
		RequiresSignature:   in.RequiresSignature,
		InsuranceAmount:     insuranceOrZero(in.InsuranceAmount),
		SpecialInstructions: in.SpecialInstructions,

		Status:    entity.StatusReceived,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The existence check lives in the unique index: insert, and regenerate
	// only if the constraint fires.
	var createErr error
	for attempt := 0; attempt < trackingCreateAttempts; attempt++ {
		tn := NewTrackingNumber(now)
		order.TrackingNumber = &tn
		createErr = uc.orders.Create(order)
		if createErr == nil || !errors.Is(createErr, domain.ErrDuplicateTracking) {
			break
		}
	}
	if createErr != nil {
		return nil, createErr
	}

	return &dto.CreateOrderResponse{
		Message:        "배송 접수가 완료되었습니다.",
		OrderID:        order.ID,
		TrackingNumber: *order.TrackingNumber,
		Status:         order.Status,
	}, nil
}

// List returns a page of orders, newest first. user-role callers see only
// their own; manager and admin see everything.
func (uc *ShippingUseCase) List(actor domain.Identity, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	page.Normalize(10)

	f := repository.OrderFilter{}
	if !entity.RoleAtLeast(actor.Role, entity.RoleManager) {
		f.UserID = actor.UserID
	}

	total, err := uc.orders.Count(f)
	if err != nil {
		return nil, err
	}
	orders, err := uc.orders.List(f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	out := make([]dto.OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.OrderSummary{
			ID:             o.ID,
			TrackingNumber: o.TrackingNumber,
			Status:         o.Status,
			SenderName:     o.SenderName,
			ReceiverName:   o.ReceiverName,
			PackageType:    o.PackageType,
			DeliveryType:   o.DeliveryType,
			CreatedAt:      o.CreatedAt,
			UpdatedAt:      o.UpdatedAt,
		})
	}
	return &dto.OrderListResponse{
		Orders:     out,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// Get returns one order. For user-role callers an ownership mismatch is
// reported as not-found, deliberately indistinguishable from a missing id.
func (uc *ShippingUseCase) Get(actor domain.Identity, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.visibleOrder(actor, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// UpdateStatus transitions an order (manager and admin only; no ownership
// check, operations are centralized). Re-sending the current status is a
// no-op that refreshes updated_at; moving a terminal order to a different
// status is rejected.
func (uc *ShippingUseCase) UpdateStatus(actor domain.Identity, orderID string, in dto.UpdateStatusRequest, meta dto.RequestMeta) (*dto.UpdateStatusResponse, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if !entity.RoleAtLeast(actor.Role, entity.RoleManager) {
		return nil, domain.ErrForbidden
	}
	if !entity.IsValidStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}

	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != in.Status && entity.IsTerminalStatus(order.Status) {
		return nil, domain.ErrTerminalStatus
	}

	if err := uc.orders.UpdateStatus(orderID, in.Status); err != nil {
		return nil, err
	}
	updated, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}

	uc.activity.Record(actor.UserID, "update_status", "shipping_order", orderID, map[string]any{
		"from": order.Status,
		"to":   in.Status,
	}, meta)

	return &dto.UpdateStatusResponse{
		Message: "주문 상태가 성공적으로 업데이트되었습니다.",
		Order:   *toOrderResponse(updated),
	}, nil
}

// AssignTracking sets the tracking fields (manager and admin only) and forces
// the status to 배송준비 regardless of what it was; assignment means the
// parcel is back in preparation, even after a terminal status.
func (uc *ShippingUseCase) AssignTracking(actor domain.Identity, orderID string, in dto.AssignTrackingRequest, meta dto.RequestMeta) (*dto.AssignTrackingResponse, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if !entity.RoleAtLeast(actor.Role, entity.RoleManager) {
		return nil, domain.ErrForbidden
	}
	if in.TrackingNumber == "" {
		return nil, fmt.Errorf("%w: 운송장 번호가 필요합니다", domain.ErrInvalidInput)
	}
	estimated, err := parseDate(in.EstimatedDelivery)
	if err != nil {
		return nil, fmt.Errorf("%w: estimated_delivery must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	// Re-assigning an order its own number is allowed; the repository's
	// duplicate check excludes the row itself and the unique index fires
	// only for a different order.
	if err := uc.orders.AssignTracking(orderID, in.TrackingNumber, in.TrackingCompany, estimated); err != nil {
		return nil, err
	}

	uc.activity.Record(actor.UserID, "assign_tracking", "shipping_order", orderID, map[string]any{
		"tracking_number":    in.TrackingNumber,
		"tracking_company":   in.TrackingCompany,
		"estimated_delivery": in.EstimatedDelivery,
	}, meta)

	return &dto.AssignTrackingResponse{
		Message:        "운송장 번호가 성공적으로 할당되었습니다.",
		TrackingNumber: in.TrackingNumber,
	}, nil
}

// Track is the public lookup: no authentication, restricted field set, and a
// status history derived from the ladder position.
func (uc *ShippingUseCase) Track(trackingNumber string) (*dto.TrackingResponse, error) {
	if trackingNumber == "" {
		return nil, fmt.Errorf("%w: 운송장 번호가 필요합니다", domain.ErrInvalidInput)
	}
	order, err := uc.orders.GetByTrackingNumber(trackingNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	return &dto.TrackingResponse{
		TrackingNumber:    trackingNumber,
		CurrentStatus:     order.Status,
		TrackingCompany:   order.TrackingCompany,
		EstimatedDelivery: order.EstimatedDelivery,
		OrderInfo: dto.TrackingOrderInfo{
			SenderName:       order.SenderName,
			RecipientName:    order.ReceiverName,
			RecipientAddress: order.ReceiverFullAddress(),
			ProductName:      order.PackageDescription,
			Weight:           order.PackageWeight,
			Value:            order.PackageValue,
		},
		StatusHistory: buildStatusHistory(order),
	}, nil
}

// Waybill renders the printable waybill PDF, with the same visibility rules
// as Get.
func (uc *ShippingUseCase) Waybill(actor domain.Identity, orderID string) (*dto.ExportFile, error) {
	order, err := uc.visibleOrder(actor, orderID)
	if err != nil {
		return nil, err
	}
	data, err := uc.waybill.GenerateWaybill(order)
	if err != nil {
		return nil, err
	}
	name := "waybill_" + order.ID + ".pdf"
	if order.TrackingNumber != nil {
		name = "waybill_" + *order.TrackingNumber + ".pdf"
	}
	return &dto.ExportFile{
		Filename:    name,
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// visibleOrder fetches an order under the caller's visibility rules.
func (uc *ShippingUseCase) visibleOrder(actor domain.Identity, orderID string) (*entity.ShippingOrder, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.RoleAtLeast(actor.Role, entity.RoleManager) && order.UserID != actor.UserID {
		// Not "forbidden": the caller must not learn the id exists.
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// buildStatusHistory reconstructs the public timeline from the ladder
// position. There is no stored transition log, so every entry past the first
// carries updated_at; that is the documented behavior, not a bug.
func buildStatusHistory(o *entity.ShippingOrder) []entity.TrackingEvent {
	events := []entity.TrackingEvent{{
		Status:      entity.StatusReceived,
		Timestamp:   o.CreatedAt,
		Location:    "집하점",
		Description: "배송 접수가 완료되었습니다.",
	}}
	rank := entity.StatusRank(o.Status)
	if rank >= entity.StatusRank(entity.StatusPreparing) {
		events = append(events, entity.TrackingEvent{
			Status:      entity.StatusPreparing,
			Timestamp:   o.UpdatedAt,
			Location:    "물류센터",
			Description: "배송 준비 중입니다.",
		})
	}
	if rank >= entity.StatusRank(entity.StatusInTransit) {
		events = append(events, entity.TrackingEvent{
			Status:      entity.StatusInTransit,
			Timestamp:   o.UpdatedAt,
			Location:    "배송 중",
			Description: "상품이 배송 중입니다.",
		})
	}
	if rank >= entity.StatusRank(entity.StatusDelivered) {
		events = append(events, entity.TrackingEvent{
			Status:      entity.StatusDelivered,
			Timestamp:   o.UpdatedAt,
			Location:    "수취인",
			Description: "배송이 완료되었습니다.",
		})
	}
	return events
}

func missingRequiredFields(in dto.CreateOrderRequest) []string {
	required := []struct {
		name  string
		value string
	}{
		{"sender_name", in.SenderName},
		{"sender_phone", in.SenderPhone},
		{"sender_address", in.SenderAddress},
		{"sender_zipcode", in.SenderZipcode},
		{"receiver_name", in.ReceiverName},
		{"receiver_phone", in.ReceiverPhone},
		{"receiver_address", in.ReceiverAddress},
		{"receiver_zipcode", in.ReceiverZipcode},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func insuranceOrZero(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}

// parseDate parses an optional YYYY-MM-DD value; empty means nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toOrderResponse(o *entity.ShippingOrder) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:     o.ID,
		UserID: o.UserID,

		SenderName:          o.SenderName,
		SenderPhone:         o.SenderPhone,
		SenderEmail:         o.SenderEmail,
		SenderCompany:       o.SenderCompany,
		SenderAddress:       o.SenderAddress,
		SenderDetailAddress: o.SenderDetailAddress,
		SenderZipcode:       o.SenderZipcode,

		ReceiverName:          o.ReceiverName,
		ReceiverPhone:         o.ReceiverPhone,
		ReceiverEmail:         o.ReceiverEmail,
		ReceiverCompany:       o.ReceiverCompany,
		ReceiverAddress:       o.ReceiverAddress,
		ReceiverDetailAddress: o.ReceiverDetailAddress,
		ReceiverZipcode:       o.ReceiverZipcode,

		PackageType:        o.PackageType,
		PackageWeight:      o.PackageWeight,
		PackageSize:        o.PackageSize,
		PackageValue:       o.PackageValue,
		PackageDescription: o.PackageDescription,

		DeliveryType: o.DeliveryType,
		DeliveryDate: o.DeliveryDate,
		DeliveryTime: o.DeliveryTime,
		DeliveryMemo: o.DeliveryMemo,

		IsFragile:           o.IsFragile,
		IsFrozen:            o.IsFrozen,
		RequiresSignature:   o.RequiresSignature,
		InsuranceAmount:     o.InsuranceAmount,
		SpecialInstructions: o.SpecialInstructions,

		Status:            o.Status,
		TrackingNumber:    o.TrackingNumber,
		TrackingCompany:   o.TrackingCompany,
		EstimatedDelivery: o.EstimatedDelivery,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}
