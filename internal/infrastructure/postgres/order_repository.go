package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/termpro2000/fdapp/internal/domain"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id,
	sender_name, sender_phone, sender_email, sender_company, sender_address, sender_detail_address, sender_zipcode,
	receiver_name, receiver_phone, receiver_email, receiver_company, receiver_address, receiver_detail_address, receiver_zipcode,
	package_type, package_weight, package_size, package_value, package_description,
	delivery_type, delivery_date, delivery_time, delivery_memo,
	is_fragile, is_frozen, requires_signature, insurance_amount, special_instructions,
	status, tracking_number, tracking_company, estimated_delivery, created_at, updated_at`

// OrderRepo implements the OrderRepository port on PostgreSQL (usable with pool or tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the persistence adapter for shipping orders. Pass pool or tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persists a new shipping order. A tracking number collision surfaces
// as ErrDuplicateTracking so the caller can regenerate and retry.
func (r *OrderRepo) Create(o *entity.ShippingOrder) error {
	query := `
		INSERT INTO shipping_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.UserID,
		o.SenderName, o.SenderPhone, o.SenderEmail, o.SenderCompany, o.SenderAddress, o.SenderDetailAddress, o.SenderZipcode,
		o.ReceiverName, o.ReceiverPhone, o.ReceiverEmail, o.ReceiverCompany, o.ReceiverAddress, o.ReceiverDetailAddress, o.ReceiverZipcode,
		o.PackageType, o.PackageWeight, o.PackageSize, o.PackageValue, o.PackageDescription,
		o.DeliveryType, o.DeliveryDate, o.DeliveryTime, o.DeliveryMemo,
		o.IsFragile, o.IsFrozen, o.RequiresSignature, o.InsuranceAmount, o.SpecialInstructions,
		o.Status, o.TrackingNumber, o.TrackingCompany, o.EstimatedDelivery, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTracking
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID fetches an order by ID.
func (r *OrderRepo) GetByID(id string) (*entity.ShippingOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM shipping_orders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByTrackingNumber fetches an order by its tracking number.
func (r *OrderRepo) GetByTrackingNumber(trackingNumber string) (*entity.ShippingOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM shipping_orders WHERE tracking_number = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, trackingNumber))
}

// List returns orders matching the filter, newest first, with pagination.
func (r *OrderRepo) List(f repository.OrderFilter, limit, offset int) ([]*entity.ShippingOrder, error) {
	where, args := orderWhere(f)
	query := `SELECT ` + orderColumns + ` FROM shipping_orders` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ShippingOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Count returns the number of orders matching the filter.
func (r *OrderRepo) Count(f repository.OrderFilter) (int, error) {
	where, args := orderWhere(f)
	query := `SELECT count(*) FROM shipping_orders` + where
	var n int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// UpdateStatus sets status and refreshes updated_at.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE shipping_orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AssignTracking sets the tracking fields and forces the order into 배송준비.
// The unique index on tracking_number guards against duplicates.
func (r *OrderRepo) AssignTracking(id, trackingNumber, trackingCompany string, estimatedDelivery *time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE shipping_orders
		 SET tracking_number = $2, tracking_company = $3, estimated_delivery = $4,
		     status = $5, updated_at = now()
		 WHERE id = $1`,
		id, trackingNumber, trackingCompany, estimatedDelivery, entity.StatusPreparing,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTracking
		}
		return fmt.Errorf("assign tracking: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) scanOne(row pgx.Row) (*entity.ShippingOrder, error) {
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func scanOrder(row pgx.Row) (*entity.ShippingOrder, error) {
	var o entity.ShippingOrder
	err := row.Scan(
		&o.ID, &o.UserID,
		&o.SenderName, &o.SenderPhone, &o.SenderEmail, &o.SenderCompany, &o.SenderAddress, &o.SenderDetailAddress, &o.SenderZipcode,
		&o.ReceiverName, &o.ReceiverPhone, &o.ReceiverEmail, &o.ReceiverCompany, &o.ReceiverAddress, &o.ReceiverDetailAddress, &o.ReceiverZipcode,
		&o.PackageType, &o.PackageWeight, &o.PackageSize, &o.PackageValue, &o.PackageDescription,
		&o.DeliveryType, &o.DeliveryDate, &o.DeliveryTime, &o.DeliveryMemo,
		&o.IsFragile, &o.IsFrozen, &o.RequiresSignature, &o.InsuranceAmount, &o.SpecialInstructions,
		&o.Status, &o.TrackingNumber, &o.TrackingCompany, &o.EstimatedDelivery, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func orderWhere(f repository.OrderFilter) (string, []any) {
	var conds []string
	var args []any
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
