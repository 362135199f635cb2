package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo implements the read-only StatsRepository port. All aggregation
// runs in SQL; Go only shapes the rows.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository builds the read adapter behind the export service.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// OrdersForExport returns full orders joined with their owner, oldest first,
// as rendered into the orders export.
func (r *StatsRepo) OrdersForExport(f repository.OrderFilter) ([]*entity.OrderExportRow, error) {
	where, args := statsWhere(f)
	query := `
		SELECT o.id, o.user_id,
		       o.sender_name, o.sender_phone, o.sender_email, o.sender_company, o.sender_address, o.sender_detail_address, o.sender_zipcode,
		       o.receiver_name, o.receiver_phone, o.receiver_email, o.receiver_company, o.receiver_address, o.receiver_detail_address, o.receiver_zipcode,
		       o.package_type, o.package_weight, o.package_size, o.package_value, o.package_description,
		       o.delivery_type, o.delivery_date, o.delivery_time, o.delivery_memo,
		       o.is_fragile, o.is_frozen, o.requires_signature, o.insurance_amount, o.special_instructions,
		       o.status, o.tracking_number, o.tracking_company, o.estimated_delivery, o.created_at, o.updated_at,
		       coalesce(u.username, ''), coalesce(u.name, '')
		FROM shipping_orders o
		LEFT JOIN users u ON u.id = o.user_id` + where + `
		ORDER BY o.created_at ASC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("orders for export: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderExportRow
	for rows.Next() {
		var row entity.OrderExportRow
		o := &row.Order
		if err := rows.Scan(
			&o.ID, &o.UserID,
			&o.SenderName, &o.SenderPhone, &o.SenderEmail, &o.SenderCompany, &o.SenderAddress, &o.SenderDetailAddress, &o.SenderZipcode,
			&o.ReceiverName, &o.ReceiverPhone, &o.ReceiverEmail, &o.ReceiverCompany, &o.ReceiverAddress, &o.ReceiverDetailAddress, &o.ReceiverZipcode,
			&o.PackageType, &o.PackageWeight, &o.PackageSize, &o.PackageValue, &o.PackageDescription,
			&o.DeliveryType, &o.DeliveryDate, &o.DeliveryTime, &o.DeliveryMemo,
			&o.IsFragile, &o.IsFrozen, &o.RequiresSignature, &o.InsuranceAmount, &o.SpecialInstructions,
			&o.Status, &o.TrackingNumber, &o.TrackingCompany, &o.EstimatedDelivery, &o.CreatedAt, &o.UpdatedAt,
			&row.Username, &row.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// StatusStats returns order count and share per status.
func (r *StatsRepo) StatusStats(f repository.OrderFilter) ([]*entity.StatusStat, error) {
	where, args := statsWhere(f)
	query := `
		SELECT o.status, count(*),
		       round(count(*) * 100.0 / sum(count(*)) OVER (), 2)
		FROM shipping_orders o` + where + `
		GROUP BY o.status
		ORDER BY count(*) DESC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("status stats: %w", err)
	}
	defer rows.Close()
	var list []*entity.StatusStat
	for rows.Next() {
		var s entity.StatusStat
		if err := rows.Scan(&s.Status, &s.Orders, &s.Percent); err != nil {
			return nil, fmt.Errorf("scan status stat: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// DailyStats returns per-day intake and completion numbers.
func (r *StatsRepo) DailyStats(f repository.OrderFilter) ([]*entity.DailyStat, error) {
	where, args := statsWhere(f)
	query := `
		SELECT date_trunc('day', o.created_at)::date AS day,
		       count(*),
		       count(*) FILTER (WHERE o.status = '배송완료'),
		       round(count(*) FILTER (WHERE o.status = '배송완료') * 100.0 / count(*), 2)
		FROM shipping_orders o` + where + `
		GROUP BY day
		ORDER BY day ASC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	defer rows.Close()
	var list []*entity.DailyStat
	for rows.Next() {
		var s entity.DailyStat
		if err := rows.Scan(&s.Date, &s.Orders, &s.Delivered, &s.DeliveredRate); err != nil {
			return nil, fmt.Errorf("scan daily stat: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CarrierStats returns per-carrier numbers. Orders without an assigned
// carrier group under 미배정. Average delivery days come from the gap between
// created_at and the delivered order's updated_at.
func (r *StatsRepo) CarrierStats(f repository.OrderFilter) ([]*entity.CarrierStat, error) {
	where, args := statsWhere(f)
	query := `
		SELECT coalesce(nullif(o.tracking_company, ''), '미배정') AS carrier,
		       count(*),
		       count(*) FILTER (WHERE o.status = '배송완료'),
		       coalesce(round(avg(extract(epoch FROM o.updated_at - o.created_at) / 86400.0)
		                      FILTER (WHERE o.status = '배송완료'), 1), 0)
		FROM shipping_orders o` + where + `
		GROUP BY carrier
		ORDER BY count(*) DESC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("carrier stats: %w", err)
	}
	defer rows.Close()
	var list []*entity.CarrierStat
	for rows.Next() {
		var s entity.CarrierStat
		if err := rows.Scan(&s.Company, &s.Orders, &s.Delivered, &s.AvgDeliveryDays); err != nil {
			return nil, fmt.Errorf("scan carrier stat: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UserStats returns per-user intake numbers.
func (r *StatsRepo) UserStats(f repository.OrderFilter) ([]*entity.UserOrderStat, error) {
	where, args := statsWhere(f)
	query := `
		SELECT coalesce(u.name, ''), coalesce(u.username, ''),
		       count(*), max(o.created_at)
		FROM shipping_orders o
		LEFT JOIN users u ON u.id = o.user_id` + where + `
		GROUP BY u.id, u.name, u.username
		ORDER BY count(*) DESC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserOrderStat
	for rows.Next() {
		var s entity.UserOrderStat
		if err := rows.Scan(&s.Name, &s.Username, &s.Orders, &s.LastOrder); err != nil {
			return nil, fmt.Errorf("scan user stat: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// statsWhere mirrors orderWhere with the o. alias used by the joins.
func statsWhere(f repository.OrderFilter) (string, []any) {
	var conds []string
	var args []any
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("o.user_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conds = append(conds, fmt.Sprintf("o.created_at >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conds = append(conds, fmt.Sprintf("o.created_at <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
