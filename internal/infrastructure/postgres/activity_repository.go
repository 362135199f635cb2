package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implements the ActivityRepository port on PostgreSQL.
// The table is append-only; there is no update path.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository builds the persistence adapter for the audit trail.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create appends one audit record.
func (r *ActivityRepo) Create(a *entity.UserActivity) error {
	query := `
		INSERT INTO user_activities (id, user_id, action, target_type, target_id, details, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.UserID, a.Action, a.TargetType, a.TargetID, a.Details,
		a.IPAddress, a.UserAgent, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List returns audit records matching the filter, newest first, joined with
// the actor's username and display name.
func (r *ActivityRepo) List(f repository.ActivityFilter, limit, offset int) ([]*entity.UserActivity, error) {
	where, args := activityWhere(f)
	query := `
		SELECT a.id, a.user_id, a.action, a.target_type, a.target_id, a.details,
		       a.ip_address, a.user_agent, a.created_at,
		       coalesce(u.username, ''), coalesce(u.name, '')
		FROM user_activities a
		LEFT JOIN users u ON u.id = a.user_id` + where +
		fmt.Sprintf(` ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserActivity
	for rows.Next() {
		var a entity.UserActivity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.TargetType, &a.TargetID, &a.Details,
			&a.IPAddress, &a.UserAgent, &a.CreatedAt, &a.Username, &a.UserName); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Count returns the number of audit records matching the filter.
func (r *ActivityRepo) Count(f repository.ActivityFilter) (int, error) {
	where, args := activityWhere(f)
	query := `SELECT count(*) FROM user_activities a` + where
	var n int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return n, nil
}

func activityWhere(f repository.ActivityFilter) (string, []any) {
	var conds []string
	var args []any
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("a.user_id = $%d", len(args)))
	}
	if f.Action != "" {
		args = append(args, f.Action)
		conds = append(conds, fmt.Sprintf("a.action = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
