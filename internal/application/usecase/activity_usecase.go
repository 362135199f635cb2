package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
	"github.com/termpro2000/fdapp/pkg/logger"
)

// ActivityUseCase records and lists the audit trail. Record is best-effort:
// a failed write is logged and swallowed, never returned, so the operation
// that triggered the record cannot be rolled back or failed by it.
type ActivityUseCase struct {
	repo repository.ActivityRepository
	log  *logger.Logger
}

// NewActivityUseCase builds the usecase.
func NewActivityUseCase(repo repository.ActivityRepository, log *logger.Logger) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, log: log}
}

// Record appends one audit entry for a privileged action.
func (uc *ActivityUseCase) Record(actorID, action, targetType, targetID string, details map[string]any, meta dto.RequestMeta) {
	var payload []byte
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			uc.log.Warn().Err(err).Str("action", action).Msg("activity details not serializable")
		} else {
			payload = b
		}
	}
	a := &entity.UserActivity{
		ID:         uuid.New().String(),
		UserID:     actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    payload,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(a); err != nil {
		uc.log.Warn().Err(err).Str("action", action).Str("actor", actorID).Msg("activity log write failed")
	}
}

// List returns a page of audit entries, newest first, with actor names
// joined in.
func (uc *ActivityUseCase) List(in dto.ActivityListRequest) (*dto.ActivityListResponse, error) {
	in.Normalize(20)
	f := repository.ActivityFilter{UserID: in.UserID, Action: in.Action}

	total, err := uc.repo.Count(f)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.List(f, in.Limit, in.Offset())
	if err != nil {
		return nil, err
	}

	out := make([]dto.ActivityEntry, 0, len(rows))
	for _, a := range rows {
		out = append(out, dto.ActivityEntry{
			ID:         a.ID,
			Action:     a.Action,
			TargetType: a.TargetType,
			TargetID:   a.TargetID,
			Details:    json.RawMessage(a.Details),
			IPAddress:  a.IPAddress,
			CreatedAt:  a.CreatedAt,
			Username:   a.Username,
			UserName:   a.UserName,
		})
	}
	return &dto.ActivityListResponse{
		Activities: out,
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}
