package shipping

import (
	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/domain/entity"
)

// ActivityRecorder is the audit-trail port. Record is fire-and-forget: the
// implementation swallows persistence failures so a lost log line never fails
// the operation that triggered it.
type ActivityRecorder interface {
	Record(actorID, action, targetType, targetID string, details map[string]any, meta dto.RequestMeta)
}

// WaybillGenerator renders a printable waybill for an order.
type WaybillGenerator interface {
	GenerateWaybill(order *entity.ShippingOrder) ([]byte, error)
}
