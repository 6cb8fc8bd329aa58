package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/lacomanda/comanda-backend/pkg/enums"
)

// OrderEvent is one immutable audit trail entry. Rows are only ever
// inserted; there is no update or delete path anywhere in the codebase.
type OrderEvent struct {
	ID         uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	OrderID    uuid.UUID            `gorm:"column:order_id;type:uuid;not null"`
	EventType  enums.OrderEventType `gorm:"column:event_type;not null"`
	FromStatus *string              `gorm:"column:from_status"`
	ToStatus   string               `gorm:"column:to_status;not null"`
	Actor      enums.OrderActor     `gorm:"column:actor;not null"`
	ActorID    *uuid.UUID           `gorm:"column:actor_id;type:uuid"`
	LocationID uuid.UUID            `gorm:"column:location_id;type:uuid;not null"`
	CompanyID  uuid.UUID            `gorm:"column:company_id;type:uuid;not null"`
	Metadata   json.RawMessage      `gorm:"column:metadata;type:jsonb"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
}
