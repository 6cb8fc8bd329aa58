package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItemModifier attaches a modifier to an order line. ModifierName
// and PriceChange are captured at attach time so later catalog edits
// never rewrite historical orders.
type OrderItemModifier struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderItemID  uuid.UUID       `gorm:"column:order_item_id;type:uuid;not null"`
	ModifierID   *uuid.UUID      `gorm:"column:modifier_id;type:uuid"`
	ModifierName string          `gorm:"column:modifier_name;not null"`
	PriceChange  decimal.Decimal `gorm:"column:price_change;type:numeric(12,2);not null;default:0"`
	DeletedBy    *uuid.UUID      `gorm:"column:deleted_by;type:uuid"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	DeletedAt    gorm.DeletedAt  `gorm:"column:deleted_at"`
}
