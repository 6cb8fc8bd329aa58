package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItemExtra attaches a paid add-on to an order line, with the name
// and price frozen at attach time.
type OrderItemExtra struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderItemID uuid.UUID       `gorm:"column:order_item_id;type:uuid;not null"`
	ExtraID     *uuid.UUID      `gorm:"column:extra_id;type:uuid"`
	ExtraName   string          `gorm:"column:extra_name;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	DeletedBy   *uuid.UUID      `gorm:"column:deleted_by;type:uuid"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	DeletedAt   gorm.DeletedAt  `gorm:"column:deleted_at"`
}
