package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is one line on an order. The catalog item name is resolved
// at read time through Item; the attached modifiers/extras/exceptions
// carry their own name snapshots instead.
type OrderItem struct {
	ID         uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID            `gorm:"column:order_id;type:uuid;not null"`
	ItemID     *uuid.UUID           `gorm:"column:item_id;type:uuid"`
	Quantity   int                  `gorm:"column:quantity;not null"`
	Price      decimal.Decimal      `gorm:"column:price;type:numeric(12,2);not null"`
	Total      decimal.Decimal      `gorm:"column:total;type:numeric(12,2);not null"`
	Notes      *string              `gorm:"column:notes"`
	DeletedBy  *uuid.UUID           `gorm:"column:deleted_by;type:uuid"`
	Item       *Item                `gorm:"foreignKey:ItemID"`
	Modifiers  []OrderItemModifier  `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
	Extras     []OrderItemExtra     `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
	Exceptions []OrderItemException `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time            `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt       `gorm:"column:deleted_at;index"`
}
