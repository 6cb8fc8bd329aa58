package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItemException attaches a removal ("no onions") to an order line,
// with the display name frozen at attach time.
type OrderItemException struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderItemID   uuid.UUID      `gorm:"column:order_item_id;type:uuid;not null"`
	ExceptionID   *uuid.UUID     `gorm:"column:exception_id;type:uuid"`
	ExceptionName string         `gorm:"column:exception_name;not null"`
	DeletedBy     *uuid.UUID     `gorm:"column:deleted_by;type:uuid"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at"`
}
