package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/enums"
)

// Order is the central lifecycle entity. Rows are created by the POS
// checkout flow and mutated exclusively by the transition engine
// afterwards; deletion is always soft.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber int64             `gorm:"column:order_number;not null"`
	CompanyID   uuid.UUID         `gorm:"column:company_id;type:uuid;not null"`
	LocationID  uuid.UUID         `gorm:"column:location_id;type:uuid;not null"`
	EmployeeID  *uuid.UUID        `gorm:"column:employee_id;type:uuid"`
	CustomerID  *uuid.UUID        `gorm:"column:customer_id;type:uuid"`
	TableNumber *string           `gorm:"column:table_number"`
	OrderType   *string           `gorm:"column:order_type"`
	Status      enums.OrderStatus `gorm:"column:status;not null"`
	Total       decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	Note        *string           `gorm:"column:note"`
	PublicID    *string           `gorm:"column:public_id"`
	StartedAt   *time.Time        `gorm:"column:started_at"`
	CompletedAt *time.Time        `gorm:"column:completed_at"`
	CanceledAt  *time.Time        `gorm:"column:canceled_at"`
	DeletedBy   *uuid.UUID        `gorm:"column:deleted_by;type:uuid"`
	Customer    *Customer         `gorm:"foreignKey:CustomerID"`
	Items       []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Events      []OrderEvent      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt    `gorm:"column:deleted_at;index"`
}
