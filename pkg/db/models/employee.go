package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee identifies the staff member attributed on audit events.
type Employee struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID  uuid.UUID      `gorm:"column:company_id;type:uuid;not null"`
	LocationID *uuid.UUID     `gorm:"column:location_id;type:uuid"`
	FirstName  string         `gorm:"column:first_name;not null"`
	LastName   string         `gorm:"column:last_name"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at"`
}
