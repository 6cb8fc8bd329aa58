package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is one restaurant site belonging to a company.
type Location struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID uuid.UUID      `gorm:"column:company_id;type:uuid;not null"`
	Name      string         `gorm:"column:name;not null"`
	Address   *string        `gorm:"column:address"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}
