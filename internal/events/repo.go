package events

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
)

// Repository manages persistence for the order audit trail. There is
// deliberately no update or delete method.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, event *models.OrderEvent) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderEvent, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an order event repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, event *models.OrderEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderEvent, error) {
	var events []models.OrderEvent
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
