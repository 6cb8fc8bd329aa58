package kds

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/enums"
	"github.com/lacomanda/comanda-backend/pkg/types"
)

// Repository reads fully hydrated orders for the kitchen display. It
// never writes anything.
type Repository interface {
	ListActive(ctx context.Context, scope types.Scope, readyCutoff time.Time) ([]models.Order, error)
	FindOrder(ctx context.Context, orderID uuid.UUID, scope types.Scope) (*models.Order, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a board repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListActive returns the board rows in ticket order. The status filter
// matches stored values literally; rows written with unexpected casing
// simply stay off the board rather than breaking it. Ready orders age
// off once completed_at passes the cutoff.
func (r *repository) ListActive(ctx context.Context, scope types.Scope, readyCutoff time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.scoped(ctx, scope).
		Where("status IN ?", enums.ActiveOrderStatuses).
		Where("status != ? OR completed_at > ?", enums.OrderStatusReady, readyCutoff).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID, scope types.Scope) (*models.Order, error) {
	var order models.Order
	err := r.scoped(ctx, scope).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) scoped(ctx context.Context, scope types.Scope) *gorm.DB {
	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Item").
		Preload("Items.Modifiers").
		Preload("Items.Extras").
		Preload("Items.Exceptions").
		Where("location_id = ?", scope.LocationID)
	if scope.CompanyID != uuid.Nil {
		q = q.Where("company_id = ?", scope.CompanyID)
	}
	return q
}
