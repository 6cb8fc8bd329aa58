package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/types"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) CreateOrderItemModifiers(ctx context.Context, mods []models.OrderItemModifier) error {
	if len(mods) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&mods).Error
}

func (r *repository) CreateOrderItemExtras(ctx context.Context, extras []models.OrderItemExtra) error {
	if len(extras) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&extras).Error
}

func (r *repository) CreateOrderItemExceptions(ctx context.Context, exceptions []models.OrderItemException) error {
	if len(exceptions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&exceptions).Error
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

func (r *repository) FindOrderForUpdate(ctx context.Context, orderID uuid.UUID, scope types.Scope) (*models.Order, error) {
	q := r.scoped(ctx, scope).Where("id = ?", orderID)
	// Row locking is only meaningful on Postgres; the sqlite test
	// database serializes writes on its own.
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var order models.Order
	if err := q.First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}

// NextOrderNumber returns the next per-location ticket number. Soft
// deleted orders still hold their number, so the scan is unscoped.
func (r *repository) NextOrderNumber(ctx context.Context, locationID uuid.UUID) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Order{}).
		Where("location_id = ?", locationID).
		Select("COALESCE(MAX(order_number), 0) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *repository) scoped(ctx context.Context, scope types.Scope) *gorm.DB {
	q := r.db.WithContext(ctx).Where("location_id = ?", scope.LocationID)
	if scope.CompanyID != uuid.Nil {
		q = q.Where("company_id = ?", scope.CompanyID)
	}
	return q
}
