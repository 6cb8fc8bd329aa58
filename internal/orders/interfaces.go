package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/types"
)

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	CreateOrderItemModifiers(ctx context.Context, mods []models.OrderItemModifier) error
	CreateOrderItemExtras(ctx context.Context, extras []models.OrderItemExtra) error
	CreateOrderItemExceptions(ctx context.Context, exceptions []models.OrderItemException) error
	FindOrder(ctx context.Context, orderID uuid.UUID, scope types.Scope) (*models.Order, error)
	FindOrderForUpdate(ctx context.Context, orderID uuid.UUID, scope types.Scope) (*models.Order, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	NextOrderNumber(ctx context.Context, locationID uuid.UUID) (int64, error)
}
