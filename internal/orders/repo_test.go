package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/internal/testdb"
	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/enums"
	"github.com/lacomanda/comanda-backend/pkg/types"
)

func mustCreateTestOrder(t *testing.T, db *gorm.DB, companyID, locationID uuid.UUID, status enums.OrderStatus) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: 1,
		CompanyID:   companyID,
		LocationID:  locationID,
		Status:      status,
		Total:       decimal.NewFromInt(1800),
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepository_FindOrderScopedToLocation(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	locationID := uuid.New()
	order := mustCreateTestOrder(t, db, companyID, locationID, enums.OrderStatusPaid)

	found, err := repo.FindOrder(ctx, order.ID, types.Scope{LocationID: locationID})
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindOrder(ctx, order.ID, types.Scope{LocationID: uuid.New()})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_FindOrderScopedToCompany(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	locationID := uuid.New()
	order := mustCreateTestOrder(t, db, uuid.New(), locationID, enums.OrderStatusPaid)

	_, err := repo.FindOrder(ctx, order.ID, types.Scope{CompanyID: uuid.New(), LocationID: locationID})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindOrder(ctx, order.ID, types.Scope{CompanyID: order.CompanyID, LocationID: locationID})
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
}

func TestRepository_FindOrderExcludesSoftDeleted(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	locationID := uuid.New()
	order := mustCreateTestOrder(t, db, uuid.New(), locationID, enums.OrderStatusPaid)
	require.NoError(t, db.Delete(&models.Order{}, "id = ?", order.ID).Error)

	_, err := repo.FindOrder(ctx, order.ID, types.Scope{LocationID: locationID})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_FindOrderForUpdateReturnsCurrentRow(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	locationID := uuid.New()
	order := mustCreateTestOrder(t, db, uuid.New(), locationID, enums.OrderStatusPending)

	found, err := repo.FindOrderForUpdate(ctx, order.ID, types.Scope{LocationID: locationID})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, found.Status)
}

func TestRepository_UpdateOrder(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	locationID := uuid.New()
	order := mustCreateTestOrder(t, db, uuid.New(), locationID, enums.OrderStatusPaid)

	require.NoError(t, repo.UpdateOrder(ctx, order.ID, map[string]any{
		"status": enums.OrderStatusInProgress,
	}))

	found, err := repo.FindOrder(ctx, order.ID, types.Scope{LocationID: locationID})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusInProgress, found.Status)
}

func TestRepository_NextOrderNumber(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	locationID := uuid.New()

	next, err := repo.NextOrderNumber(ctx, locationID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	order := mustCreateTestOrder(t, db, uuid.New(), locationID, enums.OrderStatusPaid)
	require.NoError(t, repo.UpdateOrder(ctx, order.ID, map[string]any{"order_number": 7}))

	next, err = repo.NextOrderNumber(ctx, locationID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), next)

	// Soft deleted orders keep their number reserved.
	require.NoError(t, db.Delete(&models.Order{}, "id = ?", order.ID).Error)
	next, err = repo.NextOrderNumber(ctx, locationID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), next)
}

func TestRepository_CreateOrderWithLines(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	locationID := uuid.New()
	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: 1,
		CompanyID:   uuid.New(),
		LocationID:  locationID,
		Status:      enums.OrderStatusPaid,
		Total:       decimal.NewFromInt(2500),
	}
	_, err := repo.CreateOrder(ctx, order)
	require.NoError(t, err)

	line := models.OrderItem{
		ID:       uuid.New(),
		OrderID:  order.ID,
		Quantity: 2,
		Price:    decimal.NewFromInt(1250),
		Total:    decimal.NewFromInt(2500),
	}
	require.NoError(t, repo.CreateOrderItems(ctx, []models.OrderItem{line}))
	require.NoError(t, repo.CreateOrderItemModifiers(ctx, []models.OrderItemModifier{{
		ID:           uuid.New(),
		OrderItemID:  line.ID,
		ModifierName: "Extra spicy",
	}}))
	require.NoError(t, repo.CreateOrderItemExtras(ctx, nil))

	var count int64
	require.NoError(t, db.Model(&models.OrderItemModifier{}).Where("order_item_id = ?", line.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
