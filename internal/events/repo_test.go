package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacomanda/comanda-backend/internal/testdb"
	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/enums"
)

func TestRepository_CreateAndListOrdered(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	locationID := uuid.New()
	companyID := uuid.New()

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i, eventType := range []enums.OrderEventType{
		enums.OrderEventCreated,
		enums.OrderEventStarted,
		enums.OrderEventReady,
	} {
		event := &models.OrderEvent{
			ID:         uuid.New(),
			OrderID:    orderID,
			EventType:  eventType,
			ToStatus:   "whatever",
			Actor:      enums.OrderActorKDS,
			LocationID: locationID,
			CompanyID:  companyID,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, event))
	}

	// Unrelated order stays out of the listing.
	require.NoError(t, repo.Create(ctx, &models.OrderEvent{
		ID:         uuid.New(),
		OrderID:    uuid.New(),
		EventType:  enums.OrderEventCreated,
		ToStatus:   "paid",
		Actor:      enums.OrderActorPOS,
		LocationID: locationID,
		CompanyID:  companyID,
	}))

	listed, err := repo.ListByOrderID(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, enums.OrderEventCreated, listed[0].EventType)
	assert.Equal(t, enums.OrderEventStarted, listed[1].EventType)
	assert.Equal(t, enums.OrderEventReady, listed[2].EventType)
}
