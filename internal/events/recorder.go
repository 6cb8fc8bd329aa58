package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/enums"
)

// Recorder defines operations that append to the order audit trail.
type Recorder interface {
	// WithTx returns a recorder that writes through the supplied
	// transaction, so an event lands atomically with the state change
	// that produced it.
	WithTx(tx *gorm.DB) Recorder
	Record(ctx context.Context, input RecordEventInput) (*models.OrderEvent, error)
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderEvent, error)
}

type recorder struct {
	repo Repository
}

// RecordEventInput captures the immutable data an order event requires.
// FromStatus is nil only for creation events.
type RecordEventInput struct {
	OrderID    uuid.UUID            `json:"order_id"`
	EventType  enums.OrderEventType `json:"event_type"`
	FromStatus *string              `json:"from_status"`
	ToStatus   string               `json:"to_status"`
	Actor      enums.OrderActor     `json:"actor"`
	ActorID    *uuid.UUID           `json:"actor_id"`
	LocationID uuid.UUID            `json:"location_id"`
	CompanyID  uuid.UUID            `json:"company_id"`
	Metadata   json.RawMessage      `json:"metadata"`
}

// NewRecorder wires an event recorder with the provided repository.
func NewRecorder(repo Repository) (Recorder, error) {
	if repo == nil {
		return nil, fmt.Errorf("order event repository required")
	}
	return &recorder{repo: repo}, nil
}

func (r *recorder) WithTx(tx *gorm.DB) Recorder {
	if tx == nil {
		return r
	}
	return &recorder{repo: r.repo.WithTx(tx)}
}

func (r *recorder) Record(ctx context.Context, input RecordEventInput) (*models.OrderEvent, error) {
	if input.OrderID == uuid.Nil {
		return nil, fmt.Errorf("order id is required")
	}
	if !input.EventType.IsValid() {
		return nil, fmt.Errorf("invalid order event type %q", input.EventType)
	}
	if input.ToStatus == "" {
		return nil, fmt.Errorf("to status is required")
	}
	if !input.Actor.IsValid() {
		return nil, fmt.Errorf("invalid actor %q", input.Actor)
	}
	if input.LocationID == uuid.Nil {
		return nil, fmt.Errorf("location id is required")
	}
	if input.CompanyID == uuid.Nil {
		return nil, fmt.Errorf("company id is required")
	}

	event := &models.OrderEvent{
		// IDs are minted here rather than by the database so the row is
		// addressable before the surrounding transaction commits.
		ID:         uuid.New(),
		OrderID:    input.OrderID,
		EventType:  input.EventType,
		FromStatus: input.FromStatus,
		ToStatus:   input.ToStatus,
		Actor:      input.Actor,
		ActorID:    input.ActorID,
		LocationID: input.LocationID,
		CompanyID:  input.CompanyID,
		Metadata:   input.Metadata,
	}

	if err := r.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (r *recorder) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderEvent, error) {
	if orderID == uuid.Nil {
		return nil, fmt.Errorf("order id is required")
	}
	return r.repo.ListByOrderID(ctx, orderID)
}
