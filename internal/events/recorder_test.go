package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/enums"
)

type fakeRepository struct {
	createFn func(ctx context.Context, event *models.OrderEvent) error
	listFn   func(ctx context.Context, orderID uuid.UUID) ([]models.OrderEvent, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) Create(ctx context.Context, event *models.OrderEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderEvent, error) {
	if f.listFn != nil {
		return f.listFn(ctx, orderID)
	}
	return nil, nil
}

func validInput() RecordEventInput {
	from := "paid"
	return RecordEventInput{
		OrderID:    uuid.New(),
		EventType:  enums.OrderEventStarted,
		FromStatus: &from,
		ToStatus:   "in_progress",
		Actor:      enums.OrderActorKDS,
		LocationID: uuid.New(),
		CompanyID:  uuid.New(),
	}
}

func TestRecorder_Record(t *testing.T) {
	repo := &fakeRepository{}
	rec, err := NewRecorder(repo)
	if err != nil {
		t.Fatalf("unexpected recorder error: %v", err)
	}

	input := validInput()
	input.Metadata = json.RawMessage(`{"reason":"cold food"}`)

	var created *models.OrderEvent
	repo.createFn = func(ctx context.Context, event *models.OrderEvent) error {
		created = event
		return nil
	}

	got, err := rec.Record(context.Background(), input)
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if created == nil {
		t.Fatal("expected order event to be created")
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected event id to be minted")
	}
	if created.OrderID != input.OrderID || created.EventType != input.EventType {
		t.Fatalf("unexpected event data: %+v", created)
	}
	if created.FromStatus == nil || *created.FromStatus != "paid" || created.ToStatus != "in_progress" {
		t.Fatalf("unexpected status pair: %+v", created)
	}
	if created.Actor != enums.OrderActorKDS {
		t.Fatalf("unexpected actor: %s", created.Actor)
	}
	if string(created.Metadata) != string(input.Metadata) {
		t.Fatalf("metadata mismatch: %s", created.Metadata)
	}
	if got != created {
		t.Fatal("recorder should return created event")
	}
}

func TestRecorder_RecordAllowsNilFromStatus(t *testing.T) {
	repo := &fakeRepository{}
	rec, err := NewRecorder(repo)
	if err != nil {
		t.Fatalf("unexpected recorder error: %v", err)
	}

	input := validInput()
	input.EventType = enums.OrderEventCreated
	input.FromStatus = nil
	input.ToStatus = "paid"

	event, err := rec.Record(context.Background(), input)
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if event.FromStatus != nil {
		t.Fatalf("expected nil from status, got %v", *event.FromStatus)
	}
}

func TestRecorder_RecordValidation(t *testing.T) {
	repo := &fakeRepository{}
	rec, err := NewRecorder(repo)
	if err != nil {
		t.Fatalf("unexpected recorder error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RecordEventInput)
	}{
		{"missing order id", func(in *RecordEventInput) { in.OrderID = uuid.Nil }},
		{"invalid event type", func(in *RecordEventInput) { in.EventType = enums.OrderEventType("not_real") }},
		{"missing to status", func(in *RecordEventInput) { in.ToStatus = "" }},
		{"invalid actor", func(in *RecordEventInput) { in.Actor = enums.OrderActor("waiter") }},
		{"missing location", func(in *RecordEventInput) { in.LocationID = uuid.Nil }},
		{"missing company", func(in *RecordEventInput) { in.CompanyID = uuid.Nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			if _, err := rec.Record(context.Background(), input); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestRecorder_RecordRepoError(t *testing.T) {
	repo := &fakeRepository{}
	rec, err := NewRecorder(repo)
	if err != nil {
		t.Fatalf("unexpected recorder error: %v", err)
	}

	expectedErr := errors.New("boom")
	repo.createFn = func(ctx context.Context, event *models.OrderEvent) error {
		return expectedErr
	}

	if _, err := rec.Record(context.Background(), validInput()); !errors.Is(err, expectedErr) {
		t.Fatalf("expected repo error to bubble up, got %v", err)
	}
}
