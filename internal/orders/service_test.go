package orders

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/internal/events"
	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/enums"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
	"github.com/lacomanda/comanda-backend/pkg/logger"
	"github.com/lacomanda/comanda-backend/pkg/types"
)

type fakeRepo struct {
	Repository

	order     *models.Order
	findErr   error
	updates   map[string]any
	updateErr error
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) FindOrderForUpdate(ctx context.Context, orderID uuid.UUID, scope types.Scope) (*models.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.order == nil || f.order.ID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *f.order
	return &copied, nil
}

func (f *fakeRepo) UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = updates
	return nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeRecorder struct {
	recorded  []events.RecordEventInput
	recordErr error
}

func (f *fakeRecorder) WithTx(tx *gorm.DB) events.Recorder { return f }

func (f *fakeRecorder) Record(ctx context.Context, input events.RecordEventInput) (*models.OrderEvent, error) {
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	f.recorded = append(f.recorded, input)
	return &models.OrderEvent{ID: uuid.New()}, nil
}

func (f *fakeRecorder) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderEvent, error) {
	return nil, nil
}

type fakeBoard struct {
	invalidated []uuid.UUID
}

func (f *fakeBoard) InvalidateBoard(ctx context.Context, locationID uuid.UUID) {
	f.invalidated = append(f.invalidated, locationID)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, repo *fakeRepo, recorder *fakeRecorder, board *fakeBoard) Service {
	t.Helper()
	var invalidator BoardInvalidator
	if board != nil {
		invalidator = board
	}
	svc, err := NewService(repo, fakeTxRunner{}, recorder, invalidator, nil, testLogger())
	require.NoError(t, err)
	return svc
}

func seededOrder(status enums.OrderStatus) *models.Order {
	return &models.Order{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		LocationID: uuid.New(),
		Status:     status,
	}
}

func transitionInput(order *models.Order) TransitionInput {
	return TransitionInput{
		OrderID: order.ID,
		Scope:   types.Scope{LocationID: order.LocationID},
		Actor:   enums.OrderActorKDS,
	}
}

func TestService_StartPreparation(t *testing.T) {
	for _, status := range []enums.OrderStatus{enums.OrderStatusPaid, enums.OrderStatusPending} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeRepo{order: seededOrder(status)}
			recorder := &fakeRecorder{}
			board := &fakeBoard{}
			svc := newTestService(t, repo, recorder, board)

			got, err := svc.StartPreparation(context.Background(), transitionInput(repo.order))
			require.NoError(t, err)

			assert.Equal(t, enums.OrderStatusInProgress, got.Status)
			require.NotNil(t, got.StartedAt)
			assert.Equal(t, enums.OrderStatusInProgress, repo.updates["status"])
			assert.Contains(t, repo.updates, "started_at")

			require.Len(t, recorder.recorded, 1)
			event := recorder.recorded[0]
			assert.Equal(t, enums.OrderEventStarted, event.EventType)
			require.NotNil(t, event.FromStatus)
			assert.Equal(t, string(status), *event.FromStatus)
			assert.Equal(t, "in_progress", event.ToStatus)
			assert.Equal(t, enums.OrderActorKDS, event.Actor)
			assert.Equal(t, repo.order.LocationID, event.LocationID)
			assert.Equal(t, repo.order.CompanyID, event.CompanyID)

			assert.Equal(t, []uuid.UUID{repo.order.LocationID}, board.invalidated)
		})
	}
}

func TestService_StartPreparationMixedCaseStatus(t *testing.T) {
	repo := &fakeRepo{order: seededOrder(enums.OrderStatus("PAID"))}
	recorder := &fakeRecorder{}
	svc := newTestService(t, repo, recorder, nil)

	got, err := svc.StartPreparation(context.Background(), transitionInput(repo.order))
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusInProgress, got.Status)

	// The audit trail records the raw stored value it observed.
	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, "PAID", *recorder.recorded[0].FromStatus)
}

func TestService_StartPreparationRejectsWrongState(t *testing.T) {
	for _, status := range []enums.OrderStatus{
		enums.OrderStatusInProgress,
		enums.OrderStatusReady,
		enums.OrderStatusCanceled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeRepo{order: seededOrder(status)}
			recorder := &fakeRecorder{}
			svc := newTestService(t, repo, recorder, nil)

			_, err := svc.StartPreparation(context.Background(), transitionInput(repo.order))
			require.Error(t, err)

			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
			assert.Equal(t, "Cannot start order with status: "+string(status), appErr.Message())
			assert.Empty(t, recorder.recorded)
			assert.Nil(t, repo.updates)
		})
	}
}

func TestService_MarkReady(t *testing.T) {
	for _, status := range []enums.OrderStatus{enums.OrderStatusInProgress, enums.OrderStatusPreparing} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeRepo{order: seededOrder(status)}
			recorder := &fakeRecorder{}
			svc := newTestService(t, repo, recorder, nil)

			got, err := svc.MarkReady(context.Background(), transitionInput(repo.order))
			require.NoError(t, err)

			assert.Equal(t, enums.OrderStatusReady, got.Status)
			require.NotNil(t, got.CompletedAt)
			assert.Contains(t, repo.updates, "completed_at")

			require.Len(t, recorder.recorded, 1)
			assert.Equal(t, enums.OrderEventReady, recorder.recorded[0].EventType)
			assert.Equal(t, "ready", recorder.recorded[0].ToStatus)
		})
	}
}

func TestService_MarkReadyRejectsWrongState(t *testing.T) {
	repo := &fakeRepo{order: seededOrder(enums.OrderStatusPaid)}
	recorder := &fakeRecorder{}
	svc := newTestService(t, repo, recorder, nil)

	_, err := svc.MarkReady(context.Background(), transitionInput(repo.order))
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
	assert.Equal(t, "Cannot mark ready order with status: paid", appErr.Message())
}

func TestService_MarkReadyKeepsExistingCompletedAt(t *testing.T) {
	completed := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	order := seededOrder(enums.OrderStatusInProgress)
	order.CompletedAt = &completed

	repo := &fakeRepo{order: order}
	svc := newTestService(t, repo, &fakeRecorder{}, nil)

	got, err := svc.MarkReady(context.Background(), transitionInput(order))
	require.NoError(t, err)

	assert.Equal(t, completed, *got.CompletedAt)
	assert.NotContains(t, repo.updates, "completed_at")
}

func TestService_Cancel(t *testing.T) {
	for _, status := range []enums.OrderStatus{
		enums.OrderStatusPaid,
		enums.OrderStatusInProgress,
		enums.OrderStatusReady,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeRepo{order: seededOrder(status)}
			recorder := &fakeRecorder{}
			svc := newTestService(t, repo, recorder, nil)

			got, err := svc.Cancel(context.Background(), CancelInput{
				TransitionInput: transitionInput(repo.order),
				Reason:          "guest walked out",
			})
			require.NoError(t, err)

			assert.Equal(t, enums.OrderStatusCanceled, got.Status)
			require.NotNil(t, got.CanceledAt)

			require.Len(t, recorder.recorded, 1)
			event := recorder.recorded[0]
			assert.Equal(t, enums.OrderEventCanceled, event.EventType)
			assert.JSONEq(t, `{"reason":"guest walked out"}`, string(event.Metadata))
		})
	}
}

func TestService_CancelRejectsAlreadyCanceled(t *testing.T) {
	for _, status := range []enums.OrderStatus{enums.OrderStatusCanceled, enums.OrderStatus("Cancelled")} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeRepo{order: seededOrder(status)}
			svc := newTestService(t, repo, &fakeRecorder{}, nil)

			_, err := svc.Cancel(context.Background(), CancelInput{
				TransitionInput: transitionInput(repo.order),
				Reason:          "too late",
			})
			require.Error(t, err)

			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
			assert.Equal(t, "Order already canceled", appErr.Message())
		})
	}
}

func TestService_CancelRequiresReason(t *testing.T) {
	repo := &fakeRepo{order: seededOrder(enums.OrderStatusPaid)}
	svc := newTestService(t, repo, &fakeRecorder{}, nil)

	_, err := svc.Cancel(context.Background(), CancelInput{
		TransitionInput: transitionInput(repo.order),
		Reason:          "   ",
	})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestService_TransitionOrderNotFound(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo, &fakeRecorder{}, nil)

	_, err := svc.StartPreparation(context.Background(), TransitionInput{
		OrderID: uuid.New(),
		Scope:   types.Scope{LocationID: uuid.New()},
		Actor:   enums.OrderActorKDS,
	})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
	assert.Equal(t, "Order not found", appErr.Message())
}

func TestService_TransitionRecorderFailureAborts(t *testing.T) {
	repo := &fakeRepo{order: seededOrder(enums.OrderStatusPaid)}
	recorder := &fakeRecorder{recordErr: errors.New("boom")}
	board := &fakeBoard{}
	svc := newTestService(t, repo, recorder, board)

	_, err := svc.StartPreparation(context.Background(), transitionInput(repo.order))
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
	assert.Empty(t, board.invalidated)
}
