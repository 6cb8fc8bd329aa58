package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/internal/events"
	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/enums"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
	"github.com/lacomanda/comanda-backend/pkg/logger"
	"github.com/lacomanda/comanda-backend/pkg/metrics"
	"github.com/lacomanda/comanda-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// BoardInvalidator drops cached kitchen board snapshots after a
// transition commits. A nil invalidator disables caching entirely.
type BoardInvalidator interface {
	InvalidateBoard(ctx context.Context, locationID uuid.UUID)
}

// Service drives the order lifecycle. Every transition locks the row,
// re-checks the freshly loaded status, and appends its audit event in
// the same transaction as the state change.
type Service interface {
	StartPreparation(ctx context.Context, input TransitionInput) (*models.Order, error)
	MarkReady(ctx context.Context, input TransitionInput) (*models.Order, error)
	Cancel(ctx context.Context, input CancelInput) (*models.Order, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	recorder events.Recorder
	board    BoardInvalidator
	metrics  *metrics.OrderFlowMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// TransitionInput identifies the order and the surface acting on it.
type TransitionInput struct {
	OrderID uuid.UUID
	Scope   types.Scope
	Actor   enums.OrderActor
	ActorID *uuid.UUID
}

// CancelInput extends TransitionInput with the mandatory cancellation reason.
type CancelInput struct {
	TransitionInput
	Reason string
}

// NewService builds the order lifecycle service with the required dependencies.
func NewService(repo Repository, tx txRunner, recorder events.Recorder, board BoardInvalidator, flowMetrics *metrics.OrderFlowMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("event recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		recorder: recorder,
		board:    board,
		metrics:  flowMetrics,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// transitionRule describes one lifecycle edge. allowed is evaluated
// against the normalized status of the freshly locked row.
type transitionRule struct {
	event       enums.OrderEventType
	target      enums.OrderStatus
	stampColumn string
	allowed     func(enums.OrderStatus) bool
	denied      func(current string) *pkgerrors.Error
	metadata    json.RawMessage
}

func (s *service) StartPreparation(ctx context.Context, input TransitionInput) (*models.Order, error) {
	return s.apply(ctx, input, transitionRule{
		event:       enums.OrderEventStarted,
		target:      enums.OrderStatusInProgress,
		stampColumn: "started_at",
		allowed:     enums.OrderStatus.CanStartPreparation,
		denied: func(current string) *pkgerrors.Error {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("Cannot start order with status: %s", current))
		},
	})
}

func (s *service) MarkReady(ctx context.Context, input TransitionInput) (*models.Order, error) {
	return s.apply(ctx, input, transitionRule{
		event:       enums.OrderEventReady,
		target:      enums.OrderStatusReady,
		stampColumn: "completed_at",
		allowed:     enums.OrderStatus.CanMarkReady,
		denied: func(current string) *pkgerrors.Error {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("Cannot mark ready order with status: %s", current))
		},
	})
}

func (s *service) Cancel(ctx context.Context, input CancelInput) (*models.Order, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cancellation reason required")
	}

	metadata, err := json.Marshal(map[string]string{"reason": reason})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cancel metadata")
	}

	return s.apply(ctx, input.TransitionInput, transitionRule{
		event:       enums.OrderEventCanceled,
		target:      enums.OrderStatusCanceled,
		stampColumn: "canceled_at",
		allowed: func(status enums.OrderStatus) bool {
			return !status.IsCanceled()
		},
		denied: func(string) *pkgerrors.Error {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "Order already canceled")
		},
		metadata: metadata,
	})
}

func (s *service) apply(ctx context.Context, input TransitionInput, rule transitionRule) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
	}
	if input.Scope.LocationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "location context missing")
	}
	if !input.Actor.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrderForUpdate(ctx, input.OrderID, input.Scope)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		// Guard against the status as it exists under the lock, not as
		// the caller last saw it.
		current := string(order.Status)
		if !rule.allowed(enums.NormalizeOrderStatus(current)) {
			return rule.denied(current)
		}

		now := s.now().UTC()
		updates := map[string]any{"status": rule.target}
		if s.stampIsUnset(order, rule.stampColumn) {
			updates[rule.stampColumn] = now
		}

		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		fromStatus := current
		if _, err := s.recorder.WithTx(tx).Record(ctx, events.RecordEventInput{
			OrderID:    order.ID,
			EventType:  rule.event,
			FromStatus: &fromStatus,
			ToStatus:   string(rule.target),
			Actor:      input.Actor,
			ActorID:    input.ActorID,
			LocationID: order.LocationID,
			CompanyID:  order.CompanyID,
			Metadata:   rule.metadata,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record order event")
		}

		order.Status = rule.target
		s.applyStamp(order, rule.stampColumn, now)
		updated = order
		return nil
	})
	if err != nil {
		s.countTransition(rule.event, err)
		return nil, err
	}

	s.countTransition(rule.event, nil)
	if s.board != nil {
		s.board.InvalidateBoard(ctx, updated.LocationID)
	}

	ctx = s.logg.WithOrderID(ctx, updated.ID.String())
	s.logg.Info(ctx, fmt.Sprintf("order transitioned to %s", updated.Status))
	return updated, nil
}

// stampIsUnset keeps the lifecycle timestamps write-once. A replayed or
// re-entered transition never overwrites the first recorded time.
func (s *service) stampIsUnset(order *models.Order, column string) bool {
	switch column {
	case "started_at":
		return order.StartedAt == nil
	case "completed_at":
		return order.CompletedAt == nil
	case "canceled_at":
		return order.CanceledAt == nil
	default:
		return false
	}
}

func (s *service) applyStamp(order *models.Order, column string, now time.Time) {
	switch column {
	case "started_at":
		if order.StartedAt == nil {
			order.StartedAt = &now
		}
	case "completed_at":
		if order.CompletedAt == nil {
			order.CompletedAt = &now
		}
	case "canceled_at":
		if order.CanceledAt == nil {
			order.CanceledAt = &now
		}
	}
}

func (s *service) countTransition(event enums.OrderEventType, err error) {
	if s.metrics == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
		if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeStateConflict {
			result = "conflict"
		}
	}
	s.metrics.IncTransition(string(event), result)
}
