package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lacomanda/comanda-backend/internal/events"
	"github.com/lacomanda/comanda-backend/internal/orders"
	"github.com/lacomanda/comanda-backend/pkg/db"
	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/enums"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
	"github.com/lacomanda/comanda-backend/pkg/logger"
	"github.com/lacomanda/comanda-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// orderNumberConstraint is the unique index on (location_id, order_number).
const orderNumberConstraint = "uq_orders_location_number"

// orderNumberAttempts bounds how often a checkout re-reads the next
// order number after losing a race for it.
const orderNumberAttempts = 3

var errOrderNumberTaken = errors.New("order number already taken")

// Service turns a POS ticket into a persisted order. The order, its
// lines, their annotations and the creation audit event all land in one
// transaction.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
}

type service struct {
	repo     orders.Repository
	tx       txRunner
	recorder events.Recorder
	board    orders.BoardInvalidator
	logg     *logger.Logger
}

// LineModifierInput is a modifier selection with its name and price
// snapshotted from the catalog at order time.
type LineModifierInput struct {
	ModifierID  *uuid.UUID
	Name        string
	PriceChange decimal.Decimal
}

// LineExtraInput is a paid add-on selection.
type LineExtraInput struct {
	ExtraID *uuid.UUID
	Name    string
	Price   decimal.Decimal
}

// LineExceptionInput is a removal request ("no onions").
type LineExceptionInput struct {
	ExceptionID *uuid.UUID
	Name        string
}

// LineInput is one ticket line.
type LineInput struct {
	ItemID     *uuid.UUID
	Quantity   int
	Price      decimal.Decimal
	Notes      *string
	Modifiers  []LineModifierInput
	Extras     []LineExtraInput
	Exceptions []LineExceptionInput
}

// CreateOrderInput carries everything the POS sends when a ticket closes.
type CreateOrderInput struct {
	Scope       types.Scope
	EmployeeID  *uuid.UUID
	CustomerID  *uuid.UUID
	TableNumber *string
	OrderType   *string
	Note        *string
	Items       []LineInput
}

// NewService builds the checkout service with the required dependencies.
func NewService(repo orders.Repository, tx txRunner, recorder events.Recorder, board orders.BoardInvalidator, logg *logger.Logger) (Service, error) {
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
		logg:     logg,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.Scope.LocationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "location context missing")
	}
	if input.Scope.CompanyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
		if line.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line price cannot be negative")
		}
	}

	// Two tickets closing at once can read the same MAX(order_number);
	// the unique index rejects the loser, who re-reads and tries again.
	var created *models.Order
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		created, err = s.persistOrder(ctx, input)
		if !errors.Is(err, errOrderNumberTaken) {
			break
		}
	}
	if errors.Is(err, errOrderNumberTaken) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number contention")
	}
	if err != nil {
		return nil, err
	}

	if s.board != nil {
		s.board.InvalidateBoard(ctx, created.LocationID)
	}

	ctx = s.logg.WithOrderID(ctx, created.ID.String())
	s.logg.Info(ctx, fmt.Sprintf("order %d created", created.OrderNumber))
	return created, nil
}

func (s *service) persistOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		orderNumber, err := repo.NextOrderNumber(ctx, input.Scope.LocationID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign order number")
		}

		order := &models.Order{
			ID:          uuid.New(),
			OrderNumber: orderNumber,
			CompanyID:   input.Scope.CompanyID,
			LocationID:  input.Scope.LocationID,
			EmployeeID:  input.EmployeeID,
			CustomerID:  input.CustomerID,
			TableNumber: input.TableNumber,
			OrderType:   input.OrderType,
			Note:        input.Note,
			Status:      enums.OrderStatusPaid,
			Total:       decimal.Zero,
		}

		lines := make([]models.OrderItem, 0, len(input.Items))
		var mods []models.OrderItemModifier
		var extras []models.OrderItemExtra
		var exceptions []models.OrderItemException

		total := decimal.Zero
		for _, line := range input.Items {
			unit := line.Price
			for _, mod := range line.Modifiers {
				unit = unit.Add(mod.PriceChange)
			}
			for _, extra := range line.Extras {
				unit = unit.Add(extra.Price)
			}
			lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)

			row := models.OrderItem{
				ID:       uuid.New(),
				OrderID:  order.ID,
				ItemID:   line.ItemID,
				Quantity: line.Quantity,
				Price:    line.Price,
				Total:    lineTotal,
				Notes:    line.Notes,
			}
			lines = append(lines, row)

			for _, mod := range line.Modifiers {
				mods = append(mods, models.OrderItemModifier{
					ID:           uuid.New(),
					OrderItemID:  row.ID,
					ModifierID:   mod.ModifierID,
					ModifierName: mod.Name,
					PriceChange:  mod.PriceChange,
				})
			}
			for _, extra := range line.Extras {
				extras = append(extras, models.OrderItemExtra{
					ID:          uuid.New(),
					OrderItemID: row.ID,
					ExtraID:     extra.ExtraID,
					ExtraName:   extra.Name,
					Price:       extra.Price,
				})
			}
			for _, exc := range line.Exceptions {
				exceptions = append(exceptions, models.OrderItemException{
					ID:            uuid.New(),
					OrderItemID:   row.ID,
					ExceptionID:   exc.ExceptionID,
					ExceptionName: exc.Name,
				})
			}
		}
		order.Total = total

		if _, err := repo.CreateOrder(ctx, order); err != nil {
			if db.IsUniqueViolation(err, orderNumberConstraint) {
				return errOrderNumberTaken
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := repo.CreateOrderItems(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}
		if err := repo.CreateOrderItemModifiers(ctx, mods); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item modifiers")
		}
		if err := repo.CreateOrderItemExtras(ctx, extras); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item extras")
		}
		if err := repo.CreateOrderItemExceptions(ctx, exceptions); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item exceptions")
		}

		if _, err := s.recorder.WithTx(tx).Record(ctx, events.RecordEventInput{
			OrderID:    order.ID,
			EventType:  enums.OrderEventCreated,
			ToStatus:   string(enums.OrderStatusPaid),
			Actor:      enums.OrderActorPOS,
			ActorID:    input.EmployeeID,
			LocationID: order.LocationID,
			CompanyID:  order.CompanyID,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record order event")
		}

		order.Items = lines
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
