package kds

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lacomanda/comanda-backend/api/middleware"
	"github.com/lacomanda/comanda-backend/api/responses"
	"github.com/lacomanda/comanda-backend/api/validators"
	internalkds "github.com/lacomanda/comanda-backend/internal/kds"
	internalorders "github.com/lacomanda/comanda-backend/internal/orders"
	"github.com/lacomanda/comanda-backend/pkg/enums"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
	"github.com/lacomanda/comanda-backend/pkg/logger"
)

type boardMeta struct {
	LocationID uuid.UUID `json:"location_id"`
	Count      int       `json:"count"`
	Timestamp  int64     `json:"timestamp"`
}

type actionMeta struct {
	Message string `json:"message"`
}

// transitionRequest is the optional body of start/ready actions.
type transitionRequest struct {
	EmployeeID *string `json:"employee_id" validate:"omitempty,uuid"`
}

type cancelOrderRequest struct {
	Reason     string  `json:"reason" validate:"required,max=500"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,uuid"`
}

// Board returns the active orders for the display's location.
func Board(svc internalkds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "kds service unavailable"))
			return
		}

		scope := middleware.ScopeFromContext(r.Context())
		board, err := svc.Board(r.Context(), scope)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMeta(w, board, boardMeta{
			LocationID: scope.LocationID,
			Count:      len(board),
			Timestamp:  time.Now().Unix(),
		})
	}
}

// Detail returns one order in its display shape.
func Detail(svc internalkds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "kds service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Order(r.Context(), orderID, middleware.ScopeFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// Start moves an order into preparation.
func Start(flow internalorders.Service, svc internalkds.Service, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, "Order started successfully", func(r *http.Request, input internalorders.TransitionInput) (uuid.UUID, error) {
		order, err := flow.StartPreparation(r.Context(), input)
		if err != nil {
			return uuid.Nil, err
		}
		return order.ID, nil
	})
}

// Ready marks an order as ready for pickup.
func Ready(flow internalorders.Service, svc internalkds.Service, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, "Order marked ready", func(r *http.Request, input internalorders.TransitionInput) (uuid.UUID, error) {
		order, err := flow.MarkReady(r.Context(), input)
		if err != nil {
			return uuid.Nil, err
		}
		return order.ID, nil
	})
}

// Cancel voids an order with a mandatory reason.
func Cancel(flow internalorders.Service, svc internalkds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if flow == nil || svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cancelOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := flow.Cancel(r.Context(), internalorders.CancelInput{
			TransitionInput: transitionInput(r, orderID, body.EmployeeID),
			Reason:          body.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeOrderView(w, r, svc, logg, order.ID, "Order canceled")
	}
}

func transitionHandler(svc internalkds.Service, logg *logger.Logger, message string, run func(*http.Request, internalorders.TransitionInput) (uuid.UUID, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body transitionRequest
		if err := validators.DecodeOptionalJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updatedID, err := run(r, transitionInput(r, orderID, body.EmployeeID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeOrderView(w, r, svc, logg, updatedID, message)
	}
}

func writeOrderView(w http.ResponseWriter, r *http.Request, svc internalkds.Service, logg *logger.Logger, orderID uuid.UUID, message string) {
	view, err := svc.Order(r.Context(), orderID, middleware.ScopeFromContext(r.Context()))
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccessMeta(w, view, actionMeta{Message: message})
}

func transitionInput(r *http.Request, orderID uuid.UUID, employeeID *string) internalorders.TransitionInput {
	return internalorders.TransitionInput{
		OrderID: orderID,
		Scope:   middleware.ScopeFromContext(r.Context()),
		Actor:   enums.OrderActorKDS,
		ActorID: actorID(r, employeeID),
	}
}

// actorID prefers the employee id supplied in the body over the header
// the terminal sends with every request.
func actorID(r *http.Request, bodyID *string) *uuid.UUID {
	if bodyID != nil {
		if id, err := uuid.Parse(*bodyID); err == nil {
			return &id
		}
	}
	return middleware.EmployeeIDPtrFromContext(r.Context())
}

// parseOrderID treats malformed ids the same as unknown ones so the
// route never leaks which ids exist.
func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
	}
	return orderID, nil
}
