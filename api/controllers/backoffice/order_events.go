package backoffice

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lacomanda/comanda-backend/api/responses"
	"github.com/lacomanda/comanda-backend/internal/events"
	"github.com/lacomanda/comanda-backend/pkg/db/models"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
	"github.com/lacomanda/comanda-backend/pkg/logger"
	"github.com/lacomanda/comanda-backend/pkg/types"
)

type orderEventResponse struct {
	ID         uuid.UUID       `json:"id"`
	EventType  string          `json:"event_type"`
	FromStatus *string         `json:"from_status"`
	ToStatus   string          `json:"to_status"`
	Actor      string          `json:"actor"`
	ActorID    *uuid.UUID      `json:"actor_id"`
	Metadata   json.RawMessage `json:"metadata"`
	CreatedAt  time.Time       `json:"created_at"`
}

// OrderEvents lists the full audit trail for one order, oldest first.
func OrderEvents(recorder events.Recorder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if recorder == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event recorder unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
		orderID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found"))
			return
		}

		trail, err := recorder.ListByOrderID(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order events"))
			return
		}

		out := make([]orderEventResponse, 0, len(trail))
		for _, event := range trail {
			out = append(out, toEventResponse(event))
		}
		responses.WriteSuccessMeta(w, out, types.ListMeta{Count: len(out)})
	}
}

func toEventResponse(event models.OrderEvent) orderEventResponse {
	return orderEventResponse{
		ID:         event.ID,
		EventType:  string(event.EventType),
		FromStatus: event.FromStatus,
		ToStatus:   event.ToStatus,
		Actor:      string(event.Actor),
		ActorID:    event.ActorID,
		Metadata:   event.Metadata,
		CreatedAt:  event.CreatedAt,
	}
}
