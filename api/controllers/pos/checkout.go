package pos

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lacomanda/comanda-backend/api/middleware"
	"github.com/lacomanda/comanda-backend/api/responses"
	"github.com/lacomanda/comanda-backend/api/validators"
	"github.com/lacomanda/comanda-backend/internal/checkout"
	"github.com/lacomanda/comanda-backend/pkg/db/models"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
	"github.com/lacomanda/comanda-backend/pkg/logger"
)

type modifierRequest struct {
	ID          *string `json:"id" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,max=120"`
	PriceChange string  `json:"price_change" validate:"omitempty"`
}

type extraRequest struct {
	ID    *string `json:"id" validate:"omitempty,uuid"`
	Name  string  `json:"name" validate:"required,max=120"`
	Price string  `json:"price" validate:"omitempty"`
}

type exceptionRequest struct {
	ID   *string `json:"id" validate:"omitempty,uuid"`
	Name string  `json:"name" validate:"required,max=120"`
}

type orderItemRequest struct {
	ItemID     *string            `json:"item_id" validate:"omitempty,uuid"`
	Quantity   int                `json:"quantity" validate:"required,gt=0"`
	Price      string             `json:"price" validate:"required"`
	Notes      *string            `json:"notes" validate:"omitempty,max=500"`
	Modifiers  []modifierRequest  `json:"modifiers" validate:"omitempty,dive"`
	Extras     []extraRequest     `json:"extras" validate:"omitempty,dive"`
	Exceptions []exceptionRequest `json:"exceptions" validate:"omitempty,dive"`
}

type createOrderRequest struct {
	CustomerID  *string            `json:"customer_id" validate:"omitempty,uuid"`
	TableNumber *string            `json:"table_number" validate:"omitempty,max=20"`
	OrderType   *string            `json:"order_type" validate:"omitempty,max=50"`
	Note        *string            `json:"note" validate:"omitempty,max=500"`
	Items       []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type createdOrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber int64           `json:"order_number"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   int64           `json:"created_at"`
}

// Create persists a closed POS ticket as a new order.
func Create(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := buildInput(r, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toCreatedResponse(order))
	}
}

func buildInput(r *http.Request, body createOrderRequest) (checkout.CreateOrderInput, error) {
	input := checkout.CreateOrderInput{
		Scope:       middleware.ScopeFromContext(r.Context()),
		EmployeeID:  middleware.EmployeeIDPtrFromContext(r.Context()),
		CustomerID:  parseOptionalUUID(body.CustomerID),
		TableNumber: body.TableNumber,
		OrderType:   body.OrderType,
		Note:        body.Note,
	}

	for _, line := range body.Items {
		price, err := parseAmount(line.Price, "price")
		if err != nil {
			return checkout.CreateOrderInput{}, err
		}

		item := checkout.LineInput{
			ItemID:   parseOptionalUUID(line.ItemID),
			Quantity: line.Quantity,
			Price:    price,
			Notes:    line.Notes,
		}
		for _, mod := range line.Modifiers {
			change := decimal.Zero
			if mod.PriceChange != "" {
				if change, err = parseAmount(mod.PriceChange, "price_change"); err != nil {
					return checkout.CreateOrderInput{}, err
				}
			}
			item.Modifiers = append(item.Modifiers, checkout.LineModifierInput{
				ModifierID:  parseOptionalUUID(mod.ID),
				Name:        mod.Name,
				PriceChange: change,
			})
		}
		for _, extra := range line.Extras {
			price := decimal.Zero
			if extra.Price != "" {
				if price, err = parseAmount(extra.Price, "price"); err != nil {
					return checkout.CreateOrderInput{}, err
				}
			}
			item.Extras = append(item.Extras, checkout.LineExtraInput{
				ExtraID: parseOptionalUUID(extra.ID),
				Name:    extra.Name,
				Price:   price,
			})
		}
		for _, exc := range line.Exceptions {
			item.Exceptions = append(item.Exceptions, checkout.LineExceptionInput{
				ExceptionID: parseOptionalUUID(exc.ID),
				Name:        exc.Name,
			})
		}
		input.Items = append(input.Items, item)
	}

	return input, nil
}

func toCreatedResponse(order *models.Order) createdOrderResponse {
	return createdOrderResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		Total:       order.Total,
		CreatedAt:   order.CreatedAt.Unix(),
	}
}

func parseAmount(raw, field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{field: "must be a decimal amount"})
	}
	return amount, nil
}

func parseOptionalUUID(raw *string) *uuid.UUID {
	if raw == nil {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}
