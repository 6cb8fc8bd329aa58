package kds

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lacomanda/comanda-backend/pkg/db/models"
	"github.com/lacomanda/comanda-backend/pkg/enums"
)

// BoardModifier is one flattened line-item annotation as the kitchen
// display renders it. Text is the name snapshot taken when the order
// was placed.
type BoardModifier struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

// BoardItem is one order line as rendered on the board.
type BoardItem struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Notes     *string         `json:"notes"`
	Modifiers []BoardModifier `json:"modifiers"`
}

// BoardOrder is the display projection of one order. Timestamps are
// unix seconds because the display hardware does its own clock math.
type BoardOrder struct {
	ID           uuid.UUID       `json:"id"`
	DisplayID    int64           `json:"displayId"`
	Status       enums.KDSStatus `json:"status"`
	CustomerName *string         `json:"customerName"`
	Notes        *string         `json:"notes"`
	CreatedAt    int64           `json:"createdAt"`
	StartedAt    *int64          `json:"startedAt"`
	CompletedAt  *int64          `json:"completedAt"`
	CanceledAt   *int64          `json:"canceledAt"`
	Items        []BoardItem     `json:"items"`
}

func transformOrder(order models.Order) BoardOrder {
	view := BoardOrder{
		ID:           order.ID,
		DisplayID:    order.OrderNumber,
		Status:       enums.MapKDSStatus(string(order.Status)),
		CustomerName: customerName(order.Customer),
		Notes:        order.Note,
		CreatedAt:    order.CreatedAt.Unix(),
		StartedAt:    unixOrNil(order.StartedAt),
		CompletedAt:  unixOrNil(order.CompletedAt),
		CanceledAt:   unixOrNil(order.CanceledAt),
		Items:        make([]BoardItem, 0, len(order.Items)),
	}
	for _, line := range order.Items {
		view.Items = append(view.Items, transformItem(line))
	}
	return view
}

func transformItem(line models.OrderItem) BoardItem {
	item := BoardItem{
		ID:        line.ID,
		Quantity:  line.Quantity,
		Notes:     line.Notes,
		Modifiers: combineModifiers(line),
	}
	if line.Item != nil {
		item.Name = line.Item.Name
	}
	return item
}

// combineModifiers flattens the three annotation tables into the single
// list the display renders: modifiers first, then exceptions, then
// extras.
func combineModifiers(line models.OrderItem) []BoardModifier {
	combined := make([]BoardModifier, 0, len(line.Modifiers)+len(line.Exceptions)+len(line.Extras))
	for _, mod := range line.Modifiers {
		combined = append(combined, BoardModifier{ID: mod.ID, Text: mod.ModifierName})
	}
	for _, exc := range line.Exceptions {
		combined = append(combined, BoardModifier{ID: exc.ID, Text: exc.ExceptionName})
	}
	for _, extra := range line.Extras {
		combined = append(combined, BoardModifier{ID: extra.ID, Text: extra.ExtraName})
	}
	return combined
}

func customerName(customer *models.Customer) *string {
	if customer == nil {
		return nil
	}
	name := strings.TrimSpace(customer.FirstName + " " + customer.LastName)
	if name == "" {
		return nil
	}
	return &name
}

func unixOrNil(ts *time.Time) *int64 {
	if ts == nil {
		return nil
	}
	unix := ts.Unix()
	return &unix
}
