package enums

import (
	"fmt"
	"strings"
)

// OrderStatus is the stored lifecycle label on an order row. External
// writers have historically produced mixed-case values, so comparisons
// always go through Normalize first.
type OrderStatus string

const (
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPaid,
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusCompleted,
	OrderStatusCanceled,
	OrderStatusCancelled,
}

// ActiveOrderStatuses are the stored values shown on the kitchen board.
var ActiveOrderStatuses = []OrderStatus{
	OrderStatusPaid,
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusCompleted,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// NormalizeOrderStatus lowercases raw stored input so lifecycle checks
// stay exhaustive regardless of how the row was written.
func NormalizeOrderStatus(value string) OrderStatus {
	return OrderStatus(strings.ToLower(strings.TrimSpace(value)))
}

// CanStartPreparation reports whether the status allows moving to in_progress.
func (s OrderStatus) CanStartPreparation() bool {
	return s == OrderStatusPaid || s == OrderStatusPending
}

// CanMarkReady reports whether the status allows moving to ready.
func (s OrderStatus) CanMarkReady() bool {
	return s == OrderStatusInProgress || s == OrderStatusPreparing
}

// IsCanceled covers both historical spellings of the terminal failure state.
func (s OrderStatus) IsCanceled() bool {
	return s == OrderStatusCanceled || s == OrderStatusCancelled
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	normalized := NormalizeOrderStatus(value)
	for _, candidate := range validOrderStatuses {
		if candidate == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
