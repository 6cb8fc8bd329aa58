package enums

import "fmt"

// OrderEventType names the audit trail entries appended on order transitions.
type OrderEventType string

const (
	OrderEventCreated  OrderEventType = "order_created"
	OrderEventStarted  OrderEventType = "order_started"
	OrderEventReady    OrderEventType = "order_ready"
	OrderEventCanceled OrderEventType = "order_canceled"
)

var validOrderEventTypes = []OrderEventType{
	OrderEventCreated,
	OrderEventStarted,
	OrderEventReady,
	OrderEventCanceled,
}

// String implements fmt.Stringer.
func (t OrderEventType) String() string {
	return string(t)
}

// IsValid reports whether the value matches a known order event type.
func (t OrderEventType) IsValid() bool {
	for _, candidate := range validOrderEventTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseOrderEventType converts raw input into an OrderEventType.
func ParseOrderEventType(value string) (OrderEventType, error) {
	for _, candidate := range validOrderEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order event type %q", value)
}
