package enums

// KDSStatus is the display-facing lifecycle label the kitchen board renders.
// Several stored statuses collapse onto one display value.
type KDSStatus string

const (
	KDSStatusPaid       KDSStatus = "PAID"
	KDSStatusInProgress KDSStatus = "IN_PROGRESS"
	KDSStatusReady      KDSStatus = "READY"
	KDSStatusCanceled   KDSStatus = "CANCELED"
)

// String implements fmt.Stringer.
func (s KDSStatus) String() string {
	return string(s)
}

// MapKDSStatus projects a stored status onto its display value. Unknown
// stored values fall back to PAID so a bad row never breaks the board.
func MapKDSStatus(raw string) KDSStatus {
	switch NormalizeOrderStatus(raw) {
	case OrderStatusPending, OrderStatusPaid:
		return KDSStatusPaid
	case OrderStatusInProgress, OrderStatusPreparing:
		return KDSStatusInProgress
	case OrderStatusReady, OrderStatusCompleted:
		return KDSStatusReady
	case OrderStatusCanceled, OrderStatusCancelled:
		return KDSStatusCanceled
	default:
		return KDSStatusPaid
	}
}
