package enums

// OrderActor labels the surface that drove a transition, for audit attribution.
type OrderActor string

const (
	OrderActorKDS OrderActor = "kds"
	OrderActorPOS OrderActor = "pos"
)

// String implements fmt.Stringer.
func (a OrderActor) String() string {
	return string(a)
}

// IsValid reports whether the value matches a known actor surface.
func (a OrderActor) IsValid() bool {
	return a == OrderActorKDS || a == OrderActorPOS
}
