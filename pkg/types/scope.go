package types

import "github.com/google/uuid"

// Scope carries the tenant boundary for a request. It is threaded
// explicitly through every engine and projector call instead of living
// in ambient request state.
type Scope struct {
	// CompanyID narrows queries to one tenant when set; uuid.Nil skips
	// the company filter (single-tenant deployments).
	CompanyID uuid.UUID
	// LocationID is always required on the KDS/POS surface.
	LocationID uuid.UUID
}
