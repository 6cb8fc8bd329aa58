package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/lacomanda/comanda-backend/api/responses"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
	"github.com/lacomanda/comanda-backend/pkg/logger"
	"github.com/lacomanda/comanda-backend/pkg/types"
)

const (
	locationIDHeader = "X-Location-Id"
	companyIDHeader  = "X-Company-Id"
	employeeIDHeader = "X-Employee-Id"
)

// LocationContext requires the X-Location-Id header on every display
// and POS route, and picks up the optional company and employee headers
// alongside it.
func LocationContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locationID := r.Header.Get(locationIDHeader)
			if locationID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeBadRequest, "X-Location-Id header is required"))
				return
			}
			if _, err := uuid.Parse(locationID); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeBadRequest, "X-Location-Id header must be a valid uuid"))
				return
			}

			ctx := WithLocationID(r.Context(), locationID)
			if companyID := r.Header.Get(companyIDHeader); companyID != "" {
				ctx = WithCompanyID(ctx, companyID)
			}
			if employeeID := r.Header.Get(employeeIDHeader); employeeID != "" {
				ctx = WithEmployeeID(ctx, employeeID)
			}
			if logg != nil {
				ctx = logg.WithLocationID(ctx, locationID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ScopeFromContext assembles the tenant scope the middleware validated.
// Company and employee values that fail to parse are treated as absent.
func ScopeFromContext(ctx context.Context) types.Scope {
	scope := types.Scope{}
	if id, err := uuid.Parse(LocationIDFromContext(ctx)); err == nil {
		scope.LocationID = id
	}
	if id, err := uuid.Parse(CompanyIDFromContext(ctx)); err == nil {
		scope.CompanyID = id
	}
	return scope
}

// EmployeeIDPtrFromContext returns the acting employee, when supplied.
func EmployeeIDPtrFromContext(ctx context.Context) *uuid.UUID {
	if id, err := uuid.Parse(EmployeeIDFromContext(ctx)); err == nil {
		return &id
	}
	return nil
}
