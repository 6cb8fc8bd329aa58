package controllers

import (
	"net/http"

	"github.com/lacomanda/comanda-backend/api/responses"
	"github.com/lacomanda/comanda-backend/pkg/config"
	"github.com/lacomanda/comanda-backend/pkg/db"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
	"github.com/lacomanda/comanda-backend/pkg/logger"
	"github.com/lacomanda/comanda-backend/pkg/redis"
)

// HealthLive reports process liveness only.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady checks the dependencies a request actually needs. Redis
// is optional; readiness only degrades, it does not fail, without it.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}

		if dbP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database not configured"))
			return
		}
		if err := dbP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}
		checks["database"] = "ok"

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "degraded"
				if logg != nil {
					logg.Warn(r.Context(), "redis unreachable, board cache disabled")
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ok",
			"env":    cfg.App.Env,
			"checks": checks,
		})
	}
}
