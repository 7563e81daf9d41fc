package controllers

import (
	"net/http"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Stockroom-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Stockroom-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["database"] = "unreachable"
				healthy = false
			} else {
				checks["database"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "unreachable"
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency not ready").WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
