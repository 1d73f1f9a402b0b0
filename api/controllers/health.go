package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/dukapos/pos-terminal/api/responses"
	"github.com/dukapos/pos-terminal/pkg/config"
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
	"github.com/dukapos/pos-terminal/pkg/logger"
)

const readyCheckTimeout = 3 * time.Second

// Pinger is implemented by the backend client and the redis client.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Terminal-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports whether the store backend (and redis, when
// configured) answers. Redis is optional so a nil client is skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, backend Pinger, redis Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Terminal-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		checks := map[string]string{}

		if backend != nil {
			if err := backend.Ping(ctx); err != nil {
				checks["backend"] = err.Error()
			} else {
				checks["backend"] = "ok"
			}
		}
		if redis != nil {
			if err := redis.Ping(ctx); err != nil {
				checks["redis"] = err.Error()
			} else {
				checks["redis"] = "ok"
			}
		}

		for _, status := range checks {
			if status != "ok" {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeDependency, "dependency not ready").WithDetails(checks))
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
