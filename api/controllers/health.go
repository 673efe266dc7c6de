package controllers

import (
	"context"
	"net/http"

	"github.com/bookverse/bookverse-backend/api/responses"
	"github.com/bookverse/bookverse-backend/pkg/config"
	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
	"github.com/bookverse/bookverse-backend/pkg/logger"
)

// Pinger is the connectivity probe a readiness dependency must expose.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BookVerse-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both backing stores answer a ping.
func HealthReady(cfg *config.Config, db, cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BookVerse-Env", cfg.App.Env)

		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, apperrors.Wrap(apperrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, apperrors.Wrap(apperrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
