package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/electroquick/api/responses"
	"github.com/angelmondragon/electroquick/pkg/config"
	pkgerrors "github.com/angelmondragon/electroquick/pkg/errors"
	"github.com/angelmondragon/electroquick/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger exposes the health check surface of the persistence backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Readier reports when the cart has been rehydrated.
type Readier interface {
	Ready() <-chan struct{}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ElectroQuick-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the cart is rehydrated and the backend answers.
func HealthReady(cfg *config.Config, logg *logger.Logger, backend Pinger, store Readier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ElectroQuick-Env", cfg.App.Env)

		if store != nil {
			select {
			case <-store.Ready():
			default:
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "cart is still loading").
					WithDetails(map[string]any{"component": "cart"}))
				return
			}
		}

		if backend != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()
			if err := backend.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage unavailable").
					WithDetails(map[string]any{"component": "storage", "backend": cfg.Storage.NormalizedBackend()}))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
