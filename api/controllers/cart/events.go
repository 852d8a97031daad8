package cart

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/angelmondragon/electroquick/api/responses"
	cartsvc "github.com/angelmondragon/electroquick/internal/cart"
	pkgerrors "github.com/angelmondragon/electroquick/pkg/errors"
	"github.com/angelmondragon/electroquick/pkg/logger"
)

const (
	eventBuffer       = 8
	keepAliveInterval = 15 * time.Second
)

// CartEvents streams the cart as server-sent events: the current cart first,
// then one "cart" event per mutation. Slow clients skip intermediate carts.
func CartEvents(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			unavailable(w, r, logg)
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		updates := make(chan cartsvc.Cart, eventBuffer)
		unsubscribe := store.Subscribe(func(c cartsvc.Cart) {
			for {
				select {
				case updates <- c:
					return
				default:
				}
				select {
				case <-updates:
				default:
				}
			}
		})
		defer unsubscribe()

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		ctx := r.Context()
		if err := writeEvent(w, newCartResponse(store.Cart())); err != nil {
			return
		}
		flusher.Flush()
		if logg != nil {
			logg.Debug(ctx, "cart.events.subscribed")
		}

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				if logg != nil {
					logg.Debug(ctx, "cart.events.closed")
				}
				return
			case c := <-updates:
				if err := writeEvent(w, newCartResponse(c)); err != nil {
					return
				}
				flusher.Flush()
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, payload cartResponse) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: cart\ndata: %s\n\n", data)
	return err
}
