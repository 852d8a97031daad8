package cart

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/electroquick/api/responses"
	"github.com/angelmondragon/electroquick/api/validators"
	cartsvc "github.com/angelmondragon/electroquick/internal/cart"
	"github.com/angelmondragon/electroquick/internal/checkout"
	pkgerrors "github.com/angelmondragon/electroquick/pkg/errors"
	"github.com/angelmondragon/electroquick/pkg/logger"
	"github.com/angelmondragon/electroquick/pkg/types"
)

// Store is the cart surface the HTTP bridge drives.
type Store interface {
	AddItem(ctx context.Context, product types.Product, quantity int)
	RemoveItem(ctx context.Context, productID string)
	UpdateItemQuantity(ctx context.Context, productID string, quantity int)
	Clear(ctx context.Context)
	Cart() cartsvc.Cart
	ItemCount() int
	Contains(productID string) bool
	Quantity(productID string) int
	Subscribe(listener cartsvc.Listener) cartsvc.Unsubscribe
}

// ProductLookup resolves catalog products by id.
type ProductLookup interface {
	Product(ctx context.Context, id string) (types.Product, error)
}

// Summarizer prices a cart snapshot.
type Summarizer interface {
	Summarize(c cartsvc.Cart) checkout.Summary
}

func unavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
}

func productIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "productID"))
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return id, nil
}

// CartFetch returns the current cart.
func CartFetch(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			unavailable(w, r, logg)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store.Cart()))
	}
}

// CartClear empties the cart.
func CartClear(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			unavailable(w, r, logg)
			return
		}
		store.Clear(r.Context())
		responses.WriteSuccess(w, newCartResponse(store.Cart()))
	}
}

// CartCount returns the number of units in the cart.
func CartCount(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			unavailable(w, r, logg)
			return
		}
		responses.WriteSuccess(w, countResponse{Count: store.ItemCount()})
	}
}

// CartAddItem resolves the product from the catalog and adds it.
func CartAddItem(store Store, products ProductLookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || products == nil {
			unavailable(w, r, logg)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := products.Product(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := payload.Quantity
		if quantity == 0 {
			quantity = 1
		}
		store.AddItem(r.Context(), product, quantity)
		responses.WriteSuccess(w, newCartResponse(store.Cart()))
	}
}

// CartItemStatus reports whether a product is in the cart and its quantity.
func CartItemStatus(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			unavailable(w, r, logg)
			return
		}
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, itemStatusResponse{
			ProductID: id,
			InCart:    store.Contains(id),
			Quantity:  store.Quantity(id),
		})
	}
}

// CartUpdateItem sets the quantity of a line; 0 removes it.
func CartUpdateItem(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			unavailable(w, r, logg)
			return
		}
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.UpdateItemQuantity(r.Context(), id, *payload.Quantity)
		responses.WriteSuccess(w, newCartResponse(store.Cart()))
	}
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			unavailable(w, r, logg)
			return
		}
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.RemoveItem(r.Context(), id)
		responses.WriteSuccess(w, newCartResponse(store.Cart()))
	}
}

// CartSummary prices the current cart for checkout.
func CartSummary(store Store, calc Summarizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || calc == nil {
			unavailable(w, r, logg)
			return
		}
		responses.WriteSuccess(w, calc.Summarize(store.Cart()))
	}
}
