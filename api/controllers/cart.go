package controllers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/westcoasttreez/storefront-backend/api/middleware"
	"github.com/westcoasttreez/storefront-backend/api/responses"
	"github.com/westcoasttreez/storefront-backend/api/validators"
	cartsvc "github.com/westcoasttreez/storefront-backend/internal/cart"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
)

type addItemRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Mode     string `json:"mode,omitempty" validate:"omitempty,oneof=delivery wholesale"`
	Quantity int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Weight   string `json:"weight,omitempty" validate:"omitempty,oneof=eighth q h oz"`
	Flavor   string `json:"flavor,omitempty"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartGet returns the session's cart snapshot for the requested or active mode.
func CartGet(carts *cartsvc.Service, modes activeModeSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		mode, err := validators.ParseQueryMode(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if mode == "" {
			mode, err = browseMode(ctx, modes, sessionID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, carts.Snapshot(ctx, sessionID, mode))
	}
}

// CartAddItem merges an item into the session's cart.
func CartAddItem(carts *cartsvc.Service, modes activeModeSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mode := enums.Mode(payload.Mode)
		if mode == "" {
			active, err := browseMode(ctx, modes, sessionID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			mode = active
		}

		line, snap, err := carts.Add(ctx, sessionID, mode, cartsvc.AddRequest{
			ItemID:   payload.ItemID,
			Weight:   enums.Weight(payload.Weight),
			Flavor:   payload.Flavor,
			Quantity: payload.Quantity,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"line": line, "cart": snap})
	}
}

// CartUpdateItem sets a line's quantity; zero removes the line.
func CartUpdateItem(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		lineKey, err := lineKeyParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		snap, err := carts.UpdateQuantity(ctx, middleware.SessionIDFromContext(ctx), lineKey, *payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// CartRemoveItem deletes a line.
func CartRemoveItem(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		lineKey, err := lineKeyParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		snap, err := carts.Remove(ctx, middleware.SessionIDFromContext(ctx), lineKey)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// CartClear empties one mode's lines, or the whole cart when no mode is given.
func CartClear(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		mode, err := validators.ParseQueryMode(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		snap := carts.Clear(ctx, middleware.SessionIDFromContext(ctx), mode)
		responses.WriteSuccess(w, snap)
	}
}

func lineKeyParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "lineKey")
	lineKey, err := url.PathUnescape(raw)
	if err != nil || lineKey == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "malformed cart line key")
	}
	return lineKey, nil
}
