package controllers

import (
	"context"
	"net/http"

	"github.com/westcoasttreez/storefront-backend/api/middleware"
	"github.com/westcoasttreez/storefront-backend/api/responses"
	"github.com/westcoasttreez/storefront-backend/api/validators"
	modesvc "github.com/westcoasttreez/storefront-backend/internal/mode"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
)

// activeModeSource is the read side of the mode selector.
type activeModeSource interface {
	Get(ctx context.Context, sessionID string) (enums.Mode, error)
}

// modeSelector is the full selector surface the mode endpoints need.
type modeSelector interface {
	activeModeSource
	Set(ctx context.Context, sessionID string, mode enums.Mode) error
	Clear(ctx context.Context, sessionID string) error
}

type setModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=delivery wholesale"`
}

// ModeGet returns the session's active mode, or null while no storefront has
// been chosen. The client keys its chooser screen off the null.
func ModeGet(selector modeSelector, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		mode, err := selector.Get(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if mode == "" {
			responses.WriteSuccess(w, map[string]any{"mode": nil})
			return
		}
		responses.WriteSuccess(w, map[string]any{"mode": mode})
	}
}

// ModeSet persists the session's mode choice. Switching mode never touches
// cart state.
func ModeSet(selector modeSelector, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload setModeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mode := enums.Mode(payload.Mode)
		if err := selector.Set(ctx, middleware.SessionIDFromContext(ctx), mode); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"mode": mode})
	}
}

// ModeClear resets the session to the unchosen state.
func ModeClear(selector modeSelector, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := selector.Clear(ctx, middleware.SessionIDFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"mode": nil})
	}
}

// browseMode resolves the mode for read-only surfaces: the session's choice
// when one exists, otherwise the delivery storefront. Checkout never uses
// this fallback.
func browseMode(ctx context.Context, modes activeModeSource, sessionID string) (enums.Mode, error) {
	mode, err := modes.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if mode == "" {
		return modesvc.DefaultMode, nil
	}
	return mode, nil
}
