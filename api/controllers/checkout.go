package controllers

import (
	"net/http"

	"github.com/westcoasttreez/storefront-backend/api/middleware"
	"github.com/westcoasttreez/storefront-backend/api/responses"
	"github.com/westcoasttreez/storefront-backend/api/validators"
	checkoutsvc "github.com/westcoasttreez/storefront-backend/internal/checkout"
	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
	"github.com/westcoasttreez/storefront-backend/pkg/types"
)

type checkoutRequest struct {
	Customer       types.Customer `json:"customer" validate:"required"`
	Address        types.Address  `json:"address" validate:"required"`
	Company        string         `json:"company,omitempty"`
	PaymentMethod  string         `json:"payment_method" validate:"required,oneof=cashapp venmo cash wire"`
	DeliveryWindow string         `json:"delivery_window,omitempty" validate:"omitempty,oneof=sameday nextday flexible"`
	Notes          string         `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// Checkout places an order from the session's active-mode cart.
func Checkout(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(ctx, middleware.SessionIDFromContext(ctx), checkoutsvc.Input{
			Customer:       payload.Customer,
			Address:        payload.Address,
			Company:        payload.Company,
			PaymentMethod:  enums.PaymentMethod(payload.PaymentMethod),
			DeliveryWindow: enums.DeliveryWindow(payload.DeliveryWindow),
			Notes:          payload.Notes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
