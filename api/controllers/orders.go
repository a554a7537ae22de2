package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/westcoasttreez/storefront-backend/api/middleware"
	"github.com/westcoasttreez/storefront-backend/api/responses"
	"github.com/westcoasttreez/storefront-backend/api/validators"
	ordersvc "github.com/westcoasttreez/storefront-backend/internal/orders"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
	"github.com/westcoasttreez/storefront-backend/pkg/pagination"
)

// OrdersList returns one page of the session's order history, newest first.
func OrdersList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.List(ctx, middleware.SessionIDFromContext(ctx), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// OrdersGet returns one of the session's orders by id.
func OrdersGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		order, err := svc.Get(ctx, middleware.SessionIDFromContext(ctx), chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
