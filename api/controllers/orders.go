package controllers

import (
	"net/http"

	"github.com/bookverse/bookverse-backend/api/middleware"
	"github.com/bookverse/bookverse-backend/api/responses"
	"github.com/bookverse/bookverse-backend/api/validators"
	"github.com/bookverse/bookverse-backend/internal/orders"
	"github.com/bookverse/bookverse-backend/pkg/logger"
)

// GetOrder serves one of the authenticated user's completed orders.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
