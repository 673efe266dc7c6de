package controllers

import (
	"net/http"

	"github.com/bookverse/bookverse-backend/api/middleware"
	"github.com/bookverse/bookverse-backend/api/responses"
	checkoutsvc "github.com/bookverse/bookverse-backend/internal/checkout"
	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
	"github.com/bookverse/bookverse-backend/pkg/logger"
)

// Checkout submits the authenticated user's cart for purchase.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		result, err := svc.Execute(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
