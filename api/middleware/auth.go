package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-backend/api/responses"
	pkgauth "github.com/bookverse/bookverse-backend/pkg/auth"
	"github.com/bookverse/bookverse-backend/pkg/config"
	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
	"github.com/bookverse/bookverse-backend/pkg/logger"
)

// Auth validates a bearer token minted by the identity provider and seeds the
// request context with the user id. Every shopping route sits behind it; an
// absent or broken token is the "login required" rejection.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeUnauthorized, "login required"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeUnauthorized, "login required"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, apperrors.Wrap(apperrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.UserID == uuid.Nil {
				responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeUnauthorized, "missing user id"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
