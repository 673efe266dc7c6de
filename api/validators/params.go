package validators

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
)

// ParseUUIDParam reads a chi URL parameter and parses it as a UUID.
func ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}
