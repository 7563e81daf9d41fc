package validators

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

// IDParam parses a positive integer URL parameter.
func IDParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name)
	}
	return uint(value), nil
}

// LimitQuery parses an optional non-negative "limit" query parameter.
// Zero means no limit.
func LimitQuery(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid limit")
	}
	return value, nil
}
