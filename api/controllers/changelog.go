package controllers

import (
	"net/http"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	"github.com/stockroomhq/stockroom-backend/internal/changelog"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

func ChangelogList(svc changelog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.LimitQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entries, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
