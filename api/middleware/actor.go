package middleware

import (
	"net/http"
	"strconv"

	"github.com/stockroomhq/stockroom-backend/pkg/actor"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

const actingUserHeader = "X-Acting-User"

// ActingUser reads the acting user id set by the fronting identity service
// and scopes it to the request context. A missing or malformed header leaves
// the request anonymous; writes then land with no attributed user.
func ActingUser(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(actingUserHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || userID == 0 {
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "acting_user", raw), "malformed acting user header")
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := actor.WithUserID(r.Context(), uint(userID))
			if logg != nil {
				ctx = logg.WithUserID(ctx, raw)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
