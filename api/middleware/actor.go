package middleware

import (
	"net/http"
	"strings"

	"github.com/teamflowhq/teamflow-backend/pkg/logger"
)

const (
	actorIDHeader   = "X-User-Id"
	actorNameHeader = "X-Actor-Name"
)

// Actor lifts the gateway-provided actor headers into the request context.
// The API trusts the upstream gateway for identity; requests without the
// headers still pass through and are treated as anonymous.
func Actor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID := strings.TrimSpace(r.Header.Get(actorIDHeader)); userID != "" {
				ctx = WithUserID(ctx, userID)
				if logg != nil {
					ctx = logg.WithUserID(ctx, userID)
				}
			}
			if name := strings.TrimSpace(r.Header.Get(actorNameHeader)); name != "" {
				ctx = WithActorName(ctx, name)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
