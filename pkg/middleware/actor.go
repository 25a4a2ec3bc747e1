package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/accordhr/accord-hrms/pkg/composables"
)

// WithActor resolves the acting principal from gateway-set headers.
// Authentication happens upstream; this trusts X-Actor-* and only shapes the
// values into an Actor. Requests without an actor id pass through anonymous.
func WithActor() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := strings.TrimSpace(r.Header.Get("X-Actor-Id"))
			if rawID == "" {
				next.ServeHTTP(w, r)
				return
			}
			actorID, err := uuid.Parse(rawID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			actor := composables.Actor{
				ID:         actorID,
				Role:       composables.Role(strings.TrimSpace(r.Header.Get("X-Actor-Role"))),
				Username:   strings.TrimSpace(r.Header.Get("X-Actor-Username")),
				Department: strings.TrimSpace(r.Header.Get("X-Actor-Department")),
			}
			if rawEmployeeID := strings.TrimSpace(r.Header.Get("X-Actor-Employee-Id")); rawEmployeeID != "" {
				if employeeID, err := uuid.Parse(rawEmployeeID); err == nil {
					actor.EmployeeID = employeeID
				}
			}
			next.ServeHTTP(w, r.WithContext(composables.WithActor(r.Context(), actor)))
		})
	}
}
