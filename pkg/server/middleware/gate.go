package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ledgepoint/assetd/pkg/audit"
	"github.com/ledgepoint/assetd/pkg/authz"
	"github.com/ledgepoint/assetd/pkg/identity"
)

// Require declares the (module, action) requirement for the routes it
// wraps. Requests whose principal lacks the action (or its own-variant) on
// the module are rejected with 403 naming both. Routes without a Require
// wrapper carry no requirement and pass through.
func Require(module, action string) mux.MiddlewareFunc {
	req := authz.Requirement{Module: module, Action: action}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := identity.Get(r.Context())
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			err := authz.Check(principal.Abilities, req)
			audit.Emit(audit.CheckEvent{
				UserID:  principal.UserID,
				RoleID:  principal.RoleID,
				Module:  req.Module,
				Action:  req.Action,
				Allowed: err == nil,
			})
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":  err.Error(),
					"module": req.Module,
					"action": req.Action,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
