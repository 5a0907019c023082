package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/ledgepoint/assetd/pkg/audit"
	"github.com/ledgepoint/assetd/pkg/identity"
	"github.com/ledgepoint/assetd/pkg/server"
	"github.com/ledgepoint/assetd/pkg/server/store"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type whoamiResponse struct {
	UserID    uint            `json:"user_id"`
	Email     string          `json:"email"`
	RoleID    int64           `json:"role_id"`
	Abilities []store.Ability `json:"abilities"`
}

// RegisterAuthEndpoints registers login and whoami
func RegisterAuthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/authn/login", handleLogin(s)).Methods("POST")

	whoami := s.Router.PathPrefix("/whoami").Subrouter()
	whoami.Use(s.JWTMiddleware.Middleware)
	whoami.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleLogin(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}

		user := s.UsersStore.VerifyPassword(req.Email, req.Password)
		audit.Emit(audit.AuthnEvent{Email: req.Email, Success: user != nil})
		if user == nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := s.JWTMiddleware.IssueToken(user.ID, user.Email, user.RoleID, s.Config.TokenLifetime())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
			return
		}

		respondWithJSON(w, http.StatusOK, loginResponse{Token: token})
	}
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := identity.Get(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		respondWithJSON(w, http.StatusOK, whoamiResponse{
			UserID:    principal.UserID,
			Email:     principal.Email,
			RoleID:    principal.RoleID,
			Abilities: principal.Abilities,
		})
	}
}
