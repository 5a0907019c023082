package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ledgepoint/assetd/pkg/audit"
	"github.com/ledgepoint/assetd/pkg/authz"
	"github.com/ledgepoint/assetd/pkg/identity"
	"github.com/ledgepoint/assetd/pkg/server"
	"github.com/ledgepoint/assetd/pkg/server/middleware"
	"github.com/ledgepoint/assetd/pkg/server/store"
)

// RegisterPermissionsEndpoints registers the permission matrix, catalog and
// check endpoints.
func RegisterPermissionsEndpoints(s *server.Server) {
	roles := s.Router.PathPrefix("/roles").Subrouter()
	roles.Use(s.JWTMiddleware.Middleware)

	read := roles.NewRoute().Subrouter()
	read.Use(middleware.Require(ModuleRoles, authz.ActionView))
	read.HandleFunc("/{id:[0-9]+}/permissions", handleGetPermissions(s.Resolver)).Methods("GET")
	read.HandleFunc("/{id:[0-9]+}/permissions/consolidated", handleGetConsolidated(s.RolesStore, s.Matrix)).Methods("GET")
	read.HandleFunc("/{id:[0-9]+}/permissions/{module}", handleGetModulePermission(s.Resolver)).Methods("GET")

	write := roles.NewRoute().Subrouter()
	write.Use(middleware.Require(ModuleRoles, authz.ActionEdit))
	write.HandleFunc("/{id:[0-9]+}/permissions", handleReplacePermissions(s.Matrix)).Methods("PUT")

	catalog := s.Router.PathPrefix("/catalog").Subrouter()
	catalog.Use(s.JWTMiddleware.Middleware)
	catalog.Use(middleware.Require(ModuleRoles, authz.ActionView))
	catalog.HandleFunc("", handleGetCatalog(s.Matrix)).Methods("GET")

	check := s.Router.PathPrefix("/permissions/check").Subrouter()
	check.Use(s.JWTMiddleware.Middleware)
	check.HandleFunc("", handleCheckPermission(s.Resolver)).Methods("GET")
}

// handleGetPermissions returns the role's module-to-CSV compatibility map.
// Modules with no grants are absent; an unknown role yields an empty map.
func handleGetPermissions(resolver *authz.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, resolver.ResolveCompatibility(int64(roleIDVar(r))))
	}
}

func handleGetModulePermission(resolver *authz.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		module := muxVar(r, "module")
		respondWithJSON(w, http.StatusOK, resolver.ResolveModule(int64(roleIDVar(r)), module))
	}
}

func handleGetConsolidated(roles store.RolesStore, matrix *authz.Matrix) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID := roleIDVar(r)
		if !roles.RoleExists(roleID) {
			respondWithError(w, http.StatusNotFound, "Role not found")
			return
		}
		respondWithJSON(w, http.StatusOK, matrix.Consolidate(roleID))
	}
}

type replacePermissionsResponse struct {
	Status  string               `json:"status"`
	Skipped []authz.SkippedEntry `json:"skipped,omitempty"`
}

// handleReplacePermissions is the bulk matrix write: the request body is
// the full module-to-CSV map and the role's previous grant set is replaced
// wholesale. Unknown modules and action codes never fail the request; they
// come back in the skipped list.
func handleReplacePermissions(matrix *authz.Matrix) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID := roleIDVar(r)

		var perms map[string]string
		if err := json.NewDecoder(r.Body).Decode(&perms); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}

		principal, _ := identity.Get(r.Context())
		skipped, err := matrix.ReplaceRolePermissions(roleID, perms, principal.UserID)
		if errors.Is(err, store.ErrRoleNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to replace permissions")
			return
		}

		audit.Emit(audit.MatrixReplaceEvent{
			ActingUserID: principal.UserID,
			RoleID:       roleID,
			GrantCount:   len(perms),
			SkippedCount: len(skipped),
		})
		respondWithJSON(w, http.StatusOK, replacePermissionsResponse{Status: "replaced", Skipped: skipped})
	}
}

func handleGetCatalog(matrix *authz.Matrix) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := matrix.GetCatalogView()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load catalog")
			return
		}
		respondWithJSON(w, http.StatusOK, view)
	}
}

type checkResponse struct {
	Allowed bool   `json:"allowed"`
	Module  string `json:"module"`
	Action  string `json:"action"`
}

// handleCheckPermission answers a single (role, module, action) question.
// With no role parameter it checks the caller's own role. Unparseable role
// ids resolve to no permissions, never an error.
func handleCheckPermission(resolver *authz.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		module := r.URL.Query().Get("module")
		action := r.URL.Query().Get("action")
		if module == "" || action == "" {
			respondWithError(w, http.StatusBadRequest, "module and action are required")
			return
		}

		principal, _ := identity.Get(r.Context())
		roleID := principal.RoleID
		if v := r.URL.Query().Get("role"); v != "" {
			roleID, _ = strconv.ParseInt(v, 10, 64)
		}

		err := authz.Check(resolver.Resolve(roleID), authz.Requirement{Module: module, Action: action})
		respondWithJSON(w, http.StatusOK, checkResponse{Allowed: err == nil, Module: module, Action: action})
	}
}
