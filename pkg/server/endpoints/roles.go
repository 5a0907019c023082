package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ledgepoint/assetd/pkg/audit"
	"github.com/ledgepoint/assetd/pkg/authz"
	"github.com/ledgepoint/assetd/pkg/identity"
	"github.com/ledgepoint/assetd/pkg/server"
	"github.com/ledgepoint/assetd/pkg/server/middleware"
	"github.com/ledgepoint/assetd/pkg/server/store"
)

// ErrRoleInUse is returned by the admin delete path when user accounts
// still reference the role.
var ErrRoleInUse = errors.New("role is assigned to user accounts")

type roleRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active,omitempty"`
}

// RegisterRolesEndpoints registers the role identity CRUD endpoints. The
// gate guards entry per route; handlers that read role data do not scope
// rows since roles carry no ownership.
func RegisterRolesEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/roles").Subrouter()
	r.Use(s.JWTMiddleware.Middleware)

	list := r.NewRoute().Subrouter()
	list.Use(middleware.Require(ModuleRoles, authz.ActionView))
	list.HandleFunc("", handleListRoles(s.RolesStore)).Methods("GET")
	list.HandleFunc("/{id:[0-9]+}", handleShowRole(s.RolesStore, s.Resolver)).Methods("GET")

	create := r.NewRoute().Subrouter()
	create.Use(middleware.Require(ModuleRoles, authz.ActionCreate))
	create.HandleFunc("", handleCreateRole(s.RolesStore)).Methods("POST")

	update := r.NewRoute().Subrouter()
	update.Use(middleware.Require(ModuleRoles, authz.ActionEdit))
	update.HandleFunc("/{id:[0-9]+}", handleUpdateRole(s.RolesStore)).Methods("PUT")

	del := r.NewRoute().Subrouter()
	del.Use(middleware.Require(ModuleRoles, authz.ActionDelete))
	del.HandleFunc("/{id:[0-9]+}", handleDeleteRole(s.RolesStore)).Methods("DELETE")
}

func roleIDVar(r *http.Request) uint {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id)
}

func handleListRoles(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := roles.ListRoles()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list roles")
			return
		}
		respondWithJSON(w, http.StatusOK, all)
	}
}

func handleShowRole(roles store.RolesStore, resolver *authz.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID := roleIDVar(r)
		role := roles.FetchRole(roleID)
		if role == nil {
			respondWithError(w, http.StatusNotFound, "Role not found")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"role":        role,
			"permissions": resolver.ResolveCompatibility(int64(roleID)),
		})
	}
}

func handleCreateRole(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req roleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Role name is required")
			return
		}

		principal, _ := identity.Get(r.Context())
		role, err := roles.CreateRole(req.Name, principal.UserID)
		if errors.Is(err, store.ErrRoleExists) {
			respondWithError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create role")
			return
		}

		audit.Emit(audit.RoleEvent{ActingUserID: principal.UserID, RoleID: role.ID, RoleName: role.Name, Operation: "create"})
		respondWithJSON(w, http.StatusCreated, role)
	}
}

func handleUpdateRole(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID := roleIDVar(r)

		var req roleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Role name is required")
			return
		}
		active := true
		if req.Active != nil {
			active = *req.Active
		}

		principal, _ := identity.Get(r.Context())
		err := roles.UpdateRole(roleID, req.Name, active, principal.UserID)
		if errors.Is(err, store.ErrRoleNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, store.ErrRoleExists) {
			respondWithError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update role")
			return
		}

		audit.Emit(audit.RoleEvent{ActingUserID: principal.UserID, RoleID: roleID, RoleName: req.Name, Operation: "update"})
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// handleDeleteRole is the guarded deletion path: it refuses to delete a
// role that user accounts still reference. The store-level DeleteRole has
// no such guard; seed tooling uses it directly.
func handleDeleteRole(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID := roleIDVar(r)

		role := roles.FetchRole(roleID)
		if role == nil {
			respondWithError(w, http.StatusNotFound, "Role not found")
			return
		}

		if roles.CountUsersWithRole(roleID) > 0 {
			respondWithError(w, http.StatusConflict, ErrRoleInUse.Error())
			return
		}

		if err := roles.DeleteRole(roleID); err != nil {
			if errors.Is(err, store.ErrRoleNotFound) {
				respondWithError(w, http.StatusNotFound, err.Error())
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to delete role")
			return
		}

		principal, _ := identity.Get(r.Context())
		audit.Emit(audit.RoleEvent{ActingUserID: principal.UserID, RoleID: roleID, RoleName: role.Name, Operation: "delete"})
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
