package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ledgepoint/assetd/pkg/authz"
	"github.com/ledgepoint/assetd/pkg/identity"
	"github.com/ledgepoint/assetd/pkg/server"
	"github.com/ledgepoint/assetd/pkg/server/middleware"
	"github.com/ledgepoint/assetd/pkg/server/store"
)

// RegisterAssetsEndpoints registers the asset endpoints. The gate controls
// entry per route; the read handlers then narrow the working row set with
// the ownership scope from Resolver.Scope, so a role holding only VO sees
// only rows it created or is assigned to.
func RegisterAssetsEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/assets").Subrouter()
	r.Use(s.JWTMiddleware.Middleware)

	read := r.NewRoute().Subrouter()
	read.Use(middleware.Require(ModuleAssets, authz.ActionView))
	read.HandleFunc("", handleListAssets(s.AssetsStore, s.Resolver)).Methods("GET")
	read.HandleFunc("/{id:[0-9]+}", handleShowAsset(s.AssetsStore, s.Resolver)).Methods("GET")

	create := r.NewRoute().Subrouter()
	create.Use(middleware.Require(ModuleAssets, authz.ActionCreate))
	create.HandleFunc("", handleCreateAsset(s.AssetsStore)).Methods("POST")
}

func handleListAssets(assets store.AssetsStore, resolver *authz.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, _ := identity.Get(r.Context())

		allowed, scope := resolver.Scope(principal.RoleID, principal.UserID, ModuleAssets, store.AssetOwnerFields...)
		if !allowed {
			// The gate already vetted entry; no view grant here means the
			// grants changed between the two reads.
			respondWithJSON(w, http.StatusOK, []store.Asset{})
			return
		}

		rows, err := assets.ListAssets(scope)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list assets")
			return
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

func handleShowAsset(assets store.AssetsStore, resolver *authz.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, _ := identity.Get(r.Context())
		assetID, _ := strconv.ParseUint(muxVar(r, "id"), 10, 64)

		allowed, scope := resolver.Scope(principal.RoleID, principal.UserID, ModuleAssets, store.AssetOwnerFields...)
		if !allowed {
			respondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}

		asset, err := assets.FetchAsset(uint(assetID), scope)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch asset")
			return
		}
		if asset == nil {
			// Out-of-scope rows are indistinguishable from missing ones.
			respondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}
		respondWithJSON(w, http.StatusOK, asset)
	}
}

type assetRequest struct {
	Tag        string  `json:"tag"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	AssignedTo []int64 `json:"assigned_to"`
}

func handleCreateAsset(assets store.AssetsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Tag == "" || req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Asset tag and name are required")
			return
		}

		principal, _ := identity.Get(r.Context())
		asset := &store.Asset{
			Tag:        req.Tag,
			Name:       req.Name,
			Status:     req.Status,
			AssignedTo: req.AssignedTo,
		}
		if err := assets.CreateAsset(asset, principal.UserID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create asset")
			return
		}
		respondWithJSON(w, http.StatusCreated, asset)
	}
}
