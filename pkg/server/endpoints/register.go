package endpoints

import (
	"github.com/ledgepoint/assetd/pkg/server"
)

// Module names for the admin surfaces, matching the seeded catalog.
const (
	ModuleRoles  = "roles"
	ModuleAssets = "assets_managments"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterAuthEndpoints(srv)
	RegisterRolesEndpoints(srv)
	RegisterPermissionsEndpoints(srv)
	RegisterAssetsEndpoints(srv)
	RegisterStatusEndpoints(srv)
}
