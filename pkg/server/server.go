package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/ledgepoint/assetd/pkg/authz"
	"github.com/ledgepoint/assetd/pkg/config"
	"github.com/ledgepoint/assetd/pkg/server/middleware"
	"github.com/ledgepoint/assetd/pkg/server/store"
	gormstore "github.com/ledgepoint/assetd/pkg/server/store/gorm"
)

// Server wires the stores, the authorization engine and the HTTP router.
type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.AssetdConfig

	CatalogStore store.CatalogStore
	GrantsStore  store.GrantsStore
	RolesStore   store.RolesStore
	UsersStore   store.UsersStore
	AssetsStore  store.AssetsStore
	HealthStore  store.HealthStore

	Resolver      *authz.Resolver
	Matrix        *authz.Matrix
	Consolidation *config.Consolidation
	JWTMiddleware *middleware.JWTAuthenticator

	srv *http.Server
}

// NewServer creates a Server with GORM-backed stores.
func NewServer(db *gorm.DB, tokenKey []byte, cfg *config.AssetdConfig) *Server {
	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    cfg.BindAddress + ":" + cfg.Port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	catalogStore := gormstore.NewCatalogStore(db)
	grantsStore := gormstore.NewGrantsStore(db)
	rolesStore := gormstore.NewRolesStore(db)

	resolver := authz.NewResolver(grantsStore)
	consolidation := config.NewConsolidation()
	matrix := authz.NewMatrix(catalogStore, grantsStore, rolesStore, resolver, func() authz.ConsolidationMap {
		return consolidation.Map()
	})

	return &Server{
		Router: router,
		DB:     db,
		Config: cfg,

		CatalogStore: catalogStore,
		GrantsStore:  grantsStore,
		RolesStore:   rolesStore,
		UsersStore:   gormstore.NewUsersStore(db),
		AssetsStore:  gormstore.NewAssetsStore(db),
		HealthStore:  gormstore.NewHealthStore(db),

		Resolver:      resolver,
		Matrix:        matrix,
		Consolidation: consolidation,
		JWTMiddleware: middleware.NewJWTAuthenticator(tokenKey, resolver),

		srv: srv,
	}
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
