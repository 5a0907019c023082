package endpoints

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/ledgepoint/assetd/pkg/authz"
	"github.com/ledgepoint/assetd/pkg/config"
	"github.com/ledgepoint/assetd/pkg/server"
	"github.com/ledgepoint/assetd/pkg/server/middleware"
)

var testTokenKey = []byte("endpoints-test-signing-key")

// testServer bundles a server wired with mock stores and the mocks
// themselves for setting expectations.
type testServer struct {
	Server  *server.Server
	Catalog *MockCatalogStore
	Grants  *MockGrantsStore
	Roles   *MockRolesStore
	Users   *MockUsersStore
	Assets  *MockAssetsStore
	Health  *MockHealthStore
}

// newTestServer builds a server over mock stores and registers every
// endpoint on it.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	catalog := NewMockCatalogStore()
	grants := NewMockGrantsStore()
	roles := NewMockRolesStore()
	users := NewMockUsersStore()
	assets := NewMockAssetsStore()
	health := NewMockHealthStore()

	resolver := authz.NewResolver(grants)
	consolidation := config.NewConsolidation()
	matrix := authz.NewMatrix(catalog, grants, roles, resolver, func() authz.ConsolidationMap {
		return consolidation.Map()
	})

	srv := &server.Server{
		Router: mux.NewRouter().UseEncodedPath(),
		Config: &config.AssetdConfig{TokenTTL: 60},

		CatalogStore: catalog,
		GrantsStore:  grants,
		RolesStore:   roles,
		UsersStore:   users,
		AssetsStore:  assets,
		HealthStore:  health,

		Resolver:      resolver,
		Matrix:        matrix,
		Consolidation: consolidation,
		JWTMiddleware: middleware.NewJWTAuthenticator(testTokenKey, resolver),
	}

	RegisterAll(srv)

	return &testServer{
		Server:  srv,
		Catalog: catalog,
		Grants:  grants,
		Roles:   roles,
		Users:   users,
		Assets:  assets,
		Health:  health,
	}
}

// login issues a token for the given user and role directly.
func (ts *testServer) login(t *testing.T, userID uint, email string, roleID uint) string {
	t.Helper()
	token, err := ts.Server.JWTMiddleware.IssueToken(userID, email, roleID, time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// do runs a request through the router and returns the recorder.
func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.Server.Router.ServeHTTP(rec, req)
	return rec
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
