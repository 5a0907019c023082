package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/ledgepoint/assetd/pkg/authz"
	"github.com/ledgepoint/assetd/pkg/server/store"
)

func TestGetPermissions(t *testing.T) {
	ts := newTestServer(t)
	ts.Grants.On("AbilitiesForRole", uint(1)).Return(adminAbilities(), nil)
	ts.Grants.On("AbilitiesForRole", uint(2)).Return([]store.Ability{
		{Module: "employees", Action: "C"},
		{Module: "employees", Action: "V"},
		{Module: "work_orders", Action: "VO"},
	}, nil)

	token := ts.login(t, 1, "admin@example.com", 1)
	rec := ts.do(authed(httptest.NewRequest("GET", "/roles/2/permissions", nil), token))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var perms map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&perms); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if perms["employees"] != "C,V" || perms["work_orders"] != "VO" {
		t.Errorf("unexpected permissions: %v", perms)
	}
}

func TestGetPermissionsUnknownRole(t *testing.T) {
	ts := newTestServer(t)
	ts.Grants.On("AbilitiesForRole", uint(1)).Return(adminAbilities(), nil)
	ts.Grants.On("AbilitiesForRole", uint(99)).Return([]store.Ability{}, nil)

	token := ts.login(t, 1, "admin@example.com", 1)
	rec := ts.do(authed(httptest.NewRequest("GET", "/roles/99/permissions", nil), token))

	// Queries over unknown roles answer empty, not an error.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var perms map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&perms); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(perms) != 0 {
		t.Errorf("expected empty map, got %v", perms)
	}
}

func TestGetModulePermission(t *testing.T) {
	ts := newTestServer(t)
	ts.Grants.On("AbilitiesForRole", uint(1)).Return(adminAbilities(), nil)
	ts.Grants.On("AbilitiesForRoleAndModule", uint(2), "employees").Return([]store.Ability{
		{Module: "employees", Action: "V"},
		{Module: "employees", Action: "VO"},
	}, nil)

	token := ts.login(t, 1, "admin@example.com", 1)
	rec := ts.do(authed(httptest.NewRequest("GET", "/roles/2/permissions/employees", nil), token))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var perm authz.ModulePermission
	if err := json.NewDecoder(rec.Body).Decode(&perm); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if perm.Module != "employees" || perm.Actions != "V,VO" {
		t.Errorf("unexpected permission: %+v", perm)
	}
}

func TestGetConsolidated(t *testing.T) {
	ts := newTestServer(t)
	ts.Grants.On("AbilitiesForRole", uint(1)).Return(adminAbilities(), nil)
	ts.Grants.On("AbilitiesForRole", uint(2)).Return([]store.Ability{
		{Module: "asset_make", Action: "V"},
		{Module: "asset_type", Action: "E"},
	}, nil)
	ts.Roles.On("RoleExists", uint(2)).Return(true)

	token := ts.login(t, 1, "admin@example.com", 1)
	rec := ts.do(authed(httptest.NewRequest("GET", "/roles/2/permissions/consolidated", nil), token))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var consolidated map[string][]string
	if err := json.NewDecoder(rec.Body).Decode(&consolidated); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	// The default map folds the fine settings modules into one key.
	if got := consolidated["settings_assets"]; len(got) != 2 || got[0] != "E" || got[1] != "V" {
		t.Errorf("unexpected consolidated view: %v", consolidated)
	}
}

func TestGetConsolidatedUnknownRole(t *testing.T) {
	ts := newTestServer(t)
	ts.Grants.On("AbilitiesForRole", uint(1)).Return(adminAbilities(), nil)
	ts.Roles.On("RoleExists", uint(99)).Return(false)

	token := ts.login(t, 1, "admin@example.com", 1)
	rec := ts.do(authed(httptest.NewRequest("GET", "/roles/99/permissions/consolidated", nil), token))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestReplacePermissions(t *testing.T) {
	ts := newTestServer(t)
	ts.Grants.On("AbilitiesForRole", uint(1)).Return(adminAbilities(), nil)
	ts.Roles.On("RoleExists", uint(2)).Return(true)
	ts.Catalog.On("ResourceByName", "employees").Return(&store.Resource{ID: 4, Name: "employees"})
	ts.Catalog.On("ResourceByName", "bogus").Return(nil)
	ts.Catalog.On("ActionByCode", "V").Return(&store.Action{ID: 11, Code: "V"})
	ts.Catalog.On("ActionByCode", "Z").Return(nil)
	ts.Grants.On("ReplaceAll", uint(2), []store.Grant{
		{RoleID: 2, ResourceID: 4, ActionID: 11},
	}, uint(1)).Return(nil)

	token := ts.login(t, 1, "admin@example.com", 1)
	body := `{"employees":"V,Z","bogus":"V","vendor":""}`
	req := httptest.NewRequest("PUT", "/roles/2/permissions", strings.NewReader(body))
	rec := ts.do(authed(req, token))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp replacePermissionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Status != "replaced" {
		t.Errorf("unexpected status: %q", resp.Status)
	}
	// The unknown action and module are reported, not fatal. The empty CSV
	// for vendor drops the module silently.
	if len(resp.Skipped) != 2 {
		t.Fatalf("expected 2 skipped entries, got %v", resp.Skipped)
	}
	ts.Grants.AssertExpectations(t)
}

func TestReplacePermissionsUnknownRole(t *testing.T) {
	ts := newTestServer(t)
	ts.Grants.On("AbilitiesForRole", uint(1)).Return(adminAbilities(), nil)
	ts.Roles.On("RoleExists", uint(99)).Return(false)

	token := ts.login(t, 1, "admin@example.com", 1)
	req := httptest.NewRequest("PUT", "/roles/99/permissions", strings.NewReader(`{"employees":"V"}`))
	rec := ts.do(authed(req, token))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestReplacePermissionsRequiresEdit(t *testing.T) {
	ts := newTestServer(t)
	// View grants alone cannot write the matrix.
	ts.Grants.On("AbilitiesForRole", uint(5)).Return([]store.Ability{
		{Module: ModuleRoles, Action: "V"},
	}, nil)

	token := ts.login(t, 9, "viewer@example.com", 5)
	req := httptest.NewRequest("PUT", "/roles/2/permissions", strings.NewReader(`{"employees":"V"}`))
	rec := ts.do(authed(req, token))

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	ts.Grants.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCatalog(t *testing.T) {
	ts := newTestServer(t)
	ts.Grants.On("AbilitiesForRole", uint(1)).Return(adminAbilities(), nil)
	ts.Catalog.On("ListResources").Return([]store.Resource{
		{ID: 1, Name: "asset_make", Group: "assets"},
		{ID: 2, Name: "employees", Group: "hr"},
	}, nil)
	ts.Catalog.On("ListActions").Return([]store.Action{
		{ID: 10, Code: "C"},
		{ID: 11, Code: "V"},
	}, nil)

	token := ts.login(t, 1, "admin@example.com", 1)
	rec := ts.do(authed(httptest.NewRequest("GET", "/catalog", nil), token))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view authz.CatalogView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(view.Groups) != 2 || len(view.Actions) != 2 {
		t.Errorf("unexpected catalog view: %+v", view)
	}
}

func TestCheckPermission(t *testing.T) {
	ts := newTestServer(t)
	ts.Grants.On("AbilitiesForRole", uint(1)).Return(adminAbilities(), nil)
	ts.Grants.On("AbilitiesForRole", uint(2)).Return([]store.Ability{
		{Module: "employees", Action: "VO"},
	}, nil)

	token := ts.login(t, 1, "admin@example.com", 1)

	tests := []struct {
		name    string
		query   string
		allowed bool
	}{
		{"own variant satisfies", "role=2&module=employees&action=V", true},
		{"missing action", "role=2&module=employees&action=D", false},
		// With no role parameter the caller's own role is checked.
		{"defaults to caller role", "module=" + ModuleRoles + "&action=C", true},
		{"unparseable role has no permissions", "role=abc&module=employees&action=V", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(authed(httptest.NewRequest("GET", "/permissions/check?"+tt.query, nil), token))
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}

			var resp checkResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if resp.Allowed != tt.allowed {
				t.Errorf("expected allowed=%v, got %v", tt.allowed, resp.Allowed)
			}
		})
	}
}

func TestCheckPermissionMissingParams(t *testing.T) {
	ts := newTestServer(t)
	ts.Grants.On("AbilitiesForRole", uint(1)).Return(adminAbilities(), nil)

	token := ts.login(t, 1, "admin@example.com", 1)
	rec := ts.do(authed(httptest.NewRequest("GET", "/permissions/check?module=employees", nil), token))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
