package authz

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/ledgepoint/assetd/pkg/server/store"
)

func staticConsolidation(cmap ConsolidationMap) func() ConsolidationMap {
	return func() ConsolidationMap { return cmap }
}

func catalogWith(t *testing.T) *MockCatalogStore {
	t.Helper()
	catalog := NewMockCatalogStore()
	catalog.On("ResourceByName", "employees").Return(&store.Resource{ID: 1, Name: "employees"})
	catalog.On("ResourceByName", "vendor").Return(&store.Resource{ID: 2, Name: "vendor"})
	catalog.On("ResourceByName", mock.Anything).Return(nil)
	catalog.On("ActionByCode", "C").Return(&store.Action{ID: 10, Code: "C"})
	catalog.On("ActionByCode", "V").Return(&store.Action{ID: 11, Code: "V"})
	catalog.On("ActionByCode", "VO").Return(&store.Action{ID: 12, Code: "VO", RequiresOwnership: true})
	catalog.On("ActionByCode", mock.Anything).Return(nil)
	return catalog
}

func TestReplaceRolePermissionsUnknownRole(t *testing.T) {
	roles := NewMockRolesStore()
	roles.On("RoleExists", uint(99)).Return(false)

	matrix := NewMatrix(NewMockCatalogStore(), NewMockGrantsStore(), roles, nil, staticConsolidation(nil))

	_, err := matrix.ReplaceRolePermissions(99, map[string]string{"employees": "V"}, 1)
	if !errors.Is(err, store.ErrRoleNotFound) {
		t.Errorf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestReplaceRolePermissions(t *testing.T) {
	roles := NewMockRolesStore()
	roles.On("RoleExists", uint(3)).Return(true)

	grants := NewMockGrantsStore()
	grants.On("ReplaceAll", uint(3), []store.Grant{
		{RoleID: 3, ResourceID: 1, ActionID: 10},
		{RoleID: 3, ResourceID: 1, ActionID: 11},
		{RoleID: 3, ResourceID: 2, ActionID: 12},
	}, uint(7)).Return(nil)

	matrix := NewMatrix(catalogWith(t), grants, roles, nil, staticConsolidation(nil))

	skipped, err := matrix.ReplaceRolePermissions(3, map[string]string{
		"employees": "C,V",
		"vendor":    "VO",
	}, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("expected no skipped entries, got %v", skipped)
	}
	grants.AssertExpectations(t)
}

func TestReplaceRolePermissionsEmptyCSVDropsModule(t *testing.T) {
	roles := NewMockRolesStore()
	roles.On("RoleExists", uint(3)).Return(true)

	grants := NewMockGrantsStore()
	grants.On("ReplaceAll", uint(3), []store.Grant{
		{RoleID: 3, ResourceID: 1, ActionID: 11},
	}, uint(7)).Return(nil)

	matrix := NewMatrix(catalogWith(t), grants, roles, nil, staticConsolidation(nil))

	// An empty CSV removes the module's grants without a skipped entry.
	skipped, err := matrix.ReplaceRolePermissions(3, map[string]string{
		"employees": "V",
		"vendor":    "",
	}, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("expected no skipped entries, got %v", skipped)
	}
	grants.AssertExpectations(t)
}

func TestReplaceRolePermissionsSkipsUnknown(t *testing.T) {
	roles := NewMockRolesStore()
	roles.On("RoleExists", uint(3)).Return(true)

	grants := NewMockGrantsStore()
	grants.On("ReplaceAll", uint(3), []store.Grant{
		{RoleID: 3, ResourceID: 1, ActionID: 11},
	}, uint(7)).Return(nil)

	matrix := NewMatrix(catalogWith(t), grants, roles, nil, staticConsolidation(nil))

	skipped, err := matrix.ReplaceRolePermissions(3, map[string]string{
		"employees": "V,X",
		"no_such":   "V",
	}, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []SkippedEntry{
		{Module: "employees", Action: "X", Reason: "unknown action"},
		{Module: "no_such", Reason: "unknown module"},
	}
	if !reflect.DeepEqual(skipped, want) {
		t.Errorf("expected %v, got %v", want, skipped)
	}
	grants.AssertExpectations(t)
}

func TestReplaceRolePermissionsStoreFailure(t *testing.T) {
	roles := NewMockRolesStore()
	roles.On("RoleExists", uint(3)).Return(true)

	grants := NewMockGrantsStore()
	grants.On("ReplaceAll", uint(3), mock.Anything, uint(7)).Return(errors.New("deadlock"))

	matrix := NewMatrix(catalogWith(t), grants, roles, nil, staticConsolidation(nil))

	_, err := matrix.ReplaceRolePermissions(3, map[string]string{"employees": "V"}, 7)
	if err == nil {
		t.Error("expected store error to propagate")
	}
}

func TestConsolidate(t *testing.T) {
	grants := NewMockGrantsStore()
	grants.On("AbilitiesForRole", uint(5)).Return([]store.Ability{
		{Module: "asset_make", Action: "V"},
		{Module: "asset_type", Action: "E"},
		{Module: "asset_type", Action: "V"},
		{Module: "assets_managments", Action: "C"},
		{Module: "employees", Action: "VO"},
	}, nil)
	resolver := NewResolver(grants)

	cmap := ConsolidationMap{
		"settings_assets": {"asset_make", "asset_type", "asset_capacity", "assets_managments"},
	}
	matrix := NewMatrix(NewMockCatalogStore(), grants, NewMockRolesStore(), resolver, staticConsolidation(cmap))

	got := matrix.Consolidate(5)
	want := map[string][]string{
		"settings_assets": {"C", "E", "V"},
		"employees":       {"VO"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestConsolidateEmptyGroupOmitted(t *testing.T) {
	grants := NewMockGrantsStore()
	grants.On("AbilitiesForRole", uint(5)).Return([]store.Ability{
		{Module: "employees", Action: "V"},
	}, nil)
	resolver := NewResolver(grants)

	cmap := ConsolidationMap{
		"settings_assets": {"asset_make", "asset_type"},
	}
	matrix := NewMatrix(NewMockCatalogStore(), grants, NewMockRolesStore(), resolver, staticConsolidation(cmap))

	got := matrix.Consolidate(5)
	if _, ok := got["settings_assets"]; ok {
		t.Error("expected consolidated key with no underlying grants to be omitted")
	}
	if !reflect.DeepEqual(got["employees"], []string{"V"}) {
		t.Errorf("expected uncovered module to pass through, got %v", got)
	}
}

func TestGetCatalogView(t *testing.T) {
	catalog := NewMockCatalogStore()
	catalog.On("ListResources").Return([]store.Resource{
		{ID: 1, Name: "employees", Group: "hr"},
		{ID: 2, Name: "asset_make", Group: "assets"},
		{ID: 3, Name: "asset_type", Group: "assets"},
	}, nil)
	catalog.On("ListActions").Return([]store.Action{
		{ID: 10, Code: "C"},
		{ID: 11, Code: "V"},
	}, nil)

	matrix := NewMatrix(catalog, NewMockGrantsStore(), NewMockRolesStore(), nil, staticConsolidation(nil))

	view, err := matrix.GetCatalogView()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(view.Groups))
	}
	if view.Groups[0].Group != "assets" || len(view.Groups[0].Resources) != 2 {
		t.Errorf("unexpected first group: %+v", view.Groups[0])
	}
	if view.Groups[1].Group != "hr" || len(view.Groups[1].Resources) != 1 {
		t.Errorf("unexpected second group: %+v", view.Groups[1])
	}
	if len(view.Actions) != 2 {
		t.Errorf("expected 2 actions, got %d", len(view.Actions))
	}
}
