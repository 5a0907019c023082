package authz

import (
	"sort"
	"strings"

	"github.com/ledgepoint/assetd/pkg/server/store"
)

// SkippedEntry records a matrix write entry that referenced an unknown
// module or action code. Skipped entries never fail the write; they are
// collected and reported back so admin typos are visible.
type SkippedEntry struct {
	Module string `json:"module"`
	Action string `json:"action,omitempty"`
	Reason string `json:"reason"`
}

// CatalogGroup is one UI group of modules from the catalog view.
type CatalogGroup struct {
	Group     string           `json:"group"`
	Resources []store.Resource `json:"resources"`
}

// CatalogView is the full editable-matrix catalog: all modules grouped for
// display plus every action code.
type CatalogView struct {
	Groups  []CatalogGroup `json:"groups"`
	Actions []store.Action `json:"actions"`
}

// ConsolidationMap maps a coarse UI module key to the fine modules it
// aggregates. It is loaded from configuration, not hard-coded.
type ConsolidationMap map[string][]string

// Matrix is the bulk editor over a role's grant set.
type Matrix struct {
	catalog       store.CatalogStore
	grants        store.GrantsStore
	roles         store.RolesStore
	resolver      *Resolver
	consolidation func() ConsolidationMap
}

// NewMatrix creates a Matrix editor. consolidation supplies the current
// coarse-to-fine module map on every call, so configuration reloads take
// effect without restart.
func NewMatrix(
	catalog store.CatalogStore,
	grants store.GrantsStore,
	roles store.RolesStore,
	resolver *Resolver,
	consolidation func() ConsolidationMap,
) *Matrix {
	return &Matrix{
		catalog:       catalog,
		grants:        grants,
		roles:         roles,
		resolver:      resolver,
		consolidation: consolidation,
	}
}

// ReplaceRolePermissions replaces a role's entire grant set from a
// module-to-CSV map. Entries naming an unknown module or action code are
// skipped and reported; an empty CSV drops the module. The delete and
// re-insert run in one per-role-serialized transaction inside the grant
// store, so a failure leaves the previous grant set intact.
func (m *Matrix) ReplaceRolePermissions(roleID uint, perms map[string]string, actingUserID uint) ([]SkippedEntry, error) {
	if !m.roles.RoleExists(roleID) {
		return nil, store.ErrRoleNotFound
	}

	var grants []store.Grant
	var skipped []SkippedEntry

	modules := make([]string, 0, len(perms))
	for module := range perms {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	for _, module := range modules {
		csv := strings.TrimSpace(perms[module])
		if csv == "" {
			continue
		}

		resource := m.catalog.ResourceByName(module)
		if resource == nil {
			skipped = append(skipped, SkippedEntry{Module: module, Reason: "unknown module"})
			continue
		}

		for _, code := range strings.Split(csv, ",") {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			action := m.catalog.ActionByCode(code)
			if action == nil {
				skipped = append(skipped, SkippedEntry{Module: module, Action: code, Reason: "unknown action"})
				continue
			}
			grants = append(grants, store.Grant{
				RoleID:     roleID,
				ResourceID: resource.ID,
				ActionID:   action.ID,
			})
		}
	}

	if err := m.grants.ReplaceAll(roleID, grants, actingUserID); err != nil {
		return nil, err
	}
	return skipped, nil
}

// Consolidate returns the role's permissions keyed by the coarse UI module
// groups from the consolidation map. Each consolidated key unions the action
// sets of its underlying fine modules, sorted and deduplicated. Modules not
// covered by the map pass through under their own name. Display only; never
// written back.
func (m *Matrix) Consolidate(roleID uint) map[string][]string {
	compat := m.resolver.ResolveCompatibility(int64(roleID))
	cmap := m.consolidation()

	consolidated := map[string][]string{}
	covered := map[string]bool{}

	for key, fine := range cmap {
		set := map[string]bool{}
		for _, module := range fine {
			covered[module] = true
			if csv, ok := compat[module]; ok && csv != "" {
				for _, code := range strings.Split(csv, ",") {
					set[code] = true
				}
			}
		}
		if len(set) == 0 {
			continue
		}
		consolidated[key] = sortedCodes(set)
	}

	for module, csv := range compat {
		if covered[module] || csv == "" {
			continue
		}
		set := map[string]bool{}
		for _, code := range strings.Split(csv, ",") {
			set[code] = true
		}
		consolidated[module] = sortedCodes(set)
	}

	return consolidated
}

// GetCatalogView lists all resources grouped for the matrix UI plus every
// action code.
func (m *Matrix) GetCatalogView() (*CatalogView, error) {
	resources, err := m.catalog.ListResources()
	if err != nil {
		return nil, err
	}
	actions, err := m.catalog.ListActions()
	if err != nil {
		return nil, err
	}

	byGroup := map[string][]store.Resource{}
	var order []string
	for _, r := range resources {
		if _, ok := byGroup[r.Group]; !ok {
			order = append(order, r.Group)
		}
		byGroup[r.Group] = append(byGroup[r.Group], r)
	}
	sort.Strings(order)

	view := &CatalogView{Actions: actions}
	for _, group := range order {
		view.Groups = append(view.Groups, CatalogGroup{Group: group, Resources: byGroup[group]})
	}
	return view, nil
}

func sortedCodes(set map[string]bool) []string {
	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
