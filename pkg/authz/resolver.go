package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledgepoint/assetd/pkg/filter"
	"github.com/ledgepoint/assetd/pkg/server/store"
)

// ModulePermission is one module's deduplicated action set, with the codes
// comma-joined for the legacy matrix wire shape.
type ModulePermission struct {
	Module  string `json:"module"`
	Actions string `json:"actions"`
}

// Resolver turns role ids into effective abilities. All query methods treat
// an invalid role id (zero, negative, unknown) as "no permissions" and never
// return an error for it.
type Resolver struct {
	grants store.GrantsStore
}

// NewResolver creates a Resolver over a grant store.
func NewResolver(grants store.GrantsStore) *Resolver {
	return &Resolver{grants: grants}
}

// Resolve returns the flat (module, action) ability list for a role.
// Invalid role ids resolve to an empty list.
func (r *Resolver) Resolve(roleID int64) []store.Ability {
	if roleID <= 0 {
		return []store.Ability{}
	}
	abilities, err := r.grants.AbilitiesForRole(uint(roleID))
	if err != nil {
		return []store.Ability{}
	}
	return dedupe(abilities)
}

// ResolveModule returns one module's permission with its action codes
// deduplicated and comma-joined. A module with no grants yields Actions "".
func (r *Resolver) ResolveModule(roleID int64, module string) ModulePermission {
	perm := ModulePermission{Module: module}
	if roleID <= 0 {
		return perm
	}
	abilities, err := r.grants.AbilitiesForRoleAndModule(uint(roleID), module)
	if err != nil {
		return perm
	}
	codes := make([]string, 0, len(abilities))
	for _, a := range dedupe(abilities) {
		codes = append(codes, a.Action)
	}
	perm.Actions = strings.Join(codes, ",")
	return perm
}

// ResolveCompatibility groups the ability list by module into the
// module-to-CSV map consumed by the permission matrix UI. Modules with no
// grants are absent from the map.
func (r *Resolver) ResolveCompatibility(roleID int64) map[string]string {
	grouped := map[string][]string{}
	for _, a := range r.Resolve(roleID) {
		grouped[a.Module] = append(grouped[a.Module], a.Action)
	}

	compat := make(map[string]string, len(grouped))
	for module, codes := range grouped {
		sort.Strings(codes)
		compat[module] = strings.Join(codes, ",")
	}
	return compat
}

// actionSet returns the module's action codes as a set.
func (r *Resolver) actionSet(roleID int64, module string) map[string]bool {
	perm := r.ResolveModule(roleID, module)
	if perm.Actions == "" {
		return map[string]bool{}
	}
	set := map[string]bool{}
	for _, code := range strings.Split(perm.Actions, ",") {
		set[code] = true
	}
	return set
}

// HasCreate reports whether the role may create rows in the module.
func (r *Resolver) HasCreate(roleID int64, module string) bool {
	return r.actionSet(roleID, module)[ActionCreate]
}

// HasViewAll reports an unrestricted read scope: V granted and VO absent.
// A granted VO always narrows the scope to owned rows, even alongside V.
func (r *Resolver) HasViewAll(roleID int64, module string) bool {
	set := r.actionSet(roleID, module)
	return set[ActionView] && !set[ActionViewOwn]
}

// HasViewOwn reports an ownership-scoped read grant.
func (r *Resolver) HasViewOwn(roleID int64, module string) bool {
	return r.actionSet(roleID, module)[ActionViewOwn]
}

// HasAnyView reports any read grant, scoped or not.
func (r *Resolver) HasAnyView(roleID int64, module string) bool {
	set := r.actionSet(roleID, module)
	return set[ActionView] || set[ActionViewOwn]
}

// HasEditAll reports an unrestricted edit scope: E granted and EO absent.
func (r *Resolver) HasEditAll(roleID int64, module string) bool {
	set := r.actionSet(roleID, module)
	return set[ActionEdit] && !set[ActionEditOwn]
}

// HasEditOwn reports an ownership-scoped edit grant.
func (r *Resolver) HasEditOwn(roleID int64, module string) bool {
	return r.actionSet(roleID, module)[ActionEditOwn]
}

// HasAnyEdit reports any edit grant, scoped or not.
func (r *Resolver) HasAnyEdit(roleID int64, module string) bool {
	set := r.actionSet(roleID, module)
	return set[ActionEdit] || set[ActionEditOwn]
}

// HasDeleteAll reports an unrestricted delete scope: D granted and DO absent.
func (r *Resolver) HasDeleteAll(roleID int64, module string) bool {
	set := r.actionSet(roleID, module)
	return set[ActionDelete] && !set[ActionDeleteOwn]
}

// HasDeleteOwn reports an ownership-scoped delete grant.
func (r *Resolver) HasDeleteOwn(roleID int64, module string) bool {
	return r.actionSet(roleID, module)[ActionDeleteOwn]
}

// HasAnyDelete reports any delete grant, scoped or not.
func (r *Resolver) HasAnyDelete(roleID int64, module string) bool {
	set := r.actionSet(roleID, module)
	return set[ActionDelete] || set[ActionDeleteOwn]
}

// Scope merges the coarse entry decision with the fine row restriction for
// reads: one call yields both whether the principal may read the module at
// all and the ready-to-use predicate narrowing the working row set. Services
// using Scope cannot forget the scoping half.
func (r *Resolver) Scope(roleID int64, userID uint, module string, ownerFields ...filter.OwnerField) (bool, filter.Predicate) {
	set := r.actionSet(roleID, module)
	if !set[ActionView] && !set[ActionViewOwn] {
		return false, nil
	}
	scope := filter.OwnershipScope{
		UserID:  userID,
		ViewAll: set[ActionView] && !set[ActionViewOwn],
	}
	return true, filter.ApplyOwnership(filter.All(), scope, ownerFields...)
}

func dedupe(abilities []store.Ability) []store.Ability {
	seen := map[string]bool{}
	out := make([]store.Ability, 0, len(abilities))
	for _, a := range abilities {
		key := fmt.Sprintf("%s\x00%s", a.Module, a.Action)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}
