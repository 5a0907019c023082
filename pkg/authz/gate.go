package authz

import (
	"fmt"

	"github.com/ledgepoint/assetd/pkg/server/store"
)

// Requirement is the (module, action) pair a protected operation declares.
// Declared actions are always broad codes (C, V, E, D); the own-variant
// satisfies them at evaluation time.
type Requirement struct {
	Module string
	Action string
}

// ForbiddenError is the user-visible authorization failure, naming the
// module and action that were required.
type ForbiddenError struct {
	Module string
	Action string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("permission denied: requires %s on %s", e.Action, e.Module)
}

// Check evaluates a requirement against a principal's ability list. The
// requirement is satisfied by an entry for the module whose action equals
// the required code or its own-variant; a grant of VO satisfies a V
// requirement but nothing declares VO itself. An empty requirement passes.
func Check(abilities []store.Ability, req Requirement) error {
	if req.Module == "" || req.Action == "" {
		return nil
	}

	own := OwnVariant(req.Action)
	for _, a := range abilities {
		if a.Module != req.Module {
			continue
		}
		if a.Action == req.Action || (own != "" && a.Action == own) {
			return nil
		}
	}

	return &ForbiddenError{Module: req.Module, Action: req.Action}
}
