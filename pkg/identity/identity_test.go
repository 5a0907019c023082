package identity

import (
	"context"
	"testing"

	"github.com/ledgepoint/assetd/pkg/server/store"
)

func TestGetSet(t *testing.T) {
	principal := &Principal{UserID: 2, Email: "pat@example.com", RoleID: 3}

	ctx := Set(context.Background(), principal)
	got, ok := Get(ctx)
	if !ok {
		t.Fatal("expected principal in context")
	}
	if got != principal {
		t.Error("expected the same principal back")
	}
}

func TestGetMissing(t *testing.T) {
	if _, ok := Get(context.Background()); ok {
		t.Error("expected no principal in empty context")
	}
}

func TestCan(t *testing.T) {
	principal := &Principal{
		Abilities: []store.Ability{
			{Module: "employees", Action: "VO"},
			{Module: "vendor", Action: "V"},
		},
	}

	tests := []struct {
		module string
		action string
		want   bool
	}{
		{"vendor", "V", true},
		{"employees", "VO", true},
		// Exact match only; broad-vs-own is the gate's concern.
		{"employees", "V", false},
		{"vendor", "C", false},
		{"work_orders", "V", false},
	}

	for _, tt := range tests {
		if got := principal.Can(tt.module, tt.action); got != tt.want {
			t.Errorf("Can(%q, %q): expected %v, got %v", tt.module, tt.action, tt.want, got)
		}
	}
}
