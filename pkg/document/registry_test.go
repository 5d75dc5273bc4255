package document

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/vrender/pkg/vdom"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	noop := func(ctx context.Context, props vdom.Props, resolver any) (*vdom.Element, error) {
		return nil, nil
	}

	reg.Register("Zeta", noop)
	reg.Register("Alpha", noop)

	if _, ok := reg.Lookup("Alpha"); !ok {
		t.Error("Alpha should be registered")
	}
	if _, ok := reg.Lookup("alpha"); ok {
		t.Error("lookup should be case sensitive")
	}
	if got := strings.Join(reg.Names(), ","); got != "Alpha,Zeta" {
		t.Errorf("Names = %q, want %q", got, "Alpha,Zeta")
	}

	reg.Register("Zeta", nil)
	if _, ok := reg.Lookup("Zeta"); ok {
		t.Error("registering nil should remove the name")
	}
}

func TestNilRegistry(t *testing.T) {
	var reg *Registry
	if _, ok := reg.Lookup("Any"); ok {
		t.Error("nil registry should have no components")
	}
	if names := reg.Names(); len(names) != 0 {
		t.Errorf("Names = %v, want none", names)
	}
}
