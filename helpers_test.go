package typefacet_test

import (
	"testing"

	tf "github.com/reoring/typefacet"
	"github.com/reoring/typefacet/typesys"
)

func newRegistry(t *testing.T) *typesys.Registry {
	t.Helper()
	return typesys.NewRegistry(typesys.Options{})
}

func mustLookup(t *testing.T, r *typesys.Registry, name string) *typesys.Type {
	t.Helper()
	tp, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("type %s not found", name)
	}
	return tp
}

func mustDeclare(t *testing.T, r *typesys.Registry, name, super string) *typesys.Type {
	t.Helper()
	tp, err := r.Declare(name, super)
	if err != nil {
		t.Fatalf("declare %s: %v", name, err)
	}
	return tp
}

func mustAttach(t *testing.T, r *typesys.Registry, tp *typesys.Type, f *tf.Facet) *tf.Facet {
	t.Helper()
	if err := r.Attach(tp, f); err != nil {
		t.Fatalf("attach %s: %v", f.FacetName(), err)
	}
	return f
}

// declareXObject declares `Point: {x: number}`.
func declareXObject(t *testing.T, r *typesys.Registry) *typesys.Type {
	t.Helper()
	p := mustDeclare(t, r, "Point", "object")
	mustAttach(t, r, p, tf.NewProperty("x", mustLookup(t, r, "number").ID(), true))
	return p
}
