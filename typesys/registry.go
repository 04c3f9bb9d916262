package typesys

import (
	"errors"
	"fmt"

	tf "github.com/reoring/typefacet"
)

// Options configures a Registry.
type Options struct {
	// ClosedObjects rejects undeclared keys on object types that do not set
	// additionalProperties themselves.
	ClosedObjects bool
}

// Registry owns every type. Type handles are indexes into its table.
type Registry struct {
	opts        Options
	table       []*Type // index 0 is unused so that tf.NoType never resolves
	types       map[string]*Type
	annotations map[string]*Type
	declared    []*Type
}

var _ tf.Registry = (*Registry)(nil)

var (
	ErrDuplicateType = errors.New("typesys: duplicate type")
	ErrUnknownType   = errors.New("typesys: unknown type")
	ErrFacetOwned    = errors.New("typesys: facet already attached to another type")
)

// NewRegistry returns a registry holding the builtin types.
func NewRegistry(opts Options) *Registry {
	r := &Registry{
		opts:        opts,
		table:       []*Type{nil},
		types:       map[string]*Type{},
		annotations: map[string]*Type{},
	}
	for _, b := range builtins {
		t := r.newType(b.name, b.family, r.types[b.super])
		t.builtin = true
		r.types[b.name] = t
	}
	return r
}

func (r *Registry) newType(name string, family Family, super *Type) *Type {
	t := &Type{reg: r, id: tf.TypeID(len(r.table)), name: name, family: family, super: super}
	r.table = append(r.table, t)
	return t
}

// Declare registers a named user type deriving from super.
func (r *Registry) Declare(name, super string) (*Type, error) {
	if _, dup := r.types[name]; dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}
	st, ok := r.types[super]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, super)
	}
	t := r.newType(name, st.family, st)
	r.types[name] = t
	r.declared = append(r.declared, t)
	return t, nil
}

// Placeholder registers a named type whose supertype is not known yet, so
// that other declarations may reference it. Rebase completes it.
func (r *Registry) Placeholder(name string) (*Type, error) {
	if _, dup := r.types[name]; dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}
	t := r.newType(name, FamilyAny, r.types["any"])
	r.types[name] = t
	r.declared = append(r.declared, t)
	return t, nil
}

// Rebase sets the supertype of a placeholder. Cycles are rejected.
func (r *Registry) Rebase(t, super *Type) error {
	for c := super; c != nil; c = c.super {
		if c == t {
			return fmt.Errorf("typesys: %s inherits from itself", t.name)
		}
	}
	t.super = super
	t.family = super.family
	return nil
}

// Derive registers an inline subtype (for property, item and facet
// declarations). Its facets are validated along with the named types.
func (r *Registry) Derive(name string, super *Type) *Type {
	t := r.newType(name, super.family, super)
	r.declared = append(r.declared, t)
	return t
}

// ArrayOf returns an anonymous array type of items.
func (r *Registry) ArrayOf(items *Type) *Type {
	t := r.newType(items.name+"[]", FamilyArray, r.types["array"])
	t.items = items.id
	return t
}

// DeclareAnnotation registers an annotation type deriving from the named type.
func (r *Registry) DeclareAnnotation(name, super string) (*Type, error) {
	st, ok := r.types[super]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, super)
	}
	return r.DeclareAnnotationFrom(name, st)
}

// DeclareAnnotationFrom registers an annotation type deriving from super.
func (r *Registry) DeclareAnnotationFrom(name string, super *Type) (*Type, error) {
	if _, dup := r.annotations[name]; dup {
		return nil, fmt.Errorf("%w: annotation %s", ErrDuplicateType, name)
	}
	t := r.newType(name, super.family, super)
	r.annotations[name] = t
	return t, nil
}

// Attach links f to t and appends it to t's facets.
func (r *Registry) Attach(t *Type, f *tf.Facet) error {
	if !f.SetOwner(t.id) {
		return fmt.Errorf("%w: %s on %s", ErrFacetOwned, f.FacetName(), t.name)
	}
	t.meta = append(t.meta, f)
	return nil
}

// Lookup finds a type by name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Annotation finds an annotation type by name.
func (r *Registry) Annotation(name string) (*Type, bool) {
	t, ok := r.annotations[name]
	return t, ok
}

// Get looks up annotation types, as required by annotation facets.
func (r *Registry) Get(name string) (tf.Type, bool) {
	t, ok := r.annotations[name]
	if !ok {
		return nil, false
	}
	return t, true
}

// Resolve returns the type behind a handle.
func (r *Registry) Resolve(id tf.TypeID) (tf.Type, bool) {
	t, ok := r.resolve(id)
	if !ok {
		return nil, false
	}
	return t, true
}

func (r *Registry) resolve(id tf.TypeID) (*Type, bool) {
	if id <= tf.NoType || int(id) >= len(r.table) {
		return nil, false
	}
	return r.table[id], true
}

// Types returns the named and inline user types in declaration order.
func (r *Registry) Types() []*Type { return append([]*Type(nil), r.declared...) }
