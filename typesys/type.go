// Package typesys is a small structural type system implementing the
// typefacet.Type and typefacet.Registry contracts: builtin scalar, object and
// array types, user types with properties and enums, and the facet
// validation pass over a whole registry.
package typesys

import (
	tf "github.com/reoring/typefacet"
)

// Family is the builtin shape a type derives from.
type Family int

const (
	FamilyAny Family = iota
	FamilyString
	FamilyNumber
	FamilyInteger
	FamilyBoolean
	FamilyNil
	FamilyDateOnly
	FamilyDateTime
	FamilyObject
	FamilyArray
)

// Builtin type names, in registration order.
var builtins = []struct {
	name   string
	family Family
	super  string
}{
	{"any", FamilyAny, ""},
	{"string", FamilyString, "any"},
	{"number", FamilyNumber, "any"},
	{"integer", FamilyInteger, "number"},
	{"boolean", FamilyBoolean, "any"},
	{"nil", FamilyNil, "any"},
	{"date-only", FamilyDateOnly, "any"},
	{"datetime", FamilyDateTime, "any"},
	{"object", FamilyObject, "any"},
	{"array", FamilyArray, "any"},
}

// Type is a node of the type hierarchy. Types are created through a Registry
// and are not safe to modify once validation starts.
type Type struct {
	reg     *Registry
	id      tf.TypeID
	name    string
	family  Family
	super   *Type
	builtin bool
	items   tf.TypeID
	enum    []any
	closed  *bool
	meta    []*tf.Facet
}

var _ tf.Type = (*Type)(nil)
var _ tf.ItemsTyper = (*Type)(nil)
var _ tf.PropertyLister = (*Type)(nil)

func (t *Type) ID() tf.TypeID  { return t.id }
func (t *Type) Name() string   { return t.name }
func (t *Type) Family() Family { return t.family }
func (t *Type) Super() *Type   { return t.super }
func (t *Type) Builtin() bool  { return t.builtin }
func (t *Type) Items() tf.TypeID {
	for c := t; c != nil; c = c.super {
		if c.items != tf.NoType {
			return c.items
		}
	}
	return tf.NoType
}

func (t *Type) IsString() bool { return t.family == FamilyString }
func (t *Type) IsObject() bool { return t.family == FamilyObject }
func (t *Type) IsArray() bool  { return t.family == FamilyArray }

// IsScalar is true for scalar families unless a notScalar facet applies.
func (t *Type) IsScalar() bool {
	switch t.family {
	case FamilyAny, FamilyObject, FamilyArray:
		return false
	}
	_, marked := tf.FindFacet(t.Meta(), tf.KindNotScalar)
	return !marked
}

func (t *Type) IsSubTypeOf(name string) bool {
	for c := t; c != nil; c = c.super {
		if c.name == name {
			return true
		}
	}
	return false
}

// SetEnum restricts values to the given literals.
func (t *Type) SetEnum(values []any) { t.enum = append([]any(nil), values...) }

// Enum returns the effective enumeration (own or inherited).
func (t *Type) Enum() []any {
	for c := t; c != nil; c = c.super {
		if c.enum != nil {
			return c.enum
		}
	}
	return nil
}

// SetItems sets the element type of an array type.
func (t *Type) SetItems(items *Type) {
	if items != nil {
		t.items = items.id
	}
}

// SetAdditionalProperties controls whether undeclared keys are accepted.
func (t *Type) SetAdditionalProperties(allowed bool) { t.closed = boolPtr(!allowed) }

func (t *Type) isClosed() bool {
	for c := t; c != nil; c = c.super {
		if c.closed != nil {
			return *c.closed
		}
	}
	return t.reg.opts.ClosedObjects
}

// LocalMeta returns the facets attached directly to t.
func (t *Type) LocalMeta() []*tf.Facet { return t.meta }

// Meta returns the local facets followed by the inheritable facets of every
// supertype, nearest first.
func (t *Type) Meta() []*tf.Facet {
	out := append([]*tf.Facet(nil), t.meta...)
	for c := t.super; c != nil; c = c.super {
		for _, f := range c.meta {
			if f.Inheritable() {
				out = append(out, f)
			}
		}
	}
	return out
}

// Properties returns every property facet visible on t: local declarations
// first, then those of supertypes not redeclared below them.
func (t *Type) Properties() []*tf.Facet {
	var out []*tf.Facet
	seen := map[string]bool{}
	for c := t; c != nil; c = c.super {
		for _, p := range tf.FindAll(c.meta, tf.KindProperty) {
			if seen[p.PropertyName()] {
				continue
			}
			seen[p.PropertyName()] = true
			out = append(out, p)
		}
	}
	return out
}

func boolPtr(b bool) *bool { return &b }
