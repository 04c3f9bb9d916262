package typefacet

// TypeID is a non-owning handle to a type held by a Registry. The zero value
// means "no type".
type TypeID int

// NoType is the unset TypeID.
const NoType TypeID = 0

// Name of the builtin object type used for discriminator checks.
const BuiltinObject = "object"

// Category is the structural category a facet value itself must belong to.
type Category int

const (
	CategoryAny Category = iota
	CategoryObject
)

func (c Category) String() string {
	if c == CategoryObject {
		return "object"
	}
	return "any"
}

// Type is the view of a type definition that facets consume. Implementations
// live outside this package (see typesys).
type Type interface {
	ID() TypeID
	Name() string
	IsString() bool
	IsObject() bool
	IsArray() bool
	IsScalar() bool
	// IsSubTypeOf reports whether the type is, or derives from, the named type.
	IsSubTypeOf(name string) bool
	Validate(v any) *Status
	// ValidateDirect checks v against the type's structure. root marks v as a
	// self-contained value rather than a member of an enclosing value.
	ValidateDirect(v any, root bool) *Status
	// Meta returns the facets attached to the type, including the inheritable
	// facets of its supertypes.
	Meta() []*Facet
}

// ItemsTyper is implemented by array types that know their element type.
type ItemsTyper interface {
	Items() TypeID
}

// PropertyLister is implemented by types that expose inherited property
// declarations in addition to their own.
type PropertyLister interface {
	Properties() []*Facet
}

// Registry resolves type handles and annotation types.
type Registry interface {
	// Get looks up an annotation type by name.
	Get(name string) (Type, bool)
	// Resolve returns the type behind a handle.
	Resolve(id TypeID) (Type, bool)
}
