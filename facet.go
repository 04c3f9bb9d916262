package typefacet

import "sort"

// Kind identifies the variant of a Facet.
type Kind int

const (
	KindDescription Kind = iota
	KindDisplayName
	KindUsage
	KindNotScalar
	KindXMLInfo
	KindCustom
	KindFacetDeclaration
	KindAnnotation
	KindDefault
	KindExample
	KindExamples
	KindDiscriminator
	KindDiscriminatorValue
	KindProperty
	KindRequired
	KindAllowedTargets
)

var kindNames = [...]string{
	KindDescription:        "description",
	KindDisplayName:        "displayName",
	KindUsage:              "usage",
	KindNotScalar:          "notScalar",
	KindXMLInfo:            "xml",
	KindCustom:             "custom",
	KindFacetDeclaration:   "facetDeclaration",
	KindAnnotation:         "annotation",
	KindDefault:            "default",
	KindExample:            "example",
	KindExamples:           "examples",
	KindDiscriminator:      "discriminator",
	KindDiscriminatorValue: "discriminatorValue",
	KindProperty:           "property",
	KindRequired:           "required",
	KindAllowedTargets:     "allowedTargets",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Facet is a named piece of metadata attached to a type. All variants share
// this record; the Kind selects accessors and validation.
type Facet struct {
	kind        Kind
	name        string
	value       any
	inheritable bool
	owner       TypeID
}

// Declaration is the value of a facet declaration.
type Declaration struct {
	Type     TypeID
	Optional bool
}

// PropertySpec is the value of a property facet.
type PropertySpec struct {
	Type     TypeID
	Required bool
}

func newFacet(kind Kind, name string, value any, inheritable bool) *Facet {
	return &Facet{kind: kind, name: name, value: value, inheritable: inheritable}
}

func NewDescription(v string) *Facet { return newFacet(KindDescription, "description", v, false) }
func NewDisplayName(v string) *Facet { return newFacet(KindDisplayName, "displayName", v, false) }
func NewUsage(v string) *Facet       { return newFacet(KindUsage, "usage", v, false) }

// NewNotScalar marks the owner as not usable as a scalar.
func NewNotScalar() *Facet { return newFacet(KindNotScalar, "notScalar", true, false) }

func NewXMLInfo(v any) *Facet { return newFacet(KindXMLInfo, "xml", v, false) }

// NewCustomFacet carries the value of a user-declared facet.
func NewCustomFacet(name string, v any) *Facet { return newFacet(KindCustom, name, v, true) }

// NewFacetDeclaration declares a custom facet accepted by the owner and its
// subtypes.
func NewFacetDeclaration(name string, t TypeID, optional bool) *Facet {
	return newFacet(KindFacetDeclaration, name, Declaration{Type: t, Optional: optional}, true)
}

// NewAnnotation builds an annotation facet. name is the annotation type name
// without parentheses.
func NewAnnotation(name string, v any) *Facet { return newFacet(KindAnnotation, name, v, false) }

func NewDefault(v any) *Facet  { return newFacet(KindDefault, "default", v, false) }
func NewExample(v any) *Facet  { return newFacet(KindExample, "example", v, false) }
func NewExamples(v any) *Facet { return newFacet(KindExamples, "examples", v, false) }

// NewDiscriminator names the property that distinguishes subtypes.
func NewDiscriminator(property string) *Facet {
	return newFacet(KindDiscriminator, "discriminator", property, true)
}

func NewDiscriminatorValue(v any) *Facet {
	return newFacet(KindDiscriminatorValue, "discriminatorValue", v, false)
}

// NewProperty declares a property of an object owner.
func NewProperty(name string, t TypeID, required bool) *Facet {
	return newFacet(KindProperty, name, PropertySpec{Type: t, Required: required}, false)
}

func NewRequired(v any) *Facet       { return newFacet(KindRequired, "required", v, false) }
func NewAllowedTargets(v any) *Facet { return newFacet(KindAllowedTargets, "allowedTargets", v, false) }

func (f *Facet) Kind() Kind { return f.kind }

// Value returns the raw attached value.
func (f *Facet) Value() any { return f.value }

// FacetName is the stable name used for lookup and messages.
func (f *Facet) FacetName() string { return f.name }

// Inheritable reports whether subtypes see the facet in their Meta.
func (f *Facet) Inheritable() bool { return f.inheritable }

// RequiredType is the category the facet value must belong to.
func (f *Facet) RequiredType() Category {
	switch f.kind {
	case KindDiscriminator, KindDiscriminatorValue:
		return CategoryObject
	}
	return CategoryAny
}

// Owner returns the handle of the type the facet decorates.
func (f *Facet) Owner() TypeID { return f.owner }

// SetOwner links the facet to its type. The link is set once; it returns
// false when the facet was already owned by another type.
func (f *Facet) SetOwner(id TypeID) bool {
	if f.owner != NoType && f.owner != id {
		return false
	}
	f.owner = id
	return true
}

// IsOptional reports whether a declared custom facet may be omitted.
func (f *Facet) IsOptional() bool {
	d, _ := f.value.(Declaration)
	return d.Optional
}

// DeclaredType is the type accepted by a declared custom facet.
func (f *Facet) DeclaredType() TypeID {
	d, _ := f.value.(Declaration)
	return d.Type
}

// DiscriminatorProperty is the property named by a discriminator facet.
func (f *Facet) DiscriminatorProperty() string {
	s, _ := f.value.(string)
	return s
}

// DiscriminatorLiteral is the literal carried by a discriminatorValue facet.
func (f *Facet) DiscriminatorLiteral() any { return f.value }

// PropertyName is the name of a declared property.
func (f *Facet) PropertyName() string { return f.name }

// PropertyType is the declared type of a property facet.
func (f *Facet) PropertyType() TypeID {
	p, _ := f.value.(PropertySpec)
	return p.Type
}

// PropertyRequired reports whether a property facet is mandatory.
func (f *Facet) PropertyRequired() bool {
	p, _ := f.value.(PropertySpec)
	return p.Required
}

// Example returns the example value, parsing embedded JSON or XML when the
// owner is object or array shaped.
func (f *Facet) Example(reg Registry) any {
	owner, ok := reg.Resolve(f.owner)
	if !ok {
		return f.value
	}
	return SniffValue(f.value, owner, reg)
}

// Examples returns the content of every structured entry of an examples
// facet, sorted by entry name. Entries without content are skipped.
func (f *Facet) Examples(reg Registry) []any {
	m, ok := f.value.(map[string]any)
	if !ok {
		return nil
	}
	owner, _ := reg.Resolve(f.owner)
	var out []any
	for _, k := range sortedKeys(m) {
		entry, ok := m[k].(map[string]any)
		if !ok {
			continue
		}
		content, ok := entry["content"]
		if !ok {
			continue
		}
		if owner != nil {
			content = SniffValue(content, owner, reg)
		}
		out = append(out, content)
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
