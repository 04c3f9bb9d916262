package typefacet

import (
	"math"

	"github.com/reoring/typefacet/i18n"
)

type validateFunc func(f *Facet, owner Type, reg Registry) *Status

// validators maps each kind with semantic checks to its implementation.
// Descriptive kinds have no entry and always succeed.
var validators map[Kind]validateFunc

func init() {
	validators = map[Kind]validateFunc{
		KindAnnotation:         validateAnnotation,
		KindDefault:            validateDefault,
		KindExample:            validateExample,
		KindExamples:           validateExamples,
		KindDiscriminator:      validateDiscriminator,
		KindDiscriminatorValue: validateDiscriminatorValue,
		KindRequired:           validateRequired,
	}
}

// ownerless kinds validate without resolving their owner.
var ownerless = map[Kind]bool{
	KindAnnotation: true,
	KindRequired:   true,
}

// ValidateSelf checks the facet against its owner and the registry. It never
// mutates the facet, the owner or the registry.
func (f *Facet) ValidateSelf(reg Registry) *Status {
	fn, ok := validators[f.kind]
	if !ok {
		return OKStatus()
	}
	var owner Type
	if !ownerless[f.kind] {
		if reg != nil {
			owner, ok = reg.Resolve(f.owner)
		}
		if !ok || owner == nil {
			return NewError(CodeDetachedFacet, map[string]string{"name": f.name})
		}
	}
	return fn(f, owner, reg)
}

func validateAnnotation(f *Facet, _ Type, reg Registry) *Status {
	var tp Type
	var ok bool
	if reg != nil {
		tp, ok = reg.Get(f.name)
	}
	if !ok || tp == nil {
		return NewError(CodeUnknownAnnotation, map[string]string{"name": f.name})
	}
	v := f.value
	if isFalsy(v) && tp.IsString() {
		v = ""
	}
	st := tp.ValidateDirect(v, true)
	if !st.OK() {
		return NewError(CodeInvalidAnnotation, map[string]string{"name": f.name, "cause": st.Message})
	}
	return OKStatus()
}

func validateDefault(f *Facet, owner Type, _ Registry) *Status {
	st := owner.ValidateDirect(f.value, true)
	if !st.OK() {
		return NewError(CodeInvalidDefault, map[string]string{"cause": st.Message})
	}
	return OKStatus()
}

func validateExample(f *Facet, owner Type, reg Registry) *Status {
	st := owner.ValidateDirect(SniffValue(f.value, owner, reg), true)
	if !st.OK() {
		c := NewError(CodeInvalidExample, map[string]string{"cause": st.Message})
		// leaves keep the example code so that flattened issues still name the facet
		for _, e := range st.Errors() {
			c.AddSubStatus(&Status{
				Severity: SeverityError,
				Code:     CodeInvalidExample,
				Message:  i18n.T(CodeInvalidExample, map[string]string{"cause": e.Message}),
				Path:     e.Path,
			})
		}
		return c
	}
	return OKStatus()
}

func validateExamples(f *Facet, owner Type, reg Registry) *Status {
	m, ok := f.value.(map[string]any)
	if !ok {
		return NewError(CodeExamplesNotMap, nil)
	}
	rs := OKStatus()
	for _, name := range sortedKeys(m) {
		entry, ok := m[name].(map[string]any)
		if !ok {
			continue
		}
		content := SniffValue(entry["content"], owner, reg)
		at := JoinPointer("", name)
		rs.AddSubStatus(owner.ValidateDirect(content, true).WithPath(at))
		for _, key := range sortedKeys(entry) {
			an, ok := annotationKey(key)
			if !ok {
				continue
			}
			a := NewAnnotation(an, entry[key])
			rs.AddSubStatus(a.ValidateSelf(reg).WithPath(JoinPointer(at, key)))
		}
	}
	if !rs.OK() {
		rs.Severity = SeverityError
		rs.Code = CodeInvalidExamples
		rs.Message = NewError(CodeInvalidExamples, nil).Message
	}
	return rs
}

func validateDiscriminator(f *Facet, owner Type, reg Registry) *Status {
	if !owner.IsSubTypeOf(BuiltinObject) {
		return NewError(CodeDiscriminatorNotObject, nil)
	}
	name := f.DiscriminatorProperty()
	prop, ok := FindProperty(owner.Meta(), name)
	if !ok {
		return NewError(CodeDiscriminatorUnknown, map[string]string{"name": name})
	}
	pt, ok := reg.Resolve(prop.PropertyType())
	if !ok || !pt.IsScalar() {
		return NewError(CodeDiscriminatorNotScalar, nil)
	}
	return OKStatus()
}

func validateDiscriminatorValue(f *Facet, owner Type, reg Registry) *Status {
	if !owner.IsSubTypeOf(BuiltinObject) {
		return NewError(CodeDiscriminatorNotObject, nil)
	}
	ds, ok := FindFacet(owner.Meta(), KindDiscriminator)
	if !ok {
		return NewError(CodeDiscriminatorMissing, nil)
	}
	prop, ok := FindProperty(owner.Meta(), ds.DiscriminatorProperty())
	if !ok {
		return OKStatus()
	}
	pt, ok := reg.Resolve(prop.PropertyType())
	if !ok {
		return OKStatus()
	}
	st := pt.Validate(f.value)
	if !st.OK() {
		return NewError(CodeInvalidDiscriminatorValue, map[string]string{"cause": st.Message})
	}
	return OKStatus()
}

func validateRequired(f *Facet, _ Type, _ Registry) *Status {
	if _, ok := f.value.(bool); !ok {
		return NewError(CodeRequiredNotBoolean, nil)
	}
	return OKStatus()
}

// annotationKey unwraps "(name)" into name.
func annotationKey(key string) (string, bool) {
	if len(key) < 2 || key[0] != '(' || key[len(key)-1] != ')' {
		return "", false
	}
	return key[1 : len(key)-1], true
}

// isFalsy follows the loose truthiness used by annotation coercion: nil,
// false, empty string, zero and NaN.
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	}
	if f, ok := NumberValue(v); ok {
		return f == 0 || math.IsNaN(f)
	}
	return false
}

// NumberValue converts any Go numeric value to float64. ok is false for
// non-numeric values.
func NumberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
