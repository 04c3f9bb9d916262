package typesys

import (
	"sort"

	tf "github.com/reoring/typefacet"
)

// ValidateType runs every facet attached to t and the custom facet contract
// declared by its supertypes. Children are in attachment order.
func (r *Registry) ValidateType(t *Type) *tf.Status {
	rs := tf.OKStatus().WithPath(tf.JoinPointer("", t.name))
	for _, f := range t.meta {
		if f.Kind() == tf.KindProperty {
			continue
		}
		var st *tf.Status
		if f.Kind() == tf.KindCustom {
			st = r.checkCustom(t, f)
		} else {
			st = f.ValidateSelf(r)
		}
		rs.AddSubStatus(st.WithPath(facetSegment(f)))
	}
	for _, st := range r.checkMissingFacets(t) {
		rs.AddSubStatus(st)
	}
	if !rs.OK() {
		rs.Severity = tf.SeverityError
	}
	return rs
}

// ValidateAll validates every declared type, then every annotation type in
// name order. Annotation types are reported under "/(name)".
func (r *Registry) ValidateAll() *tf.Status {
	rs := tf.OKStatus()
	for _, t := range r.declared {
		rs.AddSubStatus(r.ValidateType(t))
	}
	names := make([]string, 0, len(r.annotations))
	for n := range r.annotations {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		rs.AddSubStatus(r.ValidateType(r.annotations[n]).WithPath(tf.JoinPointer("", "("+n+")")))
	}
	if !rs.OK() {
		rs.Severity = tf.SeverityError
	}
	return rs
}

// checkCustom validates a custom facet value against the declaration found on
// a supertype. A type cannot use the facets it declares itself.
func (r *Registry) checkCustom(t *Type, f *tf.Facet) *tf.Status {
	if t.super == nil {
		return tf.NewError(tf.CodeUnknownFacet, map[string]string{"name": f.FacetName()})
	}
	decl, ok := tf.FindNamed(t.super.Meta(), tf.KindFacetDeclaration, f.FacetName())
	if !ok {
		return tf.NewError(tf.CodeUnknownFacet, map[string]string{"name": f.FacetName()})
	}
	dt, ok := r.resolve(decl.DeclaredType())
	if !ok {
		return tf.OKStatus()
	}
	st := dt.ValidateDirect(f.Value(), true)
	if !st.OK() {
		return tf.NewError(tf.CodeInvalidFacetValue, map[string]string{"name": f.FacetName(), "cause": st.Message})
	}
	return tf.OKStatus()
}

// checkMissingFacets reports non-optional declarations of supertypes for which
// neither t nor an ancestor supplies a value.
func (r *Registry) checkMissingFacets(t *Type) []*tf.Status {
	if t.super == nil || t.builtin {
		return nil
	}
	meta := t.Meta()
	var out []*tf.Status
	seen := map[string]bool{}
	for _, d := range tf.FindAll(t.super.Meta(), tf.KindFacetDeclaration) {
		if d.IsOptional() || seen[d.FacetName()] {
			continue
		}
		seen[d.FacetName()] = true
		if _, ok := tf.FindNamed(meta, tf.KindCustom, d.FacetName()); ok {
			continue
		}
		out = append(out, tf.NewError(tf.CodeMissingFacet, map[string]string{"name": d.FacetName()}).WithPath(d.FacetName()))
	}
	return out
}

func facetSegment(f *tf.Facet) string {
	if f.Kind() == tf.KindAnnotation {
		return "(" + f.FacetName() + ")"
	}
	return f.FacetName()
}
