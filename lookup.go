package typefacet

// FindFacet returns the first facet of the given kind.
func FindFacet(meta []*Facet, kind Kind) (*Facet, bool) {
	for _, f := range meta {
		if f != nil && f.kind == kind {
			return f, true
		}
	}
	return nil, false
}

// FindAll returns every facet of the given kind, in attachment order.
func FindAll(meta []*Facet, kind Kind) []*Facet {
	var out []*Facet
	for _, f := range meta {
		if f != nil && f.kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// FindProperty returns the property facet declaring name.
func FindProperty(meta []*Facet, name string) (*Facet, bool) {
	return FindNamed(meta, KindProperty, name)
}

// FindNamed returns the first facet of kind whose FacetName equals name.
func FindNamed(meta []*Facet, kind Kind, name string) (*Facet, bool) {
	for _, f := range meta {
		if f != nil && f.kind == kind && f.name == name {
			return f, true
		}
	}
	return nil, false
}
