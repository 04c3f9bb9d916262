package typefacet

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnknownAnnotation         = "unknown_annotation"
	CodeInvalidAnnotation         = "invalid_annotation"
	CodeInvalidDefault            = "invalid_default"
	CodeInvalidExample            = "invalid_example"
	CodeInvalidExamples           = "invalid_examples"
	CodeExamplesNotMap            = "examples_not_map"
	CodeDiscriminatorNotObject    = "discriminator_not_object"
	CodeDiscriminatorUnknown      = "discriminator_unknown"
	CodeDiscriminatorNotScalar    = "discriminator_not_scalar"
	CodeDiscriminatorMissing      = "discriminator_missing"
	CodeInvalidDiscriminatorValue = "invalid_discriminator_value"
	CodeRequiredNotBoolean        = "required_not_boolean"
	CodeDetachedFacet             = "detached_facet"
	// Structural codes reported by type implementations.
	CodeInvalidType  = "invalid_type"
	CodeRequired     = "required"
	CodeUnknownKey   = "unknown_key"
	CodeInvalidEnum  = "invalid_enum"
	CodeUnknownFacet = "unknown_facet"
	CodeMissingFacet = "missing_facet"
	// CodeInvalidFacetValue reports a custom facet value rejected by its declaration.
	CodeInvalidFacetValue = "invalid_facet_value"
)

// Issue represents a single failing leaf of a Status tree.
type Issue struct {
	Path    string // JSON Pointer of the facet (for example: /Pet/discriminator).
	Code    string // One of the codes listed above.
	Message string
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_default at /Pet/default
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// JoinPointer appends an RFC 6901 escaped segment to a pointer.
func JoinPointer(base, seg string) string {
	if seg == "" {
		return base
	}
	esc := strings.ReplaceAll(strings.ReplaceAll(seg, "~", "~0"), "/", "~1")
	if base == "" || base == "/" {
		return "/" + esc
	}
	return base + "/" + esc
}
