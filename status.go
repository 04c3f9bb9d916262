package typefacet

import (
	"strings"

	"github.com/reoring/typefacet/i18n"
)

// Severity of a Status node.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}
	return "OK"
}

// Status is a node of a validation result tree. Facet validation never
// panics or returns an error; every outcome is a Status.
type Status struct {
	Severity Severity
	Code     string
	Message  string
	// Path locates the node (type name, facet name, example key) as a JSON Pointer.
	Path string
	Subs []*Status
}

// OKStatus returns a fresh successful status. A new value is returned each time
// because callers may attach children to it.
func OKStatus() *Status { return &Status{Severity: SeverityOK} }

// NewError builds an error status with a message resolved through i18n.
func NewError(code string, data map[string]string) *Status {
	return &Status{Severity: SeverityError, Code: code, Message: i18n.T(code, data)}
}

// OK reports whether the status and all of its descendants are successful.
func (s *Status) OK() bool {
	if s == nil {
		return true
	}
	if s.Severity != SeverityOK {
		return false
	}
	for _, c := range s.Subs {
		if !c.OK() {
			return false
		}
	}
	return true
}

// AddSubStatus appends a child status. Nil children are ignored.
func (s *Status) AddSubStatus(c *Status) {
	if c == nil {
		return
	}
	s.Subs = append(s.Subs, c)
}

// Errors returns the failing leaves of the tree. A failing node without
// failing children is itself a leaf.
func (s *Status) Errors() []*Status {
	if s == nil || s.OK() {
		return nil
	}
	var out []*Status
	for _, c := range s.Subs {
		out = append(out, c.Errors()...)
	}
	if len(out) == 0 {
		out = append(out, s)
	}
	return out
}

// WithPath sets the path of the node and returns it for chaining.
func (s *Status) WithPath(p string) *Status {
	s.Path = p
	return s
}

// Issues flattens the failing leaves into Issues. Paths of nested nodes are
// joined onto the pointer of their ancestors.
func (s *Status) Issues() Issues {
	var out Issues
	var walk func(n *Status, base string)
	walk = func(n *Status, base string) {
		if n.OK() {
			return
		}
		p := joinStatusPath(base, n.Path)
		failingChild := false
		for _, c := range n.Subs {
			if !c.OK() {
				failingChild = true
				walk(c, p)
			}
		}
		if !failingChild {
			if p == "" {
				p = "/"
			}
			out = append(out, Issue{Path: p, Code: n.Code, Message: n.Message})
		}
	}
	walk(s, "")
	return out
}

// Err returns nil for a successful tree and Issues otherwise.
func (s *Status) Err() error {
	if s.OK() {
		return nil
	}
	return s.Issues()
}

// String renders the tree, one node per line, children indented.
func (s *Status) String() string {
	b := &strings.Builder{}
	var walk func(n *Status, depth int)
	walk = func(n *Status, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Severity.String())
		if n.Path != "" {
			b.WriteString(" ")
			b.WriteString(n.Path)
		}
		if n.Message != "" {
			b.WriteString(": ")
			b.WriteString(n.Message)
		}
		b.WriteString("\n")
		for _, c := range n.Subs {
			walk(c, depth+1)
		}
	}
	walk(s, 0)
	return b.String()
}

func joinStatusPath(base, p string) string {
	switch {
	case p == "" || p == "/" && base != "":
		return base
	case strings.HasPrefix(p, "/"):
		if base == "" || base == "/" {
			return p
		}
		return base + p
	default:
		return JoinPointer(base, p)
	}
}
