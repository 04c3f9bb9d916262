package typefacet

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// Sniff detects JSON or XML embedded in a string destined for an object or
// array shaped owner and parses it. ok is false when no rule applied or the
// payload did not parse; the original value is returned in that case.
func Sniff(v any, owner Type, reg Registry) (any, bool) {
	s, isStr := v.(string)
	if !isStr || owner == nil || !(owner.IsObject() || owner.IsArray()) {
		return v, false
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return v, false
	}
	switch trimmed[0] {
	case '{', '[':
		if out, err := parseJSON(trimmed); err == nil {
			return out, true
		}
	case '<':
		if out, err := parseXML(trimmed, owner, reg); err == nil {
			return out, true
		}
	}
	return v, false
}

// SniffValue is Sniff without the outcome flag.
func SniffValue(v any, owner Type, reg Registry) any {
	out, _ := Sniff(v, owner, reg)
	return out
}

func parseJSON(s string) (any, error) {
	var out any
	if err := j.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// xmlNode is a generic element tree.
type xmlNode struct {
	name     string
	attrs    []xml.Attr
	children []*xmlNode
	text     strings.Builder
}

var errNoRoot = errors.New("xml: no root element")

func readXMLTree(s string) (*xmlNode, error) {
	dec := xml.NewDecoder(strings.NewReader(s))
	var stack []*xmlNode
	var root *xmlNode
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{name: t.Name.Local, attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root == nil {
				root = n
			} else {
				return nil, errors.New("xml: multiple root elements")
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, errNoRoot
	}
	if len(stack) != 0 {
		return nil, errors.New("xml: unclosed element")
	}
	return root, nil
}

func parseXML(s string, owner Type, reg Registry) (any, error) {
	root, err := readXMLTree(s)
	if err != nil {
		return nil, err
	}
	return xmlToValue(root, owner, reg), nil
}

// xmlToValue converts an element following the shape of t. t may be nil when
// the element has no declared type.
func xmlToValue(n *xmlNode, t Type, reg Registry) any {
	switch {
	case t != nil && t.IsArray():
		items := itemsOf(t, reg)
		out := make([]any, 0, len(n.children))
		for _, c := range n.children {
			out = append(out, xmlToValue(c, items, reg))
		}
		return out
	case t != nil && t.IsObject(), t == nil && (len(n.children) > 0 || len(n.attrs) > 0):
		return xmlToObject(n, t, reg)
	default:
		return coerceScalar(strings.TrimSpace(n.text.String()), t)
	}
}

func xmlToObject(n *xmlNode, t Type, reg Registry) map[string]any {
	var meta []*Facet
	if pl, ok := t.(PropertyLister); ok {
		meta = pl.Properties()
	} else if t != nil {
		meta = t.Meta()
	}
	propType := func(name string) Type {
		p, ok := FindProperty(meta, name)
		if !ok || reg == nil {
			return nil
		}
		pt, _ := reg.Resolve(p.PropertyType())
		return pt
	}
	out := make(map[string]any, len(n.attrs)+len(n.children))
	for _, a := range n.attrs {
		out[a.Name.Local] = coerceScalar(a.Value, propType(a.Name.Local))
	}
	counts := make(map[string]int, len(n.children))
	for _, c := range n.children {
		counts[c.name]++
	}
	for _, c := range n.children {
		pt := propType(c.name)
		if pt != nil && pt.IsArray() {
			// <tags><tag>a</tag></tags> wraps items; bare repeated elements do not.
			if counts[c.name] == 1 && len(c.children) > 0 {
				out[c.name] = xmlToValue(c, pt, reg)
				continue
			}
			items := itemsOf(pt, reg)
			list, _ := out[c.name].([]any)
			out[c.name] = append(list, xmlToValue(c, items, reg))
			continue
		}
		v := xmlToValue(c, pt, reg)
		if counts[c.name] > 1 {
			list, _ := out[c.name].([]any)
			out[c.name] = append(list, v)
			continue
		}
		out[c.name] = v
	}
	return out
}

func itemsOf(t Type, reg Registry) Type {
	it, ok := t.(ItemsTyper)
	if !ok || reg == nil {
		return nil
	}
	items, _ := reg.Resolve(it.Items())
	return items
}

// coerceScalar converts element text to the scalar type hinted by t. Text
// that does not parse stays a string and is reported by validation.
func coerceScalar(s string, t Type) any {
	if t == nil {
		return s
	}
	switch {
	case t.IsSubTypeOf("boolean"):
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	case t.IsSubTypeOf("integer"):
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	case t.IsSubTypeOf("number"):
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
