package typesys

import (
	"fmt"
	"math"
	"sort"
	"time"

	tf "github.com/reoring/typefacet"
)

// Validate checks v as a standalone value of t.
func (t *Type) Validate(v any) *tf.Status { return t.ValidateDirect(v, true) }

// ValidateDirect checks the structure of v against t. With root set, issue
// paths are absolute JSON Pointers; otherwise they are relative to the caller.
// The returned status carries the first failure as its message and one child
// per failure.
func (t *Type) ValidateDirect(v any, root bool) *tf.Status {
	base := ""
	if root {
		base = "/"
	}
	var issues []*tf.Status
	t.check(v, base, &issues)
	if len(issues) == 0 {
		return tf.OKStatus()
	}
	st := &tf.Status{Severity: tf.SeverityError, Code: issues[0].Code, Message: issues[0].Message}
	if len(issues) > 1 {
		st.Message = fmt.Sprintf("%s (and %d more)", issues[0].Message, len(issues)-1)
	}
	for _, is := range issues {
		st.AddSubStatus(is)
	}
	return st
}

func (t *Type) check(v any, path string, out *[]*tf.Status) {
	fail := func(code string, data map[string]string) {
		msg := tf.NewError(code, data).Message
		if path != "" && path != "/" {
			msg = path + ": " + msg
		}
		*out = append(*out, &tf.Status{Severity: tf.SeverityError, Code: code, Message: msg, Path: path})
	}
	expect := func(what string) { fail(tf.CodeInvalidType, map[string]string{"expected": what}) }
	before := len(*out)

	switch t.family {
	case FamilyAny:
	case FamilyNil:
		if v != nil {
			expect("nil")
		}
	case FamilyString:
		if _, ok := v.(string); !ok {
			expect("string")
		}
	case FamilyBoolean:
		if _, ok := v.(bool); !ok {
			expect("boolean")
		}
	case FamilyNumber:
		if _, ok := tf.NumberValue(v); !ok {
			expect("number")
		}
	case FamilyInteger:
		f, ok := tf.NumberValue(v)
		if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
			expect("integer")
		}
	case FamilyDateOnly:
		if s, ok := v.(string); !ok || !parses("2006-01-02", s) {
			expect("date-only (YYYY-MM-DD)")
		}
	case FamilyDateTime:
		if s, ok := v.(string); !ok || !parses(time.RFC3339, s) {
			expect("datetime (RFC3339)")
		}
	case FamilyObject:
		t.checkObject(v, path, out, expect, fail)
	case FamilyArray:
		arr, ok := v.([]any)
		if !ok {
			expect("array")
			break
		}
		items, ok := t.reg.resolve(t.Items())
		if !ok {
			break
		}
		for i, el := range arr {
			items.check(el, tf.JoinPointer(path, fmt.Sprint(i)), out)
		}
	}
	if enum := t.Enum(); enum != nil && len(*out) == before && !inEnum(v, enum) {
		fail(tf.CodeInvalidEnum, nil)
	}
}

func (t *Type) checkObject(v any, path string, out *[]*tf.Status, expect func(string), fail func(string, map[string]string)) {
	obj, ok := v.(map[string]any)
	if !ok {
		expect("object")
		return
	}
	props := t.Properties()
	known := make(map[string]bool, len(props))
	for _, p := range props {
		name := p.PropertyName()
		known[name] = true
		pv, present := obj[name]
		if !present {
			if p.PropertyRequired() {
				fail(tf.CodeRequired, map[string]string{"name": name})
			}
			continue
		}
		pt, ok := t.reg.resolve(p.PropertyType())
		if !ok {
			continue
		}
		pt.check(pv, tf.JoinPointer(path, name), out)
	}
	if !t.isClosed() {
		return
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if !known[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fail(tf.CodeUnknownKey, map[string]string{"name": k})
	}
}

func parses(layout, s string) bool {
	_, err := time.Parse(layout, s)
	return err == nil
}

// inEnum compares numbers by value so that YAML integers match JSON floats.
func inEnum(v any, enum []any) bool {
	vf, vnum := tf.NumberValue(v)
	for _, e := range enum {
		if ef, enumNum := tf.NumberValue(e); enumNum && vnum {
			if ef == vf {
				return true
			}
			continue
		}
		switch v.(type) {
		case string, bool, nil:
			if e == v {
				return true
			}
		}
	}
	return false
}
