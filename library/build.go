package library

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	tf "github.com/reoring/typefacet"
	"github.com/reoring/typefacet/typesys"
)

var errCycle = errors.New("inheritance cycle")

const (
	unvisited = iota
	visiting
	done
)

type builder struct {
	reg   *typesys.Registry
	decls map[string]any
	state map[string]int
}

func (b *builder) build(doc map[string]any) error {
	types, err := section(doc, "types")
	if err != nil {
		return err
	}
	annotations, err := section(doc, "annotationTypes")
	if err != nil {
		return err
	}

	names := sortedKeys(types)
	for _, n := range names {
		b.decls[n] = types[n]
		if _, err := b.reg.Placeholder(n); err != nil {
			return &LoadError{Path: tf.JoinPointer("/types", n), Err: err}
		}
	}
	for _, n := range names {
		if err := b.ensure(n); err != nil {
			return err
		}
	}
	for _, n := range names {
		t, _ := b.reg.Lookup(n)
		if err := b.apply(t, types[n], tf.JoinPointer("/types", n)); err != nil {
			return err
		}
	}

	for _, n := range sortedKeys(annotations) {
		path := tf.JoinPointer("/annotationTypes", n)
		decl := annotations[n]
		expr, err := superExpr(decl)
		if err != nil {
			return &LoadError{Path: path, Err: err}
		}
		super, err := b.resolveExpr(expr, path)
		if err != nil {
			return err
		}
		at, err := b.reg.DeclareAnnotationFrom(n, super)
		if err != nil {
			return &LoadError{Path: path, Err: err}
		}
		if err := b.apply(at, decl, path); err != nil {
			return err
		}
	}
	return nil
}

// ensure completes the placeholder for name once its supertype is known.
func (b *builder) ensure(name string) error {
	switch b.state[name] {
	case done:
		return nil
	case visiting:
		return &LoadError{Path: tf.JoinPointer("/types", name), Err: errCycle}
	}
	b.state[name] = visiting
	path := tf.JoinPointer("/types", name)
	expr, err := superExpr(b.decls[name])
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	super, err := b.resolveExpr(expr, path)
	if err != nil {
		return err
	}
	t, _ := b.reg.Lookup(name)
	if err := b.reg.Rebase(t, super); err != nil {
		return &LoadError{Path: path, Err: err}
	}
	b.state[name] = done
	return nil
}

// resolveExpr resolves a type name or a `T[]` array expression.
func (b *builder) resolveExpr(expr, path string) (*typesys.Type, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.ContainsAny(expr, "|()") {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrTypeExpression, expr)}
	}
	if base, ok := strings.CutSuffix(expr, "[]"); ok {
		items, err := b.resolveExpr(base, path)
		if err != nil {
			return nil, err
		}
		return b.reg.ArrayOf(items), nil
	}
	if _, user := b.decls[expr]; user {
		if err := b.ensure(expr); err != nil {
			return nil, err
		}
	}
	t, ok := b.reg.Lookup(expr)
	if !ok {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %s", typesys.ErrUnknownType, expr)}
	}
	return t, nil
}

// resolveDecl resolves an inline declaration. Map declarations derive a new
// type named name carrying their own facets.
func (b *builder) resolveDecl(decl any, name, path string) (*typesys.Type, error) {
	expr, err := superExpr(decl)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	super, err := b.resolveExpr(expr, path)
	if err != nil {
		return nil, err
	}
	if _, ok := decl.(map[string]any); !ok {
		return super, nil
	}
	t := b.reg.Derive(name, super)
	if err := b.apply(t, decl, path); err != nil {
		return nil, err
	}
	return t, nil
}

// superExpr extracts the supertype expression of a declaration. Without an
// explicit type, properties imply object, items imply array and anything
// else is a string.
func superExpr(decl any) (string, error) {
	switch d := decl.(type) {
	case nil:
		return "string", nil
	case string:
		if strings.TrimSpace(d) == "" {
			return "string", nil
		}
		return d, nil
	case map[string]any:
		if tv, ok := d["type"]; ok {
			s, ok := tv.(string)
			if !ok {
				return "", fmt.Errorf("%w: type must be a type name", ErrTypeExpression)
			}
			return s, nil
		}
		if _, ok := d["properties"]; ok {
			return "object", nil
		}
		if _, ok := d["items"]; ok {
			return "array", nil
		}
		return "string", nil
	default:
		return "", ErrNotAMap
	}
}

// apply attaches the facets of a map declaration to t.
func (b *builder) apply(t *typesys.Type, decl any, path string) error {
	m, ok := decl.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range sortedKeys(m) {
		v := m[key]
		at := tf.JoinPointer(path, key)
		var f *tf.Facet
		switch key {
		case "type":
			continue
		case "description":
			f = tf.NewDescription(text(v))
		case "displayName":
			f = tf.NewDisplayName(text(v))
		case "usage":
			f = tf.NewUsage(text(v))
		case "default":
			f = tf.NewDefault(v)
		case "example":
			f = tf.NewExample(v)
		case "examples":
			f = tf.NewExamples(v)
		case "discriminator":
			f = tf.NewDiscriminator(text(v))
		case "discriminatorValue":
			f = tf.NewDiscriminatorValue(v)
		case "xml":
			f = tf.NewXMLInfo(v)
		case "required":
			f = tf.NewRequired(v)
		case "allowedTargets":
			f = tf.NewAllowedTargets(v)
		case "properties":
			if err := b.applyProperties(t, v, at); err != nil {
				return err
			}
			continue
		case "facets":
			if err := b.applyDeclarations(t, v, at); err != nil {
				return err
			}
			continue
		case "items":
			items, err := b.resolveDecl(v, t.Name()+".items", at)
			if err != nil {
				return err
			}
			t.SetItems(items)
			continue
		case "enum":
			values, ok := v.([]any)
			if !ok {
				return &LoadError{Path: at, Err: errors.New("enum must be a list")}
			}
			t.SetEnum(values)
			continue
		case "additionalProperties":
			allowed, ok := v.(bool)
			if !ok {
				return &LoadError{Path: at, Err: errors.New("additionalProperties must be a boolean")}
			}
			t.SetAdditionalProperties(allowed)
			continue
		default:
			if name, ok := annotationName(key); ok {
				f = tf.NewAnnotation(name, v)
			} else {
				f = tf.NewCustomFacet(key, v)
			}
		}
		if err := b.reg.Attach(t, f); err != nil {
			return &LoadError{Path: at, Err: err}
		}
	}
	return nil
}

func (b *builder) applyProperties(t *typesys.Type, v any, path string) error {
	props, ok := v.(map[string]any)
	if !ok {
		return &LoadError{Path: path, Err: ErrNotAMap}
	}
	for _, key := range sortedKeys(props) {
		name, optional := strings.CutSuffix(key, "?")
		at := tf.JoinPointer(path, key)
		pt, err := b.resolveDecl(props[key], t.Name()+"."+name, at)
		if err != nil {
			return err
		}
		required := !optional
		if pm, ok := props[key].(map[string]any); ok {
			if r, ok := pm["required"].(bool); ok {
				required = r
			}
		}
		if err := b.reg.Attach(t, tf.NewProperty(name, pt.ID(), required)); err != nil {
			return &LoadError{Path: at, Err: err}
		}
	}
	return nil
}

func (b *builder) applyDeclarations(t *typesys.Type, v any, path string) error {
	decls, ok := v.(map[string]any)
	if !ok {
		return &LoadError{Path: path, Err: ErrNotAMap}
	}
	for _, key := range sortedKeys(decls) {
		name, optional := strings.CutSuffix(key, "?")
		at := tf.JoinPointer(path, key)
		ft, err := b.resolveDecl(decls[key], t.Name()+"."+name, at)
		if err != nil {
			return err
		}
		if err := b.reg.Attach(t, tf.NewFacetDeclaration(name, ft.ID(), optional)); err != nil {
			return &LoadError{Path: at, Err: err}
		}
	}
	return nil
}

func section(doc map[string]any, key string) (map[string]any, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return map[string]any{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &LoadError{Path: "/" + key, Err: ErrNotAMap}
	}
	return m, nil
}

func annotationName(key string) (string, bool) {
	if len(key) < 2 || key[0] != '(' || key[len(key)-1] != ')' {
		return "", false
	}
	return key[1 : len(key)-1], true
}

func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
