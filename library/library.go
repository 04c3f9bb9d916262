// Package library loads a type library document (YAML or JSON) into a
// typesys.Registry with every facet attached, ready for validation.
//
// A document has two sections:
//
//	annotationTypes:
//	  deprecated: boolean
//	types:
//	  Pet:
//	    type: object
//	    discriminator: kind
//	    properties:
//	      kind: string
//	      name?: string
//	  Dog:
//	    type: Pet
//	    discriminatorValue: dog
//	    (deprecated): true
//
// Other top-level keys are ignored.
package library

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"

	tf "github.com/reoring/typefacet"
	"github.com/reoring/typefacet/typesys"
)

// Format of a library document.
type Format int

const (
	FormatAuto Format = iota
	FormatYAML
	FormatJSON
)

// Options configures loading.
type Options struct {
	Format Format
	// AllowDuplicateKeys disables duplicate key detection in YAML input.
	AllowDuplicateKeys bool
	Registry           typesys.Options
}

// Library is a loaded document.
type Library struct {
	Registry *typesys.Registry
}

// Validate runs the facet validation pass over every declared type.
func (l *Library) Validate() *tf.Status { return l.Registry.ValidateAll() }

// LoadError locates a structural problem in the document.
type LoadError struct {
	Path string // JSON Pointer into the document (for example: /types/Pet/properties).
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("library: %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

var (
	ErrNotAMap        = errors.New("expected a map")
	ErrTypeExpression = errors.New("unsupported type expression")
	ErrEmptyDocument  = errors.New("empty document")
)

// LoadFile reads and loads a library from disk. The format is taken from the
// extension when opts.Format is FormatAuto.
func LoadFile(path string, opts Options) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}
	if opts.Format == FormatAuto && strings.EqualFold(filepath.Ext(path), ".json") {
		opts.Format = FormatJSON
	}
	return Load(data, opts)
}

// Load decodes and builds a library document.
func Load(data []byte, opts Options) (*Library, error) {
	doc, err := decode(data, opts)
	if err != nil {
		return nil, err
	}
	m, ok := doc.(map[string]any)
	if !ok {
		if doc == nil {
			return nil, &LoadError{Path: "/", Err: ErrEmptyDocument}
		}
		return nil, &LoadError{Path: "/", Err: ErrNotAMap}
	}
	return FromValue(m, opts)
}

func decode(data []byte, opts Options) (any, error) {
	format := opts.Format
	if format == FormatAuto {
		format = FormatYAML
		if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '{' {
			format = FormatJSON
		}
	}
	if format == FormatJSON {
		if !opts.AllowDuplicateKeys {
			if err := detectJSONDuplicateKeys(data); err != nil {
				return nil, fmt.Errorf("decode JSON library: %w", err)
			}
		}
		var out any
		if err := j.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode JSON library: %w", err)
		}
		return out, nil
	}
	rd := NewStrictYAMLReader(bytes.NewReader(data))
	rd.allowDuplicate = opts.AllowDuplicateKeys
	out, err := rd.Next()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode YAML library: %w", err)
	}
	return out, nil
}

// FromValue builds a library from an already decoded document.
func FromValue(doc map[string]any, opts Options) (*Library, error) {
	b := &builder{
		reg:   typesys.NewRegistry(opts.Registry),
		decls: map[string]any{},
		state: map[string]int{},
	}
	if err := b.build(doc); err != nil {
		return nil, err
	}
	return &Library{Registry: b.reg}, nil
}
