package library

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping or JSON
// object with both the first occurrence position and the duplicate occurrence
// position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// StrictYAMLReader decodes a YAML stream using yaml.Node to detect duplicate
// keys (with positions). It returns JSON-like Go values (map[string]any, []any,
// primitives).
type StrictYAMLReader struct {
	dec            *yaml.Decoder
	allowDuplicate bool
}

// NewStrictYAMLReader constructs a StrictYAMLReader.
func NewStrictYAMLReader(r io.Reader) *StrictYAMLReader {
	return &StrictYAMLReader{dec: yaml.NewDecoder(r)}
}

// Next returns the next YAML document converted into a JSON-compatible Go value.
// It returns (nil, io.EOF) when the stream is exhausted.
func (s *StrictYAMLReader) Next() (any, error) {
	var root yaml.Node
	if err := s.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	return s.convert(root.Content[0])
}

func (s *StrictYAMLReader) convert(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return s.convert(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, nil
		}
		return s.convert(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			key := k.Value
			if pos, dup := first[key]; dup && !s.allowDuplicate {
				return nil, &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := s.convert(v)
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := s.convert(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!str", "!", "":
			return n.Value, nil
		case "!!null":
			return nil, nil
		case "!!bool":
			if b, err := strconv.ParseBool(n.Value); err == nil {
				return b, nil
			}
			return n.Value, nil
		case "!!int":
			// int64 avoids overflow surprises; validation compares numbers by value
			if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
				return i, nil
			}
			return n.Value, nil
		case "!!float":
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return f, nil
			}
			return n.Value, nil
		default:
			return n.Value, nil
		}
	default:
		return nil, nil
	}
}
