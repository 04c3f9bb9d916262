package library

import (
	"bytes"
	"encoding/json"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]int64 // key -> offset just past the first occurrence
	expectingKey bool
}

// detectJSONDuplicateKeys scans a JSON document token by token and returns a
// *DuplicateKeyError for the first key repeated within one object. Syntax
// errors are left to the decoder that follows.
func detectJSONDuplicateKeys(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var stack []dupFrame

	// a value (scalar or closed container) completes the pending member
	valueDone := func() {
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.kind == kindObject && !top.expectingKey {
				top.expectingKey = true
			}
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			// io.EOF or a syntax error reported later by the real decode
			return nil
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{kind: kindObject, keys: map[string]int64{}, expectingKey: true})
			case '[':
				stack = append(stack, dupFrame{kind: kindArray})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					off := dec.InputOffset()
					if first, dup := top.keys[v]; dup {
						e := &DuplicateKeyError{Key: v}
						e.FirstLine, e.FirstCol = lineCol(data, first)
						e.Line, e.Col = lineCol(data, off)
						return e
					}
					top.keys[v] = off
					top.expectingKey = false
					continue
				}
			}
			valueDone()
		default:
			valueDone()
		}
	}
}

// lineCol converts the offset just past a key token into the 1-based line and
// column of the key's opening quote.
func lineCol(data []byte, end int64) (int, int) {
	start := bytes.LastIndexByte(data[:end-1], '"')
	if start < 0 {
		start = 0
	}
	line := 1 + bytes.Count(data[:start], []byte{'\n'})
	col := start + 1
	if nl := bytes.LastIndexByte(data[:start], '\n'); nl >= 0 {
		col = start - nl
	}
	return line, col
}
