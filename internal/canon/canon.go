// Package canon implements the canonical text encoding (C2) used to hash
// and store object dictionaries. Object dictionaries are represented as
// plain map[string]any / []any trees; Go's encoding/json already sorts
// map[string]any keys and supports a fixed two-space indent, which is
// exactly the determinism contract §6 requires, so no third-party JSON
// library is introduced for this piece.
package canon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrFormat is returned when a blob is not valid canonical JSON.
var ErrFormat = errors.New("canon: invalid format")

// indent is the fixed two-space indentation mandated by §6.
const indent = "  "

// Encode renders a dictionary (built from map[string]any, []any, string,
// bool, and nested combinations thereof) to its canonical UTF-8 byte
// representation: sorted keys at every depth, two-space indent, no
// trailing newline.
func Encode(dict map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(dict); err != nil {
		return nil, fmt.Errorf("canon: encode: %w", err)
	}
	// json.Encoder.Encode always appends a trailing newline; §6 asks for
	// no trailing newline beyond what the encoder emits for the value
	// itself, so trim the one byte the stream encoder always adds.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses canonical JSON bytes back into a dictionary.
func Decode(data []byte) (map[string]any, error) {
	var dict map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&dict); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return dict, nil
}

// StringMap extracts a map[string]string from a decoded field, e.g. a
// tree's "directories" or "files" mapping, which canon.Decode hands back
// as map[string]any.
func StringMap(dict map[string]any, key string) (map[string]string, error) {
	raw, ok := dict[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrFormat, key)
	}
	rawMap, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is not an object", ErrFormat, key)
	}
	out := make(map[string]string, len(rawMap))
	for k, v := range rawMap {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q.%q is not a string", ErrFormat, key, k)
		}
		out[k] = s
	}
	return out, nil
}

// Dict extracts a required nested object field.
func Dict(dict map[string]any, key string) (map[string]any, error) {
	raw, ok := dict[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrFormat, key)
	}
	sub, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is not an object", ErrFormat, key)
	}
	return sub, nil
}

// String extracts a required string field.
func String(dict map[string]any, key string) (string, error) {
	raw, ok := dict[key]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", ErrFormat, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is not a string", ErrFormat, key)
	}
	return s, nil
}

// StringSlice extracts a required array-of-string field.
func StringSlice(dict map[string]any, key string) ([]string, error) {
	raw, ok := dict[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrFormat, key)
	}
	rawSlice, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is not an array", ErrFormat, key)
	}
	out := make([]string, len(rawSlice))
	for i, v := range rawSlice {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q[%d] is not a string", ErrFormat, key, i)
		}
		out[i] = s
	}
	return out, nil
}
