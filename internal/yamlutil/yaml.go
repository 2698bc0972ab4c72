// Package yamlutil decodes configuration payloads that cross the C boundary.
// Payloads are JSON documents; YAML block syntax is accepted as well and is
// converted to JSON first. Decoding is type-strict: a scalar of the wrong
// kind, a fractional or out-of-range number is an error, never a coercion.
// Destination structs are tagged with `json` keys. The parser dependencies
// stay behind this package.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

// MaxInputSize limits payload input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyPayload   = errors.New("yamlutil: empty payload")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping     = errors.New("yamlutil: payload must be an object")
	ErrTypeMismatch   = errors.New("yamlutil: value does not match field type")
)

// utf8BOM is tolerated at the start of a payload; some hosts write it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func validateInput(data []byte, v any) ([]byte, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return nil, ErrNilDestination
	}
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	// Sequences and quoted scalars would decode into nothing, silently selecting
	// defaults. Only flow mappings and block mappings are accepted.
	switch {
	case data[0] == '[', data[0] == '"', data[0] == '\'', bytes.HasPrefix(data, []byte("- ")):
		return nil, ErrNotMapping
	}
	return data, nil
}

// Decode parses a payload into v. Unknown keys are ignored; type mismatches
// and syntax errors are reported.
func Decode(data []byte, v any) error {
	data, err := validateInput(data, v)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		if data, err = yaml.YAMLToJSON(data); err != nil {
			return fmt.Errorf("yamlutil: %w", err)
		}
	}
	if err := checkTypes(gjson.ParseBytes(data), reflect.TypeOf(v), ""); err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// checkTypes verifies that every value present in the payload has the JSON
// kind its destination field expects. Integers must be written as plain
// integers that fit the field. null is accepted anywhere and means absent.
func checkTypes(v gjson.Result, t reflect.Type, path string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if v.Type == gjson.Null {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		if !v.IsObject() {
			return mismatch(path, "an object", v)
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if !f.IsExported() || name == "-" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			child := v.Get(name)
			if !child.Exists() {
				continue
			}
			if err := checkTypes(child, f.Type, joinPath(path, name)); err != nil {
				return err
			}
		}
	case reflect.Slice:
		if !v.IsArray() {
			return mismatch(path, "a list", v)
		}
		for i, elem := range v.Array() {
			if err := checkTypes(elem, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case reflect.String:
		if v.Type != gjson.String {
			return mismatch(path, "a string", v)
		}
	case reflect.Bool:
		if v.Type != gjson.True && v.Type != gjson.False {
			return mismatch(path, "a boolean", v)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type != gjson.Number {
			return mismatch(path, "an integer", v)
		}
		if _, err := strconv.ParseInt(v.Raw, 10, t.Bits()); err != nil {
			return mismatch(path, fmt.Sprintf("an integer that fits %d bits", t.Bits()), v)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Type != gjson.Number {
			return mismatch(path, "a non-negative integer", v)
		}
		if _, err := strconv.ParseUint(v.Raw, 10, t.Bits()); err != nil {
			return mismatch(path, fmt.Sprintf("a non-negative integer that fits %d bits", t.Bits()), v)
		}
	case reflect.Float32, reflect.Float64:
		if v.Type != gjson.Number {
			return mismatch(path, "a number", v)
		}
	}
	return nil
}

func mismatch(path, want string, v gjson.Result) error {
	if path == "" {
		path = "payload"
	}
	return fmt.Errorf("%w: %s must be %s, got %s", ErrTypeMismatch, path, want, v.Raw)
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
