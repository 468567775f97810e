package ai

import (
	"fmt"
	"math"
	"slices"

	"github.com/tidwall/gjson"
)

type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// Schema describes the JSON shape expected from the model. Schemas are
// declared once as package-level values and sent along with the prompt.
type Schema struct {
	Type        Type
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

// Validate checks that raw is JSON of the declared shape: types match and
// required properties are present and non-null. Unknown properties are
// allowed.
func (s *Schema) Validate(raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	return s.check(gjson.ParseBytes(raw), "$")
}

func (s *Schema) check(v gjson.Result, path string) error {
	if !s.matches(v) {
		return fmt.Errorf("%w: %s: expected %s", ErrMalformedResponse, path, s.Type)
	}

	switch s.Type {
	case TypeObject:
		fields := v.Map()
		for _, name := range s.Required {
			if f, ok := fields[name]; !ok || f.Type == gjson.Null {
				return fmt.Errorf("%w: %s.%s: required", ErrMalformedResponse, path, name)
			}
		}
		for name, prop := range s.Properties {
			f, ok := fields[name]
			if !ok || (f.Type == gjson.Null && !slices.Contains(s.Required, name)) {
				continue
			}
			if err := prop.check(f, path+"."+name); err != nil {
				return err
			}
		}
	case TypeArray:
		if s.Items == nil {
			return nil
		}
		for i, item := range v.Array() {
			if err := s.Items.check(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Schema) matches(v gjson.Result) bool {
	switch s.Type {
	case TypeObject:
		return v.IsObject()
	case TypeArray:
		return v.IsArray()
	case TypeString:
		return v.Type == gjson.String
	case TypeNumber:
		return v.Type == gjson.Number
	case TypeInteger:
		return v.Type == gjson.Number && v.Num == math.Trunc(v.Num)
	case TypeBoolean:
		return v.IsBool()
	default:
		return true
	}
}
