package schema

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

type FieldType string

const (
	String  FieldType = "string"
	Number  FieldType = "number"
	Integer FieldType = "integer"
	Boolean FieldType = "boolean"
)

// Field is one declarative validation rule. Min/Max only apply to numeric
// fields and are inclusive bounds.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	Min      *float64
	Max      *float64
}

// Schema is a declared payload shape evaluated by Validate. When
// AdditionalProperties is false the presence of an undeclared field is
// itself a violation.
type Schema struct {
	Fields               []Field
	AdditionalProperties bool
}

func Float(v float64) *float64 {
	return &v
}

// Validate checks payload against the schema and returns one human-readable
// message per violated constraint, in schema-declaration order, undeclared
// field violations last. An empty result means the payload is valid.
func (s Schema) Validate(payload map[string]interface{}) []string {
	errs := []string{}
	for _, f := range s.Fields {
		val, ok := payload[f.Name]
		if !ok {
			if f.Required {
				errs = append(errs, fmt.Sprintf("%s is required", f.Name))
			}
			continue
		}
		errs = append(errs, f.check(val)...)
	}
	if !s.AdditionalProperties {
		unknown := []string{}
		for key := range payload {
			if !s.declares(key) {
				unknown = append(unknown, key)
			}
		}
		sort.Strings(unknown)
		for _, key := range unknown {
			errs = append(errs, fmt.Sprintf("%s is not a valid field", key))
		}
	}
	return errs
}

// formatBound keeps bound values out of scientific notation in messages.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s Schema) declares(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (f Field) check(val interface{}) []string {
	errs := []string{}
	switch f.Type {
	case String:
		if _, ok := val.(string); !ok {
			errs = append(errs, fmt.Sprintf("%s must be a string", f.Name))
		}
	case Boolean:
		if _, ok := val.(bool); !ok {
			errs = append(errs, fmt.Sprintf("%s must be a boolean", f.Name))
		}
	case Number, Integer:
		n, ok := val.(float64)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			errs = append(errs, fmt.Sprintf("%s must be a number", f.Name))
			return errs
		}
		if f.Type == Integer && n != math.Trunc(n) {
			errs = append(errs, fmt.Sprintf("%s must be an integer", f.Name))
			return errs
		}
		if f.Min != nil && n < *f.Min {
			errs = append(errs, fmt.Sprintf("%s must be greater than or equal to %s", f.Name, formatBound(*f.Min)))
		}
		if f.Max != nil && n > *f.Max {
			errs = append(errs, fmt.Sprintf("%s must be less than or equal to %s", f.Name, formatBound(*f.Max)))
		}
	}
	return errs
}
