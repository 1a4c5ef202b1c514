// Package customfield models the per-tier custom field definitions that a
// contribution order can carry, validates submitted values against an
// OpenAPI-style schema, and sanitises free-text input before it reaches the
// order payload.
package customfield

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/microcosm-cc/bluemonday"
)

// FieldType enumerates the supported input types for custom fields.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldURL      FieldType = "url"
	FieldNumber   FieldType = "number"
	FieldCheckbox FieldType = "checkbox"
)

// Field describes one custom field attached to a tier.
type Field struct {
	Name     string    `json:"name" yaml:"name"`
	Label    string    `json:"label" yaml:"label"`
	Type     FieldType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
}

// Schema builds an object schema for the given field definitions. Values are
// validated with the same machinery the backend uses for its API payloads.
func Schema(fields []Field) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		schema.WithProperty(name, propertySchema(field))
		if field.Required {
			schema.Required = append(schema.Required, name)
		}
	}
	return schema
}

func propertySchema(field Field) *openapi3.Schema {
	switch field.Type {
	case FieldNumber:
		return openapi3.NewFloat64Schema()
	case FieldCheckbox:
		return openapi3.NewBoolSchema()
	case FieldEmail:
		return openapi3.NewStringSchema().WithFormat("email")
	case FieldURL:
		return openapi3.NewStringSchema().WithFormat("uri")
	default:
		return openapi3.NewStringSchema()
	}
}

// Validate checks the submitted values against the field definitions.
// Values arrive as strings (form input); numeric and boolean fields are
// converted before schema validation so type errors surface with the field
// name attached.
func Validate(fields []Field, values map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	payload := make(map[string]any, len(values))
	byName := make(map[string]Field, len(fields))
	for _, field := range fields {
		byName[strings.TrimSpace(field.Name)] = field
	}

	for name, raw := range values {
		field, known := byName[name]
		if !known {
			payload[name] = raw
			continue
		}
		converted, err := convertValue(field, raw)
		if err != nil {
			return err
		}
		if converted != nil {
			payload[name] = converted
		}
	}

	if err := Schema(fields).VisitJSON(payload); err != nil {
		return fmt.Errorf("customfield: %w", err)
	}
	return nil
}

func convertValue(field Field, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		// Empty values are treated as absent so required-field checks fire.
		return nil, nil
	}

	switch field.Type {
	case FieldNumber:
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("customfield: field %q: not a number: %q", field.Name, raw)
		}
		return parsed, nil
	case FieldCheckbox:
		parsed, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, fmt.Errorf("customfield: field %q: not a boolean: %q", field.Name, raw)
		}
		return parsed, nil
	default:
		return trimmed, nil
	}
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// SanitizeText strips any markup from a free-text value.
func SanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(textSanitizer().Sanitize(trimmed))
}

// SanitizeValues returns a copy of the value map with every entry stripped of
// markup. Nil input stays nil.
func SanitizeValues(values map[string]string) map[string]string {
	if values == nil {
		return nil
	}
	out := make(map[string]string, len(values))
	for name, value := range values {
		out[name] = SanitizeText(value)
	}
	return out
}
