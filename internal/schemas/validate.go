// Package schemas provides JSON Schema validation for expert profile records.
package schemas

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed profile.schema.json
var profileSchemaSource string

var (
	profileSchema     *gojsonschema.Schema
	profileSchemaErr  error
	profileSchemaOnce sync.Once
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// DocumentError reports input that is not well-formed JSON.
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("invalid JSON document: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ProfileSchema returns the embedded profile JSON Schema text.
func ProfileSchema() string {
	return profileSchemaSource
}

func loadProfileSchema() (*gojsonschema.Schema, error) {
	profileSchemaOnce.Do(func() {
		profileSchema, profileSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(profileSchemaSource))
		if profileSchemaErr != nil {
			profileSchemaErr = &SchemaLoadError{Path: "profile.schema.json", Message: "invalid embedded schema", Cause: profileSchemaErr}
		}
	})
	return profileSchema, profileSchemaErr
}

// ValidateProfileJSON checks that data has the shape of a {"expert": {...}}
// record. Every field is optional; present fields must carry the right type.
func ValidateProfileJSON(data []byte) error {
	schema, err := loadProfileSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &DocumentError{Cause: err}
	}
	return toValidationError(result)
}

// ValidateProfileFile reads a JSON file and validates it with ValidateProfileJSON.
func ValidateProfileFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", absPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	return ValidateProfileJSON(data)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
