package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SeedSchemaURL identifies the embedded seed schema.
const SeedSchemaURL = "https://github.com/nibzard/tasklist-go/seed.schema.json"

//go:embed seed.schema.json
var seedSchema []byte

// SeedSchema returns the embedded JSON Schema for seed documents.
func SeedSchema() []byte {
	return append([]byte(nil), seedSchema...)
}

// Seed is the read-only document used to populate a store at startup.
type Seed struct {
	SchemaVersion int    `json:"schema_version"`
	Filter        Filter `json:"filter,omitempty"`
	Todos         []Todo `json:"todos"`

	// raw is the document as read from disk. Schema checks run against it
	// so keys unknown to Seed are still reported.
	raw []byte
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath overrides the embedded schema with a file on disk.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// LoadSeed reads and parses a seed document from path.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var s Seed
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	s.raw = data

	return &s, nil
}

// Marshal encodes the seed as indented JSON with a trailing newline.
func (s *Seed) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal seed: %w", err)
	}
	return append(data, '\n'), nil
}

// Validate validates the seed document. Schema checks run first; the ID
// ordering invariants are always checked afterwards.
func (s *Seed) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schemaResult := validateWithSchema(s, opts.SchemaPath)
	result.UsedSchema = schemaResult.UsedSchema
	result.Warnings = append(result.Warnings, schemaResult.Warnings...)
	if schemaResult.UsedSchema && !schemaResult.Valid {
		result.Valid = false
		result.Errors = append(result.Errors, schemaResult.Errors...)
		return result
	}
	if !schemaResult.UsedSchema {
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	}

	s.validateMinimal(result)
	return result
}

// Store builds a store populated from the seed.
func (s *Seed) Store() (*Store, error) {
	filter := s.Filter
	if filter == "" {
		filter = FilterAll
	}
	return NewStore(WithTodos(s.Todos), WithFilter(filter))
}

func (s *Seed) validateMinimal(result *ValidationResult) {
	if s.SchemaVersion != 1 {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "schema_version",
			Err:  fmt.Errorf("expected 1, got %d", s.SchemaVersion),
		})
	}

	if s.Filter != "" && !s.Filter.Valid() {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "filter",
			Err:  fmt.Errorf("%w %q", ErrInvalidFilter, s.Filter),
		})
	}

	if s.Todos == nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "todos",
			Err:  fmt.Errorf("missing required field"),
		})
		return
	}

	if err := validateTodos(s.Todos, "todos"); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err)
	}
}

func compileSchema(schemaPath string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if schemaPath == "" {
		if err := compiler.AddResource(SeedSchemaURL, bytes.NewReader(seedSchema)); err != nil {
			return nil, err
		}
		return compiler.Compile(SeedSchemaURL)
	}

	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return compiler.Compile(absPath)
}

func validateWithSchema(s *Seed, schemaPath string) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schema, err := compileSchema(schemaPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema: %v", err))
		return result
	}

	result.UsedSchema = true

	data := s.raw
	if data == nil {
		var err error
		data, err = json.Marshal(s)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Err: fmt.Errorf("failed to marshal seed for validation: %w", err),
			})
			return result
		}
	}

	var instance interface{}
	if err := json.Unmarshal(data, &instance); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("failed to unmarshal seed for validation: %w", err),
		})
		return result
	}

	if err := schema.Validate(instance); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}

	return result
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath turns "/todos/0/id" into "todos[0].id".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
