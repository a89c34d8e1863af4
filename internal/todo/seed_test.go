package todo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeed(t, `{
  "schema_version": 1,
  "filter": "Active",
  "todos": [
    {"id": 1, "task": "Walk everyday in the morning", "completed": false},
    {"id": 2, "task": "Water plants", "completed": true}
  ]
}`)

	seed, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}
	if seed.SchemaVersion != 1 {
		t.Errorf("SchemaVersion: got %d, want 1", seed.SchemaVersion)
	}
	if seed.Filter != FilterActive {
		t.Errorf("Filter: got %s, want Active", seed.Filter)
	}
	if len(seed.Todos) != 2 || !seed.Todos[1].Completed {
		t.Fatalf("Todos: got %+v", seed.Todos)
	}

	result := seed.Validate(ValidationOptions{})
	if !result.Valid {
		t.Fatalf("expected valid seed, got errors: %v", result.Errors)
	}
	if !result.UsedSchema {
		t.Error("expected embedded schema to be used")
	}

	s, err := seed.Store()
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if s.Filter() != FilterActive {
		t.Errorf("store filter: got %s, want Active", s.Filter())
	}
	if visible := s.VisibleTodos(); len(visible) != 1 || visible[0].ID != 1 {
		t.Errorf("VisibleTodos: got %+v", visible)
	}
	if td, _ := s.Add("next"); td.ID != 3 {
		t.Errorf("next ID: got %d, want 3", td.ID)
	}
}

func TestLoadSeedErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.json"))
		if err == nil || !strings.Contains(err.Error(), "read seed file") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadSeed(writeSeed(t, `{"schema_version": 1,`))
		if err == nil || !strings.Contains(err.Error(), "parse seed file") {
			t.Errorf("expected parse error, got %v", err)
		}
	})
}

func TestSeedValidate(t *testing.T) {
	tests := []struct {
		name     string
		seed     *Seed
		wantPath string
	}{
		{
			name:     "wrong schema_version",
			seed:     &Seed{SchemaVersion: 2, Todos: []Todo{}},
			wantPath: "schema_version",
		},
		{
			name:     "missing todos",
			seed:     &Seed{SchemaVersion: 1},
			wantPath: "todos",
		},
		{
			name:     "non-positive id",
			seed:     &Seed{SchemaVersion: 1, Todos: []Todo{{ID: 0, Task: "a"}}},
			wantPath: "todos[0].id",
		},
		{
			name:     "blank task",
			seed:     &Seed{SchemaVersion: 1, Todos: []Todo{{ID: 1, Task: "   "}}},
			wantPath: "todos[0].task",
		},
		{
			name:     "unknown filter",
			seed:     &Seed{SchemaVersion: 1, Filter: "Done", Todos: []Todo{}},
			wantPath: "filter",
		},
		{
			name:     "duplicate ids",
			seed:     &Seed{SchemaVersion: 1, Todos: []Todo{{ID: 1, Task: "a"}, {ID: 1, Task: "b"}}},
			wantPath: "todos[1].id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.seed.Validate(ValidationOptions{})
			if result.Valid {
				t.Fatal("expected invalid seed")
			}
			found := false
			for _, err := range result.Errors {
				var ve *ValidationError
				if errors.As(err, &ve) && ve.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error at %q, got %v", tt.wantPath, result.Errors)
			}
		})
	}
}

func TestSeedValidateRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		key      string
		wantPath string
	}{
		{
			name:     "top-level key",
			content:  `{"schema_version": 1, "fliter": "Completed", "todos": []}`,
			key:      "fliter",
			wantPath: "",
		},
		{
			name:     "todo key",
			content:  `{"schema_version": 1, "todos": [{"id": 1, "task": "a", "done": true}]}`,
			key:      "done",
			wantPath: "todos[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := LoadSeed(writeSeed(t, tt.content))
			if err != nil {
				t.Fatalf("LoadSeed failed: %v", err)
			}
			result := seed.Validate(ValidationOptions{})
			if !result.UsedSchema {
				t.Fatalf("expected embedded schema to be used, warnings: %v", result.Warnings)
			}
			if result.Valid {
				t.Fatalf("expected unknown key %q to be rejected", tt.key)
			}
			found := false
			for _, err := range result.Errors {
				var ve *ValidationError
				if errors.As(err, &ve) && ve.Path == tt.wantPath && strings.Contains(ve.Error(), tt.key) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error naming %q at %q, got %v", tt.key, tt.wantPath, result.Errors)
			}
		})
	}
}

func TestSeedValidateMissingSchemaFallsBack(t *testing.T) {
	seed := &Seed{SchemaVersion: 1, Todos: []Todo{{ID: 1, Task: "a"}}}
	result := seed.Validate(ValidationOptions{SchemaPath: "/non/existent/schema.json"})

	if !result.Valid {
		t.Errorf("expected valid seed, got %v", result.Errors)
	}
	if result.UsedSchema {
		t.Error("UsedSchema should be false when the schema file is missing")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected warnings when schema file not found")
	}

	bad := &Seed{SchemaVersion: 1, Todos: []Todo{{ID: 2, Task: "a"}, {ID: 1, Task: "b"}}}
	if result := bad.Validate(ValidationOptions{SchemaPath: "/non/existent/schema.json"}); result.Valid {
		t.Error("minimal checks should still reject decreasing IDs")
	}
}

func TestSeedValidateCustomSchema(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "schema.json")
	schema := `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "todos": {"type": "array", "maxItems": 1}
  }
}`
	if err := os.WriteFile(schemaPath, []byte(schema), 0644); err != nil {
		t.Fatal(err)
	}

	seed := &Seed{SchemaVersion: 1, Todos: []Todo{{ID: 1, Task: "a"}, {ID: 2, Task: "b"}}}
	result := seed.Validate(ValidationOptions{SchemaPath: schemaPath})
	if !result.UsedSchema {
		t.Fatalf("expected custom schema to be used, warnings: %v", result.Warnings)
	}
	if result.Valid {
		t.Error("expected maxItems violation")
	}
}

func TestSeedSchemaIsEmbedded(t *testing.T) {
	schema := SeedSchema()
	if !strings.Contains(string(schema), SeedSchemaURL) {
		t.Error("embedded schema should declare its $id")
	}
	schema[0] = 'x'
	if SeedSchema()[0] == 'x' {
		t.Error("SeedSchema should return a copy")
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/todos", "todos"},
		{"/todos/0/id", "todos[0].id"},
		{"#/todos/12/task", "todos[12].task"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := jsonPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
