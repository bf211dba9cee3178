package schema

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/kaptinlin/jsonschema"
)

//go:embed schemas/*.yaml
var schemaFS embed.FS

// Name identifies one of the embedded schemas.
type Name string

const (
	TaskSchema    Name = "task"
	ErratumSchema Name = "erratum"
)

// -----------------------------------------------------------------------------
// Schema
// -----------------------------------------------------------------------------

type Schema map[string]any

func (s *Schema) String() string {
	bytes, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(bytes)
}

func (s *Schema) Compile() (*jsonschema.Schema, error) {
	if s == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	compiled, err := jsonschema.NewCompiler().Compile(bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return compiled, nil
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

var (
	compiledMu sync.Mutex
	compiled   = map[Name]*jsonschema.Schema{}
)

// Parse reads an embedded YAML schema.
func Parse(name Name) (Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + string(name) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", name, err)
	}
	jsonBytes, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert schema %q: %w", name, err)
	}
	var s Schema
	if err := json.Unmarshal(jsonBytes, &s); err != nil {
		return nil, fmt.Errorf("failed to decode schema %q: %w", name, err)
	}
	return s, nil
}

// Load returns the compiled schema, compiling it on first use.
func Load(name Name) (*jsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()
	if s, ok := compiled[name]; ok {
		return s, nil
	}
	s, err := Parse(name)
	if err != nil {
		return nil, err
	}
	c, err := s.Compile()
	if err != nil {
		return nil, err
	}
	compiled[name] = c
	return c, nil
}

// Validate checks value against the named schema.
func Validate(_ context.Context, name Name, value any) error {
	compiledSchema, err := Load(name)
	if err != nil {
		return err
	}
	result := compiledSchema.Validate(value)
	if result.Valid {
		return nil
	}
	violations := make([]string, 0, len(result.Errors))
	for key, evalErr := range result.Errors {
		violations = append(violations, fmt.Sprintf("%s: %s", key, evalErr.Error()))
	}
	sort.Strings(violations)
	return NewViolationError(name, violations)
}
