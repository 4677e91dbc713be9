package crew

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/vmakoed/wordpan/runtime/agent/model"
)

type (
	// OutputSchema is a compiled JSON Schema constraining a task output.
	OutputSchema struct {
		name        string
		description string
		raw         json.RawMessage
		schema      *jsonschema.Schema
	}

	// ValidationError indicates a model output that does not satisfy the task
	// output schema. It is never retried.
	ValidationError struct {
		// Task is the name of the task whose output failed validation.
		Task string
		// Raw is the model output.
		Raw string
		// Err is the JSON decoding or schema validation failure.
		Err error
	}
)

// errNoJSONObject is reported when the model output contains no JSON object.
var errNoJSONObject = errors.New("output does not contain a JSON object")

// NewOutputSchema compiles the JSON Schema document schemaJSON.
func NewOutputSchema(name, description string, schemaJSON []byte) (*OutputSchema, error) {
	if name == "" {
		return nil, errors.New("crew: output schema name is required")
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("crew: output schema %q: decode: %w", name, err)
	}
	c := jsonschema.NewCompiler()
	loc := name + ".json"
	if err := c.AddResource(loc, doc); err != nil {
		return nil, fmt.Errorf("crew: output schema %q: add resource: %w", name, err)
	}
	sch, err := c.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("crew: output schema %q: compile: %w", name, err)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, schemaJSON); err != nil {
		return nil, fmt.Errorf("crew: output schema %q: compact: %w", name, err)
	}
	return &OutputSchema{name: name, description: description, raw: compact.Bytes(), schema: sch}, nil
}

// MustOutputSchema is like NewOutputSchema but panics on error. It is meant
// for schemas embedded in the binary.
func MustOutputSchema(name, description string, schemaJSON []byte) *OutputSchema {
	s, err := NewOutputSchema(name, description, schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *OutputSchema) Name() string { return s.name }

// JSON returns the compact schema document.
func (s *OutputSchema) JSON() json.RawMessage { return s.raw }

// Format returns the structured output hint sent to model providers.
func (s *OutputSchema) Format() *model.OutputFormat {
	return &model.OutputFormat{Name: s.name, Description: s.description, Schema: s.raw}
}

// Validate extracts the JSON object from raw model text and validates it
// against the schema. raw may be bare JSON, a fenced code block, or prose
// surrounding a single object. A top-level array is rejected. Failures are returned as *ValidationError with
// an empty Task.
func (s *OutputSchema) Validate(raw string) (map[string]any, error) {
	candidate, ok := extractJSON(raw)
	if !ok {
		return nil, &ValidationError{Raw: raw, Err: errNoJSONObject}
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(candidate))
	if err != nil {
		return nil, &ValidationError{Raw: raw, Err: fmt.Errorf("decode output: %w", err)}
	}
	if err := s.schema.Validate(doc); err != nil {
		return nil, &ValidationError{Raw: raw, Err: err}
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &ValidationError{Raw: raw, Err: errNoJSONObject}
	}
	return obj, nil
}

// Decode converts the validated JSON document of out into a T.
func Decode[T any](out *TaskOutput) (*T, error) {
	if out == nil || out.JSON == nil {
		return nil, errors.New("crew: task output has no structured result")
	}
	data, err := json.Marshal(out.JSON)
	if err != nil {
		return nil, fmt.Errorf("crew: encode %s output: %w", out.Task, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("crew: decode %s output: %w", out.Task, err)
	}
	return &v, nil
}

func (e *ValidationError) Error() string {
	if e.Task == "" {
		return fmt.Sprintf("crew: invalid output: %v", e.Err)
	}
	return fmt.Sprintf("crew: task %q: invalid output: %v", e.Task, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidationError reports whether err contains a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// extractJSON returns the JSON object text embedded in raw.
func extractJSON(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			// Drop the info string ("json").
			s = s[i+1:]
		}
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	if strings.HasPrefix(s, "{") && json.Valid([]byte(s)) {
		return s, true
	}
	if strings.HasPrefix(s, "[") {
		// An array is not an object even when it wraps one.
		return "", false
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
