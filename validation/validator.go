// Package validation rejects structurally malformed candidate diagrams
// before they reach the repairer. It is the only place in the pipeline where
// input is refused; everything downstream recovers silently.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"laneflow/diagram"
)

// diagramSchemaJSON is the JSON Schema for ProcessDiagram validation.
// Embedded as a constant to avoid filesystem dependencies.
const diagramSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://laneflow.dev/schemas/process-diagram.json",
  "type": "object",
  "required": ["processName", "swimlanes", "elements", "connections"],
  "properties": {
    "processName": { "type": "string" },
    "swimlanes": {
      "type": "array",
      "items": { "$ref": "#/$defs/swimlane" }
    },
    "elements": {
      "type": "array",
      "items": { "$ref": "#/$defs/element" }
    },
    "connections": {
      "type": "array",
      "items": { "$ref": "#/$defs/connection" }
    }
  },
  "additionalProperties": false,
  "$defs": {
    "element": {
      "type": "object",
      "required": ["id", "type", "label", "position"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "type": {
          "type": "string",
          "enum": ["start_event", "end_event", "task", "gateway"]
        },
        "label": { "type": "string" },
        "position": {
          "type": "object",
          "required": ["x", "y"],
          "properties": {
            "x": { "type": "number" },
            "y": { "type": "number" }
          },
          "additionalProperties": false
        }
      },
      "additionalProperties": false
    },
    "swimlane": {
      "type": "object",
      "required": ["id", "label", "elements"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "label": { "type": "string" },
        "elements": {
          "type": "array",
          "items": { "type": "string" }
        }
      },
      "additionalProperties": false
    },
    "connection": {
      "type": "object",
      "required": ["source", "target"],
      "properties": {
        "source": { "type": "string", "minLength": 1 },
        "target": { "type": "string", "minLength": 1 },
        "label": { "type": "string" }
      },
      "additionalProperties": false
    }
  }
}`

// SchemaError reports why a candidate document failed validation. Violations
// carry instance locations so a caller can point at the offending field.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	if len(e.Violations) == 1 {
		return e.Violations[0]
	}
	return fmt.Sprintf("diagram failed validation with %d errors", len(e.Violations))
}

// Validator validates candidate diagrams against the process diagram schema.
// It is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a Validator with the diagram schema pre-compiled.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(diagramSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal diagram schema: %w", err)
	}
	if err := c.AddResource("https://laneflow.dev/schemas/process-diagram.json", doc); err != nil {
		return nil, fmt.Errorf("add diagram schema resource: %w", err)
	}

	compiled, err := c.Compile("https://laneflow.dev/schemas/process-diagram.json")
	if err != nil {
		return nil, fmt.Errorf("compile diagram schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// ValidateBytes validates a raw candidate document.
func (v *Validator) ValidateBytes(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return &SchemaError{Violations: []string{fmt.Sprintf("/: invalid JSON: %v", err)}}
	}
	if err := v.schema.Validate(doc); err != nil {
		return toSchemaError(err)
	}

	var d diagram.ProcessDiagram
	if err := json.Unmarshal(data, &d); err != nil {
		return &SchemaError{Violations: []string{fmt.Sprintf("/: %v", err)}}
	}
	return v.checkStructure(&d)
}

// Validate validates an in-memory diagram by round-tripping it through JSON,
// so numeric values reach the schema library as json.Number.
func (v *Validator) Validate(d *diagram.ProcessDiagram) error {
	if d == nil {
		return &SchemaError{Violations: []string{"/: diagram is nil"}}
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return &SchemaError{Violations: []string{fmt.Sprintf("/: %v", err)}}
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return &SchemaError{Violations: []string{fmt.Sprintf("/: %v", err)}}
	}
	if err := v.schema.Validate(doc); err != nil {
		return toSchemaError(err)
	}
	return v.checkStructure(d)
}

// checkStructure covers what JSON Schema cannot express: id uniqueness.
// Dangling connection and membership references deliberately pass; the
// repairer prunes them.
func (v *Validator) checkStructure(d *diagram.ProcessDiagram) error {
	seen := make(map[string]struct{}, len(d.Elements))
	for _, el := range d.Elements {
		if _, exists := seen[el.ID]; exists {
			return &SchemaError{Violations: []string{fmt.Sprintf("/elements: duplicate element id %q", el.ID)}}
		}
		seen[el.ID] = struct{}{}
	}

	lanes := make(map[string]struct{}, len(d.Swimlanes))
	for _, lane := range d.Swimlanes {
		if _, exists := lanes[lane.ID]; exists {
			return &SchemaError{Violations: []string{fmt.Sprintf("/swimlanes: duplicate swimlane id %q", lane.ID)}}
		}
		lanes[lane.ID] = struct{}{}
	}

	return nil
}

// toSchemaError flattens a jsonschema.ValidationError tree into a SchemaError
// with one message per leaf violation.
func toSchemaError(err error) error {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &SchemaError{Violations: []string{err.Error()}}
	}
	return &SchemaError{Violations: collectViolations(verr)}
}

// collectViolations walks a ValidationError tree and collects leaf error
// messages with their instance locations.
func collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}

	var violations []string
	for _, cause := range verr.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}
