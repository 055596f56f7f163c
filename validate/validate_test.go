package validate

import (
	"errors"
	"testing"

	"github.com/jsondoc/go-jsondoc/ir"
	"github.com/jsondoc/go-jsondoc/schema"
)

func mustSchema(t *testing.T, d string) *schema.Node {
	t.Helper()
	s, err := schema.ParseJSON([]byte(d))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustValue(t *testing.T, d string) *ir.Node {
	t.Helper()
	v, err := ir.FromJSON([]byte(d))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestValidate(t *testing.T) {
	personSchema := `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "number", "optional": true}
		}
	}`
	tests := []struct {
		name       string
		schema     string
		value      string
		valuePath  string
		schemaPath string
	}{
		{
			name:   "conforming",
			schema: personSchema,
			value:  `{"name": "joe", "age": 32}`,
		},
		{
			name:   "optional absent",
			schema: personSchema,
			value:  `{"name": "joe"}`,
		},
		{
			name:       "wrong property type",
			schema:     personSchema,
			value:      `{"name": "joe", "age": "thirty two"}`,
			valuePath:  "object.age",
			schemaPath: "schema.properties.age.type",
		},
		{
			name:       "required missing",
			schema:     personSchema,
			value:      `{"age": 32}`,
			valuePath:  "object.name",
			schemaPath: "schema.properties.name.optional",
		},
		{
			name:       "root type mismatch",
			schema:     personSchema,
			value:      `[1, 2]`,
			valuePath:  "object",
			schemaPath: "schema.type",
		},
		{
			name:       "closed properties",
			schema:     `{"type": "object", "properties": {"a": {"type": "number"}}, "additionalProperties": false}`,
			value:      `{"a": 1, "b": 2}`,
			valuePath:  "object.b",
			schemaPath: "schema.additionalProperties",
		},
		{
			name:       "additional properties schema",
			schema:     `{"type": "object", "additionalProperties": {"type": "number"}}`,
			value:      `{"n": "not a number"}`,
			valuePath:  "object.n",
			schemaPath: "schema.additionalProperties.type",
		},
		{
			name:       "integer rejects fraction",
			schema:     `{"type": "object", "properties": {"n": {"type": "integer"}}}`,
			value:      `{"n": 1.5}`,
			valuePath:  "object.n",
			schemaPath: "schema.properties.n.type",
		},
		{
			name:   "integer admits integral",
			schema: `{"type": "object", "properties": {"n": {"type": "integer"}}}`,
			value:  `{"n": 3}`,
		},
		{
			name:       "array item type",
			schema:     `{"type": "array", "items": {"type": "string"}}`,
			value:      `["a", 1]`,
			valuePath:  "object[1]",
			schemaPath: "schema.items.type",
		},
		{
			name:       "tuple position type",
			schema:     `{"type": "array", "items": [{"type": "string"}, {"type": "number"}]}`,
			value:      `["a", "b"]`,
			valuePath:  "object[1]",
			schemaPath: "schema.items[1].type",
		},
		{
			name:       "closed items",
			schema:     `{"type": "array", "items": [{"type": "string"}], "additionalItems": false}`,
			value:      `["a", "b"]`,
			valuePath:  "object[1]",
			schemaPath: "schema.additionalItems",
		},
		{
			name:       "nested value path",
			schema:     `{"type": "object", "properties": {"server": {"type": "object", "properties": {"port": {"type": "number"}}}}}`,
			value:      `{"server": {"port": "eighty"}}`,
			valuePath:  "object.server.port",
			schemaPath: "schema.properties.server.properties.port.type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(mustValue(t, tt.value), mustSchema(t, tt.schema))
			if tt.valuePath == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			vErr := &Error{}
			if !errors.As(err, &vErr) {
				t.Fatalf("error %v is not a *Error", err)
			}
			if vErr.ValuePath != tt.valuePath {
				t.Errorf("value path = %q, want %q", vErr.ValuePath, tt.valuePath)
			}
			if vErr.SchemaPath != tt.schemaPath {
				t.Errorf("schema path = %q, want %q", vErr.SchemaPath, tt.schemaPath)
			}
		})
	}
}

func TestValidateCheck(t *testing.T) {
	s := mustSchema(t, `{
		"type": "object",
		"properties": {"port": {"type": "number"}},
		"check": "value.port > 0 && value.port < 65536"
	}`)
	if err := Validate(mustValue(t, `{"port": 8080}`), s); err != nil {
		t.Fatalf("conforming value rejected: %v", err)
	}
	err := Validate(mustValue(t, `{"port": 0}`), s)
	vErr := &Error{}
	if !errors.As(err, &vErr) {
		t.Fatalf("error %v is not a *Error", err)
	}
	if vErr.SchemaPath != "schema.check" {
		t.Errorf("schema path = %q, want schema.check", vErr.SchemaPath)
	}
}

func TestValidateNilSchema(t *testing.T) {
	if err := Validate(mustValue(t, `{"anything": true}`), nil); err != nil {
		t.Errorf("nil schema rejected a value: %v", err)
	}
}

func TestValidateDefaultNotRequired(t *testing.T) {
	s := mustSchema(t, `{
		"type": "object",
		"properties": {"host": {"type": "string", "default": "localhost"}}
	}`)
	if err := Validate(mustValue(t, `{}`), s); err != nil {
		t.Errorf("property with default treated as required: %v", err)
	}
}
