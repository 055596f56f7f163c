// Package validate checks document values against schemas.
//
// Validation is structural: declared types, required properties and
// element schemas are checked recursively. Schemas may also carry a check
// expression (expr-lang) evaluated against the value.
//
// Failures are reported as *Error carrying two path expressions: the value
// path of the offending value (for example "object.age") and the schema
// path of the violated constraint (for example
// "schema.properties.age.type").
package validate

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/jsondoc/go-jsondoc/ir"
	"github.com/jsondoc/go-jsondoc/schema"
)

// Error is a schema non-conformance report.
type Error struct {
	// ValuePath locates the offending value, e.g. "object.age".
	ValuePath string
	// SchemaPath locates the violated constraint, e.g.
	// "schema.properties.age.type".
	SchemaPath string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.ValuePath, e.Message, e.SchemaPath)
}

// Validate checks value against s. It returns nil on conformance or an
// *Error pinpointing the first mismatch. The value is not mutated.
func Validate(value *ir.Node, s *schema.Node) error {
	if s == nil {
		return nil
	}
	return validateAt(value, s, "object", "schema")
}

func validateAt(value *ir.Node, s *schema.Node, valuePath, schemaPath string) error {
	if !s.AllowsType(value.Type) {
		return &Error{
			ValuePath:  valuePath,
			SchemaPath: schemaPath + ".type",
			Message: fmt.Sprintf("%s does not match declared type %v",
				value.Type, s.Types()),
		}
	}
	if err := validateInteger(value, s, valuePath, schemaPath); err != nil {
		return err
	}

	switch value.Type {
	case ir.ObjectType:
		if err := validateObject(value, s, valuePath, schemaPath); err != nil {
			return err
		}
	case ir.ArrayType:
		if err := validateArray(value, s, valuePath, schemaPath); err != nil {
			return err
		}
	}

	return validateCheck(value, s, valuePath, schemaPath)
}

// validateInteger rejects fractional numbers where only integer is
// declared.
func validateInteger(value *ir.Node, s *schema.Node, valuePath, schemaPath string) error {
	if value.Type != ir.NumberType || s.AllowsAny() {
		return nil
	}
	integral := value.Int64 != nil
	for _, tag := range s.DeclaredTypes {
		switch tag {
		case schema.NumberTag:
			return nil
		case schema.IntegerTag:
			if integral {
				return nil
			}
		}
	}
	return &Error{
		ValuePath:  valuePath,
		SchemaPath: schemaPath + ".type",
		Message:    fmt.Sprintf("%s is not an integer", ir.NumberString(value)),
	}
}

func validateObject(value *ir.Node, s *schema.Node, valuePath, schemaPath string) error {
	for name, propSchema := range s.Properties {
		childValue := ir.Get(value, name)
		if childValue == nil {
			if propSchema.Optional || propSchema.HasDefault() {
				continue
			}
			return &Error{
				ValuePath:  childPath(valuePath, name),
				SchemaPath: fmt.Sprintf("%s.properties.%s.optional", schemaPath, name),
				Message:    "required property is missing",
			}
		}
		err := validateAt(childValue, propSchema,
			childPath(valuePath, name),
			fmt.Sprintf("%s.properties.%s", schemaPath, name))
		if err != nil {
			return err
		}
	}
	for i, name := range value.Fields {
		if _, listed := s.Properties[name]; listed {
			continue
		}
		if s.AdditionalProperties != nil {
			err := validateAt(value.Values[i], s.AdditionalProperties,
				childPath(valuePath, name),
				schemaPath+".additionalProperties")
			if err != nil {
				return err
			}
			continue
		}
		if s.ClosedProperties {
			return &Error{
				ValuePath:  childPath(valuePath, name),
				SchemaPath: schemaPath + ".additionalProperties",
				Message:    fmt.Sprintf("unlisted property %q is not allowed", name),
			}
		}
	}
	return nil
}

func validateArray(value *ir.Node, s *schema.Node, valuePath, schemaPath string) error {
	for i, elt := range value.Values {
		eltPath := fmt.Sprintf("%s[%d]", valuePath, i)
		switch {
		case s.Items != nil:
			if err := validateAt(elt, s.Items, eltPath, schemaPath+".items"); err != nil {
				return err
			}
		case i < len(s.TupleItems):
			err := validateAt(elt, s.TupleItems[i], eltPath,
				fmt.Sprintf("%s.items[%d]", schemaPath, i))
			if err != nil {
				return err
			}
		case s.AdditionalItems != nil:
			err := validateAt(elt, s.AdditionalItems, eltPath,
				schemaPath+".additionalItems")
			if err != nil {
				return err
			}
		case s.ClosedItems && len(s.TupleItems) > 0:
			return &Error{
				ValuePath:  eltPath,
				SchemaPath: schemaPath + ".additionalItems",
				Message:    fmt.Sprintf("element %d beyond declared items is not allowed", i),
			}
		}
	}
	return nil
}

// validateCheck evaluates the schema's check expression with the value
// bound as "value".
func validateCheck(value *ir.Node, s *schema.Node, valuePath, schemaPath string) error {
	if s.Check == "" {
		return nil
	}
	env := map[string]any{
		"value": ir.ToAny(value),
	}
	prg, err := expr.Compile(s.Check, expr.Env(env), expr.AsBool())
	if err != nil {
		return &Error{
			ValuePath:  valuePath,
			SchemaPath: schemaPath + ".check",
			Message:    fmt.Sprintf("bad check expression: %v", err),
		}
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return &Error{
			ValuePath:  valuePath,
			SchemaPath: schemaPath + ".check",
			Message:    fmt.Sprintf("check failed: %v", err),
		}
	}
	if ok, _ := res.(bool); !ok {
		return &Error{
			ValuePath:  valuePath,
			SchemaPath: schemaPath + ".check",
			Message:    fmt.Sprintf("check %q not satisfied", s.Check),
		}
	}
	return nil
}

func childPath(valuePath, name string) string {
	return valuePath + "." + name
}
