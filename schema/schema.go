package schema

import (
	"slices"

	"github.com/jsondoc/go-jsondoc/ir"
)

// TypeTag names a declared value type in a schema.
type TypeTag string

const (
	AnyTag     TypeTag = "any"
	ObjectTag  TypeTag = "object"
	ArrayTag   TypeTag = "array"
	StringTag  TypeTag = "string"
	NumberTag  TypeTag = "number"
	IntegerTag TypeTag = "integer"
	BooleanTag TypeTag = "boolean"
	NullTag    TypeTag = "null"
)

// TypeTags returns all recognized type tags.
func TypeTags() []TypeTag {
	return []TypeTag{
		AnyTag,
		ObjectTag,
		ArrayTag,
		StringTag,
		NumberTag,
		IntegerTag,
		BooleanTag,
		NullTag,
	}
}

// Node is a parsed schema node.
type Node struct {
	// DeclaredTypes holds the declared type tags; empty means any.
	DeclaredTypes []TypeTag

	// Default is the declared default value, or nil when none is
	// declared. A declared null default is ir.Null(), not nil.
	Default *ir.Node

	// Optional marks a property which may be absent; false means
	// required.
	Optional bool

	Properties           map[string]*Node
	Items                *Node   // single schema for all elements
	TupleItems           []*Node // positional element schemas
	AdditionalItems      *Node
	AdditionalProperties *Node

	// Closed* record an explicit `false` for additional
	// properties/items. Navigation still degrades to the any-schema;
	// validation rejects unlisted members.
	ClosedProperties bool
	ClosedItems      bool

	// FragmentClass is the declared fragment class tag (the
	// __fragment_cls key), consumed by the document fragment factory.
	FragmentClass string

	// Check is an optional boolean expression evaluated against the
	// value during validation.
	Check string

	Title       string
	Description string
}

var anySchema = &Node{}

// Any returns the accept-anything schema.
func Any() *Node {
	return anySchema
}

// Types returns the normalized declared type set; absence normalizes to
// {any}.
func (n *Node) Types() []TypeTag {
	if len(n.DeclaredTypes) == 0 {
		return []TypeTag{AnyTag}
	}
	return n.DeclaredTypes
}

// AllowsAny reports whether the schema accepts every type.
func (n *Node) AllowsAny() bool {
	return len(n.DeclaredTypes) == 0 ||
		slices.Contains(n.DeclaredTypes, AnyTag)
}

// HasDefault reports whether the schema declares a default value.
func (n *Node) HasDefault() bool {
	return n.Default != nil
}

// Child returns the schema for object field key. Absence degrades to the
// any-schema.
func (n *Node) Child(key string) *Node {
	if child, ok := n.Properties[key]; ok {
		return child
	}
	if n.AdditionalProperties != nil {
		return n.AdditionalProperties
	}
	return Any()
}

// ChildAt returns the schema for array element i. A single items schema
// covers every element; positional schemas fall back to additionalItems
// past their end. Absence degrades to the any-schema.
func (n *Node) ChildAt(i int) *Node {
	if n.Items != nil {
		return n.Items
	}
	if i >= 0 && i < len(n.TupleItems) {
		return n.TupleItems[i]
	}
	if n.AdditionalItems != nil {
		return n.AdditionalItems
	}
	return Any()
}

// AllowsType reports whether the declared type set admits values of the
// given node type. Integer admits only integral numbers, which is checked
// per value by the validator; here it admits NumberType.
func (n *Node) AllowsType(t ir.Type) bool {
	if n.AllowsAny() {
		return true
	}
	for _, tag := range n.DeclaredTypes {
		if tagAllows(tag, t) {
			return true
		}
	}
	return false
}

func tagAllows(tag TypeTag, t ir.Type) bool {
	switch tag {
	case AnyTag:
		return true
	case ObjectTag:
		return t == ir.ObjectType
	case ArrayTag:
		return t == ir.ArrayType
	case StringTag:
		return t == ir.StringType
	case NumberTag, IntegerTag:
		return t == ir.NumberType
	case BooleanTag:
		return t == ir.BoolType
	case NullTag:
		return t == ir.NullType
	}
	return false
}
