package ir

import (
	"fmt"
	"slices"
)

// FieldIndex returns the index of field in an object node, or -1.
func (y *Node) FieldIndex(field string) int {
	return slices.Index(y.Fields, field)
}

// SetField sets field to v in an object node, replacing any prior value or
// appending a new field. The replaced value, if any, is detached and
// returned.
func (y *Node) SetField(field string, v *Node) (*Node, error) {
	if y.Type != ObjectType {
		return nil, fmt.Errorf("set field %q: expected object, got %s", field, y.Type)
	}
	v.ParentField = field
	if i := y.FieldIndex(field); i >= 0 {
		old := y.Values[i]
		old.Parent = nil
		v.Parent = y
		v.ParentIndex = i
		y.Values[i] = v
		return old, nil
	}
	v.Parent = y
	v.ParentIndex = len(y.Values)
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, v)
	return nil, nil
}

// DeleteField removes field from an object node, returning the detached
// value or nil when the field was absent. Later fields shift down.
func (y *Node) DeleteField(field string) *Node {
	i := y.FieldIndex(field)
	if i < 0 {
		return nil
	}
	old := y.Values[i]
	old.Parent = nil
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	for j := i; j < len(y.Values); j++ {
		y.Values[j].ParentIndex = j
	}
	return old
}

// SetIndex replaces the element at index i in an array node. The index must
// be in range or one past the end, in which case v is appended.
func (y *Node) SetIndex(i int, v *Node) (*Node, error) {
	if y.Type != ArrayType {
		return nil, fmt.Errorf("set index %d: expected array, got %s", i, y.Type)
	}
	if i < 0 || i > len(y.Values) {
		return nil, fmt.Errorf("index out of bounds %d (len %d)", i, len(y.Values))
	}
	v.Parent = y
	v.ParentIndex = i
	if i == len(y.Values) {
		y.Values = append(y.Values, v)
		return nil, nil
	}
	old := y.Values[i]
	old.Parent = nil
	y.Values[i] = v
	return old, nil
}

// Append adds v to the end of an array node.
func (y *Node) Append(v *Node) error {
	if y.Type != ArrayType {
		return fmt.Errorf("append: expected array, got %s", y.Type)
	}
	v.Parent = y
	v.ParentIndex = len(y.Values)
	y.Values = append(y.Values, v)
	return nil
}

// Len returns the number of children for containers, the character count
// for strings, and 0 otherwise.
func (y *Node) Len() int {
	switch y.Type {
	case ObjectType, ArrayType:
		return len(y.Values)
	case StringType:
		return len([]rune(y.String))
	default:
		return 0
	}
}
