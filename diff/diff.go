// Package diff computes structural diffs between value trees.
//
// The result is a sequence of RFC 6902 (JSON Patch) operations which,
// applied in order to the from tree, produce the to tree:
//
//	ops := diff.Ops(from, to)
//	d, err := diff.JSON(from, to)
//
// Object field sequences and array element summaries are aligned with
// diffmatchpatch, so unchanged members produce no operations and changes
// inside matching containers recurse instead of replacing the whole
// container.
package diff

import (
	"strconv"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jsondoc/go-jsondoc/ir"
)

// Op is one RFC 6902 operation.
type Op struct {
	Op    string   `json:"op"`
	Path  string   `json:"path"`
	Value *ir.Node `json:"value,omitempty"`
}

// Ops returns the operations transforming from into to. Both trees are
// read only; returned values are deep copies.
func Ops(from, to *ir.Node) []Op {
	return diffValue(nil, from, to, "")
}

func diffValue(dst []Op, from, to *ir.Node, path string) []Op {
	if from.Type != to.Type {
		return append(dst, replace(path, to))
	}
	switch from.Type {
	case ir.ObjectType:
		return diffObject(dst, from, to, path)
	case ir.ArrayType:
		return diffArray(dst, from, to, path)
	default:
		if !ir.Equal(from, to) {
			return append(dst, replace(path, to))
		}
		return dst
	}
}

// diffObject aligns the two field sequences and emits remove/add for
// one-sided keys, recursing into keys present on both sides.
func diffObject(dst []Op, from, to *ir.Node, path string) []Op {
	fieldMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapFieldsTo(fieldMap, runeMap, from)
	toRunes := mapFieldsTo(fieldMap, runeMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	toMap := ir.ToMap(to)
	fromMap := ir.ToMap(from)
	seen := map[string]bool{}
	for i := range diffs {
		d := &diffs[i]
		for _, r := range d.Text {
			field := runeMap[r]
			switch d.Type {
			case diffpatch.DiffDelete:
				if _, stillThere := toMap[field]; stillThere {
					// reordered, handled on the insert side
					continue
				}
				dst = append(dst, Op{Op: "remove", Path: childPointer(path, field)})
			case diffpatch.DiffInsert:
				if fromVal, moved := fromMap[field]; moved {
					if seen[field] {
						continue
					}
					seen[field] = true
					dst = diffValue(dst, fromVal, toMap[field], childPointer(path, field))
					continue
				}
				dst = append(dst, Op{
					Op:    "add",
					Path:  childPointer(path, field),
					Value: toMap[field].Clone(),
				})
			case diffpatch.DiffEqual:
				if seen[field] {
					continue
				}
				seen[field] = true
				dst = diffValue(dst, fromMap[field], toMap[field], childPointer(path, field))
			}
		}
	}
	return dst
}

// diffArray aligns element summaries: scalar elements by their value,
// containers by type only, so matching containers recurse.
func diffArray(dst []Op, from, to *ir.Node, path string) []Op {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	// ri tracks the index in the array as the ops apply one by one.
	fi, ti, ri := 0, 0, 0
	for i := range diffs {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffDelete:
			for range d.Text {
				dst = append(dst, Op{Op: "remove", Path: indexPointer(path, ri)})
				fi++
			}
		case diffpatch.DiffInsert:
			for range d.Text {
				dst = append(dst, Op{
					Op:    "add",
					Path:  indexPointer(path, ri),
					Value: to.Values[ti].Clone(),
				})
				ti++
				ri++
			}
		case diffpatch.DiffEqual:
			for range d.Text {
				dst = diffValue(dst, from.Values[fi], to.Values[ti], indexPointer(path, ri))
				fi++
				ti++
				ri++
			}
		}
	}
	return dst
}

func mapFieldsTo(fieldMap map[string]rune, runeMap map[rune]string, node *ir.Node) []rune {
	res := make([]rune, 0, len(node.Fields))
	for _, field := range node.Fields {
		r, ok := fieldMap[field]
		if !ok {
			r = rune(len(fieldMap) + 1)
			fieldMap[field] = r
			runeMap[r] = field
		}
		res = append(res, r)
	}
	return res
}

func mapValues(m map[string]rune, node *ir.Node) []rune {
	res := make([]rune, 0, len(node.Values))
	for _, v := range node.Values {
		summary := summarize(v)
		r, ok := m[summary]
		if !ok {
			r = rune(len(m) + 1)
			m[summary] = r
		}
		res = append(res, r)
	}
	return res
}

func summarize(v *ir.Node) string {
	switch v.Type {
	case ir.ObjectType, ir.ArrayType:
		return v.Type.String()
	case ir.StringType:
		return "String-" + v.String
	case ir.NumberType:
		return "Number-" + ir.NumberString(v)
	case ir.BoolType:
		if v.Bool {
			return "Bool-true"
		}
		return "Bool-false"
	default:
		return "Null"
	}
}

func replace(path string, to *ir.Node) Op {
	return Op{Op: "replace", Path: path, Value: to.Clone()}
}

// childPointer builds a JSON Pointer child reference with ~0/~1
// escaping.
func childPointer(path, field string) string {
	field = strings.ReplaceAll(field, "~", "~0")
	field = strings.ReplaceAll(field, "/", "~1")
	return path + "/" + field
}

func indexPointer(path string, i int) string {
	return path + "/" + strconv.Itoa(i)
}
