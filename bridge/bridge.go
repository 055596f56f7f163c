// Package bridge binds document fragments to Go structs.
//
// It replaces hand-written accessor boilerplate with declarative struct
// tags: each tagged field bridges to a child fragment of a container
// fragment, either by value or as the fragment itself.
//
//	type Settings struct {
//	    SaveOnExit bool               `doc:"save_on_exit"`
//	    Volume     float64            `doc:"volume"`
//	    Raw        *ir.Node           `doc:"raw"`
//	    Account    *document.Fragment `doc:"account,fragment"`
//	}
//
//	var s Settings
//	err := bridge.Bind(doc.Root(), &s)   // read values out
//	err = bridge.Flush(doc.Root(), &s)   // write values back
//
// Value bridging resolves schema defaults like any other read. Fragment
// bridging hands out the live fragment; such fields are skipped by Flush.
package bridge

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jsondoc/go-jsondoc/document"
	"github.com/jsondoc/go-jsondoc/ir"
)

// BindError reports a failure binding one struct field.
type BindError struct {
	FieldPath string // struct field path, e.g. "Settings.SaveOnExit"
	Message   string
	Err       error
}

func (e *BindError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("bind error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("bind error: %s", e.Message)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

type fieldSpec struct {
	key        string
	asFragment bool
}

func parseTag(f reflect.StructField) (fieldSpec, bool) {
	tag, ok := f.Tag.Lookup("doc")
	if !ok || tag == "-" {
		return fieldSpec{}, false
	}
	parts := strings.Split(tag, ",")
	spec := fieldSpec{key: parts[0]}
	if spec.key == "" {
		return fieldSpec{}, false
	}
	for _, p := range parts[1:] {
		if p == "fragment" {
			spec.asFragment = true
		}
	}
	return spec, true
}

var (
	fragmentType = reflect.TypeOf((*document.Fragment)(nil))
	nodeType     = reflect.TypeOf((*ir.Node)(nil))
)

// Bind reads child fragments of frag into the tagged fields of target,
// which must be a pointer to a struct.
func Bind(frag *document.Fragment, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return &BindError{Message: fmt.Sprintf("target must be a struct pointer, got %T", target)}
	}
	return bindStruct(frag, rv.Elem(), rv.Elem().Type().Name())
}

func bindStruct(frag *document.Fragment, sv reflect.Value, path string) error {
	st := sv.Type()
	for i := range st.NumField() {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		spec, ok := parseTag(field)
		if !ok {
			continue
		}
		fieldPath := path + "." + field.Name
		child, err := frag.Get(spec.key)
		if err != nil {
			return &BindError{FieldPath: fieldPath, Message: fmt.Sprintf("getting %q", spec.key), Err: err}
		}
		if spec.asFragment {
			if field.Type != fragmentType {
				return &BindError{FieldPath: fieldPath,
					Message: "fragment-bridged field must have type *document.Fragment"}
			}
			sv.Field(i).Set(reflect.ValueOf(child))
			continue
		}
		if err := bindValue(child, sv.Field(i), fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func bindValue(child *document.Fragment, fv reflect.Value, fieldPath string) error {
	v := child.Value()
	if fv.Type() == nodeType {
		fv.Set(reflect.ValueOf(v))
		return nil
	}
	switch fv.Kind() {
	case reflect.String:
		if v.Type != ir.StringType {
			return typeErr(fieldPath, "string", v)
		}
		fv.SetString(v.String)
	case reflect.Bool:
		if v.Type != ir.BoolType {
			return typeErr(fieldPath, "bool", v)
		}
		fv.SetBool(v.Bool)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type != ir.NumberType || v.Int64 == nil {
			return typeErr(fieldPath, "integer", v)
		}
		fv.SetInt(*v.Int64)
	case reflect.Float32, reflect.Float64:
		if v.Type != ir.NumberType {
			return typeErr(fieldPath, "number", v)
		}
		switch {
		case v.Float64 != nil:
			fv.SetFloat(*v.Float64)
		case v.Int64 != nil:
			fv.SetFloat(float64(*v.Int64))
		default:
			return typeErr(fieldPath, "number", v)
		}
	case reflect.Interface:
		// any
		fv.Set(reflect.ValueOf(ir.ToAny(v)))
	case reflect.Struct:
		return bindStruct(child, fv, fieldPath)
	case reflect.Ptr:
		if fv.Kind() == reflect.Ptr && fv.Type().Elem().Kind() == reflect.Struct {
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			return bindStruct(child, fv.Elem(), fieldPath)
		}
		return &BindError{FieldPath: fieldPath,
			Message: fmt.Sprintf("unsupported field type %s", fv.Type())}
	default:
		return &BindError{FieldPath: fieldPath,
			Message: fmt.Sprintf("unsupported field type %s", fv.Type())}
	}
	return nil
}

func typeErr(fieldPath, want string, v *ir.Node) error {
	return &BindError{FieldPath: fieldPath,
		Message: fmt.Sprintf("expected %s, got %s", want, v.Type)}
}

// Flush writes the tagged fields of target back through frag. Fields
// typed *document.Fragment or *ir.Node are skipped: the former are live
// views, the latter alias store nodes already.
func Flush(frag *document.Fragment, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return &BindError{Message: fmt.Sprintf("target must be a struct or struct pointer, got %T", target)}
	}
	return flushStruct(frag, rv, rv.Type().Name())
}

func flushStruct(frag *document.Fragment, sv reflect.Value, path string) error {
	st := sv.Type()
	for i := range st.NumField() {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		spec, ok := parseTag(field)
		if !ok || spec.asFragment {
			continue
		}
		fieldPath := path + "." + field.Name
		fv := sv.Field(i)
		if fv.Type() == nodeType {
			continue
		}
		if fv.Kind() == reflect.Struct {
			child, err := frag.Get(spec.key)
			if err != nil {
				return &BindError{FieldPath: fieldPath, Message: fmt.Sprintf("getting %q", spec.key), Err: err}
			}
			if err := flushStruct(child, fv, fieldPath); err != nil {
				return err
			}
			continue
		}
		node, err := ir.FromAny(fv.Interface())
		if err != nil {
			return &BindError{FieldPath: fieldPath, Message: "converting value", Err: err}
		}
		if err := frag.Set(spec.key, node); err != nil {
			return &BindError{FieldPath: fieldPath, Message: fmt.Sprintf("setting %q", spec.key), Err: err}
		}
	}
	return nil
}
