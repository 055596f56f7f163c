package document

import (
	"fmt"

	"github.com/jsondoc/go-jsondoc/ir"
	"github.com/jsondoc/go-jsondoc/ir/dotpath"
	"github.com/jsondoc/go-jsondoc/schema"
	"github.com/jsondoc/go-jsondoc/validate"
)

// Fragment is a path-addressed view onto one node of a document's value
// store. Fragments are created lazily by navigation and are not cached:
// repeated navigation to one path yields distinct fragments aliasing the
// same store node.
type Fragment struct {
	doc    *Document
	parent *Fragment

	// node aliases the store node at this fragment's path. It is nil
	// while a reverted default awaits re-materialization, and holds an
	// independent snapshot once the fragment is orphaned.
	node *ir.Node

	item dotpath.Step
	path dotpath.Path
	sch  *schema.Node
	ext  any

	orphaned      bool
	frozenDefault bool

	// lastDefault tracks default status as of the last live access, so
	// the frozen snapshot taken by orphan can report it after the store
	// has already dropped its default marks.
	lastDefault bool
}

// Schema returns the schema node aligned to this fragment's path.
func (f *Fragment) Schema() *schema.Node {
	return f.sch
}

// Document returns the owning document, or nil once orphaned.
func (f *Fragment) Document() *Document {
	if f.checkOrphan() {
		return nil
	}
	return f.doc
}

// Parent returns the enclosing fragment, or nil for the document root and
// for orphaned fragments.
func (f *Fragment) Parent() *Fragment {
	if f.checkOrphan() {
		return nil
	}
	return f.parent
}

// Item returns the key or index used to reach this fragment from its
// parent; ok is false for the document root.
func (f *Fragment) Item() (step dotpath.Step, ok bool) {
	if f.parent == nil && !f.orphaned {
		return dotpath.Step{}, false
	}
	return f.item, true
}

// Path returns the fragment's path from the document root. The path is
// fixed for the fragment's lifetime.
func (f *Fragment) Path() dotpath.Path {
	return f.path
}

// Extension returns the fragment class extension built by the registry
// for this fragment's schema, or nil.
func (f *Fragment) Extension() any {
	return f.ext
}

// IsOrphaned reports whether this fragment's path is no longer reachable
// from the document root.
func (f *Fragment) IsOrphaned() bool {
	return f.checkOrphan()
}

// IsDefault reports whether the exposed value was synthesized from the
// schema default rather than written explicitly.
func (f *Fragment) IsDefault() bool {
	if f.checkOrphan() {
		return f.frozenDefault
	}
	return f.isDefaultLive()
}

// HasDefault reports whether the aligned schema declares a default value.
func (f *Fragment) HasDefault() bool {
	return f.sch.HasDefault()
}

// DefaultValue returns a copy of the schema's declared default, or
// ErrNoDefault.
func (f *Fragment) DefaultValue() (*ir.Node, error) {
	if !f.sch.HasDefault() {
		return nil, fmt.Errorf("%w at %q", ErrNoDefault, f.path.String())
	}
	return detached(f.sch.Default.Clone()), nil
}

// Value returns the resolved value at this fragment's path. While the
// fragment is live the returned node is the store node itself: in-place
// mutation through it is visible through the document. Once orphaned it
// is an independent frozen snapshot.
func (f *Fragment) Value() *ir.Node {
	if f.checkOrphan() {
		return f.node
	}
	if f.node == nil && f.materializeDefault() != nil {
		f.orphan()
	}
	return f.node
}

// SetValue replaces the value at this fragment's path wholesale. Every
// outstanding fragment at or below this path (other than f itself) is
// orphaned.
func (f *Fragment) SetValue(v *ir.Node) error {
	if f.checkOrphan() {
		return fmt.Errorf("%w: cannot set value at %q", ErrOrphaned, f.path.String())
	}
	if v == nil {
		v = ir.Null()
	}
	doc := f.doc
	if f.parent == nil {
		doc.resetDefaults()
		f.node = detached(v)
		f.lastDefault = false
		doc.bump()
		return nil
	}
	old := f.node
	var err error
	if f.item.IsIndex {
		_, err = f.parent.node.SetIndex(f.item.Index, v)
	} else {
		_, err = f.parent.node.SetField(f.item.Field, v)
	}
	if err != nil {
		return err
	}
	f.node = v
	if old != nil {
		doc.forgetSubtree(old)
	}
	doc.undefaultChain(f.parent)
	f.lastDefault = false
	doc.bump()
	return nil
}

// Get returns a fragment for object field key. When the store has no such
// field and the field's schema declares a default, a copy of the default
// is written into the store first and the fragment reports IsDefault.
func (f *Fragment) Get(key string) (*Fragment, error) {
	if f.checkOrphan() {
		return nil, fmt.Errorf("%w: cannot navigate from %q", ErrOrphaned, f.path.String())
	}
	if f.node == nil {
		if err := f.materializeDefault(); err != nil {
			return nil, err
		}
	}
	if f.node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: cannot index %s with key %q", ErrTypeMismatch, f.node.Type, key)
	}
	childSch := f.sch.Child(key)
	childNode := ir.Get(f.node, key)
	if childNode == nil {
		if !childSch.HasDefault() {
			return nil, fmt.Errorf("%w: key %q at %q", ErrNoSuchElement, key, f.path.String())
		}
		childNode = detached(childSch.Default.Clone())
		if _, err := f.node.SetField(key, childNode); err != nil {
			return nil, err
		}
		f.doc.markDefault(childNode)
	}
	return f.doc.newFragment(f, childNode, dotpath.Key(key), childSch)
}

// At returns a fragment for array element i. An index one past the end
// with a schema default appends the default; anything else out of range
// fails with ErrNoSuchElement.
func (f *Fragment) At(i int) (*Fragment, error) {
	if f.checkOrphan() {
		return nil, fmt.Errorf("%w: cannot navigate from %q", ErrOrphaned, f.path.String())
	}
	if f.node == nil {
		if err := f.materializeDefault(); err != nil {
			return nil, err
		}
	}
	if f.node.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: cannot index %s with index %d", ErrTypeMismatch, f.node.Type, i)
	}
	childSch := f.sch.ChildAt(i)
	var childNode *ir.Node
	switch {
	case i >= 0 && i < len(f.node.Values):
		childNode = f.node.Values[i]
	case i == len(f.node.Values) && childSch.HasDefault():
		childNode = detached(childSch.Default.Clone())
		if err := f.node.Append(childNode); err != nil {
			return nil, err
		}
		f.doc.markDefault(childNode)
	default:
		return nil, fmt.Errorf("%w: index %d at %q (len %d)",
			ErrNoSuchElement, i, f.path.String(), len(f.node.Values))
	}
	return f.doc.newFragment(f, childNode, dotpath.Index(i), childSch)
}

// Set writes v into object field key, creating the field if absent. The
// write is a real assignment: any default previously occupying the slot
// is replaced and later reads report IsDefault false.
func (f *Fragment) Set(key string, v *ir.Node) error {
	if f.checkOrphan() {
		return fmt.Errorf("%w: cannot set %q at %q", ErrOrphaned, key, f.path.String())
	}
	if f.node == nil {
		if err := f.materializeDefault(); err != nil {
			return err
		}
	}
	if f.node.Type != ir.ObjectType {
		return fmt.Errorf("%w: cannot index %s with key %q", ErrTypeMismatch, f.node.Type, key)
	}
	if v == nil {
		v = ir.Null()
	}
	old, err := f.node.SetField(key, v)
	if err != nil {
		return err
	}
	if old != nil {
		f.doc.forgetSubtree(old)
	}
	f.doc.undefaultChain(f)
	f.lastDefault = false
	f.doc.bump()
	return nil
}

// SetAt writes v into array element i; i may be one past the end to
// append.
func (f *Fragment) SetAt(i int, v *ir.Node) error {
	if f.checkOrphan() {
		return fmt.Errorf("%w: cannot set index %d at %q", ErrOrphaned, i, f.path.String())
	}
	if f.node == nil {
		if err := f.materializeDefault(); err != nil {
			return err
		}
	}
	if f.node.Type != ir.ArrayType {
		return fmt.Errorf("%w: cannot index %s with index %d", ErrTypeMismatch, f.node.Type, i)
	}
	if i < 0 || i > len(f.node.Values) {
		return fmt.Errorf("%w: index %d at %q (len %d)",
			ErrNoSuchElement, i, f.path.String(), len(f.node.Values))
	}
	if v == nil {
		v = ir.Null()
	}
	old, err := f.node.SetIndex(i, v)
	if err != nil {
		return err
	}
	if old != nil {
		f.doc.forgetSubtree(old)
	}
	f.doc.undefaultChain(f)
	f.lastDefault = false
	f.doc.bump()
	return nil
}

// RevertToDefault discards the stored value in favor of the schema
// default. For object fields the slot is deleted from the store so a
// subsequent read resynthesizes the default; for the document root the
// value is replaced by a copy of the root default. Array elements fail
// with ErrRevertUnsupported.
func (f *Fragment) RevertToDefault() error {
	if f.checkOrphan() {
		return fmt.Errorf("%w: cannot revert %q", ErrOrphaned, f.path.String())
	}
	if !f.sch.HasDefault() {
		return fmt.Errorf("%w at %q", ErrNoDefault, f.path.String())
	}
	doc := f.doc
	if f.parent == nil {
		def := f.sch.Default.Clone()
		if err := f.SetValue(def); err != nil {
			return err
		}
		doc.markDefault(f.node)
		f.lastDefault = true
		return nil
	}
	if f.item.IsIndex {
		return fmt.Errorf("%w at %q", ErrRevertUnsupported, f.path.String())
	}
	if f.node == nil {
		// already reverted, nothing stored
		return nil
	}
	if old := f.parent.node.DeleteField(f.item.Field); old != nil {
		doc.forgetSubtree(old)
	}
	f.node = nil
	f.lastDefault = true
	doc.bump()
	return nil
}

// Validate checks the resolved value against the fragment's schema,
// delegating to the validate package. The store is not mutated.
func (f *Fragment) Validate() error {
	return validate.Validate(f.resolveNoWrite(), f.sch)
}

// GetPath navigates a dotted path (e.g. "a.b[0]") from this fragment.
func (f *Fragment) GetPath(path string) (*Fragment, error) {
	p, err := dotpath.Parse(path)
	if err != nil {
		return nil, err
	}
	res := f
	for _, step := range p {
		if step.IsIndex {
			res, err = res.At(step.Index)
		} else {
			res, err = res.Get(step.Field)
		}
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Len returns the child count for containers and the character count for
// strings.
func (f *Fragment) Len() (int, error) {
	v := f.Value()
	switch v.Type {
	case ir.ObjectType, ir.ArrayType, ir.StringType:
		return v.Len(), nil
	default:
		return 0, fmt.Errorf("%w: %s has no length", ErrTypeMismatch, v.Type)
	}
}

// Has reports object key presence.
func (f *Fragment) Has(key string) (bool, error) {
	v := f.Value()
	if v.Type != ir.ObjectType {
		return false, fmt.Errorf("%w: cannot test key %q in %s", ErrTypeMismatch, key, v.Type)
	}
	return ir.Get(v, key) != nil, nil
}

// HasValue reports array membership of a value equal to want.
func (f *Fragment) HasValue(want *ir.Node) (bool, error) {
	v := f.Value()
	if v.Type != ir.ArrayType {
		return false, fmt.Errorf("%w: cannot test membership in %s", ErrTypeMismatch, v.Type)
	}
	for _, elt := range v.Values {
		if ir.Equal(elt, want) {
			return true, nil
		}
	}
	return false, nil
}

// Keys returns object field names in insertion order.
func (f *Fragment) Keys() ([]string, error) {
	v := f.Value()
	if v.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s has no keys", ErrTypeMismatch, v.Type)
	}
	res := make([]string, len(v.Fields))
	copy(res, v.Fields)
	return res, nil
}

// Each calls fn with a child fragment for every element, in insertion
// order for objects and index order for arrays. Iteration restarts on
// every call.
func (f *Fragment) Each(fn func(child *Fragment) error) error {
	v := f.Value()
	switch v.Type {
	case ir.ObjectType:
		keys, err := f.Keys()
		if err != nil {
			return err
		}
		for _, key := range keys {
			child, err := f.Get(key)
			if err != nil {
				return err
			}
			if err := fn(child); err != nil {
				return err
			}
		}
		return nil
	case ir.ArrayType:
		for i := range v.Values {
			child, err := f.At(i)
			if err != nil {
				return err
			}
			if err := fn(child); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s is not iterable", ErrTypeMismatch, v.Type)
	}
}

// checkOrphan lazily detects orphaning by replaying identities along the
// parent chain: each live fragment's recorded node must still be the
// parent's child at the recorded step.
func (f *Fragment) checkOrphan() bool {
	if f.orphaned {
		return true
	}
	if f.parent == nil {
		// document root, replaced in place rather than orphaned
		return false
	}
	if f.parent.checkOrphan() {
		f.orphan()
		return true
	}
	if f.node == nil {
		// reverted slot: live only while the parent still holds an
		// object the field could re-materialize into, and the slot
		// has not been refilled behind this fragment's back
		if f.item.IsIndex || f.parent.node == nil || f.parent.node.Type != ir.ObjectType ||
			ir.Get(f.parent.node, f.item.Field) != nil {
			f.orphan()
			return true
		}
	} else if childNode(f.parent.node, f.item) != f.node {
		f.orphan()
		return true
	}
	f.lastDefault = f.isDefaultLive()
	return false
}

// orphan freezes the fragment: value becomes an independent deep copy of
// the last-known value and document/parent links are severed.
func (f *Fragment) orphan() {
	// the store's default marks for the replaced subtree are already
	// gone by the time orphaning is detected, so freeze the status
	// recorded on the last live access instead
	f.frozenDefault = f.lastDefault
	snap := f.resolveNoWrite()
	if snap != nil {
		snap = detached(snap.Clone())
	}
	f.node = snap
	f.doc = nil
	f.parent = nil
	f.orphaned = true
}

func (f *Fragment) isDefaultLive() bool {
	if f.node == nil {
		return true
	}
	return f.doc.isDefaultNode(f.node)
}

// resolveNoWrite resolves the effective value without materializing
// pending defaults into the store.
func (f *Fragment) resolveNoWrite() *ir.Node {
	if f.node != nil {
		return f.node
	}
	if f.sch.HasDefault() {
		return f.sch.Default
	}
	return nil
}

// materializeDefault writes the schema default into this fragment's slot
// after RevertToDefault emptied it. Only object fields can be pending.
func (f *Fragment) materializeDefault() error {
	def := detached(f.sch.Default.Clone())
	if _, err := f.parent.node.SetField(f.item.Field, def); err != nil {
		return err
	}
	f.doc.markDefault(def)
	f.node = def
	f.lastDefault = true
	return nil
}

func childNode(parent *ir.Node, step dotpath.Step) *ir.Node {
	if parent == nil {
		return nil
	}
	if step.IsIndex {
		if parent.Type != ir.ArrayType {
			return nil
		}
		if step.Index < 0 || step.Index >= len(parent.Values) {
			return nil
		}
		return parent.Values[step.Index]
	}
	if parent.Type != ir.ObjectType {
		return nil
	}
	return ir.Get(parent, step.Field)
}

// detached strips parent linkage so a node can be rooted elsewhere.
func detached(y *ir.Node) *ir.Node {
	y.Parent = nil
	y.ParentIndex = 0
	y.ParentField = ""
	return y
}
