package document

import (
	"github.com/jsondoc/go-jsondoc/ir"
	"github.com/jsondoc/go-jsondoc/ir/dotpath"
	"github.com/jsondoc/go-jsondoc/schema"
)

// Document is the root fragment. It owns the value store and the root
// schema, and counts revisions: every mutation made through the document
// or any of its fragments bumps the counter. Default materialization does
// not bump it, since the resolved value is unchanged.
type Document struct {
	Fragment

	revision uint64
	registry *Registry

	// defaultNodes marks store nodes materialized from schema defaults
	// and not yet explicitly written.
	defaultNodes map[*ir.Node]struct{}
}

// Option configures a Document at construction.
type Option func(*Document)

// WithRegistry overrides the fragment class registry for this document.
func WithRegistry(r *Registry) Option {
	return func(d *Document) {
		d.registry = r
	}
}

// New constructs a document owning value, governed by sch. A nil schema
// accepts anything. A nil value becomes a copy of the schema's root
// default when one is declared, else an empty object; an explicit
// ir.Null() root is kept as null.
func New(value *ir.Node, sch *schema.Node, opts ...Option) *Document {
	if sch == nil {
		sch = schema.Any()
	}
	d := &Document{
		registry:     defaultRegistry,
		defaultNodes: map[*ir.Node]struct{}{},
	}
	for _, opt := range opts {
		opt(d)
	}
	isDefault := false
	if value == nil {
		if sch.HasDefault() {
			value = sch.Default.Clone()
			isDefault = true
		} else {
			value = ir.NewObject()
		}
	}
	d.Fragment = Fragment{
		doc:         d,
		node:        detached(value),
		sch:         sch,
		lastDefault: isDefault,
	}
	if isDefault {
		d.markDefault(value)
	}
	return d
}

// Root returns the document's root fragment.
func (d *Document) Root() *Fragment {
	return &d.Fragment
}

// Revision returns the document's modification counter. Compare two
// readings to detect change; the magnitude of the difference is not
// meaningful.
func (d *Document) Revision() uint64 {
	return d.revision
}

func (d *Document) bump() {
	d.revision++
}

func (d *Document) isDefaultNode(n *ir.Node) bool {
	_, ok := d.defaultNodes[n]
	return ok
}

func (d *Document) markDefault(n *ir.Node) {
	d.defaultNodes[n] = struct{}{}
}

// forgetSubtree drops default marks for a subtree leaving the store.
func (d *Document) forgetSubtree(old *ir.Node) {
	old.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if !isPost {
			delete(d.defaultNodes, y)
		}
		return true, nil
	})
}

// undefaultChain clears default marks from f up through its ancestors: an
// explicit write anywhere below makes the enclosing defaults real.
func (d *Document) undefaultChain(f *Fragment) {
	for g := f; g != nil; g = g.parent {
		if g.node != nil {
			delete(d.defaultNodes, g.node)
		}
	}
}

func (d *Document) resetDefaults() {
	d.defaultNodes = map[*ir.Node]struct{}{}
}

// newFragment is the fragment factory: it builds the base fragment and
// attaches the registered extension when the schema names a fragment
// class.
func (d *Document) newFragment(parent *Fragment, node *ir.Node, step dotpath.Step, sch *schema.Node) (*Fragment, error) {
	f := &Fragment{
		doc:         d,
		parent:      parent,
		node:        node,
		item:        step,
		path:        parent.path.Child(step),
		sch:         sch,
		lastDefault: d.isDefaultNode(node),
	}
	if sch.FragmentClass != "" {
		ext, err := d.registry.build(sch.FragmentClass, f)
		if err != nil {
			return nil, err
		}
		f.ext = ext
	}
	return f, nil
}
