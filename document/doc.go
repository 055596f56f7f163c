// Package document provides a live, schema-aware view layer over a mutable
// JSON-like value tree.
//
// # Overview
//
// A Document owns one root value (an ir.Node tree) and a root schema.
// Callers navigate the value through Fragments: path-addressed read/write
// handles onto single nodes of the store. While a fragment is live, its
// value and the document's value at the fragment's path are the same
// mutable node, not a copy.
//
//	doc := document.New(nil, sch)
//	frag, err := doc.Get("save_on_exit")
//	v := frag.Value() // schema default, materialized into the store
//
// # Defaults
//
// When navigation reaches a slot absent from the store whose schema
// declares a default, a copy of the default is written into the store at
// that moment and the resulting fragment reports IsDefault. The default
// mark is sticky across re-navigation and cleared by the first explicit
// write.
//
// # Orphaning
//
// Replacing a value wholesale (Fragment.SetValue, Document.SetValue, or a
// parent's Set) invalidates every fragment at or below the replaced path.
// Detection is lazy: each fragment records the store node it wrapped, and
// on access the parent chain is replayed comparing node identities. On
// first detection the fragment freezes a deep copy of its last value;
// reads keep working against the snapshot and every mutation fails with
// ErrOrphaned.
//
// # Fragment classes
//
// A schema node may carry a __fragment_cls tag. The fragment factory
// resolves the tag through a Registry and attaches the registered
// extension to fragments built for that schema; see Fragment.Extension.
//
// # Concurrency
//
// Documents are single-threaded by design. Concurrent use requires an
// external lock held for the duration of any navigation-and-mutation
// sequence.
package document
