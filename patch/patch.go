// Package patch applies RFC 6902 (JSON Patch) documents to documents
// and IR values.
package patch

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/jsondoc/go-jsondoc/document"
	"github.com/jsondoc/go-jsondoc/ir"
)

// Decode parses a JSON Patch document.
func Decode(d []byte) (jsonpatch.Patch, error) {
	p, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("failed to decode patch: %w", err)
	}
	return p, nil
}

// ApplyValue applies p to value and returns the patched tree. The
// input tree is not modified.
func ApplyValue(value *ir.Node, p jsonpatch.Patch) (*ir.Node, error) {
	d, err := ir.ToJSON(value)
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("failed to apply patch: %w", err)
	}
	return ir.FromJSON(out)
}

// Apply applies the JSON Patch document patchJSON to doc, replacing
// its root value wholesale. Fragments referring into the old tree
// become orphaned snapshots.
func Apply(doc *document.Document, patchJSON []byte) error {
	p, err := Decode(patchJSON)
	if err != nil {
		return err
	}
	out, err := ApplyValue(doc.Root().Value(), p)
	if err != nil {
		return err
	}
	return doc.Root().SetValue(out)
}
