// Package encode renders IR nodes as indented JSON text.
//
// # Usage
//
//	// Encode to an io.Writer
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// Encode with options
//	err := encode.Encode(node, os.Stdout, encode.Indent(4))
//
//	// Colored output for terminals
//	err := encode.Encode(node, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
// # Related Packages
//
//   - github.com/jsondoc/go-jsondoc/ir - IR representation
//   - github.com/jsondoc/go-jsondoc/diff - structural diffs over IR values
package encode
