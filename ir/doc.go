// Package ir provides the value representation for JSON-like documents.
//
// # Overview
//
// A document's value store is a tree of ir.Node values. A Node is a tagged
// union over the JSON data model: null, boolean, number, string, array and
// object. Objects preserve field insertion order.
//
// Each node maintains parent-child relationships, allowing navigation from
// any node back to the root of its tree.
//
// # Node Structure
//
// The Type field indicates the node's type:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64, float64 or decimal string)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: ordered key-value pairs (fields and values)
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	flag := ir.FromBool(true)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// # Structure Constraints
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there are always as many fields as values. A key appears at most once.
// For ArrayType nodes only Values is populated.
//
// Number values are placed under:
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//   - Number: as a decimal string fallback if neither can represent it
//
// # Mutation
//
// Container nodes are mutated in place: SetField, DeleteField, SetIndex and
// Append keep parent back-links consistent. Mutating a node is visible
// through every reference to its tree, which is what the document engine's
// aliasing guarantees build on.
//
// # Thread Safety
//
// Node trees are not thread-safe. Synchronize externally or Clone per
// goroutine.
package ir
