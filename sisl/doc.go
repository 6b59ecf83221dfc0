// Package sisl implements SISL, a self-describing text serialization
// format where every value carries an explicit, machine-checkable type
// tag.
//
// SISL is designed to carry structured data across trust boundaries:
//   - Every value's type is syntactically explicit (!null, !bool, !int,
//     !float, !str, !obj, !list)
//   - Encoding and decoding are exactly reversible and order-preserving
//   - No schema awareness, no hidden normalization
//   - Large documents can be split into budget-bounded fragments and
//     losslessly merged back
//
// # Syntax
//
// A document is a grouping of named, typed elements:
//
//	{name: !str "Alice", age: !int "30", tags: !list {_0: !str "a", _1: !str "b"}}
//
// Leaf values are always quoted strings; nested values are groupings.
// Lists are groupings whose element names are _0, _1, .... Indices need
// not be contiguous in input; output is always dense and zero-based.
//
// # Data Model
//
// Scalars: null, bool, int (64-bit), float (64-bit), str
// Containers: list, obj (insertion-ordered map)
//
// # Fragments
//
// Split fragments one value into multiple self-contained SISL strings
// under a byte budget. Merge folds independently parsed fragments back
// into one value, preserving sparse list indices and key insertion
// order. Feeding Split's output to Merge reproduces the input exactly
// for documents whose nested containers are all non-empty.
package sisl
