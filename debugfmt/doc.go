// Package debugfmt is the runtime used by code generated with go-debug-gen.
//
// A generated function renders a struct as
//
//	Point { a: 7, b: "x" }
//
// by chaining calls on a Builder:
//
//	debugfmt.Struct("Point").
//		Field("a", x.a).
//		Fieldf("b", "%q", x.b).
//		Finish()
//
// Field values are rendered with the %#v verb, so any type implementing
// fmt.GoStringer (including types with a generated GoString method) renders
// itself. Fieldf applies a fmt format string taken verbatim from the field's
// debug struct tag.
//
// Marker is a zero-sized type for declaring that a struct is parameterized
// by a type it holds no value of. The generator recognizes it and does not
// require the parameter to be printable.
package debugfmt
