package main

import (
	"go/token"
	"reflect"
)

// ShapeKind classifies the underlying type of a type declaration.
type ShapeKind string

func (s ShapeKind) String() string {
	return string(s)
}

const (
	ShapeStruct    ShapeKind = "struct"
	ShapeInterface ShapeKind = "interface"
	ShapeAlias     ShapeKind = "alias"
	ShapeOther     ShapeKind = "other"
)

// TypeDescription is the structural description of one type declaration.
type TypeDescription struct {
	Name       string
	Pos        token.Position
	Shape      ShapeKind
	TypeParams []GenericParameter
	Fields     []Field
	Methods    map[string]bool // methods declared on the type elsewhere in the package
}

// GenericParameter is a type parameter and the obligations added to it.
type GenericParameter struct {
	Name       string   `yaml:"name"`
	Constraint string   `yaml:"constraint"` // as declared, e.g. "any" or "~int | ~string"
	Bounds     []string `yaml:"bounds,omitempty"`
}

// Field is one field of a struct type.
type Field struct {
	Name     string // "_" for blank fields, "" when Embedded
	Embedded bool
	Type     TypeRef
	Tag      reflect.StructTag
	Pos      token.Position
}

// TypeRef is the parsed form of a field's declared type.
type TypeRef struct {
	Text  string    // source form, e.g. "debugfmt.Marker[T]"
	Head  string    // last identifier of a named type, "" for composite types
	Args  []TypeRef // type arguments of an instantiated named type
	Ident bool      // Text is one unqualified identifier
}

// Bare reports whether the type is written as a single unqualified identifier.
func (r TypeRef) Bare() bool {
	return r.Ident && r.Head == r.Text
}

// RenderDirective tells the assembler how to render one field.
// The zero Template with Templated unset means default rendering.
type RenderDirective struct {
	Field     string `yaml:"field"`
	Templated bool   `yaml:"templated,omitempty"`
	Template  string `yaml:"template,omitempty"`
}

// StepKind is the kind of one statement in a generated function body.
type StepKind string

const (
	StepOpen   StepKind = "open"
	StepField  StepKind = "field"
	StepFieldf StepKind = "fieldf"
	StepBlank  StepKind = "blank"
	StepClose  StepKind = "close"
)

// Step is one render call in a generated function body.
type Step struct {
	Kind     StepKind `yaml:"kind"`
	Name     string   `yaml:"name,omitempty"`
	Template string   `yaml:"template,omitempty"`
}

// GeneratedFunction describes the debug function generated for one type.
type GeneratedFunction struct {
	Name       string             `yaml:"name"`
	TypeName   string             `yaml:"type"`
	Recv       string             `yaml:"receiver,omitempty"` // name of the value parameter
	TypeParams []GenericParameter `yaml:"type_params,omitempty"`
	Steps      []Step             `yaml:"steps"`
	Method     bool               `yaml:"method,omitempty"` // also emit a GoString method
}

// FileData holds necessary data to generate the target file
type FileData struct {
	PackageName string
	Imports     []string
	Runtime     string
	Funcs       []*GeneratedFunction
}
