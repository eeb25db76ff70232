package main

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions(opts ...FuncOption) *Options {
	return FuncOptions(opts).New()
}

func TestGeneratePoint(t *testing.T) {
	desc := describe(t, `
type Point struct {
	a int32
	b string
}`, "Point")

	fn, err := generate(desc, defaultOptions())
	require.NoError(t, err)

	want := &GeneratedFunction{
		Name:       "DebugPoint",
		TypeName:   "Point",
		Recv:       "x",
		TypeParams: []GenericParameter{},
		Steps: []Step{
			{Kind: StepOpen, Name: "Point"},
			{Kind: StepField, Name: "a"},
			{Kind: StepField, Name: "b"},
			{Kind: StepClose},
		},
		Method: true,
	}
	if diff := cmp.Diff(want, fn); diff != "" {
		t.Errorf("generate mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, `// DebugPoint renders x for diagnostics.
func DebugPoint(x *Point) string {
	return debugfmt.Struct("Point").
		Field("a", x.a).
		Field("b", x.b).
		Finish()
}

// GoString implements fmt.GoStringer.
func (x Point) GoString() string {
	return DebugPoint(&x)
}
`, fn.Source("debugfmt"))
}

func TestGenerateTemplatedGeneric(t *testing.T) {
	desc := describe(t, `
type Field[T any, S any] struct {
	marker  Marker[T]
	string  S
	bitmask uint8 `+"`debug:\"0b%08b\"`"+`
	_       Marker[S]
}`, "Field")

	fn, err := generate(desc, defaultOptions())
	require.NoError(t, err)

	assert.False(t, fn.Method, "S is constrained, so no GoString method")
	assert.Equal(t, "func DebugField[T any, S fmt.GoStringer](x *Field[T, S]) string", fn.Signature())
	assert.Equal(t, `// DebugField renders x for diagnostics.
func DebugField[T any, S fmt.GoStringer](x *Field[T, S]) string {
	return debugfmt.Struct("Field").
		Field("marker", x.marker).
		Field("string", x.string).
		Fieldf("bitmask", "0b%08b", x.bitmask).
		Blank("_").
		Finish()
}
`, fn.Source("debugfmt"))
}

func TestGenerateMarkerOnlyGetsMethod(t *testing.T) {
	desc := describe(t, `
type ID[T comparable] struct {
	_     debugfmt.Marker[T]
	value int64
}`, "ID")

	fn, err := generate(desc, defaultOptions())
	require.NoError(t, err)

	assert.True(t, fn.Method)
	assert.Equal(t, "func DebugID[T comparable](x *ID[T]) string", fn.Signature())
	assert.Contains(t, fn.Source("debugfmt"), "func (x ID[T]) GoString() string {\n\treturn DebugID(&x)\n}")
}

func TestGenerateMethodSuppressed(t *testing.T) {
	desc := describe(t, "type Point struct {\n\ta int\n}", "Point")

	fn, err := generate(desc, defaultOptions(DisableGoStringer()))
	require.NoError(t, err)
	assert.False(t, fn.Method)

	desc.Methods = map[string]bool{"GoString": true}
	fn, err = generate(desc, defaultOptions())
	require.NoError(t, err)
	assert.False(t, fn.Method)
	assert.NotContains(t, fn.Source("debugfmt"), "GoString()")
}

func TestGenerateUnit(t *testing.T) {
	fn, err := generate(describe(t, "type unit struct{}", "unit"), defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "debugUnit", fn.Name)
	assert.Contains(t, fn.Source("debugfmt"), "\treturn debugfmt.Struct(\"unit\").\n\t\tFinish()\n}")
}

func TestGenerateRejectsShape(t *testing.T) {
	fn, err := generate(describe(t, "type Shape interface{ Area() float64 }", "Shape"), defaultOptions())
	assert.Nil(t, fn)

	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "Shape", shapeErr.Type)
}

func TestGenerateFieldOrder(t *testing.T) {
	desc := describe(t, `
type X struct {
	z, a int
	m    string `+"`debug:\"%s\"`"+`
	b    bool
	a2   int
}`, "X")

	fn, err := generate(desc, defaultOptions())
	require.NoError(t, err)

	var got []string
	for _, s := range fn.Steps[1 : len(fn.Steps)-1] {
		got = append(got, s.Name)
	}
	assert.Equal(t, []string{"z", "a", "m", "b", "a2"}, got)
	assert.Equal(t, StepOpen, fn.Steps[0].Kind)
	assert.Equal(t, StepClose, fn.Steps[len(fn.Steps)-1].Kind)
}

func TestGenerateCustomOptions(t *testing.T) {
	desc := describe(t, `
type Pair[K comparable, V any] struct {
	key   K `+"`fmt:\"<%v>\"`"+`
	value V
	tag   PhantomData[V]
}`, "Pair")

	fn, err := generate(desc, defaultOptions(
		Tag("fmt"),
		Markers("PhantomData"),
		Constraint("fmt.Stringer"),
	))
	require.NoError(t, err)

	assert.Equal(t,
		"func DebugPair[K interface{ comparable; fmt.Stringer }, V fmt.Stringer](x *Pair[K, V]) string",
		fn.Signature())
	assert.Equal(t, Step{Kind: StepFieldf, Name: "key", Template: "<%v>"}, fn.Steps[1])
}

func TestGenerateTemplateQuoting(t *testing.T) {
	desc := describe(t, "type X struct {\n\ts string `debug:\"\\\"%s\\\"\\t\"`\n}", "X")

	fn, err := generate(desc, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "\"%s\"\t", fn.Steps[1].Template)
	assert.Contains(t, fn.Source("debugfmt"), `Fieldf("s", "\"%s\"\t", x.s)`)
}

func TestGenerateReceiverName(t *testing.T) {
	desc := describe(t, `
type Wrap[x any] struct {
	_ Marker[x]
	v int
}`, "Wrap")

	fn, err := generate(desc, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "x_", fn.Recv)
	assert.Equal(t, "func DebugWrap[x any](x_ *Wrap[x]) string", fn.Signature())
	src := fn.Source("debugfmt")
	assert.Contains(t, src, `Field("v", x_.v)`)
	assert.Contains(t, src, "func (x_ Wrap[x]) GoString() string {\n\treturn DebugWrap(&x_)\n}")
	assert.NotContains(t, src, "(x *")
}

func TestRecvName(t *testing.T) {
	for _, test := range []struct {
		typeName string
		params   []string
		want     string
	}{
		{"Point", nil, "x"},
		{"Wrap", []string{"x"}, "x_"},
		{"Pair", []string{"x", "x_"}, "x__"},
		{"x", nil, "x_"},
		{"Box", []string{"debugfmt", "x"}, "x_"},
	} {
		params := make([]GenericParameter, len(test.params))
		for i, name := range test.params {
			params[i] = GenericParameter{Name: name, Constraint: "any"}
		}
		assert.Equal(t, test.want, recvName(test.typeName, params), "%s%v", test.typeName, test.params)
	}
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "DebugPoint", funcName("Point"))
	assert.Equal(t, "debugPoint", funcName("point"))
	assert.Equal(t, "debugΔ", funcName("δ"))
}

// TestExecuteTmpl renders a file and checks that it parses as Go.
func TestExecuteTmpl(t *testing.T) {
	fset, file := parseSource(t, `
import (
	"fmt"
	_ "embed"
	. "strings"
	"github.com/guangxu-li/go-debug-gen/debugfmt"
)

//debug:derive
type Flags[T any] struct {
	_       debugfmt.Marker[T]
	bitmask uint8 `+"`debug:\"0b%08b\"`"+`
}

//debug:derive
type Reading[T any] struct {
	value T
	unit  string
}

var _ = fmt.Sprint
var _ = ToUpper
`)
	data, err := collectTmplData(fset, file, nil, defaultOptions())
	require.NoError(t, err)
	require.NotNil(t, data)
	require.Len(t, data.Funcs, 2)

	src, err := executeTmpl(data, "p.go")
	require.NoError(t, err)

	out := string(src)
	assert.Contains(t, out, "// Code generated by go-debug-gen. DO NOT EDIT.")
	assert.Contains(t, out, `debugfmt "github.com/guangxu-li/go-debug-gen/debugfmt"`)
	assert.NotContains(t, out, `_ "embed"`)
	assert.NotContains(t, out, `. "strings"`)
	assert.Contains(t, out, "func (x Flags[T]) GoString() string")
	assert.Contains(t, out, "func DebugReading[T fmt.GoStringer](x *Reading[T]) string")

	_, err = parser.ParseFile(token.NewFileSet(), "p_debug_gen.go", src, parser.ParseComments)
	assert.NoError(t, err)
}

func TestGoImportsAndFormat(t *testing.T) {
	fset, file := parseSource(t, `
import "strings"

//debug:derive
type Point struct {
	a int32
	b string
}

var _ = strings.ToUpper
`)
	data, err := collectTmplData(fset, file, nil, defaultOptions())
	require.NoError(t, err)

	src, err := executeTmpl(data, "p.go")
	require.NoError(t, err)

	formatted, err := goImportsAndFormat(src, filepath.Join(t.TempDir(), "p_debug_gen.go"))
	require.NoError(t, err)

	out := string(formatted)
	assert.NotContains(t, out, `"strings"`, "unused imports are removed")
	assert.Contains(t, out, `debugfmt "github.com/guangxu-li/go-debug-gen/debugfmt"`)
	assert.Contains(t, out, "func DebugPoint(x *Point) string {")
}

func TestCollectTmplDataNothingSelected(t *testing.T) {
	fset, file := parseSource(t, "type Point struct{ a int }")
	data, err := collectTmplData(fset, file, nil, defaultOptions())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCollectTmplDataShapeError(t *testing.T) {
	fset, file := parseSource(t, `
type Point struct{ a int }

//debug:derive
type Color int
`)
	data, err := collectTmplData(fset, file, nil, defaultOptions())
	assert.Nil(t, data)

	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "Color", shapeErr.Type)
}

func TestExecuteTmplRuntimeAlias(t *testing.T) {
	fset, file := parseSource(t, `
import debugfmt "example.com/other/debugfmt"

//debug:derive
type Point struct {
	a debugfmt.Value
}

//debug:derive
type Shadow[debugfmt_ any] struct {
	v debugfmt_
}
`)
	data, err := collectTmplData(fset, file, nil, defaultOptions())
	require.NoError(t, err)

	src, err := executeTmpl(data, "p.go")
	require.NoError(t, err)

	out := string(src)
	assert.Contains(t, out, `debugfmt "example.com/other/debugfmt"`)
	assert.Contains(t, out, `debugfmt__ "github.com/guangxu-li/go-debug-gen/debugfmt"`)
	assert.Contains(t, out, `return debugfmt__.Struct("Point")`)
	assert.Contains(t, out, `return debugfmt__.Struct("Shadow")`)

	_, err = parser.ParseFile(token.NewFileSet(), "p_debug_gen.go", src, parser.ParseComments)
	assert.NoError(t, err)
}

func TestImportName(t *testing.T) {
	for imp, want := range map[string]string{
		`"fmt"`:                                 "fmt",
		`"go/token"`:                            "token",
		`str "strings"`:                         "str",
		`"github.com/spf13/viper"`:              "viper",
		`"github.com/go-viper/mapstructure/v2"`: "mapstructure",
		`"gopkg.in/yaml.v3"`:                    "yaml",
	} {
		assert.Equal(t, want, importName(imp), imp)
	}
}
