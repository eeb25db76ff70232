package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"
)

// deriveDirective marks a type for generation when no explicit type list is given.
const deriveDirective = "//debug:derive"

// loadPackages loads the package with the specific name at the specified directory path with cache.
func loadPackages(dirPath string) (*loadPackagesResponse, error) {
	if result, ok := packageCache[dirPath]; ok {
		return result, nil
	}

	fset := token.NewFileSet()
	astFiles := &sync.Map{}
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
		Dir:  dirPath,
		Fset: fset,
		ParseFile: func(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
			if file, ok := astFiles.Load(filename); ok {
				return file.(*ast.File), nil
			}

			file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
			astFiles.Store(filename, file)
			return file, err
		},
	}
	pkgs, err := packages.Load(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading package for %s", dirPath)
	}
	resp := &loadPackagesResponse{
		packages: pkgs,
		astFiles: astFiles,
		fset:     fset,
	}

	packageCache[dirPath] = resp

	return resp, nil
}

// collectTmplData runs the pipeline for every selected type in node.
// It returns nil when the file declares no selected type.
func collectTmplData(fset *token.FileSet, node *ast.File, methods map[string]map[string]bool, o *Options) (*FileData, error) {
	var funcs []*GeneratedFunction
	for _, decl := range node.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok || !selected(genDecl, typeSpec, o.Types) {
				continue
			}

			desc := describeType(fset, typeSpec)
			desc.Methods = methods[desc.Name]
			fn, err := generate(desc, o)
			if err != nil {
				return nil, err
			}
			if err := dump(o.Stdout, o.Dump, fn); err != nil {
				return nil, err
			}
			logger.Debugw("planned debug function",
				"type", desc.Name,
				"func", fn.Name,
				"fields", len(fn.Steps)-2,
				"method", fn.Method)
			funcs = append(funcs, fn)
		}
	}

	if len(funcs) == 0 {
		return nil, nil
	}

	return &FileData{
		PackageName: node.Name.Name,
		Imports:     collectImports(node),
		Runtime:     o.Runtime,
		Funcs:       funcs,
	}, nil
}

// selected reports whether spec is named in types or, when types is empty,
// carries the derive directive in its doc comment.
func selected(decl *ast.GenDecl, spec *ast.TypeSpec, types []string) bool {
	if len(types) > 0 {
		for _, name := range types {
			if name == spec.Name.Name {
				return true
			}
		}
		return false
	}
	doc := spec.Doc
	if doc == nil && len(decl.Specs) == 1 {
		doc = decl.Doc
	}
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == deriveDirective {
			return true
		}
	}
	return false
}

// describeType builds the structural description of spec.
func describeType(fset *token.FileSet, spec *ast.TypeSpec) *TypeDescription {
	desc := &TypeDescription{
		Name: spec.Name.Name,
		Pos:  fset.Position(spec.Pos()),
	}

	switch t := spec.Type.(type) {
	case *ast.StructType:
		desc.Shape = ShapeStruct
		for _, field := range t.Fields.List {
			ref := typeRefOf(field.Type)
			tag := fieldTag(field)
			if len(field.Names) == 0 {
				desc.Fields = append(desc.Fields, Field{
					Embedded: true,
					Type:     ref,
					Tag:      tag,
					Pos:      fset.Position(field.Pos()),
				})
				continue
			}
			for _, name := range field.Names {
				desc.Fields = append(desc.Fields, Field{
					Name: name.Name,
					Type: ref,
					Tag:  tag,
					Pos:  fset.Position(name.Pos()),
				})
			}
		}
	case *ast.InterfaceType:
		desc.Shape = ShapeInterface
	default:
		desc.Shape = ShapeOther
	}
	if spec.Assign.IsValid() {
		desc.Shape = ShapeAlias
	}

	if spec.TypeParams != nil {
		for _, param := range spec.TypeParams.List {
			constraint := exprToString(param.Type)
			for _, name := range param.Names {
				desc.TypeParams = append(desc.TypeParams, GenericParameter{
					Name:       name.Name,
					Constraint: constraint,
				})
			}
		}
	}
	return desc
}

// fieldTag returns the unquoted struct tag of field. A tag literal that does
// not unquote is treated as no tag.
func fieldTag(field *ast.Field) reflect.StructTag {
	if field.Tag == nil {
		return ""
	}
	s, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return ""
	}
	return reflect.StructTag(s)
}

// typeRefOf splits a field type into its head identifier and type arguments.
func typeRefOf(expr ast.Expr) TypeRef {
	ref := TypeRef{Text: exprToString(expr)}
	switch t := expr.(type) {
	case *ast.Ident:
		ref.Head = t.Name
		ref.Ident = true
	case *ast.SelectorExpr:
		ref.Head = t.Sel.Name
	case *ast.ParenExpr:
		return typeRefOf(t.X)
	case *ast.IndexExpr:
		ref.Head = typeRefOf(t.X).Head
		ref.Args = []TypeRef{typeRefOf(t.Index)}
	case *ast.IndexListExpr:
		ref.Head = typeRefOf(t.X).Head
		for _, index := range t.Indices {
			ref.Args = append(ref.Args, typeRefOf(index))
		}
	}
	return ref
}

// collectMethods maps each receiver type name to the methods declared on it.
func collectMethods(files []*ast.File) map[string]map[string]bool {
	methods := make(map[string]map[string]bool)
	for _, file := range files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
				continue
			}
			name := typeRefOf(unstar(fn.Recv.List[0].Type)).Head
			if methods[name] == nil {
				methods[name] = make(map[string]bool)
			}
			methods[name][fn.Name.Name] = true
		}
	}
	return methods
}

func unstar(expr ast.Expr) ast.Expr {
	if star, ok := expr.(*ast.StarExpr); ok {
		return star.X
	}
	return expr
}

// collectImports extracts all import statements from the parsed file.
func collectImports(node *ast.File) (imports []string) {
	for _, imp := range node.Imports {
		str := imp.Path.Value
		if imp.Name != nil {
			str = imp.Name.Name + " " + str // import with alias
		}
		imports = append(imports, str)
	}
	return imports
}

// exprToString converts an expression (field type) to its string representation.
func exprToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + exprToString(t.X)
	case *ast.SelectorExpr:
		return exprToString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		if t.Len != nil {
			return "[" + exprToString(t.Len) + "]" + exprToString(t.Elt)
		}
		return "[]" + exprToString(t.Elt)
	case *ast.MapType:
		return "map[" + exprToString(t.Key) + "]" + exprToString(t.Value)
	case *ast.IndexExpr:
		return exprToString(t.X) + "[" + exprToString(t.Index) + "]"
	case *ast.IndexListExpr:
		indices := make([]string, len(t.Indices))
		for i, index := range t.Indices {
			indices[i] = exprToString(index)
		}
		return exprToString(t.X) + "[" + strings.Join(indices, ", ") + "]"
	case *ast.UnaryExpr:
		return t.Op.String() + exprToString(t.X)
	case *ast.BinaryExpr:
		return exprToString(t.X) + " " + t.Op.String() + " " + exprToString(t.Y)
	default:
		return types.ExprString(expr)
	}
}
