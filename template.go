package main

import (
	"bytes"
	"path"
	"strconv"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
)

var fileTmpl = template.Must(template.New("file").Parse(`// Code generated by go-debug-gen. DO NOT EDIT.

package {{.Data.PackageName}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
	{{.RuntimeImport}}
)
{{range .Data.Funcs}}
{{.Source $.RuntimeName}}
{{- end}}
`))

// executeTmpl renders the generated file for data. The source file's imports
// are copied so constraints and field types resolve; goImportsAndFormat
// removes the unused ones.
func executeTmpl(data *FileData, filePath string) ([]byte, error) {
	runtimePath := strconv.Quote(data.Runtime)
	var imports []string
	for _, imp := range data.Imports {
		switch {
		case strings.HasSuffix(imp, runtimePath):
		case strings.HasPrefix(imp, "_ "), strings.HasPrefix(imp, ". "):
		default:
			imports = append(imports, imp)
		}
	}

	alias := runtimeAlias(data, imports)
	var buf bytes.Buffer
	err := fileTmpl.Execute(&buf, struct {
		Data          *FileData
		Imports       []string
		RuntimeName   string
		RuntimeImport string
	}{
		Data:          data,
		Imports:       imports,
		RuntimeName:   alias,
		RuntimeImport: alias + " " + runtimePath,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "executing template for %s", path.Base(filePath))
	}
	return buf.Bytes(), nil
}

// runtimeAlias returns the name the runtime is imported as: runtimeName
// unless an import, a generated function or one of its type parameters
// already uses it.
func runtimeAlias(data *FileData, imports []string) string {
	taken := make(map[string]bool)
	for _, imp := range imports {
		taken[importName(imp)] = true
	}
	for _, fn := range data.Funcs {
		taken[fn.Name] = true
		taken[fn.TypeName] = true
		taken[fn.recv()] = true
		for _, p := range fn.TypeParams {
			taken[p.Name] = true
		}
	}
	return freshName(runtimeName, taken)
}

// importName returns the name an import spec such as `str "strings"` binds.
// Without an alias it is the last path element, less any major version.
func importName(imp string) string {
	if name, _, ok := strings.Cut(imp, " "); ok {
		return name
	}
	p, err := strconv.Unquote(imp)
	if err != nil {
		return imp
	}
	base := path.Base(p)
	if dir := path.Dir(p); dir != "." && isMajorVersion(base) {
		base = path.Base(dir)
	}
	if i := strings.LastIndex(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i] // gopkg.in/yaml.v3
	}
	return base
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(elem[1:])
	return err == nil
}
