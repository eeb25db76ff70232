package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

// Process generates debug functions for the selected types under the
// configured directory.
func Process(opts ...FuncOption) error {
	options := FuncOptions(opts).New()
	return process(options)
}

// run carries the options and, in check mode, the stale files found so far.
type run struct {
	o     *Options
	stale []string
}

// process processes all Go files in a directory, either recursively or non-recursively
func process(o *Options) error {
	r := &run{o: o}

	var err error
	if o.Recursive {
		err = r.processRecursively(o.Dir)
	} else {
		err = r.processNonRecursively(o.Dir)
	}
	if err != nil {
		return err
	}

	if len(r.stale) > 0 {
		for _, path := range r.stale {
			logger.Warnw("generated file is out of date", "file", path)
		}
		return errors.WithHint(
			errors.Wrapf(ErrStale, "%d file(s)", len(r.stale)),
			"run go-debug-gen to regenerate them",
		)
	}
	return nil
}

func (r *run) processRecursively(dir string) error {
	if err := r.processNonRecursively(dir); err != nil {
		return err
	}

	entrys, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "error reading directory %s", dir)
	}

	for _, e := range entrys {
		if !e.IsDir() || ignoreDir(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := r.processRecursively(path); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) processNonRecursively(dir string) error {
	dirPath, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrapf(err, "error getting absolute path for %s", dir)
	}
	resp, err := loadPackages(dirPath)
	if err != nil {
		return errors.Wrap(err, "error loading packages")
	}

	for _, pkg := range resp.packages {
		for _, e := range pkg.Errors {
			if e.Kind == packages.ParseError {
				return errors.Newf("error parsing package %s: %s", pkg.PkgPath, e)
			}
		}

		var (
			paths []string
			files []*ast.File
		)
		for _, filePath := range pkg.GoFiles {
			if ignoreFile(filepath.Base(filePath)) {
				continue
			}
			astFileInterface, ok := resp.astFiles.Load(filePath)
			if !ok {
				return errors.Newf("error loading ast file for %s", filePath)
			}
			paths = append(paths, filePath)
			files = append(files, astFileInterface.(*ast.File))
		}

		methods := collectMethods(files)
		for i, file := range files {
			if err := r.processFile(resp.fset, file, paths[i], methods); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *run) processFile(fset *token.FileSet, node *ast.File, filePath string, methods map[string]map[string]bool) error {
	data, err := collectTmplData(fset, node, methods, r.o)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	outputFilePath := outputPath(filePath)
	src, err := executeTmpl(data, filePath)
	if err != nil {
		return errors.Wrapf(err, "error generating tmpl for %s", filePath)
	}

	if src, err = goImportsAndFormat(src, outputFilePath); err != nil {
		return errors.Wrapf(err, "error formatting file %v", outputFilePath)
	}

	if r.o.Check {
		upToDate, err := sameContent(src, outputFilePath)
		if err != nil {
			return err
		}
		if !upToDate {
			r.stale = append(r.stale, outputFilePath)
		}
		return nil
	}

	if err := writeToFile(src, outputFilePath); err != nil {
		return err
	}

	logger.Infow("Generated debug functions", "file", outputFilePath, "types", len(data.Funcs))
	return nil
}

// outputPath returns the generated file for filePath. Distinct sources map to
// distinct outputs, so model.go and model_gen.go never share one.
func outputPath(filePath string) string {
	return strings.TrimSuffix(filePath, ".go") + "_debug_gen.go"
}

func writeToFile(src []byte, outputFilePath string) error {
	if err := os.WriteFile(outputFilePath, src, 0o644); err != nil {
		return errors.Wrapf(err, "error writing file %v", outputFilePath)
	}
	return nil
}

// sameContent reports whether the file at path holds exactly want.
// A missing file is not up to date.
func sameContent(want []byte, path string) (bool, error) {
	got, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "error reading file %v", path)
	}
	return bytes.Equal(got, want), nil
}

// ignoreFile returns true if the directory entry should be ignored.
func ignoreFile(path string) bool {
	return !strings.HasSuffix(path, ".go") ||
		strings.HasSuffix(path, "_debug_gen.go") ||
		strings.HasSuffix(path, "_test.go")
}

// ignoreDir returns true for directories the go tool itself skips.
func ignoreDir(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasPrefix(name, "_") ||
		name == "testdata" ||
		name == "vendor"
}

// goImportsAndFormat formats the Go code and fixes imports using the imports.Process function.
func goImportsAndFormat(source []byte, filename string) ([]byte, error) {
	options := &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: false, // false means format and fix imports
	}
	return imports.Process(filename, source, options)
}
