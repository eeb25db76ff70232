package main

import (
	"fmt"
	"go/token"
	"os"
	"sync"

	"golang.org/x/tools/go/packages"
)

const version = "v0.3.0"

var cwd string

type loadPackagesResponse struct {
	packages []*packages.Package
	astFiles *sync.Map // key: file path, value: *ast.File
	fset     *token.FileSet
}

var packageCache = make(map[string]*loadPackagesResponse, 64)

func init() {
	var err error
	if cwd, err = os.Getwd(); err != nil {
		fmt.Printf("Error: could not get current working directory: %v\n", err)
		os.Exit(1)
	}
}
