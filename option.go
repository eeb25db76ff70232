package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//          ┌─────────────────────────────────────────────────────────┐
//          │                         Command                         │
//          └─────────────────────────────────────────────────────────┘

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "go-debug-gen",
		Short: "Generate diagnostic renderers for Go struct types",
		Long: `Generate a Debug<Type> function for each selected struct type.

The generated function renders a value as "Type { a: 1, b: "x" }". A field
tagged debug:"<format>" is rendered with that fmt format instead of %#v.
Type parameters whose values are rendered must satisfy the configured
constraint (fmt.GoStringer by default); a parameter used only inside a
debugfmt.Marker field is left unconstrained.

Types are selected with --type, or by a "//debug:derive" line in their doc
comment. Output is written next to each source file as <file>_debug_gen.go.

Settings are read from .debuggen.{toml,yaml} in the target directory and
from DEBUGGEN_* environment variables; flags take precedence.

Examples:
  go-debug-gen                          # types marked //debug:derive in .
  go-debug-gen --type Point --type Pair # explicit types
  go-debug-gen --dir ./model --recursive
  go-debug-gen check                    # fail if generated files are stale`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger(v.GetBool("json"), v.GetBool("verbose"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := funcOptionsFromConfig(v, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return Process(opts...)
		},
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Check that generated files are up to date",
		Long: `Render every generated file in memory and compare it with the file on disk.

Exit codes:
  0 - generated files are up to date
  1 - a file is missing or differs, or generation failed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := funcOptionsFromConfig(v, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return Process(append(opts, Check(true))...)
		},
	}
	root.AddCommand(check)

	flags := root.PersistentFlags()
	flags.String("dir", cwd, "directory to process")
	flags.Bool("recursive", false, "process directory recursively")
	flags.StringSlice("type", nil, "type to generate for (repeatable; default: types marked //debug:derive)")
	flags.String("tag", defaultTag, "struct tag key holding a field's format")
	flags.StringSlice("marker", []string{defaultMarker}, "marker type names whose parameter needs no constraint")
	flags.String("constraint", defaultConstraint, "constraint added to rendered type parameters")
	flags.Bool("gostringer", true, "also emit a GoString method when no constraint was added")
	flags.String("runtime", defaultRuntime, "import path of the rendering runtime")
	flags.String("dump", "", "write planned functions to stdout: pretty or yaml")
	flags.Bool("verbose", false, "log pipeline decisions")
	flags.Bool("json", false, "log as JSON")
	_ = v.BindPFlags(flags)

	return root
}

func funcOptionsFromConfig(v *viper.Viper, stdout io.Writer) (FuncOptions, error) {
	if err := readConfig(v, v.GetString("dir")); err != nil {
		return nil, err
	}

	opts := FuncOptions{
		Dir(v.GetString("dir")),
		Recursive(v.GetBool("recursive")),
		Types(v.GetStringSlice("type")...),
		Tag(v.GetString("tag")),
		Markers(v.GetStringSlice("marker")...),
		Constraint(v.GetString("constraint")),
		Runtime(v.GetString("runtime")),
		Dump(v.GetString("dump")),
		Stdout(stdout),
	}
	if v.GetBool("gostringer") {
		opts = append(opts, EnableGoStringer())
	} else {
		opts = append(opts, DisableGoStringer())
	}
	return opts, nil
}

//          ┌─────────────────────────────────────────────────────────┐
//          │                       Func Option                       │
//          └─────────────────────────────────────────────────────────┘

// Definition
// ────────────────────────────────────────────────────────────────────────────────

const (
	defaultTag        = "debug"
	defaultMarker     = "Marker"
	defaultConstraint = "fmt.GoStringer"
	defaultRuntime    = "github.com/guangxu-li/go-debug-gen/debugfmt"

	// runtimeName is the identifier the generated file imports the runtime as.
	runtimeName = "debugfmt"
)

type Options struct {
	Dir        string    // Default is the current working directory.
	Recursive  bool      // Default is false.
	Types      []string  // Default is every type marked //debug:derive.
	Tag        string    // Default is "debug".
	Markers    []string  // Default is ["Marker"].
	Constraint string    // Default is "fmt.GoStringer".
	GoStringer bool      // Default is true.
	Runtime    string    // Default is the debugfmt package of this module.
	Check      bool      // Default is false.
	Dump       DumpEnum  // Default is none.
	Stdout     io.Writer // Default is os.Stdout.
}

type FuncOptions []FuncOption

func (fs FuncOptions) New() *Options {
	options := &Options{
		Dir:        cwd,
		Recursive:  false,
		Tag:        defaultTag,
		Markers:    []string{defaultMarker},
		Constraint: defaultConstraint,
		GoStringer: true,
		Runtime:    defaultRuntime,
		Dump:       DumpNone,
		Stdout:     os.Stdout,
	}
	for _, f := range fs {
		f(options)
	}

	return options
}

type FuncOption func(o *Options)

// Options
// ────────────────────────────────────────────────────────────────────────────────

// Dir sets the directory option. Default is the current working directory.
func Dir(dir string) FuncOption {
	return func(o *Options) {
		o.Dir = filepath.Clean(dir)
	}
}

// Recursive sets the recursive option. Default is false.
func Recursive(recursive bool) FuncOption {
	return func(o *Options) {
		o.Recursive = recursive
	}
}

// Types restricts generation to the named types. With no names, types
// marked //debug:derive are selected.
func Types(names ...string) FuncOption {
	return func(o *Options) {
		o.Types = names
	}
}

// Tag sets the struct tag key holding a field's format. Default is "debug".
func Tag(key string) FuncOption {
	return func(o *Options) {
		if key != "" {
			o.Tag = key
		}
	}
}

// Markers sets the marker type names. Default is ["Marker"].
func Markers(names ...string) FuncOption {
	return func(o *Options) {
		if len(names) > 0 {
			o.Markers = names
		}
	}
}

// Constraint sets the constraint added to rendered type parameters.
// An empty constraint disables it. Default is "fmt.GoStringer".
func Constraint(c string) FuncOption {
	return func(o *Options) {
		o.Constraint = c
	}
}

// Runtime sets the import path of the rendering runtime.
func Runtime(importPath string) FuncOption {
	return func(o *Options) {
		if importPath != "" {
			o.Runtime = importPath
		}
	}
}

// Check compares generated output with the files on disk instead of writing it.
func Check(check bool) FuncOption {
	return func(o *Options) {
		o.Check = check
	}
}

// Dump sets the dump mode: "", "pretty" or "yaml".
func Dump[T ~string](m T) FuncOption {
	return func(o *Options) {
		o.Dump = DumpEnum(m)
	}
}

// Stdout sets where dumps are written. Default is os.Stdout.
func Stdout(w io.Writer) FuncOption {
	return func(o *Options) {
		o.Stdout = w
	}
}

// EnableGoStringer enables GoString methods for types left unconstrained.
func EnableGoStringer() FuncOption {
	return func(o *Options) {
		o.GoStringer = true
	}
}

// DisableGoStringer disables GoString methods.
func DisableGoStringer() FuncOption {
	return func(o *Options) {
		o.GoStringer = false
	}
}
