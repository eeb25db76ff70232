package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/guangxu-li/go-debug-gen/debugfmt"
)

// DumpEnum selects how planned functions are written before rendering.
type DumpEnum string

func (d DumpEnum) String() string {
	return string(d)
}

const (
	DumpNone   DumpEnum = ""
	DumpPretty DumpEnum = "pretty"
	DumpYAML   DumpEnum = "yaml"
)

func dump(w io.Writer, mode DumpEnum, fn *GeneratedFunction) error {
	switch mode {
	case DumpNone:
		return nil
	case DumpPretty:
		_, err := fmt.Fprintln(w, debugfmt.Sprint(fn))
		return err
	case DumpYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode([]*GeneratedFunction{fn}); err != nil {
			return errors.Wrapf(err, "dumping %s", fn.Name)
		}
		return enc.Close()
	default:
		return errors.Newf("unknown dump mode %q (supported: pretty, yaml)", mode)
	}
}
