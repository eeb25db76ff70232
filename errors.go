package main

import (
	"fmt"
	"go/token"

	"github.com/cockroachdb/errors"
)

const shapeErrorMsg = "must be a single-variant record with named fields"

// ShapeError reports a selected type that cannot get a debug function.
// It is the only error the generation pipeline produces.
type ShapeError struct {
	Pos  token.Position
	Type string
}

func (e *ShapeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s %s", e.Pos, e.Type, shapeErrorMsg)
	}
	return e.Type + " " + shapeErrorMsg
}

// newShapeError returns a ShapeError for desc with reason attached as a detail.
func newShapeError(desc *TypeDescription, format string, args ...any) error {
	err := &ShapeError{Pos: desc.Pos, Type: desc.Name}
	return errors.WithHint(
		errors.WithDetailf(err, format, args...),
		"only struct types whose fields all have names are supported",
	)
}

// ErrStale is returned in check mode when a generated file is missing or out of date.
var ErrStale = errors.New("generated files are out of date")
