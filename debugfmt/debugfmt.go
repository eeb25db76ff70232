package debugfmt

import (
	"fmt"
	"strings"
)

// Builder accumulates the rendering of one struct value.
type Builder struct {
	sb     strings.Builder
	fields int
}

// Struct starts rendering a struct named name.
func Struct(name string) *Builder {
	b := &Builder{}
	b.sb.WriteString(name)
	return b
}

// Field appends name and the %#v rendering of value.
func (b *Builder) Field(name string, value any) *Builder {
	b.sep(name)
	fmt.Fprintf(&b.sb, "%#v", value)
	return b
}

// Fieldf appends name and value rendered with format.
func (b *Builder) Fieldf(name, format string, value any) *Builder {
	b.sep(name)
	fmt.Fprintf(&b.sb, format, value)
	return b
}

// Blank appends a field whose value cannot be read, such as a field named _.
func (b *Builder) Blank(name string) *Builder {
	b.sep(name)
	b.sb.WriteString("_")
	return b
}

// Finish closes the struct and returns the rendering. A struct without
// fields renders as its bare name.
func (b *Builder) Finish() string {
	if b.fields > 0 {
		b.sb.WriteString(" }")
	}
	return b.sb.String()
}

func (b *Builder) sep(name string) {
	if b.fields == 0 {
		b.sb.WriteString(" { ")
	} else {
		b.sb.WriteString(", ")
	}
	b.fields++
	b.sb.WriteString(name)
	b.sb.WriteString(": ")
}
