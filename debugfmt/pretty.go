package debugfmt

import "github.com/kr/pretty"

// Sprint returns a multi-line rendering of v, descending into nested
// structs, maps and slices.
func Sprint(v any) string {
	return pretty.Sprintf("%# v", v)
}
