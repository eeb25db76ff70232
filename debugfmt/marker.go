package debugfmt

import "reflect"

// Marker ties a struct to the type parameter T without storing a T.
// It occupies no memory.
//
//	type ID[T any] struct {
//		_     debugfmt.Marker[T]
//		value int64
//	}
type Marker[T any] struct{}

// GoString implements fmt.GoStringer.
func (Marker[T]) GoString() string {
	return "Marker[" + reflect.TypeFor[T]().String() + "]"
}
