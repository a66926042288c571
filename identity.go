package tview

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Identity decides whether two items denote the same data item. It is used
// to map items back to indices and to detect stale containers.
type Identity[T any] func(a, b T) bool

// ReferenceIdentity compares items with Go's == operator on their dynamic
// values. Pointers are thus compared by address. Values whose dynamic type
// is not comparable (slices, maps, functions) are never identical.
func ReferenceIdentity[T any]() Identity[T] {
	return func(a, b T) bool {
		av, bv := any(a), any(b)
		if av == nil || bv == nil {
			return av == nil && bv == nil
		}
		ta, tb := reflect.TypeOf(av), reflect.TypeOf(bv)
		if ta != tb || !ta.Comparable() {
			return false
		}
		return av == bv
	}
}

// EqualityIdentity compares items structurally using go-cmp. Unexported
// fields take part in the comparison unless opts say otherwise.
func EqualityIdentity[T any](opts ...cmp.Option) Identity[T] {
	options := append([]cmp.Option{cmp.Exporter(func(reflect.Type) bool { return true })}, opts...)
	return func(a, b T) bool {
		return cmp.Equal(a, b, options...)
	}
}

// IndexOf returns the index of the first item in source identical to item,
// or -1.
func IndexOf[T any](source ItemsSource[T], item T, identity Identity[T]) int {
	if source == nil {
		return -1
	}
	for i := 0; i < source.Len(); i++ {
		if identity(source.At(i), item) {
			return i
		}
	}
	return -1
}
