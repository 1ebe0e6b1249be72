package eventhub

import (
	"reflect"
	"strings"
)

// splitNames breaks a names directive into event names.
// Runs of whitespace separate names; empty tokens never appear.
func splitNames(names string) []string {
	return strings.Fields(names)
}

// Names joins event names into a single directive for On, Once, Off and
// Emit, preserving their order. Names must not contain whitespace.
func Names(names ...string) string {
	return strings.Join(names, " ")
}

// present reports whether ctx is an actual context. nil and nil values of
// pointer, map, slice, func, chan and interface types are absent.
func present(ctx any) bool {
	if ctx == nil {
		return false
	}
	v := reflect.ValueOf(ctx)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return !v.IsNil()
	}
	return true
}

// sameContext reports whether two binding contexts are the same value.
// Absent contexts never match, and values that cannot be compared with ==
// never match.
func sameContext(a, b any) bool {
	if !present(a) || !present(b) {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
