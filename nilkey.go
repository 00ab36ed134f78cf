package elastichash

import "reflect"

// isNilKey reports whether key is a recognizably-nil pointer, interface,
// map, slice, channel, or function. For every other comparable kind
// (scalars, structs, arrays) it is unconditionally false: those types have
// no nil representation, so there is nothing to reject.
func isNilKey[K comparable](key K) bool {
	v := reflect.ValueOf(key)
	if !v.IsValid() {
		// K is an interface type and key is a nil interface value.
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func,
		reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}
