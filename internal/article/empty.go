package article

import "reflect"

// allUnset reports whether every optional member of a record is unset.
// Pointer, slice, map and interface fields count as unset when nil;
// other fields are not considered optional and are ignored.
func allUnset(v any) bool {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return false
	}

	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		switch f.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
			if !f.IsNil() {
				return false
			}
		}
	}
	return true
}
