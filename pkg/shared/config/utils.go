package config

import "reflect"

// SetThen provides a utility to select the first value if set, otherwise
// defaults.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(value).IsZero() {
		return defaultValue
	}
	return value
}

// BoolOr dereferences an optional bool, falling back to the default when the
// config file left it unset.
func BoolOr(value *bool, defaultValue bool) bool {
	if value == nil {
		return defaultValue
	}
	return *value
}
