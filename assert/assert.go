// Package assert provides minimal test assertions with explicit labels.
package assert

import (
	"cmp"
	"reflect"
	"strings"
	"testing"
)

// Equal fails the test when expected != actual.
func Equal[T comparable](t *testing.T, expected, actual T, label string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", label, expected, actual)
	}
}

// NotEqual fails the test when the two values are equal.
func NotEqual[T comparable](t *testing.T, unexpected, actual T, label string) {
	t.Helper()
	if unexpected == actual {
		t.Errorf("%s: expected value different from %v", label, unexpected)
	}
}

// DeepEqual fails the test when the two values are not reflect.DeepEqual.
func DeepEqual(t *testing.T, expected, actual any, label string) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("%s: expected %v, got %v", label, expected, actual)
	}
}

// True fails the test when the condition is false.
func True(t *testing.T, condition bool, label string) {
	t.Helper()
	if !condition {
		t.Errorf("%s: expected true", label)
	}
}

// False fails the test when the condition is true.
func False(t *testing.T, condition bool, label string) {
	t.Helper()
	if condition {
		t.Errorf("%s: expected false", label)
	}
}

// Nil fails the test when the value is not nil.
func Nil(t *testing.T, value any, label string) {
	t.Helper()
	if !isNil(value) {
		t.Errorf("%s: expected nil, got %v", label, value)
	}
}

// NotNil fails the test when the value is nil.
func NotNil(t *testing.T, value any, label string) {
	t.Helper()
	if isNil(value) {
		t.Errorf("%s: expected non-nil value", label)
	}
}

// Len fails the test when the collection does not have the expected length.
func Len(t *testing.T, collection any, expected int, label string) {
	t.Helper()
	v := reflect.ValueOf(collection)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan, reflect.String:
		if v.Len() != expected {
			t.Errorf("%s: expected length %d, got %d", label, expected, v.Len())
		}
	default:
		t.Errorf("%s: value of type %T has no length", label, collection)
	}
}

// NoError fails the test when err is non-nil.
func NoError(t *testing.T, err error, label string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", label, err)
	}
}

// Error fails the test when err is nil.
func Error(t *testing.T, err error, label string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error", label)
	}
}

// Greater fails the test when a <= b.
func Greater[T cmp.Ordered](t *testing.T, a, b T, label string) {
	t.Helper()
	if a <= b {
		t.Errorf("%s: expected %v > %v", label, a, b)
	}
}

// GreaterOrEqual fails the test when a < b.
func GreaterOrEqual[T cmp.Ordered](t *testing.T, a, b T, label string) {
	t.Helper()
	if a < b {
		t.Errorf("%s: expected %v >= %v", label, a, b)
	}
}

// Less fails the test when a >= b.
func Less[T cmp.Ordered](t *testing.T, a, b T, label string) {
	t.Helper()
	if a >= b {
		t.Errorf("%s: expected %v < %v", label, a, b)
	}
}

// LessOrEqual fails the test when a > b.
func LessOrEqual[T cmp.Ordered](t *testing.T, a, b T, label string) {
	t.Helper()
	if a > b {
		t.Errorf("%s: expected %v <= %v", label, a, b)
	}
}

// Contains fails the test when haystack does not contain needle.
func Contains(t *testing.T, haystack, needle string, label string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("%s: expected %q to contain %q", label, haystack, needle)
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
