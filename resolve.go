package graphql

import (
	"reflect"
	"strings"
)

// Awaitable is satisfied by any resolver result that represents a pending
// computation rather than a plain value. The executor calls Await from
// whatever goroutine is driving that field's resolution; concrete
// implementations (channels, promise-style futures) decide how to block.
//
// Grounded on the teacher's resolver dispatch in execute.go, generalized so a
// resolver may return one of: a plain value, an Awaitable, or a zero-arg
// callable (func() (interface{}, error)) — extractResult below normalizes all
// three without the executor needing to know which one it got.
type Awaitable interface {
	Await() (interface{}, error)
}

// Callable is a resolver result that defers computation to a zero-argument
// function, the "thunk" pattern used by hand-rolled resolvers that want to
// hand work to a worker pool without building a channel-based Awaitable.
type Callable func() (interface{}, error)

// extractResult normalizes a raw resolver return value into a concrete value,
// recursively unwrapping Awaitable/Callable indirection one step at a time
// until a plain value surfaces (a future of a future, or a thunk returning
// another thunk, are both valid and fully unwound here rather than left for
// the executor to stumble over).
func extractResult(value interface{}, err error) (interface{}, error) {
	for {
		if err != nil {
			return nil, err
		}
		switch v := value.(type) {
		case Awaitable:
			value, err = v.Await()
		case Callable:
			value, err = v()
		case func() (interface{}, error):
			value, err = v()
		default:
			return value, nil
		}
	}
}

// structToMap is the object type's built-in fallback lazy serializer
// (spec.md §4.5.6 step 4, used when no per-type Serializer is registered):
// it reflects over an arbitrary struct or pointer-to-struct resolver result
// and exposes its exported fields as a map, keyed by the Go field name.
// Callers match against a field's GraphQL name case-insensitively via
// lookupFieldCI, since struct fields are conventionally PascalCase while
// GraphQL field names are conventionally camelCase.
func structToMap(value interface{}) (map[string]interface{}, bool) {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	out := make(map[string]interface{}, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		out[f.Name] = v.Field(i).Interface()
	}
	return out, true
}

// serializeObject produces a map[string]interface{} view of value for
// object type t, preferring a registered per-type Serializer and falling
// back to structToMap (spec.md §4.5.6 step 4).
func serializeObject(t NamedType, value interface{}) (map[string]interface{}, bool) {
	obj, ok := t.(*Object)
	if !ok {
		return nil, false
	}
	if obj.Serializer != nil {
		m, err := obj.Serializer(value)
		if err != nil {
			return nil, false
		}
		return m, true
	}
	return structToMap(value)
}

// lookupFieldCI looks up name in m, falling back to a case-insensitive scan.
func lookupFieldCI(m map[string]interface{}, name string) (interface{}, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}
