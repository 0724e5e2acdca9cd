// Package gqlerr defines the response-shaped error type used across validation,
// coercion and execution: message, source locations, response path and a free-form
// extensions map, matching the wire shape described by the GraphQL spec's response
// section.
package gqlerr

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Location is a 1-based line/column pointing at the offending AST node.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (a Location) Before(b Location) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

// Error is a single entry of the response "errors" array.
type Error struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Locations  []Location             `json:"locations,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`

	// Rule names the validation rule that produced this error, empty otherwise.
	Rule string `json:"-"`
	// Wrapped is the original Go error, when this Error wraps a resolver panic
	// or an internal bug; never serialized.
	Wrapped error `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("graphql: %s", e.Message)
	for _, loc := range e.Locations {
		str += fmt.Sprintf(" (%d:%d)", loc.Line, loc.Column)
	}
	if len(e.Path) > 0 {
		str += fmt.Sprintf(" path: %v", e.Path)
	}
	return str
}

func (e *Error) Unwrap() error { return e.Wrapped }

// WithExtension returns e with an extension entry set, creating the map lazily.
func (e *Error) WithExtension(key string, value interface{}) *Error {
	if e.Extensions == nil {
		e.Extensions = make(map[string]interface{})
	}
	e.Extensions[key] = value
	return e
}

// WithPath returns e with the given path prepended with elem (used while
// unwinding the completion recursion, innermost element first).
func (e *Error) WithPath(elem interface{}) *Error {
	e.Path = append([]interface{}{elem}, e.Path...)
	return e
}

// AtPath returns e with its path set to a copy of path wholesale, the common
// case when the full response path is already known at the point an error is
// constructed (e.g. from a FieldContext's own Path).
func (e *Error) AtPath(path []interface{}) *Error {
	e.Path = append([]interface{}{}, path...)
	return e
}

// List is an ordered collection of Errors; it satisfies error so a validation
// failure carrying many rule violations can still be returned/thrown as one value.
type List []*Error

func (l List) Error() string {
	var s string
	for _, e := range l {
		s += e.Error() + "\n"
	}
	return s
}

// New builds a bare Error from a message, no location.
func New(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// At builds an Error located at pos, the common case for validation rules and
// coercion failures that have an AST node handy.
func At(pos *ast.Position, rule, format string, args ...interface{}) *Error {
	e := &Error{Message: fmt.Sprintf(format, args...), Rule: rule}
	if pos != nil {
		e.Locations = []Location{{Line: pos.Line, Column: pos.Column}}
	}
	return e
}

// Internal wraps a Go error (bug, panic) so it never leaks raw text without an
// extensions code, per SPEC_FULL.md §10.3.
func Internal(err error) *Error {
	return (&Error{Message: "internal error", Wrapped: err}).WithExtension("code", "INTERNAL_ERROR")
}

// FromGQLParser converts a gqlparser error (produced by parsing/validating the
// document text) into our response shape, preserving locations.
func FromGQLParser(err *gqlerror.Error) *Error {
	if err == nil {
		return nil
	}
	e := &Error{Message: err.Message, Extensions: err.Extensions}
	for _, loc := range err.Locations {
		e.Locations = append(e.Locations, Location{Line: loc.Line, Column: loc.Column})
	}
	for _, p := range err.Path {
		e.Path = append(e.Path, p)
	}
	return e
}

// FromGQLParserList converts a gqlerror.List in document order.
func FromGQLParserList(list gqlerror.List) List {
	out := make(List, 0, len(list))
	for _, err := range list {
		out = append(out, FromGQLParser(err))
	}
	return out
}
