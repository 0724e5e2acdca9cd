package graphql

import (
	"context"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// Type is the common interface implemented by every member of the type system:
// scalar, enum, object, interface, union, input object, list and non-null.
//
// A type is nullable iff it is not wrapped in NonNull; its named type is obtained
// by unwrapping every List/NonNull layer (see NamedTypeOf).
type Type interface {
	String() string
	isType()
}

// NamedType is a Type that carries its own name and description: every variant
// except List and NonNull.
type NamedType interface {
	Type
	TypeName() string
	TypeDescription() string
}

var (
	_ Type = (*Scalar)(nil)
	_ Type = (*Enum)(nil)
	_ Type = (*Object)(nil)
	_ Type = (*Interface)(nil)
	_ Type = (*Union)(nil)
	_ Type = (*InputObject)(nil)
	_ Type = (*List)(nil)
	_ Type = (*NonNull)(nil)

	_ NamedType = (*Scalar)(nil)
	_ NamedType = (*Enum)(nil)
	_ NamedType = (*Object)(nil)
	_ NamedType = (*Interface)(nil)
	_ NamedType = (*Union)(nil)
	_ NamedType = (*InputObject)(nil)
)

// ValidateResult is the outcome of a type's input-side structural check.
type ValidateResult struct {
	OK      bool
	Errors  []string
	Coerced interface{}
}

// Scalar is a leaf type. Serialize/Deserialize/Validate/IsValueOfType mirror
// SPEC_FULL.md §4.1 exactly; ParseLiteral additionally handles AST literal nodes
// so the value coercer never needs scalar-specific knowledge (coerce.go calls
// only this and Deserialize).
type Scalar struct {
	Name        string
	Description string

	// Serialize maps an internal/resolved value to its JSON-shaped wire form.
	Serialize func(value interface{}) (interface{}, error)
	// Deserialize maps a JSON-shaped value (already decoded from variables JSON)
	// into the scalar's internal Go form.
	Deserialize func(value interface{}) (interface{}, error)
	// ParseLiteral maps a literal AST value node straight to the internal form.
	ParseLiteral func(value *ast.Value) (interface{}, error)
	// Validate performs a structural check ahead of Deserialize; nil means
	// "Deserialize's own error is sufficient".
	Validate func(value interface{}) error
	// IsValueOfType reports whether a raw resolver-returned value is one this
	// scalar can serialize, checked before Serialize when a field value is
	// completed.
	IsValueOfType func(value interface{}) bool
}

func (s *Scalar) String() string        { return s.Name }
func (s *Scalar) isType()               {}
func (s *Scalar) TypeName() string      { return s.Name }
func (s *Scalar) TypeDescription() string {
	return s.Description
}

// Enum maps declared member names to arbitrary internal Go values.
type Enum struct {
	Name        string
	Description string
	Values      []EnumValue
}

// EnumValue is one declared member of an Enum.
type EnumValue struct {
	Name              string
	Value             interface{}
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

func (e *Enum) String() string        { return e.Name }
func (e *Enum) isType()               {}
func (e *Enum) TypeName() string      { return e.Name }
func (e *Enum) TypeDescription() string {
	return e.Description
}

func (e *Enum) byName(name string) (EnumValue, bool) {
	for _, v := range e.Values {
		if v.Name == name {
			return v, true
		}
	}
	return EnumValue{}, false
}

func (e *Enum) byValue(value interface{}) (EnumValue, bool) {
	for _, v := range e.Values {
		if v.Value == value {
			return v, true
		}
	}
	return EnumValue{}, false
}

// Input describes one argument of a field, or one field of an InputObject.
type Input struct {
	Name         string
	Type         Type
	DefaultValue interface{}
	Description  string
}

// FieldResolve resolves one field's value. It may return a future (anything
// satisfying the Awaitable interface in resolve.go), a zero-arg callable
// (func() (interface{}, error)), or a plain value; extractResult (resolve.go)
// unwraps all three uniformly.
type FieldResolve func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error)

// SubscribeFn produces the source event stream for a subscription root field.
type SubscribeFn func(ctx context.Context, source interface{}, args map[string]interface{}) (EventStream, error)

// ObjectSerializer lazily adapts an arbitrary resolver-returned value into a
// map[string]interface{}, the registered-per-type half of resolver dispatch's
// step 4 fallback (spec.md §4.5.6): "attempt lazy serialization of `o` using a
// registered per-type serializer, or the object type's fallback". Nil means
// "use the reflection-based struct fallback" (resolve.go's structToMap).
type ObjectSerializer func(value interface{}) (map[string]interface{}, error)

// Field is one field of an Object or Interface.
type Field struct {
	Name        string
	Type        Type
	Inputs      []Input
	Resolve     FieldResolve
	Subscribe   SubscribeFn
	Description string

	IsDeprecated      bool
	DeprecationReason string
}

func (f *Field) input(name string) *Input {
	for i := range f.Inputs {
		if f.Inputs[i].Name == name {
			return &f.Inputs[i]
		}
	}
	return nil
}

// Object is a concrete, selectable composite type.
type Object struct {
	Name        string
	Description string
	Fields      map[string]*Field
	Interfaces  []*Interface

	// IsTypeOf is an optional nominal/structural check used by abstract-type
	// resolution strategy 2 (SPEC_FULL.md §4.5.8).
	IsTypeOf func(value interface{}) bool

	// Serializer is the per-type lazy serializer consulted by resolver
	// dispatch step 4 (spec.md §4.5.6) and abstract-type resolution strategy 5
	// (spec.md §4.5.8). Nil falls back to reflection over an arbitrary struct
	// result (resolve.go's structToMap).
	Serializer ObjectSerializer
}

func (o *Object) String() string        { return o.Name }
func (o *Object) isType()               {}
func (o *Object) TypeName() string      { return o.Name }
func (o *Object) TypeDescription() string {
	return o.Description
}

func (o *Object) implements(name string) bool {
	for _, i := range o.Interfaces {
		if i.Name == name {
			return true
		}
	}
	return false
}

// Interface is an abstract composite type; ResolveType and PossibleTypes drive
// abstract-type resolution the same way Union does.
type Interface struct {
	Name        string
	Description string
	Fields      map[string]*Field
	Interfaces  []*Interface

	ResolveType   func(ctx context.Context, value interface{}) *Object
	PossibleTypes []*Object
}

func (i *Interface) String() string        { return i.Name }
func (i *Interface) isType()                {}
func (i *Interface) TypeName() string      { return i.Name }
func (i *Interface) TypeDescription() string {
	return i.Description
}

// Union is an abstract composite type with no fields of its own.
type Union struct {
	Name          string
	Description   string
	PossibleTypes []*Object

	ResolveType func(ctx context.Context, value interface{}) *Object
}

func (u *Union) String() string        { return u.Name }
func (u *Union) isType()               {}
func (u *Union) TypeName() string      { return u.Name }
func (u *Union) TypeDescription() string {
	return u.Description
}

func (u *Union) contains(name string) bool {
	for _, t := range u.PossibleTypes {
		if t.Name == name {
			return true
		}
	}
	return false
}

// InputObject is a composite input-position type: a map of named, typed fields
// with optional defaults. It is never valid in output position.
type InputObject struct {
	Name        string
	Description string
	Fields      map[string]*Input
}

func (i *InputObject) String() string        { return i.Name }
func (i *InputObject) isType()                {}
func (i *InputObject) TypeName() string      { return i.Name }
func (i *InputObject) TypeDescription() string {
	return i.Description
}

// List wraps an inner type; a result must be iterable when completed against it.
type List struct{ Of Type }

func (l *List) String() string { return fmt.Sprintf("[%s]", l.Of.String()) }
func (l *List) isType()        {}

// NonNull wraps an inner type; a null result completing against it is a field
// error (SPEC_FULL.md §7 propagation policy).
type NonNull struct{ Of Type }

func (n *NonNull) String() string { return fmt.Sprintf("%s!", n.Of.String()) }
func (n *NonNull) isType()        {}

// IsNullable reports whether t is not a NonNull wrapper.
func IsNullable(t Type) bool {
	_, ok := t.(*NonNull)
	return !ok
}

// NamedTypeOf unwraps every List/NonNull layer and returns the underlying
// NamedType, or nil if t is nil.
func NamedTypeOf(t Type) NamedType {
	for {
		switch v := t.(type) {
		case nil:
			return nil
		case NamedType:
			return v
		case *List:
			t = v.Of
		case *NonNull:
			t = v.Of
		default:
			return nil
		}
	}
}

// IsInputType reports whether t is usable in input position (variable/argument
// declarations, input-object fields), per SPEC_FULL.md §4.3 rule 6.
func IsInputType(t Type) bool {
	switch v := t.(type) {
	case *List:
		return IsInputType(v.Of)
	case *NonNull:
		return IsInputType(v.Of)
	case *Scalar, *Enum, *InputObject:
		return true
	default:
		return false
	}
}

// IsOutputType reports whether t is usable in output (field) position.
func IsOutputType(t Type) bool {
	switch v := t.(type) {
	case *List:
		return IsOutputType(v.Of)
	case *NonNull:
		return IsOutputType(v.Of)
	case *Scalar, *Enum, *Object, *Interface, *Union:
		return true
	default:
		return false
	}
}

// IsCompositeType reports whether named type t (Object/Interface/Union) can
// carry a sub-selection set — used by validation rule 5 (fragments on composite
// types) and rule 7 (scalar leafs).
func IsCompositeType(t NamedType) bool {
	switch t.(type) {
	case *Object, *Interface, *Union:
		return true
	default:
		return false
	}
}

// IsLeafType reports whether t is a Scalar or Enum.
func IsLeafType(t NamedType) bool {
	switch t.(type) {
	case *Scalar, *Enum:
		return true
	default:
		return false
	}
}

// IsAbstractType reports whether t is an Interface or Union.
func IsAbstractType(t NamedType) bool {
	switch t.(type) {
	case *Interface, *Union:
		return true
	default:
		return false
	}
}

// fieldsOf returns the field map of an Object or Interface, nil otherwise.
func fieldsOf(t NamedType) map[string]*Field {
	switch v := t.(type) {
	case *Object:
		return v.Fields
	case *Interface:
		return v.Fields
	default:
		return nil
	}
}

// possibleTypesOf returns the concrete possible types of an abstract type.
func possibleTypesOf(t NamedType) []*Object {
	switch v := t.(type) {
	case *Interface:
		return v.PossibleTypes
	case *Union:
		return v.PossibleTypes
	default:
		return nil
	}
}

// Directive is a schema-declared directive; @skip/@include/@deprecated are
// registered by default (directive.go).
type Directive struct {
	Name        string
	Description string
	Locations   []DirectiveLocation
	Args        []Input
}

// Schema is the read-only, request-shared root of the type system: it is built
// once (NewSchema) and never mutated while requests execute (SPEC_FULL.md §5).
type Schema struct {
	Query        *Object
	Mutation     *Object
	Subscription *Object

	Types      map[string]NamedType
	Directives map[string]*Directive
}

// NamedType looks up a declared type by name, including built-in scalars and
// (after AddIntrospection) the introspection types.
func (s *Schema) NamedType(name string) NamedType {
	return s.Types[name]
}

// RootFor returns the root Object for an operation kind, or nil if the schema
// doesn't support it (e.g. no Subscription root defined).
func (s *Schema) RootFor(op ast.Operation) *Object {
	switch op {
	case ast.Query:
		return s.Query
	case ast.Mutation:
		return s.Mutation
	case ast.Subscription:
		return s.Subscription
	default:
		return nil
	}
}
