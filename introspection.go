package graphql

import (
	"context"
	"sort"
)

// AddIntrospection augments schema in place with the standard introspection
// surface (spec.md §4.4): __schema on the query root, plus __type(name:) for
// looking up one named type. It must run after NewSchema so the reachable
// type closure already reflects every declared type.
//
// Grounded on the teacher's system/introspection/introspection.go: same
// eight-variant TypeKind discrimination and reflective field shape, rebuilt
// here as plain resolver functions over our Object/Field/Scalar model instead
// of the teacher's separate introspection-only type hierarchy.
func AddIntrospection(schema *Schema) {
	if schema.Query == nil {
		return
	}
	for _, t := range []NamedType{introspectionSchemaType, introspectionTypeType, introspectionFieldType, introspectionInputValueType,
		introspectionEnumValueType, introspectionDirectiveType, introspectionTypeKindEnum, introspectionDirectiveLocationEnum} {
		schema.Types[t.TypeName()] = t
	}
	schema.Query.Fields["__schema"] = &Field{
		Name: "__schema",
		Type: &NonNull{Of: introspectionSchemaType},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return buildSchemaValue(schema), nil
		},
	}
	schema.Query.Fields["__type"] = &Field{
		Name: "__type",
		Type: introspectionTypeType,
		Inputs: []Input{
			{Name: "name", Type: &NonNull{Of: String}},
		},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			name, _ := args["name"].(string)
			t := schema.NamedType(name)
			if t == nil {
				return nil, nil
			}
			return buildTypeValue(t), nil
		},
	}
}

// buildSchemaValue/buildTypeValue produce plain map[string]interface{} values
// that flow through dispatchResolver's "object behaves like a mapping" branch
// (spec.md §4.5.6 step 3) without needing dedicated Go structs per
// introspection type.

// introspectionSourceKey is an unexported map key, so it can never collide
// with a GraphQL field name a selection set could request.
const introspectionSourceKey = "__introspectionSource"

// resolveIntrospectionTypeFields backs __Type.fields: spec.md §4.4 requires
// it to return null for any kind other than OBJECT/INTERFACE, and to honor
// includeDeprecated (default false).
func resolveIntrospectionTypeFields(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
	m, ok := source.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	t, _ := m[introspectionSourceKey].(NamedType)
	fields := fieldsOf(t)
	if fields == nil {
		return nil, nil
	}
	includeDeprecated, _ := args["includeDeprecated"].(bool)
	return buildFieldValues(fields, includeDeprecated), nil
}

// resolveIntrospectionTypeEnumValues backs __Type.enumValues: null for any
// kind other than ENUM, honoring includeDeprecated (default false).
func resolveIntrospectionTypeEnumValues(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
	m, ok := source.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	enum, ok := m[introspectionSourceKey].(*Enum)
	if !ok {
		return nil, nil
	}
	includeDeprecated, _ := args["includeDeprecated"].(bool)
	return buildEnumValueValues(enum.Values, includeDeprecated), nil
}

func buildSchemaValue(schema *Schema) map[string]interface{} {
	names := make([]string, 0, len(schema.Types))
	for n := range schema.Types {
		names = append(names, n)
	}
	sort.Strings(names)

	types := make([]interface{}, 0, len(names))
	for _, n := range names {
		types = append(types, buildTypeValue(schema.Types[n]))
	}

	dirNames := make([]string, 0, len(schema.Directives))
	for n := range schema.Directives {
		dirNames = append(dirNames, n)
	}
	sort.Strings(dirNames)
	directives := make([]interface{}, 0, len(dirNames))
	for _, n := range dirNames {
		directives = append(directives, buildDirectiveValue(schema.Directives[n]))
	}

	return map[string]interface{}{
		"types":            types,
		"queryType":        nilableTypeValue(schema.Query),
		"mutationType":     nilableTypeValue(schema.Mutation),
		"subscriptionType": nilableTypeValue(schema.Subscription),
		"directives":       directives,
	}
}

func nilableTypeValue(t NamedType) interface{} {
	if t == nil || (interfaceIsNilObject(t)) {
		return nil
	}
	return buildTypeValue(t)
}

// interfaceIsNilObject guards against a typed-nil *Object/*Interface/etc.
// stored in a NamedType interface value comparing non-nil to `== nil`.
func interfaceIsNilObject(t NamedType) bool {
	switch v := t.(type) {
	case *Object:
		return v == nil
	case *Interface:
		return v == nil
	case *Union:
		return v == nil
	case *InputObject:
		return v == nil
	case *Scalar:
		return v == nil
	case *Enum:
		return v == nil
	default:
		return false
	}
}

func typeKindOf(t Type) string {
	switch t.(type) {
	case *Scalar:
		return "SCALAR"
	case *Object:
		return "OBJECT"
	case *Interface:
		return "INTERFACE"
	case *Union:
		return "UNION"
	case *Enum:
		return "ENUM"
	case *InputObject:
		return "INPUT_OBJECT"
	case *List:
		return "LIST"
	case *NonNull:
		return "NON_NULL"
	default:
		return ""
	}
}

func buildTypeValue(t Type) map[string]interface{} {
	switch v := t.(type) {
	case *List:
		return map[string]interface{}{
			"kind": "LIST", "name": nil, "description": nil,
			"ofType": buildTypeValue(v.Of),
		}
	case *NonNull:
		return map[string]interface{}{
			"kind": "NON_NULL", "name": nil, "description": nil,
			"ofType": buildTypeValue(v.Of),
		}
	}

	named := t.(NamedType)
	m := map[string]interface{}{
		"kind":        typeKindOf(t),
		"name":        named.TypeName(),
		"description": named.TypeDescription(),
		"ofType":      nil,
		// introspectionSourceKey stashes the underlying Type so the "fields"
		// and "enumValues" Resolve functions below can apply includeDeprecated
		// lazily, once the field's own arguments are coerced — unlike every
		// other introspection field, their result depends on an argument, so
		// they can't be precomputed into this map the way the rest are.
		introspectionSourceKey: t,
	}

	switch v := t.(type) {
	case *Object:
		m["interfaces"] = buildObjectListValues(v.Interfaces)
	case *Interface:
		m["interfaces"] = buildInterfaceListValues(v.Interfaces)
		m["possibleTypes"] = buildObjectListValues(v.PossibleTypes)
	case *Union:
		m["possibleTypes"] = buildObjectListValues(v.PossibleTypes)
	case *InputObject:
		names := make([]string, 0, len(v.Fields))
		for n := range v.Fields {
			names = append(names, n)
		}
		sort.Strings(names)
		inputs := make([]interface{}, 0, len(names))
		for _, n := range names {
			inputs = append(inputs, buildInputValue(*v.Fields[n]))
		}
		m["inputFields"] = inputs
	}
	return m
}

// buildEnumValueValues is enumValues's counterpart to buildFieldValues,
// filtering deprecated members unless includeDeprecated is set.
func buildEnumValueValues(values []EnumValue, includeDeprecated bool) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, ev := range values {
		if ev.IsDeprecated && !includeDeprecated {
			continue
		}
		out = append(out, map[string]interface{}{
			"name":              ev.Name,
			"description":       ev.Description,
			"isDeprecated":      ev.IsDeprecated,
			"deprecationReason": nilableString(ev.DeprecationReason),
		})
	}
	return out
}

func buildFieldValues(fields map[string]*Field, includeDeprecated bool) []interface{} {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]interface{}, 0, len(names))
	for _, n := range names {
		f := fields[n]
		if f.IsDeprecated && !includeDeprecated {
			continue
		}
		args := make([]interface{}, 0, len(f.Inputs))
		for _, in := range f.Inputs {
			args = append(args, buildInputValue(in))
		}
		out = append(out, map[string]interface{}{
			"name":              f.Name,
			"description":       f.Description,
			"args":              args,
			"type":              buildTypeValue(f.Type),
			"isDeprecated":      f.IsDeprecated,
			"deprecationReason": nilableString(f.DeprecationReason),
		})
	}
	return out
}

func buildInputValue(in Input) map[string]interface{} {
	return map[string]interface{}{
		"name":         in.Name,
		"description":  in.Description,
		"type":         buildTypeValue(in.Type),
		"defaultValue": in.DefaultValue,
	}
}

func buildObjectListValues(objs []*Object) []interface{} {
	out := make([]interface{}, 0, len(objs))
	for _, o := range objs {
		out = append(out, buildTypeValue(o))
	}
	return out
}

func buildInterfaceListValues(ifaces []*Interface) []interface{} {
	out := make([]interface{}, 0, len(ifaces))
	for _, i := range ifaces {
		out = append(out, buildTypeValue(i))
	}
	return out
}

func buildDirectiveValue(d *Directive) map[string]interface{} {
	args := make([]interface{}, 0, len(d.Args))
	for _, in := range d.Args {
		args = append(args, buildInputValue(in))
	}
	locations := make([]interface{}, 0, len(d.Locations))
	for _, l := range d.Locations {
		locations = append(locations, string(l))
	}
	return map[string]interface{}{
		"name":        d.Name,
		"description": d.Description,
		"locations":   locations,
		"args":        args,
	}
}

func nilableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
