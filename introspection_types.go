package graphql

// Introspection type declarations (spec.md §4.4). Most fields below are left
// without a Resolve function deliberately: buildTypeValue/buildSchemaValue
// (introspection.go) produce map[string]interface{} values keyed by exactly
// these field names, so dispatchResolver's step 3 "object behaves like a
// mapping" fallback (spec.md §4.5.6) resolves them with zero extra code.
// __Type.fields and __Type.enumValues are the exception: their result
// depends on the includeDeprecated argument, which isn't known until this
// field's own arguments are coerced, so they get explicit Resolve functions
// (below, in init) instead of a precomputed map entry.
var (
	introspectionTypeKindEnum = &Enum{
		Name:        "__TypeKind",
		Description: "An enum describing what kind of type a given `__Type` is.",
		Values: []EnumValue{
			{Name: "SCALAR", Value: "SCALAR"},
			{Name: "OBJECT", Value: "OBJECT"},
			{Name: "INTERFACE", Value: "INTERFACE"},
			{Name: "UNION", Value: "UNION"},
			{Name: "ENUM", Value: "ENUM"},
			{Name: "INPUT_OBJECT", Value: "INPUT_OBJECT"},
			{Name: "LIST", Value: "LIST"},
			{Name: "NON_NULL", Value: "NON_NULL"},
		},
	}

	introspectionDirectiveLocationEnum = &Enum{
		Name:        "__DirectiveLocation",
		Description: "A location that a directive may be applied to.",
		Values: func() []EnumValue {
			locs := []DirectiveLocation{
				DirectiveLocationQuery, DirectiveLocationMutation, DirectiveLocationSubscription,
				DirectiveLocationField, DirectiveLocationFragmentDefinition, DirectiveLocationFragmentSpread,
				DirectiveLocationInlineFragment, DirectiveLocationSchema, DirectiveLocationScalar,
				DirectiveLocationObject, DirectiveLocationFieldDefinition, DirectiveLocationArgumentDefinition,
				DirectiveLocationInterface, DirectiveLocationUnion, DirectiveLocationEnum,
				DirectiveLocationEnumValue, DirectiveLocationInputObject, DirectiveLocationInputFieldDefinition,
			}
			values := make([]EnumValue, 0, len(locs))
			for _, l := range locs {
				values = append(values, EnumValue{Name: string(l), Value: string(l)})
			}
			return values
		}(),
	}

	introspectionInputValueType = &Object{
		Name: "__InputValue",
		Fields: map[string]*Field{
			"name":         {Name: "name", Type: &NonNull{Of: String}},
			"description":  {Name: "description", Type: String},
			"type":         {Name: "type", Type: &NonNull{Of: introspectionTypeType}},
			"defaultValue": {Name: "defaultValue", Type: String},
		},
	}

	introspectionEnumValueType = &Object{
		Name: "__EnumValue",
		Fields: map[string]*Field{
			"name":              {Name: "name", Type: &NonNull{Of: String}},
			"description":       {Name: "description", Type: String},
			"isDeprecated":      {Name: "isDeprecated", Type: &NonNull{Of: Boolean}},
			"deprecationReason": {Name: "deprecationReason", Type: String},
		},
	}

	introspectionFieldType = &Object{
		Name: "__Field",
		Fields: map[string]*Field{
			"name":              {Name: "name", Type: &NonNull{Of: String}},
			"description":       {Name: "description", Type: String},
			"args":              {Name: "args", Type: &NonNull{Of: &List{Of: &NonNull{Of: introspectionInputValueType}}}},
			"type":              {Name: "type", Type: &NonNull{Of: introspectionTypeType}},
			"isDeprecated":      {Name: "isDeprecated", Type: &NonNull{Of: Boolean}},
			"deprecationReason": {Name: "deprecationReason", Type: String},
		},
	}

	introspectionDirectiveType = &Object{
		Name: "__Directive",
		Fields: map[string]*Field{
			"name":        {Name: "name", Type: &NonNull{Of: String}},
			"description": {Name: "description", Type: String},
			"locations":   {Name: "locations", Type: &NonNull{Of: &List{Of: &NonNull{Of: introspectionDirectiveLocationEnum}}}},
			"args":        {Name: "args", Type: &NonNull{Of: &List{Of: &NonNull{Of: introspectionInputValueType}}}},
		},
	}

	// introspectionTypeType's own Fields map is populated in init() below: it
	// self-references (interfaces/possibleTypes/ofType all return __Type), and
	// a composite literal cannot name the variable it is still initializing.
	introspectionTypeType = &Object{
		Name:   "__Type",
		Fields: map[string]*Field{},
	}

	introspectionSchemaType = &Object{
		Name: "__Schema",
		Fields: map[string]*Field{
			"types":            {Name: "types", Type: &NonNull{Of: &List{Of: &NonNull{Of: introspectionTypeType}}}},
			"queryType":        {Name: "queryType", Type: &NonNull{Of: introspectionTypeType}},
			"mutationType":     {Name: "mutationType", Type: introspectionTypeType},
			"subscriptionType": {Name: "subscriptionType", Type: introspectionTypeType},
			"directives":       {Name: "directives", Type: &NonNull{Of: &List{Of: &NonNull{Of: introspectionDirectiveType}}}},
		},
	}
)

func init() {
	introspectionTypeType.Fields["kind"] = &Field{Name: "kind", Type: &NonNull{Of: introspectionTypeKindEnum}}
	introspectionTypeType.Fields["name"] = &Field{Name: "name", Type: String}
	introspectionTypeType.Fields["description"] = &Field{Name: "description", Type: String}
	introspectionTypeType.Fields["fields"] = &Field{
		Name: "fields",
		Type: &List{Of: &NonNull{Of: introspectionFieldType}},
		Inputs: []Input{
			{Name: "includeDeprecated", Type: Boolean, DefaultValue: false},
		},
		Resolve: resolveIntrospectionTypeFields,
	}
	introspectionTypeType.Fields["interfaces"] = &Field{Name: "interfaces", Type: &List{Of: &NonNull{Of: introspectionTypeType}}}
	introspectionTypeType.Fields["possibleTypes"] = &Field{Name: "possibleTypes", Type: &List{Of: &NonNull{Of: introspectionTypeType}}}
	introspectionTypeType.Fields["enumValues"] = &Field{
		Name: "enumValues",
		Type: &List{Of: &NonNull{Of: introspectionEnumValueType}},
		Inputs: []Input{
			{Name: "includeDeprecated", Type: Boolean, DefaultValue: false},
		},
		Resolve: resolveIntrospectionTypeEnumValues,
	}
	introspectionTypeType.Fields["inputFields"] = &Field{Name: "inputFields", Type: &List{Of: &NonNull{Of: introspectionInputValueType}}}
	introspectionTypeType.Fields["ofType"] = &Field{Name: "ofType", Type: introspectionTypeType}
}
