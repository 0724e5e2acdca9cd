package graphql

// DirectiveLocation names where a Directive declaration is legal to apply.
// Locations are not checked at request time; they are surfaced through
// introspection so an introspected schema documents itself fully.
type DirectiveLocation string

const (
	DirectiveLocationQuery              DirectiveLocation = "QUERY"
	DirectiveLocationMutation           DirectiveLocation = "MUTATION"
	DirectiveLocationSubscription       DirectiveLocation = "SUBSCRIPTION"
	DirectiveLocationField              DirectiveLocation = "FIELD"
	DirectiveLocationFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	DirectiveLocationFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	DirectiveLocationInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"

	DirectiveLocationSchema               DirectiveLocation = "SCHEMA"
	DirectiveLocationScalar               DirectiveLocation = "SCALAR"
	DirectiveLocationObject               DirectiveLocation = "OBJECT"
	DirectiveLocationFieldDefinition      DirectiveLocation = "FIELD_DEFINITION"
	DirectiveLocationArgumentDefinition   DirectiveLocation = "ARGUMENT_DEFINITION"
	DirectiveLocationInterface            DirectiveLocation = "INTERFACE"
	DirectiveLocationUnion                DirectiveLocation = "UNION"
	DirectiveLocationEnum                 DirectiveLocation = "ENUM"
	DirectiveLocationEnumValue            DirectiveLocation = "ENUM_VALUE"
	DirectiveLocationInputObject          DirectiveLocation = "INPUT_OBJECT"
	DirectiveLocationInputFieldDefinition DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

// DefaultDeprecationReason is used by @deprecated when no reason argument is given.
const DefaultDeprecationReason = "No longer supported"

// IncludeDirective and SkipDirective are evaluated inline by the field
// collector (executor.go's collectFields), not through a resolver chain like
// the teacher's ResolveChain/DirectiveFn pair: SPEC_FULL.md §4.5.2 treats
// @skip/@include as selection-set membership tests, which is cheaper and
// avoids re-deriving field inclusion from a middleware side effect.
var IncludeDirective = &Directive{
	Name:        "include",
	Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
	Locations: []DirectiveLocation{
		DirectiveLocationField,
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
	},
	Args: []Input{
		{Name: "if", Description: "Included when true.", Type: &NonNull{Of: Boolean}},
	},
}

var SkipDirective = &Directive{
	Name:        "skip",
	Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
	Locations: []DirectiveLocation{
		DirectiveLocationField,
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
	},
	Args: []Input{
		{Name: "if", Description: "Skipped when true.", Type: &NonNull{Of: Boolean}},
	},
}

var DeprecatedDirective = &Directive{
	Name:        "deprecated",
	Description: "Marks an element of a GraphQL schema as no longer supported.",
	Locations: []DirectiveLocation{
		DirectiveLocationFieldDefinition,
		DirectiveLocationEnumValue,
	},
	Args: []Input{
		{
			Name: "reason",
			Description: "Explains why this element was deprecated, usually also including a " +
				"suggestion for how to access supported similar data.",
			Type:         String,
			DefaultValue: DefaultDeprecationReason,
		},
	},
}

// defaultDirectives seeds Schema.Directives at construction time (engine.go).
func defaultDirectives() map[string]*Directive {
	return map[string]*Directive{
		IncludeDirective.Name:    IncludeDirective,
		SkipDirective.Name:       SkipDirective,
		DeprecatedDirective.Name: DeprecatedDirective,
	}
}
