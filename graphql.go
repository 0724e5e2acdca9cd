// Package graphql implements a core GraphQL execution engine: schema
// construction, document validation, variable/argument coercion, and
// query/mutation/subscription execution against resolver functions, producing
// the standard GraphQL response shape.
//
// Parsing request text into a Document is delegated to
// github.com/vektah/gqlparser/v2; everything from validation onward — the
// type system, the value coercer, the rule-driven validator, the
// introspection builder and the executor — is implemented in this module.
//
// A typical caller builds a Schema once with NewSchema, optionally augments
// it with AddIntrospection, wraps it in an Engine, and then calls
// Engine.Execute or Engine.Subscribe per request:
//
//	schema, err := graphql.NewSchema(query, mutation, nil, nil, nil)
//	graphql.AddIntrospection(schema)
//	engine, err := graphql.NewEngine(schema, graphql.DefaultEngineConfig())
//	resp := engine.Execute(ctx, graphql.Request{Query: "{ hello }"})
package graphql
