package graphql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphkit-io/graphql"
)

func buildIntrospectedSchema() *graphql.Schema {
	schema := buildTestSchema()
	graphql.AddIntrospection(schema)
	return schema
}

func TestIntrospectionSchemaTypesIncludesQueryType(t *testing.T) {
	schema := buildIntrospectedSchema()
	doc := mustParseDoc(t, `{ __schema { queryType { name } } }`)

	resp := graphql.Execute(context.Background(), schema, doc, graphql.Request{}, graphql.DefaultEngineConfig(), nil)
	require.Empty(t, resp.Errors)

	queryType := resp.Data.(map[string]interface{})["__schema"].(map[string]interface{})["queryType"].(map[string]interface{})
	assert.Equal(t, "Query", queryType["name"])
}

func TestIntrospectionTypeLookupByName(t *testing.T) {
	schema := buildIntrospectedSchema()
	doc := mustParseDoc(t, `{ __type(name: "Dog") { name kind fields { name } } }`)

	resp := graphql.Execute(context.Background(), schema, doc, graphql.Request{}, graphql.DefaultEngineConfig(), nil)
	require.Empty(t, resp.Errors)

	typ := resp.Data.(map[string]interface{})["__type"].(map[string]interface{})
	assert.Equal(t, "Dog", typ["name"])
	assert.Equal(t, "OBJECT", typ["kind"])
}

func TestIntrospectionUnknownTypeReturnsNull(t *testing.T) {
	schema := buildIntrospectedSchema()
	doc := mustParseDoc(t, `{ __type(name: "Nope") { name } }`)

	resp := graphql.Execute(context.Background(), schema, doc, graphql.Request{}, graphql.DefaultEngineConfig(), nil)
	require.Empty(t, resp.Errors)
	assert.Nil(t, resp.Data.(map[string]interface{})["__type"])
}
