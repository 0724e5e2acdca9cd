package graphql_test

import (
	"context"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphkit-io/graphql"
)

func TestExecuteScalarField(t *testing.T) {
	schema := buildTestSchema()
	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `{ hello }`), graphql.Request{}, graphql.DefaultEngineConfig(), nil)

	require.Empty(t, resp.Errors)
	if diff := pretty.Compare(map[string]interface{}{"hello": "world"}, resp.Data); diff != "" {
		t.Fatalf("unexpected response (-want +got):\n%s", diff)
	}
}

func TestExecuteArgumentCoercion(t *testing.T) {
	schema := buildTestSchema()
	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `{ greet(name: "Ada") }`), graphql.Request{}, graphql.DefaultEngineConfig(), nil)

	require.Empty(t, resp.Errors)
	assert.Equal(t, "hello, Ada", resp.Data.(map[string]interface{})["greet"])
}

func TestExecuteVariableCoercion(t *testing.T) {
	schema := buildTestSchema()
	req := graphql.Request{Variables: map[string]interface{}{"name": "Lin"}}
	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `query($name: String!) { greet(name: $name) }`), req, graphql.DefaultEngineConfig(), nil)

	require.Empty(t, resp.Errors)
	assert.Equal(t, "hello, Lin", resp.Data.(map[string]interface{})["greet"])
}

func TestExecuteEnumField(t *testing.T) {
	schema := buildTestSchema()
	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `{ favoriteColor }`), graphql.Request{}, graphql.DefaultEngineConfig(), nil)

	require.Empty(t, resp.Errors)
	assert.Equal(t, "RED", resp.Data.(map[string]interface{})["favoriteColor"])
}

func TestExecuteUnionAbstractResolution(t *testing.T) {
	schema := buildTestSchema()
	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `{
		pets {
			... on Dog { name barkVolume }
			... on Cat { name meows }
		}
	}`), graphql.Request{}, graphql.DefaultEngineConfig(), nil)

	require.Empty(t, resp.Errors)
	pets := resp.Data.(map[string]interface{})["pets"].([]interface{})
	require.Len(t, pets, 2)
	assert.Equal(t, "Rex", pets[0].(map[string]interface{})["name"])
	assert.Equal(t, "Tom", pets[1].(map[string]interface{})["name"])
}

func TestExecuteNonNullPropagation(t *testing.T) {
	schema := buildTestSchema()
	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `{ boom }`), graphql.Request{}, graphql.DefaultEngineConfig(), nil)

	require.Len(t, resp.Errors, 1)
	assert.Nil(t, resp.Data)
}

func TestExecuteMutationAliasedFields(t *testing.T) {
	schema := buildTestSchema()
	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `mutation { a: increment(by: 1) b: increment(by: 2) }`), graphql.Request{}, graphql.DefaultEngineConfig(), nil)

	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 1, data["a"])
	assert.EqualValues(t, 2, data["b"])
}

func TestExecuteSkipDirective(t *testing.T) {
	schema := buildTestSchema()
	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `query($skip: Boolean!) { __typename hello @skip(if: $skip) }`),
		graphql.Request{Variables: map[string]interface{}{"skip": true}}, graphql.DefaultEngineConfig(), nil)

	require.Empty(t, resp.Errors)
	_, present := resp.Data.(map[string]interface{})["hello"]
	assert.False(t, present)
}

func mustParseDoc(t *testing.T, query string) *graphql.Document {
	t.Helper()
	doc, errs := graphql.ParseDocument(query)
	require.Empty(t, errs)
	return doc
}
