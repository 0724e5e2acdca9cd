package graphql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphkit-io/graphql"
)

func TestCoerceVariableDefaultFallsBackWhenOmitted(t *testing.T) {
	schema := buildTestSchema()
	doc := mustParseDoc(t, `query($name: String = "Default") { greet(name: $name) }`)

	resp := graphql.Execute(context.Background(), schema, doc, graphql.Request{}, graphql.DefaultEngineConfig(), nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, "hello, Default", resp.Data.(map[string]interface{})["greet"])
}

func TestCoerceMissingRequiredVariableIsError(t *testing.T) {
	schema := buildTestSchema()
	doc := mustParseDoc(t, `query($name: String!) { greet(name: $name) }`)

	resp := graphql.Execute(context.Background(), schema, doc, graphql.Request{}, graphql.DefaultEngineConfig(), nil)
	require.NotEmpty(t, resp.Errors)
}

func TestCoerceEnumVariableRejectsUnknownMember(t *testing.T) {
	schema := buildTestSchema()
	doc := mustParseDoc(t, `query($c: Color!) { favoriteColor }`)
	resp := graphql.Execute(context.Background(), schema, doc, graphql.Request{Variables: map[string]interface{}{"c": "PURPLE"}}, graphql.DefaultEngineConfig(), nil)
	require.NotEmpty(t, resp.Errors)
}
