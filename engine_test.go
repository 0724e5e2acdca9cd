package graphql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphkit-io/graphql"
)

// TestEndToEndTypenameOnly covers the bare-__typename scenario: a query
// selecting only the meta field against the Query root.
func TestEndToEndTypenameOnly(t *testing.T) {
	schema := buildTestSchema()
	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `{ __typename }`), graphql.Request{}, graphql.DefaultEngineConfig(), nil)

	require.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{"__typename": "Query"}, resp.Data)
}

// TestEndToEndEnumArgumentResolvesField covers an enum-valued argument
// flowing into a resolver that returns a nested object.
func TestEndToEndEnumArgumentResolvesField(t *testing.T) {
	episodeEnum := &graphql.Enum{
		Name: "Episode",
		Values: []graphql.EnumValue{
			{Name: "EMPIRE", Value: "EMPIRE"},
			{Name: "JEDI", Value: "JEDI"},
		},
	}
	heroType := &graphql.Object{
		Name: "Character",
		Fields: map[string]*graphql.Field{
			"name": {Name: "name", Type: graphql.String, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
				return source.(map[string]interface{})["name"], nil
			}},
		},
	}
	query := &graphql.Object{
		Name: "Query",
		Fields: map[string]*graphql.Field{
			"hero": {
				Name: "hero",
				Type: heroType,
				Inputs: []graphql.Input{
					{Name: "episode", Type: episodeEnum},
				},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					if args["episode"] != "EMPIRE" {
						return nil, nil
					}
					return map[string]interface{}{"name": "Luke"}, nil
				},
			},
		},
	}
	schema, err := graphql.NewSchema(query, nil, nil, []graphql.NamedType{episodeEnum}, nil)
	require.NoError(t, err)

	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `{ hero(episode: EMPIRE) { name } }`), graphql.Request{}, graphql.DefaultEngineConfig(), nil)

	require.Empty(t, resp.Errors)
	assert.Equal(t, map[string]interface{}{"hero": map[string]interface{}{"name": "Luke"}}, resp.Data)
}

// TestEndToEndNonNullPropagationToRoot covers a NonNull root field whose
// resolver errors: the field error propagates to data itself.
func TestEndToEndNonNullPropagationToRoot(t *testing.T) {
	query := &graphql.Object{
		Name: "Query",
		Fields: map[string]*graphql.Field{
			"name": {Name: "name", Type: &graphql.NonNull{Of: graphql.String}, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
				panic("boom")
			}},
		},
	}
	schema, err := graphql.NewSchema(query, nil, nil, nil, nil)
	require.NoError(t, err)

	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `{ name }`), graphql.Request{}, graphql.DefaultEngineConfig(), nil)

	require.Len(t, resp.Errors, 1)
	assert.Nil(t, resp.Data)
	assert.Equal(t, []interface{}{"name"}, resp.Errors[0].Path)
}

// TestEndToEndSkipDirectiveOmitsField covers @skip(if: $s) with s=true
// dropping the field from the response entirely rather than setting it null.
func TestEndToEndSkipDirectiveOmitsField(t *testing.T) {
	schema := buildTestSchema()
	req := graphql.Request{Variables: map[string]interface{}{"s": true}}
	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `query($s: Boolean!) { __typename hello @skip(if: $s) }`), req, graphql.DefaultEngineConfig(), nil)

	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	_, present := data["hello"]
	assert.False(t, present)
}

// TestEndToEndMutationFieldsRunSerially covers the log-ordering scenario:
// mutation root fields must append to a shared log in selection order even
// though the same resolvers permit either order under a query root.
func TestEndToEndMutationFieldsRunSerially(t *testing.T) {
	var mu sync.Mutex
	var log []int32

	appendingField := &graphql.Field{
		Name: "m",
		Type: &graphql.NonNull{Of: graphql.Int},
		Inputs: []graphql.Input{
			{Name: "x", Type: &graphql.NonNull{Of: graphql.Int}},
		},
		Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			x := args["x"].(int32)
			time.Sleep(time.Millisecond)
			mu.Lock()
			log = append(log, x)
			mu.Unlock()
			return x, nil
		},
	}

	query := &graphql.Object{Name: "Query", Fields: map[string]*graphql.Field{"m": appendingField}}
	mutation := &graphql.Object{Name: "Mutation", Fields: map[string]*graphql.Field{"m": appendingField}}
	schema, err := graphql.NewSchema(query, mutation, nil, nil, nil)
	require.NoError(t, err)

	resp := graphql.Execute(context.Background(), schema, mustParseDoc(t, `mutation { a: m(x:1) b: m(x:2) }`), graphql.Request{}, graphql.DefaultEngineConfig(), nil)

	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 1, data["a"])
	assert.EqualValues(t, 2, data["b"])
	assert.Equal(t, []int32{1, 2}, log)
}

// TestEndToEndSubscriptionContinuesAfterEventError covers an exception on
// one event yielding a null/errors response without terminating the stream:
// events 1 and 3 still complete normally.
func TestEndToEndSubscriptionContinuesAfterEventError(t *testing.T) {
	events := make(chan interface{}, 3)
	sub := &graphql.Object{
		Name: "Subscription",
		Fields: map[string]*graphql.Field{
			"tick": {
				Name: "tick",
				Type: graphql.Int,
				Subscribe: func(ctx context.Context, source interface{}, args map[string]interface{}) (graphql.EventStream, error) {
					return graphql.NewChannelEventStream(events, nil), nil
				},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					v := source.(graphql.SubscriptionEvent).Value.(int32)
					if v == 2 {
						panic("boom on event 2")
					}
					return v, nil
				},
			},
		},
	}
	query := &graphql.Object{Name: "Query", Fields: map[string]*graphql.Field{
		"hello": {Name: "hello", Type: graphql.String, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return "world", nil
		}},
	}}
	schema, err := graphql.NewSchema(query, nil, sub, nil, nil)
	require.NoError(t, err)

	stream, errs := graphql.Subscribe(context.Background(), schema, mustParseDoc(t, `subscription { tick }`), graphql.Request{}, graphql.DefaultEngineConfig(), nil)
	require.Empty(t, errs)

	events <- int32(1)
	events <- int32(2)
	events <- int32(3)
	close(events)

	first := <-stream
	require.Empty(t, first.Errors)
	assert.EqualValues(t, 1, first.Data.(map[string]interface{})["tick"])

	second := <-stream
	require.NotEmpty(t, second.Errors)
	assert.Nil(t, second.Data.(map[string]interface{})["tick"])

	third := <-stream
	require.Empty(t, third.Errors)
	assert.EqualValues(t, 3, third.Data.(map[string]interface{})["tick"])

	select {
	case _, ok := <-stream:
		assert.False(t, ok, "stream should close once source is exhausted")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for stream to close")
	}
}
