package graphql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphkit-io/graphql"
)

func buildSubscriptionSchema(events chan interface{}) *graphql.Schema {
	sub := &graphql.Object{
		Name: "Subscription",
		Fields: map[string]*graphql.Field{
			"ticks": {
				Name: "ticks",
				Type: &graphql.NonNull{Of: graphql.Int},
				Subscribe: func(ctx context.Context, source interface{}, args map[string]interface{}) (graphql.EventStream, error) {
					return graphql.NewChannelEventStream(events, nil), nil
				},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return source.(graphql.SubscriptionEvent).Value.(int32), nil
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
	if err != nil {
		panic(err)
	}
	return schema
}

func TestSubscribeYieldsOneResponsePerEvent(t *testing.T) {
	events := make(chan interface{}, 2)
	schema := buildSubscriptionSchema(events)
	doc := mustParseDoc(t, `subscription { ticks }`)

	stream, errs := graphql.Subscribe(context.Background(), schema, doc, graphql.Request{}, graphql.DefaultEngineConfig(), nil)
	require.Empty(t, errs)

	events <- int32(1)
	events <- int32(2)
	close(events)

	first := <-stream
	require.Empty(t, first.Errors)
	assert.EqualValues(t, 1, first.Data.(map[string]interface{})["ticks"])

	second := <-stream
	require.Empty(t, second.Errors)
	assert.EqualValues(t, 2, second.Data.(map[string]interface{})["ticks"])

	select {
	case _, ok := <-stream:
		assert.False(t, ok, "stream should close once source is exhausted")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for stream to close")
	}
}

func TestSubscribeRejectsNonSubscriptionOperation(t *testing.T) {
	events := make(chan interface{})
	schema := buildSubscriptionSchema(events)
	doc := mustParseDoc(t, `{ hello }`)

	_, errs := graphql.Subscribe(context.Background(), schema, doc, graphql.Request{}, graphql.DefaultEngineConfig(), nil)
	require.NotEmpty(t, errs)
}
