package graphql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphkit-io/graphql"
)

func TestScopedMapGetGlobalWalksParents(t *testing.T) {
	root := graphql.NewScopedMap()
	root.SetScoped("requestId", "abc")

	child := root.Child()
	v, ok := child.GetGlobal("requestId")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestScopedMapSetScopedShadowsParentLocally(t *testing.T) {
	root := graphql.NewScopedMap()
	root.SetScoped("header", "root-value")

	child := root.Child()
	child.SetScoped("header", "child-value")

	v, _ := child.GetGlobal("header")
	assert.Equal(t, "child-value", v)

	v, _ = root.GetGlobal("header")
	assert.Equal(t, "root-value", v)
}

func TestScopedMapSetGlobalWritesToNearestAncestorHoldingKey(t *testing.T) {
	root := graphql.NewScopedMap()
	root.SetScoped("count", 1)

	child := root.Child()
	child.SetGlobal("count", 2)

	v, _ := root.GetGlobal("count")
	assert.Equal(t, 2, v)
}

func TestScopedMapSetGlobalWritesLocallyWhenNoAncestorHasKey(t *testing.T) {
	root := graphql.NewScopedMap()
	child := root.Child()
	child.SetGlobal("fresh", "value")

	_, ok := root.GetGlobal("fresh")
	assert.False(t, ok)

	v, ok := child.GetScoped("fresh")
	assert.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestScopedMapChildIsolatesLocalState(t *testing.T) {
	root := graphql.NewScopedMap()
	a := root.Child()
	b := root.Child()

	a.SetScoped("only-a", true)

	_, ok := b.GetGlobal("only-a")
	assert.False(t, ok)
}
