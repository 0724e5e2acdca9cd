package graphql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphkit-io/graphql"
)

func TestIntRejectsFractionalOnDeserialize(t *testing.T) {
	_, err := graphql.Int.Deserialize(1.5)
	assert.Error(t, err)
}

func TestIntRejectsOutOfRange(t *testing.T) {
	_, err := graphql.Int.Deserialize(float64(1 << 40))
	assert.Error(t, err)
}

func TestIntRoundTrip(t *testing.T) {
	v, err := graphql.Int.Deserialize(float64(42))
	require.NoError(t, err)
	assert.Equal(t, int32(42), v)

	out, err := graphql.Int.Serialize(v)
	require.NoError(t, err)
	assert.Equal(t, int32(42), out)
}

func TestFloatRejectsNaNOnSerialize(t *testing.T) {
	_, err := graphql.Float.Serialize(nanFloat())
	assert.Error(t, err)
}

func nanFloat() float64 {
	var zero float64
	return zero / zero
}

func TestIDAcceptsStringOrInt(t *testing.T) {
	s, err := graphql.ID.Serialize("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	s, err = graphql.ID.Serialize(7)
	require.NoError(t, err)
	assert.Equal(t, "7", s)
}

func TestBooleanRejectsNonBoolean(t *testing.T) {
	_, err := graphql.Boolean.Deserialize("true")
	assert.Error(t, err)
}
