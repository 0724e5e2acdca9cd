package graphql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphkit-io/graphql"
)

func TestValidateUnknownField(t *testing.T) {
	schema := buildTestSchema()
	doc := mustParseDoc(t, `{ nope }`)

	errs := graphql.Validate(schema, doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "FieldsOnCorrectType", errs[0].Rule)
}

func TestValidateScalarLeafMustNotHaveSelection(t *testing.T) {
	schema := buildTestSchema()
	doc := mustParseDoc(t, `{ hello { nope } }`)

	errs := graphql.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Equal(t, "ScalarLeafs", errs[0].Rule)
}

func TestValidateCompositeFieldRequiresSelection(t *testing.T) {
	schema := buildTestSchema()
	doc := mustParseDoc(t, `{ pets }`)

	errs := graphql.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Equal(t, "ScalarLeafs", errs[0].Rule)
}

func TestValidateUnknownFragment(t *testing.T) {
	schema := buildTestSchema()
	doc := mustParseDoc(t, `{ ...Missing }`)

	errs := graphql.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Equal(t, "KnownFragmentNames", errs[0].Rule)
}

func TestValidateDuplicateFragmentNames(t *testing.T) {
	schema := buildTestSchema()
	doc := mustParseDoc(t, `
		{ ...F }
		fragment F on Query { hello }
		fragment F on Query { hello }
	`)

	errs := graphql.Validate(schema, doc)
	var found bool
	for _, e := range errs {
		if e.Rule == "UniqueFragmentNames" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateFragmentOnNonCompositeType(t *testing.T) {
	schema := buildTestSchema()
	doc := mustParseDoc(t, `{ ...F } fragment F on String { hello }`)

	errs := graphql.Validate(schema, doc)
	require.NotEmpty(t, errs)
	var found bool
	for _, e := range errs {
		if e.Rule == "FragmentsOnCompositeTypes" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateValidDocumentHasNoErrors(t *testing.T) {
	schema := buildTestSchema()
	doc := mustParseDoc(t, `{ hello greet(name: "Ada") }`)

	assert.Empty(t, graphql.Validate(schema, doc))
}
