package graphql_test

import (
	"context"

	"github.com/graphkit-io/graphql"
)

// dog and cat back the Dog/Cat union example used across the executor and
// abstract-type-resolution tests, grounded on the teacher's own Being/Pet/
// Canine interface hierarchy fixture (system/validation/validate_test.go).
type dog struct {
	Name       string
	BarkVolume int
}

type cat struct {
	Name  string
	Meows bool
}

func buildTestSchema() *graphql.Schema {
	dogType := &graphql.Object{
		Name: "Dog",
		Fields: map[string]*graphql.Field{
			"name": {Name: "name", Type: &graphql.NonNull{Of: graphql.String}, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
				return source.(*dog).Name, nil
			}},
			"barkVolume": {Name: "barkVolume", Type: graphql.Int, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
				return int32(source.(*dog).BarkVolume), nil
			}},
		},
		IsTypeOf: func(v interface{}) bool { _, ok := v.(*dog); return ok },
	}

	catType := &graphql.Object{
		Name: "Cat",
		Fields: map[string]*graphql.Field{
			"name": {Name: "name", Type: &graphql.NonNull{Of: graphql.String}, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
				return source.(*cat).Name, nil
			}},
			"meows": {Name: "meows", Type: graphql.Boolean, Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
				return source.(*cat).Meows, nil
			}},
		},
		IsTypeOf: func(v interface{}) bool { _, ok := v.(*cat); return ok },
	}

	petUnion := &graphql.Union{
		Name:          "Pet",
		PossibleTypes: []*graphql.Object{dogType, catType},
	}

	colorEnum := &graphql.Enum{
		Name: "Color",
		Values: []graphql.EnumValue{
			{Name: "RED", Value: "red"},
			{Name: "GREEN", Value: "green"},
		},
	}

	query := &graphql.Object{
		Name: "Query",
		Fields: map[string]*graphql.Field{
			"hello": {
				Name: "hello",
				Type: &graphql.NonNull{Of: graphql.String},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return "world", nil
				},
			},
			"greet": {
				Name: "greet",
				Type: &graphql.NonNull{Of: graphql.String},
				Inputs: []graphql.Input{
					{Name: "name", Type: &graphql.NonNull{Of: graphql.String}},
				},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return "hello, " + args["name"].(string), nil
				},
			},
			"favoriteColor": {
				Name: "favoriteColor",
				Type: colorEnum,
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return "red", nil
				},
			},
			"pets": {
				Name: "pets",
				Type: &graphql.NonNull{Of: &graphql.List{Of: &graphql.NonNull{Of: petUnion}}},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					return []interface{}{
						&dog{Name: "Rex", BarkVolume: 9},
						&cat{Name: "Tom", Meows: true},
					}, nil
				},
			},
			"boom": {
				Name: "boom",
				Type: &graphql.NonNull{Of: graphql.String},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					panic("boom")
				},
			},
		},
	}

	mutation := &graphql.Object{
		Name: "Mutation",
		Fields: map[string]*graphql.Field{
			"increment": {
				Name: "increment",
				Type: &graphql.NonNull{Of: graphql.Int},
				Inputs: []graphql.Input{
					{Name: "by", Type: graphql.Int, DefaultValue: int32(1)},
				},
				Resolve: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					by := args["by"].(int32)
					return by, nil
				},
			},
		},
	}

	schema, err := graphql.NewSchema(query, mutation, nil, []graphql.NamedType{colorEnum, petUnion}, nil)
	if err != nil {
		panic(err)
	}
	return schema
}
