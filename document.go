package graphql

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/graphkit-io/graphql/gqlerr"
)

// Document is the parsed request: one or more operation definitions plus any
// fragment definitions they reference. Parsing itself is delegated entirely to
// vektah/gqlparser/v2 (spec.md treats "parse(text) -> Document" as an external
// collaborator out of this module's scope); Document only adds the lookups the
// validator/executor need on top of the raw AST.
type Document struct {
	raw *ast.QueryDocument
}

// ParseDocument parses request text into a Document, converting any syntax
// error into the engine's response-shaped error list.
func ParseDocument(text string) (*Document, gqlerr.List) {
	raw, err := parser.ParseQuery(&ast.Source{Input: text, Name: "request"})
	if err != nil {
		return nil, gqlerr.List{gqlerr.FromGQLParser(err)}
	}
	return &Document{raw: raw}, nil
}

// Operations returns every operation definition in document order.
func (d *Document) Operations() ast.OperationList { return d.raw.Operations }

// Fragments returns every fragment definition in document order.
func (d *Document) Fragments() ast.FragmentDefinitionList { return d.raw.Fragments }

// OperationByName resolves the operation to execute given an optional
// requested name, per spec.md §4.5.1: if name is empty there must be exactly
// one operation; otherwise the named operation must exist.
func (d *Document) OperationByName(name string) (*ast.OperationDefinition, *gqlerr.Error) {
	ops := d.raw.Operations
	if name == "" {
		if len(ops) == 0 {
			return nil, gqlerr.New("document contains no operations")
		}
		if len(ops) != 1 {
			return nil, gqlerr.New("must provide operation name if query contains multiple operations")
		}
		return ops[0], nil
	}
	for _, op := range ops {
		if op.Name == name {
			return op, nil
		}
	}
	return nil, gqlerr.New("unknown operation named %q", name)
}

// FragmentByName resolves a named fragment definition, nil if undeclared.
func (d *Document) FragmentByName(name string) *ast.FragmentDefinition {
	for _, f := range d.raw.Fragments {
		if f.Name == name {
			return f
		}
	}
	return nil
}
