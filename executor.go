package graphql

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"

	"github.com/graphkit-io/graphql/gqlerr"
)

// Response is the top-level result shape described by spec.md §6: data plus
// an optional error list and extension payload.
type Response struct {
	Data       interface{}            `json:"data"`
	Errors     gqlerr.List            `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
	// DidExecute is false for parse/validation/variable-coercion failures,
	// matching the "didExecute: false" failure-mode note in spec.md §6.
	DidExecute bool `json:"-"`
}

// Request bundles every input spec.md §6 names: query text, operation name,
// variables, extension payload, and a root value.
type Request struct {
	Query         string
	OperationName string
	Variables     map[string]interface{}
	RootValue     interface{}
	// Extensions carries caller-supplied request metadata (e.g. persisted
	// query hints); the engine never interprets it, only threads it through
	// to extension hooks.
	Extensions map[string]interface{}
}

// requestState is the immutable-after-setup state shared by every field task
// of one request/subscription-event, the "resolve context" of spec.md §4.
type requestState struct {
	schema     *Schema
	doc        *Document
	operation  *ast.OperationDefinition
	variables  map[string]interface{}
	extensions map[string]interface{}
	scope      *ScopedMap
	config     EngineConfig
	exts       []*Extension
	logger     *zap.Logger
}

// FieldContext is the per-object/per-field context threaded through resolver
// dispatch, value completion and extension hooks: object type, object value,
// parent context, path item, and the grouped field set being executed
// (spec.md §4's "resolve context" + "per-object context").
type FieldContext struct {
	Request     *requestState
	ParentType  NamedType
	ParentValue interface{}
	Parent      *FieldContext
	ResponseKey string
	Field       *ast.Field
	FieldDef    *Field
	Path        []interface{}
}

func (fc *FieldContext) childPath(elem interface{}) []interface{} {
	p := make([]interface{}, len(fc.Path)+1)
	copy(p, fc.Path)
	p[len(fc.Path)] = elem
	return p
}

// Execute runs req to completion against schema and returns a Response. This
// is the single entry point for query and mutation operations (spec.md's
// top-level orchestration of parse -> validate -> coerce-variables ->
// execute-selection-set -> complete-value, minus parsing which the caller
// already performed via ParseDocument).
func Execute(ctx context.Context, schema *Schema, doc *Document, req Request, config EngineConfig, exts []*Extension) *Response {
	core := func(ctx context.Context) *Response {
		op, opErr := doc.OperationByName(req.OperationName)
		if opErr != nil {
			return &Response{Errors: gqlerr.List{opErr}}
		}
		if op.Operation == ast.Subscription {
			return &Response{Errors: gqlerr.List{gqlerr.New("use Subscribe for subscription operations")}}
		}

		if config.ValidationEnabled {
			if errs := Validate(schema, doc); len(errs) > 0 {
				return &Response{Errors: errs}
			}
		}

		vars, varErrs := coerceVariables(op.VariableDefinitions, schema, req.Variables)
		if len(varErrs) > 0 {
			return &Response{Errors: varErrs}
		}

		state := &requestState{
			schema:     schema,
			doc:        doc,
			operation:  op,
			variables:  vars,
			extensions: req.Extensions,
			scope:      NewScopedMap(),
			config:     config,
			exts:       exts,
			logger:     config.logger(),
		}
		requestID := AssignRequestID(state.scope, requestIDFromExtensions(req.Extensions))
		state.logger = state.logger.With(zap.String("requestId", requestID))

		root := schema.RootFor(op.Operation)
		serial := op.Operation == ast.Mutation

		data, errs := executeSelectionSet(ctx, state, op.SelectionSet, root, req.RootValue, serial, nil, nil)
		return &Response{Data: data, Errors: errs, DidExecute: true}
	}
	return chainExecuteRequest(exts, core)(ctx)
}

func requestIDFromExtensions(ext map[string]interface{}) string {
	if ext == nil {
		return ""
	}
	id, _ := ext["requestId"].(string)
	return id
}

// groupedField is one response key's collected field nodes, sharing one field
// definition, merged from however many fragment spreads/inline fragments
// contributed to it (spec.md §4.5.3).
type groupedField struct {
	responseKey string
	nodes       []*ast.Field
}

// collectFields walks set, honoring @skip/@include and merging fragment
// spreads/inline fragments whose type condition applies to parentType,
// guarding against fragment cycles via visited (spec.md §4.5.3).
func collectFields(state *requestState, set ast.SelectionSet, parentType NamedType, visited map[string]bool) []groupedField {
	if visited == nil {
		visited = map[string]bool{}
	}
	order := []string{}
	groups := map[string][]*ast.Field{}

	var walk func(ast.SelectionSet)
	walk = func(set ast.SelectionSet) {
		for _, sel := range set {
			switch s := sel.(type) {
			case *ast.Field:
				if !shouldInclude(s.Directives, state.variables) {
					continue
				}
				key := s.Alias
				if key == "" {
					key = s.Name
				}
				if _, ok := groups[key]; !ok {
					order = append(order, key)
				}
				groups[key] = append(groups[key], s)

			case *ast.FragmentSpread:
				if !shouldInclude(s.Directives, state.variables) {
					continue
				}
				if visited[s.Name] {
					continue
				}
				frag := state.doc.FragmentByName(s.Name)
				if frag == nil {
					continue
				}
				if !doesFragmentTypeApply(state.schema, frag.TypeCondition, parentType) {
					continue
				}
				visited[s.Name] = true
				walk(frag.SelectionSet)

			case *ast.InlineFragment:
				if !shouldInclude(s.Directives, state.variables) {
					continue
				}
				if s.TypeCondition != "" && !doesFragmentTypeApply(state.schema, s.TypeCondition, parentType) {
					continue
				}
				walk(s.SelectionSet)
			}
		}
	}
	walk(set)

	out := make([]groupedField, 0, len(order))
	for _, key := range order {
		out = append(out, groupedField{responseKey: key, nodes: groups[key]})
	}
	return out
}

// doesFragmentTypeApply — spec.md §4.5.3: equal type, implemented interface,
// or member union.
func doesFragmentTypeApply(schema *Schema, typeCondition string, objectType NamedType) bool {
	target := schema.NamedType(typeCondition)
	if target == nil {
		return false
	}
	if target.TypeName() == objectType.TypeName() {
		return true
	}
	obj, ok := objectType.(*Object)
	if !ok {
		return false
	}
	switch t := target.(type) {
	case *Interface:
		return obj.implements(t.Name)
	case *Union:
		return t.contains(obj.Name)
	default:
		return false
	}
}

// shouldInclude evaluates @skip/@include against already-coerced variables.
func shouldInclude(directives ast.DirectiveList, vars map[string]interface{}) bool {
	include := true
	for _, d := range directives {
		switch d.Name {
		case "skip":
			if boolArg(d, "if", vars) {
				include = false
			}
		case "include":
			if !boolArg(d, "if", vars) {
				include = false
			}
		}
	}
	return include
}

func boolArg(d *ast.Directive, name string, vars map[string]interface{}) bool {
	arg := d.Arguments.ForName(name)
	if arg == nil {
		return false
	}
	v, err := coerceLiteral(&NonNull{Of: Boolean}, arg.Value, vars)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

// executeSelectionSet implements spec.md §4.5.4.
func executeSelectionSet(ctx context.Context, state *requestState, set ast.SelectionSet, objectType NamedType, objectValue interface{}, serial bool, parent *FieldContext, path []interface{}) (map[string]interface{}, gqlerr.List) {
	groups := collectFields(state, set, objectType, nil)
	if len(groups) == 0 {
		if state.config.ValidationEnabled {
			return nil, gqlerr.List{gqlerr.New("must select some fields")}
		}
		return map[string]interface{}{}, nil
	}

	result := make(map[string]interface{}, len(groups))
	var mu sync.Mutex
	var errs gqlerr.List
	var wg sync.WaitGroup
	// A non-null field that ends as null with errors nulls this whole
	// selection set, propagating to the nearest nullable parent (spec.md §7).
	nonNullFailed := false
	isNonNull := func(g groupedField) bool {
		f, ok := fieldsOf(objectType)[g.nodes[0].Name]
		return ok && !IsNullable(f.Type)
	}

	runOne := func(g groupedField) {
		defer func() {
			if !state.config.RecoverPanics {
				return
			}
			if r := recover(); r != nil {
				state.logger.Warn("recovered panic in field resolution", zap.String("field", g.responseKey), zap.Any("panic", r))
				mu.Lock()
				errs = append(errs, gqlerr.Internal(fmt.Errorf("panic: %v", r)).AtPath(append(append([]interface{}{}, path...), g.responseKey)))
				result[g.responseKey] = nil
				nonNullFailed = nonNullFailed || isNonNull(g)
				mu.Unlock()
			}
		}()
		value, fieldErrs := executeOneField(ctx, state, g, objectType, objectValue, parent, path)
		mu.Lock()
		result[g.responseKey] = value
		errs = append(errs, fieldErrs...)
		if m, isMap := value.(map[string]interface{}); len(fieldErrs) > 0 && (value == nil || (isMap && m == nil)) && isNonNull(g) {
			nonNullFailed = true
		}
		mu.Unlock()
	}

	if serial {
		for _, g := range groups {
			runOne(g)
		}
	} else {
		for _, g := range groups {
			g := g
			wg.Add(1)
			go func() {
				defer wg.Done()
				runOne(g)
			}()
		}
		wg.Wait()
	}
	if nonNullFailed {
		return nil, errs
	}
	return result, errs
}

// executeOneField covers spec.md §4.5.4 steps 2a-2e for a single response key.
func executeOneField(ctx context.Context, state *requestState, g groupedField, objectType NamedType, objectValue interface{}, parent *FieldContext, path []interface{}) (interface{}, gqlerr.List) {
	node := g.nodes[0]
	childPath := append(append([]interface{}{}, path...), g.responseKey)

	if node.Name == "__typename" {
		return typenameOf(ctx, objectType, objectValue), nil
	}

	fields := fieldsOf(objectType)
	field, ok := fields[node.Name]
	if !ok {
		if state.config.ValidationEnabled {
			return nil, gqlerr.List{gqlerr.At(node.Position, "FieldsOnCorrectType", "field %q does not exist on type %q", node.Name, objectType.TypeName())}
		}
		return nil, nil
	}

	args, argErr := coerceArguments(state, field, node)
	if argErr != nil {
		return nil, gqlerr.List{argErr.AtPath(childPath)}
	}

	fc := &FieldContext{
		Request:     state,
		ParentType:  objectType,
		ParentValue: objectValue,
		Parent:      parent,
		ResponseKey: g.responseKey,
		Field:       node,
		FieldDef:    field,
		Path:        childPath,
	}

	raw, err := dispatchResolver(ctx, fc, objectValue, args)
	if err != nil {
		if gerr, ok := err.(*gqlerr.Error); ok {
			return nil, gqlerr.List{gerr.AtPath(childPath)}
		}
		return nil, gqlerr.List{gqlerr.Internal(err).AtPath(childPath)}
	}

	mergedSet := mergeSelectionSets(g.nodes)
	value, completeErrs := completeValue(ctx, fc, field.Type, mergedSet, raw)
	return value, completeErrs
}

// mergeSelectionSets concatenates every grouped field node's own selection
// set, so a field selected through two different fragments still executes one
// merged sub-selection (spec.md §4.5.4's implicit field-merging).
func mergeSelectionSets(nodes []*ast.Field) ast.SelectionSet {
	var out ast.SelectionSet
	for _, n := range nodes {
		out = append(out, n.SelectionSet...)
	}
	return out
}

func typenameOf(ctx context.Context, t NamedType, value interface{}) string {
	switch named := t.(type) {
	case *Object:
		return named.Name
	case *Interface:
		if resolved, _ := resolveAbstractType(ctx, named.ResolveType, named.PossibleTypes, value); resolved != nil {
			return resolved.Name
		}
	case *Union:
		if resolved, _ := resolveAbstractType(ctx, named.ResolveType, named.PossibleTypes, value); resolved != nil {
			return resolved.Name
		}
	}
	return t.TypeName()
}

// coerceArguments implements spec.md §4.5.5.
func coerceArguments(state *requestState, field *Field, node *ast.Field) (map[string]interface{}, *gqlerr.Error) {
	out := make(map[string]interface{}, len(field.Inputs))
	for _, input := range field.Inputs {
		arg := node.Arguments.ForName(input.Name)
		_, nonNull := input.Type.(*NonNull)

		if arg == nil {
			if input.DefaultValue != nil {
				out[input.Name] = input.DefaultValue
			} else if nonNull {
				return nil, gqlerr.At(node.Position, "ProvidedRequiredArguments", "missing required argument %q", input.Name)
			}
			continue
		}

		if arg.Value.Kind == ast.Variable {
			v, present := state.variables[arg.Value.Raw]
			if !present {
				if input.DefaultValue != nil {
					out[input.Name] = input.DefaultValue
					continue
				}
				if nonNull {
					return nil, gqlerr.At(node.Position, "NoUndefinedVariables", "argument %q references undefined variable $%s", input.Name, arg.Value.Raw)
				}
				continue
			}
			out[input.Name] = v
			continue
		}

		v, err := coerceLiteral(input.Type, arg.Value, state.variables)
		if err != nil {
			return nil, err
		}
		if v == nil {
			if nonNull {
				return nil, gqlerr.At(arg.Position, "ValuesOfCorrectType", "argument %q of required type %s must not be null", input.Name, input.Type)
			}
			continue
		}
		out[input.Name] = v
	}
	return out, nil
}

// dispatchResolver implements spec.md §4.5.6's six ordered resolution steps.
func dispatchResolver(ctx context.Context, fc *FieldContext, source interface{}, args map[string]interface{}) (interface{}, error) {
	call := func(ctx context.Context) (interface{}, error) {
		if event, ok := source.(SubscriptionEvent); ok && fc.FieldDef.Resolve == nil {
			return event.Value, nil // step 1
		}
		if fc.FieldDef.Resolve != nil {
			return extractResult(fc.FieldDef.Resolve(ctx, source, args)) // step 2
		}
		if m, ok := source.(map[string]interface{}); ok { // step 3
			if v, ok := m[fc.Field.Name]; ok {
				return extractResult(v, nil)
			}
			return nil, nil
		}
		if serialized, ok := serializeObject(fc.ParentType, source); ok { // step 4
			if v, ok := lookupFieldCI(serialized, fc.Field.Name); ok {
				return extractResult(v, nil)
			}
			return nil, nil
		}
		if fc.Request.config.DefaultFieldResolver != nil { // step 5
			return extractResult(fc.Request.config.DefaultFieldResolver(ctx, source, fc.Field.Name, args))
		}
		return nil, nil // step 6
	}

	resolveField := chainResolveField(fc.Request.exts)
	return resolveField(ctx, fc, call)
}

// completeValue implements spec.md §4.5.7.
func completeValue(ctx context.Context, fc *FieldContext, t Type, subSet ast.SelectionSet, raw interface{}) (interface{}, gqlerr.List) {
	if nn, ok := t.(*NonNull); ok {
		value, errs := completeValue(ctx, fc, nn.Of, subSet, raw)
		if value == nil && len(errs) == 0 {
			return nil, gqlerr.List{gqlerr.New("non-null field %q resolved to null", fc.ResponseKey).AtPath(fc.Path)}
		}
		return value, errs
	}

	if raw == nil {
		return nil, nil
	}

	switch named := t.(type) {
	case *List:
		return completeList(ctx, fc, named.Of, subSet, raw)

	case *Scalar:
		if named.IsValueOfType != nil && !named.IsValueOfType(raw) {
			return nil, gqlerr.List{gqlerr.New("value %v is not a valid %s", raw, named.Name).AtPath(fc.Path)}
		}
		v, err := named.Serialize(raw)
		if err != nil {
			return nil, gqlerr.List{gqlerr.New("%s", err.Error()).AtPath(fc.Path)}
		}
		return v, nil

	case *Enum:
		ev, ok := named.byValue(raw)
		if !ok {
			return nil, gqlerr.List{gqlerr.New("value %v is not a member of enum %q", raw, named.Name).AtPath(fc.Path)}
		}
		return ev.Name, nil

	case *Object:
		return executeSelectionSet(ctx, fc.Request, subSet, named, unwrapSubscriptionEvent(raw), false, fc, fc.Path)

	case *Interface:
		resolved, attempts := resolveAbstractType(ctx, named.ResolveType, named.PossibleTypes, raw)
		if resolved == nil {
			return nil, gqlerr.List{abstractResolutionFailed(fc, named.Name, attempts)}
		}
		return executeSelectionSet(ctx, fc.Request, subSet, resolved, unwrapSubscriptionEvent(raw), false, fc, fc.Path)

	case *Union:
		resolved, attempts := resolveAbstractType(ctx, named.ResolveType, named.PossibleTypes, raw)
		if resolved == nil {
			return nil, gqlerr.List{abstractResolutionFailed(fc, named.Name, attempts)}
		}
		return executeSelectionSet(ctx, fc.Request, subSet, resolved, unwrapSubscriptionEvent(raw), false, fc, fc.Path)

	default:
		return nil, gqlerr.List{gqlerr.New("type %s is not valid in output position", t).AtPath(fc.Path)}
	}
}

// abstractResolutionFailed builds strategy 6's composite error — one entry
// per exhausted strategy's failure — and logs it (SPEC_FULL.md §10.1: "Error
// when an abstract-type resolution exhausts every strategy").
func abstractResolutionFailed(fc *FieldContext, typeName string, attempts []string) *gqlerr.Error {
	fc.Request.logger.Error("abstract type resolution exhausted every strategy",
		zap.String("type", typeName),
		zap.Strings("attempts", attempts),
		zap.Any("path", fc.Path),
	)
	return gqlerr.New("could not resolve concrete type for abstract type %q: %s", typeName, strings.Join(attempts, "; ")).AtPath(fc.Path)
}

func unwrapSubscriptionEvent(raw interface{}) interface{} {
	if event, ok := raw.(SubscriptionEvent); ok {
		return event.Value
	}
	return raw
}

// completeList implements the List branch of spec.md §4.5.7: items are
// conceptually scheduled concurrently, output order equals input order
// (spec.md §5).
func completeList(ctx context.Context, fc *FieldContext, inner Type, subSet ast.SelectionSet, raw interface{}) (interface{}, gqlerr.List) {
	items, ok := toSlice(raw)
	if !ok {
		return nil, gqlerr.List{gqlerr.New("field %q did not resolve to an iterable value", fc.ResponseKey).AtPath(fc.Path)}
	}

	out := make([]interface{}, len(items))
	errLists := make([]gqlerr.List, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		i, item := i, item
		wg.Add(1)
		go func() {
			defer wg.Done()
			itemFC := *fc
			itemFC.Path = fc.childPath(i)
			v, errs := completeValue(ctx, &itemFC, inner, subSet, item)
			out[i] = v
			errLists[i] = errs
		}()
	}
	wg.Wait()

	var all gqlerr.List
	nulled := false
	for i, l := range errLists {
		all = append(all, l...)
		m, isMap := out[i].(map[string]interface{})
		if len(l) > 0 && (out[i] == nil || (isMap && m == nil)) && !IsNullable(inner) {
			nulled = true
		}
	}
	if nulled {
		return nil, all
	}
	return out, all
}

func toSlice(raw interface{}) ([]interface{}, bool) {
	switch v := raw.(type) {
	case []interface{}:
		return v, true
	default:
		return nil, false
	}
}

// resolveAbstractType implements spec.md §4.5.8's six ordered strategies,
// first match wins. On total failure it returns a nil *Object alongside the
// per-strategy failure reasons (strategy 6's "composite error listing each
// attempt's failure").
func resolveAbstractType(ctx context.Context, resolveTypeFn func(ctx context.Context, value interface{}) *Object, possible []*Object, value interface{}) (*Object, []string) {
	var attempts []string

	if resolveTypeFn != nil { // strategy 1
		if t := resolveTypeFn(ctx, value); t != nil {
			return t, nil
		}
		attempts = append(attempts, "resolveType callback returned no match")
	}

	var matches []*Object
	for _, t := range possible { // strategy 2
		if t.IsTypeOf != nil && t.IsTypeOf(value) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		attempts = append(attempts, "no candidate's isTypeOf matched")
	default:
		attempts = append(attempts, fmt.Sprintf("isTypeOf matched more than one candidate: %s", objectNames(matches)))
	}

	if m, ok := value.(map[string]interface{}); ok { // strategy 3
		if name, ok := m["__typename"].(string); ok {
			for _, t := range possible {
				if t.Name == name {
					return t, nil
				}
			}
			attempts = append(attempts, fmt.Sprintf("__typename %q did not match any candidate", name))
		}
	}

	matches = matches[:0]
	for _, t := range possible { // strategy 4
		if nominalMatch(t, value) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		attempts = append(attempts, "no candidate's nominal field check matched")
	default:
		attempts = append(attempts, fmt.Sprintf("nominal field check matched more than one candidate: %s", objectNames(matches)))
	}

	for _, t := range possible { // strategy 5: first success wins, not exactly-one
		if structuralSerializeMatch(t, value) {
			return t, nil
		}
	}
	attempts = append(attempts, "no candidate's serialize+validate check succeeded")

	return nil, attempts // strategy 6
}

// nominalMatch is a best-effort structural fallback (strategy 4): a map
// carrying every one of the candidate's field names is treated as a match.
func nominalMatch(t *Object, value interface{}) bool {
	m, ok := value.(map[string]interface{})
	if !ok {
		return false
	}
	for name := range t.Fields {
		if _, ok := m[name]; !ok {
			return false
		}
	}
	return len(t.Fields) > 0
}

// structuralSerializeMatch is strategy 5: serialize value the same way
// resolver dispatch step 4 would (registered Serializer, or struct
// reflection), then validate that every one of the candidate's non-null
// fields is present in the result.
func structuralSerializeMatch(t *Object, value interface{}) bool {
	m, ok := serializeObject(t, value)
	if !ok {
		return false
	}
	for name, f := range t.Fields {
		if _, isNonNull := f.Type.(*NonNull); isNonNull {
			if _, present := lookupFieldCI(m, name); !present {
				return false
			}
		}
	}
	return true
}

func objectNames(objs []*Object) string {
	names := make([]string, len(objs))
	for i, o := range objs {
		names[i] = o.Name
	}
	return strings.Join(names, ", ")
}
