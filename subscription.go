package graphql

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"

	"github.com/graphkit-io/graphql/gqlerr"
)

// SubscriptionEvent wraps one source event so dispatchResolver's step 1
// (spec.md §4.5.6) can recognize "this object is a raw event, not a resolved
// domain value" and hand it straight to the subscription root field without
// a resolve function.
type SubscriptionEvent struct {
	Value interface{}
}

// Subscribe implements spec.md §4.5.9: resolves the single subscription root
// field, coerces its arguments, obtains a source event stream, and returns a
// channel of one Response per source event. The returned channel is closed
// once the source stream is exhausted or ctx is cancelled; callers must drain
// it to avoid leaking the goroutine driving it.
func Subscribe(ctx context.Context, schema *Schema, doc *Document, req Request, config EngineConfig, exts []*Extension) (<-chan *Response, gqlerr.List) {
	op, opErr := doc.OperationByName(req.OperationName)
	if opErr != nil {
		return nil, gqlerr.List{opErr}
	}
	if op.Operation != ast.Subscription {
		return nil, gqlerr.List{gqlerr.New("use Execute for query/mutation operations")}
	}

	if config.ValidationEnabled {
		if errs := Validate(schema, doc); len(errs) > 0 {
			return nil, errs
		}
	}
	if len(op.SelectionSet) != 1 {
		return nil, gqlerr.List{gqlerr.New("subscription operations must select exactly one top-level field")}
	}

	vars, varErrs := coerceVariables(op.VariableDefinitions, schema, req.Variables)
	if len(varErrs) > 0 {
		return nil, varErrs
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

	root := schema.Subscription
	if root == nil {
		return nil, gqlerr.List{gqlerr.New("schema does not define a subscription root type")}
	}

	node := op.SelectionSet[0].(*ast.Field)
	field, ok := root.Fields[node.Name]
	if !ok {
		return nil, gqlerr.List{gqlerr.At(node.Position, "FieldsOnCorrectType", "field %q does not exist on subscription root", node.Name)}
	}

	args, argErr := coerceArguments(state, field, node)
	if argErr != nil {
		return nil, gqlerr.List{argErr}
	}

	stream, err := obtainEventStream(ctx, field, req.RootValue, args)
	if err != nil {
		return nil, gqlerr.List{gqlerr.Internal(err)}
	}

	out := make(chan *Response)
	go runSubscription(ctx, state, node, field, stream, out)
	return out, nil
}

// obtainEventStream calls the field's subscribe function (or falls back to
// resolve) and wraps a non-stream result as a single-element stream.
func obtainEventStream(ctx context.Context, field *Field, source interface{}, args map[string]interface{}) (EventStream, error) {
	if field.Subscribe != nil {
		return field.Subscribe(ctx, source, args)
	}
	if field.Resolve != nil {
		value, err := extractResult(field.Resolve(ctx, source, args))
		if err != nil {
			return nil, err
		}
		if stream, ok := value.(EventStream); ok {
			return stream, nil
		}
		events := make(chan interface{}, 1)
		events <- value
		close(events)
		return NewChannelEventStream(events, nil), nil
	}
	return nil, gqlerr.New("subscription field %q defines neither subscribe nor resolve", field.Name)
}

// runSubscription drives one source event at a time through a fresh child
// scope, producing one Response per event; per-event errors are reported
// inside that event's response and do not terminate the stream (spec.md §4.5.9).
func runSubscription(ctx context.Context, state *requestState, node *ast.Field, field *Field, stream EventStream, out chan<- *Response) {
	defer close(out)
	defer stream.Close()

	for {
		event, ok, err := stream.Next(ctx)
		if err != nil {
			out <- &Response{Errors: gqlerr.List{gqlerr.Internal(err)}, DidExecute: true}
			return
		}
		if !ok {
			return
		}

		eventScope := state.scope.Child()
		eventState := &requestState{
			schema:     state.schema,
			doc:        state.doc,
			operation:  state.operation,
			variables:  state.variables,
			extensions: state.extensions,
			scope:      eventScope,
			config:     state.config,
			exts:       state.exts,
			logger:     state.logger,
		}

		wrapped := SubscriptionEvent{Value: event}
		data, errs := executeSelectionSet(ctx, eventState, ast.SelectionSet{node}, state.schema.Subscription, wrapped, false, nil, nil)

		select {
		case out <- &Response{Data: data, Errors: errs, DidExecute: true}:
		case <-ctx.Done():
			return
		}
	}
}
