package graphql

import "context"

// resolveFieldFn is the signature of dispatchResolver's core call and of every
// resolveField extension layer wrapping it.
type resolveFieldFn func(ctx context.Context) (interface{}, error)

// Extension is a set of optional middleware hooks (spec.md §4.5.10). A hook
// left nil is a no-op passthrough to next. Hooks compose right-to-left: for
// extensions [A, B, C], the executor calls A(next=B(next=C(next=core))), so A
// runs outermost. This generalizes the teacher's single HTTP-bound
// HandlerFunc/MiddlewareFunc chain (middlerware.go) into per-stage hooks the
// core engine itself invokes, independent of any transport.
type Extension struct {
	Name string

	// ExecuteRequest wraps the whole Execute call; Subscribe does not run it.
	ExecuteRequest func(ctx context.Context, next func(context.Context) *Response) *Response
	// ResolveField wraps dispatchResolver for one field.
	ResolveField func(ctx context.Context, fc *FieldContext, next resolveFieldFn) (interface{}, error)
}

// chainResolveField composes exts' ResolveField hooks right-to-left around
// the core resolver call; dispatchResolver supplies the innermost "core"
// wrapped separately, so this returns a function taking (ctx, fc, core).
func chainResolveField(exts []*Extension) func(ctx context.Context, fc *FieldContext, core resolveFieldFn) (interface{}, error) {
	return func(ctx context.Context, fc *FieldContext, core resolveFieldFn) (interface{}, error) {
		next := core
		for i := len(exts) - 1; i >= 0; i-- {
			ext := exts[i]
			if ext.ResolveField == nil {
				continue
			}
			prevNext := next
			hook := ext.ResolveField
			next = func(ctx context.Context) (interface{}, error) {
				return hook(ctx, fc, prevNext)
			}
		}
		return next(ctx)
	}
}

// chainExecuteRequest composes exts' ExecuteRequest hooks right-to-left
// around core.
func chainExecuteRequest(exts []*Extension, core func(context.Context) *Response) func(context.Context) *Response {
	next := core
	for i := len(exts) - 1; i >= 0; i-- {
		ext := exts[i]
		if ext.ExecuteRequest == nil {
			continue
		}
		prevNext := next
		hook := ext.ExecuteRequest
		next = func(ctx context.Context) *Response {
			return hook(ctx, prevNext)
		}
	}
	return next
}
