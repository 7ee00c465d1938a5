package trex

import (
	"context"
)

// T is the capability object handed to every callable. It is the only way
// user code interacts with the engine: invoking a name resolves that name as
// a new render over a copy of the current call stack, so sibling invocations
// never corrupt each other's frames.
type T struct {
	renderer *renderer
	stack    []Frame
}

// newT binds a capability object to the current call frame.
func newT(r *renderer, stack []Frame) *T {
	return &T{
		renderer: r,
		stack:    stack,
	}
}

// Call resolves a name - ordinary entry or meta-location - with the given
// positional parameters.
func (t *T) Call(ctx context.Context, name string, args ...any) (any, error) {
	return t.renderer.render(ctx, copyStack(t.stack), name, args...)
}

// Parent re-resolves the calling frame's entry starting at the next-more-root
// provider. An optional leading string argument is a target provider id to
// walk to before resolving; all further arguments are passed to the resolved
// entry.
func (t *T) Parent(ctx context.Context, args ...any) (any, error) {
	return t.Call(ctx, LocationParent, args...)
}

// Iterate renders target once per element of seq, invoking it with
// (element, index, sequence, extra...). It returns the per-element results in
// iteration order.
func (t *T) Iterate(ctx context.Context, target string, seq any, extra ...any) ([]any, error) {
	args := append([]any{target, seq}, extra...)
	out, err := t.Call(ctx, LocationIterate, args...)
	if err != nil {
		return nil, err
	}
	results, ok := out.([]any)
	if !ok {
		// a 404/500 override replaced the iterate result
		return []any{out}, nil
	}
	return results, nil
}

// Debug returns the read-mostly debug view bound to the current stack.
func (t *T) Debug() *DebugView {
	return t.renderer.debugView(copyStack(t.stack))
}

// Stack returns a copy of the current call stack, head-first.
func (t *T) Stack() []Frame {
	return copyStack(t.stack)
}
