package trex

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// renderer drives one top-level render: it resolves locations against the
// merged chain, dispatches values vs. callables, handles the reserved
// meta-locations, and redirects misses and failures to the "404" and "500"
// entries.
type renderer struct {
	chain  *ChainProvider
	debug  *DebugRecord
	logger *zap.Logger
}

// Render resolves the entrypoint of the template chain, optionally layered
// under a context chain. The default entrypoint is "main".
//
// A missing entry with no "404" override, or an error escaping "500"
// handling, surfaces as a terminal error whose message embeds the rendering
// stack trace. When the terminal error chains an underlying error, the
// underlying error is what the caller observes, its message amended with the
// terminal message after " --> ".
func Render(ctx context.Context, template *Provider, opts ...Option) (any, error) {
	config := defaultRenderConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	chain, err := NewChainProvider(template, config.contextChain, logger)
	if err != nil {
		return nil, err
	}

	record := newDebugRecord(template, config.contextChain, config.entrypoint, config.debugMarks)
	logger = logger.With(zap.String(LogFieldRenderID, record.renderID))
	logger.Debug(LogMsgRenderStart, zap.String(LogFieldEntrypoint, config.entrypoint))

	r := &renderer{
		chain:  chain,
		debug:  record,
		logger: logger,
	}

	out, err := r.render(ctx, nil, config.entrypoint)
	if err != nil {
		return nil, unwrapFinal(err)
	}
	logger.Debug(LogMsgRenderEnd, zap.String(LogFieldEntrypoint, config.entrypoint))
	return out, nil
}

// render is the recursive resolution step. Any failure that is not already
// terminal and did not occur while handling "500" is redirected once to the
// "500" entry with (location, error, params...). The redirect uses the stack
// at the point of failure, so a failing callable's own frame is visible to
// the error handler's trace.
func (r *renderer) render(ctx context.Context, stack []Frame, location string, params ...any) (any, error) {
	out, errStack, err := r.dispatch(ctx, stack, location, params...)
	if err == nil {
		return out, nil
	}
	if IsFinalError(err) || location == LocationError {
		return nil, err
	}

	r.logger.Debug(LogMsgRedirectError,
		zap.String(LogFieldLocation, location),
		zap.String(LogFieldErrorMsg, err.Error()))
	args := append([]any{location, err}, params...)
	return r.render(ctx, copyStack(errStack), LocationError, args...)
}

// dispatch routes a location to its meta behavior or to ordinary resolution.
// On failure it also reports the stack the failure occurred under.
func (r *renderer) dispatch(ctx context.Context, stack []Frame, location string, params ...any) (any, []Frame, error) {
	switch location {
	case LocationDebug:
		return r.debugView(stack), nil, nil
	case LocationIterate:
		out, err := r.iterate(ctx, stack, params...)
		return out, stack, err
	case LocationParent:
		return r.parentCall(ctx, stack, params...)
	default:
		return r.resolveAt(ctx, stack, location, "", params...)
	}
}

// resolveAt looks a location up from the merged leaf, or from a specific
// provider's layer when startID is set, and dispatches on the value kind.
func (r *renderer) resolveAt(ctx context.Context, stack []Frame, location string, startID string, params ...any) (any, []Frame, error) {
	var ownerID string
	var value any
	var found bool
	if startID == "" {
		ownerID, value, found = r.chain.Get(location)
	} else {
		ownerID, value, found = r.chain.GetAt(location, startID)
	}
	if !found {
		r.logger.Debug(LogMsgLocationMiss,
			zap.String(LogFieldLocation, location),
			zap.String(LogFieldStartID, startID))
		out, err := r.notFound(ctx, stack, location, startID, params)
		return out, stack, err
	}

	callable, isCallable := asCallable(value)
	if !isCallable {
		r.logger.Debug(LogMsgValueResolved,
			zap.String(LogFieldLocation, location),
			zap.String(LogFieldProviderID, ownerID))
		forced, err := r.force(ctx, value)
		if err != nil {
			return nil, stack, err
		}
		return r.mark(forced, location, ownerID), nil, nil
	}

	frame := Frame{Location: location, ProviderID: ownerID}
	callStack := append([]Frame{frame}, copyStack(stack)...)
	r.logger.Debug(LogMsgCallableInvoked,
		zap.String(LogFieldLocation, location),
		zap.String(LogFieldProviderID, ownerID),
		zap.Int(LogFieldDepth, len(callStack)))

	out, err := callable(ctx, newT(r, callStack), params...)
	if err == nil {
		out, err = r.force(ctx, out)
	}
	if err != nil {
		return nil, callStack, err
	}

	r.logger.Debug(LogMsgCallableDone,
		zap.String(LogFieldLocation, location),
		zap.String(LogFieldProviderID, ownerID))
	return r.mark(out, location, ownerID), nil, nil
}

// notFound redirects a miss to the "404" entry with (name, startID,
// params...). A miss while already at "404" is terminal; a miss at "500"
// with an error parameter chains that error into the terminal result so a
// broken or missing "500" override cannot loop.
func (r *renderer) notFound(ctx context.Context, stack []Frame, location string, startID string, params []any) (any, error) {
	if location == LocationError && len(params) >= 2 {
		if cause, ok := params[1].(error); ok {
			return nil, newTerminalStackError(stackTrace(stack), cause)
		}
	}
	if location == LocationNotFound {
		name := location
		if len(params) > 0 {
			if s, ok := params[0].(string); ok {
				name = s
			}
		}
		return nil, newNotFoundFinalError(name, stackTrace(stack))
	}

	r.logger.Debug(LogMsgRedirectMiss,
		zap.String(LogFieldLocation, location),
		zap.String(LogFieldStartID, startID))
	var startArg any
	if startID != "" {
		startArg = startID
	}
	args := append([]any{location, startArg}, params...)
	return r.render(ctx, copyStack(stack), LocationNotFound, args...)
}

// iterate materializes a sequence and renders the target location once per
// element with (element, index, sequence, extra...), each over its own copy
// of the call stack. Results are returned in iteration order; an error in
// one element render propagates from that element's own render call.
func (r *renderer) iterate(ctx context.Context, stack []Frame, params ...any) (any, error) {
	if len(params) < 2 {
		return nil, newIterateError(ErrMsgIterateArgs)
	}
	target, ok := params[0].(string)
	if !ok {
		return nil, newIterateError(ErrMsgIterateTarget)
	}
	seq, ok := materialize(params[1])
	if !ok {
		return nil, newNotIterableError(params[1])
	}
	extra := params[2:]

	r.logger.Debug(LogMsgIterateStart,
		zap.String(LogFieldLocation, target),
		zap.Int(LogFieldElements, len(seq)))

	results := make([]any, 0, len(seq))
	for i, element := range seq {
		args := make([]any, 0, len(extra)+3)
		args = append(args, element, i, seq)
		args = append(args, extra...)
		out, err := r.render(ctx, copyStack(stack), target, args...)
		if err != nil {
			return nil, err
		}
		results = append(results, out)
	}

	r.logger.Debug(LogMsgIterateEnd, zap.String(LogFieldLocation, target))
	return results, nil
}

// parentCall resolves the calling frame's entry starting at the next-more-
// root provider. A leading string parameter is a target id: the walk repeats
// until the target is reached or runs off the combined root, in which case
// resolution proceeds through the standard not-found path.
func (r *renderer) parentCall(ctx context.Context, stack []Frame, params ...any) (any, []Frame, error) {
	if len(stack) == 0 {
		return nil, stack, newParentNoFrameError()
	}
	head := stack[0]
	ancestorID, ok := r.chain.NextID(head.ProviderID)

	rest := params
	if len(params) > 0 {
		if target, isString := params[0].(string); isString && target != "" {
			rest = params[1:]
			for ok && ancestorID != target {
				ancestorID, ok = r.chain.NextID(ancestorID)
			}
			r.logger.Debug(LogMsgParentWalk,
				zap.String(LogFieldLocation, head.Location),
				zap.String(LogFieldTargetID, target),
				zap.String(LogFieldStartID, ancestorID))
		} else if params[0] == nil {
			rest = params[1:]
		}
	}

	if !ok {
		out, err := r.notFound(ctx, stack, head.Location, "", rest)
		return out, stack, err
	}
	return r.resolveAt(ctx, stack, head.Location, ancestorID, rest...)
}

// force resolves a Deferred result; immediate values pass through untouched.
func (r *renderer) force(ctx context.Context, value any) (any, error) {
	deferred, ok := asDeferred(value)
	if !ok {
		return value, nil
	}
	return deferred(ctx)
}

// mark wraps string output in the matched debug-mark comment pair when marks
// are active. Non-string values are returned unwrapped.
func (r *renderer) mark(value any, location string, providerID string) any {
	if !r.debug.Marks() {
		return value
	}
	s, ok := value.(string)
	if !ok {
		return value
	}
	opening := fmt.Sprintf(DebugMarkOpenFmt, location, providerID)
	closing := fmt.Sprintf(DebugMarkCloseFmt, location, providerID)
	return opening + s + closing
}

// debugView binds a read-mostly view of the debug record to a stack.
func (r *renderer) debugView(stack []Frame) *DebugView {
	return &DebugView{
		record: r.debug,
		stack:  copyStack(stack),
	}
}
