package trex

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// DebugRecord is the per-render state behind the "debug" meta-location. It
// holds the original chains, the entrypoint, a render-invocation id for log
// correlation, and the mutable debug-marks flag.
//
// The debug-marks flag is shared across all branches of one render; sibling
// branches that toggle it observe each other's writes. Reads and writes are
// atomic, so concurrent sub-renders are safe but not isolated.
type DebugRecord struct {
	renderID      string
	templateChain *Provider
	contextChain  *Provider
	entrypoint    string
	marks         atomic.Bool
}

// newDebugRecord creates the per-render debug state.
func newDebugRecord(template *Provider, contextChain *Provider, entrypoint string, marks bool) *DebugRecord {
	r := &DebugRecord{
		renderID:      uuid.NewString(),
		templateChain: template,
		contextChain:  contextChain,
		entrypoint:    entrypoint,
	}
	r.marks.Store(marks)
	return r
}

// Marks reports whether debug marks are currently active.
func (r *DebugRecord) Marks() bool {
	return r.marks.Load()
}

// SetMarks toggles debug-mark wrapping for the remainder of the render.
func (r *DebugRecord) SetMarks(enabled bool) {
	r.marks.Store(enabled)
}

// Frame is one active callable invocation: the resolved location name and
// the id of the provider that produced the callable.
type Frame struct {
	Location   string
	ProviderID string
}

// copyStack duplicates a call stack so sibling branches never see each
// other's frames.
func copyStack(stack []Frame) []Frame {
	out := make([]Frame, len(stack))
	copy(out, stack)
	return out
}

// stackTrace renders a stack head-first as "name@providerId, name@providerId".
func stackTrace(stack []Frame) string {
	if len(stack) == 0 {
		return ""
	}
	parts := make([]string, len(stack))
	for i, f := range stack {
		parts[i] = fmt.Sprintf(StackFrameFmt, f.Location, f.ProviderID)
	}
	return strings.Join(parts, StackFrameSep)
}

// DebugView is the read-mostly view returned by the "debug" meta-location.
// Field access goes through an explicit Get/Set dispatch; typed accessors are
// provided as sugar on top. Writing any field other than debugMarks fails
// with a terminal error.
type DebugView struct {
	record *DebugRecord
	stack  []Frame
}

// Get reads a debug field by name. Reading "printStack" returns a
// zero-argument function producing the call-stack trace.
func (v *DebugView) Get(field string) (any, error) {
	switch field {
	case DebugFieldTemplateChain:
		return v.record.templateChain, nil
	case DebugFieldContextChain:
		return v.record.contextChain, nil
	case DebugFieldEntrypoint:
		return v.record.entrypoint, nil
	case DebugFieldDebugMarks:
		return v.record.Marks(), nil
	case DebugFieldRenderID:
		return v.record.renderID, nil
	case DebugFieldPrintStack:
		stack := v.stack
		return func() string { return stackTrace(stack) }, nil
	default:
		return nil, NewFinalError(ErrMsgDebugUnknown+": "+field, nil)
	}
}

// Set writes a debug field by name. Only "debugMarks" is writable.
func (v *DebugView) Set(field string, value any) error {
	if field != DebugFieldDebugMarks {
		return NewFinalError(ErrMsgDebugReadOnly+": "+field, nil)
	}
	enabled, ok := value.(bool)
	if !ok {
		return NewFinalError(ErrMsgDebugMarksBool, nil)
	}
	v.record.SetMarks(enabled)
	return nil
}

// TemplateChain returns the original template chain head.
func (v *DebugView) TemplateChain() *Provider {
	return v.record.templateChain
}

// ContextChain returns the original context chain head, or nil.
func (v *DebugView) ContextChain() *Provider {
	return v.record.contextChain
}

// Entrypoint returns the entrypoint name of the current render.
func (v *DebugView) Entrypoint() string {
	return v.record.entrypoint
}

// RenderID returns the render-invocation id used in logs.
func (v *DebugView) RenderID() string {
	return v.record.renderID
}

// DebugMarks reports whether debug marks are active.
func (v *DebugView) DebugMarks() bool {
	return v.record.Marks()
}

// SetDebugMarks toggles debug-mark wrapping.
func (v *DebugView) SetDebugMarks(enabled bool) {
	v.record.SetMarks(enabled)
}

// PrintStack returns the call-stack trace at the point the view was taken.
func (v *DebugView) PrintStack() string {
	return stackTrace(v.stack)
}
