package trex

import (
	"context"
	"reflect"
)

// Provider is a named bag of entries - one node in a chain. Entries hold
// plain values or callables; Parent links toward the chain root.
type Provider struct {
	// ID uniquely identifies the provider across the merged chain
	ID string

	// Parent is the next-more-root provider of the same chain, or nil
	Parent *Provider

	// Entries maps names to plain values or callables. The key "parent"
	// is reserved and never resolvable.
	Entries map[string]any
}

// NewProvider creates a provider with the given id and entries.
// If entries is nil, an empty map is used.
func NewProvider(id string, entries map[string]any) *Provider {
	if entries == nil {
		entries = make(map[string]any)
	}
	return &Provider{
		ID:      id,
		Entries: entries,
	}
}

// WithParent links the provider to its parent and returns the provider for
// chained construction.
func (p *Provider) WithParent(parent *Provider) *Provider {
	p.Parent = parent
	return p
}

// Callable is the function shape of a dynamic entry. It receives the
// capability object bound to the current call frame and the caller's
// positional parameters. The result may be a plain value or a Deferred.
type Callable func(ctx context.Context, t *T, args ...any) (any, error)

// Deferred is a computation whose value is not yet available. The engine
// resolves a Deferred wherever a value may appear; when no Deferred occurs
// anywhere in a render tree, the whole resolution completes without
// suspending.
type Deferred func(ctx context.Context) (any, error)

// Iterable lets user-defined sequence types participate in iterate calls.
type Iterable interface {
	// Elements returns the sequence in iteration order.
	Elements() []any
}

// asCallable extracts a callable from an entry value. Both the named
// Callable type and a bare function literal of the same shape are accepted.
func asCallable(v any) (Callable, bool) {
	switch f := v.(type) {
	case Callable:
		return f, true
	case func(context.Context, *T, ...any) (any, error):
		return f, true
	default:
		return nil, false
	}
}

// asDeferred extracts a deferred computation from a result value.
func asDeferred(v any) (Deferred, bool) {
	switch f := v.(type) {
	case Deferred:
		return f, true
	case func(context.Context) (any, error):
		return f, true
	default:
		return nil, false
	}
}

// materialize converts a value into an ordered []any sequence.
// Supported: []any, Iterable, and any slice or array via reflection.
func materialize(v any) ([]any, bool) {
	switch seq := v.(type) {
	case []any:
		out := make([]any, len(seq))
		copy(out, seq)
		return out, true
	case Iterable:
		return seq.Elements(), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// validateChain walks a chain from its head toward the root, checking that
// every provider carries a string id. The failure message names the
// already-validated child, or the head label when the head itself is bad.
func validateChain(head *Provider, kind string) error {
	childLabel := ChainRootLabel
	for p := head; p != nil; p = p.Parent {
		if p.ID == "" {
			return newMissingIDError(kind, childLabel)
		}
		childLabel = p.ID
	}
	return nil
}

// chainRootFirst flattens a chain into root-first order by walking the
// parent links from the head and reversing.
func chainRootFirst(head *Provider) []*Provider {
	var leafFirst []*Provider
	for p := head; p != nil; p = p.Parent {
		leafFirst = append(leafFirst, p)
	}
	out := make([]*Provider, len(leafFirst))
	for i, p := range leafFirst {
		out[len(out)-1-i] = p
	}
	return out
}
