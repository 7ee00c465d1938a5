// Package trex provides a minimal template-resolution engine over chained
// property providers.
//
// A provider is a named bag of entries - plain values or callables - with an
// optional parent provider. Two independent chains, a template chain and a
// context chain, are merged into a single layered lookup in which context
// entries shadow template entries. Rendering resolves a named entry from the
// merged view and either returns it directly or invokes it.
//
// # Basic Usage
//
// Build a chain and render an entrypoint:
//
//	tmpl := trex.NewProvider("base", map[string]any{
//	    "main": trex.Callable(func(ctx context.Context, t *trex.T, args ...any) (any, error) {
//	        greeting, err := t.Call(ctx, "greeting")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return fmt.Sprintf("%v, world!", greeting), nil
//	    }),
//	    "greeting": "Hello",
//	})
//
//	result, err := trex.Render(ctx, tmpl)
//	// result: "Hello, world!"
//
// # Context Precedence
//
// A context chain overrides template entries without touching the template:
//
//	override := trex.NewProvider("session", map[string]any{"greeting": "Howdy"})
//	result, _ := trex.Render(ctx, tmpl, trex.WithContextChain(override))
//	// result: "Howdy, world!"
//
// # Meta-Locations
//
// The names "debug", "parent", and "iterate" are reserved. "parent" re-resolves
// the calling entry starting at the next-more-root provider, "iterate" renders
// a target entry once per element of a sequence, and "debug" exposes a
// read-mostly view of the render state.
//
// # Error Handling
//
// A missing entry is redirected to the "404" entry, a failed callable to the
// "500" entry. Providers may override either. Without an override the render
// fails with a terminal error embedding the call-stack trace.
//
// # Configuration
//
// Customize a render with functional options:
//
//	result, err := trex.Render(ctx, tmpl,
//	    trex.WithContextChain(session),
//	    trex.WithEntrypoint("page"),
//	    trex.WithDebugMarks(true),
//	    trex.WithLogger(logger),
//	)
package trex
