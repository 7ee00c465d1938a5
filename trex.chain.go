package trex

import (
	"go.uber.org/zap"
)

// layerEntry is one merged-lookup entry tagged with the id of the provider
// that defined it.
type layerEntry struct {
	ownerID string
	value   any
}

// layer is the merged-lookup contribution of a single provider. Lookup walks
// from a layer toward the root via parent; each layer shadows identically
// named entries of more-root layers.
type layer struct {
	id      string
	entries map[string]layerEntry
	parent  *layer
}

// ChainProvider merges a template chain and an optional context chain into a
// single layered lookup, queryable by name from the merged leaf or from any
// provider's layer, with id-to-parent-id navigation across the combined
// ordering.
//
// The combined ordering is root-first: template root to template leaf, then
// context root to context leaf. Context layers sit nearest the merged leaf,
// which is what gives the context chain precedence as a group.
type ChainProvider struct {
	leaf   *layer
	byID   map[string]*layer
	logger *zap.Logger
}

// NewChainProvider validates both chains and folds them into the merged
// layered lookup. The template chain is required; the context chain may be
// nil. Construction fails with a validation error on the first provider
// without a string id and on any id duplicated across the merged chain.
func NewChainProvider(template *Provider, contextChain *Provider, logger *zap.Logger) (*ChainProvider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if template == nil {
		return nil, newNilTemplateError()
	}

	if err := validateChain(template, ChainKindTemplate); err != nil {
		return nil, err
	}
	if contextChain != nil {
		if err := validateChain(contextChain, ChainKindContext); err != nil {
			return nil, err
		}
	}

	c := &ChainProvider{
		byID:   make(map[string]*layer),
		logger: logger,
	}

	for _, p := range chainRootFirst(template) {
		if err := c.fold(p); err != nil {
			return nil, err
		}
	}
	if contextChain != nil {
		for _, p := range chainRootFirst(contextChain) {
			if err := c.fold(p); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug(LogMsgChainBuilt, zap.Int(LogFieldLayers, len(c.byID)))
	return c, nil
}

// fold adds one provider as the new merged leaf. The provider's own entries
// are copied in tagged with its id; the reserved "parent" key is stripped.
func (c *ChainProvider) fold(p *Provider) error {
	if _, exists := c.byID[p.ID]; exists {
		return newDuplicateIDError(p.ID)
	}

	l := &layer{
		id:      p.ID,
		entries: make(map[string]layerEntry, len(p.Entries)),
		parent:  c.leaf,
	}
	for name, value := range p.Entries {
		if name == EntryKeyParent {
			continue
		}
		l.entries[name] = layerEntry{ownerID: p.ID, value: value}
	}

	c.byID[p.ID] = l
	c.leaf = l
	c.logger.Debug(LogMsgLayerFolded, zap.String(LogFieldProviderID, p.ID))
	return nil
}

// Get resolves a name from the merged leaf - the full merged view.
// It returns the id of the provider that defined the value, the value, and
// whether anything was found.
func (c *ChainProvider) Get(name string) (string, any, bool) {
	return lookupFrom(c.leaf, name)
}

// GetAt resolves a name starting at the layer of the given provider id,
// searching toward the root. An unknown id resolves nothing.
func (c *ChainProvider) GetAt(name string, id string) (string, any, bool) {
	l, ok := c.byID[id]
	if !ok {
		return "", nil, false
	}
	return lookupFrom(l, name)
}

// NextID returns the id of the layer one step toward the root from the given
// provider's layer, in the combined context+template ordering. The second
// result is false at the combined root or for an unknown id.
func (c *ChainProvider) NextID(id string) (string, bool) {
	l, ok := c.byID[id]
	if !ok || l.parent == nil {
		return "", false
	}
	return l.parent.id, true
}

// lookupFrom walks layers from start toward the root and returns the first
// entry for name, tagged with its defining provider id.
func lookupFrom(start *layer, name string) (string, any, bool) {
	for l := start; l != nil; l = l.parent {
		if e, ok := l.entries[name]; ok {
			return e.ownerID, e.value, true
		}
	}
	return "", nil, false
}
