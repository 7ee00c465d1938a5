package trex

import (
	"github.com/itsatony/go-cuserr"
	"gopkg.in/yaml.v3"
)

// YAML chain codec error messages
const (
	ErrMsgYAMLDecodeFailed  = "chain YAML decoding failed"
	ErrMsgYAMLEmptyChain    = "chain YAML defines no providers"
	ErrMsgYAMLEncodeFailed  = "chain YAML encoding failed"
	ErrMsgYAMLCallableEntry = "callable entries cannot be serialized"
)

// providerDoc is the YAML shape of one provider in a chain definition.
type providerDoc struct {
	ID      string         `yaml:"id"`
	Entries map[string]any `yaml:"entries,omitempty"`
}

// ParseChainYAML builds a provider chain from a YAML definition. The
// document is a list of providers in root-first order; each provider becomes
// the parent of the one after it. The returned provider is the chain head
// (the leaf). Entries are plain values only - callables are Go code and
// cannot appear in a definition file.
//
//	- id: base
//	  entries:
//	    greeting: Hello
//	- id: site
//	  entries:
//	    greeting: Howdy
func ParseChainYAML(data []byte) (*Provider, error) {
	var docs []providerDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, cuserr.WrapStdError(err, ErrCodeYAML, ErrMsgYAMLDecodeFailed)
	}
	if len(docs) == 0 {
		return nil, cuserr.NewValidationError(ErrCodeYAML, ErrMsgYAMLEmptyChain)
	}

	var head *Provider
	for _, doc := range docs {
		head = NewProvider(doc.ID, doc.Entries).WithParent(head)
	}
	return head, nil
}

// MarshalChainYAML serializes a data-only chain back to its YAML definition,
// root first. Chains carrying callable entries cannot be serialized.
func MarshalChainYAML(head *Provider) ([]byte, error) {
	if head == nil {
		return nil, newNilTemplateError()
	}

	providers := chainRootFirst(head)
	docs := make([]providerDoc, 0, len(providers))
	for _, p := range providers {
		for name, value := range p.Entries {
			if _, isCallable := asCallable(value); isCallable {
				return nil, cuserr.NewValidationError(ErrCodeYAML, ErrMsgYAMLCallableEntry).
					WithMetadata(MetaKeyProviderID, p.ID).
					WithMetadata(MetaKeyLocation, name)
			}
		}
		docs = append(docs, providerDoc{ID: p.ID, Entries: p.Entries})
	}

	out, err := yaml.Marshal(docs)
	if err != nil {
		return nil, cuserr.WrapStdError(err, ErrCodeYAML, ErrMsgYAMLEncodeFailed)
	}
	return out, nil
}
