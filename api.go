// Package pbcodec inspects protobuf wire data. It walks an encoded message
// with wire.Reader and, when a schema is loaded, labels every field with its
// declared name and type and recurses into nested messages.
package pbcodec

import (
	"github.com/anirudhraja/pbcodec/registry"
	"github.com/anirudhraja/pbcodec/schema"
	"github.com/anirudhraja/pbcodec/wire"
)

// DefaultMaxDepth bounds recursion into nested messages.
const DefaultMaxDepth = 64

// Inspector renders encoded messages as field trees.
type Inspector struct {
	registry *registry.Registry
	maxDepth int
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithMaxDepth limits how deep nested messages are expanded.
func WithMaxDepth(depth int) Option {
	return func(p *Inspector) { p.maxDepth = depth }
}

// WithRegistry uses an already loaded registry.
func WithRegistry(r *registry.Registry) Option {
	return func(p *Inspector) { p.registry = r }
}

// New creates a new Inspector with an empty registry.
func New(opts ...Option) *Inspector {
	p := &Inspector{
		registry: registry.NewRegistry(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadSchema loads a .proto file (with its imports) or a directory of them.
func (p *Inspector) LoadSchema(path string) error {
	return p.registry.LoadSchema(path)
}

// Inspect decodes data as messageType. An empty messageType inspects the
// data without a schema, guessing which length-delimited payloads are
// nested messages.
func (p *Inspector) Inspect(data []byte, messageType string) (*Node, error) {
	var msg *schema.Message
	if messageType != "" {
		var err error
		if msg, err = p.registry.GetMessage(messageType); err != nil {
			return nil, err
		}
	}

	root := &Node{Name: messageType, TypeName: messageType, Span: wire.Span{Length: len(data)}}
	if msg != nil {
		root.TypeName = msg.FullName
	}
	children, err := p.inspectMessage(data, wire.NewReader(data), msg, 0)
	if err != nil {
		return nil, err
	}
	root.Children = children
	return root, nil
}

// ===== REGISTRY ACCESS =====

func (p *Inspector) GetRegistry() *registry.Registry { return p.registry }
func (p *Inspector) ListMessages() []string          { return p.registry.ListMessages() }
func (p *Inspector) ListEnums() []string             { return p.registry.ListEnums() }
