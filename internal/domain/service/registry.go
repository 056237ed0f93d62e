package service

import (
	"fmt"
	"slices"
)

// Registry holds the loaded pipelines by variant name. It is built once at
// startup and read concurrently afterwards.
type Registry struct {
	pipelines   map[string]*Pipeline
	defaultName string
	order       []string
}

// NewRegistry indexes pipelines. defaultName must be one of them.
func NewRegistry(defaultName string, pipelines ...*Pipeline) (*Registry, error) {
	r := &Registry{
		pipelines:   make(map[string]*Pipeline, len(pipelines)),
		defaultName: defaultName,
	}
	for _, p := range pipelines {
		name := p.Variant().Name
		if _, dup := r.pipelines[name]; dup {
			return nil, fmt.Errorf("variant %s registered twice", name)
		}
		r.pipelines[name] = p
		r.order = append(r.order, name)
	}
	if _, ok := r.pipelines[defaultName]; !ok {
		return nil, fmt.Errorf("default %w: %q", ErrUnknownVariant, defaultName)
	}
	return r, nil
}

// Pipeline returns the pipeline for name. An empty name selects the default.
func (r *Registry) Pipeline(name string) (*Pipeline, error) {
	if name == "" {
		name = r.defaultName
	}
	p, ok := r.pipelines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return p, nil
}

// DefaultVariant returns the name served when a request names none.
func (r *Registry) DefaultVariant() string { return r.defaultName }

// Names returns the registered variant names in registration order.
func (r *Registry) Names() []string { return slices.Clone(r.order) }

// Variants returns the registered variants in registration order.
func (r *Registry) Variants() []Variant {
	out := make([]Variant, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.pipelines[name].Variant())
	}
	return out
}
