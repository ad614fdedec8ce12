// Package registry holds the runtime factory builders available to one
// application instance, keyed by the runtime type named in the config file.
package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/simspec/internal/config"
	"github.com/specialistvlad/simspec/internal/runtime"
)

// Module is the interface runtime adapter packages implement to be
// registered with an application instance.
type Module interface {
	Register(r *Registry)
}

// FactoryBuilder turns a runtime config block into a connected Factory.
type FactoryBuilder func(ctx context.Context, cfg *config.Runtime) (runtime.Factory, error)

// Registry maps runtime type names to their factory builders.
type Registry struct {
	builders map[string]FactoryBuilder
}

// New creates an empty Registry and registers the given modules into it.
func New(modules ...Module) *Registry {
	r := &Registry{builders: make(map[string]FactoryBuilder)}
	for _, mod := range modules {
		mod.Register(r)
	}
	return r
}

// RegisterFactory registers a builder under a runtime type name. Registering
// the same name twice is a programmer error and panics.
func (r *Registry) RegisterFactory(typeName string, builder FactoryBuilder) {
	if _, exists := r.builders[typeName]; exists {
		panic(fmt.Sprintf("registry: duplicate runtime type %q", typeName))
	}
	r.builders[typeName] = builder
}

// Build resolves the configured runtime type and constructs its factory.
func (r *Registry) Build(ctx context.Context, cfg *config.Runtime) (runtime.Factory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no runtime block configured")
	}
	builder, ok := r.builders[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown runtime type %q (registered: %v)", cfg.Type, r.Types())
	}
	return builder(ctx, cfg)
}

// Types returns the registered runtime type names, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.builders))
	for name := range r.builders {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
