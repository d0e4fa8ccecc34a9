package component

import (
	"fmt"
	"log/slog"
	"sort"
)

// Registry holds the factories for every registered component kind, keyed by
// the type identifier that appears in configuration fragments.
type Registry struct {
	sources          map[string]func() SourceConfig
	transforms       map[string]func() TransformConfig
	sinks            map[string]func() SinkConfig
	enrichmentTables map[string]func() EnrichmentTableConfig
	providers        map[string]func() ProviderConfig
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources:          make(map[string]func() SourceConfig),
		transforms:       make(map[string]func() TransformConfig),
		sinks:            make(map[string]func() SinkConfig),
		enrichmentTables: make(map[string]func() EnrichmentTableConfig),
		providers:        make(map[string]func() ProviderConfig),
	}
}

// Default is the process-wide registry the built-in component packages
// register into at init time. The fragment decoders resolve type names
// against it.
var Default = NewRegistry()

// RegisterSource registers a source factory under the given type name.
func (r *Registry) RegisterSource(name string, factory func() SourceConfig) {
	if _, exists := r.sources[name]; exists {
		panic(fmt.Sprintf("source type %q already registered", name))
	}
	slog.Debug("Registering source type.", "name", name)
	r.sources[name] = factory
}

// RegisterTransform registers a transform factory under the given type name.
func (r *Registry) RegisterTransform(name string, factory func() TransformConfig) {
	if _, exists := r.transforms[name]; exists {
		panic(fmt.Sprintf("transform type %q already registered", name))
	}
	slog.Debug("Registering transform type.", "name", name)
	r.transforms[name] = factory
}

// RegisterSink registers a sink factory under the given type name.
func (r *Registry) RegisterSink(name string, factory func() SinkConfig) {
	if _, exists := r.sinks[name]; exists {
		panic(fmt.Sprintf("sink type %q already registered", name))
	}
	slog.Debug("Registering sink type.", "name", name)
	r.sinks[name] = factory
}

// RegisterEnrichmentTable registers an enrichment table factory under the
// given type name.
func (r *Registry) RegisterEnrichmentTable(name string, factory func() EnrichmentTableConfig) {
	if _, exists := r.enrichmentTables[name]; exists {
		panic(fmt.Sprintf("enrichment table type %q already registered", name))
	}
	slog.Debug("Registering enrichment table type.", "name", name)
	r.enrichmentTables[name] = factory
}

// RegisterProvider registers a provider factory under the given type name.
func (r *Registry) RegisterProvider(name string, factory func() ProviderConfig) {
	if _, exists := r.providers[name]; exists {
		panic(fmt.Sprintf("provider type %q already registered", name))
	}
	slog.Debug("Registering provider type.", "name", name)
	r.providers[name] = factory
}

// NewSource instantiates a fresh config struct for the named source type.
func (r *Registry) NewSource(name string) (SourceConfig, error) {
	factory, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source type %q", name)
	}
	return factory(), nil
}

// NewTransform instantiates a fresh config struct for the named transform type.
func (r *Registry) NewTransform(name string) (TransformConfig, error) {
	factory, ok := r.transforms[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform type %q", name)
	}
	return factory(), nil
}

// NewSink instantiates a fresh config struct for the named sink type.
func (r *Registry) NewSink(name string) (SinkConfig, error) {
	factory, ok := r.sinks[name]
	if !ok {
		return nil, fmt.Errorf("unknown sink type %q", name)
	}
	return factory(), nil
}

// NewEnrichmentTable instantiates a fresh config struct for the named
// enrichment table type.
func (r *Registry) NewEnrichmentTable(name string) (EnrichmentTableConfig, error) {
	factory, ok := r.enrichmentTables[name]
	if !ok {
		return nil, fmt.Errorf("unknown enrichment table type %q", name)
	}
	return factory(), nil
}

// NewProvider instantiates a fresh config struct for the named provider type.
func (r *Registry) NewProvider(name string) (ProviderConfig, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider type %q", name)
	}
	return factory(), nil
}

// SourceTypes returns the registered source type names, sorted.
func (r *Registry) SourceTypes() []string {
	names := make([]string, 0, len(r.sources))
	for n := range r.sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
