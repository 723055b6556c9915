package datapath

import (
	"fmt"

	"FlowVigil/internal/config"
	"FlowVigil/internal/model"
	"FlowVigil/internal/registry"
)

// Deps are the engine hooks a datapath feeds. Learn hands a freshly paired
// flow to the flow table, MarkShort flags an entry for the short flow fast
// path. Both are called from the datapath's own goroutine and must queue
// rather than touch the table directly.
type Deps struct {
	Registry  *registry.Registry
	VRFID     uint32
	Learn     func(fwd, rev *model.FlowEntry)
	MarkShort func(handle uint32)
}

// Factory defines a function that creates one datapath type.
type Factory func(cfg config.DatapathConfig, deps Deps) (model.Datapath, error)

// factories holds the mapping of datapath types to their factory functions.
var factories = make(map[string]Factory)

// Register registers a new datapath type with its factory function.
func Register(name string, factory Factory) {
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("datapath type '%s' already registered", name))
	}
	factories[name] = factory
}

// Create creates the datapath selected by the configuration.
func Create(cfg config.DatapathConfig, deps Deps) (model.Datapath, error) {
	factory, ok := factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown datapath type: '%s'", cfg.Type)
	}
	return factory(cfg, deps)
}
