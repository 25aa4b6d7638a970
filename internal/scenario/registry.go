package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/sparks/internal/config"
)

type Registry struct {
	scenarios map[string]func(*config.Config) Scenario
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios: make(map[string]func(*config.Config) Scenario),
	}

	r.scenarios["fountain"] = func(c *config.Config) Scenario { return NewFountain(c) }
	r.scenarios["eruption"] = func(c *config.Config) Scenario { return NewEruption(c) }
	r.scenarios["race"] = func(c *config.Config) Scenario { return NewRace(c) }
	r.scenarios["bounce"] = func(c *config.Config) Scenario { return NewBounce(c) }

	return r
}

func (r *Registry) Get(name string, cfg *config.Config) (Scenario, error) {
	fn, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	return fn(cfg), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
