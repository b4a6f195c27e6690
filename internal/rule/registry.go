package rule

import (
	"fmt"
	"sort"
)

// Registry holds the rules available to one linter instance. It is built at
// setup time and must not be mutated once linting starts; there is no
// package-level registry, so multiple instances with different rule sets
// coexist in one process.
type Registry struct {
	rules map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule; a duplicate id is an error.
func (r *Registry) Register(rl Rule) error {
	id := rl.Meta().ID
	if id == "" {
		return fmt.Errorf("rule has empty id")
	}
	if _, exists := r.rules[id]; exists {
		return fmt.Errorf("rule %q already registered", id)
	}
	r.rules[id] = rl
	return nil
}

// MustRegister panics on a duplicate id; intended for built-in setup.
func (r *Registry) MustRegister(rules ...Rule) *Registry {
	for _, rl := range rules {
		if err := r.Register(rl); err != nil {
			panic(err)
		}
	}
	return r
}

// Get looks a rule up by id.
func (r *Registry) Get(id string) (Rule, bool) {
	rl, ok := r.rules[id]
	return rl, ok
}

// IDs returns all registered ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports the number of registered rules.
func (r *Registry) Len() int { return len(r.rules) }
