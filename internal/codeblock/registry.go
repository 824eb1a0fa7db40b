package codeblock

import (
	"strings"
	"sync"
)

// Registry is a read-mostly table of strategies keyed by primary
// language name, with alias resolution via a linear scan over the
// (small) registered set. The registry is safe to share across
// goroutines: a single mutex guards both Register and Lookup.
type Registry struct {
	mu      sync.Mutex
	byName  map[string]Strategy
	order   []string // registration order, for deterministic lookup ties
	fallback Strategy
}

// NewRegistry returns a Registry with every built-in strategy already
// registered and DefaultStrategy set as the fallback.
func NewRegistry() *Registry {
	r := &Registry{byName: map[string]Strategy{}}
	def := NewDefaultStrategy()
	r.fallback = def
	r.Register(def)
	r.Register(NewRustStrategy())
	r.Register(NewBashStrategy())
	r.Register(NewNoteStrategy(""))
	return r
}

// Register inserts or overwrites a strategy by its primary language
// name.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := strings.ToLower(s.PrimaryLanguageName())
	if _, exists := r.byName[name]; !exists {
		r.order = append(r.order, name)
	}
	r.byName[name] = s
}

// Lookup normalizes language to lowercase and returns the
// highest-priority registered strategy whose SupportsLanguage reports
// true for it. If none match, it returns the default strategy.
func (r *Registry) Lookup(language string) Strategy {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return r.fallback
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Fast path: the common case of an exact primary-name hit.
	if s, ok := r.byName[language]; ok {
		best := s
		for _, name := range r.order {
			cand := r.byName[name]
			if cand.SupportsLanguage(language) && cand.Priority() > best.Priority() {
				best = cand
			}
		}
		return best
	}

	var best Strategy
	for _, name := range r.order {
		cand := r.byName[name]
		if !cand.SupportsLanguage(language) {
			continue
		}
		if best == nil || cand.Priority() > best.Priority() {
			best = cand
		}
	}
	if best == nil {
		return r.fallback
	}
	return best
}
