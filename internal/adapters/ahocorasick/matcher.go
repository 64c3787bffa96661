// Package ahocorasick provides multi-pattern substring matching using an Aho-Corasick automaton.
// It wraps the petar-dambovaliev/aho-corasick library for O(n + m + z) matching and serves
// as the prefilter in front of the keyword trie.
package ahocorasick

import (
	"sync"

	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/corey/flashtext/internal/ports"
)

// Matcher implements ports.Prefilter.
// Build() compiles an automaton; MayMatch() answers in a single pass.
type Matcher struct {
	mu        sync.RWMutex
	automaton aho.AhoCorasick
	patterns  int
	built     bool
}

var _ ports.Prefilter = (*Matcher)(nil)

// NewMatcher builds a matcher from the given keywords.
func NewMatcher(keywords []string) *Matcher {
	m := &Matcher{}
	m.Build(keywords)
	return m
}

// Build compiles the Aho-Corasick automaton from the given keywords.
// Empty keywords are dropped: they would match every text.
func (m *Matcher) Build(keywords []string) {
	kept := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			kept = append(kept, kw)
		}
	}

	var automaton aho.AhoCorasick
	if len(kept) > 0 {
		builder := aho.NewAhoCorasickBuilder(aho.Opts{
			DFA: true,
		})
		automaton = builder.Build(kept)
	}

	m.mu.Lock()
	m.automaton = automaton
	m.patterns = len(kept)
	m.built = true
	m.mu.Unlock()
}

// Rebuild replaces the automaton with a new set of keywords.
func (m *Matcher) Rebuild(keywords []string) {
	m.Build(keywords)
}

// MayMatch reports whether any keyword occurs in text as a substring.
// Stops at the first hit.
func (m *Matcher) MayMatch(text string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.built || m.patterns == 0 || text == "" {
		return false
	}
	iter := m.automaton.IterOverlappingByte([]byte(text))
	return iter.Next() != nil
}
