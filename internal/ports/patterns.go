package ports

// Prefilter answers "could any keyword occur in this text" using
// multi-pattern substring matching (Aho-Corasick). A single pass over the
// text checks every keyword at once, O(n + m + z) where n=text length,
// m=total pattern length, z=number of matches.
//
// A negative answer is exact: no keyword occurs anywhere, so a trie scan
// would find nothing. A positive answer only means a full scan is needed,
// since substring hits ignore word boundaries.
//
// The prefilter must be rebuilt when the keyword set changes. Both the
// keywords and the text are expected to be normalized by the caller.
type Prefilter interface {
	// MayMatch reports whether any keyword occurs in text as a substring.
	// Always false when the keyword set is empty.
	MayMatch(text string) bool

	// Rebuild replaces the entire keyword set and reconstructs the automaton.
	Rebuild(keywords []string)
}
