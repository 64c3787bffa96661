// Package keyword finds and substitutes many keywords in free text with a
// single pass over the input. Keywords live in a character trie; a scan walks
// the trie while reading the text once, so the cost does not grow with the
// size of the dictionary.
//
// A Processor is not internally synchronized. Mutations (AddKeyword,
// RemoveKeyword, the boundary setters) must not run concurrently with each
// other or with a scan. Any number of concurrent scans is fine once the
// Processor is quiescent.
package keyword

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

// defaultWordRunes is the word-continuing set every Processor starts with:
// runes 0–9, A–Z, a–z and underscore. Runes 0–9 are the control codes
// U+0000–U+0009, not the printable digits, so '0'–'9' act as boundaries.
var defaultWordRunes = func() map[rune]struct{} {
	set := make(map[rune]struct{}, 63)
	for r := rune(0); r <= 9; r++ {
		set[r] = struct{}{}
	}
	for r := 'A'; r <= 'Z'; r++ {
		set[r] = struct{}{}
	}
	for r := 'a'; r <= 'z'; r++ {
		set[r] = struct{}{}
	}
	set['_'] = struct{}{}
	return set
}()

// Processor is a mutable keyword trie plus the configuration its scans use.
type Processor struct {
	root          *node
	caseSensitive bool
	wordRunes     map[rune]struct{}
	terms         int
}

// New creates an empty Processor. When caseSensitive is false, keywords and
// scanned text are lowercased before they touch the trie.
func New(caseSensitive bool) *Processor {
	wr := make(map[rune]struct{}, len(defaultWordRunes))
	for r := range defaultWordRunes {
		wr[r] = struct{}{}
	}
	return &Processor{
		root:          newNode(),
		caseSensitive: caseSensitive,
		wordRunes:     wr,
	}
}

// CaseSensitive reports whether the Processor matches exact casing.
func (p *Processor) CaseSensitive() bool {
	return p.caseSensitive
}

// Normalize returns s the way the trie sees it: unchanged for a case-sensitive
// Processor, lowercased rune by rune otherwise. The result always has the same
// number of runes as s.
func (p *Processor) Normalize(s string) string {
	if p.caseSensitive {
		return s
	}
	return string(p.normalizeRunes([]rune(s)))
}

func (p *Processor) normalizeRunes(runes []rune) []rune {
	if p.caseSensitive {
		return runes
	}
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// SetNonWordBoundaries replaces the word-continuing set. Every rune in chars
// is treated as part of a word; everything else separates words. Keywords
// already in the trie are not re-validated.
func (p *Processor) SetNonWordBoundaries(chars []rune) {
	wr := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		wr[r] = struct{}{}
	}
	p.wordRunes = wr
}

// AddNonWordBoundary adds a single character to the word-continuing set.
// It returns false, and changes nothing, unless char is exactly one rune.
func (p *Processor) AddNonWordBoundary(char string) bool {
	if utf8.RuneCountInString(char) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(char)
	p.wordRunes[r] = struct{}{}
	return true
}

// NonWordBoundaries returns the word-continuing set in ascending order.
func (p *Processor) NonWordBoundaries() []rune {
	out := make([]rune, 0, len(p.wordRunes))
	for r := range p.wordRunes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultNonWordBoundaries returns the set a new Processor starts with.
func DefaultNonWordBoundaries() []rune {
	return New(false).NonWordBoundaries()
}

func (p *Processor) isWordRune(r rune) bool {
	_, ok := p.wordRunes[r]
	return ok
}

// AddKeyword inserts keyword into the trie with cleanName as the value that
// extraction returns and replacement substitutes. An empty cleanName means the
// keyword is its own clean name. Re-inserting a keyword overwrites its clean
// name. An empty keyword is ignored.
func (p *Processor) AddKeyword(keyword, cleanName string) {
	if keyword == "" {
		return
	}
	if cleanName == "" {
		cleanName = keyword
	}

	cur := p.root
	for _, r := range p.normalizeRunes([]rune(keyword)) {
		next, ok := cur.children[r]
		if !ok {
			next = newNode()
			cur.children[r] = next
		}
		cur = next
	}
	if !cur.terminal {
		p.terms++
	}
	cur.terminal = true
	cur.clean = cleanName
}

// RemoveKeyword deletes keyword from the trie and reports whether it was
// there. Nodes left with no children and no keyword of their own are pruned;
// keywords sharing a prefix with the removed one are untouched.
func (p *Processor) RemoveKeyword(keyword string) bool {
	if keyword == "" {
		return false
	}

	type step struct {
		r      rune
		parent *node
	}
	runes := p.normalizeRunes([]rune(keyword))
	path := make([]step, 0, len(runes))

	cur := p.root
	for _, r := range runes {
		next, ok := cur.children[r]
		if !ok {
			return false
		}
		path = append(path, step{r: r, parent: cur})
		cur = next
	}
	if !cur.terminal {
		return false
	}

	cur.terminal = false
	cur.clean = ""
	p.terms--

	for i := len(path) - 1; i >= 0; i-- {
		child := path[i].parent.children[path[i].r]
		if !child.empty() {
			break
		}
		delete(path[i].parent.children, path[i].r)
	}
	return true
}

// GetKeyword returns the clean name stored for keyword.
func (p *Processor) GetKeyword(keyword string) (string, bool) {
	n := p.lookup(keyword)
	if n == nil || !n.terminal {
		return "", false
	}
	return n.clean, true
}

// Contains reports whether keyword is in the trie.
func (p *Processor) Contains(keyword string) bool {
	_, ok := p.GetKeyword(keyword)
	return ok
}

// Len returns the number of distinct keywords in the trie.
func (p *Processor) Len() int {
	return p.terms
}

// AllKeywords returns every keyword (as normalized for the trie) mapped to
// its clean name.
func (p *Processor) AllKeywords() map[string]string {
	out := make(map[string]string, p.terms)
	p.root.walk(nil, func(path []rune, n *node) {
		out[string(path)] = n.clean
	})
	return out
}

func (p *Processor) lookup(keyword string) *node {
	if keyword == "" {
		return nil
	}
	cur := p.root
	for _, r := range p.normalizeRunes([]rune(keyword)) {
		next, ok := cur.children[r]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}
