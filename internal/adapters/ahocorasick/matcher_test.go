package ahocorasick

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Aho-Corasick Prefilter: single-pass "could any keyword occur here"
// Expectation: a negative answer is exact; positives ignore word boundaries
// =============================================================================

func TestMatcher_SingleKeyword(t *testing.T) {
	m := NewMatcher([]string{"big apple"})
	assert.True(t, m.MayMatch("i love big apple"))
	assert.False(t, m.MayMatch("i love big"))
}

func TestMatcher_MultipleKeywords(t *testing.T) {
	m := NewMatcher([]string{"java", "python", "go"})
	assert.True(t, m.MayMatch("python and java"))
	assert.True(t, m.MayMatch("i write go"))
	assert.False(t, m.MayMatch("rust and c"))
}

func TestMatcher_OverlappingKeywords(t *testing.T) {
	// Substring semantics: "java" hits inside "javascript" even though the
	// trie scan would reject it at the word boundary.
	m := NewMatcher([]string{"java", "javascript"})
	assert.True(t, m.MayMatch("javascript"))
	assert.True(t, m.MayMatch("xjavax"))
}

func TestMatcher_NoMatch(t *testing.T) {
	m := NewMatcher([]string{"auth"})
	assert.False(t, m.MayMatch("hello world"))
}

func TestMatcher_Empty(t *testing.T) {
	var zero Matcher
	assert.False(t, zero.MayMatch("anything"))

	m := NewMatcher(nil)
	assert.False(t, m.MayMatch("anything"))

	m = NewMatcher([]string{"", "java"})
	assert.False(t, m.MayMatch("nothing here"), "empty keyword dropped")
	assert.True(t, m.MayMatch("java"))
	assert.False(t, m.MayMatch(""))
}

func TestMatcher_Rebuild(t *testing.T) {
	m := NewMatcher([]string{"old"})
	assert.True(t, m.MayMatch("an old text"))

	m.Rebuild([]string{"new"})
	assert.False(t, m.MayMatch("an old text"))
	assert.True(t, m.MayMatch("a new text"))

	m.Rebuild(nil)
	assert.False(t, m.MayMatch("a new text"))
}

func TestMatcher_CaseSensitive(t *testing.T) {
	// Caller normalizes case before matching.
	m := NewMatcher([]string{"login"})
	assert.False(t, m.MayMatch("Login"))
	assert.True(t, m.MayMatch("login"))
}

func TestMatcher_MultiByte(t *testing.T) {
	m := NewMatcher([]string{"café"})
	assert.True(t, m.MayMatch("un café noir"))
	assert.False(t, m.MayMatch("un cafe noir"))
}

func BenchmarkMayMatch(b *testing.B) {
	keywords := make([]string, 500)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("keyword%03d", i)
	}
	m := NewMatcher(keywords)
	content := strings.Repeat("the quick brown fox jumps over the lazy dog ", 25)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.MayMatch(content)
	}
}
