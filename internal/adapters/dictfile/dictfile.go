// Package dictfile reads keyword dictionaries from YAML (or JSON) files.
//
// A dictionary file holds either a mapping of clean names to keyword lists:
//
//	New York: [big apple, nyc]
//	Bay Area: [bay area, sf bay]
//
// or a plain list of keywords, each its own clean name:
//
//	- java
//	- product manager
//
// Documents are decoded loosely and handed to the processor's dynamic
// loaders, so a malformed shape surfaces as a *keyword.ShapeError.
package dictfile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/corey/flashtext/internal/ports"
)

// Kind is the top-level shape of a dictionary document.
type Kind int

const (
	// KindObject maps clean names to keyword lists.
	KindObject Kind = iota
	// KindList is a sequence of keywords.
	KindList
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindList {
		return "list"
	}
	return "object"
}

// Dictionary is a decoded dictionary document.
type Dictionary struct {
	Path string
	Kind Kind
	doc  any
}

// Load reads and decodes the dictionary file at path.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	d.Path = path
	return d, nil
}

// Parse decodes a dictionary document. JSON input works since it is YAML.
// The shape is not checked here; Apply checks it.
func Parse(data []byte) (*Dictionary, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	d := &Dictionary{Kind: KindObject, doc: doc}
	if _, ok := doc.([]any); ok {
		d.Kind = KindList
	}
	return d, nil
}

// Apply adds every keyword of the dictionary to p.
func (d *Dictionary) Apply(p *keyword.Processor) error {
	if d.Kind == KindList {
		return p.AddKeywordsFromArray(d.doc)
	}
	return p.AddKeywordsFromObject(d.doc)
}

// Entries resolves the dictionary into storable entries, normalized the way
// a processor with the given case sensitivity normalizes them. Keyword
// clashes resolve exactly as Apply would resolve them.
func (d *Dictionary) Entries(caseSensitive bool) ([]ports.Entry, error) {
	scratch := keyword.New(caseSensitive)
	if err := d.Apply(scratch); err != nil {
		return nil, err
	}
	all := scratch.AllKeywords()
	entries := make([]ports.Entry, 0, len(all))
	for kw, clean := range all {
		entries = append(entries, ports.Entry{Keyword: kw, CleanName: clean})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Keyword < entries[j].Keyword
	})
	return entries, nil
}

// Keywords returns the normalized keywords the dictionary lists.
func (d *Dictionary) Keywords(caseSensitive bool) ([]string, error) {
	entries, err := d.Entries(caseSensitive)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Keyword
	}
	return out, nil
}
