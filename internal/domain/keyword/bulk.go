package keyword

import (
	"sort"

	"github.com/mitchellh/mapstructure"
)

// AddKeywordsFromMap inserts every keyword listed under each clean name.
// Clean names are applied in ascending order, keywords in slice order, so a
// keyword listed under two clean names ends up with the larger one.
func (p *Processor) AddKeywordsFromMap(m map[string][]string) {
	for _, clean := range sortedKeys(m) {
		for _, kw := range m[clean] {
			p.AddKeyword(kw, clean)
		}
	}
}

// RemoveKeywordsFromMap removes every keyword listed in m. The clean names
// only group the keywords; they are not compared against the trie.
func (p *Processor) RemoveKeywordsFromMap(m map[string][]string) {
	for _, clean := range sortedKeys(m) {
		for _, kw := range m[clean] {
			p.RemoveKeyword(kw)
		}
	}
}

// AddKeywordsFromSlice inserts each keyword as its own clean name.
func (p *Processor) AddKeywordsFromSlice(keywords []string) {
	for _, kw := range keywords {
		p.AddKeyword(kw, "")
	}
}

// RemoveKeywordsFromSlice removes each keyword.
func (p *Processor) RemoveKeywordsFromSlice(keywords []string) {
	for _, kw := range keywords {
		p.RemoveKeyword(kw)
	}
}

// AddKeywordsFromObject is AddKeywordsFromMap for loosely typed input such as
// a decoded JSON or YAML document. obj must be a mapping from string clean
// names to sequences of strings. The whole input is validated before the
// trie is touched: on a *ShapeError nothing has been inserted.
func (p *Processor) AddKeywordsFromObject(obj any) error {
	m, err := decodeObject("AddKeywordsFromObject", obj)
	if err != nil {
		return err
	}
	p.AddKeywordsFromMap(m)
	return nil
}

// RemoveKeywordsFromObject validates obj like AddKeywordsFromObject and then
// removes every keyword it lists.
func (p *Processor) RemoveKeywordsFromObject(obj any) error {
	m, err := decodeObject("RemoveKeywordsFromObject", obj)
	if err != nil {
		return err
	}
	p.RemoveKeywordsFromMap(m)
	return nil
}

// AddKeywordsFromArray inserts every keyword of a loosely typed sequence of
// strings. On a *ShapeError nothing has been inserted.
func (p *Processor) AddKeywordsFromArray(list any) error {
	keywords, err := decodeArray("AddKeywordsFromArray", list)
	if err != nil {
		return err
	}
	p.AddKeywordsFromSlice(keywords)
	return nil
}

// RemoveKeywordsFromArray removes every keyword of a loosely typed sequence
// of strings. On a *ShapeError nothing has been removed.
func (p *Processor) RemoveKeywordsFromArray(list any) error {
	keywords, err := decodeArray("RemoveKeywordsFromArray", list)
	if err != nil {
		return err
	}
	p.RemoveKeywordsFromSlice(keywords)
	return nil
}

func decodeObject(op string, obj any) (map[string][]string, error) {
	if obj == nil {
		return nil, &ShapeError{Op: op, Reason: "expected a mapping of clean names to keyword lists, got nil"}
	}
	var m map[string][]string
	if err := strictDecode(obj, &m); err != nil {
		return nil, &ShapeError{Op: op, Reason: "expected a mapping of clean names to keyword lists", Err: err}
	}
	return m, nil
}

func decodeArray(op string, list any) ([]string, error) {
	if list == nil {
		return nil, &ShapeError{Op: op, Reason: "expected a list of keywords, got nil"}
	}
	var keywords []string
	if err := strictDecode(list, &keywords); err != nil {
		return nil, &ShapeError{Op: op, Reason: "expected a list of keywords", Err: err}
	}
	return keywords, nil
}

// strictDecode refuses every implicit conversion: numbers stay numbers, a
// lone string is not a one-element list.
func strictDecode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
