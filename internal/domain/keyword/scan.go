package keyword

import "strings"

// Match is one keyword hit. Start and End are byte offsets of the matched
// keyword in the original text (End exclusive, the terminating boundary
// character is not included).
type Match struct {
	CleanName string `json:"clean_name"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
}

// hit is a match in rune positions. end is the rune index just past the
// keyword; it is also the index of the boundary rune that terminated the
// match, or len(text) when the match ran to the end of the input.
type hit struct {
	clean      string
	start, end int
}

// scan walks text once and returns every longest, non-overlapping keyword
// hit in order. Matching runs on the normalized runes; positions refer to
// both slices since normalization never changes the rune count.
func (p *Processor) scan(text []rune) []hit {
	n := len(text)
	if n == 0 {
		return nil
	}
	shadow := p.normalizeRunes(text)

	var hits []hit
	cur := p.root
	start := 0

	for idx := 0; idx < n; idx++ {
		r := shadow[idx]

		if !p.isWordRune(r) {
			child := cur.children[r]
			if cur.terminal || child != nil {
				var best *node
				end := idx
				if cur.terminal {
					best = cur
				}
				if child != nil {
					// Keep reading past the boundary: a longer keyword may
					// contain it ("new york" vs "new york city").
					cont := child
					idy := idx + 1
					for ; idy < n; idy++ {
						inner := shadow[idy]
						if !p.isWordRune(inner) && cont.terminal {
							best = cont
							end = idy
						}
						next, ok := cont.children[inner]
						if !ok {
							break
						}
						cont = next
					}
					if idy >= n && cont.terminal {
						best = cont
						end = n
					}
				}
				if best != nil {
					hits = append(hits, hit{clean: best.clean, start: start, end: end})
					idx = end
				}
			}
			cur = p.root
			start = idx + 1
		} else if next, ok := cur.children[r]; ok {
			cur = next
		} else {
			// No keyword can start inside this word: skip the rest of it
			// along with the boundary that ends it.
			cur = p.root
			idy := idx + 1
			for idy < n && p.isWordRune(shadow[idy]) {
				idy++
			}
			idx = idy
			start = idx + 1
		}

		if idx+1 >= n && cur.terminal {
			hits = append(hits, hit{clean: cur.clean, start: start, end: n})
		}
	}
	return hits
}

// ExtractKeywords returns the clean name of every keyword found in text, in
// the order they occur. Repeats are kept. Text that matches nothing yields an
// empty slice.
func (p *Processor) ExtractKeywords(text string) []string {
	hits := p.scan([]rune(text))
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.clean
	}
	return out
}

// ExtractKeywordsWithSpan is ExtractKeywords with the byte span of each match
// in text.
func (p *Processor) ExtractKeywordsWithSpan(text string) []Match {
	runes := []rune(text)
	hits := p.scan(runes)
	if len(hits) == 0 {
		return []Match{}
	}

	offsets := byteOffsets(text, len(runes))
	out := make([]Match, len(hits))
	for i, h := range hits {
		out[i] = Match{
			CleanName: h.clean,
			Start:     offsets[h.start],
			End:       offsets[h.end],
		}
	}
	return out
}

// ReplaceKeywords returns text with every keyword replaced by its clean name.
// Text outside matches is copied from the input untouched, casing included.
// The boundary character that ended a match is kept after the clean name.
func (p *Processor) ReplaceKeywords(text string) string {
	runes := []rune(text)
	hits := p.scan(runes)
	if len(hits) == 0 {
		return text
	}

	offsets := byteOffsets(text, len(runes))
	var sb strings.Builder
	sb.Grow(len(text))

	last := 0
	for _, h := range hits {
		sb.WriteString(text[offsets[last]:offsets[h.start]])
		sb.WriteString(h.clean)
		if h.end < len(runes) {
			sb.WriteString(text[offsets[h.end]:offsets[h.end+1]])
			last = h.end + 1
		} else {
			last = len(runes)
		}
	}
	sb.WriteString(text[offsets[last]:])
	return sb.String()
}

// byteOffsets maps rune index i of text to its byte offset; the extra last
// entry is len(text). Ranging over the string decodes exactly like []rune(text),
// invalid bytes included.
func byteOffsets(text string, runeCount int) []int {
	offsets := make([]int, 0, runeCount+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}
