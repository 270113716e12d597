package document

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/mirao/hecto/internal/highlight"
)

// Row holds one line of text without its terminator. All positional
// operations are addressed by grapheme-cluster index, never by byte or
// rune index: a multi-code-point glyph (combining marks, regional
// indicator pairs) counts as one editable unit.
//
// A Row caches its grapheme count and, once Highlight has run, a parallel
// per-grapheme category slice. Any text mutation invalidates the cached
// highlighting until the next pass.
type Row struct {
	text        string
	marks       []highlight.Category
	highlighted bool
	hasMatches  bool
	length      int
}

// NewRow constructs a row from raw line text. The grapheme count is
// computed by full segmentation.
func NewRow(s string) *Row {
	return &Row{
		text:   s,
		length: uniseg.GraphemeClusterCount(s),
	}
}

// String returns the row's raw text.
func (r *Row) String() string {
	return r.text
}

// Len returns the cached grapheme count.
func (r *Row) Len() int {
	return r.length
}

// IsEmpty returns true if the row holds no graphemes.
func (r *Row) IsEmpty() bool {
	return r.length == 0
}

// GraphemeAt returns the grapheme cluster at the given index, or false
// when the index is out of range.
func (r *Row) GraphemeAt(at int) (string, bool) {
	if at < 0 || at >= r.length {
		return "", false
	}
	return graphemes(r.text)[at], true
}

// Insert places one character at grapheme position at, clamped to
// [0, Len]. Inserting at Len appends. The grapheme count is recomputed by
// full re-segmentation: an inserted scalar can combine with a neighboring
// cluster (e.g. the second half of a regional indicator pair), so the
// count must not be assumed to grow by one.
func (r *Row) Insert(at int, c rune) {
	if at < 0 {
		at = 0
	}
	if at >= r.length {
		r.text += string(c)
	} else {
		var b strings.Builder
		for i, g := range graphemes(r.text) {
			if i == at {
				b.WriteRune(c)
			}
			b.WriteString(g)
		}
		r.text = b.String()
	}
	r.length = uniseg.GraphemeClusterCount(r.text)
	r.highlighted = false
}

// Delete removes the grapheme at the given position. Out-of-range
// positions are a no-op.
func (r *Row) Delete(at int) {
	if at < 0 || at >= r.length {
		return
	}
	var b strings.Builder
	for i, g := range graphemes(r.text) {
		if i != at {
			b.WriteString(g)
		}
	}
	r.text = b.String()
	r.length = uniseg.GraphemeClusterCount(r.text)
	r.highlighted = false
}

// Split retains graphemes [0, at) in place and returns a new row holding
// [at, Len). Both halves are left unhighlighted.
func (r *Row) Split(at int) *Row {
	var head, tail strings.Builder
	for i, g := range graphemes(r.text) {
		if i < at {
			head.WriteString(g)
		} else {
			tail.WriteString(g)
		}
	}
	r.text = head.String()
	r.length = uniseg.GraphemeClusterCount(r.text)
	r.highlighted = false
	r.hasMatches = false

	rest := tail.String()
	return &Row{
		text:   rest,
		length: uniseg.GraphemeClusterCount(rest),
	}
}

// Append concatenates other's text onto this row. The count is recomputed
// rather than summed: the seam can merge two clusters into one.
func (r *Row) Append(other *Row) {
	r.text += other.text
	r.length = uniseg.GraphemeClusterCount(r.text)
	r.highlighted = false
}

// Span is a maximal run of rendered text sharing one highlight category.
type Span struct {
	Text     string
	Category highlight.Category
}

// Render produces the display form of the grapheme window [start, end),
// clamped to content bounds, as category spans. Tabs render as a single
// space. Positions beyond the cached marks, or any position of an
// unhighlighted row, render as CategoryNone.
func (r *Row) Render(start, end int) []Span {
	if end > r.length {
		end = r.length
	}
	if start < 0 {
		start = 0
	}
	if start > end {
		start = end
	}

	var spans []Span
	var run strings.Builder
	current := highlight.CategoryNone
	for i, g := range graphemes(r.text) {
		if i < start {
			continue
		}
		if i >= end {
			break
		}
		cat := highlight.CategoryNone
		if r.highlighted && i < len(r.marks) {
			cat = r.marks[i]
		}
		if cat != current && run.Len() > 0 {
			spans = append(spans, Span{Text: run.String(), Category: current})
			run.Reset()
		}
		current = cat
		if g == "\t" {
			run.WriteByte(' ')
		} else {
			run.WriteString(g)
		}
	}
	if run.Len() > 0 {
		spans = append(spans, Span{Text: run.String(), Category: current})
	}
	return spans
}

// Width returns the display width in terminal cells of the grapheme range
// [start, end), counting a tab as one cell (tabs render as a space).
func (r *Row) Width(start, end int) int {
	if end > r.length {
		end = r.length
	}
	if start < 0 {
		start = 0
	}
	if start > end {
		start = end
	}
	width := 0
	for i, g := range graphemes(r.text) {
		if i < start {
			continue
		}
		if i >= end {
			break
		}
		if g == "\t" {
			width++
			continue
		}
		width += runewidth.StringWidth(g)
	}
	return width
}

// Find returns the grapheme index of the first occurrence of query at or
// after at (forward), or the last occurrence ending before at (backward).
// An empty query never matches. Substring search yields a byte offset;
// the result is converted back to a grapheme index by walking cluster
// boundaries.
func (r *Row) Find(query string, at int, direction SearchDirection) (int, bool) {
	if query == "" {
		return 0, false
	}

	gs := graphemes(r.text)
	start, end := at, r.length
	if direction == SearchBackward {
		start, end = 0, at
	}
	if start < 0 {
		start = 0
	}
	if end > r.length {
		end = r.length
	}
	if start > end {
		return 0, false
	}

	substring := strings.Join(gs[start:end], "")
	byteIndex := -1
	if direction == SearchForward {
		byteIndex = strings.Index(substring, query)
	} else {
		byteIndex = strings.LastIndex(substring, query)
	}
	if byteIndex < 0 {
		return 0, false
	}

	offset := 0
	for i, g := range graphemes(substring) {
		if offset == byteIndex {
			return start + i, true
		}
		offset += len(g)
	}
	return 0, false
}

// graphemes segments s into its grapheme clusters.
func graphemes(s string) []string {
	if s == "" {
		return nil
	}
	gs := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		gs = append(gs, cluster)
	}
	return gs
}
