package document

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/mirao/hecto/internal/highlight"
)

// Highlight recomputes the row's per-grapheme categories left to right.
// startWithComment is the block-comment state carried in from the
// previous row; the return value is the state carried out to the next.
//
// At each position the rules are tried in fixed priority order: carried
// block comment, character literal, line comment, block comment, primary
// keyword, secondary keyword, string, number; anything else is
// CategoryNone. After the pass, every non-overlapping occurrence of word
// is repainted as CategoryMatch.
//
// A row that is already highlighted, with no search word active and no
// stale match overlay, skips recomputation and only reports whether it
// ends inside an open block comment.
func (r *Row) Highlight(opts highlight.Options, word string, startWithComment bool) bool {
	gs := graphemes(r.text)

	if r.highlighted && word == "" && !r.hasMatches && len(r.marks) > 0 {
		open := r.marks[len(r.marks)-1] == highlight.CategoryMultilineComment &&
			r.length > 1 && !closesBlockComment(gs)
		return open
	}

	t := &tokenizer{
		opts:  opts,
		gs:    gs,
		marks: make([]highlight.Category, 0, len(gs)),
	}

	open := startWithComment
	if open {
		open = t.continueBlockComment()
	}
	for t.index < len(gs) {
		if consumed, stillOpen := t.blockComment(); consumed {
			open = stillOpen
			continue
		}
		if t.characterLiteral() || t.lineComment() ||
			t.keywords(opts.PrimaryKeywords, highlight.CategoryPrimaryKeyword) ||
			t.keywords(opts.SecondaryKeywords, highlight.CategorySecondaryKeyword) ||
			t.stringLiteral() || t.number() {
			continue
		}
		t.emit(highlight.CategoryNone, 1)
	}

	r.marks = t.marks
	r.overlayMatches(word)
	r.highlighted = true
	return open
}

// overlayMatches repaints every occurrence of word with CategoryMatch,
// scanning forward occurrence by occurrence; the next search starts at
// the end of the previous match, so matches never overlap.
func (r *Row) overlayMatches(word string) {
	r.hasMatches = false
	if word == "" {
		return
	}
	wordLen := uniseg.GraphemeClusterCount(word)
	at := 0
	for {
		m, ok := r.Find(word, at, SearchForward)
		if !ok {
			break
		}
		next := m + wordLen
		for i := m; i < next && i < len(r.marks); i++ {
			r.marks[i] = highlight.CategoryMatch
		}
		r.hasMatches = true
		at = next
	}
}

// tokenizer walks a row's graphemes once, appending one category per
// consumed grapheme.
type tokenizer struct {
	opts  highlight.Options
	gs    []string
	marks []highlight.Category
	index int
}

// emit appends cat n times and advances past the consumed graphemes.
func (t *tokenizer) emit(cat highlight.Category, n int) {
	for i := 0; i < n; i++ {
		t.marks = append(t.marks, cat)
		t.index++
	}
}

// continueBlockComment consumes a block comment carried in from the
// previous row, through its closing "*/" or to the end of the row.
// Reports whether the comment is still open.
func (t *tokenizer) continueBlockComment() bool {
	end := len(t.gs)
	open := true
	for i, g := range t.gs {
		if strings.Contains(g, "*") && i+1 < len(t.gs) && strings.Contains(t.gs[i+1], "/") {
			end = i + 2
			open = false
			break
		}
	}
	t.emit(highlight.CategoryMultilineComment, end)
	return open
}

// blockComment opens a "/*" comment at the current position. It either
// closes within the row or consumes the rest of the row, reporting the
// carried-out state in the second result.
func (t *tokenizer) blockComment() (consumed, open bool) {
	if !t.opts.MultilineComments || !strings.Contains(t.gs[t.index], "/") {
		return false, false
	}
	if t.index+1 >= len(t.gs) || !strings.Contains(t.gs[t.index+1], "*") {
		return false, false
	}

	end := len(t.gs)
	open = true
	for i := t.index + 2; i+1 < len(t.gs); i++ {
		if strings.Contains(t.gs[i], "*") && strings.Contains(t.gs[i+1], "/") {
			end = i + 2
			open = false
			break
		}
	}
	t.emit(highlight.CategoryMultilineComment, end-t.index)
	return true, open
}

// characterLiteral matches 'x' or an escaped '\x': exactly one grapheme
// (two when escaped) between matching single quotes.
func (t *tokenizer) characterLiteral() bool {
	if !t.opts.Characters || !strings.Contains(t.gs[t.index], "'") {
		return false
	}
	if t.index+1 >= len(t.gs) {
		return false
	}
	closing := t.index + 2
	if strings.Contains(t.gs[t.index+1], `\`) {
		closing = t.index + 3
	}
	if closing >= len(t.gs) || !strings.Contains(t.gs[closing], "'") {
		return false
	}
	t.emit(highlight.CategoryCharacter, closing-t.index+1)
	return true
}

// lineComment matches "//" and consumes the remainder of the row.
func (t *tokenizer) lineComment() bool {
	if !t.opts.Comments || !strings.Contains(t.gs[t.index], "/") {
		return false
	}
	if t.index+1 >= len(t.gs) || !strings.Contains(t.gs[t.index+1], "/") {
		return false
	}
	t.emit(highlight.CategoryComment, len(t.gs)-t.index)
	return true
}

// keywords tries each keyword at the current position under the
// whole-word rule: the grapheme before the keyword (if any) and the one
// after it (if any) must both be separators.
func (t *tokenizer) keywords(words []string, cat highlight.Category) bool {
	if t.index > 0 && !isSeparator(t.gs[t.index-1]) {
		return false
	}
	for _, word := range words {
		n := uniseg.GraphemeClusterCount(word)
		if t.index < len(t.gs)-n {
			if !isSeparator(t.gs[t.index+n]) {
				continue
			}
		}
		if t.matchWord(word, n, cat) {
			return true
		}
	}
	return false
}

// matchWord emits cat for the keyword's graphemes when the row matches it
// grapheme-for-grapheme at the current position.
func (t *tokenizer) matchWord(word string, n int, cat highlight.Category) bool {
	if word == "" {
		return false
	}
	for i, g := range graphemes(word) {
		if t.index+i >= len(t.gs) || t.gs[t.index+i] != g {
			return false
		}
	}
	t.emit(cat, n)
	return true
}

// stringLiteral consumes a double-quoted string to its closing quote or
// the end of the row. A backslash escapes the following grapheme.
func (t *tokenizer) stringLiteral() bool {
	if !t.opts.Strings || !strings.Contains(t.gs[t.index], `"`) {
		return false
	}
	t.emit(highlight.CategoryString, 1)
	for t.index < len(t.gs) {
		g := t.gs[t.index]
		if strings.Contains(g, `\`) && t.index+1 < len(t.gs) {
			t.emit(highlight.CategoryString, 2)
			continue
		}
		t.emit(highlight.CategoryString, 1)
		if strings.Contains(g, `"`) {
			break
		}
	}
	return true
}

// number matches a digit not preceded by a non-separator and consumes
// subsequent digits and dots.
func (t *tokenizer) number() bool {
	if !t.opts.Numbers || !containsDigit(t.gs[t.index]) {
		return false
	}
	if t.index > 0 && !isSeparator(t.gs[t.index-1]) {
		return false
	}
	t.emit(highlight.CategoryNumber, 1)
	for t.index < len(t.gs) && isNumberContinuation(t.gs[t.index]) {
		t.emit(highlight.CategoryNumber, 1)
	}
	return true
}

// asciiSeparators are the characters that end a word: ASCII punctuation
// and whitespace.
const asciiSeparators = " \t\n\r!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func isSeparator(g string) bool {
	return strings.ContainsAny(g, asciiSeparators)
}

func containsDigit(g string) bool {
	for _, r := range g {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// isNumberContinuation reports whether every rune of the grapheme is a
// digit or a dot.
func isNumberContinuation(g string) bool {
	for _, r := range g {
		if r != '.' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// closesBlockComment reports whether the row's final two graphemes form
// the "*/" sequence.
func closesBlockComment(gs []string) bool {
	n := len(gs)
	return n >= 2 && strings.Contains(gs[n-2], "*") && strings.Contains(gs[n-1], "/")
}
