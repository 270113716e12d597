package document

import (
	"testing"

	"github.com/mirao/hecto/internal/highlight"
)

// allOpts enables every lexical rule with a small keyword set.
func allOpts() highlight.Options {
	return highlight.Options{
		Numbers:           true,
		Strings:           true,
		Characters:        true,
		Comments:          true,
		MultilineComments: true,
		PrimaryKeywords:   []string{"for", "if", "return"},
		SecondaryKeywords: []string{"bool", "i32"},
	}
}

// marksOf highlights a single row with no carried-in comment and returns
// its categories.
func marksOf(t *testing.T, text string, opts highlight.Options) []highlight.Category {
	t.Helper()
	r := NewRow(text)
	r.Highlight(opts, "", false)
	if len(r.marks) != r.Len() {
		t.Fatalf("marks length %d != row length %d", len(r.marks), r.Len())
	}
	return r.marks
}

func uniform(cat highlight.Category, n int) []highlight.Category {
	marks := make([]highlight.Category, n)
	for i := range marks {
		marks[i] = cat
	}
	return marks
}

func assertMarks(t *testing.T, got, want []highlight.Category) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d marks, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mark %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestHighlightNumber(t *testing.T) {
	marks := marksOf(t, "x 42", allOpts())
	want := []highlight.Category{
		highlight.CategoryNone, highlight.CategoryNone,
		highlight.CategoryNumber, highlight.CategoryNumber,
	}
	assertMarks(t, marks, want)
}

func TestHighlightNumberWithDot(t *testing.T) {
	marks := marksOf(t, "3.14", allOpts())
	assertMarks(t, marks, uniform(highlight.CategoryNumber, 4))
}

func TestHighlightNumberNotInsideWord(t *testing.T) {
	marks := marksOf(t, "x42", allOpts())
	assertMarks(t, marks, uniform(highlight.CategoryNone, 3))
}

func TestHighlightNumbersDisabled(t *testing.T) {
	marks := marksOf(t, "42", highlight.Options{})
	assertMarks(t, marks, uniform(highlight.CategoryNone, 2))
}

func TestHighlightString(t *testing.T) {
	marks := marksOf(t, `x "ab" y`, allOpts())
	want := []highlight.Category{
		highlight.CategoryNone, highlight.CategoryNone,
		highlight.CategoryString, highlight.CategoryString,
		highlight.CategoryString, highlight.CategoryString,
		highlight.CategoryNone, highlight.CategoryNone,
	}
	assertMarks(t, marks, want)
}

func TestHighlightStringEscapedQuote(t *testing.T) {
	marks := marksOf(t, `"a\"b"`, allOpts())
	assertMarks(t, marks, uniform(highlight.CategoryString, 6))
}

func TestHighlightStringUnterminated(t *testing.T) {
	marks := marksOf(t, `"abc`, allOpts())
	assertMarks(t, marks, uniform(highlight.CategoryString, 4))
}

func TestHighlightCharacter(t *testing.T) {
	marks := marksOf(t, "'x'", allOpts())
	assertMarks(t, marks, uniform(highlight.CategoryCharacter, 3))
}

func TestHighlightCharacterEscaped(t *testing.T) {
	marks := marksOf(t, `'\n'`, allOpts())
	assertMarks(t, marks, uniform(highlight.CategoryCharacter, 4))
}

func TestHighlightCharacterUnclosed(t *testing.T) {
	// A lone quote is not a character literal; 'x' is 3 graphemes but the
	// closing position holds no quote here.
	marks := marksOf(t, "'xy", allOpts())
	assertMarks(t, marks, uniform(highlight.CategoryNone, 3))
}

func TestHighlightLineComment(t *testing.T) {
	marks := marksOf(t, "x // rest", allOpts())
	want := append(
		[]highlight.Category{highlight.CategoryNone, highlight.CategoryNone},
		uniform(highlight.CategoryComment, 7)...,
	)
	assertMarks(t, marks, want)
}

func TestHighlightBlockCommentClosedInRow(t *testing.T) {
	marks := marksOf(t, "a /* b */ c", allOpts())
	want := []highlight.Category{highlight.CategoryNone, highlight.CategoryNone}
	want = append(want, uniform(highlight.CategoryMultilineComment, 7)...)
	want = append(want, highlight.CategoryNone, highlight.CategoryNone)
	assertMarks(t, marks, want)
}

func TestHighlightBlockCommentUnterminated(t *testing.T) {
	r := NewRow("a /* rest")
	open := r.Highlight(allOpts(), "", false)
	if !open {
		t.Error("expected the block comment to be carried out as open")
	}
	want := append(
		[]highlight.Category{highlight.CategoryNone, highlight.CategoryNone},
		uniform(highlight.CategoryMultilineComment, 7)...,
	)
	assertMarks(t, r.marks, want)
}

func TestHighlightCarriedBlockComment(t *testing.T) {
	r := NewRow("middle")
	open := r.Highlight(allOpts(), "", true)
	if !open {
		t.Error("expected the comment to stay open across a row with no close")
	}
	assertMarks(t, r.marks, uniform(highlight.CategoryMultilineComment, 6))
}

func TestHighlightCarriedBlockCommentCloses(t *testing.T) {
	r := NewRow("end */ x 5")
	open := r.Highlight(allOpts(), "", true)
	if open {
		t.Error("expected the comment to close")
	}
	want := uniform(highlight.CategoryMultilineComment, 6)
	want = append(want, highlight.CategoryNone, highlight.CategoryNone, highlight.CategoryNone)
	want = append(want, highlight.CategoryNumber)
	assertMarks(t, r.marks, want)
}

func TestHighlightStatePropagation(t *testing.T) {
	d := &Document{
		rows: []*Row{
			NewRow("/* start"),
			NewRow("middle"),
			NewRow("end */"),
			NewRow("if 1"),
		},
		fileType: highlight.FileType{Name: "test", Options: allOpts()},
	}

	d.Highlight("", -1)

	for y := 0; y < 3; y++ {
		for i, mark := range d.rows[y].marks {
			if mark != highlight.CategoryMultilineComment {
				t.Errorf("row %d mark %d: expected comment, got %v", y, i, mark)
			}
		}
	}
	if d.rows[3].marks[0] != highlight.CategoryPrimaryKeyword {
		t.Errorf("row 3: expected normal tokenization, got %v", d.rows[3].marks)
	}

	// Removing the close through the document reopens the comment for the
	// rows below.
	d.Delete(Position{X: 5, Y: 2})
	d.Delete(Position{X: 4, Y: 2})
	d.Highlight("", -1)

	for i, mark := range d.rows[3].marks {
		if mark != highlight.CategoryMultilineComment {
			t.Errorf("after edit, row 3 mark %d: expected comment, got %v", i, mark)
		}
	}
}

func TestHighlightKeywordWholeWord(t *testing.T) {
	// "format" must not highlight its "for" prefix.
	marks := marksOf(t, "format", allOpts())
	assertMarks(t, marks, uniform(highlight.CategoryNone, 6))

	marks = marksOf(t, "for x", allOpts())
	want := uniform(highlight.CategoryPrimaryKeyword, 3)
	want = append(want, highlight.CategoryNone, highlight.CategoryNone)
	assertMarks(t, marks, want)
}

func TestHighlightKeywordAtEndOfRow(t *testing.T) {
	marks := marksOf(t, "x for", allOpts())
	want := []highlight.Category{highlight.CategoryNone, highlight.CategoryNone}
	want = append(want, uniform(highlight.CategoryPrimaryKeyword, 3)...)
	assertMarks(t, marks, want)
}

func TestHighlightKeywordNotAfterWordChar(t *testing.T) {
	marks := marksOf(t, "xfor y", allOpts())
	assertMarks(t, marks, uniform(highlight.CategoryNone, 6))
}

func TestHighlightSecondaryKeyword(t *testing.T) {
	marks := marksOf(t, "bool", allOpts())
	assertMarks(t, marks, uniform(highlight.CategorySecondaryKeyword, 4))
}

func TestHighlightMatchOverlay(t *testing.T) {
	r := NewRow("abc abc")
	r.Highlight(allOpts(), "abc", false)

	want := uniform(highlight.CategoryMatch, 3)
	want = append(want, highlight.CategoryNone)
	want = append(want, uniform(highlight.CategoryMatch, 3)...)
	assertMarks(t, r.marks, want)
}

func TestHighlightMatchNonOverlapping(t *testing.T) {
	r := NewRow("aaa")
	r.Highlight(allOpts(), "aa", false)

	// The second scan starts after the first match, so only the first two
	// positions are repainted.
	want := []highlight.Category{
		highlight.CategoryMatch, highlight.CategoryMatch, highlight.CategoryNone,
	}
	assertMarks(t, r.marks, want)
}

func TestHighlightMatchOverlayCleared(t *testing.T) {
	r := NewRow("abc")
	r.Highlight(allOpts(), "abc", false)
	if r.marks[0] != highlight.CategoryMatch {
		t.Fatal("expected match overlay")
	}

	// A pass with no search word must clear the overlay even though the
	// row text is unchanged.
	r.Highlight(allOpts(), "", false)
	assertMarks(t, r.marks, uniform(highlight.CategoryNone, 3))
}

func TestHighlightSkipReportsOpenComment(t *testing.T) {
	r := NewRow("/* still open")
	first := r.Highlight(allOpts(), "", false)
	if !first {
		t.Fatal("expected open comment")
	}

	// Re-highlighting an unchanged row must still report the carried-out
	// state even when it takes the skip shortcut.
	again := r.Highlight(allOpts(), "", false)
	if again != first {
		t.Errorf("expected %v, got %v", first, again)
	}
}

func TestHighlightPriorityCommentOverKeyword(t *testing.T) {
	marks := marksOf(t, "// for", allOpts())
	assertMarks(t, marks, uniform(highlight.CategoryComment, 6))
}

func TestHighlightMarksLengthInvariant(t *testing.T) {
	inputs := []string{
		"", "x", `"`, `"\`, "'", "/*", "*/", "/", "12.5.6", "a\tb",
		"\U0001F1E8\U0001F1FF if", `"unterminated \`,
	}
	for _, input := range inputs {
		r := NewRow(input)
		r.Highlight(allOpts(), "", false)
		if len(r.marks) != r.Len() {
			t.Errorf("%q: marks length %d != row length %d", input, len(r.marks), r.Len())
		}
	}
}
