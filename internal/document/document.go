package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mirao/hecto/internal/highlight"
)

// Load/save error kinds. Callers distinguish them with errors.Is; the
// wrapped chain keeps the underlying cause.
var (
	// ErrNotFound indicates the backing file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermission indicates the backing file is not accessible.
	ErrPermission = errors.New("permission denied")
)

// Document is the ordered collection of rows forming the buffer, plus
// persistence metadata. A zero-row document is valid and distinct from a
// document holding one empty row.
//
// All in-buffer operations are total: out-of-range positions are clamped
// or ignored, never an error. Only Open and Save can fail.
type Document struct {
	rows     []*Row
	dirty    bool
	fileType highlight.FileType

	// FileName is the save target; empty means unsaved with no target.
	FileName string
}

// New returns an empty document with no backing file.
func New() *Document {
	return &Document{fileType: highlight.PlainText()}
}

// Open reads a file into a document, splitting on line terminators. A
// trailing terminator yields one extra empty row so that a final blank
// line round-trips. The file type is resolved from the path's extension.
func Open(path string) (*Document, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, classify("open", path, err)
	}

	var rows []*Row
	if len(contents) > 0 {
		for _, line := range strings.Split(string(contents), "\n") {
			rows = append(rows, NewRow(strings.TrimSuffix(line, "\r")))
		}
	}

	return &Document{
		rows:     rows,
		FileName: path,
		fileType: highlight.FromPath(path),
	}, nil
}

// Save writes the rows joined by a single newline, with no trailing
// newline after the last row. The file type is re-resolved from the
// current FileName, which may have changed since Open. On success the
// dirty flag is cleared. A document without a file name is left as is.
func (d *Document) Save() error {
	if d.FileName == "" {
		return nil
	}

	file, err := os.Create(d.FileName)
	if err != nil {
		return classify("save", d.FileName, err)
	}

	d.fileType = highlight.FromPath(d.FileName)

	for i, row := range d.rows {
		if _, err := file.WriteString(row.String()); err != nil {
			file.Close()
			return classify("save", d.FileName, err)
		}
		if i < len(d.rows)-1 {
			if _, err := file.WriteString("\n"); err != nil {
				file.Close()
				return classify("save", d.FileName, err)
			}
		}
	}
	if err := file.Close(); err != nil {
		return classify("save", d.FileName, err)
	}

	d.dirty = false
	return nil
}

// Row returns the row at index y, or nil when out of range.
func (d *Document) Row(y int) *Row {
	if y < 0 || y >= len(d.rows) {
		return nil
	}
	return d.rows[y]
}

// RowLen returns the grapheme count of row y, or 0 when out of range.
// Callers use it to clamp cursor columns.
func (d *Document) RowLen(y int) int {
	if row := d.Row(y); row != nil {
		return row.Len()
	}
	return 0
}

// Len returns the number of rows.
func (d *Document) Len() int {
	return len(d.rows)
}

// IsEmpty returns true when the document holds no rows.
func (d *Document) IsEmpty() bool {
	return len(d.rows) == 0
}

// IsDirty returns true when in-memory content differs from the last
// successful save.
func (d *Document) IsDirty() bool {
	return d.dirty
}

// FileTypeName returns the display name of the resolved file type.
func (d *Document) FileTypeName() string {
	return d.fileType.Name
}

// Insert places character c at the given position. A newline performs a
// row split; on an empty document it produces exactly two empty rows.
// Inserting any other character into an empty document creates the first
// row. Highlighting is invalidated from the row above the edit, because
// its trailing block-comment state can influence the rows below.
func (d *Document) Insert(at Position, c rune) {
	if at.Y < 0 || at.X < 0 {
		return
	}
	d.dirty = true

	switch {
	case c == '\n':
		d.insertNewline(at)
	case d.IsEmpty():
		row := NewRow("")
		row.Insert(0, c)
		d.rows = append(d.rows, row)
	default:
		if row := d.Row(at.Y); row != nil {
			row.Insert(at.X, c)
		}
	}
	d.unhighlightRows(at.Y)
}

func (d *Document) insertNewline(at Position) {
	if d.IsEmpty() {
		d.rows = append(d.rows, NewRow(""), NewRow(""))
		return
	}
	row := d.Row(at.Y)
	if row == nil {
		return
	}
	rest := row.Split(at.X)
	d.rows = append(d.rows, nil)
	copy(d.rows[at.Y+2:], d.rows[at.Y+1:])
	d.rows[at.Y+1] = rest
}

// Delete removes the grapheme at the given position. At the end of a row
// with a following row, the following row is merged onto the current one
// instead (delete-at-end-of-line joins lines). At the very end of the
// document, or on an empty document, it is a no-op.
func (d *Document) Delete(at Position) {
	if at.Y < 0 || at.X < 0 {
		return
	}
	if d.IsEmpty() || at.X == d.RowLen(at.Y) && d.Row(at.Y+1) == nil {
		return
	}

	d.dirty = true

	if at.X == d.RowLen(at.Y) && at.Y+1 < len(d.rows) {
		next := d.rows[at.Y+1]
		d.rows = append(d.rows[:at.Y+1], d.rows[at.Y+2:]...)
		d.rows[at.Y].Append(next)
	} else if row := d.Row(at.Y); row != nil {
		row.Delete(at.X)
	}
	d.unhighlightRows(at.Y)
}

// unhighlightRows invalidates cached highlighting from the row above
// start through the end of the document. The extra row above is needed
// because an edit can change whether that row's trailing block-comment
// state reaches the rows below.
func (d *Document) unhighlightRows(start int) {
	if start > 0 {
		start--
	}
	for _, row := range d.rows[min(start, len(d.rows)):] {
		row.highlighted = false
	}
}

// Find searches for query starting at the given position. Forward search
// scans the starting row from at.X, then wraps to following rows at
// column 0. Backward search scans the starting row up to at.X, then moves
// to the previous row starting at its full length.
func (d *Document) Find(query string, at Position, direction SearchDirection) (Position, bool) {
	pos := at

	start, end := at.Y, len(d.rows)
	if direction == SearchBackward {
		start, end = 0, at.Y+1
	}
	for i := start; i < end; i++ {
		row := d.Row(pos.Y)
		if row == nil {
			return Position{}, false
		}
		if x, ok := row.Find(query, pos.X, direction); ok {
			pos.X = x
			return pos, true
		}
		if direction == SearchForward {
			pos.Y++
			pos.X = 0
		} else {
			if pos.Y > 0 {
				pos.Y--
			}
			pos.X = d.rows[pos.Y].Len()
		}
	}
	return Position{}, false
}

// Highlight recomputes highlighting for rows 0 through until+1 inclusive,
// threading the block-comment state from each row into the next as an
// explicit value. A negative until, or one reaching past the last row,
// highlights the whole document; search-mode callers pass -1 because the
// word can match anywhere.
func (d *Document) Highlight(word string, until int) {
	bound := len(d.rows)
	if until >= 0 && until+2 < len(d.rows) {
		bound = until + 2
	}

	startWithComment := false
	for _, row := range d.rows[:bound] {
		startWithComment = row.Highlight(d.fileType.Options, word, startWithComment)
	}
}

// classify wraps a filesystem error with the document error kind it maps
// to, preserving the underlying cause.
func classify(op, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s %s: %w: %w", op, path, ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s %s: %w: %w", op, path, ErrPermission, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
