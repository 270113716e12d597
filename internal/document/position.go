package document

import "fmt"

// Position locates a grapheme in the document. X is the grapheme column
// within the row, Y the row index. Both are 0-indexed.
type Position struct {
	X int
	Y int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Y, p.X)
}

// SearchDirection selects which way Find scans from a position.
type SearchDirection int

const (
	// SearchForward scans toward the end of the document.
	SearchForward SearchDirection = iota
	// SearchBackward scans toward the beginning of the document.
	SearchBackward
)
