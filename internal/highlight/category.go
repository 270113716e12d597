// Package highlight provides lexical classification for rows of text:
// the category set, per-language highlighting profiles, and the theme
// mapping categories to display colors.
package highlight

// Category is the lexical classification assigned to a single grapheme
// position. It is used only for display coloring.
type Category uint8

// Categories, in no particular order. CategoryNone means "plain text".
const (
	CategoryNone Category = iota
	CategoryNumber
	CategoryMatch
	CategoryString
	CategoryCharacter
	CategoryComment
	CategoryMultilineComment
	CategoryPrimaryKeyword
	CategorySecondaryKeyword

	categoryCount
)

// String returns the string representation of a category.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// IsComment returns true for both line and block comment categories.
func (c Category) IsComment() bool {
	return c == CategoryComment || c == CategoryMultilineComment
}

// IsKeyword returns true for both keyword categories.
func (c Category) IsKeyword() bool {
	return c == CategoryPrimaryKeyword || c == CategorySecondaryKeyword
}

var categoryNames = []string{
	CategoryNone:             "none",
	CategoryNumber:           "number",
	CategoryMatch:            "match",
	CategoryString:           "string",
	CategoryCharacter:        "character",
	CategoryComment:          "comment",
	CategoryMultilineComment: "comment.multiline",
	CategoryPrimaryKeyword:   "keyword.primary",
	CategorySecondaryKeyword: "keyword.secondary",
}
