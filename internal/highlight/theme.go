package highlight

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"
)

// Theme maps categories to foreground colors, plus the status bar pair.
type Theme struct {
	colors   map[Category]colorful.Color
	StatusFg colorful.Color
	StatusBg colorful.Color
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		colors: map[Category]colorful.Color{
			CategoryNone:             rgb(255, 255, 255),
			CategoryNumber:           rgb(220, 163, 163),
			CategoryMatch:            rgb(38, 139, 210),
			CategoryString:           rgb(211, 54, 130),
			CategoryCharacter:        rgb(108, 113, 196),
			CategoryComment:          rgb(133, 153, 0),
			CategoryMultilineComment: rgb(133, 153, 0),
			CategoryPrimaryKeyword:   rgb(181, 137, 0),
			CategorySecondaryKeyword: rgb(42, 161, 152),
		},
		StatusFg: rgb(63, 63, 63),
		StatusBg: rgb(239, 239, 239),
	}
}

// Color returns the display color for a category. Unknown categories fall
// back to the CategoryNone color.
func (t Theme) Color(c Category) colorful.Color {
	if col, ok := t.colors[c]; ok {
		return col
	}
	return t.colors[CategoryNone]
}

// themeKeys maps the JSON keys under "colors" to categories.
var themeKeys = map[string]Category{
	"none":              CategoryNone,
	"number":            CategoryNumber,
	"match":             CategoryMatch,
	"string":            CategoryString,
	"character":         CategoryCharacter,
	"comment":           CategoryComment,
	"multiline_comment": CategoryMultilineComment,
	"primary_keyword":   CategoryPrimaryKeyword,
	"secondary_keyword": CategorySecondaryKeyword,
}

// LoadTheme reads a JSON theme file and overlays it on the default
// palette. Colors are hex strings ("#rrggbb") under "colors", with the
// status bar pair under "status.fg" and "status.bg". Missing keys keep
// their defaults; a malformed color is an error.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("load theme %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return Theme{}, fmt.Errorf("load theme %s: invalid JSON", path)
	}

	theme := DefaultTheme()
	json := string(data)

	for key, cat := range themeKeys {
		value := gjson.Get(json, "colors."+key)
		if !value.Exists() {
			continue
		}
		col, err := colorful.Hex(value.String())
		if err != nil {
			return Theme{}, fmt.Errorf("load theme %s: colors.%s: %w", path, key, err)
		}
		theme.colors[cat] = col
	}

	if value := gjson.Get(json, "status.fg"); value.Exists() {
		col, err := colorful.Hex(value.String())
		if err != nil {
			return Theme{}, fmt.Errorf("load theme %s: status.fg: %w", path, err)
		}
		theme.StatusFg = col
	}
	if value := gjson.Get(json, "status.bg"); value.Exists() {
		col, err := colorful.Hex(value.String())
		if err != nil {
			return Theme{}, fmt.Errorf("load theme %s: status.bg: %w", path, err)
		}
		theme.StatusBg = col
	}

	return theme, nil
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}
