package highlight

import (
	"path/filepath"
	"strings"
	"sync"
)

// Options selects which lexical rules a file type enables and the keyword
// sets the tokenizer matches. Keywords are expected to be ASCII.
type Options struct {
	Numbers           bool
	Strings           bool
	Characters        bool
	Comments          bool
	MultilineComments bool
	PrimaryKeywords   []string
	SecondaryKeywords []string
}

// FileType couples a display name with its highlighting options.
type FileType struct {
	Name    string
	Options Options
}

// PlainText is the profile for unknown file types: everything disabled.
func PlainText() FileType {
	return FileType{Name: "No filetype"}
}

// registry maps lowercased file extensions (".rs") to profiles. Built-ins
// are installed at init; user configuration may add more via Register.
var (
	registryMu sync.RWMutex
	registry   = map[string]FileType{
		".rs": rustFileType(),
		".go": goFileType(),
	}
)

// Register associates a file extension with a profile, replacing any
// previous registration. The extension match is case-insensitive and the
// leading dot is required.
func Register(ext string, ft FileType) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(ext)] = ft
}

// FromPath resolves the profile for a file name by its extension,
// case-insensitively. Unknown or absent extensions yield PlainText.
func FromPath(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return PlainText()
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	if ft, ok := registry[ext]; ok {
		return ft
	}
	return PlainText()
}

func rustFileType() FileType {
	return FileType{
		Name: "Rust",
		Options: Options{
			Numbers:           true,
			Strings:           true,
			Characters:        true,
			Comments:          true,
			MultilineComments: true,
			PrimaryKeywords: []string{
				"as", "break", "const", "continue", "crate", "else", "enum", "extern",
				"false", "fn", "for", "if", "impl", "in", "let", "loop", "match", "mod",
				"move", "mut", "pub", "ref", "return", "self", "Self", "static", "struct",
				"super", "trait", "true", "type", "unsafe", "use", "where", "while", "dyn",
				"abstract", "become", "box", "do", "final", "macro", "override", "priv",
				"typeof", "unsized", "virtual", "yield", "async", "await", "try",
			},
			SecondaryKeywords: []string{
				"bool", "char", "i8", "i16", "i32", "i64", "isize", "u8", "u16", "u32",
				"u64", "usize", "f32", "f64",
			},
		},
	}
}

func goFileType() FileType {
	return FileType{
		Name: "Go",
		Options: Options{
			Numbers:           true,
			Strings:           true,
			Characters:        true,
			Comments:          true,
			MultilineComments: true,
			PrimaryKeywords: []string{
				"break", "case", "chan", "const", "continue", "default", "defer",
				"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
				"interface", "map", "package", "range", "return", "select", "struct",
				"switch", "type", "var", "true", "false", "nil", "iota",
			},
			SecondaryKeywords: []string{
				"int", "int8", "int16", "int32", "int64",
				"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
				"float32", "float64", "complex64", "complex128",
				"bool", "byte", "rune", "string", "error", "any",
			},
		},
	}
}
