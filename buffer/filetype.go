package buffer

import (
	"path/filepath"
	"strings"
)

// FileType names a document's language and the highlight categories used
// for it.
type FileType struct {
	Name    string
	Options HighlightOptions

	// Prose marks text documents where spell checking applies.
	Prose bool
}

var plainFileType = FileType{Name: "No filetype"}

var goFileType = FileType{
	Name: "Go",
	Options: HighlightOptions{
		Numbers:    true,
		Strings:    true,
		Characters: true,
		Comments:   true,
		PrimaryKeywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select", "struct",
			"switch", "type", "var",
		},
		SecondaryKeywords: []string{
			"any", "bool", "byte", "comparable", "complex64", "complex128", "error",
			"float32", "float64", "int", "int8", "int16", "int32", "int64", "rune",
			"string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
			"true", "false", "nil", "iota",
		},
	},
}

var rustFileType = FileType{
	Name: "Rust",
	Options: HighlightOptions{
		Numbers:    true,
		Strings:    true,
		Characters: true,
		Comments:   true,
		PrimaryKeywords: []string{
			"as", "break", "const", "continue", "crate", "else", "enum", "extern",
			"false", "fn", "for", "if", "impl", "in", "let", "loop", "match", "mod",
			"move", "mut", "pub", "ref", "return", "self", "Self", "static",
			"struct", "super", "trait", "true", "type", "unsafe", "use", "where",
			"while", "dyn",
		},
		SecondaryKeywords: []string{
			"bool", "char", "i8", "i16", "i32", "i64", "isize", "u8", "u16", "u32",
			"u64", "usize", "f32", "f64",
		},
	},
}

var cFileType = FileType{
	Name: "C",
	Options: HighlightOptions{
		Numbers:    true,
		Strings:    true,
		Characters: true,
		Comments:   true,
		PrimaryKeywords: []string{
			"break", "case", "const", "continue", "default", "do", "else", "enum",
			"extern", "for", "goto", "if", "return", "sizeof", "static", "struct",
			"switch", "typedef", "union", "volatile", "while",
		},
		SecondaryKeywords: []string{
			"char", "double", "float", "int", "long", "short", "signed", "unsigned",
			"void",
		},
	},
}

var markdownFileType = FileType{Name: "Markdown", Prose: true}

var textFileType = FileType{Name: "Text", Prose: true}

// DetectFileType returns the file type for filename based on its extension.
func DetectFileType(filename string) FileType {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".go":
		return goFileType
	case ".rs":
		return rustFileType
	case ".c", ".h":
		return cFileType
	case ".md", ".markdown", ".mdx":
		return markdownFileType
	case ".txt":
		return textFileType
	default:
		return plainFileType
	}
}
