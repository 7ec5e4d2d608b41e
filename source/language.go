package source

import (
	"log/slog"
	"path/filepath"

	"github.com/dnr/reflow/comment"
)

// Language describes the lexical features the comment locator needs.
type Language struct {
	Name string
	// RawStrings enables backquoted raw string literals.
	RawStrings bool
	// TextBlocks enables triple-quoted string literals.
	TextBlocks bool
}

var languages = map[string]Language{
	".go":    {Name: "go", RawStrings: true},
	".java":  {Name: "java", TextBlocks: true},
	".js":    {Name: "javascript", RawStrings: true},
	".jsx":   {Name: "javascript", RawStrings: true},
	".ts":    {Name: "typescript", RawStrings: true},
	".tsx":   {Name: "typescript", RawStrings: true},
	".c":     {Name: "c"},
	".h":     {Name: "c"},
	".cc":    {Name: "c++"},
	".cpp":   {Name: "c++"},
	".hpp":   {Name: "c++"},
	".cs":    {Name: "c#"},
	".rs":    {Name: "rust"},
	".swift": {Name: "swift"},
	".kt":    {Name: "kotlin", TextBlocks: true},
	".scala": {Name: "scala", TextBlocks: true},
	".php":   {Name: "php"},
}

// LanguageFor returns the language for a file name. Files with "#" or
// "--" comments are not supported.
func LanguageFor(path string) (Language, bool) {
	l, ok := languages[filepath.Ext(path)]
	return l, ok
}

// LanguageNamed returns the language called name, such as "go" or "java".
func LanguageNamed(name string) (Language, bool) {
	for _, l := range languages {
		if l.Name == name {
			return l, true
		}
	}
	return Language{}, false
}

// SnippetFormatter returns the formatter for code embedded in the doc
// comments of lang, or nil when such code is left as written. Only Go
// snippets are formatted.
func SnippetFormatter(lang Language, log *slog.Logger) comment.SubFormatter {
	if lang.Name != "go" {
		return nil
	}
	return &GoSnippetFormatter{Log: log}
}
