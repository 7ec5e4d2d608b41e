package source

import (
	"go/format"
	"log/slog"
	"strings"

	"github.com/dnr/reflow/comment"
)

// GoSnippetFormatter formats Go code embedded in documentation comments.
// A snippet may be a whole file, a list of declarations or a list of
// statements. Comments inside the snippet are reflowed too, without
// descending into their own embedded code.
type GoSnippetFormatter struct {
	Log *slog.Logger
}

var goLang, _ = LanguageFor("x.go")

func (g *GoSnippetFormatter) FormatUnit(kind comment.UnitKind, src string, indentLevel int, sep string, opts comment.Options) ([]comment.Edit, bool) {
	log := g.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	code := src
	if sep != "\n" {
		code = strings.ReplaceAll(code, sep, "\n")
	}
	out, err := format.Source([]byte(code))
	if err != nil {
		log.Debug("snippet is not Go", "err", err)
		return nil, false
	}
	text := string(out)

	opts.FormatEmbeddedCode = false
	if f, err := comment.New(opts, comment.WithLogger(log)); err == nil {
		formatted, _, err := FormatFile(f, text, goLang)
		if err != nil {
			log.Warn("reflowing comments in snippet", "err", err)
		}
		text = formatted
	}
	if indentLevel > 0 {
		text = indentLines(text, opts.IndentString(indentLevel))
	}
	if sep != "\n" {
		text = strings.ReplaceAll(text, "\n", sep)
	}
	return []comment.Edit{{Offset: 0, Length: len(src), Text: text}}, true
}

func indentLines(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = indent + l
		}
	}
	return strings.Join(lines, "\n")
}
