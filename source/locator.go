package source

import (
	"strings"

	"github.com/dnr/reflow/comment"
)

// Comment is one comment found in a source file.
type Comment struct {
	Kind comment.Kind
	// Offset and Length locate Text in the file. A line comment includes
	// its line terminator.
	Offset int
	Length int
	Text   string
	// Line is the 1-based line the comment starts on.
	Line int
	// Indent is the whitespace before the comment on its line.
	Indent string
	// Standalone is set when the comment is alone on its lines: only
	// whitespace precedes it and, for block comments, follows it.
	Standalone bool
}

// Scan finds the comments in src, skipping string and character literals.
func Scan(src string, lang Language) []Comment {
	s := scanner{src: src, lang: lang, line: 1}
	return s.run()
}

type scanner struct {
	src  string
	lang Language
	pos  int
	line int
	out  []Comment
}

func (s *scanner) run() []Comment {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\n':
			s.line++
			s.pos++
		case strings.HasPrefix(s.src[s.pos:], "//"):
			s.lineComment()
		case strings.HasPrefix(s.src[s.pos:], "/*"):
			s.blockComment()
		case s.lang.TextBlocks && strings.HasPrefix(s.src[s.pos:], `"""`):
			s.delimited(`"""`)
		case c == '"' || c == '\'':
			s.quoted(c)
		case c == '`' && s.lang.RawStrings:
			s.delimited("`")
		default:
			s.pos++
		}
	}
	return s.out
}

func (s *scanner) lineComment() {
	start := s.pos
	end := strings.IndexByte(s.src[start:], '\n')
	if end < 0 {
		end = len(s.src)
	} else {
		end += start + 1
	}
	s.emit(comment.KindLine, start, end, true)
	s.pos = end
	if end > start && s.src[end-1] == '\n' {
		s.line++
	}
}

func (s *scanner) blockComment() {
	start := s.pos
	end := strings.Index(s.src[start+2:], "*/")
	if end < 0 {
		end = len(s.src)
	} else {
		end += start + 4
	}
	kind, _ := comment.DetectKind(s.src[start:end])
	rest := s.src[end:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	s.emit(kind, start, end, strings.TrimSpace(rest) == "")
	s.line += strings.Count(s.src[start:end], "\n")
	s.pos = end
}

func (s *scanner) emit(kind comment.Kind, start, end int, alone bool) {
	bol := strings.LastIndexByte(s.src[:start], '\n') + 1
	indent := s.src[bol:start]
	s.out = append(s.out, Comment{
		Kind:       kind,
		Offset:     start,
		Length:     end - start,
		Text:       s.src[start:end],
		Line:       s.line,
		Indent:     indent,
		Standalone: alone && strings.Trim(indent, " \t") == "",
	})
}

// quoted skips a string or character literal. An unterminated literal
// ends at the end of its line.
func (s *scanner) quoted(q byte) {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case q:
			s.pos++
			return
		case '\n':
			return
		}
		s.pos++
	}
}

// delimited skips a literal that may span lines.
func (s *scanner) delimited(d string) {
	s.pos += len(d)
	end := strings.Index(s.src[s.pos:], d)
	if end < 0 {
		end = len(s.src) - s.pos
	}
	s.line += strings.Count(s.src[s.pos:s.pos+end], "\n")
	s.pos = min(len(s.src), s.pos+end+len(d))
}
