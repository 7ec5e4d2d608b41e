package comment

import "strings"

// Line is one output line of a reformatted comment. The set of
// implementations is closed: singleLine for "//" comments, blockLine for
// "/* */" comments and docLine for "/** */" comments.
type Line interface {
	StartMarker() string
	ContentMarker() string
	EndMarker() string

	// Ranges returns the tokens assigned to the line, in source order.
	Ranges() []*Range
	// Attrs reports whether the line carries a root tag, a parameter tag
	// or a blank-line marker.
	Attrs() Attr

	// scan strips the comment markers from the physical line's single raw
	// range. It reports false when the markers cannot be recognised.
	scan(r *Region, index int) bool
	// tokenize splits the stripped content into tokens on the region queue.
	tokenize(r *Region, index int)
	// adapt inherits the hanging indentation reference of prev before
	// first is appended.
	adapt(prev Line, first *Range)
	append(r *Region, rg *Range)
	reference() string

	renderUpperBorder(r *Region, first *Range)
	renderLowerBorder(r *Region, last *Range)
}

type lineBase struct {
	ranges []*Range
	attrs  Attr
	ref    string
}

func (l *lineBase) Ranges() []*Range  { return l.ranges }
func (l *lineBase) Attrs() Attr       { return l.attrs }
func (l *lineBase) reference() string { return l.ref }

func (l *lineBase) first() *Range { return l.ranges[0] }

func (l *lineBase) append(r *Region, rg *Range) {
	switch {
	case rg.Has(ParameterTagLine):
		l.attrs |= ParameterTagLine
	case rg.Has(RootTagLine):
		l.attrs |= RootTagLine
	case rg.Has(BlankLine):
		l.attrs |= BlankLine
	}
	l.ranges = append(l.ranges, rg)
}

func (l *lineBase) adapt(Line, *Range) {}

// tokenizeRange splits the content of rg into word tokens. Recognised HTML
// tags and inline links become single tokens even when they contain
// blanks. When blank is set, an all-whitespace line yields a zero-length
// BlankLine token.
func tokenizeRange(r *Region, rg *Range, blank bool) {
	begin := rg.offset
	content, ok := r.slice(rg.offset, rg.length)
	if !ok {
		return
	}
	n := len(content)
	off := 0
	for off < n && isSpace(content[off]) {
		off++
	}
	if off >= n {
		if blank {
			r.queue = append(r.queue, newBlankRange(begin))
		}
		return
	}
	attr := FirstTokenOnSourceLine | StartsWithDelimiter
	for off < n {
		for off < n && isSpace(content[off]) {
			off++
			attr |= StartsWithDelimiter
		}
		if off >= n {
			break
		}
		end, tag := scanToken(content, off)
		tok := newRange(begin+off, end-off)
		tok.Mark(attr | tag)
		r.queue = append(r.queue, tok)
		off = end
		attr = 0
	}
}

// scanToken returns the end of the token starting at s[off] together with
// the HTML attributes it carries.
func scanToken(s string, off int) (int, Attr) {
	switch {
	case s[off] == '<':
		if gt := strings.IndexByte(s[off+1:], '>'); gt >= 0 {
			inner := s[off+1 : off+1+gt]
			if !strings.ContainsRune(inner, '<') {
				if t, ok := parseTag(inner); ok {
					if t.closing {
						return off + gt + 2, HTML | HTMLCloseTag
					}
					return off + gt + 2, HTML | HTMLOpenTag
				}
			}
		}
		return scanWord(s, off+1), 0
	case strings.HasPrefix(s[off:], linkPrefix):
		if c := strings.IndexByte(s[off:], linkSuffix); c >= 0 {
			return off + c + 1, 0
		}
		return len(s), 0
	default:
		return scanWord(s, off), 0
	}
}

func scanWord(s string, i int) int {
	for i < len(s) && !isSpace(s[i]) && s[i] != '<' && !strings.HasPrefix(s[i:], linkPrefix) {
		i++
	}
	return i
}

const singleMarker = "// "

type singleLine struct {
	lineBase
	verbatim bool
}

func (l *singleLine) StartMarker() string   { return singleMarker }
func (l *singleLine) ContentMarker() string { return singleMarker }
func (l *singleLine) EndMarker() string     { return singleMarker }

func (l *singleLine) scan(r *Region, index int) bool {
	rg := l.first()
	text, ok := r.slice(rg.offset, rg.length)
	if !ok {
		return false
	}
	prefix := strings.TrimSpace(singleMarker)
	lead := len(text) - len(strings.TrimLeft(text, " \t"))
	if !strings.HasPrefix(text[lead:], prefix) {
		return false
	}
	rest := text[lead+len(prefix):]
	if strings.HasPrefix(text[lead:], nlsPrefix) || isDirective(rest) {
		l.verbatim = true
	}
	rg.TrimStart(lead + len(prefix))
	rg.TrimEnd(len(rest) - len(strings.TrimRight(rest, " \t")))
	return true
}

func (l *singleLine) tokenize(r *Region, index int) {
	if l.verbatim {
		return
	}
	tokenizeRange(r, l.first(), false)
}

func (l *singleLine) renderUpperBorder(r *Region, first *Range) {
	r.sink.replace(l.ContentMarker(), 0, first.offset)
}

func (l *singleLine) renderLowerBorder(r *Region, last *Range) {
	tail := ""
	if r.terminated {
		tail = r.delim
	}
	r.sink.replace(tail, last.End(), len(r.text)-last.End())
}

// isDirective reports whether the text following "//" is a tool directive
// or a decorative rule that must stay byte-for-byte.
func isDirective(rest string) bool {
	if rest == "" || isSpace(rest[0]) {
		return false
	}
	if rest[0] == '/' || rest[0] == '-' && strings.Trim(rest, "-") == "" {
		return true
	}
	word, _, _ := strings.Cut(rest, " ")
	switch word {
	case "export", "line", "extern":
		return true
	}
	colon := strings.IndexByte(word, ':')
	return colon > 0 && colon < len(word)-1
}
