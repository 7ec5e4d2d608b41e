package comment

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// substitutionReader reads runes from an underlying reader and lets a
// substitute function replace each one with an arbitrary string. The
// substitute function may consume further runes through next and push
// back at most one rune through unread.
type substitutionReader struct {
	src        *bufio.Reader
	pending    []byte
	substitute func(r *substitutionReader, c rune) (string, error)
	err        error
}

func newSubstitutionReader(src io.Reader, fn func(*substitutionReader, rune) (string, error)) *substitutionReader {
	return &substitutionReader{src: bufio.NewReader(src), substitute: fn}
}

func (r *substitutionReader) next() (rune, error) {
	c, _, err := r.src.ReadRune()
	return c, err
}

func (r *substitutionReader) unread() {
	_ = r.src.UnreadRune()
}

func (r *substitutionReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) > 0 {
			m := copy(p[n:], r.pending)
			r.pending = r.pending[m:]
			n += m
			continue
		}
		if r.err != nil {
			break
		}
		c, err := r.next()
		if err != nil {
			r.err = err
			break
		}
		s, err := r.substitute(r, c)
		if err != nil && err != io.EOF {
			r.err = err
		} else if err == io.EOF {
			r.err = io.EOF
		}
		r.pending = append(r.pending, s...)
	}
	if n == 0 && r.err != nil {
		return 0, r.err
	}
	return n, nil
}

var sourceToEntity = map[rune]string{
	'<': "&lt;",
	'>': "&gt;",
	'&': "&amp;",
	'^': "&circ;",
	'~': "&tilde;",
	'"': "&quot;",
}

var entityToSource = map[string]rune{
	"lt":    '<',
	"gt":    '>',
	"amp":   '&',
	"circ":  '^',
	"tilde": '~',
	"quot":  '"',
}

// maxEntity bounds the name between '&' and ';'.
const maxEntity = 10

// NewSourceToHTMLReader escapes source code so that it can be placed inside
// a documentation comment. Besides the HTML specials it rewrites "*/",
// which would end the comment, and an '@' opening a line, which would read
// as a block tag.
func NewSourceToHTMLReader(src io.Reader) io.Reader {
	lineStart := true
	return newSubstitutionReader(src, func(r *substitutionReader, c rune) (string, error) {
		var b strings.Builder
		for c == '*' {
			b.WriteRune(c)
			lineStart = false
			var err error
			if c, err = r.next(); err != nil {
				return b.String(), err
			}
		}
		switch {
		case c == '/' && b.Len() > 0:
			s := b.String()
			return s[:len(s)-1] + "&#42;/", nil
		case c == '@' && lineStart:
			b.WriteString("&#064;")
		case sourceToEntity[c] != "":
			b.WriteString(sourceToEntity[c])
		default:
			b.WriteRune(c)
		}
		switch {
		case c == '\n' || c == '\r':
			lineStart = true
		case c != ' ' && c != '\t':
			lineStart = false
		}
		return b.String(), nil
	})
}

// NewHTMLToSourceReader reverses NewSourceToHTMLReader. It decodes the
// named entities it knows plus decimal and hexadecimal character
// references; anything else is passed through.
func NewHTMLToSourceReader(src io.Reader) io.Reader {
	return newSubstitutionReader(src, func(r *substitutionReader, c rune) (string, error) {
		if c != '&' {
			return string(c), nil
		}
		var name strings.Builder
		for name.Len() <= maxEntity {
			d, err := r.next()
			if err != nil {
				return "&" + name.String(), err
			}
			if d == ';' {
				if dec, ok := decodeEntity(name.String()); ok {
					return string(dec), nil
				}
				return "&" + name.String() + ";", nil
			}
			if d == '&' || d >= utf8.RuneSelf || !(d == '#' || isAlnum(byte(d))) {
				r.unread()
				break
			}
			name.WriteRune(d)
		}
		return "&" + name.String(), nil
	})
}

func decodeEntity(name string) (rune, bool) {
	if c, ok := entityToSource[name]; ok {
		return c, true
	}
	if !strings.HasPrefix(name, "#") || len(name) < 2 {
		return 0, false
	}
	num, base := name[1:], 10
	if num[0] == 'x' || num[0] == 'X' {
		num, base = num[1:], 16
	}
	v, err := strconv.ParseUint(num, base, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, false
	}
	return rune(v), true
}

// SourceToHTML escapes s with NewSourceToHTMLReader.
func SourceToHTML(s string) string {
	return readAll(NewSourceToHTMLReader(strings.NewReader(s)))
}

// HTMLToSource unescapes s with NewHTMLToSourceReader.
func HTMLToSource(s string) string {
	return readAll(NewHTMLToSourceReader(strings.NewReader(s)))
}

func readAll(r io.Reader) string {
	b, _ := io.ReadAll(r)
	return string(b)
}
