package comment

import "strings"

const (
	blockStart   = "/* "
	docStart     = "/** "
	blockContent = " * "
	blockEnd     = " */"
	closer       = "*/"
)

type blockLine struct {
	lineBase
	start string
}

func newBlockLine() *blockLine { return &blockLine{start: blockStart} }

func (l *blockLine) StartMarker() string   { return l.start }
func (l *blockLine) ContentMarker() string { return blockContent }
func (l *blockLine) EndMarker() string     { return blockEnd }

func (l *blockLine) append(r *Region, rg *Range) {
	l.lineBase.append(r, rg)
	if len(l.ranges) != 1 || !r.opts.IndentRootTags {
		return
	}
	tag, _ := r.slice(rg.offset, rg.length)
	switch {
	case l.attrs.Has(RootTagLine):
		l.ref = tag + " "
	case l.attrs.Has(ParameterTagLine):
		l.ref = tag + " "
		if r.opts.IndentParameterDescription {
			l.ref = "\t" + l.ref
		}
	}
}

func (l *blockLine) adapt(prev Line, first *Range) {
	if first.HasAny(RootTagLine|ParameterTagLine) || prev.Attrs().Has(BlankLine) {
		return
	}
	l.ref = prev.reference()
}

// closerStart returns the index of the run of '*' that ends with the
// comment closer at the end of text, not looking before from.
func closerStart(text string, from int) (int, bool) {
	t := strings.TrimRight(text, " \t")
	if !strings.HasSuffix(t, closer) || len(t)-len(closer) < from {
		return 0, false
	}
	i := len(t) - len(closer)
	for i > from && t[i-1] == '*' {
		i--
	}
	return i, true
}

func (l *blockLine) scan(r *Region, index int) bool {
	rg := l.first()
	text, ok := r.slice(rg.offset, rg.length)
	if !ok {
		return false
	}
	last := index == len(r.physical)-1
	begin, end := 0, len(text)
	if index == 0 {
		start := strings.TrimRight(l.start, " ")
		lead := len(text) - len(strings.TrimLeft(text, " \t"))
		if !strings.HasPrefix(text[lead:], start) {
			return false
		}
		begin = lead + len(start)
		stars := begin
		for stars < len(text) && text[stars] == '*' {
			stars++
		}
		if last {
			c, ok := closerStart(text, begin)
			if !ok {
				return false
			}
			begin, end = min(stars, c), c
		} else {
			if stars > begin {
				r.borders |= upperBorder
			}
			begin = stars
		}
	} else {
		lead := len(text) - len(strings.TrimLeft(text, " \t"))
		if last {
			c, ok := closerStart(text, 0)
			if !ok {
				return false
			}
			if len(strings.TrimRight(text, " \t"))-c > len(closer) {
				r.borders |= lowerBorder
			}
			end = c
		}
		begin = lead
		if lead < end && text[lead] == '*' {
			begin++
		}
	}
	if begin > end {
		begin = end
	}
	rg.TrimStart(begin)
	rg.TrimEnd(rg.length - (end - begin))
	return true
}

func (l *blockLine) tokenize(r *Region, index int) {
	interior := index > 0 && index < len(r.physical)-1
	tokenizeRange(r, l.first(), interior && !r.opts.clearBlankLines(r.kind))
}

func (l *blockLine) renderUpperBorder(r *Region, first *Range) {
	var b strings.Builder
	if r.oneLiner() {
		b.WriteString(l.start)
	} else {
		start := strings.TrimRight(l.start, " ")
		b.WriteString(start)
		if r.borders&upperBorder != 0 {
			b.WriteString(strings.Repeat("*", max(0, r.borderWidth()-len(start))))
		}
		b.WriteString(r.lineBreak(l, first))
	}
	r.sink.replace(b.String(), 0, first.offset)
}

func (l *blockLine) renderLowerBorder(r *Region, last *Range) {
	var b strings.Builder
	switch {
	case r.oneLiner():
		b.WriteString(blockEnd)
	case r.borders&lowerBorder != 0:
		b.WriteString(r.delim)
		b.WriteString(r.indent)
		b.WriteString(" ")
		b.WriteString(strings.Repeat("*", max(0, r.borderWidth()-len(blockEnd))))
		b.WriteString(closer)
	default:
		b.WriteString(r.delim)
		b.WriteString(r.indent)
		b.WriteString(blockEnd)
	}
	r.sink.replace(b.String(), last.End(), r.limit-last.End())
}

// docLine is a blockLine opened with the documentation marker.
type docLine struct {
	*blockLine
}

func newDocLine() docLine {
	return docLine{&blockLine{start: docStart}}
}
