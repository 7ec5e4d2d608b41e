package comment

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// docRegion formats "/** */" documentation comments. It understands block
// tags, a small HTML vocabulary and embedded code.
type docRegion struct {
	*blockRegion
	sub SubFormatter

	// code holds the begin and end offsets of each embedded code span.
	code []int
	// end is the end of the last token, used to close an unterminated
	// code span.
	end int
}

func newDocRegion(r *Region, sub SubFormatter) *docRegion {
	d := &docRegion{blockRegion: &blockRegion{Region: r}, sub: sub}
	r.hooks = d
	return d
}

func (d *docRegion) newLine() Line { return newDocLine() }

func (d *docRegion) mark() {
	d.end = d.queue[len(d.queue)-1].End()
	d.markBlockTags()

	d.markNested(immutableTags, Immutable, nestInclusive)
	if d.opts.FormatHTML {
		d.markTags(separatorTags, Separator, true, true)
		d.markTags(breakTags, Break, false, true)
		d.markTags(singleBreak, Break, true, false)
		d.markTags(newlineTags, ForceNewline, true, false)
	} else {
		d.markTags(codeTags, Separator, true, true)
	}
	if d.opts.FormatEmbeddedCode {
		d.markNested(codeTags, Code, nestInterior)
		d.collectCode()
	}
}

// markBlockTags flags "@tag" tokens that open a line-level block tag. Only
// a tag starting a source line counts; tags inside preformatted text are
// ignored.
func (d *docRegion) markBlockTags() {
	depth := 0
	paragraph := false
	for _, rg := range d.queue {
		if rg.Length() == 0 {
			continue
		}
		tok := d.token(rg)
		if t, ok := d.tag(rg); ok && immutableTags[t.name] {
			if t.closing {
				depth = max(0, depth-1)
			} else {
				depth++
			}
			continue
		}
		if depth > 0 || !isBlockTag(tok) || !rg.Has(FirstTokenOnSourceLine) {
			continue
		}
		if isParameterTag(tok) {
			rg.Mark(ParameterTagLine)
		} else {
			rg.Mark(RootTagLine)
		}
		if !paragraph {
			rg.Mark(ParagraphStart)
			paragraph = true
		}
	}
}

func (d *docRegion) tag(rg *Range) (htmlTag, bool) {
	if !rg.Has(HTML) {
		return htmlTag{}, false
	}
	return tokenTag(d.token(rg))
}

type nestScope int

const (
	// nestInclusive marks the tags and everything between them.
	nestInclusive nestScope = iota
	// nestInterior marks only what lies between the tags.
	nestInterior
)

// markNested marks tokens enclosed by any tag of set. Each tag name keeps
// its own nesting counter; close tags without an open are ignored.
func (d *docRegion) markNested(set tags, attr Attr, scope nestScope) {
	depth := make(map[atom.Atom]int)
	inside := 0
	for _, rg := range d.queue {
		t, ok := d.tag(rg)
		if !ok || !set[t.name] {
			if inside > 0 {
				rg.Mark(attr)
			}
			continue
		}
		switch {
		case !t.closing:
			depth[t.name]++
			inside++
			if scope == nestInclusive || inside > 1 {
				rg.Mark(attr)
			}
		case depth[t.name] > 0:
			depth[t.name]--
			inside--
			if scope == nestInclusive || inside > 0 {
				rg.Mark(attr)
			}
		default:
			if inside > 0 {
				rg.Mark(attr)
			}
		}
	}
}

// markTags marks the open and/or close tags of set themselves.
func (d *docRegion) markTags(set tags, attr Attr, open, close bool) {
	for _, rg := range d.queue {
		t, ok := d.tag(rg)
		if !ok || !set[t.name] {
			continue
		}
		if t.closing && close || !t.closing && open {
			rg.Mark(attr)
		}
	}
}

// collectCode records the boundaries of each run of Code tokens: from the
// end of the opening tag to the start of the closing one.
func (d *docRegion) collectCode() {
	in := false
	var prev *Range
	for _, rg := range d.queue {
		c := rg.Has(Code)
		switch {
		case c && !in && prev != nil:
			d.code = append(d.code, prev.End())
		case !c && in:
			d.code = append(d.code, rg.offset)
		}
		in = c && (in || prev != nil)
		prev = rg
	}
}

func (d *docRegion) canAppend(line Line, previous, next *Range, used, width int) bool {
	if d.inlineAt(line, previous, next) {
		return true
	}
	if ok, decided := d.breakRules(line, previous, next); decided {
		return ok
	}
	if previous != nil && (previous.Has(RootTagLine) || previous.Has(Immutable) && next.Has(Immutable)) {
		return true
	}
	need := d.width(next)
	if next.Has(Immutable) && (previous == nil || !previous.Has(Immutable)) {
		need = d.immutableRun(next)
	}
	return d.fits(line, next, used, width, need)
}

// inlineAt reports whether next is an "@word" in running text. Such a word
// must not start an output line, where it would read as a block tag.
func (d *docRegion) inlineAt(line Line, previous, next *Range) bool {
	return len(line.Ranges()) > 0 && previous != nil && !previous.Has(BlankLine) &&
		!next.HasAny(ParameterTagLine|RootTagLine|Immutable|Code) &&
		isBlockTag(d.token(next))
}

// immutableRun measures the immutable tokens that follow next on its source
// line, next included. Such a run is never split.
func (d *docRegion) immutableRun(next *Range) int {
	src := d.sourceLine(next.offset)
	end := next.End()
	for _, rg := range d.queue {
		if rg == next {
			continue
		}
		if !rg.Has(Immutable) || d.sourceLine(rg.offset) != src {
			break
		}
		end = rg.End()
	}
	s, _ := d.slice(next.offset, end-next.offset)
	return textWidth(s)
}

func (d *docRegion) canFormat(left, right *Range) bool {
	return right != nil && !(left.Has(Immutable) && right.Has(Immutable))
}

func (d *docRegion) splice() {
	if !d.opts.FormatEmbeddedCode || d.sub == nil || len(d.code) == 0 {
		return
	}
	bounds := d.code
	open := len(bounds)%2 == 1
	if open {
		bounds = append(bounds, d.end)
	}
	for i := len(bounds) - 2; i >= 0; i -= 2 {
		d.formatSnippet(bounds[i], bounds[i+1], open && i == len(bounds)-2)
	}
}

// formatSnippet hands the code between begin and end to the sub-formatter
// and replaces it with the result, re-escaped and re-prefixed. unclosed is
// set for a code span that runs to the end of the comment.
func (d *docRegion) formatSnippet(begin, end int, unclosed bool) {
	raw, ok := d.slice(begin, end-begin)
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}
	code := HTMLToSource(stripContentMarkers(raw, d.delim))
	edits, ok := d.sub.FormatUnit(UnitUnknown, code, 0, d.delim, d.nestedOptions())
	if !ok {
		d.log.Debug("embedded code left as is", "offset", d.sink.base+begin)
		return
	}
	formatted, err := Apply(code, 0, edits)
	if err != nil {
		d.log.Warn("bad edits for embedded code",
			"offset", d.sink.base+begin, "length", end-begin, "reason", err.Error())
		return
	}
	formatted = trimLines(formatted, d.delim)
	if formatted == "" {
		return
	}
	formatted = d.delim + formatted
	if !unclosed {
		formatted += d.delim
	}
	out := d.prefixLines(SourceToHTML(formatted), unclosed)
	d.sink.reserve(begin, end)
	d.sink.replaceReserved(out, begin, end-begin)
}

// nestedOptions are the preferences for the sub-formatter. Embedded code is
// formatted one level deep only, and comments inside a snippet get the
// width left after the snippet's own prefix.
func (d *docRegion) nestedOptions() Options {
	o := d.opts
	o.FormatEmbeddedCode = false
	o.LineWidth = max(1, o.LineWidth-d.opts.measure(d.indent)-len(blockContent))
	return o
}

// stripContentMarkers removes the leading " * " of every line but the
// first, which continues the line of the opening tag.
func stripContentMarkers(s, sep string) string {
	lines := splitLines(s)
	for i := 1; i < len(lines); i++ {
		t := strings.TrimLeft(lines[i], " \t")
		if strings.HasPrefix(t, "*") {
			lines[i] = strings.TrimPrefix(t[1:], " ")
		}
	}
	return strings.Join(lines, sep)
}

// trimLines strips trailing blanks from every line and drops leading and
// trailing empty lines.
func trimLines(s, sep string) string {
	lines := splitLines(s)
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, sep)
}

// prefixLines puts the content marker in front of every line after the
// first. The final line is left open for the closing tag unless unclosed.
func (d *docRegion) prefixLines(s string, unclosed bool) string {
	lines := splitLines(s)
	var b strings.Builder
	b.WriteString(lines[0])
	for i, l := range lines[1:] {
		b.WriteString(d.delim)
		b.WriteString(d.indent)
		last := i == len(lines)-2
		if l == "" && !(last && !unclosed) {
			b.WriteString(strings.TrimRight(blockContent, " "))
			continue
		}
		b.WriteString(blockContent)
		b.WriteString(l)
	}
	return b.String()
}

// splitLines splits s at any line terminator.
func splitLines(s string) []string {
	var out []string
	pos := 0
	for {
		end, next := lineEnd(s, pos)
		out = append(out, s[pos:end])
		if next == end {
			return out
		}
		pos = next
		if pos == len(s) {
			return append(out, "")
		}
	}
}
