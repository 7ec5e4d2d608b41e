package comment

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/rivo/uniseg"
)

type border uint8

const (
	upperBorder border = 1 << iota
	lowerBorder
)

// regionHooks are the steps a comment kind can specialise.
type regionHooks interface {
	newLine() Line
	// mark attaches structural attributes to the queued tokens.
	mark()
	canAppend(line Line, previous, next *Range, used, width int) bool
	canFormat(left, right *Range) bool
	lineDelimiter(line, later Line, left, right *Range) string
	// separated reports whether an empty line is inserted between left and
	// right when they end up on different lines. The line after such a gap
	// does not inherit a hanging indentation.
	separated(left, right *Range) bool
	// splice runs after wrapping and before rendering. Edits recorded here
	// take precedence over render edits in the spans they reserve.
	splice()
}

// Region is one comment being reformatted.
type Region struct {
	kind  Kind
	text  string
	opts  Options
	hooks regionHooks
	log   *slog.Logger
	sink  *editSink

	indent     string
	delim      string
	borders    border
	terminated bool
	limit      int

	starts   []int
	physical []Line
	lines    []Line
	queue    []*Range
}

func newRegion(kind Kind, text string, base, level int, opts Options, log *slog.Logger) *Region {
	r := &Region{
		kind:   kind,
		text:   text,
		opts:   opts,
		log:    log,
		sink:   newEditSink(base, text, log),
		indent: opts.IndentString(level),
		delim:  opts.LineSeparator,
	}
	r.hooks = r
	return r
}

func (r *Region) newLine() Line { return &singleLine{} }

// split creates one line per physical source line, each holding a single
// raw range.
func (r *Region) split() {
	pos := 0
	r.limit = len(r.text)
	for {
		r.starts = append(r.starts, pos)
		end, next := lineEnd(r.text, pos)
		l := r.hooks.newLine()
		l.append(r, newRange(pos, end-pos))
		r.physical = append(r.physical, l)
		if next == end {
			return
		}
		pos = next
		if pos == len(r.text) {
			r.terminated = true
			r.limit = end
			return
		}
	}
}

// lineEnd returns the end of the line starting at pos and the start of the
// following one. Both are len(s) on the last line.
func lineEnd(s string, pos int) (end, next int) {
	i := strings.IndexAny(s[pos:], "\r\n")
	if i < 0 {
		return len(s), len(s)
	}
	end = pos + i
	if s[end] == '\r' && end+1 < len(s) && s[end+1] == '\n' {
		return end, end + 2
	}
	return end, end + 1
}

func (r *Region) format() {
	if strings.HasPrefix(r.text, noFormatStart) {
		return
	}
	r.split()
	if !r.checkExtent() {
		return
	}
	for i, l := range r.physical {
		if !l.scan(r, i) {
			r.log.Warn("comment markers not recognised",
				"offset", r.sink.base+r.starts[i], "reason", "malformed")
			return
		}
		l.tokenize(r, i)
	}
	if len(r.queue) == 0 {
		return
	}
	r.hooks.mark()
	r.wrap(r.margin())
	r.hooks.splice()
	r.render()
}

// checkExtent rejects a line comment that continues past its first line.
func (r *Region) checkExtent() bool {
	if r.kind != KindLine || len(r.physical) == 1 {
		return true
	}
	for _, l := range r.physical[1:] {
		rg := l.Ranges()[0]
		if s, _ := r.slice(rg.offset, rg.length); strings.TrimSpace(s) != "" {
			r.log.Warn("line comment spans several lines",
				"offset", r.sink.base, "reason", "trailing content")
			return false
		}
	}
	r.physical = r.physical[:1]
	return true
}

func (r *Region) slice(offset, length int) (string, bool) {
	if offset < 0 || length < 0 || offset+length > len(r.text) {
		r.log.Warn("range outside comment",
			"offset", r.sink.base+offset, "length", length, "reason", "out of range")
		return "", false
	}
	return r.text[offset : offset+length], true
}

func (r *Region) token(rg *Range) string {
	s, _ := r.slice(rg.offset, rg.length)
	return s
}

// sourceLine returns the index of the physical line containing offset.
func (r *Region) sourceLine(offset int) int {
	return sort.SearchInts(r.starts, offset+1) - 1
}

// textWidth is the display width of s in terminal columns.
func textWidth(s string) int {
	return uniseg.StringWidth(strings.ReplaceAll(s, "\t", " "))
}

func (r *Region) width(rg *Range) int { return textWidth(r.token(rg)) }

func (r *Region) contentMarker() string {
	return r.hooks.newLine().ContentMarker()
}

// margin is the width available to comment text on each line.
func (r *Region) margin() int {
	return max(1, r.opts.LineWidth-r.opts.measure(r.indent)-len(r.contentMarker()))
}

// borderWidth is the width of a decorative border line, excluding the
// indentation.
func (r *Region) borderWidth() int {
	return r.margin() + len(r.contentMarker())
}

// oneLiner reports whether the comment occupied a single source line and
// still fits on one.
func (r *Region) oneLiner() bool {
	return len(r.physical) == 1 && len(r.lines) == 1
}

// wrap drains the queue into output lines.
func (r *Region) wrap(width int) {
	var previous *Range
	var prev Line
	for len(r.queue) > 0 {
		line := r.hooks.newLine()
		if prev != nil && !r.hooks.separated(previous, r.queue[0]) {
			line.adapt(prev, r.queue[0])
		}
		used := 0
		for len(r.queue) > 0 {
			next := r.queue[0]
			if len(line.Ranges()) > 0 && !r.hooks.canAppend(line, previous, next, used, width) {
				break
			}
			r.queue = r.queue[1:]
			line.append(r, next)
			used += r.width(next) + 1
			previous = next
		}
		r.lines = append(r.lines, line)
		prev = line
	}
}

func (r *Region) mark()   {}
func (r *Region) splice() {}

func (r *Region) separated(left, right *Range) bool { return false }

func (r *Region) canAppend(line Line, previous, next *Range, used, width int) bool {
	return len(line.Ranges()) == 0 || used+r.width(next) <= width
}

func (r *Region) canFormat(left, right *Range) bool {
	return right != nil
}

// lineBreak starts a new output line before next.
func (r *Region) lineBreak(l Line, next *Range) string {
	marker := l.ContentMarker()
	if next != nil && next.Has(BlankLine) {
		marker = strings.TrimRight(marker, " ")
	}
	return r.delim + r.indent + marker
}

func (r *Region) lineDelimiter(line, later Line, left, right *Range) string {
	return r.lineBreak(later, right)
}

// rangeDelimiter separates two tokens on the same line.
func (r *Region) rangeDelimiter(right *Range) string {
	if !right.Has(StartsWithDelimiter) {
		return ""
	}
	return " "
}

// render emits the edits that turn the source into the wrapped lines,
// working backwards from the end of the comment.
func (r *Region) render() {
	n := len(r.lines)
	if n == 0 {
		return
	}
	lastLine := r.lines[n-1].Ranges()
	r.lines[n-1].renderLowerBorder(r, lastLine[len(lastLine)-1])

	var later Line
	var right *Range
	for i := n - 1; i >= 0; i-- {
		line := r.lines[i]
		ranges := line.Ranges()
		for k := len(ranges) - 1; k >= 0; k-- {
			left := ranges[k]
			if r.hooks.canFormat(left, right) {
				off := left.End()
				delim := r.rangeDelimiter(right)
				if k == len(ranges)-1 {
					delim = r.hooks.lineDelimiter(line, later, left, right)
				}
				r.sink.replace(delim, off, right.offset-off)
			}
			right = left
		}
		later = line
	}
	r.lines[0].renderUpperBorder(r, right)
}
