package comment

import (
	"strings"
	"unicode"
)

// blockRegion formats "/* */" comments.
type blockRegion struct {
	*Region
}

func newBlockRegion(r *Region) *blockRegion {
	b := &blockRegion{Region: r}
	r.hooks = b
	return b
}

func (b *blockRegion) newLine() Line { return newBlockLine() }

func (b *blockRegion) canAppend(line Line, previous, next *Range, used, width int) bool {
	if ok, decided := b.breakRules(line, previous, next); decided {
		return ok
	}
	return b.fits(line, next, used, width, b.width(next))
}

// breakRules decides the cases that do not depend on the remaining width.
func (b *blockRegion) breakRules(line Line, previous, next *Range) (ok, decided bool) {
	switch {
	case len(line.Ranges()) == 0:
		return true, true
	case previous != nil && forcesBreak(previous, next):
		return false, true
	case b.opts.NewLinePerParameter && line.Attrs().Has(ParameterTagLine) && len(line.Ranges()) > 1:
		return false, true
	case next.Length() <= 2 && !next.Has(BlankLine) && isPunctuation(b.token(next)):
		return true, true
	}
	return false, false
}

// forcesBreak reports whether next must start a new line after previous.
func forcesBreak(previous, next *Range) bool {
	return next.Has(BlankLine) || previous.Has(BlankLine) ||
		next.HasAny(ParameterTagLine|RootTagLine|Separator|ForceNewline) ||
		previous.HasAny(Break|Separator)
}

func isPunctuation(tok string) bool {
	for _, c := range tok {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

// fits applies the width budget to a token of the given display width.
// Tokens glued to their predecessor always fit.
func (b *blockRegion) fits(line Line, next *Range, used, width, need int) bool {
	if !next.Has(StartsWithDelimiter) {
		return true
	}
	if b.opts.IndentRootTags && !line.Attrs().HasAny(RootTagLine|ParameterTagLine) {
		width -= b.opts.measure(line.reference())
	}
	return used+need <= width
}

func (b *blockRegion) lineDelimiter(line, later Line, left, right *Range) string {
	next := b.lineBreak(later, right)
	if b.separated(left, right) {
		return b.delim + b.indent + strings.TrimRight(later.ContentMarker(), " ") + next
	}
	if b.opts.IndentRootTags && !later.Attrs().HasAny(RootTagLine|ParameterTagLine|BlankLine) {
		next += strings.Repeat(" ", b.opts.measure(later.reference()))
	}
	return next
}

// separated reports whether a line break between left and right is doubled.
// A blank line contains nothing but its BlankLine range.
func (b *blockRegion) separated(left, right *Range) bool {
	if left == nil || left.Has(BlankLine) || right.Has(BlankLine) {
		return false
	}
	switch {
	case right.Has(Immutable|Separator) && !left.Has(Code):
		return true
	case left.Has(Immutable | Separator):
		return true
	case right.Has(ParagraphStart) && b.opts.BlankLineBeforeRootTags:
		return true
	}
	return false
}
