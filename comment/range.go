package comment

import "fmt"

// Range is a token-level span over a region's text. Offsets are relative to
// the start of the comment. A Range is created by scan or tokenize and is
// moved into exactly one Line by wrap.
type Range struct {
	offset int
	length int
	attrs  Attr
}

func newRange(offset, length int) *Range {
	if offset < 0 || length < 0 {
		panic(fmt.Sprintf("comment: invalid range [%d,+%d)", offset, length))
	}
	return &Range{offset: offset, length: length}
}

// newBlankRange returns the zero-length marker for a blank source line.
func newBlankRange(offset int) *Range {
	r := newRange(offset, 0)
	r.attrs = BlankLine | FirstTokenOnSourceLine
	return r
}

func (r *Range) Offset() int { return r.offset }
func (r *Range) Length() int { return r.length }
func (r *Range) End() int    { return r.offset + r.length }
func (r *Range) Attrs() Attr { return r.attrs }

// Mark raises the given attribute bits.
func (r *Range) Mark(a Attr) { r.attrs |= a }

// Has reports whether all bits of a are set.
func (r *Range) Has(a Attr) bool { return r.attrs.Has(a) }

// HasAny reports whether any bit of a is set.
func (r *Range) HasAny(a Attr) bool { return r.attrs.HasAny(a) }

// TrimStart drops delta bytes from the front of the range.
func (r *Range) TrimStart(delta int) {
	if delta < 0 || delta > r.length {
		panic(fmt.Sprintf("comment: trim start %d outside range [%d,+%d)", delta, r.offset, r.length))
	}
	r.offset += delta
	r.length -= delta
}

// TrimEnd shrinks (positive delta) or grows (negative delta) the tail.
func (r *Range) TrimEnd(delta int) {
	if delta > r.length {
		panic(fmt.Sprintf("comment: trim end %d outside range [%d,+%d)", delta, r.offset, r.length))
	}
	r.length -= delta
}

// Shift moves the range by delta bytes.
func (r *Range) Shift(delta int) {
	if r.offset+delta < 0 {
		panic(fmt.Sprintf("comment: shift %d moves range [%d,+%d) before start", delta, r.offset, r.length))
	}
	r.offset += delta
}

func (r *Range) String() string {
	return fmt.Sprintf("[%d,+%d %s]", r.offset, r.length, r.attrs)
}
