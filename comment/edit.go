package comment

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Edit replaces Length bytes at Offset with Text. Offsets are in the
// coordinates of the original document.
type Edit struct {
	Offset int
	Length int
	Text   string
}

// End returns the offset just past the replaced span.
func (e Edit) End() int { return e.Offset + e.Length }

func (e Edit) String() string {
	return fmt.Sprintf("{%d,+%d %q}", e.Offset, e.Length, e.Text)
}

// span is a half-open interval of region-relative offsets.
type span struct{ start, end int }

func (s span) overlaps(o span) bool {
	if s.start == s.end || o.start == o.end {
		if s.start == s.end && o.start == o.end {
			return s.start == o.start
		}
		p, q := s, o
		if q.start == q.end {
			p, q = q, p
		}
		return q.start < p.start && p.start < q.end
	}
	return s.start < o.end && o.start < s.end
}

// editSink accumulates the edits of one region. It works in region-relative
// coordinates and translates to document coordinates on output.
type editSink struct {
	base     int
	text     string
	edits    []Edit
	accepted []span
	reserved []span
	log      *slog.Logger
}

func newEditSink(base int, text string, log *slog.Logger) *editSink {
	return &editSink{base: base, text: text, log: log}
}

// reserve claims [start,end) for a later edit; ordinary edits touching it
// are discarded.
func (s *editSink) reserve(start, end int) {
	s.reserved = append(s.reserved, span{start, end})
}

// replace records a replacement of text[pos:pos+count] and returns the
// length of change. No-op replacements are dropped.
func (s *editSink) replace(change string, pos, count int) int {
	if pos < 0 || count < 0 || pos+count > len(s.text) {
		s.log.Warn("edit outside comment bounds",
			"offset", s.base+pos, "length", count, "reason", "out of range")
		return len(change)
	}
	if s.text[pos:pos+count] == change {
		return len(change)
	}
	sp := span{pos, pos + count}
	for _, r := range s.reserved {
		if sp.overlaps(r) || sp.start == r.start || sp.end == r.end {
			return len(change)
		}
	}
	s.push(sp, change)
	return len(change)
}

// replaceReserved records the edit for a span claimed with reserve.
func (s *editSink) replaceReserved(change string, pos, count int) {
	if pos < 0 || count < 0 || pos+count > len(s.text) {
		s.log.Warn("snippet outside comment bounds",
			"offset", s.base+pos, "length", count, "reason", "out of range")
		return
	}
	if s.text[pos:pos+count] == change {
		return
	}
	s.push(span{pos, pos + count}, change)
}

func (s *editSink) push(sp span, change string) {
	for _, a := range s.accepted {
		if sp.overlaps(a) {
			s.log.Warn("dropping overlapping edit",
				"offset", s.base+sp.start, "length", sp.end-sp.start, "reason", "overlap")
			return
		}
	}
	s.accepted = append(s.accepted, sp)
	s.edits = append(s.edits, Edit{Offset: s.base + sp.start, Length: sp.end - sp.start, Text: change})
}

// result returns the accepted edits sorted by offset.
func (s *editSink) result() []Edit {
	out := slices.Clone(s.edits)
	slices.SortStableFunc(out, func(a, b Edit) int {
		if a.Offset != b.Offset {
			return a.Offset - b.Offset
		}
		return a.Length - b.Length
	})
	return out
}

// Apply applies edits to text, which starts at document offset base.
// Edits must be sorted and must not overlap.
func Apply(text string, base int, edits []Edit) (string, error) {
	var b strings.Builder
	pos := 0
	for _, e := range edits {
		start := e.Offset - base
		if start < pos || e.Length < 0 || start+e.Length > len(text) {
			return "", fmt.Errorf("applying edit %v: out of order or out of range", e)
		}
		b.WriteString(text[pos:start])
		b.WriteString(e.Text)
		pos = start + e.Length
	}
	b.WriteString(text[pos:])
	return b.String(), nil
}

// MapPosition translates a document position through sorted edits.
// A position inside a replaced span moves to the corresponding place in
// the replacement, clamped to its end.
func MapPosition(pos int, edits []Edit) int {
	delta := 0
	for _, e := range edits {
		switch {
		case e.End() <= pos:
			delta += len(e.Text) - e.Length
		case e.Offset < pos:
			return e.Offset + delta + min(pos-e.Offset, len(e.Text))
		default:
			return pos + delta
		}
	}
	return pos + delta
}
