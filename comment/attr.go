package comment

import "strings"

// Attr is a set of semantic flags carried by a Range or a Line.
// Bits are only ever raised, never cleared.
type Attr uint16

const (
	BlankLine Attr = 1 << iota
	Break
	HTMLCloseTag
	Code
	HTML
	Immutable
	ForceNewline
	HTMLOpenTag
	ParagraphStart
	ParameterTagLine
	RootTagLine
	Separator
	FirstTokenOnSourceLine
	StartsWithDelimiter
)

var attrNames = []string{
	"BlankLine",
	"Break",
	"HTMLCloseTag",
	"Code",
	"HTML",
	"Immutable",
	"ForceNewline",
	"HTMLOpenTag",
	"ParagraphStart",
	"ParameterTagLine",
	"RootTagLine",
	"Separator",
	"FirstTokenOnSourceLine",
	"StartsWithDelimiter",
}

// Has reports whether every bit of mask is set.
func (a Attr) Has(mask Attr) bool { return a&mask == mask }

// HasAny reports whether at least one bit of mask is set.
func (a Attr) HasAny(mask Attr) bool { return a&mask != 0 }

func (a Attr) String() string {
	if a == 0 {
		return "0"
	}
	var names []string
	for i, name := range attrNames {
		if a&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}
