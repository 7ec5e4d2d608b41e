package comment

import (
	"errors"
	"fmt"
	"strings"
)

// TabKind selects how indentation whitespace is produced.
type TabKind int

const (
	Tabs TabKind = iota
	Spaces
	Mixed
)

func (k TabKind) String() string {
	switch k {
	case Tabs:
		return "tabs"
	case Spaces:
		return "spaces"
	case Mixed:
		return "mixed"
	default:
		return fmt.Sprintf("TabKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k TabKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TabKind) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "tab", "tabs":
		*k = Tabs
	case "space", "spaces":
		*k = Spaces
	case "mixed":
		*k = Mixed
	default:
		return fmt.Errorf("unknown tab kind %q", string(b))
	}
	return nil
}

// Default option values.
const (
	DefaultLineWidth       = 80
	DefaultIndentationSize = 4
	DefaultTabWidth        = 4
	DefaultLineSeparator   = "\n"
)

// ErrInvalidOptions is returned when the preferences make formatting
// impossible.
var ErrInvalidOptions = errors.New("invalid formatting options")

// Options are the formatting preferences for one run.
type Options struct {
	LineWidth       int
	IndentationSize int
	TabWidth        int
	TabKind         TabKind
	LineSeparator   string

	ClearBlankLinesBlock bool
	ClearBlankLinesDoc   bool

	FormatHTML         bool
	FormatEmbeddedCode bool

	IndentRootTags             bool
	IndentParameterDescription bool
	BlankLineBeforeRootTags    bool
	NewLinePerParameter        bool
}

// DefaultOptions returns the preferences used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		LineWidth:               DefaultLineWidth,
		IndentationSize:         DefaultIndentationSize,
		TabWidth:                DefaultTabWidth,
		TabKind:                 Tabs,
		LineSeparator:           DefaultLineSeparator,
		FormatHTML:              true,
		FormatEmbeddedCode:      true,
		IndentRootTags:          true,
		BlankLineBeforeRootTags: true,
	}
}

// Validate checks the caller-side preconditions.
func (o Options) Validate() error {
	switch {
	case o.LineWidth <= 0:
		return fmt.Errorf("%w: line width %d", ErrInvalidOptions, o.LineWidth)
	case o.TabWidth <= 0:
		return fmt.Errorf("%w: tab width %d", ErrInvalidOptions, o.TabWidth)
	case o.IndentationSize < 0:
		return fmt.Errorf("%w: indentation size %d", ErrInvalidOptions, o.IndentationSize)
	case o.LineSeparator != "\n" && o.LineSeparator != "\r\n" && o.LineSeparator != "\r":
		return fmt.Errorf("%w: line separator %q", ErrInvalidOptions, o.LineSeparator)
	case o.TabKind < Tabs || o.TabKind > Mixed:
		return fmt.Errorf("%w: %s", ErrInvalidOptions, o.TabKind)
	}
	return nil
}

// IndentString builds the leading whitespace for the given indentation
// level.
func (o Options) IndentString(level int) string {
	if level <= 0 {
		return ""
	}
	switch o.TabKind {
	case Tabs:
		return strings.Repeat("\t", level)
	case Spaces:
		return strings.Repeat(" ", level*o.IndentationSize)
	default:
		total := level * o.IndentationSize
		return strings.Repeat("\t", total/o.TabWidth) + strings.Repeat(" ", total%o.TabWidth)
	}
}

// measure returns the visual width of s, expanding tabs to tab stops.
func (o Options) measure(s string) int {
	col := 0
	for _, c := range s {
		if c == '\t' {
			col += o.TabWidth - col%o.TabWidth
		} else {
			col++
		}
	}
	return col
}

// clearBlankLines reports whether blank interior lines are dropped for kind.
func (o Options) clearBlankLines(kind Kind) bool {
	if kind == KindDoc {
		return o.ClearBlankLinesDoc
	}
	return o.ClearBlankLinesBlock
}

// IndentLevel converts leading whitespace to an indentation level,
// rounding down.
func (o Options) IndentLevel(ws string) int {
	unit := o.IndentationSize
	if o.TabKind == Tabs {
		unit = o.TabWidth
	}
	if unit <= 0 {
		return 0
	}
	return o.measure(ws) / unit
}
