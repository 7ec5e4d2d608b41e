package comment

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Kind is the syntactic flavour of a comment.
type Kind int

const (
	// KindAuto detects the kind from the comment's opening marker.
	KindAuto Kind = iota
	KindLine
	KindBlock
	KindDoc
)

func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindLine:
		return "line"
	case KindBlock:
		return "block"
	case KindDoc:
		return "doc"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return KindAuto, nil
	case "line", "single":
		return KindLine, nil
	case "block", "multi":
		return KindBlock, nil
	case "doc", "javadoc":
		return KindDoc, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// DetectKind classifies a comment by its opening marker.
func DetectKind(text string) (Kind, bool) {
	switch {
	case strings.HasPrefix(text, "//"):
		return KindLine, true
	case strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/**/"):
		return KindDoc, true
	case strings.HasPrefix(text, "/*"):
		return KindBlock, true
	}
	return KindAuto, false
}

// UnitKind tells a SubFormatter what kind of source fragment it receives.
type UnitKind int

const (
	UnitUnknown UnitKind = iota
	UnitExpression
	UnitStatements
	UnitDeclarations
	UnitFile
)

// SubFormatter formats source code found inside documentation comments.
// It returns edits relative to src and false when src is not something it
// can format.
type SubFormatter interface {
	FormatUnit(kind UnitKind, src string, indentLevel int, sep string, opts Options) ([]Edit, bool)
}

// SubFormatterFunc adapts a function to SubFormatter.
type SubFormatterFunc func(kind UnitKind, src string, indentLevel int, sep string, opts Options) ([]Edit, bool)

func (f SubFormatterFunc) FormatUnit(kind UnitKind, src string, indentLevel int, sep string, opts Options) ([]Edit, bool) {
	return f(kind, src, indentLevel, sep, opts)
}

var (
	ErrPositionOutOfRange = errors.New("position outside comment")
	ErrUnknownKind        = errors.New("unknown comment kind")
)

// Request describes one comment to format.
type Request struct {
	Kind Kind
	// Text is the full comment, from its opening marker to its closer.
	Text string
	// Offset is the document offset of Text; edits are reported in
	// document coordinates.
	Offset int
	// IndentLevel is the indentation of the line holding the comment.
	IndentLevel int
	// Positions are document offsets to carry through the edits, such as
	// a caret or selection.
	Positions []int
}

// Result holds the edits for one comment.
type Result struct {
	Edits     []Edit
	Positions []int
}

// Formatter reformats comments with a fixed set of preferences.
type Formatter struct {
	opts Options
	log  *slog.Logger
	sub  SubFormatter
}

type Option func(*Formatter)

// WithLogger sets the logger for recoverable anomalies.
func WithLogger(l *slog.Logger) Option {
	return func(f *Formatter) { f.log = l }
}

// WithSubFormatter sets the formatter for code embedded in documentation
// comments. Without one, embedded code is left untouched.
func WithSubFormatter(s SubFormatter) Option {
	return func(f *Formatter) { f.sub = s }
}

func New(opts Options, options ...Option) (*Formatter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	f := &Formatter{opts: opts}
	for _, o := range options {
		o(f)
	}
	if f.log == nil {
		f.log = slog.New(slog.DiscardHandler)
	}
	return f, nil
}

func (f *Formatter) Options() Options { return f.opts }

// Logger returns the logger anomalies are reported to.
func (f *Formatter) Logger() *slog.Logger { return f.log }

// Format computes the edits that reflow req.Text. Recoverable problems
// inside the comment are logged and the affected part is left unchanged.
func (f *Formatter) Format(req Request) (Result, error) {
	for _, p := range req.Positions {
		if p < req.Offset || p > req.Offset+len(req.Text) {
			return Result{}, fmt.Errorf("%w: %d not in [%d,%d]", ErrPositionOutOfRange, p, req.Offset, req.Offset+len(req.Text))
		}
	}
	kind := req.Kind
	if kind == KindAuto {
		var ok bool
		if kind, ok = DetectKind(req.Text); !ok {
			return Result{}, fmt.Errorf("%w: text starts with %q", ErrUnknownKind, prefix(req.Text, 3))
		}
	}
	r := newRegion(kind, req.Text, req.Offset, req.IndentLevel, f.opts, f.log.With("kind", kind.String()))
	switch kind {
	case KindLine:
	case KindBlock:
		newBlockRegion(r)
	case KindDoc:
		newDocRegion(r, f.sub)
	default:
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
	r.format()

	res := Result{Edits: r.sink.result(), Positions: slices.Clone(req.Positions)}
	for i, p := range res.Positions {
		res.Positions[i] = MapPosition(p, res.Edits)
	}
	return res, nil
}

// FormatText reflows a single comment and returns the new text.
func (f *Formatter) FormatText(text string, indentLevel int) (string, error) {
	res, err := f.Format(Request{Text: text, IndentLevel: indentLevel})
	if err != nil {
		return "", err
	}
	return Apply(text, 0, res.Edits)
}

func prefix(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
