package source

import (
	"errors"
	"fmt"

	"github.com/dnr/reflow/comment"
)

// FormatFile reflows every standalone comment in src and returns the new
// text together with the edits applied. Comments whose indentation cannot
// be reproduced with the configured tab policy are skipped and counted in
// a debug message. Errors for individual comments are joined; the other
// comments are still formatted.
func FormatFile(f *comment.Formatter, src string, lang Language) (string, []comment.Edit, error) {
	opts := f.Options()
	var edits []comment.Edit
	var errs []error
	skipped := 0
	for _, c := range Scan(src, lang) {
		if !c.Standalone {
			continue
		}
		level := opts.IndentLevel(c.Indent)
		if opts.IndentString(level) != c.Indent {
			skipped++
			continue
		}
		res, err := f.Format(comment.Request{
			Kind:        c.Kind,
			Text:        c.Text,
			Offset:      c.Offset,
			IndentLevel: level,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", c.Line, err))
			continue
		}
		edits = append(edits, res.Edits...)
	}
	if skipped > 0 {
		f.Logger().Debug("comments skipped", "count", skipped,
			"reason", "indentation does not match tab_kind", "tab_kind", opts.TabKind, "lang", lang.Name)
	}
	out, err := comment.Apply(src, 0, edits)
	if err != nil {
		return src, nil, fmt.Errorf("applying edits: %w", err)
	}
	return out, edits, errors.Join(errs...)
}
