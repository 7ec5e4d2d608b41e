package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dnr/reflow/comment"
	"github.com/dnr/reflow/source"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Reflow a single comment read from stdin",
	Long: `Reads one comment from stdin, reflows it and writes it to stdout.

The indentation of the first line is kept and used as the indentation of
the comment; pass --indent to override the level.`,
	RunE: runComment,
	Args: cobra.NoArgs,
}

var (
	flagCommentKind   string
	flagCommentIndent int
	flagCommentLang   string
)

func init() {
	commentCmd.Flags().StringVar(&flagCommentKind, "kind", "auto", "Comment kind: auto, line, block or doc")
	commentCmd.Flags().IntVar(&flagCommentIndent, "indent", -1, "Indentation level (default: detected from input)")
	commentCmd.Flags().StringVar(&flagCommentLang, "lang", "", "Language of the surrounding source, e.g. go or java; code in <pre> blocks is only reformatted for go")
	rootCmd.AddCommand(commentCmd)
}

func runComment(cmd *cobra.Command, args []string) error {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	kind, err := comment.ParseKind(flagCommentKind)
	if err != nil {
		return err
	}
	var lang source.Language
	if flagCommentLang != "" {
		l, ok := source.LanguageNamed(flagCommentLang)
		if !ok {
			return fmt.Errorf("unknown language %q", flagCommentLang)
		}
		lang = l
	}
	out, err := reflowComment(string(input), kind, flagCommentIndent, lang)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

// reflowComment formats text holding one comment, possibly indented and
// followed by a line break. A negative level is detected from the input.
// Embedded code is left alone unless lang has a snippet formatter.
func reflowComment(text string, kind comment.Kind, level int, lang source.Language) (string, error) {
	opts, err := cfg.Options()
	if err != nil {
		return "", err
	}
	f, err := newFormatter(opts, lang)
	if err != nil {
		return "", err
	}

	indent := getIndentation(text)
	body := text[len(indent):]
	trailer := body[len(strings.TrimRight(body, "\r\n")):]
	if kind == comment.KindAuto {
		k, ok := comment.DetectKind(body)
		if !ok {
			return "", fmt.Errorf("%w: input is not a comment", comment.ErrUnknownKind)
		}
		kind = k
	}
	if kind != comment.KindLine {
		// Only line comments own their terminator.
		body = strings.TrimRight(body, "\r\n")
	}
	if level < 0 {
		level = opts.IndentLevel(indent)
	} else {
		indent = opts.IndentString(level)
	}

	res, err := f.Format(comment.Request{Kind: kind, Text: body, IndentLevel: level})
	if err != nil {
		return "", fmt.Errorf("formatting comment: %w", err)
	}
	out, err := comment.Apply(body, 0, res.Edits)
	if err != nil {
		return "", err
	}
	if kind != comment.KindLine {
		out += trailer
	}
	return indent + out, nil
}
