package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dnr/reflow/comment"
	"github.com/dnr/reflow/source"
)

var formatCmd = &cobra.Command{
	Use:   "format [paths...]",
	Short: "Reflow comments in source files",
	Long: `Reflows the standalone comments in each file. Directories are walked
recursively, skipping hidden directories, vendor and node_modules.

Without -w the formatted text of every file is written to stdout.`,
	RunE: runFormat,
}

var (
	flagWrite   bool
	flagChanged bool
	flagJobs    int
)

func init() {
	formatCmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "Write results back to the files")
	addSelectionFlags(formatCmd)
	rootCmd.AddCommand(formatCmd)
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagChanged, "changed", false, "Only files modified in the working copy (git or jj)")
	cmd.Flags().IntVarP(&flagJobs, "jobs", "j", 0, "Files to process concurrently (default from config)")
}

// fileResult is the outcome of reflowing one file.
type fileResult struct {
	Path    string
	Src     string
	Out     string
	Changed bool
}

func runFormat(cmd *cobra.Command, args []string) error {
	files, err := selectFiles(cmd, args)
	if err != nil {
		return err
	}
	var mu sync.Mutex
	return processFiles(cmd.Context(), files, func(r fileResult) error {
		if flagWrite {
			if !r.Changed {
				return nil
			}
			logger.Info("reflowed", "path", r.Path)
			return writeFile(r.Path, r.Out)
		}
		mu.Lock()
		defer mu.Unlock()
		_, err := io.WriteString(cmd.OutOrStdout(), r.Out)
		return err
	})
}

// selectFiles resolves the command arguments to the files to process.
func selectFiles(cmd *cobra.Command, args []string) ([]string, error) {
	if flagChanged {
		if len(args) > 0 {
			return nil, fmt.Errorf("--changed does not take paths")
		}
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		vcs, err := DetectVCS(wd)
		if err != nil {
			return nil, err
		}
		changed, err := vcs.ChangedFiles()
		if err != nil {
			return nil, err
		}
		logger.Debug("changed files", "vcs", vcs.Name(), "count", len(changed))
		return existing(filterKnown(changed)), nil
	}
	if len(args) == 0 {
		args = []string{"."}
	}
	return collectFiles(args)
}

// existing drops paths that were deleted in the working copy.
func existing(paths []string) []string {
	var out []string
	for _, p := range paths {
		if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
			out = append(out, p)
		}
	}
	return out
}

// processFiles reflows files concurrently and hands each result to emit.
// Results are delivered in input order.
func processFiles(ctx context.Context, files []string, emit func(fileResult) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	formatters := make(map[string]*comment.Formatter)
	for _, path := range files {
		lang, ok := source.LanguageFor(path)
		if !ok {
			return fmt.Errorf("%s: unsupported file type", path)
		}
		if formatters[lang.Name] != nil {
			continue
		}
		if formatters[lang.Name], err = newFormatter(opts, lang); err != nil {
			return err
		}
	}

	jobs := flagJobs
	if jobs <= 0 {
		jobs = cfg.Jobs
	}
	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lang, _ := source.LanguageFor(path)
			r, err := reflowFile(formatters[lang.Name], lang, path)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, r := range results {
		if err := emit(r); err != nil {
			return err
		}
	}
	return nil
}

// newFormatter builds a formatter for comments in lang. Embedded code is
// only reformatted when it is written in lang itself.
func newFormatter(opts comment.Options, lang source.Language) (*comment.Formatter, error) {
	options := []comment.Option{comment.WithLogger(logger)}
	if sub := source.SnippetFormatter(lang, logger); sub != nil {
		options = append(options, comment.WithSubFormatter(sub))
	}
	return comment.New(opts, options...)
}

func reflowFile(f *comment.Formatter, lang source.Language, path string) (fileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, err
	}
	src := string(data)
	out, edits, err := source.FormatFile(f, src, lang)
	if err != nil {
		// Per-comment failures leave those comments untouched.
		logger.Warn("some comments were not reflowed", "path", path, "err", err)
	}
	return fileResult{Path: path, Src: src, Out: out, Changed: len(edits) > 0 && out != src}, nil
}

func writeFile(path, text string) error {
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), st.Mode().Perm())
}
