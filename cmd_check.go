package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"kr.dev/diff"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "List files whose comments are not reflowed",
	Long: `Reports every file that format would change and exits non-zero if
there is at least one. With --diff the pending changes are shown as well.`,
	RunE: runCheck,
}

var flagDiff bool

func init() {
	checkCmd.Flags().BoolVarP(&flagDiff, "diff", "d", false, "Show the changes format would make")
	addSelectionFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}

var errUnformatted = errors.New("files need reflowing")

func runCheck(cmd *cobra.Command, args []string) error {
	files, err := selectFiles(cmd, args)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	n := 0
	err = processFiles(cmd.Context(), files, func(r fileResult) error {
		if !r.Changed {
			return nil
		}
		n++
		fmt.Fprintln(w, r.Path)
		if flagDiff {
			diff.Each(func(format string, args ...any) (int, error) {
				return fmt.Fprintf(w, "\t"+format+"\n", args...)
			}, r.Src, r.Out)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%d %w", n, errUnformatted)
	}
	return nil
}
