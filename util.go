package main

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dnr/reflow/source"
)

func getIndentation(line string) string {
	for i, r := range line {
		if !(r == ' ' || r == '\t') {
			return line[:i]
		}
	}
	return line
}

// skipDir reports whether a directory walk should not descend into name.
func skipDir(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	switch {
	case strings.HasPrefix(name, "."), strings.HasPrefix(name, "_"):
		return true
	case name == "vendor", name == "node_modules":
		return true
	}
	return false
}

// collectFiles expands paths into the source files reflow knows how to
// handle. Files named explicitly are kept even inside skipped directories,
// but must still have a known extension.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := source.LanguageFor(path); ok {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// filterKnown keeps the paths with a known language, e.g. from a VCS listing.
func filterKnown(paths []string) []string {
	var out []string
	for _, p := range paths {
		if _, ok := source.LanguageFor(p); ok {
			out = append(out, p)
		}
	}
	return out
}
