package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// VCS abstracts the version control queries used by --changed.
type VCS interface {
	// Name returns "git" or "jj"
	Name() string

	// Root returns the repository root directory
	Root() string

	// ChangedFiles returns absolute paths of files modified in the working
	// copy, including untracked files.
	ChangedFiles() ([]string, error)
}

// DetectVCS detects whether dir is inside a git or jj repo.
func DetectVCS(dir string) (VCS, error) {
	// Check for jj first (it can colocate with git)
	if _, err := os.Stat(filepath.Join(dir, ".jj")); err == nil {
		return &JJRepo{root: dir}, nil
	}

	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err == nil {
		return &GitRepo{root: strings.TrimSpace(string(out))}, nil
	}

	return nil, fmt.Errorf("not a git or jj repository")
}

func run(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%s %s: %s", name, strings.Join(args, " "), string(exitErr.Stderr))
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GitRepo implements VCS for git repositories.
type GitRepo struct {
	root string
}

func (g *GitRepo) Name() string { return "git" }
func (g *GitRepo) Root() string { return g.root }

func (g *GitRepo) ChangedFiles() ([]string, error) {
	tracked, err := run(g.root, "git", "diff", "--name-only", "HEAD")
	if err != nil {
		return nil, err
	}
	untracked, err := run(g.root, "git", "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	return parseNameList(g.root, tracked+"\n"+untracked), nil
}

// JJRepo implements VCS for jj repositories.
type JJRepo struct {
	root string
}

func (j *JJRepo) Name() string { return "jj" }
func (j *JJRepo) Root() string { return j.root }

func (j *JJRepo) ChangedFiles() ([]string, error) {
	// jj snapshots untracked files into the working-copy change.
	out, err := run(j.root, "jj", "diff", "--name-only")
	if err != nil {
		return nil, err
	}
	return parseNameList(j.root, out), nil
}

// parseNameList turns newline-separated repo-relative paths into
// de-duplicated absolute paths, keeping the first occurrence.
func parseNameList(root, out string) []string {
	seen := make(map[string]bool)
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p := filepath.Join(root, filepath.FromSlash(line))
		if seen[p] {
			continue
		}
		seen[p] = true
		files = append(files, p)
	}
	return files
}
