package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNameList(t *testing.T) {
	root := filepath.FromSlash("/repo")
	out := "a.go\n\nsub/b.java\n  a.go  \nc.ts\n"
	want := []string{
		filepath.Join(root, "a.go"),
		filepath.Join(root, "sub", "b.java"),
		filepath.Join(root, "c.ts"),
	}
	assert.Equal(t, want, parseNameList(root, out))
	assert.Empty(t, parseNameList(root, ""))
}

func TestDetectVCSJJ(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{".jj/repo/store": ""})
	v, err := DetectVCS(dir)
	if assert.NoError(t, err) {
		assert.Equal(t, "jj", v.Name())
		assert.Equal(t, dir, v.Root())
	}
}
