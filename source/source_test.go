package source

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnr/reflow/comment"
)

func TestScan(t *testing.T) {
	src := "package p\n\n// Doc line.\nfunc f() {\n" +
		"\ts := \"// not a comment\"\n" +
		"\tr := `/* raw */`\n" +
		"\tx := 1 // trailing\n" +
		"\t/* block */\n" +
		"\t/** doc\n\t * more */ y()\n}\n"

	type found struct {
		Kind       comment.Kind
		Text       string
		Line       int
		Indent     string
		Standalone bool
	}
	var got []found
	for _, c := range Scan(src, Language{Name: "go", RawStrings: true}) {
		assert.Equal(t, c.Text, src[c.Offset:c.Offset+c.Length])
		got = append(got, found{c.Kind, c.Text, c.Line, c.Indent, c.Standalone})
	}
	want := []found{
		{comment.KindLine, "// Doc line.\n", 3, "", true},
		{comment.KindLine, "// trailing\n", 7, "\tx := 1 ", false},
		{comment.KindBlock, "/* block */", 8, "\t", true},
		{comment.KindDoc, "/** doc\n\t * more */", 9, "\t", false},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", d)
	}
}

func TestScanLiterals(t *testing.T) {
	tests := []struct {
		name string
		lang Language
		src  string
		want int
	}{
		{"escaped quote", Language{}, `s = "a\"// b"; // c`, 1},
		{"char literal", Language{}, `c = '"'; // c`, 1},
		{"unterminated string", Language{}, "s = \"abc\n// c", 1},
		{"text block", Language{TextBlocks: true}, "s = \"\"\"\n// x\n\"\"\"; // c", 1},
		{"backquote without raw strings", Language{}, "`x` // c", 1},
		{"unterminated block", Language{}, "/* open", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Scan(tt.src, tt.lang), tt.want)
		})
	}
}

func TestLanguageFor(t *testing.T) {
	l, ok := LanguageFor("a/b/main.go")
	require.True(t, ok)
	assert.True(t, l.RawStrings)
	_, ok = LanguageFor("script.py")
	assert.False(t, ok)
}

func TestFormatFile(t *testing.T) {
	opts := comment.DefaultOptions()
	opts.LineWidth = 40
	f, err := comment.New(opts)
	require.NoError(t, err)

	src := "package p\n\n" +
		"// This comment is long enough that it has to be wrapped at forty.\n" +
		"func f() {\n" +
		"\t/* one two three four five six seven eight */\n" +
		"\tx := \"// keep   me\"\n" +
		"}\n"
	want := "package p\n\n" +
		"// This comment is long enough that it\n" +
		"// has to be wrapped at forty.\n" +
		"func f() {\n" +
		"\t/*\n\t * one two three four five six seven\n\t * eight\n\t */\n" +
		"\tx := \"// keep   me\"\n" +
		"}\n"
	got, edits, err := FormatFile(f, src, goLang)
	require.NoError(t, err)
	assert.NotEmpty(t, edits)
	assert.Equal(t, want, got)

	again, edits, err := FormatFile(f, got, goLang)
	require.NoError(t, err)
	assert.Empty(t, edits)
	assert.Equal(t, got, again)
}

func TestFormatFileSkipsForeignIndent(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f, err := comment.New(comment.DefaultOptions(), comment.WithLogger(log))
	require.NoError(t, err)
	src := "  /*   two   spaces   */\n  // and   another\n"
	got, edits, err := FormatFile(f, src, goLang)
	require.NoError(t, err)
	assert.Empty(t, edits)
	assert.Equal(t, src, got)
	assert.Equal(t, 1, strings.Count(logs.String(), "comments skipped"), logs.String())
	assert.Contains(t, logs.String(), "count=2")
}

func TestSnippetFormatter(t *testing.T) {
	golang, ok := LanguageNamed("go")
	require.True(t, ok)
	assert.IsType(t, &GoSnippetFormatter{}, SnippetFormatter(golang, nil))

	for _, name := range []string{"java", "c", "typescript"} {
		l, ok := LanguageNamed(name)
		require.True(t, ok, name)
		assert.Nil(t, SnippetFormatter(l, nil), name)
	}
	_, ok = LanguageNamed("cobol")
	assert.False(t, ok)
}

func TestGoSnippetFormatter(t *testing.T) {
	tests := []struct {
		name string
		src  string
		sep  string
		want string
		ok   bool
	}{
		{"statement", "\nx  :=  1\n", "\n", "x := 1", true},
		{"block", "if x{\ny()\n}", "\n", "if x {\n\ty()\n}", true},
		{"declaration", "func f(){}\n", "\n", "func f() {}", true},
		{"crlf", "a  :=  1\r\nb  :=  2", "\r\n", "a := 1\r\nb := 2", true},
		{"comment reflowed", "// a   b\nx := 1", "\n", "// a b\nx := 1", true},
		{"not go", "int x;", "\n", "", false},
	}
	g := &GoSnippetFormatter{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edits, ok := g.FormatUnit(comment.UnitUnknown, tt.src, 0, tt.sep, comment.DefaultOptions())
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			got, err := comment.Apply(tt.src, 0, edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(got))
		})
	}
}

func TestDocSnippetEndToEnd(t *testing.T) {
	f, err := comment.New(comment.DefaultOptions(), comment.WithSubFormatter(&GoSnippetFormatter{}))
	require.NoError(t, err)
	in := "/**\n * Example:\n *\n * <pre>\n * if a&lt;b{\n * x  :=  1\n * }\n * </pre>\n */"
	want := "/**\n * Example:\n *\n * <pre>\n * if a &lt; b {\n * \tx := 1\n * }\n * </pre>\n */"
	got, err := f.FormatText(in, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
