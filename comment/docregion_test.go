package comment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squeeze is a stand-in code formatter that collapses double blanks.
type squeeze struct {
	calls []string
	opts  []Options
	fail  bool
}

func (s *squeeze) FormatUnit(kind UnitKind, src string, indentLevel int, sep string, opts Options) ([]Edit, bool) {
	s.calls = append(s.calls, src)
	s.opts = append(s.opts, opts)
	if s.fail || kind != UnitUnknown {
		return nil, false
	}
	out := src
	for strings.Contains(out, "  ") {
		out = strings.ReplaceAll(out, "  ", " ")
	}
	return []Edit{{Offset: 0, Length: len(src), Text: out}}, true
}

func snippetFormat(t *testing.T, sub SubFormatter, text string) string {
	t.Helper()
	f, err := New(DefaultOptions(), WithSubFormatter(sub))
	require.NoError(t, err)
	out, err := f.FormatText(text, 0)
	require.NoError(t, err)
	return out
}

func TestSnippet(t *testing.T) {
	s := &squeeze{}
	in := "/**\n * Run:\n * <pre>\n * x  =  1\n * </pre>\n */"
	got := snippetFormat(t, s, in)
	assert.Equal(t, "/**\n * Run:\n *\n * <pre>\n * x = 1\n * </pre>\n */", got)

	require.Len(t, s.calls, 1)
	assert.Equal(t, "\nx  =  1\n", s.calls[0])
	assert.False(t, s.opts[0].FormatEmbeddedCode)
	assert.Equal(t, DefaultLineWidth-len(blockContent), s.opts[0].LineWidth)

	again := snippetFormat(t, &squeeze{}, got)
	assert.Equal(t, got, again)
}

func TestSnippetEscapes(t *testing.T) {
	s := &squeeze{}
	in := "/**\n * <pre>\n * if a &lt;  b {\n * }\n * </pre>\n */"
	got := snippetFormat(t, s, in)
	require.Len(t, s.calls, 1)
	assert.Equal(t, "\nif a <  b {\n}\n", s.calls[0])
	assert.Equal(t, "/**\n * <pre>\n * if a &lt; b {\n * }\n * </pre>\n */", got)
}

func TestSnippetRejected(t *testing.T) {
	s := &squeeze{fail: true}
	in := "/**\n * Run:\n *\n * <pre>\n * x  =  1\n * </pre>\n */"
	got := snippetFormat(t, s, in)
	assert.Equal(t, in, got)
	assert.Len(t, s.calls, 1)
}

func TestSnippetDisabled(t *testing.T) {
	s := &squeeze{}
	opts := DefaultOptions()
	opts.FormatEmbeddedCode = false
	f, err := New(opts, WithSubFormatter(s))
	require.NoError(t, err)
	in := "/**\n * Run:\n *\n * <pre>\n * x  =  1\n * </pre>\n */"
	got, err := f.FormatText(in, 0)
	require.NoError(t, err)
	assert.Equal(t, in, got)
	assert.Empty(t, s.calls)
}

func TestSnippetUnclosed(t *testing.T) {
	s := &squeeze{}
	in := "/**\n * <pre>\n * a  b\n */"
	got := snippetFormat(t, s, in)
	require.Len(t, s.calls, 1)
	assert.Equal(t, "\na  b", s.calls[0])
	assert.Equal(t, "/**\n * <pre>\n * a b\n */", got)
}

func TestMarkAttributes(t *testing.T) {
	text := "/**\n * Text <pre>code</pre> with @Override\n * @param p desc <br> end\n * @return r\n */"
	f, err := New(DefaultOptions())
	require.NoError(t, err)
	r := newRegion(KindDoc, text, 0, 0, f.opts, f.log)
	d := newDocRegion(r, nil)
	r.split()
	for i, l := range r.physical {
		require.True(t, l.scan(r, i))
		l.tokenize(r, i)
	}
	d.mark()

	got := map[string]Attr{}
	for _, rg := range r.queue {
		got[r.token(rg)] = rg.Attrs()
	}
	assert.True(t, got["<pre>"].Has(Immutable|Separator|HTMLOpenTag))
	assert.False(t, got["<pre>"].Has(Code))
	assert.True(t, got["code"].Has(Immutable|Code))
	assert.True(t, got["</pre>"].Has(Immutable|Separator|HTMLCloseTag))
	assert.True(t, got["@param"].Has(ParameterTagLine|ParagraphStart))
	assert.True(t, got["@return"].Has(RootTagLine))
	assert.False(t, got["@Override"].HasAny(RootTagLine|ParameterTagLine), "not first on its line")
	assert.False(t, got["@return"].Has(ParagraphStart))
	assert.True(t, got["<br>"].Has(Break))
	assert.False(t, got["end"].HasAny(Immutable|Code|Break))
	assert.Equal(t, []int{strings.Index(text, "code"), strings.Index(text, "</pre>")}, d.code)
}
