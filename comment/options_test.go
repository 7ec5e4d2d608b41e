package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndentString(t *testing.T) {
	tests := []struct {
		name  string
		kind  TabKind
		level int
		want  string
	}{
		{"tabs", Tabs, 2, "\t\t"},
		{"spaces", Spaces, 2, "        "},
		{"mixed", Mixed, 3, "\t\t\t"},
		{"zero", Spaces, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			o.TabKind = tt.kind
			assert.Equal(t, tt.want, o.IndentString(tt.level))
		})
	}

	o := DefaultOptions()
	o.TabKind = Mixed
	o.IndentationSize = 2
	assert.Equal(t, "\t  ", o.IndentString(3))
}

func TestMeasure(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 0, o.measure(""))
	assert.Equal(t, 4, o.measure("\t"))
	assert.Equal(t, 8, o.measure("ab\t\t"))
	assert.Equal(t, 7, o.measure("@param "))
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	bad := []func(*Options){
		func(o *Options) { o.LineWidth = 0 },
		func(o *Options) { o.TabWidth = 0 },
		func(o *Options) { o.IndentationSize = -1 },
		func(o *Options) { o.LineSeparator = "\t" },
		func(o *Options) { o.TabKind = TabKind(7) },
	}
	for i, mutate := range bad {
		o := DefaultOptions()
		mutate(&o)
		assert.ErrorIs(t, o.Validate(), ErrInvalidOptions, "case %d", i)
	}
}

func TestTabKindText(t *testing.T) {
	for _, s := range []string{"tab", "Tabs", "space", "spaces", "mixed"} {
		var k TabKind
		require.NoError(t, k.UnmarshalText([]byte(s)), s)
		b, err := k.MarshalText()
		require.NoError(t, err)
		var back TabKind
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, k, back)
	}
	var k TabKind
	assert.Error(t, k.UnmarshalText([]byte("wide")))
}

func TestIndentLevel(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 2, o.IndentLevel("\t\t"))
	assert.Equal(t, 1, o.IndentLevel("      "))
	o.TabKind = Spaces
	o.IndentationSize = 2
	assert.Equal(t, 3, o.IndentLevel("      "))
	assert.Equal(t, 0, o.IndentLevel(""))
}
