package comment

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	got, err := Apply("hello big world", 10, []Edit{
		{Offset: 10, Length: 5, Text: "goodbye"},
		{Offset: 15, Length: 4, Text: ""},
		{Offset: 25, Length: 0, Text: "!"},
	})
	require.NoError(t, err)
	assert.Equal(t, "goodbye world!", got)

	_, err = Apply("abc", 0, []Edit{{Offset: 2, Length: 1}, {Offset: 0, Length: 1}})
	assert.Error(t, err)
	_, err = Apply("abc", 0, []Edit{{Offset: 2, Length: 5}})
	assert.Error(t, err)
}

func TestMapPosition(t *testing.T) {
	edits := []Edit{
		{Offset: 2, Length: 3, Text: "x"},
		{Offset: 8, Length: 0, Text: "yyy"},
	}
	tests := []struct{ pos, want int }{
		{0, 0},
		{2, 2},
		{3, 3},
		{4, 3},
		{5, 3},
		{7, 5},
		{8, 9},
		{9, 10},
	}
	for _, tt := range tests {
		if got := MapPosition(tt.pos, edits); got != tt.want {
			t.Errorf("MapPosition(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestEditSink(t *testing.T) {
	s := newEditSink(100, "0123456789", slog.New(slog.DiscardHandler))

	s.replace("23", 2, 2)
	assert.Empty(t, s.result(), "no-op edits are dropped")

	s.replace("ab", 2, 3)
	s.replace("zz", 3, 3)
	s.replace("x", 8, 5)
	assert.Equal(t, []Edit{{Offset: 102, Length: 3, Text: "ab"}}, s.result())

	s.reserve(6, 8)
	s.replace("q", 6, 0)
	s.replace("q", 7, 1)
	s.replace("q", 8, 0)
	s.replaceReserved("RR", 6, 2)
	s.replace("-", 9, 1)
	s.replace("^", 0, 0)
	assert.Equal(t, []Edit{
		{Offset: 100, Length: 0, Text: "^"},
		{Offset: 102, Length: 3, Text: "ab"},
		{Offset: 106, Length: 2, Text: "RR"},
		{Offset: 109, Length: 1, Text: "-"},
	}, s.result())
}
