package linediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, CountLines(""))
	assert.Equal(t, 1, CountLines("a"))
	assert.Equal(t, 1, CountLines("a\n"))
	assert.Equal(t, 2, CountLines("a\nb"))
	assert.Equal(t, 2, CountLines("a\nb\n"))
	assert.Equal(t, 5, CountLines("a\nb\nc\nd\ne\n"))
}

func TestHunksEqualTexts(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Hunks("a\nb\n", "a\nb\n"))
	assert.Empty(t, Hunks("", ""))
}

func TestHunksAppendedLine(t *testing.T) {
	t.Parallel()

	hunks := Hunks("a\nb\n", "a\nb\nc\n")

	assert.Equal(t, []Hunk{{OldLines: 0, NewLines: 1}}, hunks)
}

func TestHunksChangedLine(t *testing.T) {
	t.Parallel()

	hunks := Hunks("a\nb\nc\n", "a\nx\nc\n")

	assert.Equal(t, []Hunk{{OldLines: 1, NewLines: 1}}, hunks)
}

func TestHunksSeparateBlocks(t *testing.T) {
	t.Parallel()

	hunks := Hunks("a\nb\nc\nd\ne\n", "x\nb\nc\nd\ny\nz\n")

	assert.Equal(t, []Hunk{
		{OldLines: 1, NewLines: 1},
		{OldLines: 1, NewLines: 2},
	}, hunks)
}

func TestHunksFromEmpty(t *testing.T) {
	t.Parallel()

	hunks := Hunks("", "a\nb\n")

	assert.Len(t, hunks, 1)
	assert.Equal(t, 0, hunks[0].OldLines)
	assert.Equal(t, 2, hunks[0].NewLines)
}

func TestDoReportsLineCounts(t *testing.T) {
	t.Parallel()

	diffs := Do("a\nb\n", "a\nb\nc\n")

	added := 0
	removed := 0
	for _, d := range diffs {
		switch d.Type {
		case DiffInsert:
			added += d.Lines
		case DiffDelete:
			removed += d.Lines
		}
	}

	assert.Equal(t, 1, added)
	assert.Equal(t, 0, removed)
}
