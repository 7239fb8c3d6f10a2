package linediff

import (
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type Diff struct {
	Type  Operation
	Lines int
}

type Operation int8

const (
	DiffDelete Operation = Operation(diffmatchpatch.DiffDelete)
	DiffInsert Operation = Operation(diffmatchpatch.DiffInsert)
	DiffEqual  Operation = Operation(diffmatchpatch.DiffEqual)
)

// Hunk is a contiguous block of changed lines, with the number of lines
// on the old and new sides. Equal blocks never produce hunks.
type Hunk struct {
	OldLines int
	NewLines int
}

func Do(src, dst string) []Diff {
	return DoWithTimeout(src, dst, time.Minute)
}

func DoWithTimeout(src, dst string, timeout time.Duration) []Diff {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = timeout
	wSrc, wDst := textsToLineIndexes(src, dst)
	dmpd := dmp.DiffMainRunes(wSrc, wDst, false)
	diffs := lineIndexesToDiff(dmpd)
	return diffs
}

// Hunks groups the inserts and deletes of a line diff into contiguous
// blocks of change. Identical texts yield no hunks.
func Hunks(src, dst string) []Hunk {
	if src == dst {
		return nil
	}

	var result []Hunk

	old := 0
	nw := 0
	for _, d := range Do(src, dst) {
		switch d.Type {
		case DiffDelete:
			old += d.Lines
		case DiffInsert:
			nw += d.Lines
		default:
			if old > 0 || nw > 0 {
				result = append(result, Hunk{OldLines: old, NewLines: nw})
				old = 0
				nw = 0
			}
		}
	}

	if old > 0 || nw > 0 {
		result = append(result, Hunk{OldLines: old, NewLines: nw})
	}

	return result
}

// CountLines counts lines the way git does: a trailing newline does not
// start a new line, but a non-terminated last line still counts.
func CountLines(text string) int {
	if text == "" {
		return 0
	}

	result := strings.Count(text, "\n")
	if text[len(text)-1] != '\n' {
		result++
	}
	return result
}

func lineIndexesToDiff(diffs []diffmatchpatch.Diff) []Diff {
	hydrated := make([]Diff, 0, len(diffs))
	for _, aDiff := range diffs {
		hydrated = append(hydrated, Diff{
			Type:  Operation(aDiff.Type),
			Lines: len(aDiff.Text),
		})
	}
	return hydrated
}

func textsToLineIndexes(text1, text2 string) ([]rune, []rune) {
	lineToIndex := make(map[string]int)
	indexes1 := textToLineIndexes(text1, lineToIndex)
	indexes2 := textToLineIndexes(text2, lineToIndex)
	return indexes1, indexes2
}

func textToLineIndexes(text string, lineToIndex map[string]int) []rune {
	lines := strings.SplitAfter(text, "\n")

	result := make([]rune, len(lines))
	for i, line := range lines {
		lineValue, ok := lineToIndex[line]

		if !ok {
			lineValue = len(lineToIndex)
			lineToIndex[line] = lineValue
		}

		result[i] = rune(lineValue)
	}
	return result
}
