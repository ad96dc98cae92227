package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType represents the type of diff line
type LineType int

const (
	LineContext LineType = iota // Present on both sides
	LineAdded                   // Only in received
	LineRemoved                 // Only in expected
)

// Line represents a single line in the diff
type Line struct {
	Content string
	Type    LineType
}

// Engine computes line-level edits between two texts.
type Engine struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewEngine creates a new diff engine.
func NewEngine() *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // Disable timeout for accuracy
	return &Engine{dmp: dmp}
}

// DefaultEngine is a singleton engine for general use
var DefaultEngine = NewEngine()

// Lines diffs expected against received line by line. Removed lines come from
// expected, added lines from received; a changed line is a removal followed
// by an addition.
func (e *Engine) Lines(expected, received string) []Line {
	// Terminate both texts so the last line compares like every other one.
	a, b, lineArray := e.dmp.DiffLinesToChars(expected+"\n", received+"\n")
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)
	return toLines(diffs)
}

// toLines converts diffmatchpatch diffs to typed lines.
func toLines(diffs []diffmatchpatch.Diff) []Line {
	lines := make([]Line, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var typ LineType
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			typ = LineAdded
		case diffmatchpatch.DiffDelete:
			typ = LineRemoved
		default:
			typ = LineContext
		}
		for _, content := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			lines = append(lines, Line{Content: content, Type: typ})
		}
	}
	return lines
}

// Count returns the number of removed and added lines.
func Count(lines []Line) (removed, added int) {
	for _, l := range lines {
		switch l.Type {
		case LineRemoved:
			removed++
		case LineAdded:
			added++
		}
	}
	return removed, added
}
