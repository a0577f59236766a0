// Package move represents a single draughts move: a start square, an end
// square, and the squares captured along the way (empty for a quiet
// move). Grounded on the teacher's move.Move value type (rich accessors
// around a small immutable-in-practice struct).
package move

import (
	"fmt"
	"strings"

	"github.com/halpen9/dame/square"
)

// Move is a (possibly multi-capture) move. Only the final landing square
// of a multi-jump is recorded; intermediate landings are implicit.
type Move struct {
	Start    square.Square
	End      square.Square
	Captured []square.Square
}

// NewQuiet builds a non-capture move.
func NewQuiet(start, end square.Square) *Move {
	return &Move{Start: start, End: end}
}

// NewCapture builds a capture move with the given captured squares.
func NewCapture(start, end square.Square, captured []square.Square) *Move {
	return &Move{Start: start, End: end, Captured: captured}
}

// IsCapture reports whether the move captures at least one piece.
func (m *Move) IsCapture() bool {
	return len(m.Captured) > 0
}

// CaptureCount is the number of pieces this move captures.
func (m *Move) CaptureCount() int {
	return len(m.Captured)
}

// Equal compares two moves by start, end, and captured set (order
// independent, per spec: "Captured squares are unordered for the
// purposes of equality").
func (m *Move) Equal(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	if !m.Start.Equal(o.Start) || !m.End.Equal(o.End) {
		return false
	}
	if len(m.Captured) != len(o.Captured) {
		return false
	}
	for _, c := range m.Captured {
		found := false
		for _, oc := range o.Captured {
			if c.Equal(oc) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// String renders the move for debugging/logging.
func (m *Move) String() string {
	if !m.IsCapture() {
		return fmt.Sprintf("%v->%v", m.Start, m.End)
	}
	parts := make([]string, len(m.Captured))
	for i, c := range m.Captured {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%v->%v captures:%s", m.Start, m.End, strings.Join(parts, ""))
}
