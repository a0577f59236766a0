package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halpen9/dame/board"
	"github.com/halpen9/dame/move"
	"github.com/halpen9/dame/piece"
	"github.com/halpen9/dame/profile"
	"github.com/halpen9/dame/square"
)

// Invariant 5: evaluator symmetry — evaluating with engine=White is the
// negation of evaluating with engine=Black under the same weights, on
// non-terminal positions.
func TestEvaluatorSymmetry(t *testing.T) {
	b := board.InitialBoard()
	w := profile.Lookup("Expert")

	whiteScore := Evaluate(b, w, piece.White)
	blackScore := Evaluate(b, w, piece.Black)

	assert.Equal(t, whiteScore, -blackScore)
}

func TestEvaluatorSymmetryAsymmetricPosition(t *testing.T) {
	b := board.NewEmptyBoard()
	b.SetPiece(5, 4, piece.NewKing(piece.Black))
	b.SetPiece(2, 3, piece.NewMan(piece.White))
	b.SetSideToMove(piece.White)

	w := profile.Lookup("Aggressive")
	whiteScore := Evaluate(b, w, piece.White)
	blackScore := Evaluate(b, w, piece.Black)

	assert.Equal(t, whiteScore, -blackScore)
}

func TestMaterialHeuristicSign(t *testing.T) {
	b := board.NewEmptyBoard()
	b.SetPiece(0, 1, piece.NewMan(piece.Black))

	assert.Equal(t, 1.0, material(b))
}

func TestTerminalEvaluationMagnitude(t *testing.T) {
	b := board.NewEmptyBoard()
	// A single boxed-in white man: white to move, no legal moves, black
	// wins.
	b.SetPiece(0, 1, piece.NewMan(piece.White))
	b.SetPiece(1, 0, piece.NewMan(piece.Black))
	b.SetPiece(1, 2, piece.NewMan(piece.Black))
	b.SetPiece(2, 3, piece.NewMan(piece.Black))
	b.SetSideToMove(piece.White)

	w := profile.Lookup("Balanced")
	assert.Equal(t, float64(WinScore), Evaluate(b, w, piece.Black))
	assert.Equal(t, float64(-WinScore), Evaluate(b, w, piece.White))
}

// A position that is simultaneously terminal-by-no-moves and drawn by
// the quiet-move rule must evaluate to 0, not ±WinScore: the draw check
// takes precedence, mirroring board.Board.Winner.
func TestTerminalEvaluationDrawTakesPrecedence(t *testing.T) {
	b := board.NewEmptyBoard()
	// Same boxed-in white man as above: white to move, no legal moves.
	b.SetPiece(0, 1, piece.NewMan(piece.White))
	b.SetPiece(1, 0, piece.NewMan(piece.Black))
	b.SetPiece(1, 2, piece.NewMan(piece.Black))
	b.SetPiece(2, 3, piece.NewMan(piece.Black))
	// An uninvolved Black king shuttles quietly to run the quiet counter
	// up to the draw threshold without disturbing the box.
	b.SetPiece(9, 8, piece.NewKing(piece.Black))
	b.SetSideToMove(piece.White)

	squares := []square.Square{{Row: 9, Col: 8}, {Row: 8, Col: 7}}
	for i := 0; i < board.QuietLimit; i++ {
		from, to := squares[i%2], squares[(i+1)%2]
		b.Apply(move.NewQuiet(from, to))
	}

	assert.True(t, b.IsDraw())
	assert.True(t, b.TerminalNoMoves())

	w := profile.Lookup("Balanced")
	assert.Equal(t, 0.0, Evaluate(b, w, piece.White))
	assert.Equal(t, 0.0, Evaluate(b, w, piece.Black))
}
