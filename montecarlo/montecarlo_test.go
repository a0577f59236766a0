package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halpen9/dame/board"
	"github.com/halpen9/dame/piece"
)

// S6: with the same seed and 300 simulations from the initial position,
// the searcher returns the same move twice in a row and reports a
// finite best score.
func TestScenarioDeterminismUpToSeed(t *testing.T) {
	b := board.InitialBoard()
	seed := []byte("monte-carlo-s6-seed")

	s1 := NewSeededSearcher(piece.White, 300, seed)
	m1 := s1.BestMove(b)

	s2 := NewSeededSearcher(piece.White, 300, seed)
	m2 := s2.BestMove(b)

	assert.True(t, m1.Equal(m2))
	assert.False(t, math.IsInf(s1.LastBestScore(), 0))
	assert.False(t, math.IsNaN(s1.LastBestScore()))
}

func TestBestMoveOnTerminalPositionReturnsNil(t *testing.T) {
	b := board.NewEmptyBoard()
	b.SetPiece(0, 1, piece.NewMan(piece.White))
	b.SetPiece(1, 0, piece.NewMan(piece.Black))
	b.SetPiece(1, 2, piece.NewMan(piece.Black))
	b.SetPiece(2, 3, piece.NewMan(piece.Black))
	b.SetSideToMove(piece.White)

	s := NewSeededSearcher(piece.White, 50, []byte("terminal"))
	assert.Nil(t, s.BestMove(b))
}

func TestBestMoveDoesNotMutateCallerBoard(t *testing.T) {
	b := board.InitialBoard()
	before := b.Hash()

	s := NewSeededSearcher(piece.Black, 20, []byte("no-mutation"))
	_ = s.BestMove(b)

	assert.Equal(t, before, b.Hash())
}

func TestScoreHistogramRendersNonEmptyForResults(t *testing.T) {
	out := scoreHistogram([]float64{-1, -1, 0, 0, 1, 1, 1})
	assert.NotEmpty(t, out)
}

func TestScoreHistogramEmptyForNoResults(t *testing.T) {
	assert.Equal(t, "", scoreHistogram(nil))
}
