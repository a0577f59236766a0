package board

import (
	"testing"

	"github.com/matryer/is"

	"github.com/halpen9/dame/move"
	"github.com/halpen9/dame/piece"
	"github.com/halpen9/dame/square"
)

func TestInitialPosition(t *testing.T) {
	is := is.New(t)
	b := InitialBoard()

	white, black := b.CountPieces()
	is.Equal(white, 20)
	is.Equal(black, 20)
	is.Equal(b.SideToMove(), piece.White)

	for r := 4; r <= 5; r++ {
		for c := 0; c < square.Dim; c++ {
			is.True(b.PieceAt(r, c).IsEmpty())
		}
	}
	for r := 0; r < square.Dim; r++ {
		for c := 0; c < square.Dim; c++ {
			s := square.New(r, c)
			if !s.Dark() {
				is.True(b.PieceAt(r, c).IsEmpty())
			}
		}
	}
}

// Invariant 1: make+undo round-trips the board exactly.
func TestMakeUndoRoundTrip(t *testing.T) {
	is := is.New(t)
	b := InitialBoard()

	moves := b.LegalMoves(piece.White)
	is.True(len(moves) > 0)

	for _, m := range moves {
		before := snapshot(b)
		tok := b.Make(m)
		b.Undo(tok)
		after := snapshot(b)
		is.Equal(before, after)
	}
}

type snap struct {
	grid  [square.Dim][square.Dim]piece.Piece
	side  piece.Color
	hash  uint64
	quiet int
	hist  int
}

func snapshot(b *Board) snap {
	return snap{grid: b.grid, side: b.sideToMove, hash: b.hash, quiet: b.quiet, hist: len(b.history)}
}

// Invariant 4: hash is a pure function of grid + side to move, and is
// invariant under make+undo.
func TestHashInvariantUnderMakeUndo(t *testing.T) {
	is := is.New(t)
	b := InitialBoard()

	h0 := b.Hash()
	moves := b.LegalMoves(piece.White)
	tok := b.Make(moves[0])
	is.True(b.Hash() != h0)
	b.Undo(tok)
	is.Equal(b.Hash(), h0)
}

// S2: single White man at (5,4), single Black man at (6,5), Black to
// move: the only legal move is the capture to (4,3).
func TestScenarioSingleManCapture(t *testing.T) {
	is := is.New(t)
	b := NewEmptyBoard()
	b.SetPiece(5, 4, piece.NewMan(piece.White))
	b.SetPiece(6, 5, piece.NewMan(piece.Black))
	b.SetSideToMove(piece.Black)

	moves := b.LegalMoves(piece.Black)
	is.Equal(len(moves), 1)
	m := moves[0]
	is.True(m.Start.Equal(square.New(6, 5)))
	is.True(m.End.Equal(square.New(4, 3)))
	is.Equal(m.CaptureCount(), 1)
	is.True(m.Captured[0].Equal(square.New(5, 4)))

	b.Apply(m)
	white, black := b.CountPieces()
	is.Equal(white, 0)
	is.Equal(black, 1)
}

// S3: White king at (4,4), Black men at (5,5) and (3,3): only the
// double-jump captures survive the maximum-capture filter.
func TestScenarioMaximumCaptureFilter(t *testing.T) {
	is := is.New(t)
	b := NewEmptyBoard()
	b.SetPiece(4, 4, piece.NewKing(piece.White))
	b.SetPiece(5, 5, piece.NewMan(piece.Black))
	b.SetPiece(3, 3, piece.NewMan(piece.Black))
	b.SetSideToMove(piece.White)

	moves := b.LegalMoves(piece.White)
	is.True(len(moves) > 0)
	for _, m := range moves {
		is.Equal(m.CaptureCount(), 2)
	}
}

// Invariant 2: when captures exist, every legal move is a capture of
// the same maximum count.
func TestInvariantMandatoryMaximumCapture(t *testing.T) {
	is := is.New(t)
	b := NewEmptyBoard()
	b.SetPiece(4, 4, piece.NewMan(piece.White))
	b.SetPiece(5, 5, piece.NewMan(piece.Black))
	b.SetPiece(2, 4, piece.NewMan(piece.White))
	b.SetSideToMove(piece.White)

	moves := b.LegalMoves(piece.White)
	is.True(len(moves) > 0)
	maxCount := moves[0].CaptureCount()
	for _, m := range moves {
		is.True(m.IsCapture())
		is.Equal(m.CaptureCount(), maxCount)
	}
}

// S4: draw by repetition on a two-king endgame, shuffling between two
// squares each.
func TestScenarioRepetitionDraw(t *testing.T) {
	is := is.New(t)
	b := NewEmptyBoard()
	b.SetPiece(0, 1, piece.NewKing(piece.White))
	b.SetPiece(9, 8, piece.NewKing(piece.Black))
	b.SetSideToMove(piece.White)

	// A 4-ply cycle: white shuttles (0,1)<->(1,2), black shuttles
	// (9,8)<->(8,7).
	whiteOut := move.NewQuiet(square.New(0, 1), square.New(1, 2))
	whiteBack := move.NewQuiet(square.New(1, 2), square.New(0, 1))
	blackOut := move.NewQuiet(square.New(9, 8), square.New(8, 7))
	blackBack := move.NewQuiet(square.New(8, 7), square.New(9, 8))

	cycle := []*move.Move{whiteOut, blackOut, whiteBack, blackBack}
	for rep := 0; rep < 3; rep++ {
		for _, m := range cycle {
			side := b.SideToMove()
			b.Apply(m)
			b.SetSideToMove(side.Opponent())
		}
	}

	is.True(b.IsDraw())
	winner, inProgress := b.Winner()
	is.True(!inProgress)
	is.Equal(winner, 'd')
}

// S5: quiet-move draw after 25 consecutive king moves with no capture
// and no man on the board.
func TestScenarioQuietMoveDraw(t *testing.T) {
	is := is.New(t)
	b := NewEmptyBoard()
	b.SetPiece(0, 1, piece.NewKing(piece.White))
	b.SetPiece(9, 8, piece.NewKing(piece.Black))
	b.SetSideToMove(piece.White)

	squares := []square.Square{{Row: 0, Col: 1}, {Row: 1, Col: 2}}
	for i := 0; i < QuietLimit; i++ {
		from, to := squares[i%2], squares[(i+1)%2]
		b.Apply(move.NewQuiet(from, to))
	}

	is.True(b.IsDraw())
}
