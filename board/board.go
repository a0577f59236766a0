// Package board implements the 10x10 international-draughts board: grid
// state, legal move generation with mandatory maximum capture, make/undo,
// terminal/draw detection, incremental Zobrist hashing, and deep copy.
//
// Grounded on the teacher's game/backup.go (make/undo via a stack-owned
// backup record instead of full-board copies) and zobrist/hash.go
// (incremental XOR hashing).
package board

import (
	"github.com/halpen9/dame/move"
	"github.com/halpen9/dame/piece"
	"github.com/halpen9/dame/square"
	"github.com/halpen9/dame/zobrist"
)

// QuietLimit is the number of consecutive king-only, capture-free moves
// that triggers the quiet-move draw rule.
const QuietLimit = 25

// RepetitionLimit is the number of times a position must recur to trigger
// the repetition draw rule.
const RepetitionLimit = 3

// Board is a 10x10 draughts position. It is exclusively owned by its
// current holder; searchers that use make/undo never fork a Board.
type Board struct {
	grid       [square.Dim][square.Dim]piece.Piece
	sideToMove piece.Color
	history    []uint64
	quiet      int
	hash       uint64
	table      *zobrist.Table
}

// NewEmptyBoard builds a board with no pieces, White to move, and a
// freshly seeded hash table.
func NewEmptyBoard() *Board {
	return &Board{table: zobrist.NewTable()}
}

// InitialBoard builds the FMJD starting position: White Men on rows 0-3,
// Black Men on rows 6-9, rows 4-5 empty, White to move.
func InitialBoard() *Board {
	b := NewEmptyBoard()
	for r := 0; r < 4; r++ {
		for c := 0; c < square.Dim; c++ {
			s := square.New(r, c)
			if s.Dark() {
				b.SetPiece(r, c, piece.NewMan(piece.White))
			}
		}
	}
	for r := 6; r < square.Dim; r++ {
		for c := 0; c < square.Dim; c++ {
			s := square.New(r, c)
			if s.Dark() {
				b.SetPiece(r, c, piece.NewMan(piece.Black))
			}
		}
	}
	return b
}

// PieceAt returns the occupant of (r, c). Out-of-range coordinates are
// treated as empty, per the narrow error surface of the core.
func (b *Board) PieceAt(r, c int) piece.Piece {
	s := square.New(r, c)
	if !s.InBounds() {
		return piece.Empty
	}
	return b.grid[r][c]
}

func (b *Board) pieceAt(s square.Square) piece.Piece {
	if !s.InBounds() {
		return piece.Empty
	}
	return b.grid[s.Row][s.Col]
}

// SetPiece places p at (r, c), maintaining the running hash. Out-of-range
// coordinates are a no-op.
func (b *Board) SetPiece(r, c int, p piece.Piece) {
	s := square.New(r, c)
	if !s.InBounds() {
		return
	}
	old := b.grid[r][c]
	if !old.IsEmpty() {
		b.hash ^= b.table.PieceTerm(s, old)
	}
	b.grid[r][c] = p
	if !p.IsEmpty() {
		b.hash ^= b.table.PieceTerm(s, p)
	}
}

func (b *Board) setPieceAt(s square.Square, p piece.Piece) {
	b.SetPiece(s.Row, s.Col, p)
}

// SideToMove returns the side currently to move.
func (b *Board) SideToMove() piece.Color {
	return b.sideToMove
}

// SetSideToMove sets the side to move, maintaining the running hash. The
// caller is responsible for toggling this around make/undo.
func (b *Board) SetSideToMove(c piece.Color) {
	if c != b.sideToMove {
		b.hash ^= b.table.TurnTerm()
		b.sideToMove = c
	}
}

// Hash returns the current Zobrist hash: a pure function of grid
// contents and side-to-move.
func (b *Board) Hash() uint64 {
	return b.hash
}

// CountPieces returns the number of white and black pieces on the board.
func (b *Board) CountPieces() (white, black int) {
	for r := 0; r < square.Dim; r++ {
		for c := 0; c < square.Dim; c++ {
			p := b.grid[r][c]
			if p.IsEmpty() {
				continue
			}
			if p.Color() == piece.White {
				white++
			} else {
				black++
			}
		}
	}
	return white, black
}

func promotionRank(c piece.Color) int {
	if c == piece.White {
		return square.Dim - 1
	}
	return 0
}

// Apply moves the piece at m.Start to m.End, removes captured pieces,
// promotes the moved piece if it lands on its promotion rank while still
// a man, updates the quiet-move counter, and appends the new hash to the
// position history. It does not touch side-to-move itself, but the
// searchers and cmd/dame toggle it immediately after Apply, so the
// history records the hash as it will read once that toggle happens.
func (b *Board) Apply(m *move.Move) {
	moving := b.pieceAt(m.Start)
	wasMan := !moving.IsKing()

	b.setPieceAt(m.Start, piece.Empty)
	for _, capSq := range m.Captured {
		b.setPieceAt(capSq, piece.Empty)
	}

	if wasMan && m.End.Row == promotionRank(moving.Color()) {
		moving.Promote()
	}
	b.setPieceAt(m.End, moving)

	if m.IsCapture() || wasMan {
		b.quiet = 0
	} else {
		b.quiet++
	}

	b.history = append(b.history, b.hash^b.table.TurnTerm())
}

// UndoToken is an opaque record produced by Make and consumed by the
// matching Undo. It is cheap to construct: no board copy, just the
// minimal state apply() is about to overwrite. Grounded on the teacher's
// stateBackup record, generalized from a stack slot to a single owned
// value living on the caller's Go call stack.
type UndoToken struct {
	move        *move.Move
	movingPiece piece.Piece
	captured    []piece.Piece
	prevQuiet   int
}

// Make applies m and returns an UndoToken that Undo can use to reverse
// it exactly, including hash, quiet counter, and position history. Side
// to move is not touched; the caller toggles it around Make/Undo.
func (b *Board) Make(m *move.Move) UndoToken {
	moving := b.pieceAt(m.Start)
	captured := make([]piece.Piece, len(m.Captured))
	for i, capSq := range m.Captured {
		captured[i] = b.pieceAt(capSq)
	}
	tok := UndoToken{
		move:        m,
		movingPiece: moving,
		captured:    captured,
		prevQuiet:   b.quiet,
	}
	b.Apply(m)
	return tok
}

// Undo reverses the effect of the Make call that produced tok. tok must
// be the token from the immediately preceding Make; any other usage is
// undefined, per the core's narrow error surface.
func (b *Board) Undo(tok UndoToken) {
	m := tok.move

	b.setPieceAt(m.End, piece.Empty)
	b.setPieceAt(m.Start, tok.movingPiece)
	for i, capSq := range m.Captured {
		b.setPieceAt(capSq, tok.captured[i])
	}

	b.quiet = tok.prevQuiet
	if len(b.history) > 0 {
		b.history = b.history[:len(b.history)-1]
	}
}

// TerminalNoMoves reports whether the side to move has no legal moves.
// This is the search-level terminal; the side to move is the loser.
func (b *Board) TerminalNoMoves() bool {
	return len(b.LegalMoves(b.sideToMove)) == 0
}

// IsDraw reports whether the position is drawn by repetition (the
// current hash has recurred RepetitionLimit or more times) or by the
// quiet-move rule (QuietLimit or more consecutive capture-free,
// man-free moves).
func (b *Board) IsDraw() bool {
	if b.quiet >= QuietLimit {
		return true
	}
	count := 0
	for _, h := range b.history {
		if h == b.hash {
			count++
		}
	}
	return count >= RepetitionLimit
}

// TerminalWithDraw is the gameplay terminal: no legal moves, or a draw.
func (b *Board) TerminalWithDraw() bool {
	return b.TerminalNoMoves() || b.IsDraw()
}

// Winner returns 'd' for a draw, 'w'/'b' if the side to move has no
// moves (the other side wins), or reports the game is still in progress.
func (b *Board) Winner() (result rune, inProgress bool) {
	if b.IsDraw() {
		return 'd', false
	}
	if b.TerminalNoMoves() {
		if b.sideToMove == piece.Black {
			return 'w', false
		}
		return 'b', false
	}
	return 0, true
}

// Copy returns a deep copy of the board: grid, side-to-move, position
// history, and quiet counter. The Zobrist table itself is immutable
// random data and is shared, not duplicated, mirroring the teacher's
// Game.Copy not re-deriving shared immutable lexicon/alphabet state.
func (b *Board) Copy() *Board {
	nb := &Board{
		sideToMove: b.sideToMove,
		quiet:      b.quiet,
		hash:       b.hash,
		table:      b.table,
		history:    append([]uint64(nil), b.history...),
	}
	nb.grid = b.grid
	return nb
}
