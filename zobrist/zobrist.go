// Package zobrist provides incremental position hashing for the draughts
// board, grounded on the teacher's zobrist.Zobrist (random tables seeded
// via lukechampine.com/frand, XORed in and out as state changes).
package zobrist

import (
	"lukechampine.com/frand"

	"github.com/halpen9/dame/piece"
	"github.com/halpen9/dame/square"
)

// kind indexes the four piece inhabitants for the per-square tables.
type kind int

const (
	whiteMan kind = iota
	blackMan
	whiteKing
	blackKing
	numKinds
)

func kindOf(p piece.Piece) kind {
	switch {
	case p.Color() == piece.White && !p.IsKing():
		return whiteMan
	case p.Color() == piece.Black && !p.IsKing():
		return blackMan
	case p.Color() == piece.White && p.IsKing():
		return whiteKing
	default:
		return blackKing
	}
}

// Table holds the random bitstrings used to hash a position. One Table
// is built per Board and reused for its lifetime, including across
// copies (the tables themselves never change, only the Board's running
// hash value).
type Table struct {
	squares [square.Dim][square.Dim][numKinds]uint64
	turn    uint64
}

// NewTable builds a fresh table of random values seeded from frand, the
// same RNG source the teacher's zobrist package uses to populate its
// hash tables.
func NewTable() *Table {
	t := &Table{}
	for r := 0; r < square.Dim; r++ {
		for c := 0; c < square.Dim; c++ {
			for k := kind(0); k < numKinds; k++ {
				t.squares[r][c][k] = frand.Uint64n(1<<63-2) + 1
			}
		}
	}
	t.turn = frand.Uint64n(1<<63-2) + 1
	return t
}

// PieceTerm returns the table entry for a piece occupying a square. XOR
// this value into a running hash to add/remove that occupant.
func (t *Table) PieceTerm(s square.Square, p piece.Piece) uint64 {
	return t.squares[s.Row][s.Col][kindOf(p)]
}

// TurnTerm returns the table entry for side-to-move. XOR this value into
// a running hash whenever the side to move toggles.
func (t *Table) TurnTerm() uint64 {
	return t.turn
}
