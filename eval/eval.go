// Package eval implements the nine weighted static heuristics used to
// score a draughts position, and their combination into a single
// engine-oriented scalar. Grounded on the "weighted sum of named
// heuristics" idiom already present in the example pack's pattern-based
// evaluators, adapted here to the nine terms FMJD play calls for.
package eval

import (
	"github.com/samber/lo"

	"github.com/halpen9/dame/board"
	"github.com/halpen9/dame/piece"
	"github.com/halpen9/dame/profile"
	"github.com/halpen9/dame/square"
)

// WinScore is the raw magnitude of a terminal position, in the
// Black-positive convention, before orientation.
const WinScore = 10000

// heuristic is one of the nine named terms. Each returns a raw score
// with the convention: Black-favourable positive, White-favourable
// negative.
type heuristic func(b *board.Board) float64

var heuristics = [9]heuristic{
	material,
	central,
	structure,
	mobility,
	kingActivity,
	promotionPotential,
	pieceSafety,
	tempo,
	locks,
}

// signed applies the Black-positive convention to a raw magnitude: as
// given for a black occupant, negated for a white one.
func signed(c piece.Color, value float64) float64 {
	if c == piece.Black {
		return value
	}
	return -value
}

func forEachPiece(b *board.Board, f func(s square.Square, p piece.Piece)) {
	for r := 0; r < square.Dim; r++ {
		for c := 0; c < square.Dim; c++ {
			p := b.PieceAt(r, c)
			if p.IsEmpty() {
				continue
			}
			f(square.New(r, c), p)
		}
	}
}

func material(b *board.Board) float64 {
	total := 0.0
	forEachPiece(b, func(_ square.Square, p piece.Piece) {
		v := 1.0
		if p.IsKing() {
			v = 3.0
		}
		total += signed(p.Color(), v)
	})
	return total
}

var centreSquares = []square.Square{{Row: 4, Col: 4}, {Row: 4, Col: 5}, {Row: 5, Col: 4}, {Row: 5, Col: 5}}

func inWideCentre(s square.Square) bool {
	return s.Row >= 3 && s.Row <= 6 && s.Col >= 3 && s.Col <= 6
}

func isCentre(s square.Square) bool {
	for _, c := range centreSquares {
		if c.Equal(s) {
			return true
		}
	}
	return false
}

func central(b *board.Board) float64 {
	total := 0.0
	forEachPiece(b, func(s square.Square, p piece.Piece) {
		switch {
		case isCentre(s):
			total += signed(p.Color(), 3)
		case inWideCentre(s):
			total += signed(p.Color(), 1)
		}
	})
	return total
}

func structure(b *board.Board) float64 {
	total := 0.0
	forEachPiece(b, func(s square.Square, p piece.Piece) {
		if p.IsKing() {
			return
		}
		isolated := true
		for _, d := range square.Diagonals {
			n := s.Add(d.DR, d.DC)
			if n.InBounds() && !b.PieceAt(n.Row, n.Col).IsEmpty() && b.PieceAt(n.Row, n.Col).Color() == p.Color() {
				isolated = false
				break
			}
		}
		backRow := -1
		if p.Color() == piece.Black {
			backRow = 1
		}
		backed := false
		for _, dc := range []int{-1, 1} {
			n := s.Add(backRow, dc)
			if n.InBounds() && !b.PieceAt(n.Row, n.Col).IsEmpty() && b.PieceAt(n.Row, n.Col).Color() == p.Color() {
				backed = true
				break
			}
		}
		var raw float64
		if isolated {
			raw -= 2
		}
		if backed {
			raw += 2
		}
		total += signed(p.Color(), raw)
	})
	return total
}

func mobility(b *board.Board) float64 {
	prev := b.SideToMove()
	b.SetSideToMove(piece.Black)
	blackMoves := len(b.LegalMoves(piece.Black))
	b.SetSideToMove(piece.White)
	whiteMoves := len(b.LegalMoves(piece.White))
	b.SetSideToMove(prev)
	return float64(blackMoves - whiteMoves)
}

func kingActivity(b *board.Board) float64 {
	total := 0.0
	forEachPiece(b, func(s square.Square, p piece.Piece) {
		if !p.IsKing() {
			return
		}
		edgeDist := min4(s.Row, square.Dim-1-s.Row, s.Col, square.Dim-1-s.Col)
		reach := 0
		for _, d := range square.Diagonals {
			for step := 1; ; step++ {
				n := s.Add(d.DR*step, d.DC*step)
				if !n.InBounds() || !b.PieceAt(n.Row, n.Col).IsEmpty() {
					break
				}
				reach++
			}
		}
		total += signed(p.Color(), float64(edgeDist)+0.2*float64(reach))
	})
	return total
}

func min4(a, b, c, d int) int {
	m := a
	for _, v := range []int{b, c, d} {
		if v < m {
			m = v
		}
	}
	return m
}

func promotionPotential(b *board.Board) float64 {
	total := 0.0
	forEachPiece(b, func(s square.Square, p piece.Piece) {
		if p.IsKing() {
			return
		}
		if p.Color() == piece.Black {
			total += 10 - float64(square.Dim-1-s.Row)
		} else {
			total -= 10 - float64(s.Row)
		}
	})
	return total
}

func pieceSafety(b *board.Board) float64 {
	total := 0.0
	forEachPiece(b, func(s square.Square, p piece.Piece) {
		if hanging(b, s, p) {
			total += signed(p.Color(), -4)
		}
	})
	return total
}

// hanging reports whether the opponent has an immediate single-jump
// capture available against the piece on s.
func hanging(b *board.Board, s square.Square, p piece.Piece) bool {
	for _, d := range square.Diagonals {
		attacker := s.Add(-d.DR, -d.DC)
		landing := s.Add(d.DR, d.DC)
		if !attacker.InBounds() || !landing.InBounds() {
			continue
		}
		ap := b.PieceAt(attacker.Row, attacker.Col)
		if ap.IsEmpty() || ap.Color() == p.Color() {
			continue
		}
		if !b.PieceAt(landing.Row, landing.Col).IsEmpty() {
			continue
		}
		return true
	}
	return false
}

func tempo(b *board.Board) float64 {
	total := 0.0
	forEachPiece(b, func(s square.Square, p piece.Piece) {
		if p.IsKing() {
			return
		}
		if p.Color() == piece.Black {
			total += float64(s.Row)
		} else {
			total -= float64(square.Dim - 1 - s.Row)
		}
	})
	return total
}

var trapSquares = []square.Square{
	{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 0, Col: 3}, {Row: 3, Col: 0},
	{Row: 9, Col: 8}, {Row: 8, Col: 9}, {Row: 9, Col: 6}, {Row: 6, Col: 9},
}

func locks(b *board.Board) float64 {
	total := 0.0
	forEachPiece(b, func(s square.Square, p piece.Piece) {
		if !p.IsKing() {
			return
		}
		for _, t := range trapSquares {
			if t.Equal(s) {
				total += signed(p.Color(), -8)
				break
			}
		}
	})
	return total
}

// orient converts a Black-positive raw score into the engine-positive
// convention: unchanged for Black, negated for White.
func orient(engine piece.Color, raw float64) float64 {
	if engine == piece.Black {
		return raw
	}
	return -raw
}

// Evaluate scores b from engine's point of view using the nine
// heuristics weighted by w. Terminal positions short-circuit to
// ±WinScore (oriented) or 0 for a draw, dispatching on b.Winner() the
// same way the draw check there takes precedence over the no-moves
// check.
func Evaluate(b *board.Board, w profile.Weights, engine piece.Color) float64 {
	if winner, inProgress := b.Winner(); !inProgress {
		var raw float64
		switch winner {
		case 'd':
			raw = 0
		case 'b':
			raw = WinScore
		case 'w':
			raw = -WinScore
		}
		return orient(engine, raw)
	}

	contributions := lo.Map(lo.Range(9), func(i, _ int) float64 {
		return w[i] * heuristics[i](b)
	})
	raw := lo.Sum(contributions)
	return orient(engine, raw)
}
