package board

import (
	"github.com/halpen9/dame/move"
	"github.com/halpen9/dame/piece"
	"github.com/halpen9/dame/square"
)

// LegalMoves returns the legal moves for side. If any capture exists
// anywhere on the board for side, only the captures of maximum length
// are returned (FMJD mandatory maximum capture); otherwise all
// non-capture moves are returned.
func (b *Board) LegalMoves(side piece.Color) []*move.Move {
	var captures []*move.Move
	var quiets []*move.Move

	for r := 0; r < square.Dim; r++ {
		for c := 0; c < square.Dim; c++ {
			p := b.grid[r][c]
			if p.IsEmpty() || p.Color() != side {
				continue
			}
			start := square.New(r, c)
			captures = append(captures, b.pieceCaptures(start, p)...)
			quiets = append(quiets, b.pieceQuiets(start, p)...)
		}
	}

	if len(captures) == 0 {
		return quiets
	}

	maxLen := 0
	for _, m := range captures {
		if m.CaptureCount() > maxLen {
			maxLen = m.CaptureCount()
		}
	}
	result := captures[:0:0]
	for _, m := range captures {
		if m.CaptureCount() == maxLen {
			result = append(result, m)
		}
	}
	return result
}

// pieceQuiets returns the non-capture moves available to the piece p
// sitting on start.
func (b *Board) pieceQuiets(start square.Square, p piece.Piece) []*move.Move {
	var out []*move.Move
	if p.IsKing() {
		for _, d := range square.Diagonals {
			for step := 1; ; step++ {
				land := start.Add(d.DR*step, d.DC*step)
				if !land.InBounds() || !b.pieceAt(land).IsEmpty() {
					break
				}
				out = append(out, move.NewQuiet(start, land))
			}
		}
		return out
	}

	forward := 1
	if p.Color() == piece.Black {
		forward = -1
	}
	for _, dc := range []int{-1, 1} {
		land := start.Add(forward, dc)
		if land.InBounds() && b.pieceAt(land).IsEmpty() {
			out = append(out, move.NewQuiet(start, land))
		}
	}
	return out
}

// pieceCaptures returns every maximal capture sequence available to the
// piece p sitting on start, via DFS over the multi-jump tree. The moving
// piece is conceptually lifted off its start square for the duration of
// the search (a jump sequence may legally pass back near its own
// now-vacated origin) and is not removed from the board for real; this
// is purely a bookkeeping trick internal to generation.
func (b *Board) pieceCaptures(start square.Square, p piece.Piece) []*move.Move {
	origin := b.grid[start.Row][start.Col]
	b.grid[start.Row][start.Col] = piece.Empty

	var out []*move.Move
	visited := map[square.Square]bool{start: true}
	b.captureDFS(start, start, p, nil, map[square.Square]bool{}, visited, &out)

	b.grid[start.Row][start.Col] = origin
	return out
}

func (b *Board) captureDFS(start, current square.Square, moving piece.Piece,
	captured []square.Square, capturedSet map[square.Square]bool,
	visited map[square.Square]bool, out *[]*move.Move) {

	found := false

	for _, d := range square.Diagonals {
		if moving.IsKing() {
			found = b.kingCaptureStep(start, current, d, moving, captured, capturedSet, visited, out) || found
			continue
		}
		mid := current.Add(d.DR, d.DC)
		land := current.Add(d.DR*2, d.DC*2)
		if !land.InBounds() {
			continue
		}
		occ := b.pieceAt(mid)
		if occ.IsEmpty() || occ.Color() == moving.Color() || capturedSet[mid] {
			continue
		}
		if !b.pieceAt(land).IsEmpty() || visited[land] {
			continue
		}
		found = true
		b.recurseCapture(start, land, moving, captured, capturedSet, visited, mid, out)
	}

	if !found && len(captured) > 0 {
		*out = append(*out, move.NewCapture(start, current, append([]square.Square(nil), captured...)))
	}
}

func (b *Board) kingCaptureStep(start, current square.Square, d struct{ DR, DC int },
	moving piece.Piece, captured []square.Square, capturedSet map[square.Square]bool,
	visited map[square.Square]bool, out *[]*move.Move) bool {

	found := false
	step := 1
	for {
		probe := current.Add(d.DR*step, d.DC*step)
		if !probe.InBounds() {
			return found
		}
		occ := b.pieceAt(probe)
		if occ.IsEmpty() {
			step++
			continue
		}
		// A piece already captured earlier in this sequence stays on the
		// board but is not a target; the scan continues past it.
		if capturedSet[probe] {
			step++
			continue
		}
		if occ.Color() == moving.Color() {
			return found
		}
		// probe holds a fresh opponent: every empty square strictly
		// beyond it, up to the next blocker, is a valid landing.
		for landStep := step + 1; ; landStep++ {
			land := current.Add(d.DR*landStep, d.DC*landStep)
			if !land.InBounds() || !b.pieceAt(land).IsEmpty() {
				return found
			}
			if visited[land] {
				continue
			}
			found = true
			b.recurseCapture(start, land, moving, captured, capturedSet, visited, probe, out)
		}
	}
}

func (b *Board) recurseCapture(start, land square.Square, moving piece.Piece,
	captured []square.Square, capturedSet map[square.Square]bool,
	visited map[square.Square]bool, newlyCaptured square.Square, out *[]*move.Move) {

	nextCaptured := append(append([]square.Square(nil), captured...), newlyCaptured)
	nextSet := make(map[square.Square]bool, len(capturedSet)+1)
	for k := range capturedSet {
		nextSet[k] = true
	}
	nextSet[newlyCaptured] = true
	nextVisited := make(map[square.Square]bool, len(visited)+1)
	for k := range visited {
		nextVisited[k] = true
	}
	nextVisited[land] = true

	b.captureDFS(start, land, moving, nextCaptured, nextSet, nextVisited, out)
}
