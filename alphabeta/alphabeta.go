// Package alphabeta implements the depth-limited alpha-beta minimax
// searcher: iterative deepening, a per-decision transposition cache,
// capture-biased move ordering, and a uniform random tie-break among
// equal-score moves at every interior node.
//
// Grounded on the teacher's endgame/alphabeta.Solver: a similar field
// shape (transposition cache, counters, search depth, engine color) and
// the same Solve-via-iterative-deepening driver, generalized
// from Scrabble endgame search to draughts minimax.
package alphabeta

import (
	"sort"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/halpen9/dame/board"
	"github.com/halpen9/dame/eval"
	"github.com/halpen9/dame/move"
	"github.com/halpen9/dame/piece"
	"github.com/halpen9/dame/profile"
)

const (
	posInfinity = 1e9
	negInfinity = -1e9
)

// Counters are the per-decision performance counters exposed for
// logging and tournament aggregation.
type Counters struct {
	Nodes        int
	CacheHits    int
	AlphaCutoffs int
	BetaCutoffs  int
}

type ttKey struct {
	hash       uint64
	depth      int
	maximizing bool
	engine     piece.Color
}

type ttEntry struct {
	score float64
	move  *move.Move
}

// Searcher is the minimax searcher. It is constructed once per engine
// color/depth/profile combination and is safe to reuse across decisions
// (the transposition cache is cleared on every BestMove call, per the
// spec's "it is not retained between decisions").
type Searcher struct {
	engine   piece.Color
	maxDepth int
	weights  profile.Weights
	rng      *frand.RNG

	tt       map[ttKey]ttEntry
	counters Counters
}

// NewSearcher builds a Searcher with a non-deterministic random source.
func NewSearcher(engine piece.Color, maxDepth int, profileName string) *Searcher {
	return newSearcher(engine, maxDepth, profileName, frand.Bytes(32))
}

// NewSeededSearcher builds a Searcher whose tie-break random source is
// seeded deterministically, for reproducible tests.
func NewSeededSearcher(engine piece.Color, maxDepth int, profileName string, seed []byte) *Searcher {
	return newSearcher(engine, maxDepth, profileName, seed)
}

func newSearcher(engine piece.Color, maxDepth int, profileName string, seed []byte) *Searcher {
	return &Searcher{
		engine:   engine,
		maxDepth: maxDepth,
		weights:  profile.Lookup(profileName),
		rng:      frand.NewCustom(seed, 1024, 20),
	}
}

// Counters returns the performance counters from the most recent
// BestMove call.
func (s *Searcher) Counters() Counters {
	return s.counters
}

// BestMove runs iterative deepening d = 1, 2, ..., maxDepth and returns
// the last non-nil move produced. Returns nil on a terminal position.
func (s *Searcher) BestMove(b *board.Board) *move.Move {
	s.counters = Counters{}
	s.tt = make(map[ttKey]ttEntry)

	var best *move.Move
	for depth := 1; depth <= s.maxDepth; depth++ {
		_, m := s.alphabeta(b, depth, negInfinity, posInfinity, true)
		if m != nil {
			best = m
		}
		log.Info().
			Int("depth", depth).
			Int("nodes", s.counters.Nodes).
			Int("cacheHits", s.counters.CacheHits).
			Int("alphaCutoffs", s.counters.AlphaCutoffs).
			Int("betaCutoffs", s.counters.BetaCutoffs).
			Stringer("move", logMove{best}).
			Msg("iteration complete")
	}
	log.Debug().Uint64("freeBytes", memory.FreeMemory()).Msg("search finished")
	return best
}

type logMove struct{ m *move.Move }

func (l logMove) String() string {
	if l.m == nil {
		return "none"
	}
	return l.m.String()
}

// alphabeta is the recursive alpha-beta routine described in spec.md
// §4.E steps 1-10.
func (s *Searcher) alphabeta(b *board.Board, depth int, alpha, beta float64, maximizing bool) (float64, *move.Move) {
	s.counters.Nodes++

	key := ttKey{hash: b.Hash(), depth: depth, maximizing: maximizing, engine: s.engine}
	if e, ok := s.tt[key]; ok {
		s.counters.CacheHits++
		return e.score, e.move
	}

	if depth == 0 || b.TerminalNoMoves() {
		return eval.Evaluate(b, s.weights, s.engine), nil
	}

	moves := b.LegalMoves(b.SideToMove())
	if len(moves) == 0 {
		return eval.Evaluate(b, s.weights, s.engine), nil
	}

	ordered := s.orderMoves(b, moves, depth, maximizing)

	best := negInfinity
	if !maximizing {
		best = posInfinity
	}
	var bestMoves []*move.Move

	for _, m := range ordered {
		side := b.SideToMove()
		tok := b.Make(m)
		b.SetSideToMove(side.Opponent())
		score, _ := s.alphabeta(b, depth-1, alpha, beta, !maximizing)
		b.SetSideToMove(side)
		b.Undo(tok)

		if maximizing {
			switch {
			case score > best:
				best = score
				bestMoves = []*move.Move{m}
			case score == best:
				bestMoves = append(bestMoves, m)
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				s.counters.AlphaCutoffs++
				break
			}
		} else {
			switch {
			case score < best:
				best = score
				bestMoves = []*move.Move{m}
			case score == best:
				bestMoves = append(bestMoves, m)
			}
			if best < beta {
				beta = best
			}
			if beta <= alpha {
				s.counters.BetaCutoffs++
				break
			}
		}
	}

	chosen := bestMoves[s.rng.Intn(len(bestMoves))]
	s.tt[key] = ttEntry{score: best, move: chosen}
	return best, chosen
}

type scoredMove struct {
	m   *move.Move
	key float64
}

// orderMoves ranks candidates by capture size plus any cached
// transposition score for the resulting child position, so that
// shallower iterative-deepening passes sharpen the ordering of deeper
// ones.
func (s *Searcher) orderMoves(b *board.Board, moves []*move.Move, depth int, maximizing bool) []*move.Move {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		key := 50 * float64(m.CaptureCount())

		side := b.SideToMove()
		tok := b.Make(m)
		b.SetSideToMove(side.Opponent())
		childKey := ttKey{hash: b.Hash(), depth: depth - 1, maximizing: !maximizing, engine: s.engine}
		if e, ok := s.tt[childKey]; ok {
			key += e.score
		}
		b.SetSideToMove(side)
		b.Undo(tok)

		scored[i] = scoredMove{m: m, key: key}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].key > scored[j].key
	})
	return lo.Map(scored, func(sm scoredMove, _ int) *move.Move {
		return sm.m
	})
}
