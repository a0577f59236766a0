// Package montecarlo implements the flat Monte Carlo move evaluator:
// uniform-random playouts per candidate move, averaged outcome,
// uniform-random tie-break among the best-scoring candidates.
//
// Grounded on the teacher's montecarlo package ("simmed play with
// running per-move statistics") and montecarlo/stats.go's running-mean
// accumulator, reimplemented here on top of gonum.org/v1/gonum/stat as
// the concrete domain-stack library. The chosen move's score
// distribution is rendered with aybabtme/uniplot/histogram, the same
// library the teacher's montecarlo/stats package uses to plot simmed
// play statistics.
package montecarlo

import (
	"bytes"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
	"lukechampine.com/frand"

	"github.com/halpen9/dame/board"
	"github.com/halpen9/dame/move"
	"github.com/halpen9/dame/piece"
)

// MaxRolloutPlies bounds a single rollout; reaching the cap is reported
// as a draw so that purely random self-play cannot contaminate the
// statistics with pathologically long games.
const MaxRolloutPlies = 400

// Searcher is the flat Monte Carlo searcher. Unlike the minimax
// searcher it never mutates the caller's board: each simulation forks a
// fresh deep copy.
type Searcher struct {
	engine      piece.Color
	simulations int
	rng         *frand.RNG

	lastBestScore float64
}

// NewSearcher builds a Searcher with a non-deterministic random source.
func NewSearcher(engine piece.Color, simulations int) *Searcher {
	return newSearcher(engine, simulations, frand.Bytes(32))
}

// NewSeededSearcher builds a Searcher whose rollouts and tie-breaks are
// seeded deterministically, for reproducible tests.
func NewSeededSearcher(engine piece.Color, simulations int, seed []byte) *Searcher {
	return newSearcher(engine, simulations, seed)
}

func newSearcher(engine piece.Color, simulations int, seed []byte) *Searcher {
	return &Searcher{
		engine:      engine,
		simulations: simulations,
		rng:         frand.NewCustom(seed, 1024, 20),
	}
}

// LastBestScore returns the mean outcome of the move chosen by the most
// recent BestMove call.
func (s *Searcher) LastBestScore() float64 {
	return s.lastBestScore
}

type candidate struct {
	move    *move.Move
	results []float64
}

// BestMove runs s.simulations uniform-random rollouts distributed over
// the legal moves from b, and returns the move with the highest mean
// outcome, breaking ties uniformly at random. Returns nil if b has no
// legal moves.
func (s *Searcher) BestMove(b *board.Board) *move.Move {
	moves := b.LegalMoves(b.SideToMove())
	if len(moves) == 0 {
		return nil
	}

	candidates := make([]candidate, len(moves))
	for i, m := range moves {
		// Prior of a single zero observation, so every candidate starts
		// with a baseline "visit" and division by zero never occurs.
		candidates[i] = candidate{move: m, results: []float64{0}}
	}

	for i := 0; i < s.simulations; i++ {
		idx := s.rng.Intn(len(candidates))
		c := &candidates[idx]

		sim := b.Copy()
		side := sim.SideToMove()
		sim.Apply(c.move)
		sim.SetSideToMove(side.Opponent())

		result := s.rollout(sim)
		c.results = append(c.results, result)
	}

	bestIdx := []int{0}
	bestMean := stat.Mean(candidates[0].results, nil)
	for i := 1; i < len(candidates); i++ {
		mean := stat.Mean(candidates[i].results, nil)
		switch {
		case mean > bestMean:
			bestMean = mean
			bestIdx = []int{i}
		case mean == bestMean:
			bestIdx = append(bestIdx, i)
		}
	}

	chosen := candidates[bestIdx[s.rng.Intn(len(bestIdx))]]
	s.lastBestScore = bestMean
	log.Debug().
		Float64("meanScore", bestMean).
		Str("move", chosen.move.String()).
		Str("scoreHistogram", scoreHistogram(chosen.results)).
		Msg("monte carlo decision")
	return chosen.move
}

// scoreHistogram renders the chosen move's rollout outcomes (-1, 0, +1
// per simulation) as an ASCII histogram for the debug log.
func scoreHistogram(results []float64) string {
	bins := 3
	if len(results) < bins {
		bins = len(results)
	}
	if bins == 0 {
		return ""
	}
	hist := histogram.Hist(bins, results)
	var buf bytes.Buffer
	if err := histogram.Fprint(&buf, hist, histogram.Linear(20)); err != nil {
		return ""
	}
	return buf.String()
}

// rollout plays uniformly-random legal moves from b, alternating sides,
// until a side has no legal moves or MaxRolloutPlies is reached. It
// returns the outcome from the engine's perspective: +1 engine won, 0
// draw, -1 engine lost. Only the no-moves terminal ends a rollout; the
// repetition/quiet-move draw rule never stops one, since the ply cap
// already bounds runaway random play. When a side has no moves the
// result is read from Winner, which reports a draw if that position is
// also drawn.
func (s *Searcher) rollout(b *board.Board) float64 {
	for ply := 0; ply < MaxRolloutPlies; ply++ {
		if b.TerminalNoMoves() {
			winner, _ := b.Winner()
			switch winner {
			case 'w':
				return sign(s.engine == piece.White)
			case 'b':
				return sign(s.engine == piece.Black)
			default:
				return 0
			}
		}

		moves := b.LegalMoves(b.SideToMove())
		m := moves[s.rng.Intn(len(moves))]
		side := b.SideToMove()
		b.Apply(m)
		b.SetSideToMove(side.Opponent())
	}
	return 0
}

func sign(engineWon bool) float64 {
	if engineWon {
		return 1
	}
	return -1
}
