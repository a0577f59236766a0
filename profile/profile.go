// Package profile maps a named playing style to the nine-element weight
// vector the evaluator combines. Grounded on spec.md's design note that
// profiles should be "a tagged variant with an associated weight
// vector", sampled once at construction for the randomised profile.
package profile

import (
	"lukechampine.com/frand"
)

// Weights is the nine-element weight vector consumed by eval.Evaluate,
// in order: material, central, structure, mobility, king_activity,
// promotion, safety, tempo, locks.
type Weights [9]float64

// MonteCarlo is the sentinel profile name that routes decision-making to
// the Monte Carlo searcher instead of minimax; it carries no weights.
const MonteCarlo = "MonteCarlo"

var named = map[string]Weights{
	"Losing":        {1, 1, 5, 7, 1, 1, 10, 1, 2},
	"Intermediate":  {15, 15, 15, 15, 20, 20, 10, 20, 15},
	"Expert":        {60, 25, 30, 20, 45, 45, 10, 40, 35},
	"Aggressive":    {100, 25, 8, 35, 95, 50, 12, 20, 15},
	"Defensive":     {50, 12, 45, 20, 30, 10, 50, 1, 25},
	"Balanced":      {10, 10, 10, 10, 10, 10, 10, 10, 10},
	"RandomPlay":    {},
}

// Lookup returns the weight vector for name. RandomWeights is sampled
// fresh each call to Lookup with that name, since the caller is expected
// to call it exactly once at searcher construction, per the design note
// that it should be "sampled once at construction time, not per
// evaluation." Unknown names fall back to Expert.
func Lookup(name string) Weights {
	if name == "RandomWeights" {
		return randomWeights()
	}
	if w, ok := named[name]; ok {
		return w
	}
	return named["Expert"]
}

func randomWeights() Weights {
	var w Weights
	for i := range w {
		w[i] = float64(frand.Intn(51))
	}
	return w
}

// Names lists the eight concrete profile names (excluding the
// MonteCarlo sentinel).
func Names() []string {
	return []string{"Losing", "Intermediate", "Expert", "Aggressive", "Defensive", "RandomWeights", "RandomPlay", "Balanced"}
}
