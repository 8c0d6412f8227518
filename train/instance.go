// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package train implements the two structured trainers fitting the
// label model's parameters from gold-labeled sentences: an averaged
// perceptron driven by Viterbi decoding, and an SGD variant driven by
// posterior marginals.
package train

import (
	"math/rand"

	"github.com/danieldk/morphotag/labels"
	"github.com/danieldk/morphotag/params"
	"github.com/danieldk/morphotag/trellis"
)

// shuffleSeed is the fixed PRNG seed the spec requires for a
// reproducible training-data shuffle.
const shuffleSeed = 0

// Instance is one sentence reduced to what a trainer needs: its
// per-position candidate label ids (including the four boundary
// positions), the interned feature-template ids for each position,
// and the gold label id at each position.
type Instance struct {
	Candidates [][]int
	FeatIDs    [][]int
	Gold       []int
}

// shuffledOrder returns a permutation of [0, n) using the fixed
// training seed.
func shuffledOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewSource(shuffleSeed))
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

// accuracy decodes every instance with store and returns the
// fraction of non-boundary positions whose predicted label matches
// gold.
func accuracy(store *params.Store, registry *labels.Registry, instances []Instance, subDeg, modelOrder params.Degree) float64 {
	var correct, total int

	for _, inst := range instances {
		tr := trellis.New(store, registry, inst.Candidates, inst.FeatIDs, subDeg, modelOrder)
		pred := tr.Viterbi(trellis.BeamConfig{})

		for i := 2; i < len(inst.Gold)-2; i++ {
			total++
			if pred[i] == inst.Gold[i] {
				correct++
			}
		}
	}

	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}
