// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trellis implements the second-order Markov inference
// engine over a sentence's candidate label lattice: Viterbi decoding
// with optional beam pruning, the forward/backward algorithm, and
// posterior marginals. Forward, Backward and the marginals always run
// over the full lattice; they do not prune.
//
// A column i's cell is indexed by (row, col): row is the index of a
// label among column i-1's candidates (the trigram's `py`), col is
// the index of a label among column i's own candidates (`y`). This
// keeps every cell an index pair into small per-column slices rather
// than an owning pointer, so a trellis can be discarded in bulk
// between training epochs.
package trellis

import (
	"math"

	"github.com/danieldk/morphotag/labels"
	"github.com/danieldk/morphotag/params"
)

var negInf = math.Inf(-1)

// Trellis holds the per-sentence candidate lattice and the score
// matrices computed over it.
type Trellis struct {
	registry   *labels.Registry
	store      *params.Store
	subDeg     params.Degree
	modelOrder params.Degree

	candidates [][]int
	emission   [][]float64

	v  [][][]float64
	bp [][][]int
	fw [][][]float64
	bw [][][]float64
}

// New constructs a Trellis over candidates (one label-id slice per
// sentence position, including the boundary positions) and featIDs
// (one interned feature-template id slice per position, ignored for
// boundary positions).
func New(store *params.Store, registry *labels.Registry, candidates [][]int, featIDs [][]int, subDeg, modelOrder params.Degree) *Trellis {
	n := len(candidates)
	t := &Trellis{
		registry:   registry,
		store:      store,
		subDeg:     subDeg,
		modelOrder: modelOrder,
		candidates: candidates,
		emission:   make([][]float64, n),
	}

	for i := 0; i < n; i++ {
		t.emission[i] = make([]float64, len(candidates[i]))
		for c, y := range candidates[i] {
			if i < 2 {
				// Boundary positions score the fixed boundary label;
				// their emission is zero by convention.
				t.emission[i][c] = 0
				continue
			}
			t.emission[i][c] = store.EmissionScore(featIDs[i], y, subDeg)
		}
	}

	return t
}

// RowCandidates returns the label-id slice that row indices at
// column i are drawn from: candidates[i-1], or a singleton boundary
// row for i == 0.
func (t *Trellis) RowCandidates(i int) []int {
	return t.rowCandidates(i)
}

// PpyCandidates returns the label-id slice the trigram's `ppy`
// ranges over at column i.
func (t *Trellis) PpyCandidates(i int) []int {
	return t.ppyCandidates(i)
}

// rowCandidates returns the label-id slice that row indices at
// column i are drawn from: candidates[i-1], or a singleton boundary
// row for i == 0.
func (t *Trellis) rowCandidates(i int) []int {
	if i == 0 {
		return []int{labels.Boundary}
	}
	return t.candidates[i-1]
}

// ppyCandidates returns the label-id slice the trigram's `ppy`
// ranges over at column i: candidates[i-2], or a fixed boundary
// singleton when i < 2.
func (t *Trellis) ppyCandidates(i int) []int {
	if i < 2 {
		return []int{labels.Boundary}
	}
	return t.candidates[i-2]
}

func (t *Trellis) trFw(ppy, py, y int) float64 {
	return t.store.TransitionScore(ppy, py, y, t.subDeg, t.modelOrder)
}

func logSumExp(xs []float64) float64 {
	max := negInf
	for _, x := range xs {
		if x > max {
			max = x
		}
	}
	if math.IsInf(max, -1) {
		return negInf
	}

	var sum float64
	for _, x := range xs {
		sum += math.Exp(x - max)
	}
	return max + math.Log(sum)
}

func argmax(xs []float64) (int, float64) {
	best := 0
	bestV := negInf
	for i, x := range xs {
		if x > bestV {
			bestV = x
			best = i
		}
	}
	return best, bestV
}
