// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trellis

import (
	"math"

	"github.com/danieldk/morphotag/labels"
)

// Forward computes the forward score matrix. fw(i, py, y) is the
// log-sum-exp, over every path ending at y at position i with
// predecessor py, of the cumulative score including emission(i, y).
func (t *Trellis) Forward() {
	n := len(t.candidates)
	t.fw = make([][][]float64, n)

	for i := 0; i < n; i++ {
		rows := t.rowCandidates(i)
		ppys := t.ppyCandidates(i)
		cols := t.candidates[i]

		col := make([][]float64, len(rows))
		for r := range rows {
			col[r] = make([]float64, len(cols))
		}

		if i == 0 {
			for c, y := range cols {
				col[0][c] = t.emission[i][c] + t.trFw(labels.Boundary, labels.Boundary, y)
			}
		} else {
			prevFw := t.fw[i-1]

			for r, py := range rows {
				for c, y := range cols {
					scores := make([]float64, len(ppys))
					for p, ppy := range ppys {
						var prev float64
						if i == 1 {
							prev = prevFw[0][r]
						} else {
							prev = prevFw[p][r]
						}
						scores[p] = prev + t.trFw(ppy, py, y)
					}
					col[r][c] = t.emission[i][c] + logSumExp(scores)
				}
			}
		}

		t.fw[i] = col
	}
}

// Backward computes the backward score matrix. bw(i, py, y) is the
// log-sum-exp, over every continuation from y at position i, of the
// cumulative score of everything strictly after position i
// (transitions and emissions at i+1, i+2, …, but not at i itself).
func (t *Trellis) Backward() {
	n := len(t.candidates)
	t.bw = make([][][]float64, n)

	for i := n - 1; i >= 0; i-- {
		rows := t.rowCandidates(i)
		cols := t.candidates[i]

		col := make([][]float64, len(rows))
		for r := range rows {
			col[r] = make([]float64, len(cols))
		}

		if i == n-1 {
			t.bw[i] = col
			continue
		}

		nextCols := t.candidates[i+1]
		nextBw := t.bw[i+1]
		nextEmission := t.emission[i+1]

		for r, py := range rows {
			for c, y := range cols {
				scores := make([]float64, len(nextCols))
				for z, zLabel := range nextCols {
					var nbw float64
					if i+1 == 1 {
						nbw = nextBw[0][z]
					} else {
						nbw = nextBw[c][z]
					}
					scores[z] = t.trFw(py, y, zLabel) + nextEmission[z] + nbw
				}
				col[r][c] = logSumExp(scores)
			}
		}

		t.bw[i] = col
	}
}

// ForwardTotal returns the log-sum-exp of the final forward column,
// the total log-probability mass of the sentence.
func (t *Trellis) ForwardTotal() float64 {
	n := len(t.candidates)
	last := t.fw[n-1]

	var all []float64
	for r := range last {
		all = append(all, last[r]...)
	}
	return logSumExp(all)
}

// BackwardTotal returns the log-sum-exp of the first backward
// column's scores plus the first position's emission and boundary
// transition, which must equal ForwardTotal within tolerance.
func (t *Trellis) BackwardTotal() float64 {
	first := t.bw[0]

	var all []float64
	for r := range first {
		for c, y := range t.candidates[0] {
			all = append(all, first[r][c]+t.emission[0][c]+t.trFw(labels.Boundary, labels.Boundary, y))
		}
	}
	return logSumExp(all)
}

// BigramMarginal returns the normalized log-posterior P(i, py, y) for
// every (row, col) cell at position i, normalized by log-sum-exp over
// the whole column so that the exponentiated values sum to 1.
func (t *Trellis) BigramMarginal(i int) [][]float64 {
	rows := t.rowCandidates(i)
	cols := t.candidates[i]

	raw := make([][]float64, len(rows))
	var all []float64
	for r := range rows {
		raw[r] = make([]float64, len(cols))
		for c := range cols {
			raw[r][c] = t.fw[i][r][c] + t.bw[i][r][c]
			all = append(all, raw[r][c])
		}
	}

	logZ := logSumExp(all)
	for r := range rows {
		for c := range cols {
			raw[r][c] -= logZ
		}
	}
	return raw
}

// UnigramMarginal sums BigramMarginal's probabilities over every row,
// returning one probability per candidate at position i.
func (t *Trellis) UnigramMarginal(i int) []float64 {
	bigram := t.BigramMarginal(i)
	cols := t.candidates[i]

	out := make([]float64, len(cols))
	for c := range cols {
		var sum float64
		for r := range bigram {
			sum += expSafe(bigram[r][c])
		}
		out[c] = sum
	}
	return out
}

// TrigramMarginal returns the normalized log-posterior of every
// (ppy, py, y) triple at position i, reconstructed from the forward
// score at i-1, the backward score at i, the transition, and the
// emission at i.
func (t *Trellis) TrigramMarginal(i int) [][][]float64 {
	ppys := t.ppyCandidates(i)
	pys := t.rowCandidates(i)
	cols := t.candidates[i]

	raw := make([][][]float64, len(ppys))
	var all []float64

	prevFw := t.fw[i-1]

	for p, ppy := range ppys {
		raw[p] = make([][]float64, len(pys))
		for r, py := range pys {
			raw[p][r] = make([]float64, len(cols))
			for c, y := range cols {
				var prev float64
				if i == 1 {
					prev = prevFw[0][r]
				} else if i == 0 {
					prev = 0
				} else {
					prev = prevFw[p][r]
				}
				score := prev + t.trFw(ppy, py, y) + t.emission[i][c] + t.bw[i][r][c]
				raw[p][r][c] = score
				all = append(all, score)
			}
		}
	}

	logZ := logSumExp(all)
	for p := range ppys {
		for r := range pys {
			for c := range cols {
				raw[p][r][c] -= logZ
			}
		}
	}
	return raw
}

func expSafe(x float64) float64 {
	if math.IsInf(x, -1) {
		return 0
	}
	return math.Exp(x)
}
