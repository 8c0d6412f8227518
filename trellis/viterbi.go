// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trellis

import (
	"math"

	"github.com/danieldk/morphotag/labels"
)

// BeamConfig controls the optional beam pruning applied by Viterbi.
// A zero value disables both kinds of pruning.
type BeamConfig struct {
	// Width keeps only the top-Width cells of each column by Viterbi
	// score. Width <= 0 disables fixed-width pruning.
	Width int

	// Mass keeps cells in descending score order until their
	// exponentiated cumulative mass exceeds Mass, subject to
	// MinCells/MaxCells. Mass <= 0 disables mass pruning.
	Mass     float64
	MinCells int
	MaxCells int
}

const (
	defaultBeamMin = 5
	defaultBeamMax = 200
)

// Viterbi runs the max-product (log-space max-sum) recurrence over
// the trellis and returns the best label id at each position,
// including the boundary positions.
func (t *Trellis) Viterbi(beam BeamConfig) []int {
	n := len(t.candidates)
	t.v = make([][][]float64, n)
	t.bp = make([][][]int, n)

	for i := 0; i < n; i++ {
		rows := t.rowCandidates(i)
		ppys := t.ppyCandidates(i)
		cols := t.candidates[i]

		vCol := make([][]float64, len(rows))
		bpCol := make([][]int, len(rows))

		for r := range rows {
			vCol[r] = make([]float64, len(cols))
			bpCol[r] = make([]int, len(cols))
		}

		if i == 0 {
			for c, y := range cols {
				vCol[0][c] = t.emission[i][c] + t.trFw(labels.Boundary, labels.Boundary, y)
				bpCol[0][c] = 0
			}
		} else {
			prevV := t.v[i-1]

			for r, py := range rows {
				for c, y := range cols {
					scores := make([]float64, len(ppys))
					for p, ppy := range ppys {
						var prev float64
						if i == 1 {
							prev = prevV[0][r]
						} else {
							prev = prevV[p][r]
						}
						scores[p] = prev + t.trFw(ppy, py, y)
					}

					best, bestV := argmax(scores)
					vCol[r][c] = t.emission[i][c] + bestV
					bpCol[r][c] = best
				}
			}
		}

		applyBeam(vCol, beam)

		t.v[i] = vCol
		t.bp[i] = bpCol
	}

	return t.backtrace()
}

func (t *Trellis) backtrace() []int {
	n := len(t.candidates)
	result := make([]int, n)

	lastCols := t.candidates[n-1]
	lastV := t.v[n-1]

	row, col, bestScore := 0, 0, negInf
	for r := range lastV {
		for c := range lastCols {
			if lastV[r][c] > bestScore {
				bestScore = lastV[r][c]
				row = r
				col = c
			}
		}
	}

	for i := n - 1; i >= 1; i-- {
		result[i] = t.candidates[i][col]
		nextRow := t.bp[i][row][col]
		col = row
		row = nextRow
	}
	result[0] = t.candidates[0][col]

	return result
}

// beamCell is one (row, col) score pair considered for pruning.
type beamCell struct {
	r, c int
	v    float64
}

// applyBeam masks out-of-beam cells to negative infinity in place,
// so that downstream max/logsumexp computations never select them
// while the column's shape (and so the back-pointer indexing) stays
// unchanged. When the beam is at least as wide as the column, every
// cell survives and the result is identical to unbeamed decoding.
func applyBeam(col [][]float64, beam BeamConfig) {
	if beam.Width <= 0 && beam.Mass <= 0 {
		return
	}

	var cells []beamCell
	for r := range col {
		for c := range col[r] {
			cells = append(cells, beamCell{r, c, col[r][c]})
		}
	}

	keep := make(map[[2]int]bool, len(cells))

	if beam.Width > 0 {
		sorted := append([]beamCell(nil), cells...)
		sortCellsDesc(sorted)
		w := beam.Width
		if w > len(sorted) {
			w = len(sorted)
		}
		for _, c := range sorted[:w] {
			keep[[2]int{c.r, c.c}] = true
		}
	}

	if beam.Mass > 0 {
		sorted := append([]beamCell(nil), cells...)
		sortCellsDesc(sorted)

		total := make([]float64, len(sorted))
		for i, c := range sorted {
			total[i] = c.v
		}
		logTotal := logSumExp(total)

		minCells := beam.MinCells
		if minCells <= 0 {
			minCells = defaultBeamMin
		}
		maxCells := beam.MaxCells
		if maxCells <= 0 {
			maxCells = defaultBeamMax
		}

		var mass float64
		for i, c := range sorted {
			mass += math.Exp(c.v - logTotal)
			keep[[2]int{c.r, c.c}] = true
			if i+1 >= minCells && (mass > beam.Mass || i+1 >= maxCells) {
				break
			}
		}
	}

	if len(keep) == 0 {
		return
	}

	for r := range col {
		for c := range col[r] {
			if !keep[[2]int{r, c}] {
				col[r][c] = negInf
			}
		}
	}
}

func sortCellsDesc(cells []beamCell) {
	for i := 1; i < len(cells); i++ {
		for j := i; j > 0 && cells[j].v > cells[j-1].v; j-- {
			cells[j], cells[j-1] = cells[j-1], cells[j]
		}
	}
}
