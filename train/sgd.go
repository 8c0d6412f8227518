// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package train

import (
	"math"

	"github.com/danieldk/morphotag/labels"
	"github.com/danieldk/morphotag/params"
	"github.com/danieldk/morphotag/trellis"
)

// expProb converts a normalized log-posterior back to a probability,
// treating negative infinity (a beam-pruned or otherwise unreachable
// cell) as zero.
func expProb(logP float64) float64 {
	if math.IsInf(logP, -1) {
		return 0
	}
	return math.Exp(logP)
}

// SGDTrainer fits label-model parameters by stochastic gradient
// descent against the trellis's posterior marginals: each position's
// gold derivation is pushed up, every candidate derivation is pushed
// down in proportion to its current posterior probability, and, when
// Sigma > 0, regularization shrinks the gold triple's unigram, bigram
// and trigram transition weights at each position. Emission weights,
// sub-label weights and the weights of non-gold candidates are not
// regularized.
type SGDTrainer struct {
	Registry         *labels.Registry
	SubLabelOrder    params.Degree
	ModelOrder       params.Degree
	MaxPasses        int
	MaxUselessPasses int
	Delta            float64
	Sigma            float64
	L1               bool
}

// Train runs the SGD outer loop over trainSet, tracking held-out
// accuracy on devSet, and returns the frozen best-snapshot parameter
// store. Unlike PerceptronTrainer, there is no averaging: the
// weights mutated during the winning epoch are the ones kept.
func (st *SGDTrainer) Train(trainSet, devSet []Instance) *params.Store {
	store := params.NewStore()
	store.SetLabelRegistry(st.Registry)

	order := shuffledOrder(len(trainSet))

	var best *params.Store
	bestAcc := -1.0
	useless := 0

	for pass := 0; pass < st.MaxPasses && useless < st.MaxUselessPasses; pass++ {
		for _, idx := range order {
			st.updateSentence(store, trainSet[idx])
		}

		acc := accuracy(store, st.Registry, devSet, st.SubLabelOrder, st.ModelOrder)
		if acc > bestAcc {
			bestAcc = acc
			best = snapshot(store)
			useless = 0
		} else {
			useless++
		}
	}

	if best == nil {
		best = store
	}
	best.SetTrained()
	return best
}

func snapshot(s *params.Store) *params.Store {
	cp := s.CopyShape()
	cp.Merge(s, 1)
	return cp
}

func (st *SGDTrainer) updateSentence(store *params.Store, inst Instance) {
	tr := trellis.New(store, st.Registry, inst.Candidates, inst.FeatIDs, st.SubLabelOrder, st.ModelOrder)
	tr.Forward()
	tr.Backward()

	gold := inst.Gold

	for i := 2; i < len(gold)-2; i++ {
		gy := gold[i]
		gpy := labels.Boundary
		if i >= 1 {
			gpy = gold[i-1]
		}
		gppy := labels.Boundary
		if i >= 2 {
			gppy = gold[i-2]
		}

		store.UpdateEmissionAll(inst.FeatIDs[i], gy, st.Delta, st.SubLabelOrder)
		store.UpdateTransition(gppy, gpy, gy, st.Delta, st.SubLabelOrder, st.ModelOrder)

		uni := tr.UnigramMarginal(i)
		bigram := tr.BigramMarginal(i)
		trigram := tr.TrigramMarginal(i)

		cols := inst.Candidates[i]
		pys := tr.RowCandidates(i)
		ppys := tr.PpyCandidates(i)

		for c, y := range cols {
			// UnigramMarginal already returns linear probabilities
			// (it applies expSafe internally), unlike BigramMarginal
			// and TrigramMarginal below, which stay in log space.
			pUni := uni[c]
			store.UpdateEmissionAll(inst.FeatIDs[i], y, -st.Delta*pUni, st.SubLabelOrder)
			store.UpdateUni(y, -st.Delta*pUni, st.SubLabelOrder)

			for r, py := range pys {
				pBi := expProb(bigram[r][c])
				store.UpdateBi(py, y, -st.Delta*pBi, st.SubLabelOrder)

				for p, ppy := range ppys {
					pTri := expProb(trigram[p][r][c])
					store.UpdateTri(ppy, py, y, -st.Delta*pTri, st.SubLabelOrder)
				}
			}
		}

		if st.Sigma > 0 {
			store.RegularizeUni(gy, st.Sigma, st.L1)
			store.RegularizeBi(gpy, gy, st.Sigma, st.L1)
			store.RegularizeTri(gppy, gpy, gy, st.Sigma, st.L1)
		}
	}
}
