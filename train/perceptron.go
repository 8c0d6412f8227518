// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package train

import (
	"github.com/danieldk/morphotag/labels"
	"github.com/danieldk/morphotag/params"
	"github.com/danieldk/morphotag/trellis"
)

// PerceptronTrainer fits label-model parameters with an averaged
// structured perceptron: each epoch decodes every training sentence
// with Viterbi against the current weights, and nudges the weights
// toward the gold derivation and away from the predicted one.
type PerceptronTrainer struct {
	Registry        *labels.Registry
	SubLabelOrder   params.Degree
	ModelOrder      params.Degree
	MaxPasses       int
	MaxUselessPasses int
}

// Train runs the averaged-perceptron outer loop over trainSet,
// tracking held-out accuracy on devSet, and returns the frozen
// best-snapshot parameter store.
func (pt *PerceptronTrainer) Train(trainSet, devSet []Instance) *params.Store {
	pos := params.NewStore()
	pos.SetLabelRegistry(pt.Registry)
	neg := params.NewStore()
	neg.SetLabelRegistry(pt.Registry)

	order := shuffledOrder(len(trainSet))

	var t float64
	var best *params.Store
	bestAcc := -1.0
	useless := 0

	for pass := 0; pass < pt.MaxPasses && useless < pt.MaxUselessPasses; pass++ {
		for _, idx := range order {
			inst := trainSet[idx]

			tr := trellis.New(pos, pt.Registry, inst.Candidates, inst.FeatIDs, pt.SubLabelOrder, pt.ModelOrder)
			pred := tr.Viterbi(trellis.BeamConfig{})

			pt.update(pos, neg, inst, pred, t)
			t++
		}

		avg := pos.CopyShape()
		avg.SetLabelRegistry(pt.Registry)
		avg.Merge(pos, t+1)
		avg.Merge(neg, 1)

		acc := accuracy(avg, pt.Registry, devSet, pt.SubLabelOrder, pt.ModelOrder)
		if acc > bestAcc {
			bestAcc = acc
			best = avg
			useless = 0
		} else {
			useless++
		}
	}

	if best == nil {
		best = pos
	}
	best.SetTrained()
	return best
}

// update applies one sentence's gold-vs-predicted perceptron update
// at every position, to both the running weights (pos) and the
// laziness accumulator (neg).
func (pt *PerceptronTrainer) update(pos, neg *params.Store, inst Instance, pred []int, t float64) {
	gold := inst.Gold

	triple := func(labelsSeq []int, i int) (ppy, py, y int) {
		y = labelsSeq[i]
		py = labels.Boundary
		if i >= 1 {
			py = labelsSeq[i-1]
		}
		ppy = labels.Boundary
		if i >= 2 {
			ppy = labelsSeq[i-2]
		}
		return
	}

	for i := 2; i < len(gold)-2; i++ {
		gppy, gpy, gy := triple(gold, i)
		pppy, ppy, py := triple(pred, i)

		pos.UpdateEmissionAll(inst.FeatIDs[i], gy, 1, pt.SubLabelOrder)
		neg.UpdateEmissionAll(inst.FeatIDs[i], gy, -t, pt.SubLabelOrder)
		pos.UpdateEmissionAll(inst.FeatIDs[i], py, -1, pt.SubLabelOrder)
		neg.UpdateEmissionAll(inst.FeatIDs[i], py, t, pt.SubLabelOrder)

		pos.UpdateTransition(gppy, gpy, gy, 1, pt.SubLabelOrder, pt.ModelOrder)
		neg.UpdateTransition(gppy, gpy, gy, -t, pt.SubLabelOrder, pt.ModelOrder)
		pos.UpdateTransition(pppy, ppy, py, -1, pt.SubLabelOrder, pt.ModelOrder)
		neg.UpdateTransition(pppy, ppy, py, t, pt.SubLabelOrder, pt.ModelOrder)
	}
}
