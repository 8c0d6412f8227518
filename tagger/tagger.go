// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tagger wires the label registry, parameter store, label and
// lemma guessers, and the trellis/trainer packages into the
// Train/Label/Evaluate operations a driver program calls.
package tagger

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/danieldk/morphotag/config"
	"github.com/danieldk/morphotag/corpus"
	"github.com/danieldk/morphotag/errs"
	"github.com/danieldk/morphotag/guesser"
	"github.com/danieldk/morphotag/labels"
	"github.com/danieldk/morphotag/lemma"
	"github.com/danieldk/morphotag/params"
	"github.com/danieldk/morphotag/train"
	"github.com/danieldk/morphotag/trellis"
)

const maxSuffixWordLength = 30

// Tagger bundles a trained label registry, parameter store, label
// guesser, and lemma guesser into the object a driver loads, trains,
// or runs inference with.
type Tagger struct {
	Registry *labels.Registry
	Guesser  *guesser.Guesser
	Lemmas   *lemma.Guesser
	Store    *params.Store

	SubLabelOrder params.Degree
	ModelOrder    params.Degree
	Inference     config.Inference
	Beam          trellis.BeamConfig
}

// New constructs an empty, untrained Tagger.
func New() *Tagger {
	return &Tagger{
		Registry: labels.NewRegistry(),
		Guesser:  guesser.NewGuesser(maxSuffixWordLength),
		Lemmas:   lemma.NewGuesser(),
		Store:    params.NewStore(),
	}
}

// Train fits the registry, label guesser, parameter store, and lemma
// guesser from trainSet, tracking devSet accuracy for early stopping,
// and freezes every component.
func (tg *Tagger) Train(trainSet, devSet []*corpus.Sentence, cfg *config.Config) error {
	tg.SubLabelOrder = cfg.SubLabelDegree()
	tg.ModelOrder = cfg.ModelDegree()
	tg.Inference = cfg.Inference
	tg.Beam = trellis.BeamConfig{Width: cfg.Beam, Mass: cfg.BeamMass}

	for _, sent := range trainSet {
		for _, w := range sent.Words {
			if w.GoldLabel != "" {
				tg.Registry.Intern(w.GoldLabel)
			}
		}
	}

	guesserSentences := make([]guesser.TrainSentence, 0, len(trainSet))
	for _, sent := range trainSet {
		start, end := sent.Inner()
		gs := guesser.TrainSentence{}
		for i := start; i < end; i++ {
			w := sent.Words[i]
			gs.Forms = append(gs.Forms, w.Form)
			gs.Labels = append(gs.Labels, tg.Registry.Intern(w.GoldLabel))
		}
		guesserSentences = append(guesserSentences, gs)
	}
	tg.Guesser.Train(guesserSentences, tg.Registry)

	trainInstances, err := tg.buildInstances(trainSet, true)
	if err != nil {
		return err
	}
	devInstances, err := tg.buildInstances(devSet, true)
	if err != nil {
		return err
	}

	switch cfg.Estimator {
	case config.ML:
		sgd := &train.SGDTrainer{
			Registry:         tg.Registry,
			SubLabelOrder:    tg.SubLabelOrder,
			ModelOrder:       tg.ModelOrder,
			MaxPasses:        cfg.MaxTrainPasses,
			MaxUselessPasses: cfg.MaxUselessPasses,
			Delta:            cfg.Delta,
			Sigma:            cfg.Sigma,
			L1:               cfg.Regularization == config.L1Regularization,
		}
		tg.Store = sgd.Train(trainInstances, devInstances)
	default:
		perc := &train.PerceptronTrainer{
			Registry:         tg.Registry,
			SubLabelOrder:    tg.SubLabelOrder,
			ModelOrder:       tg.ModelOrder,
			MaxPasses:        cfg.MaxTrainPasses,
			MaxUselessPasses: cfg.MaxUselessPasses,
		}
		tg.Store = perc.Train(trainInstances, devInstances)
	}

	tg.Store.SetLabelRegistry(tg.Registry)
	filterType, threshold := cfg.Filter()
	tg.Store.SetFilter(filterType, threshold)
	tg.Store.SetTrainIters(cfg.MaxTrainPasses)

	tg.trainLemmas(trainSet, cfg)

	tg.Registry.SetTrained()
	tg.Store.SetTrained()

	return nil
}

func (tg *Tagger) trainLemmas(trainSet []*corpus.Sentence, cfg *config.Config) {
	var examples []lemma.Example

	for _, sent := range trainSet {
		start, end := sent.Inner()
		for i := start; i < end; i++ {
			w := sent.Words[i]
			if w.GoldLemma == "" {
				continue
			}

			ex := lemma.Example{
				Word:  w.Form,
				Label: w.GoldLabel,
				Lemma: w.GoldLemma,
				Feats: w.Feats,
			}
			for _, alt := range w.Analyzer {
				if alt.Lemma != "" {
					ex.Alt = append(ex.Alt, lemma.AltCandidate{Label: alt.Label, Lemma: alt.Lemma})
				}
			}
			examples = append(examples, ex)
		}
	}

	tg.Lemmas.Train(examples, cfg.MaxLemmatizerPasses, cfg.MaxUselessPasses)
}

// buildInstances converts sentences into the candidate/feature/gold
// triples the train package operates on. When forceGold is set, a
// position's gold label id is always included among its candidates,
// so that a gold derivation remains reachable during training even
// if the guesser's own proposal misses it.
func (tg *Tagger) buildInstances(sentences []*corpus.Sentence, forceGold bool) ([]train.Instance, error) {
	instances := make([]train.Instance, 0, len(sentences))

	for _, sent := range sentences {
		candidates := make([][]int, sent.Len())
		featIDs := make([][]int, sent.Len())
		gold := make([]int, sent.Len())

		for i, w := range sent.Words {
			if w.Form == labels.BoundaryForm {
				candidates[i] = []int{labels.Boundary}
				gold[i] = labels.Boundary
				continue
			}

			cand := tg.overrideOrGuess(w)

			goldID := tg.Registry.Intern(w.GoldLabel)
			if forceGold && !containsInt(cand, goldID) {
				cand = append(cand, goldID)
			}

			candidates[i] = cand
			gold[i] = goldID
			featIDs[i] = tg.Store.FeatTemplates(w.Feats)
		}

		instances = append(instances, train.Instance{Candidates: candidates, FeatIDs: featIDs, Gold: gold})
	}

	return instances, nil
}

// overrideOrGuess returns w's candidate label ids. A word carrying a
// LabelOverride (field 4's extra labels beyond the gold one) uses that
// pre-supplied set instead of the guesser's own proposals, interning
// labels as they're first seen; this is only safe while the registry
// is still open for training.
func (tg *Tagger) overrideOrGuess(w corpus.Word) []int {
	if len(w.LabelOverride) == 0 {
		return tg.Guesser.Candidates(w.Form, true, -1)
	}

	cand := make([]int, 0, len(w.LabelOverride)+1)
	seen := make(map[int]bool)
	for _, l := range append([]string{w.GoldLabel}, w.LabelOverride...) {
		if l == "" {
			continue
		}
		id := tg.Registry.Intern(l)
		if !seen[id] {
			seen[id] = true
			cand = append(cand, id)
		}
	}
	return cand
}

// overrideOrGuessFrozen is overrideOrGuess's inference-time
// counterpart: the registry is frozen, so an override label unknown
// to it is simply dropped rather than interned.
func (tg *Tagger) overrideOrGuessFrozen(w corpus.Word) []int {
	if len(w.LabelOverride) == 0 {
		return tg.Guesser.Candidates(w.Form, true, -1)
	}

	cand := make([]int, 0, len(w.LabelOverride))
	seen := make(map[int]bool)
	for _, l := range w.LabelOverride {
		id, ok := tg.Registry.Lookup(l)
		if ok && !seen[id] {
			seen[id] = true
			cand = append(cand, id)
		}
	}
	if len(cand) == 0 {
		return tg.Guesser.Candidates(w.Form, true, -1)
	}
	return cand
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// Label assigns a predicted label and lemma to every non-boundary
// word of sent, using MAP (Viterbi) or marginal (per-position argmax)
// inference as configured.
func (tg *Tagger) Label(sent *corpus.Sentence) error {
	candidates := make([][]int, sent.Len())
	featIDs := make([][]int, sent.Len())

	for i, w := range sent.Words {
		if w.Form == labels.BoundaryForm {
			candidates[i] = []int{labels.Boundary}
			continue
		}
		candidates[i] = tg.overrideOrGuessFrozen(w)
		featIDs[i] = tg.Store.FeatTemplates(w.Feats)
	}

	tr := trellis.New(tg.Store, tg.Registry, candidates, featIDs, tg.SubLabelOrder, tg.ModelOrder)

	var assigned []int
	if tg.Inference == config.Marginal {
		tr.Forward()
		tr.Backward()
		assigned = make([]int, sent.Len())
		for i := range sent.Words {
			if candidates[i][0] == labels.Boundary && len(candidates[i]) == 1 {
				assigned[i] = labels.Boundary
				continue
			}
			probs := tr.UnigramMarginal(i)
			best, bestP := 0, -1.0
			for c, p := range probs {
				if p > bestP {
					bestP = p
					best = c
				}
			}
			assigned[i] = candidates[i][best]
		}
	} else {
		assigned = tr.Viterbi(tg.Beam)
	}

	start, end := sent.Inner()
	for i := start; i < end; i++ {
		sent.Words[i].Label = assigned[i]

		labelStr, err := tg.Registry.String(assigned[i])
		if err != nil {
			return err
		}

		if lm, ok := tg.Lemmas.Lemma(sent.Words[i].Form, labelStr, sent.Words[i].Feats); ok {
			sent.Words[i].Lemma = lm
		}
	}

	return nil
}

// LabelString resolves a label id to its string form; it satisfies
// the signature corpus.Writer expects.
func (tg *Tagger) LabelString(id int) (string, error) {
	return tg.Registry.String(id)
}

type encodedTagger struct {
	Registry      *labels.Registry
	Guesser       *guesser.Guesser
	Lemmas        *lemma.Guesser
	Store         *params.Store
	SubLabelOrder params.Degree
	ModelOrder    params.Degree
	Inference     config.Inference
	BeamWidth     int
	BeamMass      float64
}

// GobEncode implements gob.GobEncoder.
func (tg *Tagger) GobEncode() ([]byte, error) {
	e := encodedTagger{
		Registry:      tg.Registry,
		Guesser:       tg.Guesser,
		Lemmas:        tg.Lemmas,
		Store:         tg.Store,
		SubLabelOrder: tg.SubLabelOrder,
		ModelOrder:    tg.ModelOrder,
		Inference:     tg.Inference,
		BeamWidth:     tg.Beam.Width,
		BeamMass:      tg.Beam.Mass,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (tg *Tagger) GobDecode(data []byte) error {
	e := encodedTagger{
		Registry: labels.NewRegistry(),
		Guesser:  guesser.NewGuesser(maxSuffixWordLength),
		Lemmas:   lemma.NewGuesser(),
		Store:    params.NewStore(),
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return fmt.Errorf("decoding tagger model: %w: %v", errs.ErrBadBinary, err)
	}

	tg.Registry = e.Registry
	tg.Guesser = e.Guesser
	tg.Lemmas = e.Lemmas
	tg.Store = e.Store
	tg.SubLabelOrder = e.SubLabelOrder
	tg.ModelOrder = e.ModelOrder
	tg.Inference = e.Inference
	tg.Beam = trellis.BeamConfig{Width: e.BeamWidth, Mass: e.BeamMass}

	tg.Store.SetLabelRegistry(tg.Registry)

	return nil
}
