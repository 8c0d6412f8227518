// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lemma

import (
	"bytes"
	"encoding/gob"
	"math/rand"

	"github.com/danieldk/morphotag/params"
)

// shuffleSeed is the fixed PRNG seed the spec requires for
// reproducible training-data shuffles.
const shuffleSeed = 0

// AltCandidate is an alternative (label, lemma) pair an upstream
// analyzer proposed for a training word, beyond its gold label.
type AltCandidate struct {
	Label string
	Lemma string
}

// Example is one training instance: a word form with its gold label
// and lemma, its morphological feature strings, and any analyzer
// alternatives to also learn from.
type Example struct {
	Word  string
	Label string
	Lemma string
	Feats []string
	Alt   []AltCandidate
}

type wordLabelKey struct {
	Word  string
	Label string
}

// Guesser predicts a lemma for a (word form, label) pair via a
// suffix-edit class chosen by a discriminative emission-only model.
type Guesser struct {
	classes  *classRegistry
	exactLex map[wordLabelKey]string
	wordLex  map[string]string
	store    *params.Store
}

// NewGuesser constructs an empty, untrained Guesser.
func NewGuesser() *Guesser {
	return &Guesser{
		classes:  newClassRegistry(),
		exactLex: make(map[wordLabelKey]string),
		wordLex:  make(map[string]string),
		store:    params.NewStore(),
	}
}

type trainInstance struct {
	featIDs []int
	classID int
}

// Train fits the guesser on examples using the same averaged
// perceptron discipline as the label trainer, restricted to emission
// features: it runs up to maxPasses epochs over a once-shuffled
// instance list, tracks training accuracy, and stops early after
// maxUseless epochs without improvement.
func (g *Guesser) Train(examples []Example, maxPasses, maxUseless int) {
	for _, ex := range examples {
		cls := minimalSuffixEdit(ex.Word, ex.Lemma)
		g.classes.intern(cls)

		key := wordLabelKey{Word: ex.Word, Label: ex.Label}
		g.exactLex[key] = ex.Lemma
		g.wordLex[ex.Word] = ex.Lemma

		for _, alt := range ex.Alt {
			altCls := minimalSuffixEdit(ex.Word, alt.Lemma)
			g.classes.intern(altCls)
			g.exactLex[wordLabelKey{Word: ex.Word, Label: alt.Label}] = alt.Lemma
		}
	}

	instances := make([]trainInstance, 0, len(examples))
	build := func(word, label string, feats []string, lemma string) {
		cls := minimalSuffixEdit(word, lemma)
		classID, _ := g.classes.lookup(cls)
		templates := featureTemplates(word, label, feats)
		ids := g.store.FeatTemplates(templates)
		instances = append(instances, trainInstance{featIDs: ids, classID: classID})
	}

	for _, ex := range examples {
		build(ex.Word, ex.Label, ex.Feats, ex.Lemma)
		for _, alt := range ex.Alt {
			build(ex.Word, alt.Label, ex.Feats, alt.Lemma)
		}
	}

	rng := rand.New(rand.NewSource(shuffleSeed))
	rng.Shuffle(len(instances), func(i, j int) {
		instances[i], instances[j] = instances[j], instances[i]
	})

	pos := g.store
	neg := params.NewStore()
	neg.SetLabelRegistry(nil)

	var t float64
	var best *params.Store
	var bestAcc float64 = -1
	useless := 0

	for pass := 0; pass < maxPasses && useless < maxUseless; pass++ {
		correct := 0

		for _, inst := range instances {
			pred := g.argmaxClass(pos, inst.featIDs)
			if pred == inst.classID {
				correct++
				t++
				continue
			}

			pos.UpdateEmissionAll(inst.featIDs, inst.classID, 1, params.NoDeg)
			neg.UpdateEmissionAll(inst.featIDs, inst.classID, -t, params.NoDeg)
			pos.UpdateEmissionAll(inst.featIDs, pred, -1, params.NoDeg)
			neg.UpdateEmissionAll(inst.featIDs, pred, t, params.NoDeg)

			t++
		}

		acc := float64(correct) / float64(maxInt1(len(instances), 1))

		avg := pos.CopyShape()
		avg.Merge(pos, t+1)
		avg.Merge(neg, 1)

		if acc > bestAcc {
			bestAcc = acc
			best = avg
			useless = 0
		} else {
			useless++
		}
	}

	if best != nil {
		best.SetTrained()
		g.store = best
	} else {
		pos.SetTrained()
		g.store = pos
	}
}

func maxInt1(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (g *Guesser) argmaxClass(store *params.Store, featIDs []int) int {
	best := 0
	bestScore := store.EmissionScore(featIDs, 0, params.NoDeg)
	for c := 1; c < g.classes.count(); c++ {
		score := store.EmissionScore(featIDs, c, params.NoDeg)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// Lemma predicts a lemma for (word, label). An exact (word, label)
// training match wins outright; failing that, a word-only training
// match; failing that, the edit class scoring highest among those
// whose word-form suffix actually matches word is applied.
func (g *Guesser) Lemma(word, label string, feats []string) (string, bool) {
	if lemma, ok := g.exactLex[wordLabelKey{Word: word, Label: label}]; ok {
		return lemma, true
	}
	if lemma, ok := g.wordLex[word]; ok {
		return lemma, true
	}

	templates := featureTemplates(word, label, feats)
	featIDs := make([]int, 0, len(templates))
	for _, tmpl := range templates {
		if id, ok := g.store.FeatTemplate(tmpl); ok {
			featIDs = append(featIDs, id)
		}
	}

	best := -1
	var bestScore float64
	for c := 0; c < g.classes.count(); c++ {
		cls := g.classes.class(c)
		if !hasRuneSuffix(word, cls) {
			continue
		}
		score := g.store.EmissionScore(featIDs, c, params.NoDeg)
		if best == -1 || score > bestScore {
			best = c
			bestScore = score
		}
	}

	if best == -1 {
		return "", false
	}

	return applyClass(word, g.classes.class(best)), true
}

type encodedGuesser struct {
	Classes  []Class
	ExactLex map[wordLabelKey]string
	WordLex  map[string]string
	Store    *params.Store
}

// GobEncode implements gob.GobEncoder.
func (g *Guesser) GobEncode() ([]byte, error) {
	e := encodedGuesser{
		Classes:  g.classes.vals,
		ExactLex: g.exactLex,
		WordLex:  g.wordLex,
		Store:    g.store,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (g *Guesser) GobDecode(data []byte) error {
	e := encodedGuesser{Store: params.NewStore()}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return err
	}

	g.classes = &classRegistry{ids: make(map[Class]int), vals: e.Classes}
	for i, c := range e.Classes {
		g.classes.ids[c] = i
	}
	g.exactLex = e.ExactLex
	g.wordLex = e.WordLex
	g.store = e.Store

	return nil
}
