// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package guesser proposes candidate labels for a word form at
// tagging time: an exact lexicon lookup for forms seen during
// training, falling back to the suffix model for everything else.
//
// Training splits sentences into ten buckets by sentence index and
// treats a word form as held-out (and so a stand-in for an unknown
// word) when it occurs in exactly one bucket: this mirrors FinnPos's
// LabelExtractor, which trains its suffix guesser only on the word
// forms that behave like genuinely rare ones, rather than on the
// full lexicon.
package guesser

import (
	"bytes"
	"encoding/gob"
	"sort"

	"github.com/danieldk/morphotag/labels"
	"github.com/danieldk/morphotag/suffixmodel"
)

const bucketCount = 10

// Guesser proposes candidate labels for a word form.
type Guesser struct {
	lexicon map[string]map[int]struct{}
	suffix  *suffixmodel.Model
	trained bool
}

// NewGuesser constructs a Guesser whose suffix model only counts
// word forms of at most maxWordLength runes.
func NewGuesser(maxWordLength int) *Guesser {
	return &Guesser{
		lexicon: make(map[string]map[int]struct{}),
		suffix:  suffixmodel.NewModel(maxWordLength),
	}
}

// TrainSentence is one sentence's word forms and their gold label
// ids, in order, as seen by Train.
type TrainSentence struct {
	Forms  []string
	Labels []int
}

// Train builds the lexicon and the suffix model from a corpus of
// sentences, numbered by their position for the held-out bucketing.
// registry is marked with the out-of-vocabulary word forms and the
// open-class labels observed on them, the way this bucketing itself
// is meant to estimate them.
func (g *Guesser) Train(sentences []TrainSentence, registry *labels.Registry) {
	buckets := make(map[string]map[int]struct{})

	for i, sent := range sentences {
		bucket := i % bucketCount
		for _, form := range sent.Forms {
			if buckets[form] == nil {
				buckets[form] = make(map[int]struct{})
			}
			buckets[form][bucket] = struct{}{}
		}
	}

	for _, sent := range sentences {
		for i, form := range sent.Forms {
			label := sent.Labels[i]

			if g.lexicon[form] == nil {
				g.lexicon[form] = make(map[int]struct{})
			}
			g.lexicon[form][label] = struct{}{}

			if len(buckets[form]) == 1 {
				g.suffix.Train(form, label)
				registry.MarkOOV(form)
				registry.MarkOpenClass(label)
			}
		}
	}

	g.suffix.Normalize()
	g.trained = true
}

// IsKnown reports whether form was seen during training.
func (g *Guesser) IsKnown(form string) bool {
	_, ok := g.lexicon[form]
	return ok
}

// Candidates proposes candidate labels for form. The boundary word
// form always yields the boundary label. When useLexicon is set and
// form was seen during training, the lexicon's labels for form are
// returned exactly (deduplicated, no suffix guessing). Otherwise the
// suffix model is consulted for up to candidateCount guesses
// (candidateCount < 0 means unbounded, subject to the suffix model's
// own mass cutoff); if form also happens to be in the lexicon, its
// labels are unioned into the result.
func (g *Guesser) Candidates(form string, useLexicon bool, candidateCount int) []int {
	if form == labels.BoundaryForm {
		return []int{labels.Boundary}
	}

	lexLabels, known := g.lexicon[form]

	if useLexicon && known {
		ids := make([]int, 0, len(lexLabels))
		for l := range lexLabels {
			ids = append(ids, l)
		}
		sort.Ints(ids)
		return ids
	}

	guesses := g.suffix.Guesses(form, candidateCount)
	seen := make(map[int]struct{}, len(guesses))
	ids := make([]int, 0, len(guesses))
	for _, gs := range guesses {
		if _, dup := seen[gs.Label]; dup {
			continue
		}
		seen[gs.Label] = struct{}{}
		ids = append(ids, gs.Label)
	}

	if known {
		for l := range lexLabels {
			if _, dup := seen[l]; !dup {
				seen[l] = struct{}{}
				ids = append(ids, l)
			}
		}
	}

	return ids
}

type encodedGuesser struct {
	Lexicon map[string]map[int]struct{}
	Suffix  *suffixmodel.Model
	Trained bool
}

// GobEncode implements gob.GobEncoder.
func (g *Guesser) GobEncode() ([]byte, error) {
	e := encodedGuesser{
		Lexicon: g.lexicon,
		Suffix:  g.suffix,
		Trained: g.trained,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (g *Guesser) GobDecode(data []byte) error {
	e := encodedGuesser{Suffix: suffixmodel.NewModel(0)}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return err
	}

	g.lexicon = e.Lexicon
	g.suffix = e.Suffix
	g.trained = e.Trained

	return nil
}
