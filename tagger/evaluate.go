// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tagger

import (
	"fmt"

	"github.com/danieldk/morphotag/corpus"
	"github.com/danieldk/morphotag/errs"
)

// Evaluator keeps counts of correctly/incorrectly labeled known and
// unknown tokens across a batch of evaluation sentences.
type Evaluator struct {
	tagger *Tagger

	knownCorrect, knownIncorrect     uint
	unknownCorrect, unknownIncorrect uint
}

// NewEvaluator constructs an Evaluator driven by tg. tg distinguishes
// known and unknown word forms via its label guesser's lexicon.
func NewEvaluator(tg *Tagger) *Evaluator {
	return &Evaluator{tagger: tg}
}

// Process labels sent and compares the result against its gold
// labels, which must already be present on every non-boundary word.
// Process mutates sent's Label/Lemma fields as a side effect of
// labeling it.
func (e *Evaluator) Process(sent *corpus.Sentence) error {
	gold := make([]string, sent.Len())
	for i, w := range sent.Words {
		gold[i] = w.GoldLabel
	}

	if err := e.tagger.Label(sent); err != nil {
		return err
	}

	start, end := sent.Inner()
	for i := start; i < end; i++ {
		w := sent.Words[i]
		if gold[i] == "" {
			return fmt.Errorf("word %q has no gold label: %w", w.Form, errs.ErrIncompatibleData)
		}

		predicted, err := e.tagger.Registry.String(w.Label)
		if err != nil {
			return err
		}

		known := e.tagger.Guesser.IsKnown(w.Form)

		if predicted == gold[i] {
			if known {
				e.knownCorrect++
			} else {
				e.unknownCorrect++
			}
		} else {
			if known {
				e.knownIncorrect++
			} else {
				e.unknownIncorrect++
			}
		}
	}

	return nil
}

// KnownCorrect returns the number of correctly labeled known words.
func (e *Evaluator) KnownCorrect() uint { return e.knownCorrect }

// KnownIncorrect returns the number of incorrectly labeled known
// words.
func (e *Evaluator) KnownIncorrect() uint { return e.knownIncorrect }

// UnknownCorrect returns the number of correctly labeled unknown
// words.
func (e *Evaluator) UnknownCorrect() uint { return e.unknownCorrect }

// UnknownIncorrect returns the number of incorrectly labeled unknown
// words.
func (e *Evaluator) UnknownIncorrect() uint { return e.unknownIncorrect }

// OverallCorrect returns the number of correctly labeled words.
func (e *Evaluator) OverallCorrect() uint { return e.knownCorrect + e.unknownCorrect }

// OverallIncorrect returns the number of incorrectly labeled words.
func (e *Evaluator) OverallIncorrect() uint { return e.knownIncorrect + e.unknownIncorrect }

// Accuracy returns the overall labeling accuracy.
func (e *Evaluator) Accuracy() float64 {
	total := e.OverallCorrect() + e.OverallIncorrect()
	if total == 0 {
		return 0
	}
	return float64(e.OverallCorrect()) / float64(total)
}

// KnownAccuracy returns the labeling accuracy restricted to known
// words.
func (e *Evaluator) KnownAccuracy() float64 {
	total := e.knownCorrect + e.knownIncorrect
	if total == 0 {
		return 0
	}
	return float64(e.knownCorrect) / float64(total)
}

// UnknownAccuracy returns the labeling accuracy restricted to unknown
// words.
func (e *Evaluator) UnknownAccuracy() float64 {
	total := e.unknownCorrect + e.unknownIncorrect
	if total == 0 {
		return 0
	}
	return float64(e.unknownCorrect) / float64(total)
}
