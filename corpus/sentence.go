// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corpus holds the token/sentence data model the tagger
// trains and runs on, and the readers/writers that bridge it to the
// tab-separated record format and to CoNLL-X.
package corpus

import "github.com/danieldk/morphotag/labels"

// AnalyzerCandidate is one (label string, lemma candidate) pair
// parsed out of a record's annotation field.
type AnalyzerCandidate struct {
	Label string
	Lemma string
}

// Word is one token plus everything the tagger attaches to it over
// the course of training or labeling.
type Word struct {
	Form  string
	Feats []string

	GoldLemma string
	GoldLabel string

	Analyzer []AnalyzerCandidate

	// LabelOverride holds extra label strings from field 4 beyond the
	// first (which is GoldLabel): a pre-supplied candidate-label set
	// that, when present, replaces the label guesser's own proposals
	// for this word during both training and labeling.
	LabelOverride []string

	// CandidateLabels holds the label ids a LabelGuesser proposed;
	// populated lazily, not by the reader.
	CandidateLabels []int

	// Label is the id the tagger assigned; -1 if unset.
	Label int

	// Lemma is the string the tagger predicted; empty if unset.
	Lemma string
}

// NewWord constructs a Word with no assigned label.
func NewWord(form string) Word {
	return Word{Form: form, Label: -1}
}

// boundaryWord is a Word standing in for the sentence boundary.
func boundaryWord() Word {
	w := NewWord(labels.BoundaryForm)
	w.Label = labels.Boundary
	return w
}

// Sentence is a sequence of Words padded at both ends with two
// boundary words, so that trigram context is always defined: the
// first and last two positions always carry the boundary label.
type Sentence struct {
	Words []Word
}

// NewSentence pads words with two boundary words on each side and
// returns the resulting Sentence.
func NewSentence(words []Word) *Sentence {
	padded := make([]Word, 0, len(words)+4)
	padded = append(padded, boundaryWord(), boundaryWord())
	padded = append(padded, words...)
	padded = append(padded, boundaryWord(), boundaryWord())
	return &Sentence{Words: padded}
}

// Len returns the number of words, including the four boundary
// padding words.
func (s *Sentence) Len() int {
	return len(s.Words)
}

// Inner returns the index range [start, end) of the sentence's
// non-boundary words.
func (s *Sentence) Inner() (start, end int) {
	return 2, len(s.Words) - 2
}
