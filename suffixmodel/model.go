// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package suffixmodel implements the per-suffix-length label guesser
// used to propose candidate labels for a word form the tagger has
// never seen. It is grounded on the blending recurrence of FinnPos's
// suffix-probability guesser: a table of label probabilities is kept
// for every suffix length up to a fixed depth, and at guess time the
// tables are folded from the empty suffix outward to the word's full
// length, weighted at every step by the same standard deviation of
// the label prior distribution.
package suffixmodel

import (
	"bytes"
	"encoding/gob"
	"math"
	"sort"
)

// maxSuffixLen bounds how many trailing runes of a word form are
// ever counted, independent of the training-inclusion cutoff a Model
// is constructed with.
const maxSuffixLen = 10

// massFloor is the accumulated-mass threshold past which Guesses
// stops growing its candidate list, once at least massFloorMinRank
// candidates have been proposed.
const massFloor = 0.99

const massFloorMinRank = 20

// Model is a trained suffix-based label guesser.
type Model struct {
	maxWordLength int

	// counts[suffix][label] accumulates occurrences during training;
	// cleared by Normalize into probs.
	counts map[string]map[int]float64
	totals map[string]float64

	// probs[suffix][label] is the normalized probability of label
	// given suffix, populated by Normalize. The empty string is the
	// root (suffix-length-0, i.e. label-prior) entry.
	probs map[string]map[int]float64

	// stdDev is the population standard deviation of the label prior
	// (probs[""]'s probability vector), computed once from the root
	// suffix and used unchanged as the blending weight at every
	// suffix length in Guesses.
	stdDev float64

	labels  map[int]struct{}
	trained bool
}

// NewModel constructs an empty suffix model. Word forms longer than
// maxWordLength are still registered so that their labels are known
// to the guesser, but do not contribute suffix counts.
func NewModel(maxWordLength int) *Model {
	return &Model{
		maxWordLength: maxWordLength,
		counts:        make(map[string]map[int]float64),
		totals:        make(map[string]float64),
		labels:        make(map[int]struct{}),
	}
}

// Train records one (word form, label) observation. Longer word
// forms than maxWordLength only register the label as known, the way
// the original guesser touches label_probs[label] without counting.
func (m *Model) Train(word string, label int) {
	m.labels[label] = struct{}{}

	runes := []rune(word)
	if len(runes) > m.maxWordLength {
		return
	}

	m.count(runes, label)
}

func (m *Model) count(runes []rune, label int) {
	n := len(runes)
	limit := n
	if limit > maxSuffixLen {
		limit = maxSuffixLen
	}

	for i := 0; i <= limit; i++ {
		suffix := string(runes[n-i:])
		if m.counts[suffix] == nil {
			m.counts[suffix] = make(map[int]float64)
		}
		m.counts[suffix][label]++
		m.totals[suffix]++
	}
}

// Normalize converts accumulated counts into per-suffix label
// probabilities, computes the single blending standard deviation from
// the root (empty-suffix) label distribution, and freezes the model.
// It must be called exactly once, after all Train calls.
func (m *Model) Normalize() {
	m.probs = make(map[string]map[int]float64, len(m.counts))

	for suffix, counts := range m.counts {
		total := m.totals[suffix]
		probs := make(map[int]float64, len(counts))
		for label, c := range counts {
			probs[label] = c / total
		}
		m.probs[suffix] = probs
	}

	var sum, sumSq float64
	for _, p := range m.probs[""] {
		sum += p
		sumSq += p * p
	}
	n := float64(len(m.probs[""]))
	if n > 0 {
		mean := sum / n
		variance := sumSq/n - mean*mean
		if variance < 0 {
			variance = 0
		}
		m.stdDev = math.Sqrt(variance)
	}

	m.trained = true
}

// Trained reports whether Normalize has been called.
func (m *Model) Trained() bool {
	return m.trained
}

// Guess is one ranked candidate label returned by Guesses.
type Guess struct {
	Label int
	Prob  float64
}

// Guesses proposes candidate labels for word, most likely first. If
// candidateCount is non-negative, at most that many candidates are
// returned; otherwise candidates accumulate until their combined mass
// passes massFloor (and at least massFloorMinRank candidates have
// been considered); if that never happens, every candidate is
// returned.
func (m *Model) Guesses(word string, candidateCount int) []Guess {
	runes := []rune(word)
	n := len(runes)
	limit := n
	if limit > maxSuffixLen {
		limit = maxSuffixLen
	}

	acc := make(map[int]float64)
	if root, ok := m.probs[""]; ok {
		for label, p := range root {
			acc[label] = p
		}
	}

	for i := 1; i <= limit; i++ {
		suffix := string(runes[n-i:])
		probs, ok := m.probs[suffix]
		if !ok {
			break
		}

		for label, p := range probs {
			acc[label] = acc[label]*m.stdDev + p
		}
		for label := range acc {
			acc[label] /= 1 + m.stdDev
		}
	}

	guesses := make([]Guess, 0, len(acc))
	for label, p := range acc {
		guesses = append(guesses, Guess{Label: label, Prob: p})
	}
	sort.Slice(guesses, func(i, j int) bool {
		if guesses[i].Prob != guesses[j].Prob {
			return guesses[i].Prob > guesses[j].Prob
		}
		return guesses[i].Label < guesses[j].Label
	})

	if candidateCount >= 0 && len(guesses) > candidateCount {
		guesses = guesses[:candidateCount]
	}

	if candidateCount >= 0 {
		return guesses
	}

	var mass float64
	for i, g := range guesses {
		mass += g.Prob
		if mass > massFloor && i+1 >= massFloorMinRank {
			return guesses[:i+1]
		}
	}

	return guesses
}

type encodedModel struct {
	MaxWordLength int
	Counts        map[string]map[int]float64
	Totals        map[string]float64
	Probs         map[string]map[int]float64
	StdDev        float64
	Labels        map[int]struct{}
	Trained       bool
}

// GobEncode implements gob.GobEncoder.
func (m *Model) GobEncode() ([]byte, error) {
	e := encodedModel{
		MaxWordLength: m.maxWordLength,
		Counts:        m.counts,
		Totals:        m.totals,
		Probs:         m.probs,
		StdDev:        m.stdDev,
		Labels:        m.labels,
		Trained:       m.trained,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (m *Model) GobDecode(data []byte) error {
	var e encodedModel
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return err
	}

	m.maxWordLength = e.MaxWordLength
	m.counts = e.Counts
	m.totals = e.Totals
	m.probs = e.Probs
	m.stdDev = e.StdDev
	m.labels = e.Labels
	m.trained = e.Trained

	return nil
}
