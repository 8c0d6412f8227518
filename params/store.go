// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package params implements the sparse parameter store shared by the
// label trellis and the lemma guesser: scalar weights keyed by
// (feature template, label) for emission features, and by label
// unigrams/bigrams/trigrams for transition features, with a
// compound-label sub-label fan-out and two mutually exclusive
// post-training filters.
//
// The id scheme in this file must stay fixed (§3 of the tagger spec):
// it is part of the model's on-disk representation.
package params

import (
	"bytes"
	"encoding/gob"
	"math"

	"github.com/danieldk/morphotag/labels"
)

// maxLabel bounds the label space the parameter id encoding can
// address; it must match whatever produced a serialized model.
const maxLabel int64 = 50000

var (
	off1 = maxLabel * (maxLabel + 1) * (maxLabel + 1)
	off2 = off1 + (maxLabel+1)*(maxLabel+1)
)

func encodeEmission(ft, y int) int64 {
	return int64(ft)*(maxLabel+1) + int64(y)
}

func encodeUni(y int) int64 {
	return int64(y) + off1
}

func encodeBi(py, y int) int64 {
	return int64(py)*(maxLabel+1)*(maxLabel+1) + int64(y) + off2
}

func encodeTri(ppy, py, y int) int64 {
	return int64(ppy)*(maxLabel+1)*(maxLabel+1) + int64(py)*(maxLabel+1) + int64(y)
}

// Store is the sparse parameter map used for both the label model and
// the lemma guesser.
type Store struct {
	registry *labels.Registry

	featTemplates    map[string]int
	featTemplatesInv []string

	emission   map[int64]float64
	transition map[int64]float64

	updateCountEmission   map[int64]int
	updateCountTransition map[int64]int

	trained          bool
	filterType       FilterType
	updateThreshold  int
	avgMassThreshold float64
	trainIters       int
}

// NewStore constructs an empty parameter store.
func NewStore() *Store {
	return &Store{
		featTemplates:         make(map[string]int),
		emission:              make(map[int64]float64),
		transition:            make(map[int64]float64),
		updateCountEmission:   make(map[int64]int),
		updateCountTransition: make(map[int64]int),
	}
}

// SetLabelRegistry wires the registry used to resolve a label's
// sub-labels for parameter sharing. It is not itself serialized with
// the store; callers must re-attach it after loading.
func (s *Store) SetLabelRegistry(r *labels.Registry) {
	s.registry = r
}

// SetFilter configures the parameter filter. Until SetTrained, the
// update-count filter is applied to reads; after it, both filters are
// applied to the weights written on serialization.
func (s *Store) SetFilter(t FilterType, threshold float64) {
	s.filterType = t
	switch t {
	case UpdateCountFilter:
		s.updateThreshold = int(threshold)
	case AvgValueFilter:
		s.avgMassThreshold = threshold
	}
}

// SetTrainIters records how many training iterations produced this
// store's weights; required by the average-mass filter.
func (s *Store) SetTrainIters(iters int) {
	s.trainIters = iters
}

// SetTrained freezes the store. After this call reads are no longer
// filtered, and filtered-out weights are dropped on serialization.
func (s *Store) SetTrained() {
	s.trained = true
}

// Trained reports whether SetTrained was called.
func (s *Store) Trained() bool {
	return s.trained
}

// FeatTemplate interns a feature template string to a small integer,
// unless the store is already trained and the template was never
// seen during training, in which case ok is false: unseen templates
// contribute nothing once training has finished.
func (s *Store) FeatTemplate(template string) (id int, ok bool) {
	if id, found := s.featTemplates[template]; found {
		return id, true
	}

	if s.trained {
		return 0, false
	}

	id = len(s.featTemplatesInv)
	s.featTemplates[template] = id
	s.featTemplatesInv = append(s.featTemplatesInv, template)
	return id, true
}

// FeatTemplates interns every template string in templates, dropping
// any that FeatTemplate rejects.
func (s *Store) FeatTemplates(templates []string) []int {
	ids := make([]int, 0, len(templates))
	for _, t := range templates {
		if id, ok := s.FeatTemplate(t); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Store) filteredEmission(id int64, v float64) float64 {
	if s.trained || s.filterType != UpdateCountFilter {
		return v
	}
	if s.updateCountEmission[id] < s.updateThreshold {
		return 0
	}
	return v
}

func (s *Store) filteredTransition(id int64, v float64) float64 {
	if s.trained || s.filterType != UpdateCountFilter {
		return v
	}
	if s.updateCountTransition[id] < s.updateThreshold {
		return 0
	}
	return v
}

// GetEmission returns the weight of (feature template, label).
func (s *Store) GetEmission(ft, y int) float64 {
	id := encodeEmission(ft, y)
	return s.filteredEmission(id, s.emission[id])
}

// UpdateEmission adds delta to the weight of (feature template,
// label).
func (s *Store) UpdateEmission(ft, y int, delta float64) {
	id := encodeEmission(ft, y)
	if s.filterType == UpdateCountFilter {
		s.updateCountEmission[id]++
	}
	s.emission[id] += delta
}

// GetUni returns the unigram transition weight of y, plus the
// weights of y's sub-labels when deg > NoDeg.
func (s *Store) GetUni(y int, deg Degree) float64 {
	res := s.filteredTransition(encodeUni(y), s.transition[encodeUni(y)])

	if deg > NoDeg && s.registry != nil {
		for _, sy := range s.registry.SubLabels(y) {
			id := encodeUni(sy)
			res += s.filteredTransition(id, s.transition[id])
		}
	}

	return res
}

// GetBi returns the bigram transition weight of (py, y), plus the
// Cartesian product of their sub-labels' weights when deg > Zeroth.
func (s *Store) GetBi(py, y int, deg Degree) float64 {
	res := s.filteredTransition(encodeBi(py, y), s.transition[encodeBi(py, y)])

	if deg > Zeroth && s.registry != nil {
		pys := s.registry.SubLabels(py)
		ys := s.registry.SubLabels(y)
		for _, spy := range pys {
			for _, sy := range ys {
				id := encodeBi(spy, sy)
				res += s.filteredTransition(id, s.transition[id])
			}
		}
	}

	return res
}

// GetTri returns the trigram transition weight of (ppy, py, y), plus
// the Cartesian product of their sub-labels' weights when deg >
// First.
func (s *Store) GetTri(ppy, py, y int, deg Degree) float64 {
	res := s.filteredTransition(encodeTri(ppy, py, y), s.transition[encodeTri(ppy, py, y)])

	if deg > First && s.registry != nil {
		ppys := s.registry.SubLabels(ppy)
		pys := s.registry.SubLabels(py)
		ys := s.registry.SubLabels(y)
		for _, sppy := range ppys {
			for _, spy := range pys {
				for _, sy := range ys {
					id := encodeTri(sppy, spy, sy)
					res += s.filteredTransition(id, s.transition[id])
				}
			}
		}
	}

	return res
}

// EmissionScore sums GetEmission over every feature template of a
// word for label y, fanning out over y's sub-labels when deg > NoDeg.
func (s *Store) EmissionScore(featTemplates []int, y int, deg Degree) float64 {
	var res float64
	for _, ft := range featTemplates {
		res += s.GetEmission(ft, y)
	}

	if deg > NoDeg && s.registry != nil {
		for _, sy := range s.registry.SubLabels(y) {
			for _, ft := range featTemplates {
				res += s.GetEmission(ft, sy)
			}
		}
	}

	return res
}

// TransitionScore sums the unigram/bigram/trigram transition weights
// up to modelOrder. Forward and backward transition scores coincide
// in this model (the spec notes tr_bw = tr_fw by symmetry), so one
// implementation serves both directions.
func (s *Store) TransitionScore(ppy, py, y int, subDeg, modelOrder Degree) float64 {
	res := s.GetUni(y, subDeg)
	if modelOrder > Zeroth {
		res += s.GetBi(py, y, subDeg)
	}
	if modelOrder > First {
		res += s.GetTri(ppy, py, y, subDeg)
	}
	return res
}

// UpdateUni adds delta to the unigram weight of y, and to each of
// y's sub-labels when deg > NoDeg.
func (s *Store) UpdateUni(y int, delta float64, deg Degree) {
	s.bumpTransition(encodeUni(y), delta)

	if deg > NoDeg && s.registry != nil {
		for _, sy := range s.registry.SubLabels(y) {
			s.bumpTransition(encodeUni(sy), delta)
		}
	}
}

// UpdateBi adds delta to the bigram weight of (py, y), and to the
// Cartesian product of their sub-labels when deg > Zeroth.
func (s *Store) UpdateBi(py, y int, delta float64, deg Degree) {
	s.bumpTransition(encodeBi(py, y), delta)

	if deg > Zeroth && s.registry != nil {
		for _, spy := range s.registry.SubLabels(py) {
			for _, sy := range s.registry.SubLabels(y) {
				s.bumpTransition(encodeBi(spy, sy), delta)
			}
		}
	}
}

// UpdateTri adds delta to the trigram weight of (ppy, py, y), and to
// the Cartesian product of their sub-labels when deg > First.
func (s *Store) UpdateTri(ppy, py, y int, delta float64, deg Degree) {
	s.bumpTransition(encodeTri(ppy, py, y), delta)

	if deg > First && s.registry != nil {
		for _, sppy := range s.registry.SubLabels(ppy) {
			for _, spy := range s.registry.SubLabels(py) {
				for _, sy := range s.registry.SubLabels(y) {
					s.bumpTransition(encodeTri(sppy, spy, sy), delta)
				}
			}
		}
	}
}

// UpdateTransition applies delta to the unigram weight of y, and
// additionally to the bigram and/or trigram weights when modelOrder
// allows, following the fw/bw ordering the spec prescribes for the
// perceptron update.
func (s *Store) UpdateTransition(ppy, py, y int, delta float64, subDeg, modelOrder Degree) {
	if modelOrder > First {
		s.UpdateTri(ppy, py, y, delta, subDeg)
	}
	if modelOrder > Zeroth {
		s.UpdateBi(py, y, delta, subDeg)
	}
	s.UpdateUni(y, delta, subDeg)
}

// UpdateEmissionAll applies delta to every feature template of a word
// for label y, and to y's sub-labels when deg > NoDeg.
func (s *Store) UpdateEmissionAll(featTemplates []int, y int, delta float64, deg Degree) {
	for _, ft := range featTemplates {
		s.UpdateEmission(ft, y, delta)
	}

	if deg > NoDeg && s.registry != nil {
		for _, sy := range s.registry.SubLabels(y) {
			for _, ft := range featTemplates {
				s.UpdateEmission(ft, sy, delta)
			}
		}
	}
}

func (s *Store) bumpTransition(id int64, delta float64) {
	if s.filterType == UpdateCountFilter {
		s.updateCountTransition[id]++
	}
	s.transition[id] += delta
}

// shrinkL2 multiplicatively shrinks v toward zero by (1-sigma).
func shrinkL2(v, sigma float64) float64 {
	return v * (1 - sigma)
}

// shrinkL1 subtracts sigma from the magnitude of v, capped at zero
// (sign-preserving).
func shrinkL1(v, sigma float64) float64 {
	if v > 0 {
		return math.Max(0, v-sigma)
	}
	if v < 0 {
		return math.Min(0, v+sigma)
	}
	return 0
}

// RegularizeEmission shrinks the weight of (feature template, label)
// toward zero, L2 (multiplicative) or L1 (sign-preserving subtract)
// depending on l1.
func (s *Store) RegularizeEmission(ft, y int, sigma float64, l1 bool) {
	id := encodeEmission(ft, y)
	if l1 {
		s.emission[id] = shrinkL1(s.emission[id], sigma)
	} else {
		s.emission[id] = shrinkL2(s.emission[id], sigma)
	}
}

// RegularizeUni shrinks a unigram transition weight.
func (s *Store) RegularizeUni(y int, sigma float64, l1 bool) {
	id := encodeUni(y)
	if l1 {
		s.transition[id] = shrinkL1(s.transition[id], sigma)
	} else {
		s.transition[id] = shrinkL2(s.transition[id], sigma)
	}
}

// RegularizeBi shrinks a bigram transition weight.
func (s *Store) RegularizeBi(py, y int, sigma float64, l1 bool) {
	id := encodeBi(py, y)
	if l1 {
		s.transition[id] = shrinkL1(s.transition[id], sigma)
	} else {
		s.transition[id] = shrinkL2(s.transition[id], sigma)
	}
}

// RegularizeTri shrinks a trigram transition weight.
func (s *Store) RegularizeTri(ppy, py, y int, sigma float64, l1 bool) {
	id := encodeTri(ppy, py, y)
	if l1 {
		s.transition[id] = shrinkL1(s.transition[id], sigma)
	} else {
		s.transition[id] = shrinkL2(s.transition[id], sigma)
	}
}

// Merge adds another's weights into s, scaled by factor. It is used
// by the averaged-perceptron trainers to fold a lazily-updated
// accumulator table into a fresh average without aliasing the
// source maps.
func (s *Store) Merge(another *Store, factor float64) {
	for id, v := range another.emission {
		s.emission[id] += v * factor
	}
	for id, v := range another.transition {
		s.transition[id] += v * factor
	}
}

// CopyShape returns a fresh, empty store sharing this store's
// interned feature-template table (read-only after training begins).
func (s *Store) CopyShape() *Store {
	n := NewStore()
	n.featTemplates = s.featTemplates
	n.featTemplatesInv = s.featTemplatesInv
	n.registry = s.registry
	return n
}

type encodedStore struct {
	FeatTemplates    map[string]int
	FeatTemplatesInv []string
	Emission         map[int64]float64
	Transition       map[int64]float64
	UpdateCountEmission   map[int64]int
	UpdateCountTransition map[int64]int
	Trained          bool
	FilterType       FilterType
	UpdateThreshold  int
	AvgMassThreshold float64
	TrainIters       int
}

// filteredSnapshot materializes the weights that survive the active
// filter, discarding the rest, the way the teacher's trained model
// only ever exposes its final weights.
func (s *Store) filteredSnapshot() (emission, transition map[int64]float64) {
	emission = make(map[int64]float64, len(s.emission))
	transition = make(map[int64]float64, len(s.transition))

	for id, v := range s.emission {
		if s.filterType == UpdateCountFilter && s.updateCountEmission[id] < s.updateThreshold {
			continue
		}
		if s.filterType == AvgValueFilter && math.Abs(v)/float64(maxInt(s.trainIters, 1)) <= s.avgMassThreshold {
			continue
		}
		emission[id] = v
	}

	for id, v := range s.transition {
		if s.filterType == UpdateCountFilter && s.updateCountTransition[id] < s.updateThreshold {
			continue
		}
		if s.filterType == AvgValueFilter && math.Abs(v)/float64(maxInt(s.trainIters, 1)) <= s.avgMassThreshold {
			continue
		}
		transition[id] = v
	}

	return emission, transition
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// GobEncode implements gob.GobEncoder. Once the store is trained, a
// filtered weight is dropped entirely rather than serialized as zero.
func (s *Store) GobEncode() ([]byte, error) {
	emission, transition := s.emission, s.transition
	if s.trained {
		emission, transition = s.filteredSnapshot()
	}

	e := encodedStore{
		FeatTemplates:    s.featTemplates,
		FeatTemplatesInv: s.featTemplatesInv,
		Emission:         emission,
		Transition:       transition,
		UpdateCountEmission:   s.updateCountEmission,
		UpdateCountTransition: s.updateCountTransition,
		Trained:          s.trained,
		FilterType:       s.filterType,
		UpdateThreshold:  s.updateThreshold,
		AvgMassThreshold: s.avgMassThreshold,
		TrainIters:       s.trainIters,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (s *Store) GobDecode(data []byte) error {
	var e encodedStore
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return err
	}

	s.featTemplates = e.FeatTemplates
	s.featTemplatesInv = e.FeatTemplatesInv
	s.emission = e.Emission
	s.transition = e.Transition
	s.trained = e.Trained
	s.filterType = e.FilterType
	s.updateThreshold = e.UpdateThreshold
	s.avgMassThreshold = e.AvgMassThreshold
	s.trainIters = e.TrainIters
	s.updateCountEmission = e.UpdateCountEmission
	s.updateCountTransition = e.UpdateCountTransition

	if s.updateCountEmission == nil {
		s.updateCountEmission = make(map[int64]int)
	}
	if s.updateCountTransition == nil {
		s.updateCountTransition = make(map[int64]int)
	}

	return nil
}
