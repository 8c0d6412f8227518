package guesser

import (
	"sort"
	"testing"

	"github.com/danieldk/morphotag/labels"
)

func TestBoundaryFormAlwaysYieldsBoundaryLabel(t *testing.T) {
	g := NewGuesser(20)
	g.Train(nil, labels.NewRegistry())

	cand := g.Candidates(labels.BoundaryForm, true, -1)
	if len(cand) != 1 || cand[0] != labels.Boundary {
		t.Fatalf("got %v, want [%d]", cand, labels.Boundary)
	}
}

func TestKnownWordUsesExactLexicon(t *testing.T) {
	g := NewGuesser(20)
	sentences := []TrainSentence{
		{Forms: []string{"dog", "cat"}, Labels: []int{1, 2}},
		{Forms: []string{"dog"}, Labels: []int{3}},
	}
	g.Train(sentences, labels.NewRegistry())

	if !g.IsKnown("dog") {
		t.Fatal("expected dog to be known after training")
	}

	cand := g.Candidates("dog", true, -1)
	sort.Ints(cand)
	want := []int{1, 3}
	if len(cand) != len(want) || cand[0] != want[0] || cand[1] != want[1] {
		t.Fatalf("got %v, want %v", cand, want)
	}
}

func TestUnknownWordFallsBackToSuffixModel(t *testing.T) {
	g := NewGuesser(20)
	// "walking" must land in exactly one of the ten held-out buckets
	// (sentence index mod 10) to be counted by the suffix model, so it
	// appears twice, ten sentences apart, and nowhere else.
	sentences := make([]TrainSentence, 11)
	for i := range sentences {
		sentences[i] = TrainSentence{Forms: []string{"filler"}, Labels: []int{9}}
	}
	sentences[0] = TrainSentence{Forms: []string{"walking"}, Labels: []int{1}}
	sentences[10] = TrainSentence{Forms: []string{"walking"}, Labels: []int{1}}
	reg := labels.NewRegistry()
	g.Train(sentences, reg)

	if g.IsKnown("talking") {
		t.Fatal("talking was never in training data")
	}

	cand := g.Candidates("talking", true, 1)
	if len(cand) != 1 || cand[0] != 1 {
		t.Fatalf("got %v, want [1]", cand)
	}

	if !reg.IsOOV("walking") {
		t.Fatal("walking landed in exactly one bucket and should be marked OOV")
	}
	if !reg.OpenClass(1) {
		t.Fatal("label 1 was observed on an OOV word and should be marked open-class")
	}
}
