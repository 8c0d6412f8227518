package train

import (
	"testing"

	"github.com/danieldk/morphotag/labels"
	"github.com/danieldk/morphotag/params"
)

// buildInstance constructs a single-word Instance (plus its four
// boundary positions) whose word form always has label 1 and 2 as
// candidates, with featID 0 as its only feature.
func buildInstance(gold int) Instance {
	b := labels.Boundary
	return Instance{
		Candidates: [][]int{{b}, {b}, {1, 2}, {b}, {b}},
		FeatIDs:    [][]int{nil, nil, {0}, nil, nil},
		Gold:       []int{b, b, gold, b, b},
	}
}

func TestPerceptronLearnsTrivialDistinction(t *testing.T) {
	reg := labels.NewRegistry()
	reg.Intern("A")
	reg.Intern("B")

	trainSet := []Instance{buildInstance(1), buildInstance(1), buildInstance(1)}

	pt := &PerceptronTrainer{
		Registry:         reg,
		SubLabelOrder:    params.NoDeg,
		ModelOrder:       params.Zeroth,
		MaxPasses:        20,
		MaxUselessPasses: 5,
	}

	store := pt.Train(trainSet, trainSet)
	if !store.Trained() {
		t.Fatal("Train must freeze the returned store")
	}

	acc := accuracy(store, reg, trainSet, params.NoDeg, params.Zeroth)
	if acc != 1.0 {
		t.Fatalf("got training accuracy %v, want 1.0 on a single-label corpus", acc)
	}
}

func TestAveragingCombinesPosAndNeg(t *testing.T) {
	pos := params.NewStore()
	ft, _ := pos.FeatTemplate("WORD=x")
	pos.UpdateEmission(ft, 1, 3.0)

	neg := params.NewStore()
	neg.UpdateEmission(ft, 1, -1.0)

	avg := pos.CopyShape()
	avg.Merge(pos, 2)
	avg.Merge(neg, 1)

	if got := avg.GetEmission(ft, 1); got != 5.0 {
		t.Fatalf("got %v, want 5.0 (= 3.0*2 + (-1.0)*1)", got)
	}
}
