package trellis

import (
	"math"
	"testing"

	"github.com/danieldk/morphotag/labels"
	"github.com/danieldk/morphotag/params"
)

// buildTinyTrellis constructs a 3-position lattice (boundary, one real
// word with two label candidates, boundary) with hand-picked weights:
// label 1 has a stronger emission+transition combination than label 2,
// so every inference mode should prefer it.
func buildTinyTrellis(t *testing.T) (*Trellis, *params.Store) {
	t.Helper()

	store := params.NewStore()
	reg := labels.NewRegistry()
	store.SetLabelRegistry(reg)

	ft, _ := store.FeatTemplate("WORD=foo")
	store.UpdateEmission(ft, 1, 5.0)
	store.UpdateEmission(ft, 2, 5.5)
	store.UpdateUni(1, 2.0, params.NoDeg)
	store.UpdateUni(2, 1.0, params.NoDeg)

	candidates := [][]int{
		{labels.Boundary},
		{1, 2},
		{labels.Boundary},
	}
	featIDs := [][]int{
		nil,
		{ft},
		nil,
	}

	tr := New(store, reg, candidates, featIDs, params.NoDeg, params.Zeroth)
	return tr, store
}

func TestViterbiHandComputed(t *testing.T) {
	tr, _ := buildTinyTrellis(t)

	result := tr.Viterbi(BeamConfig{})
	want := []int{labels.Boundary, 1, labels.Boundary}

	if len(result) != len(want) {
		t.Fatalf("got %v, want %v", result, want)
	}
	for i := range want {
		if result[i] != want[i] {
			t.Fatalf("got %v, want %v", result, want)
		}
	}
}

func TestBeamWiderThanColumnMatchesUnbeamed(t *testing.T) {
	tr, _ := buildTinyTrellis(t)
	unbeamed := tr.Viterbi(BeamConfig{})

	tr2, _ := buildTinyTrellis(t)
	beamed := tr2.Viterbi(BeamConfig{Width: 1000})

	for i := range unbeamed {
		if unbeamed[i] != beamed[i] {
			t.Fatalf("beam wider than the column changed the result: %v != %v", unbeamed, beamed)
		}
	}
}

func TestForwardBackwardTotalsAgree(t *testing.T) {
	tr, _ := buildTinyTrellis(t)
	tr.Forward()
	tr.Backward()

	fwTotal := tr.ForwardTotal()
	bwTotal := tr.BackwardTotal()

	if diff := fwTotal - bwTotal; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("forward total %v and backward total %v disagree", fwTotal, bwTotal)
	}
}

// TestTrigramViterbiMatchesBruteForce builds a 3-word trellis (eight
// possible label assignments) with distinct uni/bi/tri weights at
// every position, so the trigram term is actually exercised at
// position 4 (whose ppy and py both range over the prior two words'
// candidates), then checks Viterbi's choice and position 3's unigram
// marginal for label 1 against a brute-force enumeration of all 2^3
// assignments computed directly from the same Store.
func TestTrigramViterbiMatchesBruteForce(t *testing.T) {
	store := params.NewStore()
	reg := labels.NewRegistry()
	store.SetLabelRegistry(reg)

	ft2, _ := store.FeatTemplate("WORD=w2")
	ft3, _ := store.FeatTemplate("WORD=w3")
	ft4, _ := store.FeatTemplate("WORD=w4")

	store.UpdateEmission(ft2, 1, 1.0)
	store.UpdateEmission(ft2, 2, 0.4)
	store.UpdateEmission(ft3, 1, 0.2)
	store.UpdateEmission(ft3, 2, 0.9)
	store.UpdateEmission(ft4, 1, 0.7)
	store.UpdateEmission(ft4, 2, 0.1)

	store.UpdateUni(1, 0.3, params.NoDeg)
	store.UpdateUni(2, 0.1, params.NoDeg)

	store.UpdateBi(labels.Boundary, 1, 0.5, params.NoDeg)
	store.UpdateBi(labels.Boundary, 2, 0.2, params.NoDeg)
	store.UpdateBi(1, 1, 0.1, params.NoDeg)
	store.UpdateBi(1, 2, 0.3, params.NoDeg)
	store.UpdateBi(2, 1, 0.2, params.NoDeg)
	store.UpdateBi(2, 2, 0.05, params.NoDeg)

	store.UpdateTri(labels.Boundary, labels.Boundary, 1, 0.4, params.NoDeg)
	store.UpdateTri(labels.Boundary, labels.Boundary, 2, 0.1, params.NoDeg)
	store.UpdateTri(labels.Boundary, 1, 1, 0.2, params.NoDeg)
	store.UpdateTri(labels.Boundary, 1, 2, 0.05, params.NoDeg)
	store.UpdateTri(labels.Boundary, 2, 1, 0.1, params.NoDeg)
	store.UpdateTri(labels.Boundary, 2, 2, 0.3, params.NoDeg)
	store.UpdateTri(1, 1, 1, 0.15, params.NoDeg)
	store.UpdateTri(1, 1, 2, 0.1, params.NoDeg)
	store.UpdateTri(1, 2, 1, 0.05, params.NoDeg)
	store.UpdateTri(1, 2, 2, 0.2, params.NoDeg)
	store.UpdateTri(2, 1, 1, 0.1, params.NoDeg)
	store.UpdateTri(2, 1, 2, 0.15, params.NoDeg)
	store.UpdateTri(2, 2, 1, 0.25, params.NoDeg)
	store.UpdateTri(2, 2, 2, 0.05, params.NoDeg)

	candidates := [][]int{
		{labels.Boundary},
		{labels.Boundary},
		{1, 2},
		{1, 2},
		{1, 2},
		{labels.Boundary},
		{labels.Boundary},
	}
	featIDs := [][]int{nil, nil, {ft2}, {ft3}, {ft4}, nil, nil}

	emission := func(ft, y int) float64 { return store.GetEmission(ft, y) }
	trans := func(ppy, py, y int) float64 {
		return store.TransitionScore(ppy, py, y, params.NoDeg, params.Second)
	}

	labelSet := []int{1, 2}
	bestScore := negInf
	var bestAssign [3]int
	var zAll []float64
	marginalNumerator := 0.0

	for _, y2 := range labelSet {
		for _, y3 := range labelSet {
			for _, y4 := range labelSet {
				score := emission(ft2, y2) + trans(labels.Boundary, labels.Boundary, y2)
				score += emission(ft3, y3) + trans(labels.Boundary, y2, y3)
				score += emission(ft4, y4) + trans(y2, y3, y4)

				zAll = append(zAll, score)
				if y3 == 1 {
					marginalNumerator += math.Exp(score)
				}

				if score > bestScore {
					bestScore = score
					bestAssign = [3]int{y2, y3, y4}
				}
			}
		}
	}

	tr := New(store, reg, candidates, featIDs, params.NoDeg, params.Second)
	got := tr.Viterbi(BeamConfig{})

	want := []int{labels.Boundary, labels.Boundary, bestAssign[0], bestAssign[1], bestAssign[2], labels.Boundary, labels.Boundary}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v (brute-force best score %v)", got, want, bestScore)
		}
	}

	tr2 := New(store, reg, candidates, featIDs, params.NoDeg, params.Second)
	tr2.Forward()
	tr2.Backward()

	z := 0.0
	for _, s := range zAll {
		z += math.Exp(s)
	}
	wantMarginal := marginalNumerator / z

	probs := tr2.UnigramMarginal(3)
	gotMarginal := probs[0] // candidates[3][0] == label 1

	if diff := gotMarginal - wantMarginal; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("position 3 marginal for label 1: got %v, want %v (brute force)", gotMarginal, wantMarginal)
	}
}

func TestUnigramMarginalSumsToOne(t *testing.T) {
	tr, _ := buildTinyTrellis(t)
	tr.Forward()
	tr.Backward()

	probs := tr.UnigramMarginal(1)

	var sum float64
	for _, p := range probs {
		sum += p
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("unigram marginal at position 1 summed to %v, want 1.0", sum)
	}
}
