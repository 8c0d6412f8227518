package train

import (
	"testing"

	"github.com/danieldk/morphotag/labels"
	"github.com/danieldk/morphotag/params"
)

func TestSGDLearnsTrivialDistinction(t *testing.T) {
	reg := labels.NewRegistry()
	reg.Intern("A")
	reg.Intern("B")

	trainSet := []Instance{buildInstance(1), buildInstance(1), buildInstance(1)}

	st := &SGDTrainer{
		Registry:         reg,
		SubLabelOrder:    params.NoDeg,
		ModelOrder:       params.Zeroth,
		MaxPasses:        20,
		MaxUselessPasses: 5,
		Delta:            0.1,
	}

	store := st.Train(trainSet, trainSet)
	if !store.Trained() {
		t.Fatal("Train must freeze the returned store")
	}

	acc := accuracy(store, reg, trainSet, params.NoDeg, params.Zeroth)
	if acc != 1.0 {
		t.Fatalf("got training accuracy %v, want 1.0 on a single-label corpus", acc)
	}
}
