package tagger

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/danieldk/morphotag/config"
	"github.com/danieldk/morphotag/corpus"
)

func buildSentence(form, label, lemma string) *corpus.Sentence {
	w := corpus.NewWord(form)
	w.GoldLabel = label
	w.GoldLemma = lemma
	return corpus.NewSentence([]corpus.Word{w})
}

func TestTrainAndLabelTinyCorpus(t *testing.T) {
	trainSet := []*corpus.Sentence{
		buildSentence("dogs", "N", "dog"),
		buildSentence("dogs", "N", "dog"),
		buildSentence("runs", "V", "run"),
		buildSentence("runs", "V", "run"),
	}

	cfg := config.Default()
	cfg.MaxTrainPasses = 10
	cfg.MaxUselessPasses = 5
	cfg.MaxLemmatizerPasses = 10

	tg := New()
	if err := tg.Train(trainSet, trainSet, cfg); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	for _, want := range []struct{ form, label, lemma string }{
		{"dogs", "N", "dog"},
		{"runs", "V", "run"},
	} {
		sent := corpus.NewSentence([]corpus.Word{corpus.NewWord(want.form)})
		if err := tg.Label(sent); err != nil {
			t.Fatalf("Label(%q) failed: %v", want.form, err)
		}

		start, _ := sent.Inner()
		w := sent.Words[start]

		gotLabel, err := tg.LabelString(w.Label)
		if err != nil {
			t.Fatal(err)
		}
		if gotLabel != want.label {
			t.Errorf("form %q: got label %q, want %q", want.form, gotLabel, want.label)
		}
		if w.Lemma != want.lemma {
			t.Errorf("form %q: got lemma %q, want %q", want.form, w.Lemma, want.lemma)
		}
	}
}

func TestLabelOverrideRestrictsCandidatesAtInference(t *testing.T) {
	trainSet := []*corpus.Sentence{
		buildSentence("dogs", "N", "dog"),
		buildSentence("dogs", "N", "dog"),
		buildSentence("dogs", "N", "dog"),
		buildSentence("dogs", "V", "dog"),
	}

	cfg := config.Default()
	cfg.MaxTrainPasses = 10
	cfg.MaxUselessPasses = 5
	cfg.MaxLemmatizerPasses = 5

	tg := New()
	if err := tg.Train(trainSet, trainSet, cfg); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	w := corpus.NewWord("dogs")
	w.LabelOverride = []string{"V"}
	sent := corpus.NewSentence([]corpus.Word{w})

	if err := tg.Label(sent); err != nil {
		t.Fatalf("Label failed: %v", err)
	}

	start, _ := sent.Inner()
	gotLabel, err := tg.LabelString(sent.Words[start].Label)
	if err != nil {
		t.Fatal(err)
	}
	if gotLabel != "V" {
		t.Fatalf("got label %q, want V (forced by LabelOverride, against the trellis' own N preference)", gotLabel)
	}
}

func TestTaggerGobRoundTrip(t *testing.T) {
	trainSet := []*corpus.Sentence{
		buildSentence("dogs", "N", "dog"),
		buildSentence("runs", "V", "run"),
	}

	cfg := config.Default()
	cfg.MaxTrainPasses = 5
	cfg.MaxUselessPasses = 3
	cfg.MaxLemmatizerPasses = 5

	tg := New()
	if err := tg.Train(trainSet, trainSet, cfg); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(tg); err != nil {
		t.Fatal(err)
	}

	tg2 := New()
	if err := gob.NewDecoder(&buf).Decode(tg2); err != nil {
		t.Fatal(err)
	}

	sent := corpus.NewSentence([]corpus.Word{corpus.NewWord("dogs")})
	if err := tg2.Label(sent); err != nil {
		t.Fatalf("Label on the decoded tagger failed: %v", err)
	}

	start, _ := sent.Inner()
	label, err := tg2.LabelString(sent.Words[start].Label)
	if err != nil {
		t.Fatal(err)
	}
	if label != "N" {
		t.Fatalf("got label %q after round trip, want N", label)
	}
}
