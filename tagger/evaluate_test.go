package tagger

import (
	"testing"

	"github.com/danieldk/morphotag/config"
	"github.com/danieldk/morphotag/corpus"
)

func TestEvaluatorTracksKnownAccuracy(t *testing.T) {
	trainSet := []*corpus.Sentence{
		buildSentence("dogs", "N", "dog"),
		buildSentence("runs", "V", "run"),
	}

	cfg := config.Default()
	cfg.MaxTrainPasses = 10
	cfg.MaxUselessPasses = 5
	cfg.MaxLemmatizerPasses = 5

	tg := New()
	if err := tg.Train(trainSet, trainSet, cfg); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	eval := NewEvaluator(tg)

	testSent := buildSentence("dogs", "N", "dog")
	if err := eval.Process(testSent); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if eval.OverallCorrect()+eval.OverallIncorrect() != 1 {
		t.Fatalf("expected exactly one scored position, got %d correct + %d incorrect",
			eval.OverallCorrect(), eval.OverallIncorrect())
	}
	if eval.KnownCorrect()+eval.KnownIncorrect() != 1 {
		t.Fatalf("a previously trained word should be bucketed as known, got %d known scored",
			eval.KnownCorrect()+eval.KnownIncorrect())
	}
	if eval.Accuracy() != eval.KnownAccuracy() {
		t.Fatalf("with no unknown tokens scored, overall and known accuracy should agree: %v != %v",
			eval.Accuracy(), eval.KnownAccuracy())
	}
}
