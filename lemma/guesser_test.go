package lemma

import "testing"

func TestExactMatchWinsOutright(t *testing.T) {
	g := NewGuesser()
	examples := []Example{
		{Word: "dogs", Label: "N", Lemma: "dog"},
		{Word: "cats", Label: "N", Lemma: "cat"},
	}
	g.Train(examples, 5, 2)

	got, ok := g.Lemma("dogs", "N", nil)
	if !ok || got != "dog" {
		t.Fatalf("got (%q, %v), want (\"dog\", true)", got, ok)
	}
}

func TestUnseenWordUsesSuffixClass(t *testing.T) {
	g := NewGuesser()
	var examples []Example
	for _, w := range []struct{ word, lemma string }{
		{"walking", "walk"}, {"talking", "talk"}, {"jumping", "jump"},
		{"running", "run"}, {"singing", "sing"},
	} {
		examples = append(examples, Example{Word: w.word, Label: "V", Lemma: w.lemma})
	}
	g.Train(examples, 20, 5)

	got, ok := g.Lemma("barking", "V", nil)
	if !ok {
		t.Fatal("expected a suffix-class lemma for an unseen -ing word")
	}
	if got != "bark" {
		t.Fatalf("got %q, want \"bark\"", got)
	}
}
