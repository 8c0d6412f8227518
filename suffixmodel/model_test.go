package suffixmodel

import "testing"

func TestGuessesPrefersKnownSuffix(t *testing.T) {
	m := NewModel(20)
	for i := 0; i < 8; i++ {
		m.Train("walking", 1)
	}
	for i := 0; i < 2; i++ {
		m.Train("singing", 2)
	}
	m.Normalize()

	if !m.Trained() {
		t.Fatal("Normalize must set Trained")
	}

	guesses := m.Guesses("barking", 1)
	if len(guesses) != 1 {
		t.Fatalf("got %d guesses, want 1", len(guesses))
	}
	if guesses[0].Label != 1 {
		t.Fatalf("got label %d, want 1 (the dominant -king suffix label)", guesses[0].Label)
	}
}

func TestLongWordsRegisterLabelWithoutCounting(t *testing.T) {
	m := NewModel(3)
	m.Train("extraordinarily", 9)
	m.Normalize()

	for _, g := range m.Guesses("extraordinarily", -1) {
		if g.Label == 9 {
			t.Fatal("a word longer than maxWordLength should not contribute suffix counts")
		}
	}
}
