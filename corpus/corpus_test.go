package corpus

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/danieldk/morphotag/labels"
)

func TestSentencePadding(t *testing.T) {
	s := NewSentence([]Word{NewWord("dog"), NewWord("barks")})

	if s.Len() != 6 {
		t.Fatalf("got length %d, want 6 (2 + 2 words + 2)", s.Len())
	}

	start, end := s.Inner()
	if start != 2 || end != 4 {
		t.Fatalf("got Inner() = (%d, %d), want (2, 4)", start, end)
	}

	for _, i := range []int{0, 1, 4, 5} {
		if s.Words[i].Form != labels.BoundaryForm {
			t.Errorf("position %d: got form %q, want the boundary form", i, s.Words[i].Form)
		}
	}
}

func TestReaderParsesRecordFields(t *testing.T) {
	input := "dog\tCase=Nom Number=Sing\tdog\tN\t[('N', 'dog'), ('V', 'dogging')]\n" +
		"barks\t_\t_\t_\t_\n\nnext\t_\t_\t_\t_\n"

	r := NewReader(strings.NewReader(input))

	sent, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}

	start, _ := sent.Inner()
	w := sent.Words[start]
	if w.Form != "dog" {
		t.Fatalf("got form %q, want dog", w.Form)
	}
	if w.GoldLemma != "dog" {
		t.Fatalf("got gold lemma %q, want dog", w.GoldLemma)
	}
	if w.GoldLabel != "N" {
		t.Fatalf("got gold label %q, want N", w.GoldLabel)
	}
	if len(w.Feats) != 2 || w.Feats[0] != "Case=Nom" || w.Feats[1] != "Number=Sing" {
		t.Fatalf("got feats %v, want [Case=Nom Number=Sing]", w.Feats)
	}
	if len(w.Analyzer) != 2 || w.Analyzer[0].Label != "N" || w.Analyzer[1].Lemma != "dogging" {
		t.Fatalf("got analyzer candidates %v", w.Analyzer)
	}

	w2 := sent.Words[start+1]
	if w2.Form != "barks" || w2.GoldLemma != "" {
		t.Fatalf("got %+v, want a bare form with no gold annotations", w2)
	}

	sent2, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if sent2.Words[start].Form != "next" {
		t.Fatalf("got %q, want next", sent2.Words[start].Form)
	}

	if _, err := r.Read(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestReaderParsesLabelOverride(t *testing.T) {
	r := NewReader(strings.NewReader("dog\t_\t_\tN V ADJ\t_\n"))

	sent, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}

	start, _ := sent.Inner()
	w := sent.Words[start]
	if w.GoldLabel != "N" {
		t.Fatalf("got gold label %q, want N", w.GoldLabel)
	}
	want := []string{"V", "ADJ"}
	if len(w.LabelOverride) != len(want) || w.LabelOverride[0] != want[0] || w.LabelOverride[1] != want[1] {
		t.Fatalf("got label override %v, want %v", w.LabelOverride, want)
	}
}

func TestWriterEmitsPredictions(t *testing.T) {
	sent := NewSentence([]Word{NewWord("dog")})
	start, _ := sent.Inner()
	sent.Words[start].Label = 3
	sent.Words[start].Lemma = "dog"

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(sent, func(id int) (string, error) {
		if id == 3 {
			return "N", nil
		}
		return "", nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := "dog\t_\tdog\tN\t_\n\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
