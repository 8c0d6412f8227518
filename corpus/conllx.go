// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package corpus

import (
	"bufio"
	"io"

	"github.com/danieldk/conllx"
)

// ConllxReader adapts a CoNLL-X token stream to Sentence, for corpora
// that arrive in that format rather than the tab-separated record
// format.
type ConllxReader struct {
	r *conllx.Reader
}

// NewConllxReader constructs a ConllxReader over r.
func NewConllxReader(r io.Reader) *ConllxReader {
	return &ConllxReader{r: conllx.NewReader(bufio.NewReader(r))}
}

// Read returns the next sentence, or io.EOF once the input is
// exhausted.
func (cr *ConllxReader) Read() (*Sentence, error) {
	tokens, err := cr.r.ReadSentence()
	if err != nil {
		return nil, err
	}

	words := make([]Word, 0, len(tokens))
	for _, tok := range tokens {
		form, _ := tok.Form()
		w := NewWord(form)

		if lemma, ok := tok.Lemma(); ok {
			w.GoldLemma = lemma
		}
		if tag, ok := tok.PosTag(); ok {
			w.GoldLabel = tag
		}
		if feats, ok := tok.Features(); ok && feats != "" {
			w.Feats = splitFeatures(feats)
		}

		words = append(words, w)
	}

	return NewSentence(words), nil
}

// ConllxWriter adapts Sentence back to a CoNLL-X token stream,
// filling in the predicted part-of-speech tag and lemma.
type ConllxWriter struct {
	w *conllx.Writer
}

// NewConllxWriter constructs a ConllxWriter over w.
func NewConllxWriter(w io.Writer) *ConllxWriter {
	return &ConllxWriter{w: conllx.NewWriter(bufio.NewWriter(w))}
}

// Write emits one sentence's non-boundary words as CoNLL-X tokens.
func (cw *ConllxWriter) Write(s *Sentence, labelString func(id int) (string, error)) error {
	start, end := s.Inner()
	tokens := make([]conllx.Token, 0, end-start)

	for i := start; i < end; i++ {
		word := s.Words[i]

		tok := conllx.NewToken()
		tok.SetForm(word.Form)

		if word.Label >= 0 {
			label, err := labelString(word.Label)
			if err != nil {
				return err
			}
			tok.SetPosTag(label)
		}

		if word.Lemma != "" {
			tok.SetLemma(word.Lemma)
		}

		tokens = append(tokens, *tok)
	}

	return cw.w.WriteSentence(tokens)
}

// splitFeatures splits a CoNLL-X FEATS column (`|`-separated) into
// the opaque feature-template strings the tagger expects.
func splitFeatures(feats string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(feats); i++ {
		if i == len(feats) || feats[i] == '|' {
			if i > start {
				out = append(out, feats[start:i])
			}
			start = i + 1
		}
	}
	return out
}
