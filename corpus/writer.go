// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Writer writes sentences in the tagger's output record format:
//
//	TOKEN <TAB> _ <TAB> predicted-lemma <TAB> predicted-label <TAB> annotations
//
// with one blank line between sentences.
type Writer struct {
	w *bufio.Writer
}

// NewWriter constructs a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write emits one sentence's non-boundary words, followed by a blank
// line. labelString resolves a word's assigned label id to its
// string form.
func (w *Writer) Write(s *Sentence, labelString func(id int) (string, error)) error {
	start, end := s.Inner()

	for i := start; i < end; i++ {
		word := s.Words[i]

		label := "_"
		if word.Label >= 0 {
			str, err := labelString(word.Label)
			if err != nil {
				return err
			}
			label = str
		}

		lemma := "_"
		if word.Lemma != "" {
			lemma = word.Lemma
		}

		annotations := "_"
		if len(word.Analyzer) > 0 {
			annotations = formatAnnotations(word.Analyzer)
		}

		if _, err := fmt.Fprintf(w.w, "%s\t_\t%s\t%s\t%s\n", word.Form, lemma, label, annotations); err != nil {
			return err
		}
	}

	_, err := w.w.WriteString("\n")
	return err
}

// Flush flushes any buffered output.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func formatAnnotations(candidates []AnalyzerCandidate) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range candidates {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "('%s', '%s')", c.Label, c.Lemma)
	}
	b.WriteByte(']')
	return b.String()
}
