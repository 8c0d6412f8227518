// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package corpus

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/danieldk/morphotag/errs"
)

// annotationPair matches one ('label','lemma') pair inside the
// bracketed list an annotation field may carry; trailing text up to
// the closing `)]` is otherwise ignored.
var annotationPair = regexp.MustCompile(`\('([^']*)',\s*'([^']*)'\)`)

// Reader reads sentences from the tab-separated record format:
//
//	TOKEN <TAB> FEATS <TAB> LEMMA|_ <TAB> LABELS|_ <TAB> ANNOTATIONS|_
//
// one token per line, sentences separated by blank lines. The LABELS
// field holds the gold label first; any further space-separated
// labels are a pre-supplied candidate-label override for that word.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader constructs a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Read returns the next sentence, or io.EOF once the input is
// exhausted.
func (r *Reader) Read() (*Sentence, error) {
	var words []Word

	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Text()

		if strings.TrimSpace(line) == "" {
			if len(words) == 0 {
				continue
			}
			return NewSentence(words), nil
		}

		w, err := r.parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		words = append(words, w)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w: %v", errs.ErrRead, err)
	}

	if len(words) > 0 {
		return NewSentence(words), nil
	}

	return nil, io.EOF
}

func (r *Reader) parseLine(line string) (Word, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 1 || fields[0] == "" {
		return Word{}, fmt.Errorf("empty token: %w", errs.ErrSyntax)
	}

	w := NewWord(fields[0])

	if len(fields) > 1 && fields[1] != "_" && fields[1] != "" {
		w.Feats = strings.Fields(fields[1])
	}

	if len(fields) > 2 && fields[2] != "_" {
		w.GoldLemma = fields[2]
	}

	if len(fields) > 3 && fields[3] != "_" {
		labelFields := strings.Fields(fields[3])
		if len(labelFields) > 0 {
			w.GoldLabel = labelFields[0]
		}
		if len(labelFields) > 1 {
			w.LabelOverride = labelFields[1:]
		}
	}

	if len(fields) > 4 && fields[4] != "_" {
		w.Analyzer = parseAnnotations(fields[4])
	}

	return w, nil
}

func parseAnnotations(field string) []AnalyzerCandidate {
	matches := annotationPair.FindAllStringSubmatch(field, -1)
	if matches == nil {
		return nil
	}

	candidates := make([]AnalyzerCandidate, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, AnalyzerCandidate{Label: m[1], Lemma: m[2]})
	}
	return candidates
}
