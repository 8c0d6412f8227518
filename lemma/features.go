// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lemma

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	paddedWidth  = 10
	paddingRune  = '_'
	suffixMaxLen = 7
	prefixMaxLen = 5
)

var infixWidths = []int{4, 5, 6}

// padLeft left-pads word with paddingRune until it is at least
// paddedWidth runes long, so that suffix and infix features are
// always well-defined even for very short word forms.
func padLeft(word string) []rune {
	r := []rune(word)
	if len(r) >= paddedWidth {
		return r
	}

	padded := make([]rune, 0, paddedWidth)
	for i := 0; i < paddedWidth-len(r); i++ {
		padded = append(padded, paddingRune)
	}
	return append(padded, r...)
}

func hasUpper(word string) bool {
	for _, r := range word {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func hasDigit(word string) bool {
	for _, r := range word {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// featureTemplates extracts the raw feature-template strings for a
// (word form, label, morphological features) triple, before they are
// interned into the shared parameter store.
func featureTemplates(word, label string, feats []string) []string {
	lw := lowerFold(word)

	var out []string
	add := func(f string) {
		out = append(out, f, f+"+LABEL="+label)
	}

	add("WORD=" + lw)

	padded := padLeft(lw)
	n := len(padded)
	for k := 1; k <= suffixMaxLen && k <= n; k++ {
		add(fmt.Sprintf("SUF%d=%s", k, string(padded[n-k:])))
	}

	wr := []rune(lw)
	for k := 1; k <= prefixMaxLen && k <= len(wr); k++ {
		add(fmt.Sprintf("PRE%d=%s", k, string(wr[:k])))
	}

	// Infixes of the given widths, ending 3 runes before the end of
	// the padded form.
	end := n - 3
	if end < 0 {
		end = 0
	}
	for _, w := range infixWidths {
		start := end - w
		if start < 0 {
			continue
		}
		add(fmt.Sprintf("INF%d=%s", w, string(padded[start:end])))
	}

	out = append(out, "LABEL="+label)

	if len(feats) > 0 {
		out = append(out, "MFEATS="+strings.Join(feats, "|"))
	}

	if hasUpper(word) {
		out = append(out, "UC")
	}
	if hasDigit(word) {
		out = append(out, "DIGIT")
	}

	return out
}
