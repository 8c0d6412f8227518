// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lemma implements the suffix-edit-class lemma guesser: a
// discriminative model, scored over the same kind of parameter store
// the label trellis uses, that predicts a lemma by selecting which
// minimal suffix rewrite turns a word form into its lemma.
package lemma

import (
	"strings"
	"unicode/utf8"
)

// Class is a minimal suffix-rewrite: strip WFSuffix from the
// lowercased word form, append LemmaSuffix, to get the lowercased
// lemma.
type Class struct {
	WFSuffix    string
	LemmaSuffix string
}

// identityClass is always interned at id 0, the way a label's
// boundary id is reserved: every word's trivial (word, word) edit
// resolves to it without a training example ever being required.
var identityClass = Class{}

// classRegistry interns Class values to small integer ids.
type classRegistry struct {
	ids  map[Class]int
	vals []Class
}

func newClassRegistry() *classRegistry {
	r := &classRegistry{ids: make(map[Class]int)}
	r.intern(identityClass)
	return r
}

func (r *classRegistry) intern(c Class) int {
	if id, ok := r.ids[c]; ok {
		return id
	}
	id := len(r.vals)
	r.ids[c] = id
	r.vals = append(r.vals, c)
	return id
}

func (r *classRegistry) lookup(c Class) (int, bool) {
	id, ok := r.ids[c]
	return id, ok
}

func (r *classRegistry) class(id int) Class {
	return r.vals[id]
}

func (r *classRegistry) count() int {
	return len(r.vals)
}

// lowerFold lowercases s in a Unicode-aware way, including the
// Finnish letters Å, Ä and Ö that a naive ASCII fold would miss.
func lowerFold(s string) string {
	return strings.ToLower(s)
}

// minimalSuffixEdit computes the (word-suffix, lemma-suffix) pair
// that rewrites the lowercased word into the lowercased lemma: the
// longest common prefix is stripped from both, and the remainders
// are returned as-is. minimalSuffixEdit(w, w) always yields ("",
// "").
func minimalSuffixEdit(word, lemma string) Class {
	lw := lowerFold(word)
	ll := lowerFold(lemma)

	wr := []rune(lw)
	lr := []rune(ll)

	n := 0
	for n < len(wr) && n < len(lr) && wr[n] == lr[n] {
		n++
	}

	return Class{
		WFSuffix:    string(wr[n:]),
		LemmaSuffix: string(lr[n:]),
	}
}

// applyClass applies c's edit script to the lowercased word, without
// checking that c.WFSuffix actually suffixes it; callers must filter
// candidates first.
func applyClass(word string, c Class) string {
	lw := lowerFold(word)
	wr := []rune(lw)
	sr := []rune(c.WFSuffix)

	stem := wr[:len(wr)-len(sr)]
	return string(stem) + c.LemmaSuffix
}

// hasRuneSuffix reports whether the lowercased word ends with the
// class's word-form suffix.
func hasRuneSuffix(word string, c Class) bool {
	lw := lowerFold(word)
	if utf8.RuneCountInString(c.WFSuffix) > utf8.RuneCountInString(lw) {
		return false
	}
	return strings.HasSuffix(lw, c.WFSuffix)
}
