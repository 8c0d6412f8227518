// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs collects the sentinel error kinds shared by the tagger
// packages. Callers wrap them with fmt.Errorf("...: %w", errs.XXX) so
// errors.Is still matches at any call depth.
package errs

import "errors"

var (
	// ErrSyntax marks a malformed input line or configuration line.
	ErrSyntax = errors.New("syntax error")

	// ErrEmptyLine names a blank input line. The corpus reader treats
	// blank lines as sentence separators itself and never returns it.
	ErrEmptyLine = errors.New("empty line")

	// ErrRead marks a binary or text I/O read failure.
	ErrRead = errors.New("read failed")

	// ErrWrite marks a binary or text I/O write failure.
	ErrWrite = errors.New("write failed")

	// ErrBadBinary marks a model file header mismatch or an
	// inconsistent field count while decoding a serialized model.
	ErrBadBinary = errors.New("bad binary model")

	// ErrIncompatibleData marks evaluation datasets that disagree in
	// sentence count, sentence length, or word forms.
	ErrIncompatibleData = errors.New("incompatible data")

	// ErrIllegalLabel marks a label id outside the registry's range.
	ErrIllegalLabel = errors.New("illegal label")

	// ErrUnknownSuffixPair marks a suffix-edit class that was never
	// interned during training.
	ErrUnknownSuffixPair = errors.New("unknown suffix pair")

	// ErrUnknownClass marks a lemma edit-class id outside the known
	// range.
	ErrUnknownClass = errors.New("unknown class")

	// ErrNoLabel marks an attempt to read the assigned label of a
	// word that was never labeled.
	ErrNoLabel = errors.New("no label")

	// ErrWordNotSet marks an operation on a word form that a caller
	// never populated.
	ErrWordNotSet = errors.New("word not set")

	// ErrNumericalRange marks a negative value where a non-negative
	// one is required.
	ErrNumericalRange = errors.New("numerical range error")
)
