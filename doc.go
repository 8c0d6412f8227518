// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package morphotag provides a statistical morphological tagger and
// lemmatizer for morphologically rich languages.
//
// morphotag labels tokens with fine-grained morphosyntactic tags using
// a second-order trellis trained either with an averaged structured
// perceptron or by stochastic gradient descent over the trellis
// marginals, and assigns lemmas with a discriminatively trained
// suffix-rewrite guesser. The tagger can be used as a set of
// command-line utilities or as a Go package for integration in Go
// applications.
package morphotag
