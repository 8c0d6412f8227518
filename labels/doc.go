// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package labels interns grammatical label strings as small integers
// and tracks the bookkeeping the rest of the tagger needs about them:
// compound-label decomposition into sub-labels that share parameters,
// which word forms were out-of-vocabulary during training, and which
// labels were seen on an OOV word (open-class labels).
//
// Label id 0 is always the sentence-boundary label; every other id is
// assigned in first-seen order, mirroring the bijection kept by
// model.StringNumberer in the teacher package, generalized with the
// compound-label (`A|B|C`) fan-out described by the tagger spec.
package labels
