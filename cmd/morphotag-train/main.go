// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/gob"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/danieldk/morphotag/cmd/common"
	"github.com/danieldk/morphotag/config"
	"github.com/danieldk/morphotag/corpus"
	"github.com/danieldk/morphotag/tagger"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] config train.txt [dev.txt]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	quiet      = flag.Bool("q", false, "suppress warnings")
	conllxMode = flag.Bool("conllx", false, "read CoNLL-X instead of the native tab-separated format")
)

func main() {
	flag.Parse()

	if flag.NArg() < 2 || flag.NArg() > 3 {
		flag.Usage()
		os.Exit(1)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		common.ExitIfError("cannot create CPU profile", err)
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg := config.MustParseFile(flag.Arg(0), true)

	trainSet, err := readCorpus(flag.Arg(1))
	common.ExitIfError("cannot read training data", err)

	var devSet []*corpus.Sentence
	if flag.NArg() == 3 {
		devSet, err = readCorpus(flag.Arg(2))
		common.ExitIfError("cannot read development data", err)
	} else {
		devSet = trainSet
		common.Warn(*quiet, "no development set given, evaluating against the training set")
	}

	tg := tagger.New()
	err = tg.Train(trainSet, devSet, cfg)
	common.ExitIfError("training failed", err)

	out, err := os.Create(cfg.Model)
	common.ExitIfError("cannot open model for writing", err)
	defer out.Close()

	err = gob.NewEncoder(out).Encode(tg)
	common.ExitIfError("cannot encode model", err)
}

func readCorpus(filename string) ([]*corpus.Sentence, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sentences []*corpus.Sentence

	if *conllxMode {
		r := corpus.NewConllxReader(f)
		for {
			s, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			sentences = append(sentences, s)
		}
		return sentences, nil
	}

	r := corpus.NewReader(f)
	for {
		s, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, s)
	}
	return sentences, nil
}
