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
		fmt.Fprintf(os.Stderr, "Usage: %s [options] config test.txt\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	conllxMode = flag.Bool("conllx", false, "read CoNLL-X instead of the native tab-separated format")
)

func main() {
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		common.ExitIfError("cannot create CPU profile", err)
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg := config.MustParseFile(flag.Arg(0), false)

	modelFile, err := os.Open(cfg.Model)
	common.ExitIfError("cannot open model", err)
	defer modelFile.Close()

	tg := tagger.New()
	err = gob.NewDecoder(modelFile).Decode(tg)
	common.ExitIfError("could not load model", err)

	testFile, err := os.Open(flag.Arg(1))
	common.ExitIfError("cannot open test data", err)
	defer testFile.Close()

	eval := tagger.NewEvaluator(tg)

	var reader interface{ Read() (*corpus.Sentence, error) }
	if *conllxMode {
		reader = corpus.NewConllxReader(testFile)
	} else {
		reader = corpus.NewReader(testFile)
	}

	for {
		sent, err := reader.Read()
		if err == io.EOF {
			break
		}
		common.ExitIfError("cannot read sentence", err)

		err = eval.Process(sent)
		common.ExitIfError("cannot evaluate sentence", err)
	}

	fmt.Printf("Accuracy: %.4f (known: %.4f, unknown: %.4f)\n",
		eval.Accuracy(), eval.KnownAccuracy(), eval.UnknownAccuracy())
	fmt.Printf("Known: %d correct, %d incorrect\n", eval.KnownCorrect(), eval.KnownIncorrect())
	fmt.Printf("Unknown: %d correct, %d incorrect\n", eval.UnknownCorrect(), eval.UnknownIncorrect())
}
