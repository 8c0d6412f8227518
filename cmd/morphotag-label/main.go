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
		fmt.Fprintf(os.Stderr, "Usage: %s [options] config [input.txt] [output.txt]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	conllxMode = flag.Bool("conllx", false, "read and write CoNLL-X instead of the native tab-separated format")
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 || flag.NArg() > 3 {
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

	inputFile := common.FileOrStdin(flag.Args(), 1)
	defer inputFile.Close()

	outputFile := common.FileOrStdout(flag.Args(), 2)
	defer outputFile.Close()

	if *conllxMode {
		runConllx(tg, inputFile, outputFile)
		return
	}

	reader := corpus.NewReader(inputFile)
	writer := corpus.NewWriter(outputFile)

	for {
		sent, err := reader.Read()
		if err == io.EOF {
			break
		}
		common.ExitIfError("cannot read sentence", err)

		err = tg.Label(sent)
		common.ExitIfError("cannot label sentence", err)

		err = writer.Write(sent, tg.LabelString)
		common.ExitIfError("cannot write sentence", err)
	}

	common.ExitIfError("cannot flush output", writer.Flush())
}

func runConllx(tg *tagger.Tagger, in, out *os.File) {
	reader := corpus.NewConllxReader(in)
	writer := corpus.NewConllxWriter(out)

	for {
		sent, err := reader.Read()
		if err == io.EOF {
			break
		}
		common.ExitIfError("cannot read sentence", err)

		err = tg.Label(sent)
		common.ExitIfError("cannot label sentence", err)

		err = writer.Write(sent, tg.LabelString)
		common.ExitIfError("cannot write sentence", err)
	}
}
