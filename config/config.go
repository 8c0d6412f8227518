// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the tagger's key=value configuration surface,
// the same way the teacher package reads its TOML configuration:
// recognized keys populate a typed struct with documented defaults,
// unrecognized keys are a load-time error during training and a
// load-time warning when attached to a frozen model.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/danieldk/morphotag/params"
)

// Estimator selects which trainer fits the label model.
type Estimator string

const (
	AvgPerc Estimator = "AVG_PERC"
	ML      Estimator = "ML"
)

// Inference selects how the trellis is decoded at label time.
type Inference string

const (
	MAP      Inference = "MAP"
	Marginal Inference = "MARGINAL"
)

// Regularization selects the SGD trainer's weight shrinkage.
type Regularization string

const (
	NoRegularization Regularization = "NONE"
	L1Regularization Regularization = "L1"
	L2Regularization Regularization = "L2"
)

// Config is the fully-resolved configuration surface, merging
// user-supplied keys over the documented defaults.
type Config struct {
	Model string `toml:"model"`

	Estimator Estimator `toml:"estimator"`
	Inference Inference `toml:"inference"`

	FilterType      string  `toml:"filter_type"`
	ParamThreshold  float64 `toml:"param_threshold"`
	SuffixLength    int     `toml:"suffix_length"`
	Degree          int     `toml:"degree"`
	SubLabelOrder   string  `toml:"sublabel_order"`
	ModelOrder      string  `toml:"model_order"`

	MaxTrainPasses      int `toml:"max_train_passes"`
	MaxLemmatizerPasses int `toml:"max_lemmatizer_passes"`
	MaxUselessPasses    int `toml:"max_useless_passes"`

	GuessMass        float64 `toml:"guess_mass"`
	Beam             int     `toml:"beam"`
	BeamMass         float64 `toml:"beam_mass"`

	Regularization Regularization `toml:"regularization"`
	Delta          float64        `toml:"delta"`
	Sigma          float64        `toml:"sigma"`

	UseLabelDictionary       bool `toml:"use_label_dictionary"`
	GuessCountLimit          int  `toml:"guess_count_limit"`
	Guesses                  int  `toml:"guesses"`
	UseUnstructuredSublabels bool `toml:"use_unstructured_sublabels"`
	UseStructuredSublabels   bool `toml:"use_structured_sublabels"`
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		Model: "model.bin",

		Estimator: AvgPerc,
		Inference: MAP,

		FilterType:     "NO_FILTER",
		ParamThreshold: -1,
		SuffixLength:   10,
		Degree:         2,
		SubLabelOrder:  "FIRST",
		ModelOrder:     "SECOND",

		MaxTrainPasses:      50,
		MaxLemmatizerPasses: 50,
		MaxUselessPasses:    3,

		GuessMass: 0.99,
		Beam:      -1,
		BeamMass:  -1,

		Regularization: NoRegularization,
		Delta:          -1,
		Sigma:          -1,

		UseLabelDictionary:       true,
		GuessCountLimit:          50,
		Guesses:                  -1,
		UseUnstructuredSublabels: true,
		UseStructuredSublabels:   true,
	}
}

// Parse reads a configuration from r over the documented defaults.
// strict controls whether unrecognized keys are an error (load time,
// training) or are ignored with a warning printed to stderr
// (model-attached configuration).
func Parse(r io.Reader, strict bool) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeReader(r, cfg)
	if err != nil {
		return nil, err
	}

	if len(md.Undecoded()) > 0 {
		if strict {
			return nil, fmt.Errorf("unknown configuration keys: %v", md.Undecoded())
		}
		fmt.Fprintf(os.Stderr, "warning: ignoring unknown configuration keys: %v\n", md.Undecoded())
	}

	return cfg, nil
}

// MustParseFile reads a configuration file, resolving Model relative
// to the configuration file's own directory, and exits the process
// on failure.
func MustParseFile(filename string, strict bool) *Config {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open configuration file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cfg, err := Parse(f, strict)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot parse configuration file: %v\n", err)
		os.Exit(1)
	}

	cfg.Model = relToConfig(filename, cfg.Model)
	return cfg
}

func relToConfig(configPath, filePath string) string {
	if len(filePath) == 0 || filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(filepath.Dir(configPath), filePath)
}

// SubLabelDegree resolves the configured sub-label fan-out degree.
func (c *Config) SubLabelDegree() params.Degree {
	d, ok := params.ParseDegree(c.SubLabelOrder)
	if !ok {
		return params.First
	}
	return d
}

// ModelDegree resolves the configured transition model order.
func (c *Config) ModelDegree() params.Degree {
	d, ok := params.ParseDegree(c.ModelOrder)
	if !ok {
		return params.Second
	}
	return d
}

// Filter resolves the configured post-training parameter filter.
func (c *Config) Filter() (params.FilterType, float64) {
	ft, ok := params.ParseFilterType(c.FilterType)
	if !ok {
		ft = params.NoFilter
	}
	return ft, c.ParamThreshold
}
