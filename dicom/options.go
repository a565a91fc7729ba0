// Copyright 2026 The go-dicom-decoder Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import (
	"github.com/rs/zerolog"
)

// defaultElementLimit bounds how many element headers a single parse may
// consume before the scan is treated as a runaway and abandoned in favor of
// the trailing-bytes fallback.
const defaultElementLimit = 1 << 17

// ParseOption configures the behavior of the Parse function.
type ParseOption struct {
	apply func(*parseConfig)
}

type parseConfig struct {
	dictionary   TagDictionary
	codecs       *CodecRegistry
	logger       zerolog.Logger
	metrics      *Metrics
	thumbnailMax int
	parallelism  int
	elementLimit int
}

func newParseConfig(opts []ParseOption) *parseConfig {
	cfg := &parseConfig{
		dictionary:   DefaultDictionary(),
		codecs:       defaultRegistry,
		logger:       zerolog.Nop(),
		elementLimit: defaultElementLimit,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}

// WithDictionary replaces the built-in tag dictionary used for descriptions
// and implicit-VR upgrades. A nil dictionary is ignored.
func WithDictionary(dict TagDictionary) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		if dict != nil {
			cfg.dictionary = dict
		}
	}}
}

// WithCodecRegistry replaces the registry consulted for compressed transfer
// syntaxes. By default the package-level registry is used.
func WithCodecRegistry(reg *CodecRegistry) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		if reg != nil {
			cfg.codecs = reg
		}
	}}
}

// WithLogger attaches a logger to the parse. Each parse logs under a unique
// parse_id. Without this option logging is disabled.
func WithLogger(log zerolog.Logger) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		cfg.logger = log
	}}
}

// WithMetrics records parse outcomes, durations and decode quirks on the
// given collector. See NewMetrics.
func WithMetrics(m *Metrics) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		cfg.metrics = m
	}}
}

// WithThumbnail requests a decimated preview no larger than maxDim on its
// longest axis instead of the full pixel buffer. Only 16-bit grayscale
// images are decimated; other layouts are materialized in full.
func WithThumbnail(maxDim int) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		cfg.thumbnailMax = maxDim
	}}
}

// WithParallelism sets how many goroutines may be used to convert large
// 16-bit pixel buffers. Values below 1 select GOMAXPROCS.
func WithParallelism(n int) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		cfg.parallelism = n
	}}
}

// WithElementLimit overrides the runaway ceiling on the number of element
// headers read by a single parse. Values below 1 are ignored.
func WithElementLimit(n int) ParseOption {
	return ParseOption{func(cfg *parseConfig) {
		if n > 0 {
			cfg.elementLimit = n
		}
	}}
}
