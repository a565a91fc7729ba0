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
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics recorded per parse when the
// WithMetrics option is used. One Metrics value can be shared by any number
// of concurrent parses.
type Metrics struct {
	ParsesTotal       *prometheus.CounterVec
	ParseDuration     prometheus.Histogram
	ElementsPerParse  prometheus.Histogram
	PixelBytesOut     prometheus.Histogram
	CompressedTotal   prometheus.Counter
	LengthClampsTotal prometheus.Counter
	RunawayScansTotal prometheus.Counter
}

// NewMetrics creates and registers the decoder metrics. A nil registerer
// selects the default Prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ParsesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dicom_decoder_parses_total",
				Help: "Completed parses by outcome",
			},
			[]string{"outcome"},
		),

		ParseDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dicom_decoder_parse_duration_seconds",
				Help:    "Parse completion time distribution",
				Buckets: prometheus.DefBuckets,
			},
		),

		ElementsPerParse: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dicom_decoder_elements_per_parse",
				Help:    "Data element headers read per parse",
				Buckets: prometheus.ExponentialBuckets(8, 4, 8),
			},
		),

		PixelBytesOut: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dicom_decoder_pixel_bytes_out",
				Help:    "Materialized pixel buffer sizes in bytes",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),

		CompressedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dicom_decoder_compressed_total",
				Help: "Parses that declared a compressed transfer syntax",
			},
		),

		LengthClampsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dicom_decoder_length_clamps_total",
				Help: "Parses with at least one element length clamped to the remaining bytes",
			},
		),

		RunawayScansTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dicom_decoder_runaway_scans_total",
				Help: "Header scans abandoned at the element ceiling",
			},
		),
	}
}

func (m *Metrics) observeParse(d *decoder, dur time.Duration, err error) {
	m.ParsesTotal.WithLabelValues(outcomeLabel(err)).Inc()
	m.ParseDuration.Observe(dur.Seconds())
	m.ElementsPerParse.Observe(float64(d.elementCount))
	if n := d.ds.pixelBufferBytes(); n > 0 {
		m.PixelBytesOut.Observe(float64(n))
	}
	if d.ds.Compressed {
		m.CompressedTotal.Inc()
	}
	if d.clamped {
		m.LengthClampsTotal.Inc()
	}
	if d.runaway {
		m.RunawayScansTotal.Inc()
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnsupported):
		return "unsupported"
	case errors.Is(err, ErrTruncated):
		return "truncated"
	case errors.Is(err, ErrRunaway):
		return "runaway"
	case errors.Is(err, ErrFormat):
		return "format_error"
	default:
		return "error"
	}
}

func (ds *DataSet) pixelBufferBytes() int {
	switch {
	case ds.Pixels8 != nil:
		return len(ds.Pixels8)
	case ds.Pixels16 != nil:
		return 2 * len(ds.Pixels16)
	case ds.PixelsRGB != nil:
		return len(ds.PixelsRGB)
	case ds.Thumbnail != nil:
		return 2 * len(ds.Thumbnail.Pixels)
	}
	return 0
}
