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
	"encoding/binary"
	"fmt"
	"runtime"
	"sync"
)

// Images below this pixel count are converted on the calling goroutine.
const parallelConvertMin = 1 << 20

// materialize builds the pixel buffer for one frame from the raw sample
// region. Exactly one of Pixels8, Pixels16, PixelsRGB or Thumbnail is set
// on success.
func (d *decoder) materialize(region []byte, order binary.ByteOrder) error {
	ds := d.ds
	if ds.Rows < 1 || ds.Columns < 1 {
		return &UnsupportedFormatError{
			BitsAllocated:   ds.BitsAllocated,
			SamplesPerPixel: ds.SamplesPerPixel,
			TransferSyntax:  ds.TransferSyntaxUID,
			Reason:          fmt.Sprintf("missing dimensions %dx%d", ds.Columns, ds.Rows),
		}
	}
	n := ds.Rows * ds.Columns

	switch {
	case ds.SamplesPerPixel == 1 && ds.BitsAllocated == 8:
		if len(region) < n {
			return d.truncation(n, len(region))
		}
		buf := make([]uint8, n)
		copy(buf, region)
		if ds.WhiteIsZero {
			for i, b := range buf {
				buf[i] = 255 - b
			}
		}
		ds.Pixels8 = buf

	case ds.SamplesPerPixel == 1 && ds.BitsAllocated == 16:
		if d.cfg.thumbnailMax > 0 {
			thumb, err := d.decimate16(region, order)
			if err != nil {
				return err
			}
			ds.Thumbnail = thumb
			return nil
		}
		if len(region) < 2*n {
			return d.truncation(2*n, len(region))
		}
		ds.Pixels16 = d.convert16(region, order, n)

	case ds.SamplesPerPixel == 3 && ds.BitsAllocated == 8:
		if len(region) < 3*n {
			return d.truncation(3*n, len(region))
		}
		buf := make([]uint8, 3*n)
		copy(buf, region)
		ds.PixelsRGB = buf

	default:
		return &UnsupportedFormatError{
			BitsAllocated:   ds.BitsAllocated,
			SamplesPerPixel: ds.SamplesPerPixel,
			TransferSyntax:  ds.TransferSyntaxUID,
			Reason:          "pixel layout not supported",
		}
	}
	return nil
}

func (d *decoder) truncation(need, have int) error {
	d.log.Warn().Int("need", need).Int("have", have).Msg("pixel region shorter than the declared image")
	return &TruncationError{Offset: d.ds.PixelDataOffset, Need: need, Have: have}
}

// sampleTransform maps a raw 16-bit sample to its display value. Signed
// samples are shifted into the unsigned range, so the most negative sample
// becomes 0 and the most positive 65535. White-is-zero images are inverted.
func sampleTransform(signed, invert bool) func(raw uint16) uint16 {
	return func(raw uint16) uint16 {
		v := int(raw)
		if signed {
			v = int(int16(raw)) + 32768
		}
		if invert {
			v = 65535 - v
		}
		return uint16(v)
	}
}

// convert16 converts n raw samples in the given byte order. Large images
// are split across goroutines writing disjoint ranges of the output.
func (d *decoder) convert16(region []byte, order binary.ByteOrder, n int) []uint16 {
	out := make([]uint16, n)
	transform := sampleTransform(d.ds.Signed(), d.ds.WhiteIsZero)

	convert := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = transform(order.Uint16(region[2*i:]))
		}
	}

	workers := d.cfg.parallelism
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || n < parallelConvertMin {
		convert(0, n)
		return out
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			convert(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
	return out
}

// decimate16 nearest-neighbor samples the full resolution region into a
// preview no larger than the configured maximum on its longest axis,
// preserving aspect ratio and applying the usual sample transforms.
func (d *decoder) decimate16(region []byte, order binary.ByteOrder) (*Thumbnail, error) {
	rows, cols := d.ds.Rows, d.ds.Columns
	if len(region) < 2*rows*cols {
		return nil, d.truncation(2*rows*cols, len(region))
	}

	maxDim := d.cfg.thumbnailMax
	outRows, outCols := rows, cols
	switch {
	case cols >= rows && cols > maxDim:
		outCols = maxDim
		outRows = max(1, rows*maxDim/cols)
	case rows > cols && rows > maxDim:
		outRows = maxDim
		outCols = max(1, cols*maxDim/rows)
	}
	stepY := float64(rows) / float64(outRows)
	stepX := float64(cols) / float64(outCols)
	transform := sampleTransform(d.ds.Signed(), d.ds.WhiteIsZero)

	pixels := make([]uint16, outRows*outCols)
	for y := 0; y < outRows; y++ {
		srcY := int(float64(y) * stepY)
		for x := 0; x < outCols; x++ {
			srcX := int(float64(x) * stepX)
			pixels[y*outCols+x] = transform(order.Uint16(region[2*(srcY*cols+srcX):]))
		}
	}
	return &Thumbnail{Pixels: pixels, Rows: outRows, Columns: outCols}, nil
}
