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
	"math"
	"strings"
)

// byteReader is a bounds-checked cursor over an immutable byte buffer. Every
// read consumes exactly the requested width and advances the location by it,
// even when the range falls outside the buffer: out-of-bounds reads yield
// zero values instead of failing, so the header scan stays total over
// truncated input. Callers treat suspicious zero results as a stop signal;
// hard failures are decided at the Parse boundary, not here.
type byteReader struct {
	data      []byte
	location  int
	bigEndian bool
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

func (r *byteReader) byteOrder() binary.ByteOrder {
	if r.bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// remaining returns the number of unread bytes, never negative.
func (r *byteReader) remaining() int {
	if r.location >= len(r.data) {
		return 0
	}
	return len(r.data) - r.location
}

// take returns the n bytes at the cursor and advances by exactly n. It
// returns nil when the range is not fully inside the buffer.
func (r *byteReader) take(n int) []byte {
	if n <= 0 {
		return nil
	}
	start := r.location
	r.location += n
	if start < 0 || start+n > len(r.data) {
		return nil
	}
	return r.data[start : start+n]
}

// skip advances the cursor by n bytes without interpreting them.
func (r *byteReader) skip(n int) {
	if n > 0 {
		r.location += n
	}
}

// readString reads n bytes as text, stripping trailing space fill and NUL
// terminators per the string padding convention.
func (r *byteReader) readString(n int) string {
	b := r.take(n)
	if b == nil {
		return ""
	}
	return strings.TrimRight(string(b), " \x00")
}

func (r *byteReader) readByte() byte {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// readShort reads an unsigned 16-bit value in the active byte order.
func (r *byteReader) readShort() int {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return int(r.byteOrder().Uint16(b))
}

// readInt32 reads an unsigned 32-bit value in the active byte order as a
// non-negative int.
func (r *byteReader) readInt32() int {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return int(r.byteOrder().Uint32(b))
}

func (r *byteReader) readFloat32() float32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(r.byteOrder().Uint32(b))
}

func (r *byteReader) readFloat64() float64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(r.byteOrder().Uint64(b))
}

// spliceAt replaces everything from offset at onward with repl and
// repositions the cursor there. The original buffer is left untouched; the
// reader switches to a fresh backing slice.
func (r *byteReader) spliceAt(at int, repl []byte) {
	if at > len(r.data) {
		at = len(r.data)
	}
	buf := make([]byte, 0, at+len(repl))
	buf = append(buf, r.data[:at]...)
	buf = append(buf, repl...)
	r.data = buf
	r.location = at
}
