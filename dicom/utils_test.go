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
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/rs/zerolog"
)

// streamBuilder assembles synthetic DICOM streams for tests. The meta group
// is always written little-endian; flip bigEndian before writing data set
// elements that should use the big-endian order.
type streamBuilder struct {
	buf       bytes.Buffer
	bigEndian bool
}

// newFileBuilder starts a Part-10 stream: 128 zero bytes plus the marker.
func newFileBuilder() *streamBuilder {
	b := &streamBuilder{}
	b.buf.Write(make([]byte, 128))
	b.buf.WriteString("DICM")
	return b
}

func (b *streamBuilder) order() binary.ByteOrder {
	if b.bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (b *streamBuilder) writeTag(group, element uint16) {
	var tag [4]byte
	b.order().PutUint16(tag[0:], group)
	b.order().PutUint16(tag[2:], element)
	b.buf.Write(tag[:])
}

// explicit writes an explicit-VR element, choosing the 16-bit or 32-bit
// length form from the VR.
func (b *streamBuilder) explicit(group, element uint16, vr string, value []byte) {
	b.writeTag(group, element)
	b.buf.WriteString(vr)
	if vrFromString(vr).has32BitLength() {
		b.buf.Write([]byte{0, 0})
		var length [4]byte
		b.order().PutUint32(length[:], uint32(len(value)))
		b.buf.Write(length[:])
	} else {
		var length [2]byte
		b.order().PutUint16(length[:], uint16(len(value)))
		b.buf.Write(length[:])
	}
	b.buf.Write(value)
}

// explicitUndefined writes an explicit-VR element header with the undefined
// length marker and no value bytes.
func (b *streamBuilder) explicitUndefined(group, element uint16, vr string) {
	b.writeTag(group, element)
	b.buf.WriteString(vr)
	b.buf.Write([]byte{0, 0, 0xFF, 0xFF, 0xFF, 0xFF})
}

// explicitWithLength writes an explicit-VR element declaring the given
// length, followed by the value bytes as-is. The two need not agree; tests
// use the mismatch to exercise clamping and truncation.
func (b *streamBuilder) explicitWithLength(group, element uint16, vr string, length uint32, value []byte) {
	b.writeTag(group, element)
	b.buf.WriteString(vr)
	if vrFromString(vr).has32BitLength() {
		b.buf.Write([]byte{0, 0})
		var l [4]byte
		b.order().PutUint32(l[:], length)
		b.buf.Write(l[:])
	} else {
		var l [2]byte
		b.order().PutUint16(l[:], uint16(length))
		b.buf.Write(l[:])
	}
	b.buf.Write(value)
}

// implicit writes an implicit-VR element: tag then a 32-bit length.
func (b *streamBuilder) implicit(group, element uint16, value []byte) {
	b.writeTag(group, element)
	var length [4]byte
	b.order().PutUint32(length[:], uint32(len(value)))
	b.buf.Write(length[:])
	b.buf.Write(value)
}

// implicitLength writes an implicit-VR element header with a length field
// that need not match the value bytes written afterwards.
func (b *streamBuilder) implicitLength(group, element uint16, length uint32, value []byte) {
	b.writeTag(group, element)
	var l [4]byte
	b.order().PutUint32(l[:], length)
	b.buf.Write(l[:])
	b.buf.Write(value)
}

// item writes an item or delimiter header with the given length.
func (b *streamBuilder) item(group, element uint16, length uint32) {
	b.writeTag(group, element)
	var l [4]byte
	b.order().PutUint32(l[:], length)
	b.buf.Write(l[:])
}

// meta writes the file meta group: group length and transfer syntax UID,
// always explicit little-endian.
func (b *streamBuilder) meta(syntaxUID string) {
	uid := paddedString(syntaxUID, 0)
	groupLen := make([]byte, 4)
	binary.LittleEndian.PutUint32(groupLen, uint32(8+len(uid)))
	b.explicit(0x0002, 0x0000, "UL", groupLen)
	b.explicit(0x0002, 0x0010, "UI", uid)
}

func (b *streamBuilder) raw(p []byte) {
	b.buf.Write(p)
}

func (b *streamBuilder) bytes() []byte {
	return b.buf.Bytes()
}

// paddedString pads s with the given byte to an even length.
func paddedString(s string, pad byte) []byte {
	if len(s)%2 == 0 {
		return []byte(s)
	}
	return append([]byte(s), pad)
}

// us encodes one unsigned short in the builder's byte order.
func (b *streamBuilder) us(v uint16) []byte {
	out := make([]byte, 2)
	b.order().PutUint16(out, v)
	return out
}

// shorts encodes 16-bit samples in the builder's byte order.
func (b *streamBuilder) shorts(values ...uint16) []byte {
	out := make([]byte, 2*len(values))
	for i, v := range values {
		b.order().PutUint16(out[2*i:], v)
	}
	return out
}

// imageElements writes the minimal image pipeline elements in the builder's
// current order.
func (b *streamBuilder) imageElements(rows, cols, bits, samples uint16) {
	b.explicit(0x0028, 0x0002, "US", b.us(samples))
	b.explicit(0x0028, 0x0010, "US", b.us(rows))
	b.explicit(0x0028, 0x0011, "US", b.us(cols))
	b.explicit(0x0028, 0x0100, "US", b.us(bits))
}

// minimalStream builds a little-endian explicit-VR file holding a one-row
// 16-bit image with the given samples.
func minimalStream(samples ...uint16) []byte {
	b := newFileBuilder()
	b.meta(ExplicitVRLittleEndianUID)
	b.explicit(0x0008, 0x0060, "CS", []byte("MR"))
	b.imageElements(1, uint16(len(samples)), 16, 1)
	b.explicit(0x7FE0, 0x0010, "OW", b.shorts(samples...))
	return b.bytes()
}

// testDecoder builds a decoder over raw bytes for unit tests that drive
// nextElement and the value readers directly.
func testDecoder(data []byte, opts ...ParseOption) *decoder {
	return &decoder{
		r:          newByteReader(data),
		cfg:        newParseConfig(opts),
		ds:         newDataSet(),
		log:        zerolog.Nop(),
		textCoding: defaultCharacterRepertoire,
	}
}

// mustParse decodes a stream that the test expects to parse cleanly.
func mustParse(t *testing.T, data []byte, opts ...ParseOption) *DataSet {
	t.Helper()
	ds, err := Parse(data, opts...)
	if err != nil {
		t.Fatalf("Parse(_) => unexpected error %v", err)
	}
	return ds
}
