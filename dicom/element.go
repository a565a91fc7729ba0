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

// nextElement reads the next element header: the 4-byte tag, then the VR
// and value length per the explicit/implicit disambiguation rules. It
// returns ok == false when fewer than 4 bytes remain. The element's VR and
// value length are left in the decoder state for the dispatch loop.
func (d *decoder) nextElement() (DataElementTag, bool) {
	if d.r.remaining() < 4 {
		return 0, false
	}
	group := d.r.readShort()
	// Some encoders declare the big-endian syntax in the meta group but
	// still emit the first data-set group little-endian. Group 0x0800 is
	// byte-swapped 0x0008: flip the active order and correct the group.
	if group == 0x0800 && d.bigEndianSyntax {
		d.r.bigEndian = true
		group = 0x0008
		d.log.Debug().Int("location", d.r.location).Msg("switched to big-endian byte order mid-stream")
	}
	element := d.r.readShort()
	tag := DataElementTag(uint32(group)<<16 | uint32(element))

	d.elementLength = d.readLength()

	// hack needed to read some GE files: element lengths must be even
	if d.elementLength == 13 && !d.oddLocations {
		d.elementLength = 10
		d.log.Debug().Str("tag", tag.String()).Msg("corrected element length 13 to 10")
	}

	// Undefined length brackets a sequence of nested elements rather than
	// declaring a literal value size.
	if d.elementLength == UndefinedLength {
		d.elementLength = 0
		d.inSequence = true
	}

	if rem := d.r.remaining(); d.elementLength > rem {
		d.log.Warn().
			Str("tag", tag.String()).
			Int("from", d.elementLength).
			Int("to", rem).
			Msg("element length clamped to remaining bytes")
		d.elementLength = rem
		d.clamped = true
	}
	return tag, true
}

// readLength determines the current element's VR and value length from the
// four bytes following the tag.
func (d *decoder) readLength() int {
	b0 := d.r.readByte()
	b1 := d.r.readByte()
	b2 := d.r.readByte()
	b3 := d.r.readByte()

	d.vr = vrFromBytes(b0, b1)
	switch {
	case d.vr.has32BitLength():
		// Explicit VR with a 32-bit length only when both reserved bytes
		// are zero; anything else means the four bytes were really an
		// implicit-VR length that happened to start with VR characters.
		if b2 == 0 && b3 == 0 {
			return d.r.readInt32()
		}
		d.vr = vrImplicit
		return d.implicitLength(b0, b1, b2, b3)
	case d.vr.has16BitLength():
		if d.r.bigEndian {
			return int(b2)<<8 | int(b3)
		}
		return int(b3)<<8 | int(b2)
	default:
		d.vr = vrImplicit
		return d.implicitLength(b0, b1, b2, b3)
	}
}

// implicitLength reinterprets the four bytes already consumed as a 32-bit
// value length in the active byte order.
func (d *decoder) implicitLength(b0, b1, b2, b3 byte) int {
	if d.r.bigEndian {
		return int(b0)<<24 | int(b1)<<16 | int(b2)<<8 | int(b3)
	}
	return int(b3)<<24 | int(b2)<<16 | int(b1)<<8 | int(b0)
}
