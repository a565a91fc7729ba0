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

// UndefinedLength as specified
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
const UndefinedLength = 0xffffffff

// vrCode packs the two characters of a DICOM Value Representation as
// uint16(first)<<8 | uint16(second). The zero value, vrImplicit, marks
// elements whose VR is not present in the stream and must be inferred.
type vrCode uint16

const vrImplicit vrCode = 0

// VR list obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
// QQ and RT are retired codes still emitted by some historical encoders.
const (
	vrAE vrCode = 'A'<<8 | 'E'
	vrAS vrCode = 'A'<<8 | 'S'
	vrAT vrCode = 'A'<<8 | 'T'
	vrCS vrCode = 'C'<<8 | 'S'
	vrDA vrCode = 'D'<<8 | 'A'
	vrDS vrCode = 'D'<<8 | 'S'
	vrDT vrCode = 'D'<<8 | 'T'
	vrFD vrCode = 'F'<<8 | 'D'
	vrFL vrCode = 'F'<<8 | 'L'
	vrIS vrCode = 'I'<<8 | 'S'
	vrLO vrCode = 'L'<<8 | 'O'
	vrLT vrCode = 'L'<<8 | 'T'
	vrOB vrCode = 'O'<<8 | 'B'
	vrOD vrCode = 'O'<<8 | 'D'
	vrOF vrCode = 'O'<<8 | 'F'
	vrOL vrCode = 'O'<<8 | 'L'
	vrOW vrCode = 'O'<<8 | 'W'
	vrPN vrCode = 'P'<<8 | 'N'
	vrQQ vrCode = '?'<<8 | '?'
	vrRT vrCode = 'R'<<8 | 'T'
	vrSH vrCode = 'S'<<8 | 'H'
	vrSL vrCode = 'S'<<8 | 'L'
	vrSQ vrCode = 'S'<<8 | 'Q'
	vrSS vrCode = 'S'<<8 | 'S'
	vrST vrCode = 'S'<<8 | 'T'
	vrTM vrCode = 'T'<<8 | 'M'
	vrUC vrCode = 'U'<<8 | 'C'
	vrUI vrCode = 'U'<<8 | 'I'
	vrUL vrCode = 'U'<<8 | 'L'
	vrUN vrCode = 'U'<<8 | 'N'
	vrUR vrCode = 'U'<<8 | 'R'
	vrUS vrCode = 'U'<<8 | 'S'
	vrUT vrCode = 'U'<<8 | 'T'
)

func vrFromBytes(b0, b1 byte) vrCode {
	return vrCode(b0)<<8 | vrCode(b1)
}

// vrFromString converts the leading two characters of a dictionary entry
// into a code, for upgrading implicit-VR elements.
func vrFromString(s string) vrCode {
	if len(s) < 2 {
		return vrImplicit
	}
	return vrCode(s[0])<<8 | vrCode(s[1])
}

func (c vrCode) String() string {
	if c == vrImplicit {
		return "--"
	}
	return string([]byte{byte(c >> 8), byte(c)})
}

// has32BitLength reports whether the VR is encoded with 2 reserved bytes
// followed by a 32-bit value length, as opposed to a 16-bit value length.
func (c vrCode) has32BitLength() bool {
	switch c {
	case vrOB, vrOD, vrOF, vrOL, vrOW, vrSQ, vrUC, vrUR, vrUN, vrUT:
		return true
	}
	return false
}

// has16BitLength reports whether the code belongs to the explicit-VR family
// whose value length is the 16-bit word after the VR characters. Codes in
// neither family are treated as implicit VR.
func (c vrCode) has16BitLength() bool {
	switch c {
	case vrAE, vrAS, vrAT, vrCS, vrDA, vrDS, vrDT, vrFD, vrFL, vrIS,
		vrLO, vrLT, vrPN, vrQQ, vrRT, vrSH, vrSL, vrSS, vrST, vrTM,
		vrUI, vrUL, vrUS:
		return true
	}
	return false
}

// vrKind groups value representations by how the header scan reads their
// values when no specialized handler applies.
type vrKind int

const (
	// bulkKind groups binary values whose bytes are skipped, not decoded
	bulkKind vrKind = iota

	// textKind is for value fields interpreted as padded text
	textKind

	// shortsKind is for value fields read as a list of 16-bit numbers
	shortsKind

	// floatKind and doubleKind are for single binary floating point values
	floatKind
	doubleKind

	// sequenceKind is for VR SQ
	sequenceKind
)

func (c vrCode) kind() vrKind {
	switch c {
	case vrAE, vrAS, vrAT, vrCS, vrDA, vrDS, vrDT, vrIS, vrLO, vrLT,
		vrPN, vrSH, vrST, vrTM, vrUI:
		return textKind
	case vrUS:
		return shortsKind
	case vrFL:
		return floatKind
	case vrFD:
		return doubleKind
	case vrSQ:
		return sequenceKind
	}
	return bulkKind
}

// needsRepertoire reports whether values of this VR are subject to the
// Specific Character Set and may need decoding to UTF-8.
func (c vrCode) needsRepertoire() bool {
	switch c {
	case vrPN, vrLO, vrLT, vrSH, vrST, vrUT:
		return true
	}
	return false
}
