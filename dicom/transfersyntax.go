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

import "strings"

// list of transfer syntaxes obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_A
const (
	// ImplicitVRLittleEndianUID is the Implicit VR Little Endian UID
	ImplicitVRLittleEndianUID = "1.2.840.10008.1.2"
	// ExplicitVRLittleEndianUID is the Explicit VR Little Endian UID
	ExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1"
	// ExplicitVRBigEndianUID is the Explicit VR Big Endian UID (retired)
	ExplicitVRBigEndianUID = "1.2.840.10008.1.2.2"
	// DeflatedExplicitVRLittleEndianUID is the Deflated Explicit VR Little Endian UID
	DeflatedExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1.99"
	// JPEGBaselineUID is the JPEG Baseline (Process 1) transfer syntax UID
	JPEGBaselineUID = "1.2.840.10008.1.2.4.50"
	// JPEGExtendedUID is the JPEG Extended (Process 2 & 4) transfer syntax UID
	JPEGExtendedUID = "1.2.840.10008.1.2.4.51"
	// JPEGLosslessUID is the JPEG Lossless, Non-Hierarchical (Process 14) UID
	JPEGLosslessUID = "1.2.840.10008.1.2.4.57"
	// JPEGLosslessSV1UID is the JPEG Lossless Selection Value 1 UID
	JPEGLosslessSV1UID = "1.2.840.10008.1.2.4.70"
	// JPEGLSLosslessUID is the JPEG-LS Lossless transfer syntax UID
	JPEGLSLosslessUID = "1.2.840.10008.1.2.4.80"
	// JPEGLSNearLosslessUID is the JPEG-LS Lossy (Near-Lossless) UID
	JPEGLSNearLosslessUID = "1.2.840.10008.1.2.4.81"
	// JPEG2000LosslessUID is the JPEG 2000 Lossless Only transfer syntax UID
	JPEG2000LosslessUID = "1.2.840.10008.1.2.4.90"
	// JPEG2000UID is the JPEG 2000 transfer syntax UID
	JPEG2000UID = "1.2.840.10008.1.2.4.91"
	// RLELosslessUID is the RLE Lossless transfer syntax UID
	RLELosslessUID = "1.2.840.10008.1.2.5"
)

// compressedSyntaxPrefixes covers the encapsulated pixel data families: the
// whole JPEG/JPEG-LS/JPEG 2000/MPEG arc and RLE. Matched by prefix so later
// members of an arc are still flagged.
var compressedSyntaxPrefixes = []string{
	"1.2.840.10008.1.2.4",
	"1.2.840.10008.1.2.5",
}

// isCompressedSyntax reports whether the UID declares encapsulated
// (compressed) pixel data that the materializer must not touch.
func isCompressedSyntax(uid string) bool {
	for _, prefix := range compressedSyntaxPrefixes {
		if strings.HasPrefix(uid, prefix) {
			return true
		}
	}
	return false
}

func isBigEndianSyntax(uid string) bool {
	return uid == ExplicitVRBigEndianUID
}

func isDeflatedSyntax(uid string) bool {
	return uid == DeflatedExplicitVRLittleEndianUID
}
