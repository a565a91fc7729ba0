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

import "testing"

func TestDataElementTag(t *testing.T) {
	testCases := []struct {
		name        string
		tag         DataElementTag
		wantGroup   uint16
		wantElement uint16
		wantString  string
		wantHex     string
	}{
		{"pixel data", PixelDataTag, 0x7FE0, 0x0010, "(7fe0,0010)", "7fe00010"},
		{"modality", ModalityTag, 0x0008, 0x0060, "(0008,0060)", "00080060"},
		{"item", ItemTag, 0xFFFE, 0xE000, "(fffe,e000)", "fffee000"},
		{"zero", DataElementTag(0), 0, 0, "(0000,0000)", "00000000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tag.GroupNumber(); got != tc.wantGroup {
				t.Fatalf("GroupNumber() => %#x, want %#x", got, tc.wantGroup)
			}
			if got := tc.tag.ElementNumber(); got != tc.wantElement {
				t.Fatalf("ElementNumber() => %#x, want %#x", got, tc.wantElement)
			}
			if got := tc.tag.String(); got != tc.wantString {
				t.Fatalf("String() => %q, want %q", got, tc.wantString)
			}
			if got := tc.tag.Hex(); got != tc.wantHex {
				t.Fatalf("Hex() => %q, want %q", got, tc.wantHex)
			}
		})
	}
}

func TestDataElementTagPredicates(t *testing.T) {
	testCases := []struct {
		name         string
		tag          DataElementTag
		wantMetadata bool
		wantPrivate  bool
	}{
		{"meta group length", FileMetaInformationGroupLengthTag, true, false},
		{"transfer syntax", TransferSyntaxUIDTag, true, false},
		{"modality", ModalityTag, false, false},
		{"private creator", DataElementTag(0x00090010), false, true},
		{"odd group", DataElementTag(0x00110001), false, true},
		{"pixel data", PixelDataTag, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tag.IsMetadataElement(); got != tc.wantMetadata {
				t.Fatalf("IsMetadataElement() => %v, want %v", got, tc.wantMetadata)
			}
			if got := tc.tag.IsPrivate(); got != tc.wantPrivate {
				t.Fatalf("IsPrivate() => %v, want %v", got, tc.wantPrivate)
			}
		})
	}
}
