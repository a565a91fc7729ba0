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
	"encoding/csv"
	"strings"
	"sync"
)

// TagDictionary resolves tags to their VR and human readable description.
// Lookup takes the 8 hex digit form of a tag (DataElementTag.Hex) and
// returns a "VR:description" string. The decoder consults it read-only,
// once per implicit-VR or unrecognized element, and degrades gracefully
// when a tag is unknown.
type TagDictionary interface {
	Lookup(tagHex string) (string, bool)
}

// DefaultDictionary returns the built-in dictionary of common standard
// tags. It is parsed once and safe for concurrent use.
func DefaultDictionary() TagDictionary {
	return builtinDictionary()
}

type mapDictionary map[string]string

func (d mapDictionary) Lookup(tagHex string) (string, bool) {
	entry, ok := d[tagHex]
	return entry, ok
}

var builtinDictionary = sync.OnceValue(func() TagDictionary {
	return parseDictionaryData(dictionaryData)
})

func parseDictionaryData(data string) mapDictionary {
	r := csv.NewReader(strings.NewReader(data))
	r.Comma = '\t'
	r.Comment = '#'
	r.FieldsPerRecord = 3
	dict := make(mapDictionary)
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		dict[strings.ToLower(record[0])] = record[1] + ":" + record[2]
	}
	return dict
}

// dictEntry splits a "VR:description" dictionary value.
func dictEntry(entry string) (vrCode, string) {
	i := strings.IndexByte(entry, ':')
	if i < 0 {
		return vrImplicit, entry
	}
	return vrFromString(entry[:i]), entry[i+1:]
}

// dictionaryData holds the common subset of the standard data dictionary
// (PS3.6). Columns: tag, VR, description. Delimitation tags carry the
// pseudo VR "--".
const dictionaryData = `
00020000	UL	File Meta Information Group Length
00020001	OB	File Meta Information Version
00020002	UI	Media Storage SOP Class UID
00020003	UI	Media Storage SOP Instance UID
00020010	UI	Transfer Syntax UID
00020012	UI	Implementation Class UID
00020013	SH	Implementation Version Name
00020016	AE	Source Application Entity Title
00080005	CS	Specific Character Set
00080008	CS	Image Type
00080012	DA	Instance Creation Date
00080013	TM	Instance Creation Time
00080014	UI	Instance Creator UID
00080016	UI	SOP Class UID
00080018	UI	SOP Instance UID
00080020	DA	Study Date
00080021	DA	Series Date
00080022	DA	Acquisition Date
00080023	DA	Content Date
00080030	TM	Study Time
00080031	TM	Series Time
00080032	TM	Acquisition Time
00080033	TM	Content Time
00080050	SH	Accession Number
00080060	CS	Modality
00080064	CS	Conversion Type
00080070	LO	Manufacturer
00080080	LO	Institution Name
00080081	ST	Institution Address
00080090	PN	Referring Physician's Name
00081010	SH	Station Name
00081030	LO	Study Description
0008103e	LO	Series Description
00081040	LO	Institutional Department Name
00081050	PN	Performing Physician's Name
00081060	PN	Name of Physician(s) Reading Study
00081070	PN	Operators' Name
00081090	LO	Manufacturer's Model Name
00081140	SQ	Referenced Image Sequence
00081155	UI	Referenced SOP Instance UID
00082111	ST	Derivation Description
00082112	SQ	Source Image Sequence
00100010	PN	Patient's Name
00100020	LO	Patient ID
00100030	DA	Patient's Birth Date
00100040	CS	Patient's Sex
00101010	AS	Patient's Age
00101020	DS	Patient's Size
00101030	DS	Patient's Weight
00104000	LT	Patient Comments
00180010	LO	Contrast/Bolus Agent
00180015	CS	Body Part Examined
00180020	CS	Scanning Sequence
00180021	CS	Sequence Variant
00180022	CS	Scan Options
00180023	CS	MR Acquisition Type
00180050	DS	Slice Thickness
00180060	DS	KVP
00180080	DS	Repetition Time
00180081	DS	Echo Time
00180082	DS	Inversion Time
00180083	DS	Number of Averages
00180084	DS	Imaging Frequency
00180085	SH	Imaged Nucleus
00180086	IS	Echo Number(s)
00180087	DS	Magnetic Field Strength
00180088	DS	Spacing Between Slices
00180091	IS	Echo Train Length
00180095	DS	Pixel Bandwidth
00181000	LO	Device Serial Number
00181020	LO	Software Versions
00181030	LO	Protocol Name
00181050	DS	Spatial Resolution
00181100	DS	Reconstruction Diameter
00181110	DS	Distance Source to Detector
00181111	DS	Distance Source to Patient
00181120	DS	Gantry/Detector Tilt
00181130	DS	Table Height
00181140	CS	Rotation Direction
00181150	IS	Exposure Time
00181151	IS	X-Ray Tube Current
00181152	IS	Exposure
00181160	SH	Filter Type
00181170	IS	Generator Power
00181190	DS	Focal Spot(s)
00181210	SH	Convolution Kernel
00185100	CS	Patient Position
0020000d	UI	Study Instance UID
0020000e	UI	Series Instance UID
00200010	SH	Study ID
00200011	IS	Series Number
00200012	IS	Acquisition Number
00200013	IS	Instance Number
00200020	CS	Patient Orientation
00200032	DS	Image Position (Patient)
00200037	DS	Image Orientation (Patient)
00200052	UI	Frame of Reference UID
00200060	CS	Laterality
00201002	IS	Images in Acquisition
00201040	LO	Position Reference Indicator
00201041	DS	Slice Location
00204000	LT	Image Comments
00280002	US	Samples per Pixel
00280004	CS	Photometric Interpretation
00280006	US	Planar Configuration
00280008	IS	Number of Frames
00280009	AT	Frame Increment Pointer
00280010	US	Rows
00280011	US	Columns
00280030	DS	Pixel Spacing
00280034	IS	Pixel Aspect Ratio
00280100	US	Bits Allocated
00280101	US	Bits Stored
00280102	US	High Bit
00280103	US	Pixel Representation
00280106	US	Smallest Image Pixel Value
00280107	US	Largest Image Pixel Value
00280120	US	Pixel Padding Value
00281050	DS	Window Center
00281051	DS	Window Width
00281052	DS	Rescale Intercept
00281053	DS	Rescale Slope
00281054	LO	Rescale Type
00281055	LO	Window Center & Width Explanation
00281101	US	Red Palette Color Lookup Table Descriptor
00281102	US	Green Palette Color Lookup Table Descriptor
00281103	US	Blue Palette Color Lookup Table Descriptor
00281201	OW	Red Palette Color Lookup Table Data
00281202	OW	Green Palette Color Lookup Table Data
00281203	OW	Blue Palette Color Lookup Table Data
00282110	CS	Lossy Image Compression
00282112	DS	Lossy Image Compression Ratio
00321032	PN	Requesting Physician
00321060	LO	Requested Procedure Description
00400244	DA	Performed Procedure Step Start Date
00400254	LO	Performed Procedure Step Description
00401001	SH	Requested Procedure ID
00540081	US	Number of Slices
00880200	SQ	Icon Image Sequence
7fe00010	OW	Pixel Data
fffee000	--	Item
fffee00d	--	Item Delimitation Item
fffee0dd	--	Sequence Delimitation Item
`
