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

import "fmt"

// DataElementTag is a DICOM data element tag. The 16 most significant bits
// represent the group number and the 16 least significant bits represent the
// element number.
type DataElementTag uint32

// GroupNumber returns the group number of the tag
func (t DataElementTag) GroupNumber() uint16 {
	return uint16(t >> 16)
}

// ElementNumber returns the element number of the tag
func (t DataElementTag) ElementNumber() uint16 {
	return uint16(t & 0xFFFF)
}

// String returns the tag in the conventional "(gggg,eeee)" form
func (t DataElementTag) String() string {
	return fmt.Sprintf("(%04x,%04x)", t.GroupNumber(), t.ElementNumber())
}

// Hex returns the 8 hex digit form of the tag, the key format of the tag
// dictionary collaborator.
func (t DataElementTag) Hex() string {
	return fmt.Sprintf("%08x", uint32(t))
}

// IsMetadataElement returns true if the tag belongs to the file meta group
func (t DataElementTag) IsMetadataElement() bool {
	return t.GroupNumber() == 0x0002
}

// IsPrivate returns true if the tag has an odd group number, which the
// standard reserves for private vendor elements.
func (t DataElementTag) IsPrivate() bool {
	return t.GroupNumber()%2 == 1
}

// Tags recognized by the header scan. Every other tag falls through to the
// generic dictionary-backed handler.
const (
	FileMetaInformationGroupLengthTag DataElementTag = 0x00020000
	TransferSyntaxUIDTag              DataElementTag = 0x00020010
	SpecificCharacterSetTag           DataElementTag = 0x00080005
	ModalityTag                       DataElementTag = 0x00080060
	SliceThicknessTag                 DataElementTag = 0x00180050
	SpacingBetweenSlicesTag           DataElementTag = 0x00180088
	SamplesPerPixelTag                DataElementTag = 0x00280002
	PhotometricInterpretationTag      DataElementTag = 0x00280004
	PlanarConfigurationTag            DataElementTag = 0x00280006
	NumberOfFramesTag                 DataElementTag = 0x00280008
	RowsTag                           DataElementTag = 0x00280010
	ColumnsTag                        DataElementTag = 0x00280011
	PixelSpacingTag                   DataElementTag = 0x00280030
	BitsAllocatedTag                  DataElementTag = 0x00280100
	PixelRepresentationTag            DataElementTag = 0x00280103
	WindowCenterTag                   DataElementTag = 0x00281050
	WindowWidthTag                    DataElementTag = 0x00281051
	RescaleInterceptTag               DataElementTag = 0x00281052
	RescaleSlopeTag                   DataElementTag = 0x00281053
	RedPaletteTag                     DataElementTag = 0x00281201
	GreenPaletteTag                   DataElementTag = 0x00281202
	BluePaletteTag                    DataElementTag = 0x00281203
	IconImageSequenceTag              DataElementTag = 0x00880200
	PixelDataTag                      DataElementTag = 0x7FE00010
)

// Sequence delimitation tags. Items carry no VR and bracket nested content.
const (
	ItemTag                     DataElementTag = 0xFFFEE000
	ItemDelimitationItemTag     DataElementTag = 0xFFFEE00D
	SequenceDelimitationItemTag DataElementTag = 0xFFFEE0DD
)
