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

// DataSet is the result of decoding a single DICOM stream. Parse always
// returns a non-nil DataSet, even on error, so callers can inspect whatever
// was recovered before the failure.
type DataSet struct {
	// SignatureFound reports that the DICM marker was present at offset 128.
	SignatureFound bool
	// HeaderDecoded reports that the header scan completed and the pixel
	// data was located, directly or through the trailing-bytes fallback.
	HeaderDecoded bool
	// Compressed reports that the declared transfer syntax is an
	// encapsulated one (JPEG family or RLE). Pixel bytes are then left
	// undecoded unless a codec is registered for the syntax.
	Compressed bool

	// Image geometry and sample layout, from the 0028 group.
	Rows                int
	Columns             int
	BitsAllocated       int
	SamplesPerPixel     int
	PixelRepresentation int
	PlanarConfiguration int
	NumberOfFrames      int

	// PhotometricInterpretation is the raw value of (0028,0004).
	// WhiteIsZero is true when it starts with MONOCHROME1.
	PhotometricInterpretation string
	WhiteIsZero               bool

	// Display and rescale parameters. Multi-valued window elements keep
	// only the value after the last backslash.
	WindowCenter     float64
	WindowWidth      float64
	RescaleIntercept float64
	RescaleSlope     float64

	// Spatial scale. PixelHeight and PixelWidth are the row and column
	// spacing from (0028,0030); zero when the element is absent or
	// single-valued.
	PixelHeight    float64
	PixelWidth     float64
	SliceThickness float64
	SliceSpacing   float64

	Modality          string
	TransferSyntaxUID string

	// Palette lookup tables, stored as the high byte of each 16-bit entry.
	// Nil unless the file carries even-length palette elements.
	RedPalette   []byte
	GreenPalette []byte
	BluePalette  []byte

	// PixelDataOffset is the byte offset of the first pixel sample (or of
	// the encapsulated stream for compressed syntaxes). Positive once
	// HeaderDecoded is true.
	PixelDataOffset int

	// At most one of the pixel buffers below is populated. Pixels8 holds
	// 8-bit grayscale, Pixels16 holds 16-bit grayscale normalized to
	// unsigned values, PixelsRGB holds interleaved 8-bit RGB triples.
	Pixels8   []uint8
	Pixels16  []uint16
	PixelsRGB []uint8

	// Thumbnail is set instead of Pixels16 when decoding with
	// WithThumbnail and the image is 16-bit grayscale.
	Thumbnail *Thumbnail

	// Info records one human-readable "Description: value" line per
	// decoded element, keyed by tag. Elements nested inside sequences are
	// prefixed with ">".
	Info map[DataElementTag]string

	values      map[DataElementTag]string
	pixelRegion []byte
}

// Thumbnail is a decimated 16-bit grayscale rendering produced in place of
// the full pixel buffer.
type Thumbnail struct {
	Pixels  []uint16
	Rows    int
	Columns int
}

func newDataSet() *DataSet {
	return &DataSet{
		SamplesPerPixel: 1,
		BitsAllocated:   16,
		NumberOfFrames:  1,
		RescaleSlope:    1,
		Info:            make(map[DataElementTag]string),
		values:          make(map[DataElementTag]string),
	}
}

// Signed reports whether pixel samples are two's-complement signed
// ((0028,0103) == 1). Signed 16-bit samples are shifted into the unsigned
// range during materialization.
func (ds *DataSet) Signed() bool {
	return ds.PixelRepresentation == 1
}

// Value returns the raw string value of one of the recognized header tags,
// as cached during the scan. It avoids re-parsing Info lines for tags that
// viewers query repeatedly, such as window settings and rescale parameters.
func (ds *DataSet) Value(tag DataElementTag) (string, bool) {
	v, ok := ds.values[tag]
	return v, ok
}

// PixelRegion returns the undecoded bytes from PixelDataOffset to the end
// of the stream. For compressed syntaxes this is the encapsulated stream to
// hand to a codec. Results from ParseFile retain the region only when no
// pixel buffer was materialized.
func (ds *DataSet) PixelRegion() []byte {
	return ds.pixelRegion
}
