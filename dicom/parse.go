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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/flate"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
)

// Implicit-VR string values longer than this are read but not recorded in
// the info map, since they are usually binary payloads misidentified as
// text.
const elidedValueLength = 44

// decoder holds the state of a single Parse call.
type decoder struct {
	r   *byteReader
	cfg *parseConfig
	ds  *DataSet
	log zerolog.Logger

	vr              vrCode
	elementLength   int
	elementCount    int
	bigEndianSyntax bool
	inSequence      bool
	oddLocations    bool
	clamped         bool
	runaway         bool
	deflated        bool
	metaEnd         int
	textCoding      encoding.Encoding
}

// Parse decodes the DICOM stream in data: the Part-10 signature, the header
// elements up to pixel data, and for uncompressed transfer syntaxes the
// pixel samples themselves. Compressed streams are handed to the codec
// registered for their transfer syntax; without one the encapsulated bytes
// stay reachable through PixelRegion and the parse reports ErrUnsupported.
//
// The returned DataSet is never nil; on error it holds whatever was decoded
// before the failure, and the error unwraps to one of ErrFormat,
// ErrTruncated, ErrRunaway or ErrUnsupported. The DataSet's PixelRegion
// aliases data, so copy it before reusing the backing array.
func Parse(data []byte, opts ...ParseOption) (*DataSet, error) {
	cfg := newParseConfig(opts)
	log := cfg.logger
	if log.GetLevel() != zerolog.Disabled {
		log = log.With().Str("parse_id", uuid.NewString()).Logger()
	}
	d := &decoder{
		r:          newByteReader(data),
		cfg:        cfg,
		ds:         newDataSet(),
		log:        log,
		textCoding: defaultCharacterRepertoire,
	}

	start := time.Now()
	err := d.decode()
	if cfg.metrics != nil {
		cfg.metrics.observeParse(d, time.Since(start), err)
	}
	return d.ds, err
}

func (d *decoder) decode() error {
	if err := d.readSignature(); err != nil {
		return err
	}
	d.ds.SignatureFound = true
	if err := d.scanHeader(); err != nil {
		return err
	}
	d.ds.HeaderDecoded = true
	if off := d.ds.PixelDataOffset; off > 0 && off < len(d.r.data) {
		d.ds.pixelRegion = d.r.data[off:]
	}
	if d.ds.Compressed {
		decoded, err := d.decodeCompressed()
		if err != nil {
			return err
		}
		return d.materialize(decoded, binary.LittleEndian)
	}
	return d.materialize(d.ds.pixelRegion, d.r.byteOrder())
}

// readSignature skips the 128-byte preamble and checks the DICM marker.
func (d *decoder) readSignature() error {
	d.r.skip(128)
	if sig := d.r.readString(4); sig != "DICM" {
		return formatErrorf(128, "DICM signature not found")
	}
	return nil
}

// scanHeader walks data elements until pixel data is located. Recognized
// tags update the DataSet fields; everything else is recorded in the info
// map by the generic handler.
func (d *decoder) scanHeader() error {
	for {
		if d.elementCount >= d.cfg.elementLimit {
			d.runaway = true
			d.log.Warn().Int("elements", d.elementCount).Msg("element ceiling reached before pixel data; abandoning header scan")
			return d.fallbackOffset(&RunawayError{Elements: d.elementCount})
		}
		d.elementCount++

		// Deflated streams compress everything after the meta group.
		if d.deflated && d.atDataSetStart() {
			if err := d.inflate(d.r.location); err != nil {
				return err
			}
		}

		wasInSequence := d.inSequence
		tag, ok := d.nextElement()
		if !ok {
			return d.fallbackOffset(nil)
		}
		if d.r.location%2 != 0 {
			d.oddLocations = true
		}

		if wasInSequence || (d.inSequence && tag != PixelDataTag) {
			d.addInfoUnread(tag)
			continue
		}

		switch tag {
		case FileMetaInformationGroupLengthTag:
			n := d.readIntValue()
			d.metaEnd = d.r.location + n
			d.addInfo(tag, strconv.Itoa(n))
		case TransferSyntaxUIDTag:
			uid := d.readTextValue()
			d.ds.TransferSyntaxUID = uid
			d.applyTransferSyntax(uid)
			d.addInfo(tag, uid)
		case SpecificCharacterSetTag:
			value := d.readTextValue()
			d.applyCharacterSet(value)
			d.addInfo(tag, value)
		case ModalityTag:
			value := d.readTextValue()
			d.ds.Modality = value
			d.addInfo(tag, value)
		case SliceThicknessTag:
			value := d.readTextValue()
			d.ds.SliceThickness = parseDouble(value)
			d.addInfo(tag, value)
		case SpacingBetweenSlicesTag:
			value := d.readTextValue()
			d.ds.SliceSpacing = parseDouble(value)
			d.addInfo(tag, value)
		case SamplesPerPixelTag:
			n := d.readShortValue()
			d.ds.SamplesPerPixel = n
			d.addInfo(tag, strconv.Itoa(n))
		case PhotometricInterpretationTag:
			value := d.readTextValue()
			d.ds.PhotometricInterpretation = value
			d.ds.WhiteIsZero = strings.HasPrefix(value, "MONOCHROME1")
			d.addInfo(tag, value)
		case PlanarConfigurationTag:
			n := d.readShortValue()
			d.ds.PlanarConfiguration = n
			d.addInfo(tag, strconv.Itoa(n))
		case NumberOfFramesTag:
			value := d.readTextValue()
			if frames := parseDouble(value); frames > 1 {
				d.ds.NumberOfFrames = int(frames)
			}
			d.addInfo(tag, value)
		case RowsTag:
			n := d.readShortValue()
			d.ds.Rows = n
			d.addInfo(tag, strconv.Itoa(n))
		case ColumnsTag:
			n := d.readShortValue()
			d.ds.Columns = n
			d.addInfo(tag, strconv.Itoa(n))
		case PixelSpacingTag:
			value := d.readTextValue()
			d.applyPixelSpacing(value)
			d.addInfo(tag, value)
		case BitsAllocatedTag:
			n := d.readShortValue()
			d.ds.BitsAllocated = n
			d.addInfo(tag, strconv.Itoa(n))
		case PixelRepresentationTag:
			n := d.readShortValue()
			d.ds.PixelRepresentation = n
			d.addInfo(tag, strconv.Itoa(n))
		case WindowCenterTag:
			value := lastValue(d.readTextValue())
			d.ds.WindowCenter = parseDouble(value)
			d.addInfo(tag, value)
		case WindowWidthTag:
			value := lastValue(d.readTextValue())
			d.ds.WindowWidth = parseDouble(value)
			d.addInfo(tag, value)
		case RescaleInterceptTag:
			value := d.readTextValue()
			d.ds.RescaleIntercept = parseDouble(value)
			d.addInfo(tag, value)
		case RescaleSlopeTag:
			value := d.readTextValue()
			d.ds.RescaleSlope = parseDouble(value)
			d.addInfo(tag, value)
		case RedPaletteTag:
			d.ds.RedPalette = d.readPaletteValue()
			d.addInfo(tag, strconv.Itoa(len(d.ds.RedPalette)))
		case GreenPaletteTag:
			d.ds.GreenPalette = d.readPaletteValue()
			d.addInfo(tag, strconv.Itoa(len(d.ds.GreenPalette)))
		case BluePaletteTag:
			d.ds.BluePalette = d.readPaletteValue()
			d.addInfo(tag, strconv.Itoa(len(d.ds.BluePalette)))
		case PixelDataTag:
			if d.inSequence {
				// Undefined length: the encapsulated stream starts here.
				d.inSequence = false
				d.ds.PixelDataOffset = d.r.location
				d.addInfo(tag, strconv.Itoa(d.r.location))
				return nil
			}
			if d.elementLength == 0 {
				// Some GE files carry an empty pixel data element ahead of
				// the real one. Keep scanning.
				d.addInfoUnread(tag)
				continue
			}
			d.ds.PixelDataOffset = d.r.location
			d.addInfo(tag, strconv.Itoa(d.r.location))
			return nil
		default:
			d.addInfoUnread(tag)
		}
	}
}

// atDataSetStart reports whether the cursor has passed the file meta group,
// using the group length when one was seen and the group number otherwise.
func (d *decoder) atDataSetStart() bool {
	if d.metaEnd > 0 {
		return d.r.location >= d.metaEnd
	}
	if d.r.remaining() < 2 {
		return false
	}
	return binary.LittleEndian.Uint16(d.r.data[d.r.location:]) != 0x0002
}

// inflate decompresses the deflated data set beginning at offset at and
// splices it into the read buffer in place of the compressed bytes.
func (d *decoder) inflate(at int) error {
	fr := flate.NewReader(bytes.NewReader(d.r.data[at:]))
	inflated, err := io.ReadAll(fr)
	if err != nil {
		return formatErrorf(at, "inflating deflated data set: %v", err)
	}
	if err := fr.Close(); err != nil {
		return formatErrorf(at, "closing inflate reader: %v", err)
	}
	d.r.spliceAt(at, inflated)
	d.deflated = false
	d.log.Debug().Int("offset", at).Int("inflated_bytes", len(inflated)).Msg("inflated deflated data set")
	return nil
}

func (d *decoder) applyTransferSyntax(uid string) {
	if isCompressedSyntax(uid) {
		d.ds.Compressed = true
		d.log.Debug().Str("syntax", uid).Msg("compressed transfer syntax declared")
	}
	if isBigEndianSyntax(uid) {
		d.bigEndianSyntax = true
	}
	if isDeflatedSyntax(uid) {
		d.deflated = true
	}
}

func (d *decoder) applyCharacterSet(value string) {
	coding, err := repertoireForValue(value)
	if err != nil {
		d.log.Debug().Str("charset", value).Err(err).Msg("unrecognized character set; keeping default repertoire")
		return
	}
	d.textCoding = coding
}

// applyPixelSpacing parses (0028,0030), which holds "row spacing\column
// spacing". Single-valued elements carry no usable scale.
func (d *decoder) applyPixelSpacing(value string) {
	rowSpacing, colSpacing, ok := strings.Cut(value, `\`)
	if !ok {
		return
	}
	d.ds.PixelHeight = parseDouble(rowSpacing)
	d.ds.PixelWidth = parseDouble(colSpacing)
}

// fallbackOffset locates the raster when the scan ended without a pixel
// data element, assuming the samples occupy the file tail.
func (d *decoder) fallbackOffset(cause error) error {
	ds := d.ds
	need := ds.Rows * ds.Columns * ds.SamplesPerPixel * ds.BitsAllocated / 8
	offset := len(d.r.data) - need
	if need <= 0 || offset <= 0 {
		err := formatErrorf(len(d.r.data), "pixel data not found (%dx%d, %d bits, %d samples)",
			ds.Columns, ds.Rows, ds.BitsAllocated, ds.SamplesPerPixel)
		if cause != nil {
			return errors.Join(err, cause)
		}
		return err
	}
	ds.PixelDataOffset = offset
	d.log.Warn().Int("offset", offset).Msg("pixel data tag not found; assuming samples occupy the file tail")
	return nil
}

// decodeCompressed hands the encapsulated stream to the codec registered
// for the transfer syntax. Without one the pixel data stays encapsulated
// behind PixelRegion and the parse reports the stream as unsupported.
func (d *decoder) decodeCompressed() ([]byte, error) {
	uid := d.ds.TransferSyntaxUID
	codec, ok := d.cfg.codecs.Get(uid)
	if !ok {
		d.log.Debug().Str("syntax", uid).Msg("no codec registered; pixel data left encapsulated")
		return nil, &UnsupportedFormatError{
			BitsAllocated:   d.ds.BitsAllocated,
			SamplesPerPixel: d.ds.SamplesPerPixel,
			TransferSyntax:  uid,
			Reason:          "no codec registered",
		}
	}
	res, err := codec.Decode(d.ds.pixelRegion)
	if err != nil {
		return nil, &UnsupportedFormatError{
			BitsAllocated:   d.ds.BitsAllocated,
			SamplesPerPixel: d.ds.SamplesPerPixel,
			TransferSyntax:  uid,
			Reason:          fmt.Sprintf("codec %s: %v", codec.Name(), err),
		}
	}
	if res.Height > 0 {
		d.ds.Rows = res.Height
	}
	if res.Width > 0 {
		d.ds.Columns = res.Width
	}
	if res.BitDepth > 0 {
		d.ds.BitsAllocated = res.BitDepth
	}
	if res.Components > 0 {
		d.ds.SamplesPerPixel = res.Components
	}
	d.log.Debug().Str("codec", codec.Name()).Int("bytes", len(res.PixelData)).Msg("decoded encapsulated pixel data")
	return res.PixelData, nil
}

// addInfo records a header line for a recognized tag whose value was
// already consumed by the dispatch loop, and caches the raw value for
// DataSet.Value.
func (d *decoder) addInfo(tag DataElementTag, value string) {
	d.ds.values[tag] = value
	d.recordInfo(tag, value, true)
}

// addInfoUnread records a header line for an element whose value bytes have
// not been consumed yet; they are read here according to the VR.
func (d *decoder) addInfoUnread(tag DataElementTag) {
	d.recordInfo(tag, "", false)
}

func (d *decoder) recordInfo(tag DataElementTag, value string, haveValue bool) {
	info, ok := d.headerInfo(tag, value, haveValue)
	if !ok || tag == ItemTag {
		return
	}
	if d.inSequence && d.vr != vrSQ {
		info = ">" + info
	}
	d.ds.Info[tag] = info
}

// headerInfo resolves the element's dictionary description, upgrades an
// implicit VR from the dictionary entry, and reads the value if the caller
// has not. Items return early so their nested bytes are left for the loop.
func (d *decoder) headerInfo(tag DataElementTag, value string, haveValue bool) (string, bool) {
	if tag == ItemDelimitationItemTag || tag == SequenceDelimitationItemTag {
		d.inSequence = false
	}

	desc := ""
	found := false
	if entry, ok := d.cfg.dictionary.Lookup(tag.Hex()); ok {
		entryVR, entryDesc := dictEntry(entry)
		desc, found = entryDesc, true
		if d.vr == vrImplicit && (entryVR.has16BitLength() || entryVR.has32BitLength()) {
			d.vr = entryVR
		}
	}
	if tag == ItemTag {
		return desc, found
	}
	if !haveValue {
		value = d.readValueByKind(tag)
	}
	switch {
	case !found && value != "":
		return "---: " + value, true
	case !found:
		return "", false
	default:
		return desc + ": " + value, true
	}
}

// readValueByKind consumes exactly the element's value bytes and renders
// them for the info map.
func (d *decoder) readValueByKind(tag DataElementTag) string {
	if d.vr == vrImplicit {
		value := d.readTextValue()
		if d.elementLength > elidedValueLength {
			return ""
		}
		return value
	}
	switch d.vr.kind() {
	case textKind:
		value := d.readTextValue()
		if d.vr.needsRepertoire() {
			value = decodeText(value, d.textCoding)
		}
		return value
	case shortsKind:
		return d.readShortListValue()
	case floatKind:
		if d.elementLength == 4 {
			return strconv.FormatFloat(float64(d.r.readFloat32()), 'g', -1, 32)
		}
		d.r.skip(d.elementLength)
		return ""
	case doubleKind:
		if d.elementLength == 8 {
			return strconv.FormatFloat(d.r.readFloat64(), 'g', -1, 64)
		}
		d.r.skip(d.elementLength)
		return ""
	case sequenceKind:
		// Icon image sequences and private sequences with defined lengths
		// are skipped whole; anything else is scanned element by element.
		if tag == IconImageSequenceTag || tag.IsPrivate() {
			d.r.skip(d.elementLength)
		}
		return ""
	default:
		d.r.skip(d.elementLength)
		return ""
	}
}

// readTextValue consumes the element value as a padded string.
func (d *decoder) readTextValue() string {
	return d.r.readString(d.elementLength)
}

// readShortValue consumes the element value and returns its leading 16-bit
// integer, tolerating corrupt lengths to keep the cursor aligned.
func (d *decoder) readShortValue() int {
	if d.elementLength < 2 {
		d.r.skip(d.elementLength)
		return 0
	}
	v := d.r.readShort()
	d.r.skip(d.elementLength - 2)
	return v
}

func (d *decoder) readIntValue() int {
	if d.elementLength < 4 {
		d.r.skip(d.elementLength)
		return 0
	}
	v := d.r.readInt32()
	d.r.skip(d.elementLength - 4)
	return v
}

// readShortListValue renders unsigned short values as a space separated
// list, the form the info map uses for multi-valued US elements.
func (d *decoder) readShortListValue() string {
	n := d.elementLength / 2
	odd := d.elementLength % 2
	if n == 0 {
		d.r.skip(d.elementLength)
		return ""
	}
	if n == 1 {
		v := strconv.Itoa(d.r.readShort())
		d.r.skip(odd)
		return v
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strconv.Itoa(d.r.readShort())
	}
	d.r.skip(odd)
	return strings.Join(parts, " ")
}

// readPaletteValue decodes a 16-bit palette element, keeping the high byte
// of each entry. Odd-length palettes are unusable and dropped.
func (d *decoder) readPaletteValue() []byte {
	if d.elementLength%2 != 0 {
		d.r.skip(d.elementLength)
		return nil
	}
	n := d.elementLength / 2
	if n == 0 {
		return nil
	}
	lut := make([]byte, n)
	for i := range lut {
		lut[i] = byte(d.r.readShort() >> 8)
	}
	return lut
}

// lastValue returns the portion after the last backslash of a multi-valued
// element value.
func lastValue(value string) string {
	if i := strings.LastIndexByte(value, '\\'); i >= 0 {
		return value[i+1:]
	}
	return value
}

// parseDouble converts a decimal string element value, treating malformed
// input as zero.
func parseDouble(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
