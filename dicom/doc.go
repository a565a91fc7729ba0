// Package dicom decodes DICOM Part 10 files in a single sequential pass:
// the 128-byte preamble and DICM marker, the data element headers up to the
// pixel data tag, and for uncompressed transfer syntaxes the pixel samples
// themselves.
//
// Parse operates on an in-memory byte slice and ParseFile on a file, mapped
// read-only where the platform allows. Recognized header elements populate
// the typed fields of the DataSet; every element additionally gets a
// human-readable line in its Info map. Compressed transfer syntaxes are
// detected and either handed to a PixelCodec registered for the syntax or
// left encapsulated behind DataSet.PixelRegion.
//
// The decoder is deliberately forgiving with real-world files: implicit and
// explicit VR streams are disambiguated per element, lengths are clamped to
// the remaining buffer, and several known encoder quirks (byte order flips
// after the meta group, odd GE element lengths) are corrected on the fly.
// Each Parse call owns all of its state, so independent parses can run
// concurrently.
package dicom
