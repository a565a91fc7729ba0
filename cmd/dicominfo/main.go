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

// Command dicominfo prints the header of one or more DICOM files and
// optionally dumps the decoded pixel buffer.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"github.com/ThalesMMS/go-dicom-decoder/dicom"
)

var (
	verbose = flag.Bool("v", false, "log decoder events to stderr")
	thumb   = flag.Int("thumb", 0, "decode a preview no larger than this instead of the full image")
	rawOut  = flag.String("raw", "", "write the materialized pixel buffer to this file")
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: dicominfo [flags] file.dcm...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var opts []dicom.ParseOption
	if *verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		opts = append(opts, dicom.WithLogger(logger))
	}
	if *thumb > 0 {
		opts = append(opts, dicom.WithThumbnail(*thumb))
	}

	status := 0
	for _, path := range flag.Args() {
		if err := dump(path, opts); err != nil {
			fmt.Fprintf(os.Stderr, "dicominfo: %s: %v\n", path, err)
			status = 1
		}
	}
	os.Exit(status)
}

func dump(path string, opts []dicom.ParseOption) error {
	ds, err := dicom.ParseFile(path, opts...)
	if err != nil && (ds == nil || !ds.HeaderDecoded) {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dicominfo: %s: pixel data not decoded: %v\n", path, err)
	}

	fmt.Printf("%s: %dx%d, %d bits, %d samples/pixel", path, ds.Columns, ds.Rows, ds.BitsAllocated, ds.SamplesPerPixel)
	if ds.NumberOfFrames > 1 {
		fmt.Printf(", %d frames", ds.NumberOfFrames)
	}
	fmt.Println()
	if ds.Modality != "" {
		fmt.Printf("  modality:        %s\n", ds.Modality)
	}
	if ds.TransferSyntaxUID != "" {
		fmt.Printf("  transfer syntax: %s (compressed=%v)\n", ds.TransferSyntaxUID, ds.Compressed)
	}
	if ds.WindowWidth != 0 {
		fmt.Printf("  window:          center=%g width=%g\n", ds.WindowCenter, ds.WindowWidth)
	}
	fmt.Printf("  pixel data at:   %d\n", ds.PixelDataOffset)

	tags := make([]dicom.DataElementTag, 0, len(ds.Info))
	for tag := range ds.Info {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	for _, tag := range tags {
		fmt.Printf("%s %s\n", tag, ds.Info[tag])
	}

	if *rawOut != "" {
		return writeRaw(*rawOut, ds)
	}
	return nil
}

func writeRaw(path string, ds *dicom.DataSet) error {
	var buf []byte
	switch {
	case ds.Pixels8 != nil:
		buf = ds.Pixels8
	case ds.PixelsRGB != nil:
		buf = ds.PixelsRGB
	case ds.Pixels16 != nil:
		buf = encode16(ds.Pixels16)
	case ds.Thumbnail != nil:
		buf = encode16(ds.Thumbnail.Pixels)
	default:
		return fmt.Errorf("no pixel buffer to write")
	}
	return os.WriteFile(path, buf, 0644)
}

func encode16(pixels []uint16) []byte {
	buf := make([]byte, 2*len(pixels))
	for i, v := range pixels {
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}
	return buf
}
