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
	"errors"
	"fmt"
)

// Error classes. Typed errors returned by this package unwrap to one of
// these, so callers can classify failures with errors.Is.
var (
	// ErrFormat marks input that is not a parsable DICOM stream: a missing
	// DICM marker, or pixel data that cannot be located even by the
	// trailing-bytes fallback.
	ErrFormat = errors.New("dicom: format error")

	// ErrTruncated marks pixel data cut short by the end of the file.
	// Header reads past the end of the buffer are absorbed by the cursor
	// and never surface as errors.
	ErrTruncated = errors.New("dicom: truncated pixel data")

	// ErrRunaway marks a header scan that hit its element ceiling.
	ErrRunaway = errors.New("dicom: header scan runaway")

	// ErrUnsupported marks pixel layouts this decoder cannot materialize
	// and compressed streams no registered codec accepts.
	ErrUnsupported = errors.New("dicom: unsupported format")
)

// FormatError reports a stream that cannot be decoded at all.
type FormatError struct {
	Offset int
	Reason string
}

func formatErrorf(offset int, format string, args ...any) *FormatError {
	return &FormatError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dicom: %s (offset %d)", e.Reason, e.Offset)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// TruncationError reports a pixel region shorter than the dimensions
// declared by the header.
type TruncationError struct {
	Offset int
	Need   int
	Have   int
}

func (e *TruncationError) Error() string {
	return fmt.Sprintf("dicom: pixel data truncated at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

func (e *TruncationError) Unwrap() error { return ErrTruncated }

// RunawayError reports a header scan stopped by its element ceiling before
// reaching pixel data. Parse treats it as soft and tries the trailing-bytes
// fallback before surfacing anything.
type RunawayError struct {
	Elements int
}

func (e *RunawayError) Error() string {
	return fmt.Sprintf("dicom: header scan stopped after %d elements", e.Elements)
}

func (e *RunawayError) Unwrap() error { return ErrRunaway }

// UnsupportedFormatError reports a pixel layout outside the three supported
// kinds, or a compressed transfer syntax with no usable codec.
type UnsupportedFormatError struct {
	BitsAllocated   int
	SamplesPerPixel int
	TransferSyntax  string
	Reason          string
}

func (e *UnsupportedFormatError) Error() string {
	if e.TransferSyntax != "" {
		return fmt.Sprintf("dicom: unsupported format: %s (transfer syntax %q)", e.Reason, e.TransferSyntax)
	}
	return fmt.Sprintf("dicom: unsupported format: %s (%d bits, %d samples per pixel)", e.Reason, e.BitsAllocated, e.SamplesPerPixel)
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupported }
