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

import "sync"

// PixelCodec decodes the encapsulated pixel stream of one compressed
// transfer syntax. Implementations are registered with a CodecRegistry and
// selected by transfer syntax UID at parse time.
type PixelCodec interface {
	// Decode decodes the encapsulated stream, item framing included.
	Decode(data []byte) (*CodecResult, error)

	// UID returns the transfer syntax UID the codec handles.
	UID() string

	// Name returns a human-readable name.
	Name() string
}

// CodecResult contains the result of decoding an encapsulated stream.
type CodecResult struct {
	PixelData  []byte // decoded samples, interleaved, little-endian for 16-bit
	Width      int
	Height     int
	Components int // 1 = grayscale, 3 = RGB
	BitDepth   int // bits per sample
}

// CodecRegistry manages the available pixel codecs.
type CodecRegistry struct {
	mu     sync.RWMutex
	codecs map[string]PixelCodec // keyed by both name and UID
}

// NewCodecRegistry returns an empty registry.
func NewCodecRegistry() *CodecRegistry {
	return &CodecRegistry{codecs: make(map[string]PixelCodec)}
}

var defaultRegistry = NewCodecRegistry()

// RegisterCodec adds a codec to the package-level registry used by Parse
// when no WithCodecRegistry option is given.
func RegisterCodec(codec PixelCodec) {
	defaultRegistry.Register(codec)
}

// LookupCodec retrieves a codec from the package-level registry by name or
// transfer syntax UID.
func LookupCodec(nameOrUID string) (PixelCodec, bool) {
	return defaultRegistry.Get(nameOrUID)
}

// Register adds a codec under both its name and its UID.
func (r *CodecRegistry) Register(codec PixelCodec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[codec.Name()] = codec
	r.codecs[codec.UID()] = codec
}

// Get retrieves a codec by name or UID.
func (r *CodecRegistry) Get(nameOrUID string) (PixelCodec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codec, ok := r.codecs[nameOrUID]
	return codec, ok
}

// List returns all registered codecs, deduplicated.
func (r *CodecRegistry) List() []PixelCodec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[PixelCodec]bool)
	codecs := make([]PixelCodec, 0, len(r.codecs))
	for _, codec := range r.codecs {
		if !seen[codec] {
			seen[codec] = true
			codecs = append(codecs, codec)
		}
	}
	return codecs
}
