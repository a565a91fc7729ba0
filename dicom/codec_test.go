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
	"testing"
)

// fakeCodec stands in for a pixel codec. It records the length of the
// stream handed to it and returns a canned result or error.
type fakeCodec struct {
	uid    string
	name   string
	result *CodecResult
	err    error
	gotLen int
}

func (c *fakeCodec) Decode(data []byte) (*CodecResult, error) {
	c.gotLen = len(data)
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

func (c *fakeCodec) UID() string { return c.uid }

func (c *fakeCodec) Name() string {
	if c.name == "" {
		return "fake"
	}
	return c.name
}

func TestCodecRegistry(t *testing.T) {
	reg := NewCodecRegistry()
	codec := &fakeCodec{uid: JPEG2000UID, name: "j2k"}
	reg.Register(codec)

	testCases := []struct {
		name      string
		nameOrUID string
		wantOK    bool
	}{
		{"lookup by UID", JPEG2000UID, true},
		{"lookup by name", "j2k", true},
		{"unknown UID", RLELosslessUID, false},
		{"empty key", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Get(tc.nameOrUID)
			if ok != tc.wantOK {
				t.Fatalf("Get(%q) => (_, %v), want (_, %v)", tc.nameOrUID, ok, tc.wantOK)
			}
			if ok && got != PixelCodec(codec) {
				t.Fatalf("Get(%q) => wrong codec %q", tc.nameOrUID, got.Name())
			}
		})
	}
}

// Each codec is stored under two keys; List must report it once.
func TestCodecRegistryList(t *testing.T) {
	reg := NewCodecRegistry()
	if got := reg.List(); len(got) != 0 {
		t.Fatalf("List() => %d codecs, want 0", len(got))
	}

	reg.Register(&fakeCodec{uid: JPEG2000UID, name: "j2k"})
	reg.Register(&fakeCodec{uid: RLELosslessUID, name: "rle"})

	got := reg.List()
	if len(got) != 2 {
		t.Fatalf("List() => %d codecs, want 2", len(got))
	}
}

// Re-registering a name replaces the earlier codec.
func TestCodecRegistryReplace(t *testing.T) {
	reg := NewCodecRegistry()
	reg.Register(&fakeCodec{uid: JPEG2000UID, name: "j2k"})
	replacement := &fakeCodec{uid: JPEG2000UID, name: "j2k"}
	reg.Register(replacement)

	got, ok := reg.Get(JPEG2000UID)
	if !ok || got != PixelCodec(replacement) {
		t.Fatalf("Get(_) => (%v, %v), want the replacement codec", got, ok)
	}
	if n := len(reg.List()); n != 1 {
		t.Fatalf("List() => %d codecs, want 1", n)
	}
}

func TestRegisterCodec(t *testing.T) {
	// The package-level registry is process global, so use a syntax no other
	// test parses against it.
	codec := &fakeCodec{uid: JPEGLosslessUID, name: "jpeg-lossless-test"}
	RegisterCodec(codec)

	if got, ok := LookupCodec(JPEGLosslessUID); !ok || got != PixelCodec(codec) {
		t.Fatalf("LookupCodec(%q) => (_, %v), want the registered codec", JPEGLosslessUID, ok)
	}
	if got, ok := LookupCodec("jpeg-lossless-test"); !ok || got != PixelCodec(codec) {
		t.Fatalf("LookupCodec(%q) => (_, %v), want the registered codec", "jpeg-lossless-test", ok)
	}
}
