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

import "bytes"

// ParseFile decodes the DICOM file at path. On unix platforms the file is
// mapped read-only instead of copied into memory, so large studies decode
// without a second resident copy of the raster.
func ParseFile(path string, opts ...ParseOption) (*DataSet, error) {
	data, done, err := mapFile(path)
	if err != nil {
		return nil, err
	}
	defer done()

	ds, err := Parse(data, opts...)
	ds.detachRegion()
	return ds, err
}

// detachRegion unties the DataSet from the mapped view before it is
// unmapped. The region is copied only when no pixel buffer was
// materialized, since that is when callers still need the raw bytes.
func (ds *DataSet) detachRegion() {
	if ds.pixelRegion == nil {
		return
	}
	if ds.pixelBufferBytes() == 0 {
		ds.pixelRegion = bytes.Clone(ds.pixelRegion)
		return
	}
	ds.pixelRegion = nil
}
