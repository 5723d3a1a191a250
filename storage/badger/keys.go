// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/scout/core"
)

// Key prefixes for the search history
const (
	searchRecordPrefix = "scoutrec"
	searchDatePrefix   = "scoutrecd"
	searchIDSeq        = "scoutrecseq"
)

// makeSearchRecordKey generates a key for a search record by ID.
func makeSearchRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", searchRecordPrefix, id))
}

// makeSearchDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeSearchDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := searchDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialSearchDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialSearchDateKey(timestamp time.Time) []byte {
	prefix := searchDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// maxSearchDateKey is the upper bound for reverse iteration over the date
// index: every real composite key sorts below it.
func maxSearchDateKey() []byte {
	prefix := searchDatePrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	for i := offset; i < len(buf); i++ {
		buf[i] = 0xFF
	}
	return buf
}
