// Binary encoding for dictionary blobs.
//
// Entries are stored as one compact binary blob per dictionary rather than
// one bbolt key each, so loading a dictionary is a single Get. Settings are
// small and use gob.
//
// Binary entry list format (little-endian):
//
//	entryCount: uint32
//	per entry:
//	  keyLen:   uint32
//	  key:      [keyLen]byte
//	  cleanLen: uint32
//	  clean:    [cleanLen]byte
package bbolt

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"math"
	"sort"
)

// encodeEntries encodes a keyword -> clean name map to compact binary format.
// Keywords are sorted for deterministic output. A single buffer is
// pre-allocated to avoid repeated growth.
func encodeEntries(entries map[string]string) ([]byte, error) {
	// Header: 4 bytes (entryCount)
	// Per entry: 4 (keyLen) + len(key) + 4 (cleanLen) + len(clean)
	totalSize := 4
	for key, clean := range entries {
		totalSize += 4 + len(key) + 4 + len(clean)
	}

	buf := make([]byte, totalSize)
	offset := 0

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	binary.LittleEndian.PutUint32(buf[offset:], uint32(len(keys)))
	offset += 4

	for _, key := range keys {
		clean := entries[key]
		if uint64(len(key)) > math.MaxUint32 {
			return nil, fmt.Errorf("keyword too long: %d bytes", len(key))
		}
		if uint64(len(clean)) > math.MaxUint32 {
			return nil, fmt.Errorf("clean name for %q too long: %d bytes", key, len(clean))
		}

		binary.LittleEndian.PutUint32(buf[offset:], uint32(len(key)))
		offset += 4
		copy(buf[offset:], key)
		offset += len(key)

		binary.LittleEndian.PutUint32(buf[offset:], uint32(len(clean)))
		offset += 4
		copy(buf[offset:], clean)
		offset += len(clean)
	}

	return buf, nil
}

// decodeEntries decodes a binary entry list back to a keyword -> clean name map.
// Every read is bounds-checked to avoid panics on corrupt data.
func decodeEntries(data []byte) (map[string]string, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("entry list too short: %d bytes", len(data))
	}

	offset := 0
	count := binary.LittleEndian.Uint32(data[offset:])
	offset += 4

	entries := make(map[string]string, count)

	readField := func(i uint32, what string) (string, error) {
		if offset+4 > len(data) {
			return "", fmt.Errorf("truncated at entry %d %s length (offset %d)", i, what, offset)
		}
		n := binary.LittleEndian.Uint32(data[offset:])
		offset += 4
		if uint64(n) > uint64(len(data)-offset) {
			return "", fmt.Errorf("truncated at entry %d %s (offset %d, need %d)", i, what, offset, n)
		}
		s := string(data[offset : offset+int(n)])
		offset += int(n)
		return s, nil
	}

	for i := uint32(0); i < count; i++ {
		key, err := readField(i, "keyword")
		if err != nil {
			return nil, err
		}
		clean, err := readField(i, "clean name")
		if err != nil {
			return nil, err
		}
		entries[key] = clean
	}

	return entries, nil
}

// encodeGob encodes a value using gob. Used for the settings blob.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob decodes gob-encoded data into target. Target must be a pointer.
func decodeGob(data []byte, target interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(target)
}
