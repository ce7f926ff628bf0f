package wire

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"
)

const (
	version byte = 1

	// magic(4) | ver(1) | flags(1) | created(u64 be) | sum(u64 be) | vlen(u32 be)
	headerLen = 4 + 1 + 1 + 8 + 8 + 4
)

var (
	ErrCorrupt = errors.New("diskcache: corrupt entry")
	magic4     = [...]byte{'D', 'S', 'K', 'C'}
)

// Entry is a decoded on-disk envelope. Payload aliases the input buffer.
type Entry struct {
	Created int64 // unix nanos at encode time
	Payload []byte
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode frames payload as:
//
//	magic(4) | ver(1) | flags(1) | created(u64 be) | xxhash64(payload)(u64 be) | vlen(u32 be) | payload(vlen)
func Encode(created int64, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(headerLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(0) // flags, reserved

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], uint64(created))
	buf.Write(u8[:])

	binary.BigEndian.PutUint64(u8[:], xxhash.Sum64(payload))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode validates the header, length and checksum of b.
// Truncated files and trailing garbage are both reported as ErrCorrupt.
func Decode(b []byte) (Entry, error) {
	if len(b) < headerLen || !hasMagic(b) || b[4] != version {
		return Entry{}, ErrCorrupt
	}

	off := 6

	created := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	sum := binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen != len(b)-off {
		return Entry{}, ErrCorrupt
	}

	payload := b[off:]
	if xxhash.Sum64(payload) != sum {
		return Entry{}, ErrCorrupt
	}
	return Entry{Created: created, Payload: payload}, nil
}
