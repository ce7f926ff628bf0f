package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func mustDecode(t *testing.T, b []byte) Entry {
	t.Helper()
	e, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return e
}

func TestEncodeDecodeEmptyAndNonEmpty(t *testing.T) {
	cases := []struct {
		created int64
		payload []byte
	}{
		{0, nil},
		{1700000000000000000, []byte("hello")},
		{-1, []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		e := mustDecode(t, Encode(tc.created, tc.payload))
		if e.Created != tc.created {
			t.Fatalf("created mismatch: got %d want %d", e.Created, tc.created)
		}
		if !bytes.Equal(e.Payload, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", e.Payload, tc.payload)
		}
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	enc := Encode(7, []byte("x"))
	enc = append(enc, 0xDE, 0xAD)
	if _, err := Decode(enc); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on trailing bytes, got %v", err)
	}
}

func TestDecodeRejectsTruncated(t *testing.T) {
	enc := Encode(7, []byte("payload"))
	for _, n := range []int{0, 3, headerLen - 1, len(enc) - 1} {
		if _, err := Decode(enc[:n]); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("len=%d: expected ErrCorrupt, got %v", n, err)
		}
	}
}

func TestDecodeCorruptHeaders(t *testing.T) {
	enc := Encode(1, []byte("abc"))

	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, err := Decode(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, err := Decode(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	badLen := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(badLen[headerLen-4:headerLen], 1<<30)
	if _, err := Decode(badLen); err == nil {
		t.Fatalf("expected error on oversized vlen")
	}
}

func TestDecodeDetectsFlippedPayloadBit(t *testing.T) {
	enc := Encode(1, []byte("some cached value"))
	enc[len(enc)-1] ^= 0x01
	if _, err := Decode(enc); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected checksum failure, got %v", err)
	}
}

func TestDecodeForeignFile(t *testing.T) {
	if _, err := Decode([]byte("\x80\x04\x95pickle-ish bytes that are long enough")); err == nil {
		t.Fatalf("expected foreign bytes to be rejected")
	}
}
