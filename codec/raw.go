package codec

// Bytes is an identity codec for []byte values. Entries still get the
// envelope checksum, so a truncated body is never returned as a hit.
type Bytes struct{}

func (Bytes) Ext() string                     { return "bin" }
func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) {
	// callers may keep the result; do not alias the read buffer
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// String is a trivial codec for Go string values. By convention this assumes
// UTF-8 and performs no validation.
type String struct{}

func (String) Ext() string                     { return "txt" }
func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
