// Package codec holds the value serializers used by diskcache entries.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Extension is implemented by codecs that know the conventional file
// extension (without the dot) of their format.
type Extension interface {
	Ext() string
}

// DefaultExt is used for codecs that do not implement Extension.
const DefaultExt = "bin"

// ExtOf returns c's extension, or DefaultExt.
func ExtOf(c any) string {
	if e, ok := c.(Extension); ok && e.Ext() != "" {
		return e.Ext()
	}
	return DefaultExt
}
