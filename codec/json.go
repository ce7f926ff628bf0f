package codec

import "encoding/json"

// JSON stores values as JSON documents. Handy when entries should stay
// readable with standard tools; slower and larger than Msgpack.
type JSON[V any] struct{}

func (JSON[V]) Ext() string                { return "json" }
func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
