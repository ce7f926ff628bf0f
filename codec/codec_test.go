package codec

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type report struct {
	Name    string            `json:"name" msgpack:"name" cbor:"name"`
	Sizes   []int             `json:"sizes" msgpack:"sizes" cbor:"sizes"`
	Labels  map[string]string `json:"labels" msgpack:"labels" cbor:"labels"`
	Nested  *report           `json:"nested,omitempty" msgpack:"nested,omitempty" cbor:"nested,omitempty"`
	Checked time.Time         `json:"checked" msgpack:"checked" cbor:"checked"`
}

func sampleReport() report {
	return report{
		Name:    "contract",
		Sizes:   []int{1, 2, 3},
		Labels:  map[string]string{"chain": "mainnet"},
		Nested:  &report{Name: "inner", Sizes: []int{}, Labels: map[string]string{}},
		Checked: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func roundTrip[V any](t *testing.T, c Codec[V], v V) V {
	t.Helper()
	b, err := c.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return out
}

func TestCompositeRoundTrip(t *testing.T) {
	want := sampleReport()
	codecs := map[string]Codec[report]{
		"msgpack": Msgpack[report]{},
		"json":    JSON[report]{},
		"cbor":    MustCBOR[report](true),
	}
	for name, c := range codecs {
		got := roundTrip(t, c, want)
		if got.Name != want.Name || !reflect.DeepEqual(got.Sizes, want.Sizes) ||
			!reflect.DeepEqual(got.Labels, want.Labels) || got.Nested == nil ||
			got.Nested.Name != "inner" || !got.Checked.Equal(want.Checked) {
			t.Fatalf("%s: round trip mismatch: got %+v want %+v", name, got, want)
		}
	}
}

func TestCBORDeterministicIsStable(t *testing.T) {
	c := MustCBOR[map[string]int](true)
	m := map[string]int{"b": 2, "a": 1, "c": 3, "d": 4}
	first, err := c.Encode(m)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		b, err := c.Encode(m)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, b) {
			t.Fatalf("deterministic encoding changed between calls")
		}
	}
}

func TestProtobufRoundTrip(t *testing.T) {
	c := NewProtobuf(func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })
	got := roundTrip[*wrapperspb.StringValue](t, c, wrapperspb.String("abi"))
	if !proto.Equal(got, wrapperspb.String("abi")) {
		t.Fatalf("got %v", got)
	}
}

func TestBytesDecodeCopies(t *testing.T) {
	in := []byte("abc")
	out, err := Bytes{}.Decode(in)
	if err != nil {
		t.Fatal(err)
	}
	in[0] = 'X'
	if string(out) != "abc" {
		t.Fatalf("Decode must not alias its input, got %q", out)
	}
}

func TestLimitCodec(t *testing.T) {
	c := LimitCodec[string]{Inner: String{}, MaxDecode: 4}
	if _, err := c.Decode([]byte("12345")); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("expected size error, got %v", err)
	}
	if v, err := c.Decode([]byte("1234")); err != nil || v != "1234" {
		t.Fatalf("Decode within limit: v=%q err=%v", v, err)
	}
	if c.Ext() != "txt" {
		t.Fatalf("LimitCodec must forward Ext, got %q", c.Ext())
	}
}

type plain struct{}

func (plain) Encode(int) ([]byte, error) { return nil, nil }
func (plain) Decode([]byte) (int, error) { return 0, nil }

func TestExtOf(t *testing.T) {
	cases := map[string]any{
		"msgpack": Msgpack[int]{},
		"json":    JSON[int]{},
		"cbor":    MustCBOR[int](false),
		"bin":     plain{},
		"txt":     String{},
	}
	for want, c := range cases {
		if got := ExtOf(c); got != want {
			t.Fatalf("ExtOf(%T) = %q, want %q", c, got, want)
		}
	}
}
