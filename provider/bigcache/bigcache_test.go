package bigcache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func newProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(context.Background(), Config{LifeWindow: time.Minute, Shards: 16})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestNewRequiresLifeWindow(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error without LifeWindow")
	}
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)

	if _, ok, err := p.Get(ctx, "diskcache:v1:abc"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	val := []byte{0, 1, 2, 0xff}
	if ok, err := p.Set(ctx, "diskcache:v1:abc", val, int64(len(val)), time.Hour); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, "diskcache:v1:abc")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, val) {
		t.Fatalf("value mismatch: got %x want %x", got, val)
	}
	if p.Len() != 1 {
		t.Fatalf("Len=%d, want 1", p.Len())
	}

	if err := p.Del(ctx, "diskcache:v1:abc"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if err := p.Del(ctx, "diskcache:v1:abc"); err != nil {
		t.Fatalf("Del of missing key should be nil, got %v", err)
	}
	if _, ok, _ := p.Get(ctx, "diskcache:v1:abc"); ok {
		t.Fatalf("expected miss after Del")
	}
}
