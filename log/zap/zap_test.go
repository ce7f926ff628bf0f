package zap

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/diskcache"
)

func TestLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := New(zap.New(core))

	l.Debug("dropped", diskcache.Fields{"a": 1})
	l.Warn("gc: unexpected filesystem error", diskcache.Fields{
		"path": "/tmp/x",
		"err":  errors.New("boom"),
	})

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry above Info, got %d", logs.Len())
	}
	e := logs.All()[0]
	if e.Level != zapcore.WarnLevel {
		t.Fatalf("level=%v, want warn", e.Level)
	}
	ctx := e.ContextMap()
	if ctx["component"] != "diskcache" {
		t.Fatalf("missing component field: %v", ctx)
	}
	if ctx["path"] != "/tmp/x" {
		t.Fatalf("path=%v", ctx["path"])
	}
	if ctx["err"] != "boom" {
		t.Fatalf("err=%v", ctx["err"])
	}
}

func TestNilLoggerIsNop(t *testing.T) {
	New(nil).Error("nothing happens", nil)
}
