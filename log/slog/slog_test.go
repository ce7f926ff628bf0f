package slog

import (
	"bytes"
	"encoding/json"
	stdslog "log/slog"
	"testing"

	"github.com/unkn0wn-root/diskcache"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	h := stdslog.NewJSONHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo})
	l := New(stdslog.New(h))

	l.Debug("skipped", diskcache.Fields{"x": 1})
	l.Info("gc sweep finished", diskcache.Fields{"files_removed": 3})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "gc sweep finished" || rec["component"] != "diskcache" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec["files_removed"] != float64(3) {
		t.Fatalf("files_removed=%v", rec["files_removed"])
	}
}
