package logrus

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/unkn0wn-root/diskcache"
)

func TestFieldsAndErrorKey(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := New(base)

	boom := errors.New("boom")
	l.Warn("unusable cache entry, regenerating", diskcache.Fields{"where": "/c/v1/ab.bin", "err": boom})

	e := hook.LastEntry()
	if e == nil {
		t.Fatalf("no entry logged")
	}
	if e.Level != logrus.WarnLevel {
		t.Fatalf("level=%v", e.Level)
	}
	if e.Data["component"] != "diskcache" || e.Data["where"] != "/c/v1/ab.bin" {
		t.Fatalf("unexpected data: %v", e.Data)
	}
	if e.Data[logrus.ErrorKey] != boom {
		t.Fatalf("err not mapped to %q: %v", logrus.ErrorKey, e.Data)
	}
}

func TestLevelFiltering(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.InfoLevel)
	l := New(base)

	l.Debug("hidden", nil)
	l.Info("shown", nil)
	if len(hook.AllEntries()) != 1 || hook.LastEntry().Message != "shown" {
		t.Fatalf("unexpected entries: %v", hook.AllEntries())
	}
}
