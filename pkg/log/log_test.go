package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Level(t *testing.T) {
	var b bytes.Buffer
	l := NewWithOutput(&b, "warn")

	l.Debugf("hidden %d", 1)
	l.Infof("hidden %d", 2)
	l.Warnf("shown %d", 3)

	out := b.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info records to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown 3") {
		t.Errorf("expected warn record, got %q", out)
	}
}

func TestLogger_UnknownLevel(t *testing.T) {
	var b bytes.Buffer
	l := NewWithOutput(&b, "loud")
	l.Infof("hello")
	if !strings.Contains(b.String(), "hello") {
		t.Errorf("expected info fallback level, got %q", b.String())
	}
}
