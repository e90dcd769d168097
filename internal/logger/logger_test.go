package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{DebugLevel, zapcore.DebugLevel},
		{InfoLevel, zapcore.InfoLevel},
		{WarnLevel, zapcore.WarnLevel},
		{ErrorLevel, zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		if got := toZapLevel(tc.in); got != tc.want {
			t.Errorf("toZapLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGet_Singleton(t *testing.T) {
	a := Get("debug")
	b := Get("error")
	if a == nil || a != b {
		t.Fatalf("expected the same non-nil instance")
	}
}

func TestNamed_NilSafe(t *testing.T) {
	var l *Logger
	if l.Named("poller") != nil {
		t.Fatal("expected nil child for nil logger")
	}
	child := Nop().Named("poller")
	if child == nil || child.SugaredLogger == nil {
		t.Fatal("expected a usable child logger")
	}
	child.Infow("poll_ok", "tds", 320)
}
