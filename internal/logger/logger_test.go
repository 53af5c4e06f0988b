package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		env, level string
		want       zapcore.Level
	}{
		{"production", "warn", zapcore.WarnLevel},
		{"development", "debug", zapcore.DebugLevel},
		{"development", "loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		l, err := New(tt.env, tt.level)
		if err != nil {
			t.Fatalf("%s/%s: unexpected error: %v", tt.env, tt.level, err)
		}
		if got := l.Level(); got != tt.want {
			t.Errorf("%s/%s: got %s, want %s", tt.env, tt.level, got, tt.want)
		}
	}
}
