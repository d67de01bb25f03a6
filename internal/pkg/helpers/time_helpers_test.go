package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"90m", 90 * time.Minute},
		{"", time.Hour},
		{"soon", time.Hour},
		{"-5s", time.Hour},
	}
	for _, tt := range tests {
		if got := ParseDuration(tt.in, time.Hour); got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
