package utils

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
}

func TestHead(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "abc", 5, "abc"},
		{"exact length", "abcde", 5, "abcde"},
		{"cut mid-word", "hello world", 7, "hello w"},
		{"zero keeps all", "abc", 0, "abc"},
		{"multibyte counts runes", "héllo wörld", 4, "héll"},
		{"empty", "", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Head(tt.in, tt.n); got != tt.want {
				t.Errorf("Head(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestHead_longInput(t *testing.T) {
	s := strings.Repeat("a", 2999) + "b" + strings.Repeat("c", 500)
	got := Head(s, 3000)
	if len(got) != 3000 || !strings.HasSuffix(got, "b") {
		t.Errorf("Head cut at wrong position: len=%d suffix=%q", len(got), got[len(got)-1:])
	}
}
