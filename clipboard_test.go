package main

import "testing"

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello", "hello"},
		{"crlf", "a\r\nb", "a\nb"},
		{"bare cr", "a\rb", "a\nb"},
		{"control chars", "a\x00b\x07c", "abc"},
		{"tabs expand", "a\tb", "a    b"},
		{"unicode kept", "héllo ★", "héllo ★"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanClipboardText(tt.in); got != tt.want {
				t.Errorf("cleanClipboardText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
