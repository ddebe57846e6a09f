package screen

import "testing"

func TestWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"plain", 5},
		{"\x1b[31mred\x1b[0m", 3},
		{"\x1b[38;2;1;2;3mhé", 2},
		{"日本", 4},
		{"\x1b[2J\x1b[1;1H", 0},
	}
	for _, tt := range tests {
		if got := Width(tt.in); got != tt.want {
			t.Errorf("Width(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestPadTruncateCenter(t *testing.T) {
	if got := Pad("\x1b[1mab", 4); got != "\x1b[1mab  " {
		t.Errorf("Unexpected pad %q", got)
	}
	if got := Pad("toolong", 3); got != "toolong" {
		t.Errorf("Expected wide text unchanged, got %q", got)
	}
	if got := Truncate("hello world", 8, "..."); got != "hello..." {
		t.Errorf("Unexpected truncation %q", got)
	}
	if got := Center("ab", 6); got != "  ab  " {
		t.Errorf("Unexpected center %q", got)
	}
}
