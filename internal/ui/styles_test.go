package ui

import "testing"

func TestConfigureTheme(t *testing.T) {
	origAccent := Accent
	origColor := accentColor
	t.Cleanup(func() {
		Accent = origAccent
		accentColor = origColor
	})

	tests := []struct {
		accent string
		want   string
		ok     bool
	}{
		{accent: "39", want: "39", ok: true},
		{accent: " 244\t", want: "244", ok: true},
		{accent: "255", want: "255", ok: true},
		{accent: "#7AA2F7", want: "#7aa2f7", ok: true},
		{accent: "#abc", want: "#aabbcc", ok: true},
		{accent: "256"},
		{accent: "-1"},
		{accent: "#12345"},
		{accent: "#zzzzzz"},
		{accent: "purple"},
		{accent: "none"},
		{accent: "Off"},
		{accent: "default"},
		{accent: ""},
	}

	for _, tt := range tests {
		t.Run(tt.accent, func(t *testing.T) {
			ConfigureTheme(tt.accent)
			got, ok := AccentColor()
			if ok != tt.ok || got != tt.want {
				t.Errorf("ConfigureTheme(%q): AccentColor() = %q, %v; want %q, %v", tt.accent, got, ok, tt.want, tt.ok)
			}
		})
	}
}
