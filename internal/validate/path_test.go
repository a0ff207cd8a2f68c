package validate

import (
	"strings"
	"testing"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"simple file", "A.swift", "A.swift", true},
		{"nested", "Sources/Models/User.swift", "Sources/Models/User.swift", true},
		{"leading dot", "./Sources/A.swift", "Sources/A.swift", true},
		{"single legitimate ascent", "a/../b", "b", true},
		{"excess ascent", "a/../../b", "", false},
		{"leading parent", "../b", "", false},
		{"deep traversal", "../../../etc/passwd", "", false},
		{"percent encoded name", "My%20File.swift", "My File.swift", true},
		{"encoded traversal", "%2e%2e/%2e%2e/etc", "", false},
		{"double encoded", "%252e%252e/secret", "", false},
		{"bad escape", "50%.txt", "", false},
		{"null byte", "a\x00b", "", false},
		{"encoded null", "a%00b", "", false},
		{"doubled separator", "Sources//A.swift", "", false},
		{"newline", "a\nb", "", false},
		{"tab", "a\tb", "", false},
		{"empty", "", "", false},
		{"system dir", "/etc/passwd", "", false},
		{"system dir exact", "/usr/bin", "", false},
		{"temp dir", "/tmp/x", "", false},
		{"absolute project path", "/Users/dev/App/A.swift", "/Users/dev/App/A.swift", true},
		{"similar prefix", "/etcetera/file", "/etcetera/file", true},
		{"absolute climb", "/..", "", false},
		{"backslash traversal", "a\\..\\..\\b", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SanitizePath(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("SanitizePath(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSanitizePathLength(t *testing.T) {
	long := strings.Repeat("a", MaxInputLength+1)
	if _, ok := SanitizePath(long); ok {
		t.Fatal("expected over-long path to be rejected")
	}
	exact := strings.Repeat("a", MaxInputLength)
	if _, ok := SanitizePath(exact); !ok {
		t.Fatal("expected path at the limit to be accepted")
	}
}

func TestSanitizePathParentEscapePolicy(t *testing.T) {
	policy := PathPolicy{AllowParentEscape: true}

	if got, ok := policy.SanitizePath("../Shared/Util.swift"); !ok || got != "../Shared/Util.swift" {
		t.Fatalf("expected single ascent to be allowed, got %q, %v", got, ok)
	}
	if _, ok := policy.SanitizePath("../../Shared"); ok {
		t.Fatal("expected two ascents to be rejected")
	}
	if _, ok := policy.SanitizePath("a/../../../b"); ok {
		t.Fatal("expected excess ascent after descent to be rejected")
	}
	if _, ok := DefaultPolicy.SanitizePath("../Shared"); ok {
		t.Fatal("default policy must reject any ascent above root")
	}
}

func TestSanitizePathNullBytesAlwaysRejected(t *testing.T) {
	inputs := []string{"\x00", "a\x00", "\x00a", "Sources/\x00/A.swift", "/Users/\x00"}
	for _, in := range inputs {
		if _, ok := SanitizePath(in); ok {
			t.Errorf("SanitizePath(%q) accepted a null byte", in)
		}
		if _, ok := SanitizeString(in); ok {
			t.Errorf("SanitizeString(%q) accepted a null byte", in)
		}
	}
}

func TestSanitizeManifestPath(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{name: "plain", raw: "Sources/App.swift", want: "Sources/App.swift", ok: true},
		{name: "normalized", raw: "Sources/./Models/../App.swift", want: "Sources/App.swift", ok: true},
		{name: "dollar in name", raw: "Sources/Price$.swift", want: "Sources/Price$.swift", ok: true},
		{name: "command substitution", raw: "Sources/$(whoami).swift"},
		{name: "backticks", raw: "Sources/`id`.swift"},
		{name: "variable expansion", raw: "Sources/${HOME}.swift"},
		{name: "chained command", raw: "Sources/a.swift;rm"},
		{name: "pipe", raw: "Sources/a|b.swift"},
		{name: "home prefix", raw: "~/secrets.swift"},
		{name: "home component", raw: "Sources/~/x.swift"},
		{name: "traversal", raw: "../../etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SanitizeManifestPath(tt.raw)
			if ok != tt.ok || got != tt.want {
				t.Errorf("SanitizeManifestPath(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}

	// SanitizePath itself stays purely syntactic.
	if _, ok := SanitizePath("Sources/$(whoami).swift"); !ok {
		t.Error("SanitizePath rejected a path without traversal")
	}

	policy := PathPolicy{AllowParentEscape: true}
	if got, ok := policy.SanitizeManifestPath("../Shared/X.swift"); !ok || got != "../Shared/X.swift" {
		t.Errorf("policy.SanitizeManifestPath = %q, %v", got, ok)
	}
	if _, ok := policy.SanitizeManifestPath("../$(id).swift"); ok {
		t.Error("parent escape policy accepted a command substitution")
	}
}
