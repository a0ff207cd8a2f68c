package resolver

import (
	"math/rand"
	"testing"

	"github.com/aidanlsb/xcproj/internal/validate"
)

type ref struct {
	path string
	name string
}

func (r ref) RefPath() string { return r.path }
func (r ref) RefName() string { return r.name }

func TestResolver(t *testing.T) {
	candidates := []ref{
		{path: "Sources/App/AppDelegate.swift", name: "AppDelegate.swift"},
		{path: "Sources/Models/User.swift", name: "User.swift"},
		{path: "Resources/Info.plist", name: "Info.plist"},
		{name: "UIKit.framework"},
	}

	t.Run("exact path", func(t *testing.T) {
		got, ok := Best("Sources/Models/User.swift", candidates)
		if !ok || got.path != "Sources/Models/User.swift" {
			t.Errorf("got %+v, %v", got, ok)
		}
	})

	t.Run("exact name without path", func(t *testing.T) {
		got, ok := Best("UIKit.framework", candidates)
		if !ok || got.name != "UIKit.framework" {
			t.Errorf("got %+v, %v", got, ok)
		}
	})

	t.Run("filename only", func(t *testing.T) {
		got, ok := Best("AppDelegate.swift", candidates)
		if !ok || got.path != "Sources/App/AppDelegate.swift" {
			t.Errorf("got %+v, %v", got, ok)
		}
	})

	t.Run("suffix components", func(t *testing.T) {
		got, ok := Best("Models/User.swift", candidates)
		if !ok || got.path != "Sources/Models/User.swift" {
			t.Errorf("got %+v, %v", got, ok)
		}
	})

	t.Run("partial component does not match", func(t *testing.T) {
		if _, ok := Best("odels/User.swift", candidates); ok {
			t.Error("expected no match")
		}
	})

	t.Run("leading dot is normalized", func(t *testing.T) {
		got, ok := Best("./Resources/Info.plist", candidates)
		if !ok || got.path != "Resources/Info.plist" {
			t.Errorf("got %+v, %v", got, ok)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		if _, ok := Best("", candidates); ok {
			t.Error("empty token must never match")
		}
	})

	t.Run("unsafe token", func(t *testing.T) {
		if _, ok := Best("../../User.swift", candidates); ok {
			t.Error("traversal token must never match")
		}
	})

	t.Run("not found", func(t *testing.T) {
		r := Resolve("Missing.swift", candidates)
		if r.Found || r.Ambiguous || len(r.Matches) != 0 {
			t.Errorf("expected empty result, got %+v", r)
		}
	})
}

func TestResolverTieBreak(t *testing.T) {
	candidates := []ref{
		{path: "Tests/A.swift"},
		{path: "Sources/A.swift"},
	}

	r := Resolve("A.swift", candidates)
	if !r.Ambiguous || len(r.Matches) != 2 {
		t.Fatalf("expected two matches, got %+v", r)
	}
	if r.Match.path != "Sources/A.swift" {
		t.Errorf("expected longer path to win, got %q", r.Match.path)
	}
}

func TestResolverExactOutranksLonger(t *testing.T) {
	candidates := []ref{
		{path: "Deeply/Nested/Folder/Config.swift"},
		{path: "Config.swift"},
	}
	got, _ := Best("Config.swift", candidates)
	if got.path != "Config.swift" {
		t.Errorf("expected exact path to win, got %q", got.path)
	}
}

func TestResolverExactNameOutranksFilename(t *testing.T) {
	candidates := []ref{
		{path: "Long/Path/To/Shared.xcconfig"},
		{path: "Other/Config/Base.xcconfig", name: "Shared.xcconfig"},
	}
	got, _ := Best("Shared.xcconfig", candidates)
	if got.name != "Shared.xcconfig" {
		t.Errorf("expected exact name to win, got %+v", got)
	}
}

func TestResolverDeterminism(t *testing.T) {
	candidates := []ref{
		{path: "Sources/A.swift"},
		{path: "Tests/A.swift"},
		{path: "Feature/Sub/A.swift"},
		{path: "X/A.swift"},
		{path: "Y/A.swift"},
	}
	want, _ := Best("A.swift", candidates)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]ref(nil), candidates...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, ok := Best("A.swift", shuffled)
		if !ok || got != want {
			t.Fatalf("run %d: got %+v, want %+v", i, got, want)
		}
	}
	if want.path != "Feature/Sub/A.swift" {
		t.Errorf("expected most specific path, got %q", want.path)
	}
}

func TestResolverSingleMatchIsUnambiguous(t *testing.T) {
	r := Resolve("B.swift", []ref{{path: "Sources/A.swift"}, {path: "Sources/B.swift"}})
	if !r.Found || r.Ambiguous || r.Match.path != "Sources/B.swift" {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestResolveWithParentEscapePolicy(t *testing.T) {
	candidates := []ref{
		{path: "../Shared/Util.swift", name: "Util.swift"},
		{path: "Sources/App.swift", name: "App.swift"},
	}

	if r := Resolve("../Shared/Util.swift", candidates); r.Found {
		t.Fatalf("default policy resolved an escaping token: %+v", r)
	}

	r := ResolveWith(validate.PathPolicy{AllowParentEscape: true}, "../Shared/Util.swift", candidates)
	if !r.Found || r.Ambiguous || r.Match.path != "../Shared/Util.swift" {
		t.Fatalf("unexpected result %+v", r)
	}

	// Filename lookups are unaffected by the policy.
	if r := ResolveWith(validate.DefaultPolicy, "Util.swift", candidates); !r.Found {
		t.Error("expected filename match under the default policy")
	}
	if r := ResolveWith(validate.PathPolicy{AllowParentEscape: true}, "../../Util.swift", candidates); r.Found {
		t.Errorf("double ascent resolved: %+v", r)
	}
}

func TestMatchStrategy(t *testing.T) {
	c := ref{path: "Sources/Models/User.swift", name: "User.swift"}
	tests := []struct {
		token string
		want  Strategy
	}{
		{"Sources/Models/User.swift", ExactMatch},
		{"User.swift", ExactMatch},
		{"Models/User.swift", SuffixMatch},
		{"Other.swift", NoMatch},
		{"", NoMatch},
	}
	for _, tt := range tests {
		if got := MatchStrategy(tt.token, c); got != tt.want {
			t.Errorf("MatchStrategy(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
	if got := MatchStrategy("User.swift", ref{path: "Sources/User.swift"}); got != FilenameMatch {
		t.Errorf("expected filename match, got %v", got)
	}
}

func TestFindCollisions(t *testing.T) {
	collisions := FindCollisions([]ref{
		{path: "App/Info.plist"},
		{path: "Tests/Info.plist"},
		{path: "App/main.swift"},
	})
	if len(collisions) != 1 {
		t.Fatalf("expected 1 collision, got %d", len(collisions))
	}
	if collisions[0].Name != "Info.plist" || len(collisions[0].Candidates) != 2 {
		t.Errorf("unexpected collision %+v", collisions[0])
	}
}
