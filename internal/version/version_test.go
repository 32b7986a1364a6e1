package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	orig := Version
	Version = v
	t.Cleanup(func() { Version = orig })
}

func withColor(t *testing.T, enabled bool) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = !enabled
	t.Cleanup(func() { color.NoColor = orig })
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// GitCommit and BuildDate can be empty (optional)
	_ = GitCommit
	_ = BuildDate
}

func TestColored_PlainWithoutColor(t *testing.T) {
	withColor(t, false)
	tests := []struct {
		version string
		want    string
	}{
		{"1.2.3", "1.2.3"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"2.0.0+build.7", "2.0.0+build.7"},
		{"nightly", "nightly"},
		{"  ", "dev"},
	}
	for _, tt := range tests {
		withVersion(t, tt.version)
		if got := Colored(); got != tt.want {
			t.Errorf("Colored() with Version=%q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestColored_HighlightsComponents(t *testing.T) {
	withColor(t, true)
	withVersion(t, "1.2.3-rc1")
	got := Colored()
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI escapes in %q", got)
	}
	if !strings.HasSuffix(got, "-rc1") {
		t.Fatalf("suffix must stay uncolored: %q", got)
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origGitCommit := GitCommit
	origBuildDate := BuildDate
	t.Cleanup(func() {
		GitCommit = origGitCommit
		BuildDate = origBuildDate
	})

	// имитация -ldflags
	withVersion(t, "1.2.3")
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	if Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", Version, "1.2.3")
	}
	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want %q", GitCommit, "abc123def456")
	}
}
