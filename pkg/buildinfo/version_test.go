package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	pv, pc, pd := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = pv, pc, pd })
}

func TestFill(t *testing.T) {
	stamp(t, "dev", "none", "unknown")
	fill(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})
	if Version != "v0.3.1" || Commit != "abc123" || Date != "2026-01-02T03:04:05Z" {
		t.Errorf("fill = %s %s %s", Version, Commit, Date)
	}
}

func TestFillKeepsLdflags(t *testing.T) {
	stamp(t, "v1.0.0", "deadbeef", "unknown")
	fill(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	})
	if Version != "v1.0.0" || Commit != "deadbeef" {
		t.Errorf("ldflags values overwritten: %s %s", Version, Commit)
	}
}

func TestCacheScope(t *testing.T) {
	tests := map[string]string{"v1.2.3": "v1.2.3:", "1.2.3": "v1.2.3:", "dev": "vdev:"}
	for version, want := range tests {
		stamp(t, version, "none", "unknown")
		if got := CacheScope(); got != want {
			t.Errorf("CacheScope(%q) = %q, want %q", version, got, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	stamp(t, "v1.0.0", "deadbeef", "2026-01-01")
	got := Template()
	for _, want := range []string{"version v1.0.0", "commit: deadbeef", "built: 2026-01-01"} {
		if !strings.Contains(got, want) {
			t.Errorf("Template() = %q, missing %q", got, want)
		}
	}
}
