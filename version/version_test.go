package version

import (
	"strings"
	"testing"
)

func TestGetVersionFromLdflags(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3"
	if got := GetVersion(); got != "1.2.3" {
		t.Errorf("GetVersion failed: expected 1.2.3, got %s", got)
	}
}

func TestGetFullVersion(t *testing.T) {
	orig, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = orig, origCommit })

	Version = "1.2.3"
	GitCommit = "abc123"
	got := GetFullVersion()
	if !strings.HasPrefix(got, "1.2.3 (commit abc123") {
		t.Errorf("GetFullVersion failed: unexpected %q", got)
	}
}
