package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string. Development builds fall back to
// the module version recorded by the Go toolchain, if any.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// GetFullVersion returns the version with commit, build date and platform
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s %s/%s)",
		GetVersion(), GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
