// Package version provides build-time version information for mkpalette.
// Version information is injected at build time using ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of the application.
	// Injected at build time via: -ldflags "-X github.com/jmylchreest/mkpalette/internal/version.Version=x.y.z".
	Version = "dev"

	// Commit is the git commit hash of the build.
	Commit = "unknown"

	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

// String returns a human-readable version string.
func String() string {
	platform := runtime.GOOS + "/" + runtime.GOARCH
	if Commit != "unknown" && Date != "unknown" {
		commit := Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		return fmt.Sprintf("mkpalette version %s (commit: %s, built: %s, %s, %s)",
			Version, commit, Date, runtime.Version(), platform)
	}
	return fmt.Sprintf("mkpalette version %s (%s, %s)", Version, runtime.Version(), platform)
}
