// Package version provides build version information.
package version

import (
	"runtime"
)

var (
	// Version is the semantic version (set by build flags)
	Version = "dev"

	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"

	// BuildDate is the build timestamp (set by build flags)
	BuildDate = "unknown"

	// GoVersion is the Go version used to build
	GoVersion = runtime.Version()
)

// Platform returns the GOOS/GOARCH pair the binary was built for. Layout
// reports for the host ABI depend on it.
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
