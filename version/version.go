// Package version carries build metadata injected via -ldflags.
package version

import "runtime"

var (
	// GitRelease is the release tag, e.g. v0.3.0.
	GitRelease = "dev"

	// GitCommit is the short commit hash.
	GitCommit = "unknown"

	// GitCommitDate is the commit timestamp.
	GitCommitDate = "unknown"

	// GoInfo is the Go toolchain that built the binary.
	GoInfo = runtime.Version()
)
