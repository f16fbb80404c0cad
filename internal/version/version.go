// Package version holds build metadata injected at link time via -ldflags.
package version

import "runtime"

var (
	Version   = "dev"             // ex: v0.1.0
	Commit    = "none"            // ex: abcd123
	BuildDate = "unknown"         // ex: 2026-01-15T18:42:00Z
	GoVersion = runtime.Version() // toolchain that built the binary
)
