// Package version holds build version metadata, injected at link time.
package version

var (
	// VersionTag is the release tag, set via -ldflags at build time
	VersionTag = "dev"

	// Commit is the git commit hash the binary was built from
	Commit = "unknown"

	// BuildTime is the build timestamp in RFC 3339 format
	BuildTime = "unknown"
)
