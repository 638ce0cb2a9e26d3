// Package buildinfo provides build-time version information for the
// waterflow CLI: the --version output and the scope of the layout snapshot
// cache.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/waterflow/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/waterflow/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/waterflow/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// [CacheScope] prefixes every snapshot and artifact key, so layouts computed
// by one build are never served to another.
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// CacheScope returns the cache key prefix for this build. Development builds
// share the "dev" version, so they are told apart by commit when one is set.
func CacheScope() string {
	if Version == "dev" && Commit != "none" && Commit != "" {
		return "dev-" + Commit + ":"
	}
	return Version + ":"
}
