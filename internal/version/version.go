// Package version holds build metadata, injected at link time:
//
//	go build -ldflags "-X github.com/kailas-cloud/searchable/internal/version.Version=v0.3.0"
package version

import (
	"fmt"
	"runtime/debug"
)

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build as "version (commit, date)". A binary built
// without ldflags reports the VCS revision the Go toolchain stamped into it.
func String() string {
	commit, date := Commit, Date
	if commit == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					commit = shortRevision(s.Value)
				case "vcs.time":
					if date == "unknown" {
						date = s.Value
					}
				}
			}
		}
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, date)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
