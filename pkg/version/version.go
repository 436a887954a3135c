// Package version provides build version information and semver helpers.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// These are set via ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var (
	parsed         *semver.Version
	parseAttempted bool
)

// Short returns just the version number.
func Short() string {
	return Version
}

// Info returns a one-line description of the build.
func Info() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("dishdeck %s (%s) built on %s with %s", Version, commit, BuildDate, runtime.Version())
}

// Parsed returns the parsed semantic version, or nil for dev builds.
// The result is cached after the first call.
func Parsed() *semver.Version {
	if parsed != nil || parseAttempted {
		return parsed
	}
	parseAttempted = true

	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	parsed = v
	return parsed
}

// IsDevBuild reports whether the binary was built without a semver version.
func IsDevBuild() bool {
	return Parsed() == nil
}

// IsPrerelease reports whether the current version carries a prerelease tag.
func IsPrerelease() bool {
	v := Parsed()
	return v != nil && v.Prerelease() != ""
}

// IsNewerThan reports whether the current version is strictly newer than other.
// Unparseable versions on either side compare as not newer.
func IsNewerThan(other string) bool {
	current := Parsed()
	if current == nil {
		return false
	}
	o, err := semver.NewVersion(other)
	if err != nil {
		return false
	}
	return current.GreaterThan(o)
}

func reset() {
	parsed = nil
	parseAttempted = false
}
