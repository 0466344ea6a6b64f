package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the current release. Bump the minor part when the database
// schema changes, the schema migration keys off it.
var Version = "0.2.0"

func GetCurrentVersion() string {
	return Version
}

// GetMinorVersion returns the "major.minor" part of a version string.
func GetMinorVersion(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return version
	}
	return strings.Join(parts[:2], ".")
}

// GetSchemaVersion returns the version that the schema of this build
// corresponds to, which is the minor version with a zero patch.
func GetSchemaVersion(version string) string {
	return GetMinorVersion(version) + ".0"
}

func IsVersionGreaterThan(v, other string) bool {
	return semver.Compare("v"+v, "v"+other) > 0
}

func IsVersionGreaterOrEqualThan(v, other string) bool {
	return semver.Compare("v"+v, "v"+other) >= 0
}

// SortVersion sorts version strings in ascending semver order, in place,
// and returns the slice.
func SortVersion(versions []string) []string {
	for i := 1; i < len(versions); i++ {
		for j := i; j > 0 && semver.Compare("v"+versions[j-1], "v"+versions[j]) > 0; j-- {
			versions[j-1], versions[j] = versions[j], versions[j-1]
		}
	}
	return versions
}
