package ascruntime

import (
	"github.com/coreos/go-semver/semver"
)

// Version is a guest API version.
type Version = semver.Version

// LegacyBoundary is the newest version using the header-less layout.
var LegacyBoundary = semver.Version{Major: 0, Minor: 0, Patch: 4}

// IsLegacy reports whether v selects the legacy layout (v <= 0.0.4).
func IsLegacy(v Version) bool {
	return !LegacyBoundary.LessThan(v)
}

// ParseVersion parses a dotted API version such as "0.0.5".
func ParseVersion(s string) (Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, err
	}
	return *v, nil
}

// MustParseVersion is ParseVersion that panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}
