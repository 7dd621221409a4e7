package plugin

import (
	"fmt"
	"strconv"
	"strings"
)

// Version represents a parsed protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a version string in "MAJOR.MINOR.PATCH" format.
func ParseVersion(version string) (Version, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", version)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version component %q in %s", part, version)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the string representation of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports whether v orders before o.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// IsCompatible checks if a plugin protocol version can be used by this host.
// Rules:
// - Major version must match exactly (breaking changes).
// - The version must not be older than MinCompatibleVersion.
// - Newer minor and patch versions are accepted.
func IsCompatible(pluginVersion string) (bool, error) {
	v, err := ParseVersion(pluginVersion)
	if err != nil {
		return false, fmt.Errorf("failed to parse plugin version: %w", err)
	}

	current := CurrentVersion()
	if v.Major != current.Major {
		return false, fmt.Errorf("incompatible major version: plugin is %s, shadecraft requires %d.x.x", v, current.Major)
	}

	minVersion, err := ParseVersion(MinCompatibleVersion)
	if err != nil {
		return false, fmt.Errorf("failed to parse minimum compatible version: %w", err)
	}
	if v.Less(minVersion) {
		return false, fmt.Errorf("plugin version %s is too old, minimum required is %s", v, MinCompatibleVersion)
	}

	return true, nil
}

// CurrentVersion returns ProtocolVersion as a Version.
func CurrentVersion() Version {
	v, err := ParseVersion(ProtocolVersion)
	if err != nil {
		panic(fmt.Sprintf("invalid ProtocolVersion constant: %v", err))
	}
	return v
}
