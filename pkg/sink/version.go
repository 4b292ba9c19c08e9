package sink

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion parses a strict MAJOR.MINOR.PATCH protocol version.
// A leading "v" is accepted.
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(strings.TrimPrefix(s, "v"))
	if err != nil {
		return nil, fmt.Errorf("invalid version %q (expected MAJOR.MINOR.PATCH): %w", s, err)
	}
	return v, nil
}

// IsCompatible checks a plugin's protocol version against this host.
// The major version must match and the version must not be older than
// MinCompatibleVersion; newer minor and patch versions are accepted.
func IsCompatible(pluginVersion string) error {
	pv, err := ParseVersion(pluginVersion)
	if err != nil {
		return fmt.Errorf("failed to parse plugin version: %w", err)
	}
	current := semver.MustParse(ProtocolVersion)
	minimum := semver.MustParse(MinCompatibleVersion)

	if pv.Major() != current.Major() {
		return fmt.Errorf("incompatible major version: plugin is %s, swatch requires %d.x.x", pv, current.Major())
	}
	if pv.LessThan(minimum) {
		return fmt.Errorf("plugin version %s is too old, minimum required is %s", pv, minimum)
	}
	return nil
}
