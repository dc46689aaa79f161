package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrVersionMismatch is returned when the running CLI does not satisfy the
// project's requires constraint.
var ErrVersionMismatch = errors.New("cli version does not satisfy project requirement")

// CheckVersion reports whether version satisfies constraint. An empty
// constraint and development builds ("dev") always pass.
func CheckVersion(constraint, version string) error {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" || version == "dev" || version == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing requires constraint %q: %w", constraint, err)
	}
	v, err := parseSemver(version)
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: project requires %s, running %s", ErrVersionMismatch, constraint, v)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
