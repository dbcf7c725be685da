package descriptor

import (
	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// SupportedVersions is the constraint a document version must satisfy.
const SupportedVersions = "^1"

var supportedConstraint = func() *semver.Constraints {
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		panic(err)
	}

	return c
}()

// CheckVersion checks that a document version is one this generator reads.
// Short forms such as "1" and "1.2" are accepted.
func CheckVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(err, "invalid descriptor version %q", version)
	}

	if !supportedConstraint.Check(v) {
		return errors.WithHintf(
			errors.Newf("descriptor version %s is not supported", version),
			"supported versions: %s", SupportedVersions,
		)
	}

	return nil
}
