package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SupportedDumpFormats is the range of allocator.DumpReport.FormatVersion
// values this build knows how to render. The CLI checks the snapshot of the
// heap it just built against it; a version outside the range is reported
// as an error rather than guessed at.
const SupportedDumpFormats = "^1.0.0"

// CheckDumpFormat reports an error if reportVersion falls outside
// SupportedDumpFormats.
func CheckDumpFormat(reportVersion string) error {
	v, err := semver.NewVersion(reportVersion)
	if err != nil {
		return fmt.Errorf("config: dump format %q is not a valid version: %w", reportVersion, err)
	}

	constraint, err := semver.NewConstraint(SupportedDumpFormats)
	if err != nil {
		return fmt.Errorf("config: invalid internal format constraint %q: %w", SupportedDumpFormats, err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("config: dump format %s is incompatible with supported range %s", v, SupportedDumpFormats)
	}

	return nil
}
