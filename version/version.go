// Package version parses the NuGet version strings found in packages.config files
// and package folder names.
//
// It supports both SemVer 2.0 format and legacy 4-part versions.
//
// Example:
//
//	v, err := version.Parse("1.2.3-beta.1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(v.Major, v.Minor, v.Patch) // 1 2 3
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// NuGetVersion represents a NuGet package version.
type NuGetVersion struct {
	Major int
	Minor int

	// Patch is the Build number of legacy versions
	Patch int

	// Revision is only set for legacy 4-part versions
	Revision int

	// IsLegacyVersion indicates a 4-part version
	IsLegacyVersion bool

	// ReleaseLabels contains prerelease labels (["beta", "1"] for "1.0.0-beta.1")
	ReleaseLabels []string

	// Metadata is the build metadata; package folders never carry it
	Metadata string

	originalString string
}

// String returns the version exactly as it was parsed, or its formatted form for
// versions built in code.
func (v *NuGetVersion) String() string {
	if v.originalString != "" {
		return v.originalString
	}
	return v.format(true)
}

// IsPrerelease reports whether the version has release labels.
func (v *NuGetVersion) IsPrerelease() bool {
	return len(v.ReleaseLabels) > 0
}

func (v *NuGetVersion) format(withMetadata bool) string {
	var sb strings.Builder

	if v.IsLegacyVersion {
		fmt.Fprintf(&sb, "%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Revision)
	} else {
		fmt.Fprintf(&sb, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	}

	if len(v.ReleaseLabels) > 0 {
		sb.WriteByte('-')
		sb.WriteString(strings.Join(v.ReleaseLabels, "."))
	}

	if withMetadata && v.Metadata != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Metadata)
	}

	return sb.String()
}

// Parse parses a version string into a NuGetVersion.
//
// Supported formats:
//   - SemVer 2.0: Major.Minor[.Patch][-Prerelease][+Metadata]
//   - Legacy: Major.Minor.Build.Revision
func Parse(s string) (*NuGetVersion, error) {
	if s == "" {
		return nil, fmt.Errorf("version string cannot be empty")
	}

	v := &NuGetVersion{originalString: s}

	versionPart, metadata, _ := strings.Cut(s, "+")
	v.Metadata = metadata

	numberPart, labels, hasLabels := strings.Cut(versionPart, "-")
	if hasLabels {
		if labels == "" {
			return nil, fmt.Errorf("invalid prerelease label: %q", s)
		}
		v.ReleaseLabels = strings.Split(labels, ".")
	}

	numbers := strings.Split(numberPart, ".")
	if len(numbers) < 2 || len(numbers) > 4 {
		return nil, fmt.Errorf("invalid version format: %q", s)
	}

	parsed := make([]int, len(numbers))
	for i, n := range numbers {
		value, err := parseNumber(n)
		if err != nil {
			return nil, fmt.Errorf("invalid version format: %q", s)
		}
		parsed[i] = value
	}

	v.Major, v.Minor = parsed[0], parsed[1]
	if len(parsed) >= 3 {
		v.Patch = parsed[2]
	}
	if len(parsed) == 4 {
		v.Revision = parsed[3]
		v.IsLegacyVersion = true
	}

	return v, nil
}

// parseNumber accepts ASCII digits only.
func parseNumber(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty version part")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid version part: %q", s)
		}
	}
	return strconv.Atoi(s)
}

// MustParse parses a version string and panics on error.
func MustParse(s string) *NuGetVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}
