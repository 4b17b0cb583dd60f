package version

import "fmt"

// ToNormalizedString returns the canonical form NuGet uses for folder names:
// leading zeros removed, at least three parts, a fourth part only when the
// revision is not zero, and no build metadata.
//
// Examples:
//   - "1.01.1" → "1.1.1"
//   - "1.2" → "1.2.0"
//   - "1.0.0.0" → "1.0.0"
//   - "1.0.0.4" → "1.0.0.4"
func (v *NuGetVersion) ToNormalizedString() string {
	n := *v
	n.IsLegacyVersion = v.IsLegacyVersion && v.Revision != 0
	return n.format(false)
}

// Normalize parses a version string and returns its normalized form.
func Normalize(s string) (string, error) {
	v, err := Parse(s)
	if err != nil {
		return "", fmt.Errorf("cannot normalize invalid version: %w", err)
	}
	return v.ToNormalizedString(), nil
}

// FolderVersions returns the version strings a package folder may carry for s,
// most likely first: the string as written, then its normalized form. Unparsable
// versions yield only themselves.
func FolderVersions(s string) []string {
	if s == "" {
		return nil
	}
	normalized, err := Normalize(s)
	if err != nil || normalized == s {
		return []string{s}
	}
	return []string{s, normalized}
}
