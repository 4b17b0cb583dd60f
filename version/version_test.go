package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		major    int
		minor    int
		patch    int
		revision int
		legacy   bool
		labels   []string
		metadata string
	}{
		{input: "1.0", major: 1},
		{input: "13.0.3", major: 13, patch: 3},
		{input: "2.5.3.1", major: 2, minor: 5, patch: 3, revision: 1, legacy: true},
		{input: "1.2.3-beta.1", major: 1, minor: 2, patch: 3, labels: []string{"beta", "1"}},
		{input: "3.0.0-dev-01234", major: 3, labels: []string{"dev-01234"}},
		{input: "1.0.0+20241019", major: 1, metadata: "20241019"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.major, v.Major)
			assert.Equal(t, tt.minor, v.Minor)
			assert.Equal(t, tt.patch, v.Patch)
			assert.Equal(t, tt.revision, v.Revision)
			assert.Equal(t, tt.legacy, v.IsLegacyVersion)
			assert.Equal(t, tt.labels, v.ReleaseLabels)
			assert.Equal(t, tt.metadata, v.Metadata)
			assert.Equal(t, tt.input, v.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "1", "1.2.3.4.5", "a.b", "1.+2", "1.0-", "1..0", "Bar"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("x") })
	assert.Equal(t, 4, MustParse("4.0").Major)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.01.1", "1.1.1"},
		{"1.2", "1.2.0"},
		{"1.0.0.0", "1.0.0"},
		{"1.0.0.4", "1.0.0.4"},
		{"1.0-Beta", "1.0.0-Beta"},
		{"1.0.0+sha.1", "1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Normalize("nope")
	assert.Error(t, err)
}

func TestFolderVersions(t *testing.T) {
	assert.Equal(t, []string{"1.0", "1.0.0"}, FolderVersions("1.0"))
	assert.Equal(t, []string{"13.0.3"}, FolderVersions("13.0.3"))
	assert.Equal(t, []string{"latest"}, FolderVersions("latest"))
	assert.Nil(t, FolderVersions(""))
}

func TestNuGetVersion_StringWithoutOriginal(t *testing.T) {
	v := &NuGetVersion{Major: 1, Minor: 2, Patch: 3, ReleaseLabels: []string{"rc"}, Metadata: "abc"}
	assert.Equal(t, "1.2.3-rc+abc", v.String())
	assert.True(t, v.IsPrerelease())
}
