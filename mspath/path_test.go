package mspath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAbs(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{`C:\Sln`, true},
		{`c:/Sln`, true},
		{`C:`, false},
		{`C:Sln`, false},
		{`\\server\share\dir`, true},
		{`/home/dev/sln`, true},
		{`..\packages`, false},
		{`packages/Foo`, false},
		{``, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAbs(tt.path))
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{`C:\Sln\App\..\packages\Foo.1.0\`, `C:\Sln\packages\Foo.1.0`},
		{`C:/Sln/./App`, `C:\Sln\App`},
		{`C:\..\Sln`, `C:\Sln`},
		{`C:\`, `C:\`},
		{`/a/b/../c//d/`, `/a/c/d`},
		{`/`, `/`},
		{`..\..\x`, `..\..\x`},
		{`a/../..`, `..`},
		{``, `.`},
		{`\\server\share\a\..\b`, `\\server\share\b`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.path))
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		p    string
		want string
	}{
		{"relative", `C:\Sln\App`, `..\packages\Foo.1.0\lib\Foo.dll`, `C:\Sln\packages\Foo.1.0\lib\Foo.dll`},
		{"forward slashes", `C:\Sln\App`, `../packages/Foo.1.0`, `C:\Sln\packages\Foo.1.0`},
		{"absolute", `C:\Sln\App`, `D:\Other\x.dll`, `D:\Other\x.dll`},
		{"rooted without volume", `C:\Sln\App`, `\Tools\x.dll`, `C:\Tools\x.dll`},
		{"unix", `/src/sln/app`, `../packages/Foo.1.0`, `/src/sln/packages/Foo.1.0`},
		{"empty", `/src/sln/app/`, ``, `/src/sln/app`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Join(tt.dir, tt.p))
		})
	}
}

func TestDirAndBase(t *testing.T) {
	assert.Equal(t, `C:\Sln\App`, Dir(`C:\Sln\App\App.csproj`))
	assert.Equal(t, `C:\`, Dir(`C:\App.csproj`))
	assert.Equal(t, `/src`, Dir(`/src/App.csproj`))
	assert.Equal(t, `/`, Dir(`/App.csproj`))
	assert.Equal(t, `.`, Dir(`App.csproj`))

	assert.Equal(t, `App.csproj`, Base(`C:\Sln\App\App.csproj`))
	assert.Equal(t, `App.csproj`, Base(`/src/App.csproj`))
	assert.Equal(t, `App.csproj`, Base(`App.csproj`))
}

func TestTrimPrefix(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		root     string
		wantRest string
		wantOK   bool
	}{
		{"below", `C:\Pkgs\Foo\lib\Foo.dll`, `C:\Pkgs\Foo`, `lib\Foo.dll`, true},
		{"same directory", `C:\Pkgs\Foo`, `C:\Pkgs\Foo\`, ``, true},
		{"shared name prefix", `C:\Pkgs\FooBar\lib`, `C:\Pkgs\Foo`, ``, false},
		{"case insensitive on windows", `c:\pkgs\FOO\lib`, `C:\Pkgs\Foo`, `lib`, true},
		{"other drive", `D:\Pkgs\Foo`, `C:\Pkgs\Foo`, ``, false},
		{"above", `C:\Pkgs`, `C:\Pkgs\Foo`, ``, false},
		{"unix is case sensitive", `/pkgs/foo/lib`, `/pkgs/Foo`, ``, false},
		{"unix below", `/pkgs/Foo/lib/x.dll`, `/pkgs/Foo`, `lib/x.dll`, true},
		{"unix shared name prefix", `/pkgs/FooBar`, `/pkgs/Foo`, ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, ok := TrimPrefix(tt.path, tt.root)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestRel(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{"sibling tree", `C:\Sln\App`, `C:\Sln\packages\Foo.1.0\lib\Foo.dll`, `..\packages\Foo.1.0\lib\Foo.dll`},
		{"below", `C:\Sln`, `C:\Sln\packages\Foo.1.0`, `packages\Foo.1.0`},
		{"deeper project", `C:\Sln\src\App`, `C:\Sln\packages\Foo.1.0`, `..\..\packages\Foo.1.0`},
		{"same directory", `C:\Sln`, `C:\Sln\`, `.`},
		{"case differs", `C:\sln\app`, `C:\SLN\packages`, `..\packages`},
		{"unix", `/src/sln/app`, `/src/sln/packages/Foo.1.0`, `../packages/Foo.1.0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rel(tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRel_NoCommonRoot(t *testing.T) {
	_, err := Rel(`C:\Sln\App`, `D:\packages\Foo.1.0`)
	assert.ErrorIs(t, err, ErrNoCommonRoot)

	_, err = Rel(`C:\Sln\App`, `..\packages`)
	assert.ErrorIs(t, err, ErrNoCommonRoot)
}

func TestHasInvalidChars(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{`C:\Sln\packages\Foo.1.0\lib\Foo.dll`, false},
		{`..\packages\Foo.1.0\lib\*.dll`, true},
		{`..\packages\Foo?\lib`, true},
		{`..\packages\"Foo"`, true},
		{`..\packages\a|b`, true},
		{"..\\packages\\a\tb", true},
		{`C:\Sln\a:b`, true},
		{`/src/a:b`, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, HasInvalidChars(tt.path))
		})
	}
}

func TestHasPrefixFold(t *testing.T) {
	assert.True(t, HasPrefixFold(`$(solutiondir)packages`, `$(SolutionDir)`))
	assert.False(t, HasPrefixFold(`..\$(SolutionDir)`, `$(SolutionDir)`))
	assert.False(t, HasPrefixFold(`$(Sol`, `$(SolutionDir)`))
}

func TestSeparatorOverrides(t *testing.T) {
	rest, ok := TrimPrefixSep(`/src/sln/packages/Foo.1.0/lib/Foo.dll`, `/src/sln`, '\\')
	require.True(t, ok)
	assert.Equal(t, `packages\Foo.1.0\lib\Foo.dll`, rest)

	rest, ok = TrimPrefixSep(`C:\Sln\packages\Foo.1.0`, `C:\Sln`, '/')
	require.True(t, ok)
	assert.Equal(t, `packages/Foo.1.0`, rest)

	rel, err := RelSep(`/src/sln/app`, `/src/sln/packages/Foo.1.0/lib/Foo.dll`, '\\')
	require.NoError(t, err)
	assert.Equal(t, `..\packages\Foo.1.0\lib\Foo.dll`, rel)

	rel, err = RelSep(`/src/sln`, `/src/sln`, '\\')
	require.NoError(t, err)
	assert.Equal(t, `.`, rel)
}
