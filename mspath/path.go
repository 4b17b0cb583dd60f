// Package mspath manipulates MSBuild-style file paths independently of the host OS.
//
// Project files authored on Windows carry drive-qualified, backslash-separated paths,
// and the same files are routinely processed on Linux and macOS build agents. The
// functions here accept either separator, keep the separator style of the base path
// they are given, and compare Windows-style paths case-insensitively.
package mspath

import (
	"errors"
	"strings"
)

// ErrNoCommonRoot is returned by Rel when two paths live on different volumes.
var ErrNoCommonRoot = errors.New("paths have no common root")

func isSep(c byte) bool {
	return c == '\\' || c == '/'
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// volumeLen returns the length of the leading volume name ("C:" or "\\server\share").
func volumeLen(p string) int {
	if len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]) {
		return 2
	}
	if len(p) >= 3 && isSep(p[0]) && isSep(p[1]) && !isSep(p[2]) {
		i := 2
		for i < len(p) && !isSep(p[i]) {
			i++
		}
		if i >= len(p) {
			return i
		}
		i++
		for i < len(p) && !isSep(p[i]) {
			i++
		}
		return i
	}
	return 0
}

// IsWindows reports whether p looks like a Windows path (drive letter, UNC share or
// backslash separators).
func IsWindows(p string) bool {
	return volumeLen(p) > 0 || strings.Contains(p, `\`)
}

// Separator returns the separator a path is written with.
func Separator(p string) byte {
	if IsWindows(p) {
		return '\\'
	}
	return '/'
}

// IsAbs reports whether p is fully qualified: "C:\x", "\\server\share\x" or "/x".
func IsAbs(p string) bool {
	vl := volumeLen(p)
	switch {
	case vl == 2:
		return len(p) > 2 && isSep(p[2])
	case vl > 2:
		return true
	default:
		return len(p) > 0 && p[0] == '/'
	}
}

// Clean returns the shortest equivalent form of p, resolving "." and ".." segments
// and collapsing repeated separators into the separator p is written with.
func Clean(p string) string {
	return clean(p, Separator(p))
}

func clean(p string, sep byte) string {
	vol, parts, rooted := split(p)

	var b strings.Builder
	b.WriteString(replaceSeps(vol, sep))
	if rooted && (len(parts) > 0 || len(vol) <= 2) {
		b.WriteByte(sep)
	}
	b.WriteString(strings.Join(parts, string(sep)))

	if b.Len() == 0 {
		return "."
	}
	return b.String()
}

// split breaks p into its volume, its cleaned segments and whether it is rooted.
func split(p string) (vol string, parts []string, rooted bool) {
	vl := volumeLen(p)
	vol = p[:vl]
	rest := p[vl:]
	rooted = vl > 2 || (len(rest) > 0 && isSep(rest[0]))

	segs := strings.FieldsFunc(rest, func(r rune) bool { return r == '\\' || r == '/' })
	for _, seg := range segs {
		switch seg {
		case ".":
		case "..":
			if len(parts) > 0 && parts[len(parts)-1] != ".." {
				parts = parts[:len(parts)-1]
			} else if !rooted {
				parts = append(parts, "..")
			}
		default:
			parts = append(parts, seg)
		}
	}
	return vol, parts, rooted
}

func replaceSeps(p string, sep byte) string {
	if sep == '\\' {
		return strings.ReplaceAll(p, "/", `\`)
	}
	return strings.ReplaceAll(p, `\`, "/")
}

// Join resolves p against dir. Absolute paths are returned cleaned; paths rooted
// without a volume ("\x") take the volume of dir; everything else is appended to dir.
// The result uses the separator style of dir.
func Join(dir, p string) string {
	sep := Separator(dir)
	switch {
	case IsAbs(p):
		return Clean(p)
	case p == "":
		return clean(dir, sep)
	case isSep(p[0]):
		return clean(dir[:volumeLen(dir)]+p, sep)
	default:
		return clean(dir+string(sep)+p, sep)
	}
}

// Dir returns all but the last element of p.
func Dir(p string) string {
	c := Clean(p)
	vl := volumeLen(c)
	i := strings.LastIndexAny(c[vl:], `\/`)
	if i < 0 {
		if vl > 0 {
			return c[:vl]
		}
		return "."
	}
	if i == 0 {
		return c[:vl+1]
	}
	return c[:vl+i]
}

// Base returns the last element of p.
func Base(p string) string {
	c := Clean(p)
	if i := strings.LastIndexAny(c, `\/`); i >= 0 {
		return c[i+1:]
	}
	return c
}

func fold(a, b string) bool {
	return IsWindows(a) || IsWindows(b)
}

func equalSegment(a, b string, caseInsensitive bool) bool {
	if caseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// TrimPrefix reports whether p lies at or below root, comparing whole path segments,
// and returns the remainder of p below root joined with root's separator. The
// remainder is empty when p and root name the same directory.
//
// "C:\Pkgs\Foo\lib" is below "C:\Pkgs\Foo"; "C:\Pkgs\FooBar" is not.
func TrimPrefix(p, root string) (string, bool) {
	return TrimPrefixSep(p, root, Separator(root))
}

// TrimPrefixSep is TrimPrefix with the remainder joined by sep.
func TrimPrefixSep(p, root string, sep byte) (string, bool) {
	ci := fold(p, root)
	pv, ps, pr := split(p)
	rv, rs, rr := split(root)

	if pr != rr || !equalSegment(replaceSeps(pv, '/'), replaceSeps(rv, '/'), ci) {
		return "", false
	}
	if len(rs) > len(ps) {
		return "", false
	}
	for i := range rs {
		if !equalSegment(rs[i], ps[i], ci) {
			return "", false
		}
	}
	return strings.Join(ps[len(rs):], string(sep)), true
}

// Rel returns the shortest relative path that leads from directory fromDir to
// target. Both paths must be rooted on the same volume; otherwise ErrNoCommonRoot
// is returned. The result uses fromDir's separator and never starts with ".\".
func Rel(fromDir, target string) (string, error) {
	return RelSep(fromDir, target, Separator(fromDir))
}

// RelSep is Rel with the result joined by sep.
func RelSep(fromDir, target string, sep byte) (string, error) {
	ci := fold(fromDir, target)
	fv, fs, fr := split(fromDir)
	tv, ts, tr := split(target)

	if !fr || !tr || !equalSegment(replaceSeps(fv, '/'), replaceSeps(tv, '/'), ci) {
		return "", ErrNoCommonRoot
	}

	common := 0
	for common < len(fs) && common < len(ts) && equalSegment(fs[common], ts[common], ci) {
		common++
	}

	out := make([]string, 0, len(fs)-common+len(ts)-common)
	for i := common; i < len(fs); i++ {
		out = append(out, "..")
	}
	out = append(out, ts[common:]...)

	if len(out) == 0 {
		return ".", nil
	}
	return strings.Join(out, string(sep)), nil
}

// HasInvalidChars reports whether p contains characters that cannot appear in a
// Windows path: control characters, `"<>|*?`, or a colon anywhere but after the
// drive letter.
func HasInvalidChars(p string) bool {
	windows := IsWindows(p)
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c < 0x20:
			return true
		case strings.IndexByte(`"<>|*?`, c) >= 0:
			return true
		case c == ':' && windows && !(i == 1 && isDriveLetter(p[0])):
			return true
		}
	}
	return false
}

// HasPrefixFold reports whether s begins with prefix, ignoring ASCII case.
func HasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
