package pathfix

import (
	"fmt"
	"strings"

	"github.com/willibrandon/gohintpath/mspath"
)

// SolutionRelative returns the $(SolutionDir) form of a path below the solution
// directory. Leading separators of remainder are dropped because $(SolutionDir)
// already ends with one.
func SolutionRelative(remainder string) string {
	return SolutionDirToken + strings.TrimLeft(remainder, `\/`)
}

// RelativePath returns the shortest relative path from directory fromDir to toPath.
// It fails with ErrNoCommonAncestor when the paths are on different volumes.
func RelativePath(fromDir, toPath string) (string, error) {
	return relativePath(fromDir, toPath, mspath.Separator(fromDir))
}

func relativePath(fromDir, toPath string, sep byte) (string, error) {
	rel, err := mspath.RelSep(fromDir, toPath, sep)
	if err != nil {
		return "", fmt.Errorf("%w: %s -> %s", ErrNoCommonAncestor, fromDir, toPath)
	}
	return rel, nil
}
