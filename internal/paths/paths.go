// Package paths resolves user-supplied file locations.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome resolves a leading ~ to the current user's home directory.
// Config values never pass through a shell, so a defs_path written as
// ~/commands.yaml arrives here verbatim. Paths for other users
// (~alice/...) and paths without the prefix come back unchanged, as
// does everything when the home directory is unknown.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}

	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Display shortens a path under the home directory to its ~ form for
// reports and prompts.
func Display(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}

	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return filepath.Join("~", rest)
	}
	return path
}
