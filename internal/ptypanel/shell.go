package ptypanel

import (
	"os"
	"path/filepath"
)

// discoverShell picks the interactive shell to spawn, in the order spec.md
// 4.E mandates: known system interactive shells, then $SHELL, then a
// fallback list, then sh. Each candidate must exist on disk.
func discoverShell() string {
	known := []string{
		"/run/current-system/sw/bin/fish",
		"/run/current-system/sw/bin/zsh",
		"/run/current-system/sw/bin/bash",
	}
	for _, s := range known {
		if pathExists(s) {
			return s
		}
	}

	if s := os.Getenv("SHELL"); s != "" && pathExists(s) {
		return s
	}

	fallback := []string{"/usr/bin/fish", "/usr/bin/zsh", "/bin/bash", "/bin/sh"}
	for _, s := range fallback {
		if pathExists(s) {
			return s
		}
	}

	return "/bin/sh"
}

func pathExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// shellArgs returns the shell-specific start-up arguments for the given
// shell path: login flags for fish and zsh; bash and any other shell get
// none.
func shellArgs(shellPath string) []string {
	switch filepath.Base(shellPath) {
	case "fish":
		return []string{"-l"}
	case "zsh":
		return []string{"-l", "-i"}
	default:
		return nil
	}
}
