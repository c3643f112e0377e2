package transport

import (
	"fmt"
	"path"
	"strings"
)

// ValidatePath rejects empty sensor paths and relative paths that climb
// out of the login directory.
func ValidatePath(p string) error {
	if p == "" {
		return fmt.Errorf("empty path")
	}
	clean := path.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path traversal in %q", p)
	}
	return nil
}

// shellCommand joins argv into one POSIX shell command line, as an SSH
// session needs.
func shellCommand(argv []string, elevate bool) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	line := strings.Join(quoted, " ")
	if elevate && line != "" {
		line = "sudo -n " + line
	}
	return line
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, isShellSpecial) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isShellSpecial(r rune) bool {
	return strings.ContainsRune(" \t\n\"'\\$`!*?[](){}<>|&;#~", r)
}
