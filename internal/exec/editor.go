// Package exec handles executing external commands.
package exec

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// fallbackEditor is used when no editor is configured or set in the environment.
const fallbackEditor = "vi"

// EditorCommand returns the configured editor command, falling back to
// $VISUAL, then $EDITOR, then vi.
func EditorCommand(configured string) string {
	for _, cmd := range []string{configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if cmd = strings.TrimSpace(cmd); cmd != "" {
			return cmd
		}
	}
	return fallbackEditor
}

// Edit returns a command that opens the template file at path in an editor.
// The command runs through the shell with the terminal attached; the caller
// starts it (bubbletea's ExecProcess suspends the UI around it).
func Edit(command, path string) *exec.Cmd {
	expanded := expandTemplate(EditorCommand(command), path)

	cmd := exec.Command("sh", "-c", expanded)
	cmd.Dir = filepath.Dir(path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// expandTemplate expands template variables in the command. A command
// without {path} gets the path appended.
func expandTemplate(command, path string) string {
	if !strings.Contains(command, "{path}") {
		return command + " " + shellQuote(path)
	}

	result := command

	// {path} - Full path to the template file
	result = strings.ReplaceAll(result, "{path}", shellQuote(path))

	// {dir} - Directory holding the template
	result = strings.ReplaceAll(result, "{dir}", shellQuote(filepath.Dir(path)))

	// {name} - File name without directory
	result = strings.ReplaceAll(result, "{name}", shellQuote(filepath.Base(path)))

	return result
}

// shellQuote quotes s for sh when it contains anything but safe characters.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, unsafeShellRune) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("/._-+:,@%=", r)
}
