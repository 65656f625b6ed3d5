// Package git provides the version-control collaborator for shiplog.
// Log and tag queries shell out to the git CLI so their output semantics
// match git byte for byte; repository detection, remote inspection and tag
// fetching use the go-git library.
package git

import (
	"os/exec"
	"strings"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default, it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Runner executes a git command and returns its stdout.
// Tests substitute a fake to exercise query logic without a repository.
type Runner interface {
	Output(dir string, args ...string) (string, error)
}

// ExecRunner runs git through os/exec in a given working directory.
type ExecRunner struct{}

// Output runs `git <args...>` in dir and returns trimmed stdout.
func (ExecRunner) Output(dir string, args ...string) (string, error) {
	logDebug("[git] Running: git %s", strings.Join(args, " "))

	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		logDebug("[git] command failed: %v", err)
		return "", err
	}
	return strings.TrimRight(string(out), "\n"), nil
}
