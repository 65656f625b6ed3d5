package git

import (
	"fmt"
	"strings"
)

// LogFormat is the pretty format used for every log query:
// abbreviated hash, subject and author name, separated by "||".
const LogFormat = "%h||%s||%an"

// Client issues the read-only queries shiplog needs against one repository.
// Failures degrade to empty results by design: a broken range or a
// repository with no tags is "nothing to report", never an error.
type Client struct {
	runner Runner
	dir    string
}

// NewClient creates a Client for the repository at dir.
// An empty dir means the current working directory.
func NewClient(dir string) *Client {
	return &Client{runner: ExecRunner{}, dir: dir}
}

// NewClientWithRunner creates a Client with a custom Runner. Used in tests.
func NewClientWithRunner(dir string, runner Runner) *Client {
	return &Client{runner: runner, dir: dir}
}

// Dir returns the repository directory the client operates on.
func (c *Client) Dir() string {
	return c.dir
}

// Tags returns all tags sorted by creation date, newest first.
// Returns nil when the command fails or the repository has no tags.
func (c *Client) Tags() []string {
	out, err := c.runner.Output(c.dir, "tag", "--sort=-creatordate")
	if err != nil {
		return nil
	}
	return splitLines(out)
}

// RefExists reports whether ref resolves to a commit.
func (c *Client) RefExists(ref string) bool {
	_, err := c.runner.Output(c.dir, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	return err == nil
}

// Log returns the raw `hash||subject||author` lines for a range query.
// With a non-empty before, the range is before..after; otherwise all commits
// reachable from after, capped at limit. Blank lines are dropped. A failing
// command yields an empty sequence, never an error.
func (c *Client) Log(before, after string, limit int) []string {
	args := []string{"log"}
	if before != "" {
		args = append(args, before+".."+after)
	} else {
		args = append(args, after, "-n", fmt.Sprintf("%d", limit))
	}
	args = append(args, "--pretty=format:"+LogFormat)

	out, err := c.runner.Output(c.dir, args...)
	if err != nil {
		return nil
	}
	return splitLines(out)
}

// splitLines splits command output into trimmed, non-blank lines.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
