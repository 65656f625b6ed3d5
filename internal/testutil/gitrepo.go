// Package testutil provides test utilities and helpers for shiplog tests.
package testutil

import (
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// GitRepo is a throwaway git repository rooted in a test temp directory.
// It shells out to the real git binary, matching what shiplog does in
// production, so fixture history behaves exactly like user history.
type GitRepo struct {
	t    *testing.T
	Dir  string
	seq  int
	tick time.Time
}

// NewGitRepo initializes an empty repository under t.TempDir() with a
// deterministic identity and "main" as the initial branch.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	r := &GitRepo{
		t:   t,
		Dir: t.TempDir(),
		// Commit/tag timestamps advance from a fixed instant so that
		// --sort=-creatordate ordering is stable across test runs.
		tick: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	r.Git("init", "--initial-branch=main")
	r.Git("config", "user.name", "Test User")
	r.Git("config", "user.email", "test@example.com")
	// Tag objects are not needed; lightweight tags carry a creatordate too,
	// taken from the tagged commit.
	r.Git("config", "commit.gpgsign", "false")

	return r
}

// Git runs a git command in the repository and fails the test on error.
// Returns trimmed stdout.
func (r *GitRepo) Git(args ...string) string {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(cmd.Environ(),
		"GIT_AUTHOR_DATE="+r.tick.Format(time.RFC3339),
		"GIT_COMMITTER_DATE="+r.tick.Format(time.RFC3339),
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// Commit creates an empty commit with the given subject, advancing the
// fixture clock so later commits and tags sort strictly newer.
func (r *GitRepo) Commit(subject string) {
	r.t.Helper()
	r.advance()
	r.Git("commit", "--allow-empty", "-m", subject)
}

// CommitAs creates an empty commit with an explicit author name.
func (r *GitRepo) CommitAs(subject, author string) {
	r.t.Helper()
	r.advance()
	r.Git("commit", "--allow-empty", "-m", subject,
		"--author", fmt.Sprintf("%s <%s@example.com>", author, slug(author)))
}

// Tag creates an annotated tag at HEAD, advancing the fixture clock so the
// tag's creatordate is strictly newer than any previous tag.
func (r *GitRepo) Tag(name string) {
	r.t.Helper()
	r.advance()
	r.Git("tag", "-a", name, "-m", name)
}

// Branch creates a branch at HEAD without checking it out.
func (r *GitRepo) Branch(name string) {
	r.t.Helper()
	r.Git("branch", name)
}

// Checkout switches to the given ref.
func (r *GitRepo) Checkout(ref string) {
	r.t.Helper()
	r.Git("checkout", "--quiet", ref)
}

// Head returns the abbreviated hash of the current HEAD commit.
func (r *GitRepo) Head() string {
	r.t.Helper()
	return r.Git("rev-parse", "--short", "HEAD")
}

func (r *GitRepo) advance() {
	r.seq++
	r.tick = r.tick.Add(time.Duration(r.seq) * time.Minute)
}

func slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "."))
}
