package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/raveheart1/shiplog/internal/testutil"
)

// newReleaseRepo builds a two-release history matching the canonical
// cleaning examples.
func newReleaseRepo(t *testing.T) *testutil.GitRepo {
	t.Helper()

	repo := testutil.NewGitRepo(t)
	repo.CommitAs("initial scaffolding", "Jane Doe")
	repo.Tag("v1.0.0")
	repo.CommitAs("Fix retry bug (#42)", "Jane Doe")
	repo.CommitAs("Merge pull request #10 from foo/bar", "Bot")
	repo.CommitAs("update docs", "Sam")
	repo.Tag("v1.1.0")
	return repo
}

func TestGenerate_ExplicitRange(t *testing.T) {
	repo := newReleaseRepo(t)

	stdout, stderr, err := runCLI(t, "--tag", "v1.1.0", "--repo", repo.Dir, "--plain")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	want := "# Changelog\n\n" +
		"## v1.1.0\n" +
		"- Update docs by Sam ()\n" +
		"- Fix retry bug by Jane Doe ([#42](https://github.com/microsoft/durabletask-dotnet/pull/42))\n"
	assert.Equal(t, want, stdout, "merge commit skipped, newest commit first")
}

func TestGenerate_EmptyRange(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.Commit("only commit")
	repo.Tag("v1.0.0")
	repo.Tag("v1.1.0")

	stdout, _, err := runCLI(t, "--tag", "v1.1.0", "--repo", repo.Dir, "--plain")
	require.NoError(t, err)

	assert.Equal(t, "# Changelog\n\n## v1.1.0\n*(No commits found in range)*\n", stdout)
}

func TestGenerate_FirstRelease_Capped(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.CommitAs("initial commit", "Jane Doe")
	repo.Tag("v1.0.0")

	stdout, _, err := runCLI(t, "--tag", "v1.0.0", "--repo", repo.Dir, "--plain")
	require.NoError(t, err)

	assert.Contains(t, stdout, "## v1.0.0")
	assert.Contains(t, stdout, "- Initial commit by Jane Doe ()")
}

func TestGenerate_MissingTag_WarnsAndDiffsBranch(t *testing.T) {
	repo := newReleaseRepo(t)
	repo.CommitAs("post-release tweak", "Sam")

	stdout, stderr, err := runCLI(t, "--tag", "v9.9.9", "--repo", repo.Dir, "--plain")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Warning:")
	assert.Contains(t, stderr, `"v9.9.9"`)
	assert.Contains(t, stdout, "## v9.9.9")
	assert.Contains(t, stdout, "- Post-release tweak by Sam ()")
}

func TestGenerate_MissingTag_NoTags(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.CommitAs("first work", "Jane Doe")

	stdout, stderr, err := runCLI(t, "--tag", "v0.1.0", "--repo", repo.Dir, "--plain")
	require.NoError(t, err)

	assert.Contains(t, stderr, "no tags")
	assert.Contains(t, stdout, "## v0.1.0")
	assert.Contains(t, stdout, "- First work by Jane Doe ()")
}

func TestGenerate_RepoURLFromOrigin(t *testing.T) {
	repo := newReleaseRepo(t)
	repo.Git("remote", "add", "origin", "git@github.com:acme/widgets.git")

	// repo_url must be explicitly emptied to enable origin inference.
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("repo_url: \"\"\n"), 0o644))

	stdout, _, err := runCLI(t, "--tag", "v1.1.0", "--repo", repo.Dir, "--config", cfgPath, "--plain")
	require.NoError(t, err)

	assert.Contains(t, stdout, "[#42](https://github.com/acme/widgets/pull/42)")
}

func TestGenerate_RepoURLFlagWins(t *testing.T) {
	repo := newReleaseRepo(t)

	stdout, _, err := runCLI(t, "--tag", "v1.1.0", "--repo", repo.Dir,
		"--repo-url", "https://github.com/acme/other", "--plain")
	require.NoError(t, err)

	assert.Contains(t, stdout, "[#42](https://github.com/acme/other/pull/42)")
}

func TestGenerate_YAMLFormat(t *testing.T) {
	repo := newReleaseRepo(t)

	stdout, _, err := runCLI(t, "--tag", "v1.1.0", "--repo", repo.Dir, "--format", "yaml", "--plain")
	require.NoError(t, err)

	var doc struct {
		Tag     string `yaml:"tag"`
		Entries []struct {
			Title string `yaml:"title"`
			PR    string `yaml:"pr"`
			Link  string `yaml:"link"`
		} `yaml:"entries"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))

	assert.Equal(t, "v1.1.0", doc.Tag)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "Fix retry bug", doc.Entries[1].Title)
	assert.Equal(t, "42", doc.Entries[1].PR)
}

func TestGenerate_UnknownFormat(t *testing.T) {
	repo := newReleaseRepo(t)

	_, _, err := runCLI(t, "--tag", "v1.1.0", "--repo", repo.Dir, "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "html"`)
}

func TestGenerate_OutputFile(t *testing.T) {
	repo := newReleaseRepo(t)
	outPath := filepath.Join(t.TempDir(), "CHANGELOG.md")

	stdout, stderr, err := runCLI(t, "--tag", "v1.1.0", "--repo", repo.Dir,
		"--output", outPath, "--plain")
	require.NoError(t, err)

	assert.Empty(t, stdout, "document goes to the file, not stdout")
	assert.Contains(t, stderr, "wrote "+outPath)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Changelog")
	assert.Contains(t, string(content), "## v1.1.0")
}

func TestGenerate_CustomBranchFallback(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.CommitAs("base work", "Jane Doe")
	repo.Tag("v1.0.0")
	repo.CommitAs("trunk work", "Sam")
	repo.Branch("trunk")

	stdout, _, err := runCLI(t, "--tag", "v9.9.9", "--repo", repo.Dir,
		"--branch", "trunk", "--plain")
	require.NoError(t, err)

	assert.Contains(t, stdout, "- Trunk work by Sam ()")
}

func TestTagsCmd(t *testing.T) {
	repo := newReleaseRepo(t)

	stdout, _, err := runCLI(t, "tags", "--repo", repo.Dir)
	require.NoError(t, err)

	assert.Equal(t, "v1.1.0\nv1.0.0\n", stdout)
}

func TestTagsCmd_NoTags(t *testing.T) {
	repo := testutil.NewGitRepo(t)
	repo.Commit("untagged work")

	stdout, _, err := runCLI(t, "tags", "--repo", repo.Dir)
	require.NoError(t, err)
	assert.Equal(t, "No tags found.\n", stdout)
}
