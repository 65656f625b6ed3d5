package git

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// DefaultFetchTimeout bounds the --fetch tag refresh to prevent hangs.
const DefaultFetchTimeout = 60 * time.Second

// openRepo opens a git repository at the specified path or current working
// directory. DetectDotGit traverses up the directory tree to find the root.
func openRepo(path string) (*gogit.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsRepository checks if path is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// RepositoryRoot returns the absolute path to the repository root.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// RemoteURL returns the web URL of the origin remote, normalized to https
// form without a trailing ".git". Returns an empty string when there is no
// origin remote or its URL cannot be translated to a web URL.
func RemoteURL(path string) string {
	repo, err := openRepo(path)
	if err != nil {
		return ""
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return ""
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return normalizeRemoteURL(urls[0])
}

// normalizeRemoteURL converts common git remote URL forms to a web URL.
//   - git@github.com:owner/repo.git -> https://github.com/owner/repo
//   - ssh://git@github.com/owner/repo -> https://github.com/owner/repo
//   - https://github.com/owner/repo.git -> https://github.com/owner/repo
func normalizeRemoteURL(url string) string {
	url = strings.TrimSuffix(url, ".git")

	switch {
	case strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "http://"):
		return url
	case strings.HasPrefix(url, "git@"):
		rest := strings.TrimPrefix(url, "git@")
		host, repoPath, found := strings.Cut(rest, ":")
		if !found {
			return ""
		}
		return "https://" + host + "/" + repoPath
	case strings.HasPrefix(url, "ssh://"):
		rest := strings.TrimPrefix(url, "ssh://")
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		return "https://" + rest
	default:
		return ""
	}
}

// FetchTags fetches tags from all configured remotes so the local tag list
// is current before range resolution. It continues on failure and returns
// true if all fetches succeeded. SSH remotes are skipped when no SSH agent
// is available, and timeouts are handled gracefully.
func FetchTags(ctx context.Context, path string) (bool, error) {
	repo, err := openRepo(path)
	if err != nil {
		return false, err
	}

	remotes, err := repo.Remotes()
	if err != nil || len(remotes) == 0 {
		logDebug("[git] FetchTags: no remotes configured")
		return true, nil
	}

	allSucceeded := true
	for _, remote := range remotes {
		if ctx.Err() != nil {
			return allSucceeded, nil
		}
		if err := fetchRemoteTags(ctx, repo, remote); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to fetch from remote '%s': %v\n", remote.Config().Name, err)
			allSucceeded = false
		}
	}
	return allSucceeded, nil
}

// fetchRemoteTags fetches the tag refspec from a single remote.
func fetchRemoteTags(ctx context.Context, repo *gogit.Repository, remote *gogit.Remote) error {
	remoteConfig := remote.Config()
	if len(remoteConfig.URLs) == 0 {
		return nil
	}

	url := remoteConfig.URLs[0]
	if isSSHURL(url) && !isSSHAgentAvailable() {
		logDebug("[git] skipping fetch from '%s': SSH URL without SSH agent", remoteConfig.Name)
		return nil
	}

	logDebug("[git] fetching tags from remote '%s' (%s)", remoteConfig.Name, url)

	err := repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remoteConfig.Name,
		Auth:       getAuthForURL(url),
		Tags:       gogit.AllTags,
		RefSpecs:   []config.RefSpec{config.RefSpec("+refs/tags/*:refs/tags/*")},
	})

	if ctx.Err() != nil {
		logDebug("[git] fetch from '%s' timed out or cancelled", remoteConfig.Name)
		return nil
	}
	if err == gogit.NoErrAlreadyUpToDate {
		return nil
	}
	return err
}

// getAuthForURL returns the appropriate authentication method for a remote
// URL. SSH URLs use SSH agent auth, HTTPS URLs use environment credentials.
func getAuthForURL(url string) transport.AuthMethod {
	if isSSHURL(url) {
		auth, err := ssh.NewSSHAgentAuth("git")
		if err != nil {
			logDebug("[git] SSH agent auth failed: %v", err)
			return nil
		}
		return auth
	}

	username := os.Getenv("GIT_USERNAME")
	password := os.Getenv("GIT_PASSWORD")
	if username == "" {
		// A GitHub token can be used as username with empty password.
		username = os.Getenv("GITHUB_TOKEN")
		password = ""
	}

	if username != "" {
		return &http.BasicAuth{Username: username, Password: password}
	}
	return nil
}

// isSSHURL checks if a URL is an SSH URL.
// Detects git@ (SCP-style), ssh://, and git+ssh:// schemes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}

// isSSHAgentAvailable checks if an SSH agent is available.
func isSSHAgentAvailable() bool {
	return strings.TrimSpace(os.Getenv("SSH_AUTH_SOCK")) != ""
}
