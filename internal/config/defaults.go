package config

// DefaultRepoURL is the repository URL used for pull request links when
// nothing else is configured and no origin remote can be inspected.
const DefaultRepoURL = "https://github.com/microsoft/durabletask-dotnet"

// DefaultBranch is the branch diffed against when the requested tag is missing.
const DefaultBranch = "main"

// DefaultLimit caps the commit count for ranges without a predecessor tag.
const DefaultLimit = 50

// GetDefaults returns the default configuration values.
// These reproduce shiplog's zero-config behavior: defaults alone are a
// complete, working configuration.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"repo_url": DefaultRepoURL,
		"branch":   DefaultBranch,
		"limit":    DefaultLimit,
		"format":   "markdown",
		"plain":    false,
	}
}
