// Package config provides hierarchical configuration management for shiplog
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.shiplog.yml) > user config (~/.config/shiplog/config.yml)
// > defaults. Every key has a default, so shiplog works with no configuration
// present at all.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration holds the shiplog settings.
type Configuration struct {
	// RepoURL is the repository web URL used to build pull request links
	// (e.g. "https://github.com/microsoft/durabletask-dotnet"). When empty
	// after loading, the URL is inferred from the origin remote at runtime.
	// Can be set via SHIPLOG_REPO_URL.
	RepoURL string `koanf:"repo_url"`

	// Branch is the fallback branch used when the requested tag does not
	// exist. Can be set via SHIPLOG_BRANCH.
	Branch string `koanf:"branch"`

	// Limit caps the commit count when no predecessor tag bounds the range.
	// Can be set via SHIPLOG_LIMIT.
	Limit int `koanf:"limit"`

	// Format selects the document format: "markdown" or "yaml".
	// Can be set via SHIPLOG_FORMAT.
	Format string `koanf:"format"`

	// Plain disables colors and the fetch spinner on diagnostics.
	// Never affects the generated document. Can be set via SHIPLOG_PLAIN.
	Plain bool `koanf:"plain"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .shiplog.yml)
	ProjectConfigPath string
	// SkipUserConfig skips the user-level config file (used in tests)
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil {
		// No resolvable home directory; defaults still apply.
		return nil
	}
	if !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the project-level YAML config if present.
// A custom path override is supported for testing.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		path = customPath
	}
	if !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading project config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads SHIPLOG_* environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("SHIPLOG_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: SHIPLOG_REPO_URL -> repo_url
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "SHIPLOG_"))
}

// finalizeConfig unmarshals and validates the merged configuration.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the merged configuration for unusable values.
func Validate(cfg *Configuration) error {
	if cfg.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", cfg.Limit)
	}
	if cfg.Branch == "" {
		return fmt.Errorf("branch must not be empty")
	}
	switch cfg.Format {
	case "markdown", "yaml":
	default:
		return fmt.Errorf("format must be %q or %q, got %q", "markdown", "yaml", cfg.Format)
	}
	if cfg.RepoURL != "" && !strings.HasPrefix(cfg.RepoURL, "http") {
		return fmt.Errorf("repo_url must be an http(s) URL, got %q", cfg.RepoURL)
	}
	return nil
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
