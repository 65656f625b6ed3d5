// Package cli implements the shiplog command surface with cobra.
package cli

import (
	stderrors "errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/raveheart1/shiplog/internal/errors"
)

// rootOptions holds the persistent flag values shared by every command.
type rootOptions struct {
	configPath string
	repoPath   string
	debug      bool
	plain      bool
}

// NewRootCmd builds the shiplog command tree. A fresh tree per call keeps
// flag state isolated, which tests rely on.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "shiplog",
		Short: "Generate a Markdown changelog section for a release tag",
		Long: `shiplog derives a changelog section for a release tag from git history.

It resolves the commit range ending at the tag (bounded by the predecessor
tag when one exists), extracts pull request references and authorship from
each commit subject, and writes a Markdown block to stdout.

When the tag has no predecessor the range is capped at the configured commit
limit. When the tag does not exist at all, shiplog warns and diffs the
latest tag against the fallback branch instead.`,
		Example: `  shiplog --tag v1.4.0
  shiplog --tag v1.4.0 --fetch
  shiplog --tag v1.4.0 --format yaml --output changelog.yml
  shiplog tags
  shiplog watch --tag v1.4.0 --output CHANGELOG.md`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a config file (default: .shiplog.yml)")
	cmd.PersistentFlags().StringVar(&opts.repoPath, "repo", "", "Path to the git repository (default: current directory)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Print the git commands being run")
	cmd.PersistentFlags().BoolVar(&opts.plain, "plain", false, "Plain diagnostics (no colors, no spinner)")

	registerGenerate(cmd, opts)
	cmd.AddCommand(newTagsCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the CLI and prints structured errors to stderr.
func Execute() error {
	err := NewRootCmd().Execute()
	if err == nil {
		return nil
	}

	var cliErr *errors.CLIError
	if stderrors.As(err, &cliErr) {
		errors.PrintError(cliErr)
	} else {
		errors.PrintError(errors.Wrap(err, errors.Runtime))
	}
	os.Exit(exitCodeFor(err))
	return err
}

// exitCodeFor maps an error to the documented exit codes.
func exitCodeFor(err error) int {
	var cliErr *errors.CLIError
	if stderrors.As(err, &cliErr) {
		switch cliErr.Category {
		case errors.Argument, errors.Configuration:
			return ExitInvalidArguments
		case errors.Repository:
			return ExitNoRepository
		}
	}
	return ExitFailure
}
