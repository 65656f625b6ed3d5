package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/raveheart1/shiplog/internal/changelog"
	"github.com/raveheart1/shiplog/internal/config"
	"github.com/raveheart1/shiplog/internal/errors"
	"github.com/raveheart1/shiplog/internal/git"
	"github.com/raveheart1/shiplog/internal/output"
)

// generateOptions holds the flag values for changelog generation.
type generateOptions struct {
	root       *rootOptions
	tag        string
	outputPath string
	format     string
	repoURL    string
	branch     string
	limit      int
	fetch      bool
}

// registerGenerate wires changelog generation onto the root command itself:
// the primary surface is `shiplog --tag <name>`.
func registerGenerate(cmd *cobra.Command, root *rootOptions) {
	opts := &generateOptions{root: root}

	cmd.Flags().StringVar(&opts.tag, "tag", "", "Release tag to generate the changelog section for (required)")
	cmd.Flags().StringVar(&opts.outputPath, "output", "", "Write the document to a file instead of stdout")
	cmd.Flags().StringVar(&opts.format, "format", "", "Document format: markdown or yaml")
	cmd.Flags().StringVar(&opts.repoURL, "repo-url", "", "Repository web URL for pull request links")
	cmd.Flags().StringVar(&opts.branch, "branch", "", "Fallback branch when the tag does not exist")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Commit cap for ranges without a predecessor tag")
	cmd.Flags().BoolVar(&opts.fetch, "fetch", false, "Fetch tags from remotes before resolving the range")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, opts)
	}
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	env, err := prepare(cmd, opts)
	if err != nil {
		return err
	}

	if opts.fetch {
		fetchTags(cmd, env)
	}

	doc := env.builder.Generate(opts.tag)
	return writeDocument(cmd, env, &doc)
}

// generateEnv is the resolved state shared by generate and watch.
type generateEnv struct {
	cfg     *config.Configuration
	printer *output.Printer
	builder *changelog.Builder
	repoURL string
	format  string
	out     string
	plain   bool
	dir     string
}

// prepare validates flags, loads configuration and assembles the builder.
func prepare(cmd *cobra.Command, opts *generateOptions) (*generateEnv, error) {
	if opts.tag == "" {
		return nil, errors.MissingTag()
	}

	cfg, err := config.Load(opts.root.configPath)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration")
	}

	plain := opts.root.plain || cfg.Plain
	printer := output.NewPrinter(cmd.ErrOrStderr(), plain)

	if opts.root.debug {
		git.SetDebugLogger(printer.Debugf)
	}

	if !git.IsRepository(opts.root.repoPath) {
		path := opts.root.repoPath
		if path == "" {
			path, _ = os.Getwd()
		}
		return nil, errors.NotARepository(path)
	}

	branch := cfg.Branch
	if opts.branch != "" {
		branch = opts.branch
	}
	limit := cfg.Limit
	if opts.limit > 0 {
		limit = opts.limit
	}
	format := cfg.Format
	if opts.format != "" {
		format = opts.format
	}
	if format != "markdown" && format != "yaml" {
		return nil, errors.NewArgumentError(
			fmt.Sprintf("unknown format %q", format),
			"Use --format markdown or --format yaml",
		)
	}

	client := git.NewClient(opts.root.repoPath)

	builderOpts := []changelog.BuilderOption{
		changelog.WithBranch(branch),
		changelog.WithLimit(limit),
		changelog.WithWarnFunc(printer.Warnf),
	}
	if opts.root.debug {
		builderOpts = append(builderOpts, changelog.WithDebugFunc(printer.Debugf))
	}

	return &generateEnv{
		cfg:     cfg,
		printer: printer,
		builder: changelog.NewBuilder(client, builderOpts...),
		repoURL: resolveRepoURL(opts, cfg),
		format:  format,
		out:     opts.outputPath,
		plain:   plain,
		dir:     opts.root.repoPath,
	}, nil
}

// resolveRepoURL picks the base URL for pull request links.
// Precedence: --repo-url flag > configured repo_url > origin remote
// inference (only when repo_url was explicitly emptied) > built-in default.
func resolveRepoURL(opts *generateOptions, cfg *config.Configuration) string {
	if opts.repoURL != "" {
		return opts.repoURL
	}
	if cfg.RepoURL != "" {
		return cfg.RepoURL
	}
	if inferred := git.RemoteURL(opts.root.repoPath); inferred != "" {
		return inferred
	}
	return config.DefaultRepoURL
}

// fetchTags refreshes tags from all remotes, with a stderr spinner when
// attached to a terminal. Fetch problems degrade to warnings: generation
// proceeds against the local tag list.
func fetchTags(cmd *cobra.Command, env *generateEnv) {
	var s *spinner.Spinner
	if !env.plain && output.IsTTY(os.Stderr.Fd()) {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond,
			spinner.WithWriter(cmd.ErrOrStderr()))
		s.Suffix = " Fetching tags from remotes..."
		s.Start()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), git.DefaultFetchTimeout)
	ok, err := git.FetchTags(ctx, env.dir)
	cancel()

	if s != nil {
		s.Stop()
	}

	if err != nil {
		env.printer.Warnf("fetching tags: %v", err)
	} else if !ok {
		env.printer.Warnf("some remotes could not be fetched; tag list may be stale")
	}
}

// writeDocument renders the document to the selected destination.
// Markdown documents open with the "# Changelog" title line.
func writeDocument(cmd *cobra.Command, env *generateEnv, doc *changelog.Document) error {
	var w io.Writer = cmd.OutOrStdout()
	if env.out != "" {
		f, err := os.Create(env.out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := renderDocument(w, env, doc); err != nil {
		return err
	}

	if env.out != "" {
		env.printer.Successf("wrote %s", env.out)
	}
	return nil
}

func renderDocument(w io.Writer, env *generateEnv, doc *changelog.Document) error {
	if env.format == "yaml" {
		return changelog.RenderYAML(doc, env.repoURL, w)
	}

	if _, err := fmt.Fprintf(w, "%s\n\n", changelog.Title); err != nil {
		return err
	}
	if err := changelog.RenderMarkdown(doc, env.repoURL, w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
