package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/raveheart1/shiplog/internal/errors"
	"github.com/raveheart1/shiplog/internal/git"
)

// watchDebounce coalesces bursts of ref updates (a push touches several
// files under .git) into a single regeneration.
const watchDebounce = 300 * time.Millisecond

// newWatchCmd regenerates the changelog whenever repository refs change.
func newWatchCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{root: root}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the changelog when repository refs change",
		Long: `Watch the repository's ref storage (.git/HEAD, .git/refs, packed-refs)
and regenerate the changelog section on every change.

Combine with --output to keep a file current while commits and tags land.
Stop with Ctrl+C.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.tag, "tag", "", "Release tag to generate the changelog section for (required)")
	cmd.Flags().StringVar(&opts.outputPath, "output", "", "Write the document to a file instead of stdout")
	cmd.Flags().StringVar(&opts.format, "format", "", "Document format: markdown or yaml")
	cmd.Flags().StringVar(&opts.repoURL, "repo-url", "", "Repository web URL for pull request links")
	cmd.Flags().StringVar(&opts.branch, "branch", "", "Fallback branch when the tag does not exist")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Commit cap for ranges without a predecessor tag")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *generateOptions) error {
	env, err := prepare(cmd, opts)
	if err != nil {
		return err
	}

	repoRoot, err := git.RepositoryRoot(opts.root.repoPath)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Repository, "locating repository root")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating watcher")
	}
	defer watcher.Close()

	if err := addRefWatches(watcher, filepath.Join(repoRoot, ".git")); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "watching repository refs")
	}

	regenerate := func() error {
		doc := env.builder.Generate(opts.tag)
		return writeDocument(cmd, env, &doc)
	}

	// Initial document before the first change arrives.
	if err := regenerate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watchLoop(ctx, watcher, env, regenerate)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// addRefWatches registers the paths whose changes mean "history moved":
// the .git directory itself (HEAD, packed-refs) and the loose ref trees.
func addRefWatches(watcher *fsnotify.Watcher, gitDir string) error {
	if err := watcher.Add(gitDir); err != nil {
		return err
	}

	for _, sub := range []string{
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	} {
		if _, err := os.Stat(sub); err != nil {
			continue
		}
		if err := watcher.Add(sub); err != nil {
			return err
		}
	}
	return nil
}

// watchLoop debounces watcher events and invokes regenerate after each
// quiet period. Returns when the context is cancelled.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, env *generateEnv, regenerate func() error) error {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRefEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if err := regenerate(); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			env.printer.Warnf("watcher: %v", err)
		}
	}
}

// isRefEvent filters watcher noise down to events that can move refs.
func isRefEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}

	name := filepath.Base(event.Name)
	if name == "HEAD" || name == "packed-refs" {
		return true
	}
	// Anything under refs/ is a ref update; lock files are git's own churn.
	return filepath.Ext(name) != ".lock" && containsRefs(event.Name)
}

func containsRefs(path string) bool {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		base := filepath.Base(dir)
		if base == "refs" {
			return true
		}
		if base == dir || base == "." || base == string(filepath.Separator) {
			return false
		}
	}
}
